/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package rendering

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/arith/core/suite"
	"github.com/google/arith/core/views"
)

func TestRenderCalculator(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	report, err := suite.Run(context.Background(), suite.Samples()[:2], suite.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	vm := views.BuildCalculatorViewModel("Arith", "2+3*4", true, nil, report)
	require.NoError(t, r.RenderCalculator(&buf, vm))

	html := buf.String()
	assert.Contains(t, html, "<title>Arith</title>")
	assert.Contains(t, html, "<p class=\"pass\">14</p>")
	assert.Contains(t, html, "(2 + (3 * 4))")
	assert.Contains(t, html, "Samples (2/2 passing)")
}

func TestRenderCalculatorEscapes(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	vm := views.BuildCalculatorViewModel("Arith", "<b>1</b>", true, nil, nil)
	require.NoError(t, r.RenderCalculator(&buf, vm))

	html := buf.String()
	assert.NotContains(t, html, "<b>1</b>")
	assert.Contains(t, html, "&lt;b&gt;1&lt;/b&gt;")
	assert.Contains(t, html, "lexical")
}
