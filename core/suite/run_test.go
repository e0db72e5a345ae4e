/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package suite

import (
	"context"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplesPass(t *testing.T) {
	cases := Samples()
	report, err := Run(context.Background(), cases, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, report.Results, len(cases))
	for i, res := range report.Results {
		assert.Equal(t, cases[i], res.Case)
		assert.True(t, res.Pass, "%s %q: %s", res.Case.Name, res.Case.Expression, res.Reason)
	}
	assert.Equal(t, len(cases), report.Passed())
	assert.Empty(t, report.Failed())
	assert.NoError(t, report.Err())
}

func TestRunSequentialMatchesParallel(t *testing.T) {
	parallel, err := Run(context.Background(), Samples(), Options{Parallelism: 8})
	require.NoError(t, err)
	sequential, err := Run(context.Background(), Samples(), Options{Parallelism: 1})
	require.NoError(t, err)
	assert.Equal(t, sequential.Results, parallel.Results)
}

func TestRunReportsFailures(t *testing.T) {
	cases := []Case{
		{Name: "ok", Expression: "1+1", Want: 2},
		{Name: "wrong_value", Expression: "2+3*4", Want: 20},
		{Name: "unexpected_error", Expression: "1/0", Want: 1},
		{Name: "wrong_kind", Expression: "1+", WantError: "trailing_input"},
		{Name: "missing_error", Expression: "1", WantError: "lexical"},
	}
	report, err := Run(context.Background(), cases, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Passed())
	failed := report.Failed()
	require.Len(t, failed, 4)
	assert.Equal(t, "wrong_value", failed[0].Case.Name)
	assert.Equal(t, "got 14, want 20 (tolerance 0.0001)", failed[0].Reason)
	assert.Contains(t, failed[1].Reason, "division_by_zero")
	assert.Equal(t, "got error premature_end, want error trailing_input", failed[2].Reason)
	assert.Equal(t, "got 1, want error lexical", failed[3].Reason)

	var merr *multierror.Error
	require.ErrorAs(t, report.Err(), &merr)
	assert.Len(t, merr.Errors, 4)
}

func TestCaseTolerance(t *testing.T) {
	cases := []Case{
		{Name: "loose", Expression: "10/3", Want: 3.3, Tolerance: 0.02},
		{Name: "tight", Expression: "10/3", Want: 3.3},
		{Name: "zero", Expression: "0.00001 - 0.00001", Want: 0},
	}
	report, err := Run(context.Background(), cases, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, report.Results[0].Pass)
	assert.False(t, report.Results[1].Pass)
	assert.True(t, report.Results[2].Pass)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Samples(), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
