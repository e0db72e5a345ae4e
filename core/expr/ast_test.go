/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileString(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{"1+2*3", "(1 + (2 * 3))"},
		{"8/4/2", "((8 / 4) / 2)"},
		{"1 - 2 + 3", "((1 - 2) + 3)"},
		{"-(1+2)", "-(1 + 2)"},
		{"- -1", "--1"},
		{"((7))", "7"},
		{"2 * -3.50", "(2 * -3.50)"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			compiled, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, compiled.String())
			assert.Equal(t, tt.expr, compiled.Source())
		})
	}
}

func TestCompileMatchesEvaluate(t *testing.T) {
	for _, in := range []string{
		"-((6+4))* -(2+2) - -1",
		"6/5-4-45+3.08",
		"0.34+ -34/45-2",
		"(20-23 + -5 * (12 / (34 + 3) - 3))",
		"9 / 8/7 /6/5/4  /  3 /  2/1",
		"-( -(-( -(2+3*4)+2 )-1)+ 0)",
	} {
		t.Run(in, func(t *testing.T) {
			want, err := Evaluate(in)
			require.NoError(t, err)

			compiled, err := Compile(in)
			require.NoError(t, err)
			got, err := compiled.Eval()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCompileTree(t *testing.T) {
	compiled, err := Compile("1 - 2 * 3")
	require.NoError(t, err)

	root, ok := compiled.Root().(*BinaryOp)
	require.True(t, ok, "root is %T", compiled.Root())
	assert.Equal(t, byte('-'), root.Op)
	assert.Equal(t, 2, root.Pos)
	assert.Equal(t, &NumberLit{Value: 1, Text: "1", Pos: 0}, root.Left)

	right, ok := root.Right.(*BinaryOp)
	require.True(t, ok)
	assert.Equal(t, byte('*'), right.Op)
}

func TestCompileDivisionByZeroAtEval(t *testing.T) {
	compiled, err := Compile("3 + 1/0")
	require.NoError(t, err)

	_, err = compiled.Eval()
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrDivisionByZero, e.Kind)
	assert.Equal(t, 5, e.Pos)
}

func TestCompileErrors(t *testing.T) {
	for _, in := range []string{"", "(1+2", "1+", "1..2", "1 2"} {
		_, err := Compile(in)
		assert.Error(t, err, "%q", in)
	}
}
