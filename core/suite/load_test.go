/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package suite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `# reference values
expression,want,name,want_error,tolerance
2+3*4,14,precedence,,
"8 / 4 / 2",1,,,
1/0,,,division_by_zero,
10/3,3.3,,,0.02
`

const testTextproto = `
case {
  name: "precedence"
  expression: "2+3*4"
  want: 14
}
case {
  expression: "1/0"
  want_error: "division_by_zero"
}
`

func TestLoadCSV(t *testing.T) {
	cases, err := LoadCSV(strings.NewReader(testCSV), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []Case{
		{Name: "precedence", Expression: "2+3*4", Want: 14},
		{Name: "row_2", Expression: "8 / 4 / 2", Want: 1},
		{Name: "row_3", Expression: "1/0", WantError: "division_by_zero"},
		{Name: "row_4", Expression: "10/3", Want: 3.3, Tolerance: 0.02},
	}, cases)
}

func TestLoadCSVDelimiter(t *testing.T) {
	cases, err := LoadCSV(strings.NewReader("name;expression;want\nsemi;1 + 1;2\n"), CSVOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, []Case{{Name: "semi", Expression: "1 + 1", Want: 2}}, cases)
}

func TestLoadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"empty":              "",
		"no expression":      "name,want\na,1\n",
		"missing want":       "expression,want\n1+1,\n",
		"bad want":           "expression,want\n1+1,two\n",
		"unknown kind":       "expression,want_error\n1/0,overflow\n",
		"negative tolerance": "expression,want,tolerance\n1,1,-1\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(in), CSVOptions{})
			assert.Error(t, err)
		})
	}
}

func TestLoadTextproto(t *testing.T) {
	cases, err := LoadTextproto([]byte(testTextproto))
	require.NoError(t, err)
	assert.Equal(t, []Case{
		{Name: "precedence", Expression: "2+3*4", Want: 14},
		{Name: "case_1", Expression: "1/0", WantError: "division_by_zero"},
	}, cases)
}

func TestLoadTextprotoErrors(t *testing.T) {
	_, err := LoadTextproto([]byte(`case { expresion: "1" }`))
	assert.Error(t, err)

	_, err = LoadTextproto([]byte(`case { expression: "1/0" want_error: "boom" }`))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	l, err := NewLoader()
	require.NoError(t, err)

	data, err := l.Marshal(Samples())
	require.NoError(t, err)

	msg, err := l.ParseTextproto(data)
	require.NoError(t, err)
	cases, err := l.Cases(msg)
	require.NoError(t, err)
	assert.Equal(t, Samples(), cases)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "cases.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o644))
	tpPath := filepath.Join(dir, "cases.textproto")
	require.NoError(t, os.WriteFile(tpPath, []byte(testTextproto), 0o644))

	cases, err := LoadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, cases, 4)

	cases, err = LoadFile(tpPath)
	require.NoError(t, err)
	assert.Len(t, cases, 2)

	_, err = LoadFile(filepath.Join(dir, "cases.json"))
	assert.ErrorContains(t, err, "unsupported suite format")

	_, err = LoadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
