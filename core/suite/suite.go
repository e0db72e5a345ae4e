/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

// Package suite loads and runs lists of expressions with reference answers.
// Suites can be written as CSV or as textproto and are checked against
// expr.Evaluate.
package suite

import (
	"fmt"
	"math"

	"github.com/google/arith/core/expr"
)

// DefaultTolerance is the relative error accepted when a case does not set
// its own. Reference answers are usually rounded to a few digits.
const DefaultTolerance = 1e-4

// Case is one expression and the outcome it should produce.
type Case struct {
	Name       string
	Expression string
	// Want is the expected value; ignored when WantError is set.
	Want float64
	// Tolerance overrides DefaultTolerance when positive.
	Tolerance float64
	// WantError is the expected expr.ErrorKind name, e.g. "division_by_zero".
	WantError string
}

// validate checks that the case can be run.
func (c Case) validate() error {
	if c.WantError != "" {
		if _, err := expr.ParseErrorKind(c.WantError); err != nil {
			return fmt.Errorf("case %q: %w", c.Name, err)
		}
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return fmt.Errorf("case %q: invalid tolerance %v", c.Name, c.Tolerance)
	}
	return nil
}

// Samples returns the built-in suite: the classic sample expressions with
// their rounded answers, followed by inputs that must be rejected.
func Samples() []Case {
	cases := []Case{
		{Expression: "-((6+4))* -(2+2) - -1", Want: 41},
		{Expression: "6/5-4-45+3.08", Want: -44.72},
		{Expression: "0.34+ -34/45-2", Want: -2.41556},
		{Expression: "(0.03)*73-2", Want: 0.19},
		{Expression: "(20-23 + -5 * (12 / (34 + 3) - 3))", Want: 10.3784},
		{Expression: "-25 + 4 * -(32 - 45 / 5 - -6)", Want: -141},
		{Expression: "0.0003101 - 34 * (4 + 5) / 23", Want: -13.3040},
		{Expression: "1 + ((1 + 1) + 3) + 4 * 5 / 6 - 7", Want: 2.33333},
		{Expression: "9 / 8/7 /6/5/4  /  3 /  2/1", Want: 0.00022321},
		{Expression: "-( -(-( -(2+3*4)+2 )-1)+ 0)", Want: 11},
		{Expression: "2+3*4", Want: 14},
		{Expression: "8/4/2", Want: 1},
		{Expression: "1/0", WantError: expr.ErrDivisionByZero.String()},
		{Expression: "", WantError: expr.ErrPrematureEnd.String()},
		{Expression: "(1+2", WantError: expr.ErrPrematureEnd.String()},
		{Expression: "1+", WantError: expr.ErrPrematureEnd.String()},
		{Expression: "1..2", WantError: expr.ErrMalformedLiteral.String()},
		{Expression: "1 2", WantError: expr.ErrTrailingInput.String()},
		{Expression: "2 # 3", WantError: expr.ErrLexical.String()},
		{Expression: "*3", WantError: expr.ErrUnexpectedToken.String()},
	}
	for i := range cases {
		cases[i].Name = fmt.Sprintf("sample_%d", i)
	}
	return cases
}
