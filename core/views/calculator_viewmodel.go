/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package views

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/arith/core/expr"
	"github.com/google/arith/core/suite"
	"github.com/google/safehtml"
)

// CalculatorViewModel contains everything the calculator page displays
type CalculatorViewModel struct {
	Title      string
	Expression string // Submitted expression, empty on first load
	Evaluated  bool   // True if an expression was submitted
	Value      string // Formatted result when evaluation succeeded
	Tree       string // Fully parenthesized form of the expression
	Tokens     []TokenInfo
	Error      *ErrorInfo

	// Sample suite
	Samples       []SampleRow
	SamplesPassed int
	SamplesTotal  int
}

// TokenInfo is one token of the submitted expression
type TokenInfo struct {
	Type  string
	Value string
	Pos   int
}

// ErrorInfo describes why the submitted expression was rejected
type ErrorInfo struct {
	Kind    string
	Message string
	Pos     int
	Marker  string // Caret under the offending position
}

// SampleRow is one case of the sample suite
type SampleRow struct {
	Name       string
	Expression string
	Got        string
	Want       string
	Pass       bool
	Reason     string
	EvalURL    safehtml.URL // Link that loads the expression into the calculator
}

// FormatValue renders a result the way the page and API show it.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// NewErrorInfo converts an evaluation error for display.
func NewErrorInfo(err error) *ErrorInfo {
	info := &ErrorInfo{Kind: "error", Message: err.Error()}
	var e *expr.Error
	if errors.As(err, &e) {
		info.Kind = e.Kind.String()
		info.Message = e.Msg
		info.Pos = e.Pos
		info.Marker = strings.Repeat(" ", e.Pos) + "^"
	}
	return info
}

// CompileFunc compiles an expression, typically through a cache.
type CompileFunc func(source string) (*expr.Expression, error)

// BuildCalculatorViewModel evaluates the submitted expression, if any, and
// lays out the sample report. A nil compile uses expr.Compile.
func BuildCalculatorViewModel(title, expression string, evaluated bool, compile CompileFunc, report *suite.Report) CalculatorViewModel {
	vm := CalculatorViewModel{
		Title:      title,
		Expression: expression,
		Evaluated:  evaluated,
	}
	if compile == nil {
		compile = expr.Compile
	}

	if evaluated {
		for _, tok := range expr.Tokenize(expression) {
			vm.Tokens = append(vm.Tokens, TokenInfo{Type: tok.Type.String(), Value: tok.Value, Pos: tok.Pos})
		}
		compiled, err := compile(expression)
		if err == nil {
			vm.Tree = compiled.String()
			var v float64
			if v, err = compiled.Eval(); err == nil {
				vm.Value = FormatValue(v)
			}
		}
		if err != nil {
			vm.Error = NewErrorInfo(err)
		}
	}

	if report != nil {
		vm.SamplesTotal = len(report.Results)
		vm.SamplesPassed = report.Passed()
		for _, res := range report.Results {
			row := SampleRow{
				Name:       res.Case.Name,
				Expression: res.Case.Expression,
				Want:       res.Case.WantError,
				Pass:       res.Pass,
				Reason:     res.Reason,
				EvalURL:    safehtml.URLSanitized("?expr=" + url.QueryEscape(res.Case.Expression)),
			}
			if row.Want == "" {
				row.Want = FormatValue(res.Case.Want)
			}
			if res.Err != nil {
				row.Got = NewErrorInfo(res.Err).Kind
			} else {
				row.Got = FormatValue(res.Got)
			}
			vm.Samples = append(vm.Samples, row)
		}
	}
	return vm
}
