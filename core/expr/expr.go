/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Package expr evaluates arithmetic expressions.
It supports:
  - Number literals: 123, 3.14
  - Binary operators: +, -, *, /
  - Unary minus: -5, -(1 + 2), - -1
  - Parentheses, nested to any depth
  - Spaces, tabs and newlines between tokens

* and / bind tighter than + and -, and operators of equal precedence
combine left to right. Evaluate computes the value while parsing; Compile
keeps the parse as a tree that can be printed and evaluated repeatedly.

Invalid input is reported as an *Error carrying an ErrorKind and the byte
offset of the offending token.
*/
package expr

import (
	"strings"
)

// Evaluate parses and evaluates an expression string.
func Evaluate(source string) (float64, error) {
	return newParser[float64](source, valueBuilder{}).parse()
}

// Evaluate32 is Evaluate narrowed to single precision. Accumulation is
// still done in float64.
func Evaluate32(source string) (float32, error) {
	v, err := Evaluate(source)
	return float32(v), err
}

// MustEvaluate is like Evaluate but panics if the expression is invalid.
func MustEvaluate(source string) float64 {
	v, err := Evaluate(source)
	if err != nil {
		panic("expr: " + source + ": " + err.Error())
	}
	return v
}

// Expression represents a compiled expression ready for evaluation
type Expression struct {
	source string
	root   Node
}

// Compile parses an expression string into a tree. Division by zero is
// only detected by Eval.
func Compile(source string) (*Expression, error) {
	root, err := newParser[Node](source, treeBuilder{}).parse()
	if err != nil {
		return nil, err
	}
	return &Expression{source: source, root: root}, nil
}

// Eval evaluates the compiled tree.
func (e *Expression) Eval() (float64, error) {
	return evalNode(e.root)
}

// Source returns the original expression source
func (e *Expression) Source() string {
	return e.source
}

// Root returns the top node of the tree.
func (e *Expression) Root() Node {
	return e.root
}

// String returns the expression with every binary operation parenthesized.
func (e *Expression) String() string {
	var sb strings.Builder
	formatNode(&sb, e.root)
	return sb.String()
}
