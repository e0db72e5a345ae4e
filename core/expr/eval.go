/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"fmt"
	"strings"
)

// evalNode computes the value of a compiled tree.
func evalNode(n Node) (float64, error) {
	switch n := n.(type) {
	case *NumberLit:
		return n.Value, nil
	case *UnaryOp:
		v, err := evalNode(n.Expr)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case *BinaryOp:
		left, err := evalNode(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := evalNode(n.Right)
		if err != nil {
			return 0, err
		}
		return apply(Token{Type: TOKEN_OPERATOR, Value: string(n.Op), Pos: n.Pos}, left, right)
	}
	return 0, fmt.Errorf("unknown node type %T", n)
}

// formatNode writes n fully parenthesized, so the grouping the parser chose
// is visible.
func formatNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *NumberLit:
		sb.WriteString(n.Text)
	case *UnaryOp:
		sb.WriteByte('-')
		formatNode(sb, n.Expr)
	case *BinaryOp:
		sb.WriteByte('(')
		formatNode(sb, n.Left)
		sb.WriteByte(' ')
		sb.WriteByte(n.Op)
		sb.WriteByte(' ')
		formatNode(sb, n.Right)
		sb.WriteByte(')')
	}
}
