/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	TOKEN_NUMBER TokenType = iota
	TOKEN_OPERATOR
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_ERROR
	TOKEN_EOF
)

var tokenTypeNames = [...]string{
	TOKEN_NUMBER:   "number",
	TOKEN_OPERATOR: "operator",
	TOKEN_LPAREN:   "'('",
	TOKEN_RPAREN:   "')'",
	TOKEN_ERROR:    "error",
	TOKEN_EOF:      "end of input",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

// Token represents a lexical token. Value is the slice of the input it
// covers and Pos its byte offset.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// End returns the offset just past the token.
func (t Token) End() int {
	return t.Pos + len(t.Value)
}

// isOp reports whether the token is the operator op.
func (t Token) isOp(op byte) bool {
	return t.Type == TOKEN_OPERATOR && len(t.Value) == 1 && t.Value[0] == op
}

func (t Token) String() string {
	if t.Type == TOKEN_EOF {
		return t.Type.String()
	}
	return fmt.Sprintf("%s %q at %d", t.Type, t.Value, t.Pos)
}
