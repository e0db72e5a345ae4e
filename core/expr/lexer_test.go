/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexer(t *testing.T) {
	testCases := []struct {
		input  string
		tokens []Token
	}{
		{
			input: "1+2",
			tokens: []Token{
				{TOKEN_NUMBER, "1", 0},
				{TOKEN_OPERATOR, "+", 1},
				{TOKEN_NUMBER, "2", 2},
				{TOKEN_EOF, "", 3},
			},
		},
		{
			input: " ( 3.25 *\t-7 )\n",
			tokens: []Token{
				{TOKEN_LPAREN, "(", 1},
				{TOKEN_NUMBER, "3.25", 3},
				{TOKEN_OPERATOR, "*", 8},
				{TOKEN_OPERATOR, "-", 10},
				{TOKEN_NUMBER, "7", 11},
				{TOKEN_RPAREN, ")", 13},
				{TOKEN_EOF, "", 15},
			},
		},
		{
			input: "1..2/",
			tokens: []Token{
				{TOKEN_NUMBER, "1..2", 0},
				{TOKEN_OPERATOR, "/", 4},
				{TOKEN_EOF, "", 5},
			},
		},
		{
			input: "12 x 3",
			tokens: []Token{
				{TOKEN_NUMBER, "12", 0},
				{TOKEN_ERROR, "x", 3},
			},
		},
		{
			input: "",
			tokens: []Token{
				{TOKEN_EOF, "", 0},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.tokens, Tokenize(tc.input))
		})
	}
}

func TestLexerErrorDoesNotAdvance(t *testing.T) {
	l := NewLexer("?1")
	tok := l.NextToken()
	assert.Equal(t, TOKEN_ERROR, tok.Type)
	assert.Equal(t, 0, l.Pos())
	assert.Equal(t, tok, l.NextToken())
}

func TestLexerPeek(t *testing.T) {
	l := NewLexer("7 \t\n* 2")
	assert.Equal(t, byte('7'), l.Peek())

	l.NextToken()
	pos := l.Pos()
	assert.Equal(t, byte('*'), l.Peek())
	assert.Equal(t, byte('*'), l.Peek())
	assert.Equal(t, pos, l.Pos(), "Peek must not move the cursor")

	assert.Equal(t, TOKEN_OPERATOR, l.NextToken().Type)
	assert.Equal(t, TOKEN_NUMBER, l.NextToken().Type)
	assert.Equal(t, byte(0), l.Peek())
	assert.Equal(t, TOKEN_EOF, l.NextToken().Type)
	assert.Equal(t, TOKEN_EOF, l.NextToken().Type)
}

func TestScanIsPure(t *testing.T) {
	const input = "(4 - 1)"
	tok, next := scan(input, 2)
	assert.Equal(t, Token{TOKEN_OPERATOR, "-", 3}, tok)
	assert.Equal(t, 4, next)

	again, againNext := scan(input, 2)
	assert.Equal(t, tok, again)
	assert.Equal(t, next, againNext)

	assert.Equal(t, byte(')'), peekChar(input, 6))
	assert.Equal(t, byte(0), peekChar(input, 7))
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, `number "3.5" at 2`, Token{TOKEN_NUMBER, "3.5", 2}.String())
	assert.Equal(t, "end of input", Token{Type: TOKEN_EOF, Pos: 9}.String())
	assert.Equal(t, "TokenType(99)", TokenType(99).String())
	assert.Equal(t, 5, Token{TOKEN_NUMBER, "3.5", 2}.End())
}
