/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

// scan reads the token starting at or after pos and returns it together
// with the offset just past it. It never looks behind pos.
func scan(input string, pos int) (Token, int) {
	pos = skipWhitespace(input, pos)
	if pos >= len(input) {
		return Token{Type: TOKEN_EOF, Pos: pos}, pos
	}

	ch := input[pos]
	switch {
	case isOperator(ch):
		return Token{Type: TOKEN_OPERATOR, Value: input[pos : pos+1], Pos: pos}, pos + 1
	case ch == '(':
		return Token{Type: TOKEN_LPAREN, Value: "(", Pos: pos}, pos + 1
	case ch == ')':
		return Token{Type: TOKEN_RPAREN, Value: ")", Pos: pos}, pos + 1
	case isDigit(ch):
		// Extra dots are accepted here and rejected by parseLiteral.
		end := pos
		for end < len(input) && (isDigit(input[end]) || input[end] == '.') {
			end++
		}
		return Token{Type: TOKEN_NUMBER, Value: input[pos:end], Pos: pos}, end
	}

	// The cursor stays on the bad character; the error ends the evaluation.
	return Token{Type: TOKEN_ERROR, Value: input[pos : pos+1], Pos: pos}, pos
}

// peekChar returns the next non-whitespace byte at or after pos, or 0 at
// end of input.
func peekChar(input string, pos int) byte {
	pos = skipWhitespace(input, pos)
	if pos >= len(input) {
		return 0
	}
	return input[pos]
}

func skipWhitespace(input string, pos int) int {
	for pos < len(input) && (input[pos] == ' ' || input[pos] == '\t' || input[pos] == '\n') {
		pos++
	}
	return pos
}

// Lexer tokenizes an expression string
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	tok, pos := scan(l.input, l.pos)
	l.pos = pos
	return tok
}

// Peek returns the next non-whitespace character without consuming it.
// It returns 0 at end of input.
func (l *Lexer) Peek() byte {
	return peekChar(l.input, l.pos)
}

// Pos returns the current scan offset.
func (l *Lexer) Pos() int {
	return l.pos
}

// Tokenize returns every token of input up to and including the first
// error or end-of-input token.
func Tokenize(input string) []Token {
	var tokens []Token
	l := NewLexer(input)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF || tok.Type == TOKEN_ERROR {
			return tokens
		}
	}
}

func isOperator(ch byte) bool {
	return ch == '+' || ch == '-' || ch == '*' || ch == '/'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
