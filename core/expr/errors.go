/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import "fmt"

// ErrorKind classifies why an expression could not be evaluated.
type ErrorKind int

const (
	// ErrLexical is an unrecognized character outside any token.
	ErrLexical ErrorKind = iota + 1
	// ErrUnexpectedToken is a token of the wrong kind for its position.
	ErrUnexpectedToken
	// ErrPrematureEnd is end of input where a value or ')' was required.
	ErrPrematureEnd
	// ErrTrailingInput is input left over after a complete expression.
	ErrTrailingInput
	// ErrDivisionByZero is a division whose right operand is zero.
	ErrDivisionByZero
	// ErrMalformedLiteral is a number with a second '.' or a stray character.
	ErrMalformedLiteral
	// ErrOverflow is a literal or intermediate result too large for a float64.
	ErrOverflow
	// ErrTooDeep is nesting of parentheses or unary minus past maxDepth.
	ErrTooDeep
)

var errorKindNames = map[ErrorKind]string{
	ErrLexical:          "lexical",
	ErrUnexpectedToken:  "unexpected_token",
	ErrPrematureEnd:     "premature_end",
	ErrTrailingInput:    "trailing_input",
	ErrDivisionByZero:   "division_by_zero",
	ErrMalformedLiteral: "malformed_literal",
	ErrOverflow:         "overflow",
	ErrTooDeep:          "too_deep",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error implements error so a kind can be used as an errors.Is target.
func (k ErrorKind) Error() string {
	return k.String()
}

// ParseErrorKind maps a name produced by ErrorKind.String back to its kind.
func ParseErrorKind(name string) (ErrorKind, error) {
	for k, n := range errorKindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown error kind %q", name)
}

// Error describes a failed evaluation.
type Error struct {
	Kind ErrorKind
	// Pos is the byte offset of the offending token or character.
	Pos int
	// Token is the offending text, empty at end of input.
	Token string
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Pos, e.Msg)
}

// Is lets errors.Is match an *Error against its ErrorKind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func newError(kind ErrorKind, tok Token, format string, args ...any) *Error {
	return &Error{
		Kind:  kind,
		Pos:   tok.Pos,
		Token: tok.Value,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// unexpected builds the error for tok appearing where want was required.
// Error and end-of-input tokens keep their own kinds.
func unexpected(tok Token, want string) *Error {
	switch tok.Type {
	case TOKEN_ERROR:
		return newError(ErrLexical, tok, "unexpected character %q", tok.Value)
	case TOKEN_EOF:
		return newError(ErrPrematureEnd, tok, "expected %s, got end of expression", want)
	}
	return newError(ErrUnexpectedToken, tok, "expected %s, got %s %q", want, tok.Type, tok.Value)
}
