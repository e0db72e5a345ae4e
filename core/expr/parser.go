/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"fmt"
	"math"
)

// builder receives the parse as it happens. valueBuilder folds it straight
// into a number; treeBuilder records it as an AST.
type builder[T any] interface {
	number(tok Token, v float64) T
	negate(minus Token, x T) T
	binary(op Token, left, right T) (T, error)
}

// parser is a predictive recursive-descent parser with one token of
// lookahead. cur is always the most recently consumed token; the looping
// levels decide whether to continue by peeking at the raw input.
type parser[T any] struct {
	lexer *Lexer
	cur   Token
	b     builder[T]
	depth int
}

// maxDepth bounds nested parentheses and chained unary minus, so deep
// input is rejected before it can exhaust the goroutine stack.
const maxDepth = 10000

func newParser[T any](input string, b builder[T]) *parser[T] {
	return &parser[T]{lexer: NewLexer(input), b: b}
}

func (p *parser[T]) advance() {
	p.cur = p.lexer.NextToken()
}

// enter records one more level of nesting at tok. Every successful enter is
// paired with a leave.
func (p *parser[T]) enter(tok Token) error {
	if p.depth >= maxDepth {
		return newError(ErrTooDeep, tok, "nesting deeper than %d levels", maxDepth)
	}
	p.depth++
	return nil
}

func (p *parser[T]) leave() {
	p.depth--
}

// Grammar (precedence low to high):
//
//	Sum     -> Product (('+'|'-') Product)*
//	Product -> Unary (('*'|'/') Unary)*
//	Unary   -> '-' Atom | Atom
//	Atom    -> '(' Sum ')' | Number

// parse evaluates the whole input and requires it to be fully consumed.
func (p *parser[T]) parse() (T, error) {
	var zero T
	p.advance()
	if p.cur.Type == TOKEN_ERROR || p.cur.Type == TOKEN_EOF {
		return zero, unexpected(p.cur, "an expression")
	}

	v, err := p.parseSum()
	if err != nil {
		return zero, err
	}

	p.advance()
	switch p.cur.Type {
	case TOKEN_EOF:
		return v, nil
	case TOKEN_ERROR:
		return zero, unexpected(p.cur, "end of expression")
	}
	return zero, newError(ErrTrailingInput, p.cur, "unexpected %s %q after complete expression", p.cur.Type, p.cur.Value)
}

func (p *parser[T]) parseSum() (T, error) {
	left, err := p.parseProduct()
	if err != nil {
		return left, err
	}

	for c := p.lexer.Peek(); c == '+' || c == '-'; c = p.lexer.Peek() {
		op, err := p.consumeOperator()
		if err != nil {
			return left, err
		}
		right, err := p.parseProduct()
		if err != nil {
			return left, err
		}
		if left, err = p.b.binary(op, left, right); err != nil {
			return left, err
		}
	}
	return left, nil
}

func (p *parser[T]) parseProduct() (T, error) {
	left, err := p.parseUnary()
	if err != nil {
		return left, err
	}

	for c := p.lexer.Peek(); c == '*' || c == '/'; c = p.lexer.Peek() {
		op, err := p.consumeOperator()
		if err != nil {
			return left, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return left, err
		}
		if left, err = p.b.binary(op, left, right); err != nil {
			return left, err
		}
	}
	return left, nil
}

// consumeOperator reads the operator announced by Peek and moves onto the
// first token of the right operand.
func (p *parser[T]) consumeOperator() (Token, error) {
	p.advance()
	if p.cur.Type != TOKEN_OPERATOR {
		return Token{}, unexpected(p.cur, "an operator")
	}
	op := p.cur
	p.advance()
	return op, nil
}

func (p *parser[T]) parseUnary() (T, error) {
	var zero T
	if p.cur.isOp('-') {
		minus := p.cur
		if err := p.enter(minus); err != nil {
			return zero, err
		}
		defer p.leave()
		p.advance()
		if p.cur.Type == TOKEN_ERROR || p.cur.Type == TOKEN_EOF {
			return zero, unexpected(p.cur, "an operand after '-'")
		}
		v, err := p.parseAtom()
		if err != nil {
			return zero, err
		}
		return p.b.negate(minus, v), nil
	}

	if p.cur.Type == TOKEN_OPERATOR {
		return zero, unexpected(p.cur, "a number or '('")
	}
	return p.parseAtom()
}

func (p *parser[T]) parseAtom() (T, error) {
	var zero T
	switch {
	case p.cur.Type == TOKEN_LPAREN:
		open := p.cur
		if err := p.enter(open); err != nil {
			return zero, err
		}
		defer p.leave()
		p.advance()
		if p.cur.Type == TOKEN_ERROR || p.cur.Type == TOKEN_EOF {
			return zero, unexpected(p.cur, "an expression after '('")
		}
		v, err := p.parseSum()
		if err != nil {
			return zero, err
		}
		p.advance()
		if p.cur.Type != TOKEN_RPAREN {
			return zero, unexpected(p.cur, fmt.Sprintf("')' to close '(' at position %d", open.Pos))
		}
		return v, nil

	case p.cur.Type == TOKEN_NUMBER:
		v, err := parseLiteral(p.cur)
		if err != nil {
			return zero, err
		}
		return p.b.number(p.cur, v), nil

	case p.cur.isOp('-'):
		// A minus directly after another unary minus, as in "- -1".
		return p.parseUnary()
	}
	return zero, unexpected(p.cur, "a number or '('")
}

// valueBuilder evaluates while parsing; no tree is built.
type valueBuilder struct{}

func (valueBuilder) number(_ Token, v float64) float64 { return v }

func (valueBuilder) negate(_ Token, x float64) float64 { return -x }

func (valueBuilder) binary(op Token, left, right float64) (float64, error) {
	return apply(op, left, right)
}

// apply combines two operands with a binary operator token. A result too
// large for a float64 is an error at the operator.
func apply(op Token, left, right float64) (float64, error) {
	var v float64
	switch op.Value {
	case "+":
		v = left + right
	case "-":
		v = left - right
	case "*":
		v = left * right
	case "/":
		if right == 0 {
			return 0, newError(ErrDivisionByZero, op, "division by zero")
		}
		v = left / right
	default:
		return 0, newError(ErrUnexpectedToken, op, "unknown operator %q", op.Value)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, newError(ErrOverflow, op, "result of %g %s %g is out of range", left, op.Value, right)
	}
	return v, nil
}

// treeBuilder records the parse as an AST.
type treeBuilder struct{}

func (treeBuilder) number(tok Token, v float64) Node {
	return &NumberLit{Value: v, Text: tok.Value, Pos: tok.Pos}
}

func (treeBuilder) negate(minus Token, x Node) Node {
	return &UnaryOp{Op: '-', Pos: minus.Pos, Expr: x}
}

func (treeBuilder) binary(op Token, left, right Node) (Node, error) {
	return &BinaryOp{Op: op.Value[0], Pos: op.Pos, Left: left, Right: right}, nil
}
