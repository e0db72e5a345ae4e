/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

// Node is the interface for all AST nodes
type Node interface {
	node()
}

// NumberLit represents a numeric literal
type NumberLit struct {
	Value float64
	Text  string
	Pos   int
}

func (n *NumberLit) node() {}

// UnaryOp represents a negation
type UnaryOp struct {
	Op   byte
	Pos  int
	Expr Node
}

func (n *UnaryOp) node() {}

// BinaryOp represents a binary operation
type BinaryOp struct {
	Op    byte
	Pos   int
	Left  Node
	Right Node
}

func (n *BinaryOp) node() {}
