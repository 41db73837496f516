// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FormGear Authors

package expr

// node is an expression tree node.
type node interface {
	exprNode()
}

type numberLit struct{ value float64 }

type stringLit struct{ value string }

type boolLit struct{ value bool }

type nullLit struct{}

type undefinedLit struct{}

type ident struct{ name string }

type arrayLit struct{ elems []node }

type unaryExpr struct {
	op string
	x  node
}

type binaryExpr struct {
	op   string
	l, r node
}

type conditionalExpr struct {
	cond, then, alt node
}

// memberExpr is property access: x.name
type memberExpr struct {
	x    node
	name string
}

// indexExpr is computed access: x[index]
type indexExpr struct {
	x     node
	index node
}

type callExpr struct {
	callee node
	args   []node
}

func (numberLit) exprNode()       {}
func (stringLit) exprNode()       {}
func (boolLit) exprNode()         {}
func (nullLit) exprNode()         {}
func (undefinedLit) exprNode()    {}
func (ident) exprNode()           {}
func (arrayLit) exprNode()        {}
func (unaryExpr) exprNode()       {}
func (binaryExpr) exprNode()      {}
func (conditionalExpr) exprNode() {}
func (memberExpr) exprNode()      {}
func (indexExpr) exprNode()       {}
func (callExpr) exprNode()        {}
