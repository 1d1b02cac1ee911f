package ast

import (
	"fmt"
	"strings"
)

// TypeExpr is a type as written in source: a named (possibly
// parameterized) type, a hole, or an array type with a const-expr size.
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedType is `Name<Arg1, Arg2, ...>`. Args is empty for a
// non-parameterized name.
type NamedType struct {
	Name     string
	Args     []TypeExpr
	Location Location
}

func (n *NamedType) Loc() Location  { return n.Location }
func (n *NamedType) typeExprNode() {}

func (n *NamedType) String() string {
	if len(n.Args) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("%s<%s>", n.Name, strings.Join(parts, ","))
}

// ConstArgType wraps a const-expression used in a type-argument
// position, e.g. the `3` in `Vec<i32, 3>`.
type ConstArgType struct {
	Value    ConstExpr
	Location Location
}

func (c *ConstArgType) Loc() Location  { return c.Location }
func (c *ConstArgType) typeExprNode() {}

// HoleType is the `_` type placeholder, resolved by inference.
type HoleType struct {
	Location Location
}

func (h *HoleType) Loc() Location  { return h.Location }
func (h *HoleType) typeExprNode() {}

// ArrayType is `[Element; Size]`, where Size is a const-expression.
type ArrayType struct {
	Element  TypeExpr
	Size     ConstExpr
	Location Location
}

func (a *ArrayType) Loc() Location  { return a.Location }
func (a *ArrayType) typeExprNode() {}

// ConstExpr is a compile-time integer expression: a literal, a
// reference to a bound const parameter, or a binary operation over two
// const-expressions.
type ConstExpr interface {
	Node
	constExprNode()
}

// ConstInt is an integer literal in a const-expression.
type ConstInt struct {
	Value    int64
	Location Location
}

func (c *ConstInt) Loc() Location   { return c.Location }
func (c *ConstInt) constExprNode() {}

// ConstParamRef references a const generic parameter by name.
type ConstParamRef struct {
	Name     string
	Location Location
}

func (c *ConstParamRef) Loc() Location   { return c.Location }
func (c *ConstParamRef) constExprNode() {}

// ConstBinary is a binary arithmetic operation over two const-expressions.
// Op is one of "+", "-", "*", "/".
type ConstBinary struct {
	Op       string
	Left     ConstExpr
	Right    ConstExpr
	Location Location
}

func (c *ConstBinary) Loc() Location   { return c.Location }
func (c *ConstBinary) constExprNode() {}
