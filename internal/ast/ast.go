// Package ast defines the Lumina abstract syntax tree: source locations,
// declarations, expressions, statements, patterns, and type expressions.
package ast

import (
	"fmt"
	"strings"
)

// Point is one endpoint of a Location: a 1-based line/column and a
// 0-based byte offset into the source file.
type Point struct {
	Line   int
	Column int
	Offset int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is a half-open source range used for diagnostics and
// source-map emission.
type Location struct {
	Start Point
	End   Point
}

func (l Location) String() string {
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}

// Node is the base interface implemented by every AST node that carries
// a source Location.
type Node interface {
	Loc() Location
}

// Program is an ordered sequence of top-level declarations. The first
// declaration named "main" is the entry point.
type Program struct {
	Decls    []Decl
	Location Location
}

func (p *Program) Loc() Location { return p.Location }

// MainFunc returns the first top-level FuncDecl named "main", if any.
func (p *Program) MainFunc() *FuncDecl {
	for _, d := range p.Decls {
		if fn, ok := d.(*FuncDecl); ok && fn.Name == "main" {
			return fn
		}
	}
	return nil
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// TypeParam is a generic type or const parameter on a declaration.
type TypeParam struct {
	Name    string
	IsConst bool // true for `const N` parameters
}

func (tp TypeParam) String() string {
	if tp.IsConst {
		return "const " + tp.Name
	}
	return tp.Name
}

// FuncDecl is a function declaration, generic or not.
type FuncDecl struct {
	Name       string
	IsPublic   bool
	TypeParams []TypeParam
	Params     []*Param
	ReturnType TypeExpr
	Body       *BlockStmt
	Location   Location
}

func (f *FuncDecl) Loc() Location { return f.Location }
func (f *FuncDecl) declNode()     {}

// Param is a single function parameter.
type Param struct {
	Name     string
	Type     TypeExpr
	Location Location
}

// StructField is a single field of a struct declaration.
type StructField struct {
	Name     string
	Type     TypeExpr
	Location Location
}

// StructDecl declares a struct type, optionally generic over type and
// const parameters.
type StructDecl struct {
	Name       string
	IsPublic   bool
	TypeParams []TypeParam
	Fields     []*StructField
	Location   Location
}

func (s *StructDecl) Loc() Location { return s.Location }
func (s *StructDecl) declNode()     {}

// EnumVariant is one constructor of an enum, with an optional payload
// (a tuple of types; empty means no payload).
type EnumVariant struct {
	Name     string
	Payload  []TypeExpr
	Location Location
}

// EnumDecl declares a tagged-union enum type.
type EnumDecl struct {
	Name       string
	IsPublic   bool
	TypeParams []TypeParam
	Variants   []*EnumVariant
	Location   Location
}

func (e *EnumDecl) Loc() Location { return e.Location }
func (e *EnumDecl) declNode()     {}

// TypeAliasDecl declares `type Name<...> = Type`.
type TypeAliasDecl struct {
	Name       string
	IsPublic   bool
	TypeParams []TypeParam
	Target     TypeExpr
	Location   Location
}

func (t *TypeAliasDecl) Loc() Location { return t.Location }
func (t *TypeAliasDecl) declNode()     {}

// TraitMethodSig is a method signature declared by a trait, with no
// body.
type TraitMethodSig struct {
	Name       string
	Params     []*Param
	ReturnType TypeExpr
	Location   Location
}

// TraitDecl declares a trait (a named set of method signatures).
type TraitDecl struct {
	Name     string
	IsPublic bool
	Methods  []*TraitMethodSig
	Location Location
}

func (t *TraitDecl) Loc() Location { return t.Location }
func (t *TraitDecl) declNode()     {}

// ImplDecl implements a trait for a concrete type.
type ImplDecl struct {
	TraitName string
	ForType   TypeExpr
	Methods   []*FuncDecl
	Location  Location
}

func (i *ImplDecl) Loc() Location { return i.Location }
func (i *ImplDecl) declNode()     {}

// ImportDecl imports names from another module.
type ImportDecl struct {
	Names    []string // empty means import the whole module under its path
	Path     string
	Location Location
}

func (i *ImportDecl) Loc() Location { return i.Location }
func (i *ImportDecl) declNode()     {}

// TopLevelLetDecl is a top-level `let` binding.
type TopLevelLetDecl struct {
	Name     string
	IsPublic bool
	Type     TypeExpr
	Value    Expr
	Location Location
}

func (l *TopLevelLetDecl) Loc() Location { return l.Location }
func (l *TopLevelLetDecl) declNode()     {}

// ErrorDecl is a placeholder inserted by panic-mode recovery in place
// of a declaration that failed to parse. LowerProgram skips it, so it
// produces no IR.
type ErrorDecl struct {
	Location Location
}

func (e *ErrorDecl) Loc() Location { return e.Location }
func (e *ErrorDecl) declNode()     {}

// String renders the top-level declaration shape of a program; used
// only for debug dumps, never by codegen.
func (p *Program) String() string {
	parts := make([]string, 0, len(p.Decls))
	for _, d := range p.Decls {
		parts = append(parts, fmt.Sprintf("%T", d))
	}
	return strings.Join(parts, "\n")
}
