// Package types implements the Lumina type system:
// type terms, a global substitution, pruning/normalization, and
// const-expression evaluation. Monomorphization (internal/mono) and the
// semantic analyzer (internal/sema) are built on top of this package.
package types

import (
	"fmt"
	"strings"
)

// Type is the discriminated sum of type terms: primitive,
// adt, array, function, variable, promise, row, hole.
type Type interface {
	String() string
	typeTerm()
}

// Primitive is one of the builtin scalar/void/any types.
type Primitive struct {
	Name string
}

func (p *Primitive) typeTerm() {}
func (p *Primitive) String() string { return p.Name }

// ADT is a named algebraic data type with type and const arguments.
type ADT struct {
	Name      string
	Params    []Type
	ConstArgs []ConstValue // evaluated const arguments, when known
}

func (a *ADT) typeTerm() {}
func (a *ADT) String() string {
	if len(a.Params) == 0 && len(a.ConstArgs) == 0 {
		return a.Name
	}
	parts := make([]string, 0, len(a.Params)+len(a.ConstArgs))
	for _, p := range a.Params {
		parts = append(parts, p.String())
	}
	for _, c := range a.ConstArgs {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("%s<%s>", a.Name, strings.Join(parts, ","))
}

// Array is `[Element; Size]`; Size is nil for a slice-like array whose
// size is not fixed at the type level.
type Array struct {
	Element Type
	Size    *ConstValue
}

func (a *Array) typeTerm() {}
func (a *Array) String() string {
	if a.Size != nil {
		return fmt.Sprintf("[%s; %s]", a.Element, a.Size)
	}
	return fmt.Sprintf("[%s]", a.Element)
}

// Function is a function type.
type Function struct {
	Args       []Type
	ReturnType Type
}

func (f *Function) typeTerm() {}
func (f *Function) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), f.ReturnType)
}

// Variable is a unification variable, identified by a monotonically
// increasing id.
type Variable struct {
	ID int
}

func (v *Variable) typeTerm() {}
func (v *Variable) String() string { return fmt.Sprintf("$%d", v.ID) }

// Promise wraps a type produced asynchronously.
type Promise struct {
	Inner Type
}

func (p *Promise) typeTerm() {}
func (p *Promise) String() string { return fmt.Sprintf("Promise<%s>", p.Inner) }

// Row is a structural-subtyping placeholder: a set of named fields plus
// an optional open tail variable.
type Row struct {
	Fields map[string]Type
	Tail   *Variable // nil for a closed row
}

func (r *Row) typeTerm() {}
func (r *Row) String() string {
	names := make([]string, 0, len(r.Fields))
	for n := range r.Fields {
		names = append(names, n)
	}
	tail := ""
	if r.Tail != nil {
		tail = " | " + r.Tail.String()
	}
	return fmt.Sprintf("{%s%s}", strings.Join(names, ", "), tail)
}

// Hole is an unresolved type placeholder (source `_`) prior to
// inference assigning it a fresh Variable.
type Hole struct{}

func (h *Hole) typeTerm() {}
func (h *Hole) String() string { return "_" }

// Primitive name table.
var primitiveNames = map[string]bool{
	"int": true, "float": true, "string": true, "bool": true, "void": true, "any": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
	"usize": true, "f32": true, "f64": true,
}

// IsPrimitiveName reports whether name names a primitive type.
func IsPrimitiveName(name string) bool {
	return primitiveNames[name]
}

// NewPrimitive constructs a Primitive, normalizing aliases first.
func NewPrimitive(name string) *Primitive {
	return &Primitive{Name: NormalizeTypeName(name)}
}

// NormalizeTypeName canonicalizes source-level aliases: int -> i32,
// float -> f64. All other names pass through unchanged.
func NormalizeTypeName(name string) string {
	switch name {
	case "int":
		return "i32"
	case "float":
		return "f64"
	default:
		return name
	}
}

// NormalizePrimitiveName is an alias of NormalizeTypeName; both apply
// the same alias table since Lumina has no separate primitive-vs-named
// normalization rule.
func NormalizePrimitiveName(name string) string {
	return NormalizeTypeName(name)
}
