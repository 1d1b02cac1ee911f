// Package wat implements the WebAssembly text codegen: a module with a
// fixed host import ABI, i32/f64 value typing, struct layouts computed
// as byte offsets, array bounds checks, and a WASM-001 diagnostic
// fallback for anything the text format can't express directly. Like
// internal/codegen/js it is a pure text builder over the already
// lowered and optimized IR.
package wat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/ir"
)

// hostImports is the fixed ABI every emitted module imports.
var hostImports = []struct {
	name   string
	params []string
}{
	{"print_int", []string{"i32"}},
	{"print_float", []string{"f64"}},
	{"print_bool", []string{"i32"}},
	{"abs_int", []string{"i32"}},
	{"abs_float", []string{"f64"}},
	{"chan_send", []string{"i32", "i32"}},
	{"chan_recv", []string{"i32"}},
}

// sizeI32 and sizeF64 are the fixed byte sizes struct layout computation
// uses: i32 values (including bool and ADT pointers) take 4
// bytes, f64 takes 8.
const (
	sizeI32 = 4
	sizeF64 = 8
)

// Config controls one emission run.
type Config struct {
	// MemoryPages is the initial linear memory size in 64KiB pages.
	MemoryPages int
}

// Result is the emitted module text plus any diagnostics raised for
// unsupported features (warning severity, so they don't fail
// compilation).
type Result struct {
	Code        string
	Diagnostics []diag.Diagnostic
}

type emitter struct {
	cfg       Config
	buf       strings.Builder
	indent    int
	diags     []diag.Diagnostic
	structOff map[string]structLayout // struct name -> field layout
	localIdx  map[string]bool         // names already declared as a local in the current function
}

type structLayout struct {
	fieldOffset map[string]int
	fieldType   map[string]string
	size        int
}

// Emit renders prog as a complete WAT module. structFields supplies,
// for every struct type named by an ir.StructLiteral, the declared
// field order and each field's Lumina-level primitive kind ("int",
// "float", "bool", or "" for an ADT/array pointer), which downstream
// feeds primitiveKindToWasm and the byte-offset computation.
func Emit(prog *ir.Program, structFields map[string][]FieldSpec, cfg Config) *Result {
	if cfg.MemoryPages == 0 {
		cfg.MemoryPages = 1
	}
	e := &emitter{cfg: cfg, structOff: buildLayouts(structFields)}
	e.line("(module")
	e.indent++
	for _, h := range hostImports {
		e.line(fmt.Sprintf(`(import "env" "%s" (func $%s (param %s)))`, h.name, h.name, strings.Join(h.params, " ")))
	}
	e.line(fmt.Sprintf("(memory (export \"memory\") %d)", cfg.MemoryPages))
	for _, fn := range prog.Functions {
		e.emitFunction(fn)
	}
	e.indent--
	e.line(")")
	return &Result{Code: e.buf.String(), Diagnostics: e.diags}
}

// FieldSpec describes one struct field for layout purposes.
type FieldSpec struct {
	Name string
	Kind string // "int" | "float" | "bool" | "" (pointer-sized)
}

func buildLayouts(structFields map[string][]FieldSpec) map[string]structLayout {
	out := make(map[string]structLayout, len(structFields))
	for name, fields := range structFields {
		layout := structLayout{fieldOffset: map[string]int{}, fieldType: map[string]string{}}
		offset := 0
		for _, f := range fields {
			wasmTy := primitiveKindToWasm(f.Kind)
			layout.fieldOffset[f.Name] = offset
			layout.fieldType[f.Name] = wasmTy
			if wasmTy == "f64" {
				offset += sizeF64
			} else {
				offset += sizeI32
			}
		}
		layout.size = offset
		out[name] = layout
	}
	return out
}

func primitiveKindToWasm(kind string) string {
	if kind == "float" {
		return "f64"
	}
	return "i32"
}

func (e *emitter) line(s string) {
	e.buf.WriteString(strings.Repeat("  ", e.indent))
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *emitter) unsupported(label string) string {
	e.diags = append(e.diags, diag.Diagnostic{
		Severity: diag.SeverityWarning,
		Message:  fmt.Sprintf("unsupported feature in WAT codegen: %s", label),
		Code:     diag.CodeWasmUnsupported,
		Source:   diag.SourceCodegenWAT,
	})
	return "unreachable"
}

// emitFunction renders one function. Every parameter and local, and
// the function result, is declared i32: the IR carries no type
// annotations past lowering, so no value is declared f64. Float
// handling is limited to instruction selection in binary, which picks
// the f64 form of an operator when an operand renders as an f64
// instruction.
func (e *emitter) emitFunction(fn *ir.Function) {
	e.localIdx = map[string]bool{}
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("(param $%s i32)", p)
		e.localIdx[p] = true
	}
	locals := collectLocals(fn.Body)
	exportClause := ""
	if fn.IsPublic || fn.Name == "main" {
		exportClause = fmt.Sprintf(`(export "%s") `, fn.Name)
	}
	e.line(fmt.Sprintf("(func $%s %s%s (result i32)", fn.Name, exportClause, strings.Join(params, " ")))
	e.indent++
	for _, l := range locals {
		if e.localIdx[l] {
			continue
		}
		e.localIdx[l] = true
		e.line(fmt.Sprintf("(local $%s i32)", l))
	}
	e.emitStmts(fn.Body)
	e.indent--
	e.line(")")
}

func collectLocals(stmts []ir.Stmt) []string {
	seen := map[string]bool{}
	var out []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	var walk func([]ir.Stmt)
	walk = func(ss []ir.Stmt) {
		for _, s := range ss {
			switch st := s.(type) {
			case *ir.Let:
				add(st.Name)
			case *ir.Phi:
				add(st.Target)
			case *ir.Assign:
				add(st.Name)
			case *ir.If:
				walk(st.Then)
				walk(st.Else)
			case *ir.While:
				walk(st.Body)
			}
		}
	}
	walk(stmts)
	return out
}

func (e *emitter) emitStmts(stmts []ir.Stmt) {
	for _, s := range stmts {
		e.emitStmt(s)
	}
}

func (e *emitter) emitStmt(s ir.Stmt) {
	switch st := s.(type) {
	case *ir.Let:
		e.line(e.expr(st.Value))
		e.line(fmt.Sprintf("local.set $%s", st.Name))
	case *ir.Phi:
		e.line(e.expr(st.Cond))
		e.line("if (result i32)")
		e.indent++
		e.line(e.expr(st.Then))
		e.indent--
		e.line("else")
		e.indent++
		e.line(e.expr(st.Else))
		e.indent--
		e.line("end")
		e.line(fmt.Sprintf("local.set $%s", st.Target))
	case *ir.Assign:
		e.line(e.expr(st.Value))
		e.line(fmt.Sprintf("local.set $%s", st.Name))
	case *ir.Return:
		if st.Value != nil {
			e.line(e.expr(st.Value))
		} else {
			e.line("i32.const 0")
		}
		e.line("return")
	case *ir.ExprStmt:
		e.line(e.expr(st.Value))
		e.line("drop")
	case *ir.If:
		e.line(e.expr(st.Cond))
		e.line("if")
		e.indent++
		e.emitStmts(st.Then)
		e.indent--
		if len(st.Else) > 0 {
			e.line("else")
			e.indent++
			e.emitStmts(st.Else)
			e.indent--
		}
		e.line("end")
	case *ir.While:
		e.line("block $exit")
		e.indent++
		e.line("loop $continue")
		e.indent++
		e.line(e.expr(st.Cond))
		e.line("i32.eqz")
		e.line("br_if $exit")
		e.emitStmts(st.Body)
		e.line("br $continue")
		e.indent--
		e.line("end")
		e.indent--
		e.line("end")
	case *ir.Noop:
		// no instructions
	default:
		e.line(e.unsupported(fmt.Sprintf("statement %T", st)))
	}
}

// expr renders ex as a single WAT instruction line pushing its result;
// compound expressions are flattened into one line using the folded
// s-expression form, which is valid WAT and keeps this emitter a
// single-pass text builder.
func (e *emitter) expr(ex ir.Expr) string {
	switch n := ex.(type) {
	case *ir.Number:
		if n.IsFloat {
			return fmt.Sprintf("f64.const %s", strconv.FormatFloat(n.Value, 'g', -1, 64))
		}
		return fmt.Sprintf("i32.const %d", int64(n.Value))
	case *ir.Boolean:
		if n.Value {
			return "i32.const 1"
		}
		return "i32.const 0"
	case *ir.String:
		return e.unsupported("string literal")
	case *ir.Identifier:
		return fmt.Sprintf("local.get $%s", n.Name)
	case *ir.Binary:
		return e.binary(n)
	case *ir.Call:
		return e.call(n)
	case *ir.Member:
		return e.member(n)
	case *ir.Index:
		return e.index(n)
	case *ir.Enum:
		return e.unsupported("enum construction in WAT")
	case *ir.StructLiteral:
		return e.unsupported("struct literal in WAT")
	case *ir.MatchExpr:
		return e.unsupported("match expression in WAT")
	default:
		return e.unsupported(fmt.Sprintf("expression %T", ex))
	}
}

func (e *emitter) binary(n *ir.Binary) string {
	l := e.expr(n.Left)
	r := e.expr(n.Right)
	isFloat := strings.HasPrefix(l, "f64") || strings.HasPrefix(r, "f64")
	op, ok := watOp(n.Op, isFloat)
	if !ok {
		return e.unsupported(fmt.Sprintf("operator %q", n.Op))
	}
	return fmt.Sprintf("(%s %s %s)", op, l, r)
}

func watOp(op string, isFloat bool) (string, bool) {
	prefix := "i32"
	if isFloat {
		prefix = "f64"
	}
	switch op {
	case "+":
		return prefix + ".add", true
	case "-":
		return prefix + ".sub", true
	case "*":
		return prefix + ".mul", true
	case "/":
		if isFloat {
			return "f64.div", true
		}
		return "i32.div_s", true
	case "==":
		return prefix + ".eq", true
	case "!=":
		return prefix + ".ne", true
	case "<":
		if isFloat {
			return "f64.lt", true
		}
		return "i32.lt_s", true
	case "<=":
		if isFloat {
			return "f64.le", true
		}
		return "i32.le_s", true
	case ">":
		if isFloat {
			return "f64.gt", true
		}
		return "i32.gt_s", true
	case ">=":
		if isFloat {
			return "f64.ge", true
		}
		return "i32.ge_s", true
	case "&&":
		return "i32.and", true
	case "||":
		return "i32.or", true
	}
	return "", false
}

func (e *emitter) call(c *ir.Call) string {
	switch c.Callee {
	case "__array", "__lambda", "__call", "__set":
		return e.unsupported(fmt.Sprintf("%s in WAT", c.Callee))
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = e.expr(a)
	}
	switch c.Callee {
	case "abs":
		if len(parts) == 1 {
			return fmt.Sprintf("(call $abs_int %s)", parts[0])
		}
	}
	return fmt.Sprintf("(call $%s %s)", c.Callee, strings.Join(parts, " "))
}

// member loads a struct field at its computed byte offset.
func (e *emitter) member(n *ir.Member) string {
	layout, ok := e.structLayoutFor(n)
	if !ok {
		return e.unsupported("member access on unknown struct layout")
	}
	offset, ok := layout.fieldOffset[n.Field]
	if !ok {
		return e.unsupported(fmt.Sprintf("field %q not in struct layout", n.Field))
	}
	loadOp := "i32.load"
	if layout.fieldType[n.Field] == "f64" {
		loadOp = "f64.load"
	}
	return fmt.Sprintf("(%s offset=%d %s)", loadOp, offset, e.expr(n.Object))
}

// structLayoutFor has no direct struct-name link from an ir.Member (the
// IR only carries the object expression and field name), so it looks
// the field name up across every known layout. A matching layout is
// used when every layout that has the field agrees on its offset and
// type; when no layout has the field, or two layouts disagree, the
// access is reported as unsupported rather than silently miscompiled.
func (e *emitter) structLayoutFor(n *ir.Member) (structLayout, bool) {
	var found structLayout
	matches := 0
	for _, layout := range e.structOff {
		off, ok := layout.fieldOffset[n.Field]
		if !ok {
			continue
		}
		if matches > 0 && (off != found.fieldOffset[n.Field] || layout.fieldType[n.Field] != found.fieldType[n.Field]) {
			return structLayout{}, false
		}
		found = layout
		matches++
	}
	return found, matches > 0
}

// index emits an i32.ge_u bounds check, branching to unreachable on
// out-of-bounds access. The IR carries no array types, so the check
// compares against a length loaded at run time from the array's header
// word at offset 0 (the convention this backend uses for array values:
// a length-prefixed flat i32/f64 buffer), not against a compile-time
// length.
func (e *emitter) index(n *ir.Index) string {
	obj := e.expr(n.Object)
	idx := e.expr(n.Idx)
	bounded := fmt.Sprintf("(if (result i32) (i32.ge_u %s (i32.load offset=0 %s)) (then unreachable) (else %s))", idx, obj, idx)
	return fmt.Sprintf("(i32.load offset=4 (i32.add %s (i32.mul %s (i32.const 4))))", obj, bounded)
}
