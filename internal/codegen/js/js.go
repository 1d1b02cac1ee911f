// Package js implements the JavaScript codegen: deterministic text
// emission of an already-lowered, SSA-converted, optimized ir.Program
// as an ES module or CommonJS module, with tagged-union enum encoding,
// a MatchExpr-to-IIFE lowering, and optional source-map emission.
package js

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lumina-lang/luminac/internal/ir"
)

// ModuleFormat selects the emitted module system.
type ModuleFormat int

const (
	FormatESM ModuleFormat = iota
	FormatCJS
)

// runtimeSymbols are the runtime-library imports every emitted module
// declares: io, str, collections, fs/http hosts, Result and
// Option ADTs, the member-assignment helper, a display formatter, and
// the panic type.
var runtimeSymbols = []string{
	"io", "str", "math", "list", "fs", "http", "Result", "Option", "__set", "formatValue", "LuminaPanic",
}

// SourceMapEntry is one row of the parallel source-map array.
type SourceMapEntry struct {
	GeneratedLine int
	SourceLine    int
	SourceColumn  int
}

// Config controls one emission run.
type Config struct {
	Format      ModuleFormat
	SourceMap   bool
	RuntimeSpec string // module specifier the runtime symbols are imported from
}

// Result is the emitted module text plus its source map, if requested.
type Result struct {
	Code       string
	SourceMap  []SourceMapEntry
}

type emitter struct {
	cfg  Config
	buf  strings.Builder
	line int
	sm   []SourceMapEntry
}

// Emit renders prog as a complete JavaScript module.
func Emit(prog *ir.Program, cfg Config) *Result {
	if cfg.RuntimeSpec == "" {
		cfg.RuntimeSpec = "lumina-runtime"
	}
	e := &emitter{cfg: cfg, line: 1}
	e.writeRuntimeImport()
	for i, fn := range prog.Functions {
		if i > 0 {
			e.writeln("")
		}
		e.emitFunction(fn)
	}
	e.writeln("")
	if hasMain(prog) {
		e.writeln("main();")
	}
	if cfg.Format == FormatCJS {
		e.writeExports(prog)
	}
	return &Result{Code: e.buf.String(), SourceMap: e.sm}
}

func hasMain(prog *ir.Program) bool {
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			return true
		}
	}
	return false
}

func (e *emitter) writeRuntimeImport() {
	switch e.cfg.Format {
	case FormatCJS:
		e.writeln(fmt.Sprintf("const { %s } = require(%s);", strings.Join(runtimeSymbols, ", "), strconv.Quote(e.cfg.RuntimeSpec)))
	default:
		e.writeln(fmt.Sprintf("import { %s } from %s;", strings.Join(runtimeSymbols, ", "), strconv.Quote(e.cfg.RuntimeSpec)))
	}
}

func (e *emitter) writeExports(prog *ir.Program) {
	names := make([]string, 0, len(prog.Functions))
	for _, fn := range prog.Functions {
		if fn.IsPublic {
			names = append(names, fn.Name)
		}
	}
	if len(names) == 0 {
		return
	}
	sort.Strings(names)
	e.writeln(fmt.Sprintf("module.exports = { %s };", strings.Join(names, ", ")))
}

func (e *emitter) writeln(s string) {
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
	e.line++
}

func (e *emitter) noteLocation(n ir.Node) {
	if !e.cfg.SourceMap {
		return
	}
	h, ok := headerOf(n)
	if !ok || !h.HasLocation {
		return
	}
	e.sm = append(e.sm, SourceMapEntry{GeneratedLine: e.line, SourceLine: h.Location.Start.Line, SourceColumn: h.Location.Start.Column})
}

// headerOf extracts the embedded ir.Header from any node, for
// source-map purposes.
func headerOf(n ir.Node) (ir.Header, bool) {
	switch v := n.(type) {
	case *ir.Let:
		return v.Header, true
	case *ir.Phi:
		return v.Header, true
	case *ir.Return:
		return v.Header, true
	case *ir.ExprStmt:
		return v.Header, true
	case *ir.If:
		return v.Header, true
	case *ir.While:
		return v.Header, true
	case *ir.Assign:
		return v.Header, true
	case *ir.Noop:
		return v.Header, true
	default:
		return ir.Header{}, false
	}
}

func (e *emitter) emitFunction(fn *ir.Function) {
	prefix := ""
	if fn.IsPublic && e.cfg.Format == FormatESM {
		prefix = "export "
	}
	e.writeln(fmt.Sprintf("%sfunction %s(%s) {", prefix, fn.Name, strings.Join(fn.Params, ", ")))
	e.emitStmts(fn.Body, "  ")
	e.writeln("}")
}

func (e *emitter) emitStmts(stmts []ir.Stmt, indent string) {
	for _, s := range stmts {
		e.emitStmt(s, indent)
	}
}

func (e *emitter) emitStmt(s ir.Stmt, indent string) {
	e.noteLocation(s)
	switch st := s.(type) {
	case *ir.Let:
		e.writeln(fmt.Sprintf("%slet %s = %s;", indent, st.Name, e.expr(st.Value)))
	case *ir.Phi:
		e.writeln(fmt.Sprintf("%slet %s = (%s) ? (%s) : (%s);", indent, st.Target, e.expr(st.Cond), e.expr(st.Then), e.expr(st.Else)))
	case *ir.Assign:
		e.writeln(fmt.Sprintf("%s%s = %s;", indent, st.Name, e.expr(st.Value)))
	case *ir.Return:
		if st.Value == nil {
			e.writeln(indent + "return;")
		} else {
			e.writeln(fmt.Sprintf("%sreturn %s;", indent, e.expr(st.Value)))
		}
	case *ir.ExprStmt:
		e.writeln(fmt.Sprintf("%s%s;", indent, e.expr(st.Value)))
	case *ir.If:
		e.writeln(fmt.Sprintf("%sif (%s) {", indent, e.expr(st.Cond)))
		e.emitStmts(st.Then, indent+"  ")
		if len(st.Else) > 0 {
			e.writeln(indent + "} else {")
			e.emitStmts(st.Else, indent+"  ")
		}
		e.writeln(indent + "}")
	case *ir.While:
		e.writeln(fmt.Sprintf("%swhile (%s) {", indent, e.expr(st.Cond)))
		e.emitStmts(st.Body, indent+"  ")
		e.writeln(indent + "}")
	case *ir.Noop:
		// emits nothing
	}
}

// expr renders an IR expression as a single JS expression string.
func (e *emitter) expr(ex ir.Expr) string {
	switch n := ex.(type) {
	case *ir.Number:
		if n.IsFloat {
			return strconv.FormatFloat(n.Value, 'g', -1, 64)
		}
		return strconv.FormatInt(int64(n.Value), 10)
	case *ir.Boolean:
		return strconv.FormatBool(n.Value)
	case *ir.String:
		return strconv.Quote(n.Value)
	case *ir.Identifier:
		return n.Name
	case *ir.Binary:
		return fmt.Sprintf("(%s %s %s)", e.expr(n.Left), jsOp(n.Op), e.expr(n.Right))
	case *ir.Call:
		return e.call(n)
	case *ir.Member:
		return fmt.Sprintf("%s.%s", e.expr(n.Object), n.Field)
	case *ir.Index:
		return fmt.Sprintf("%s[%s]", e.expr(n.Object), e.expr(n.Idx))
	case *ir.Enum:
		return e.enum(n)
	case *ir.StructLiteral:
		return e.structLit(n)
	case *ir.MatchExpr:
		return e.matchExpr(n)
	default:
		return "undefined"
	}
}

func jsOp(op string) string {
	// Lumina's own operator set maps 1:1 onto JS operators; kept as a
	// function so a future divergence has one place to live.
	return op
}

func (e *emitter) call(c *ir.Call) string {
	switch c.Callee {
	case "__array":
		parts := make([]string, len(c.Args))
		for i, a := range c.Args {
			parts[i] = e.expr(a)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case "__set":
		// __set(obj, "field", value) -> (obj.field = value)
		if len(c.Args) == 3 {
			return fmt.Sprintf("(%s.%s = %s)", e.expr(c.Args[0]), stringLitValue(c.Args[1]), e.expr(c.Args[2]))
		}
	case "__call":
		if len(c.Args) >= 1 {
			parts := make([]string, len(c.Args)-1)
			for i, a := range c.Args[1:] {
				parts[i] = e.expr(a)
			}
			return fmt.Sprintf("(%s)(%s)", e.expr(c.Args[0]), strings.Join(parts, ", "))
		}
	case "__lambda":
		if len(c.Args) == 1 {
			return fmt.Sprintf("(() => %s)", e.expr(c.Args[0]))
		}
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = e.expr(a)
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(parts, ", "))
}

func stringLitValue(e ir.Expr) string {
	if s, ok := e.(*ir.String); ok {
		return s.Value
	}
	return ""
}

// enum renders an enum constructor as an object literal carrying both
// the canonical $tag/$payload shape and the tag/values shape the
// match-statement lowering's member accesses read.
func (e *emitter) enum(n *ir.Enum) string {
	vals := make([]string, len(n.Values))
	for i, v := range n.Values {
		vals[i] = e.expr(v)
	}
	arr := fmt.Sprintf("[%s]", strings.Join(vals, ", "))
	return fmt.Sprintf("{ $tag: %s, $payload: %s, tag: %s, values: %s }", strconv.Quote(n.Tag), arr, strconv.Quote(n.Tag), arr)
}

// structLit renders a struct literal as an object literal with stable
// source field order.
func (e *emitter) structLit(n *ir.StructLiteral) string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, e.expr(f.Value))
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
}

// matchExpr lowers to an IIFE binding the scrutinee to a temporary and
// using an if-chain on $tag.
func (e *emitter) matchExpr(n *ir.MatchExpr) string {
	var b strings.Builder
	b.WriteString("(function(){ const __m = ")
	b.WriteString(e.expr(n.Scrutinee))
	b.WriteString("; ")
	for i, arm := range n.Arms {
		if arm.Variant != nil {
			if i > 0 {
				b.WriteString("else ")
			}
			fmt.Fprintf(&b, "if (__m.$tag === %s) { ", strconv.Quote(*arm.Variant))
			for j, name := range arm.Bindings {
				if name == "_" {
					continue
				}
				fmt.Fprintf(&b, "const %s = __m.$payload[%d]; ", name, j)
			}
			fmt.Fprintf(&b, "return %s; } ", e.expr(arm.Body))
		} else {
			if i > 0 {
				b.WriteString("else { ")
			} else {
				b.WriteString("{ ")
			}
			for _, name := range arm.Bindings {
				fmt.Fprintf(&b, "const %s = __m; ", name)
			}
			fmt.Fprintf(&b, "return %s; } ", e.expr(arm.Body))
		}
	}
	b.WriteString("})()")
	return b.String()
}
