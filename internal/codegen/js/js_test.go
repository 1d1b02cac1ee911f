package js

import (
	"strings"
	"testing"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/ir"
)

func TestEmit_SimpleFunction(t *testing.T) {
	prog := &ir.Program{Functions: []*ir.Function{
		{
			Name:     "add",
			IsPublic: true,
			Params:   []string{"a", "b"},
			Body: []ir.Stmt{
				&ir.Return{Value: &ir.Binary{Op: "+", Left: &ir.Identifier{Name: "a"}, Right: &ir.Identifier{Name: "b"}}},
			},
		},
	}}

	out := Emit(prog, Config{Format: FormatESM})
	if !strings.Contains(out.Code, "export function add(a, b)") {
		t.Fatalf("expected exported function signature, got:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, "return (a + b);") {
		t.Fatalf("expected binary return, got:\n%s", out.Code)
	}
}

func TestEmit_EnumBothShapes(t *testing.T) {
	prog := &ir.Program{Functions: []*ir.Function{
		{
			Name: "main",
			Body: []ir.Stmt{
				&ir.Let{Name: "x", Value: &ir.Enum{EnumName: "Option", Tag: "Some", Values: []ir.Expr{&ir.Number{Value: 1}}}},
				&ir.Return{Value: &ir.Identifier{Name: "x"}},
			},
		},
	}}
	out := Emit(prog, Config{Format: FormatESM})
	if !strings.Contains(out.Code, `$tag: "Some"`) || !strings.Contains(out.Code, `tag: "Some"`) {
		t.Fatalf("expected both $tag and tag shapes, got:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, `$payload: [1]`) || !strings.Contains(out.Code, `values: [1]`) {
		t.Fatalf("expected both $payload and values shapes, got:\n%s", out.Code)
	}
}

func TestEmit_MatchExprIIFE(t *testing.T) {
	variant := "Some"
	prog := &ir.Program{Functions: []*ir.Function{
		{
			Name: "unwrap",
			Params: []string{"opt"},
			Body: []ir.Stmt{
				&ir.Return{Value: &ir.MatchExpr{
					Scrutinee: &ir.Identifier{Name: "opt"},
					Arms: []ir.MatchArm{
						{Variant: &variant, Bindings: []string{"v"}, Body: &ir.Identifier{Name: "v"}},
						{Variant: nil, Bindings: nil, Body: &ir.Number{Value: 0}},
					},
				}},
			},
		},
	}}
	out := Emit(prog, Config{Format: FormatESM})
	if !strings.Contains(out.Code, "__m.$tag === \"Some\"") {
		t.Fatalf("expected tag dispatch on $tag, got:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, "(function(){") {
		t.Fatalf("expected IIFE wrapper, got:\n%s", out.Code)
	}
}

func TestEmit_SourceMapEntries(t *testing.T) {
	prog := &ir.Program{Functions: []*ir.Function{
		{
			Name: "main",
			Body: []ir.Stmt{
				&ir.Let{
					Header: ir.Header{HasLocation: true, Location: ast.Location{Start: ast.Point{Line: 5, Column: 3}}},
					Name:   "x",
					Value:  &ir.Number{Value: 1},
				},
			},
		},
	}}
	out := Emit(prog, Config{Format: FormatESM, SourceMap: true})
	if len(out.SourceMap) == 0 {
		t.Fatal("expected at least one source map entry")
	}
	found := false
	for _, e := range out.SourceMap {
		if e.SourceLine == 5 && e.SourceColumn == 3 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a source map entry for line 5 col 3, got %v", out.SourceMap)
	}
}

func TestEmit_CJSExports(t *testing.T) {
	prog := &ir.Program{Functions: []*ir.Function{
		{Name: "helper", IsPublic: true, Body: []ir.Stmt{&ir.Return{Value: &ir.Number{Value: 1}}}},
	}}
	out := Emit(prog, Config{Format: FormatCJS})
	if !strings.Contains(out.Code, "require(") {
		t.Fatalf("expected CJS require header, got:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, "module.exports = { helper };") {
		t.Fatalf("expected module.exports, got:\n%s", out.Code)
	}
}
