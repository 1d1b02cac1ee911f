package wat

import (
	"strings"
	"testing"

	"github.com/lumina-lang/luminac/internal/ir"
)

func TestEmit_HostImportsAndExportedFunction(t *testing.T) {
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
	out := Emit(prog, nil, Config{})
	if !strings.Contains(out.Code, `(import "env" "print_int"`) {
		t.Fatalf("expected host import, got:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, `(export "add")`) {
		t.Fatalf("expected exported function, got:\n%s", out.Code)
	}
	if !strings.Contains(out.Code, "i32.add") {
		t.Fatalf("expected i32.add, got:\n%s", out.Code)
	}
}

func TestEmit_FloatArithmeticUsesF64(t *testing.T) {
	prog := &ir.Program{Functions: []*ir.Function{
		{
			Name: "area",
			Body: []ir.Stmt{
				&ir.Return{Value: &ir.Binary{Op: "*", Left: &ir.Number{Value: 1.5, IsFloat: true}, Right: &ir.Number{Value: 2.0, IsFloat: true}}},
			},
		},
	}}
	out := Emit(prog, nil, Config{})
	if !strings.Contains(out.Code, "f64.mul") {
		t.Fatalf("expected f64.mul, got:\n%s", out.Code)
	}
}

func TestEmit_WhileLowersToBlockLoop(t *testing.T) {
	prog := &ir.Program{Functions: []*ir.Function{
		{
			Name:   "countdown",
			Params: []string{"n"},
			Body: []ir.Stmt{
				&ir.While{
					Cond: &ir.Identifier{Name: "n"},
					Body: []ir.Stmt{
						&ir.Assign{Name: "n", Value: &ir.Binary{Op: "-", Left: &ir.Identifier{Name: "n"}, Right: &ir.Number{Value: 1}}},
					},
				},
				&ir.Return{Value: &ir.Number{Value: 0}},
			},
		},
	}}
	out := Emit(prog, nil, Config{})
	if !strings.Contains(out.Code, "block $exit") || !strings.Contains(out.Code, "loop $continue") {
		t.Fatalf("expected block/loop structure, got:\n%s", out.Code)
	}
}

func TestEmit_UnsupportedFeatureEmitsDiagnostic(t *testing.T) {
	prog := &ir.Program{Functions: []*ir.Function{
		{
			Name: "greet",
			Body: []ir.Stmt{
				&ir.Return{Value: &ir.String{Value: "hi"}},
			},
		},
	}}
	out := Emit(prog, nil, Config{})
	if len(out.Diagnostics) == 0 {
		t.Fatal("expected a WASM-001 diagnostic for a string literal")
	}
	if out.Diagnostics[0].Code != "WASM-001" {
		t.Fatalf("expected WASM-001, got %s", out.Diagnostics[0].Code)
	}
	if !strings.Contains(out.Code, "unreachable") {
		t.Fatalf("expected an unreachable placeholder, got:\n%s", out.Code)
	}
}

func TestEmit_StructFieldLayoutOffsets(t *testing.T) {
	fields := map[string][]FieldSpec{
		"Point": {{Name: "x", Kind: "float"}, {Name: "y", Kind: "float"}},
	}
	prog := &ir.Program{Functions: []*ir.Function{
		{
			Name:   "getX",
			Params: []string{"p"},
			Body: []ir.Stmt{
				&ir.Return{Value: &ir.Member{Object: &ir.Identifier{Name: "p"}, Field: "x"}},
			},
		},
	}}
	out := Emit(prog, fields, Config{})
	if !strings.Contains(out.Code, "f64.load offset=0") {
		t.Fatalf("expected f64.load at offset 0 for first field, got:\n%s", out.Code)
	}
}

func TestEmit_ArrayIndexBoundsCheck(t *testing.T) {
	prog := &ir.Program{Functions: []*ir.Function{
		{
			Name:   "get",
			Params: []string{"arr", "i"},
			Body: []ir.Stmt{
				&ir.Return{Value: &ir.Index{Object: &ir.Identifier{Name: "arr"}, Idx: &ir.Identifier{Name: "i"}}},
			},
		},
	}}
	out := Emit(prog, nil, Config{})
	if !strings.Contains(out.Code, "i32.ge_u") || !strings.Contains(out.Code, "unreachable") {
		t.Fatalf("expected a bounds check branching to unreachable, got:\n%s", out.Code)
	}
}
