package ssa

import (
	"testing"

	"github.com/lumina-lang/luminac/internal/ir"
)

// Scenario 2: if/else with differing assignments to the same
// variable must produce exactly one Phi after the If, and no Assign
// nodes anywhere.
func TestConvertFunction_IfElsePhi(t *testing.T) {
	fn := &ir.Function{
		Name:   "main",
		Params: []string{"flag"},
		Body: []ir.Stmt{
			&ir.Let{Name: "x", Value: &ir.Number{Value: 0}},
			&ir.If{
				Cond: &ir.Identifier{Name: "flag"},
				Then: []ir.Stmt{&ir.Assign{Name: "x", Value: &ir.Number{Value: 1}}},
				Else: []ir.Stmt{&ir.Assign{Name: "x", Value: &ir.Number{Value: 2}}},
			},
			&ir.Return{Value: &ir.Identifier{Name: "x"}},
		},
	}
	ConvertFunction(fn)

	phiCount := 0
	for _, s := range fn.Body {
		if _, ok := s.(*ir.Phi); ok {
			phiCount++
		}
		if _, ok := s.(*ir.Assign); ok {
			t.Fatalf("Assign survived SSA conversion: %v", s)
		}
	}
	if phiCount != 1 {
		t.Fatalf("expected exactly one Phi, got %d in %v", phiCount, fn.Body)
	}
}

// Scenario 3: a while loop's Assign survives SSA conversion
// unchanged, and no Phi is introduced.
func TestConvertFunction_WhilePreservesAssign(t *testing.T) {
	fn := &ir.Function{
		Name:   "main",
		Params: []string{"flag"},
		Body: []ir.Stmt{
			&ir.Let{Name: "x", Value: &ir.Number{Value: 0}},
			&ir.While{
				Cond: &ir.Identifier{Name: "flag"},
				Body: []ir.Stmt{
					&ir.Assign{Name: "x", Value: &ir.Binary{Op: "+", Left: &ir.Identifier{Name: "x"}, Right: &ir.Number{Value: 1}}},
				},
			},
			&ir.Return{Value: &ir.Identifier{Name: "x"}},
		},
	}
	ConvertFunction(fn)

	foundAssign := false
	for _, s := range fn.Body {
		if w, ok := s.(*ir.While); ok {
			for _, bs := range w.Body {
				if _, ok := bs.(*ir.Assign); ok {
					foundAssign = true
				}
			}
		}
		if _, ok := s.(*ir.Phi); ok {
			t.Fatalf("unexpected Phi in a while-only function: %v", s)
		}
	}
	if !foundAssign {
		t.Fatal("expected the While body's Assign to survive SSA conversion")
	}
}

// Scenario 1: constant arithmetic folds all the way down to
// a single literal return.
func TestOptimizeFunction_ConstantFold(t *testing.T) {
	fn := &ir.Function{
		Name: "main",
		Body: []ir.Stmt{
			&ir.Let{Name: "x", Value: &ir.Binary{Op: "+", Left: &ir.Number{Value: 1}, Right: &ir.Number{Value: 2}}},
			&ir.Return{Value: &ir.Binary{Op: "*", Left: &ir.Identifier{Name: "x"}, Right: &ir.Number{Value: 3}}},
		},
	}
	ConvertFunction(fn)
	OptimizeFunction(fn)

	if len(fn.Body) != 1 {
		t.Fatalf("expected a single statement after folding, got %d: %v", len(fn.Body), fn.Body)
	}
	ret, ok := fn.Body[0].(*ir.Return)
	if !ok {
		t.Fatalf("expected a Return, got %T", fn.Body[0])
	}
	n, ok := ret.Value.(*ir.Number)
	if !ok || n.Value != 9 {
		t.Fatalf("expected Return Number(9), got %v", ret.Value)
	}
}

func TestOptimizeProgram_RemovesUnreachableFunctions(t *testing.T) {
	prog := &ir.Program{Functions: []*ir.Function{
		{Name: "main", Body: []ir.Stmt{&ir.Return{Value: &ir.Call{Callee: "helper", Args: nil}}}},
		{Name: "helper", Body: []ir.Stmt{&ir.Return{Value: &ir.Number{Value: 1}}}},
		{Name: "dead", Body: []ir.Stmt{&ir.Return{Value: &ir.Number{Value: 2}}}},
	}}
	ConvertProgram(prog)
	OptimizeProgram(prog)

	if len(prog.Functions) != 2 {
		t.Fatalf("expected dead() to be pruned, got %d functions", len(prog.Functions))
	}
	for _, fn := range prog.Functions {
		if fn.Name == "dead" {
			t.Fatal("unreachable function was not removed")
		}
	}
}

func TestValidateFunction_PanicsOnAssignOutsideWhile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Validate to panic on an Assign outside a While body")
		}
	}()
	fn := &ir.Function{
		Name: "main",
		Body: []ir.Stmt{&ir.Assign{Name: "x", Value: &ir.Number{Value: 1}}},
	}
	ValidateFunction(fn)
}
