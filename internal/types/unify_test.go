package types

import (
	"testing"

	"github.com/lumina-lang/luminac/internal/ast"
)

func TestUnifyPrimitivesNormalizeAliases(t *testing.T) {
	s := NewSubstitution()
	_, err := Unify(NewPrimitive("int"), NewPrimitive("i32"), s)
	if err != nil {
		t.Fatalf("expected int/i32 to unify, got %v", err)
	}
}

func TestUnifyPrimitiveMismatch(t *testing.T) {
	s := NewSubstitution()
	if _, err := Unify(NewPrimitive("i32"), NewPrimitive("string"), s); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestUnifyVariableBindsAndPropagates(t *testing.T) {
	gen := &VarGen{}
	v := gen.Fresh()
	s := NewSubstitution()

	s, err := Unify(v, NewPrimitive("bool"), s)
	if err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	pruned := Prune(v, s)
	if pruned.String() != "bool" {
		t.Fatalf("expected bool, got %s", pruned.String())
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	gen := &VarGen{}
	v := gen.Fresh()
	s := NewSubstitution()
	cyclic := &ADT{Name: "Box", Params: []Type{v}}
	if _, err := Unify(v, cyclic, s); err == nil {
		t.Fatal("expected occurs-check failure")
	}
}

func TestUnifyADTArity(t *testing.T) {
	s := NewSubstitution()
	a := &ADT{Name: "Pair", Params: []Type{NewPrimitive("i32")}}
	b := &ADT{Name: "Pair", Params: []Type{NewPrimitive("i32"), NewPrimitive("i32")}}
	if _, err := Unify(a, b, s); err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestUnifyFunctionArgsAndReturn(t *testing.T) {
	s := NewSubstitution()
	gen := &VarGen{}
	v := gen.Fresh()
	f1 := &Function{Args: []Type{v}, ReturnType: NewPrimitive("bool")}
	f2 := &Function{Args: []Type{NewPrimitive("i32")}, ReturnType: NewPrimitive("bool")}
	s, err := Unify(f1, f2, s)
	if err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	if Prune(v, s).String() != "i32" {
		t.Fatalf("expected param bound to i32")
	}
}

func TestEvalConstExprFoldsFloorDivision(t *testing.T) {
	// (-7) / 2 floors to -4, not -3 (truncation toward zero).
	expr := &ast.ConstBinary{
		Op:    "/",
		Left:  &ast.ConstInt{Value: -7},
		Right: &ast.ConstInt{Value: 2},
	}
	got, err := EvalConstExpr(expr, nil)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if got != -4 {
		t.Fatalf("expected floor division -4, got %d", got)
	}
}

func TestEvalConstExprDivisionByZero(t *testing.T) {
	expr := &ast.ConstBinary{
		Op:    "/",
		Left:  &ast.ConstInt{Value: 4},
		Right: &ast.ConstInt{Value: 0},
	}
	if _, err := EvalConstExpr(expr, nil); err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestEvalConstExprBindsParam(t *testing.T) {
	expr := &ast.ConstParamRef{Name: "N"}
	got, err := EvalConstExpr(expr, ConstBindings{"N": 7})
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}
