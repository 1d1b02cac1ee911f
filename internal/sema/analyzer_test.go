package sema

import (
	"testing"

	"github.com/lumina-lang/luminac/internal/parser"
	"github.com/lumina-lang/luminac/internal/types"
)

func analyze(t *testing.T, src string) *SemanticResult {
	t.Helper()
	prog, perr := parser.Parse(src, "test.lm")
	if perr != nil {
		t.Fatalf("parse failed: %s", perr.Message)
	}
	return Analyze(prog)
}

func TestAnalyzeArithmeticDefaultsToI32(t *testing.T) {
	res := analyze(t, `fn main() { let x = 1 + 2; return x * 3; }`)
	if res.Reporter.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Reporter.Errors())
	}
	if ret, ok := res.FnReturnType("main"); !ok || ret.String() != "i32" {
		t.Fatalf("expected main's return type to default to i32, got %v", ret)
	}
}

func TestAnalyzeUnknownIdentReported(t *testing.T) {
	res := analyze(t, `fn main() { return y; }`)
	if !res.Reporter.HasErrors() {
		t.Fatal("expected an unknown-identifier diagnostic")
	}
}

func TestAnalyzeGenericFunctionInstantiation(t *testing.T) {
	res := analyze(t, `fn id<T>(x: T) -> T { return x; }
fn main() { let a = id(1); let b = id("hi"); }`)
	if res.Reporter.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Reporter.Errors())
	}
	found := 0
	for _, inst := range res.InferredCalls {
		if inst.Callee == "id" {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("expected 2 recorded instantiations of id, got %d", found)
	}
}

func TestAnalyzeTraitMethodResolution(t *testing.T) {
	res := analyze(t, `trait P { fn p(self: Self) -> void; }
struct U { name: string }
impl P for U { fn p(self: Self) { self.name; } }
fn main() { let u = U{name: "A"}; u.p(); }`)
	if res.Reporter.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Reporter.Errors())
	}
	var resolution *TraitMethodResolution
	for _, r := range res.TraitResolutions {
		resolution = r
	}
	if resolution == nil {
		t.Fatal("expected a trait-method resolution to be recorded")
	}
	if resolution.MangledName != "P$U$p" {
		t.Fatalf("expected mangled name P$U$p, got %s", resolution.MangledName)
	}
}

func TestAnalyzeEnumMatchExhaustive(t *testing.T) {
	res := analyze(t, `enum Option<T> { Some(T), None }
fn main() {
  let x = Some(1);
  match (x) {
    Some(v) => { return v; },
    None => { return 0; },
  }
}`)
	if res.Reporter.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Reporter.Errors())
	}
}

func TestAnalyzeArraySizeMismatchReported(t *testing.T) {
	res := analyze(t, `struct Vec<T, const N> { data: [T; N] }
fn main() { let v = Vec<i32, 3>{data: [1, 2]}; }`)
	if !res.Reporter.HasErrors() {
		t.Fatal("expected an array-size-mismatch diagnostic")
	}
}

func TestAnalyzeWithOptionsSkipsBodies(t *testing.T) {
	src := `fn cached() -> i32 { return undefined_fn(); }
fn main() { let x = cached(); }`
	prog, perr := parser.Parse(src, "test.lm")
	if perr != nil {
		t.Fatalf("parse failed: %s", perr.Message)
	}
	res := AnalyzeWithOptions(prog, Options{
		SkipBodies: map[string]types.Type{"cached": types.NewPrimitive("i32")},
	})
	if res.Reporter.HasErrors() {
		t.Fatalf("expected the skipped body's unknown call to go unreported, got %v", res.Reporter.Errors())
	}
	ret, ok := res.FnReturnType("cached")
	if !ok {
		t.Fatal("expected a return type recorded for the skipped function")
	}
	if ret.String() != "i32" {
		t.Fatalf("expected the cached i32 return type, got %s", ret)
	}
}

func TestAnalyzeRecordsFnParams(t *testing.T) {
	res := analyze(t, `fn add(a: i32, b: i32) -> i32 { return a + b; }
fn main() { let x = add(1, 2); }`)
	if res.Reporter.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Reporter.Errors())
	}
	params, ok := res.InferredFnParams["add"]
	if !ok || len(params) != 2 {
		t.Fatalf("expected 2 recorded parameter types for add, got %v", params)
	}
}

func TestAnalyzeArrayElemTypeMismatch(t *testing.T) {
	res := analyze(t, `fn main() { let xs = [true, "two"]; }`)
	found := false
	for _, d := range res.Reporter.All() {
		if d.Code == "ARRAY-ELEM-TYPE" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an ARRAY-ELEM-TYPE diagnostic for mixed element types")
	}
}
