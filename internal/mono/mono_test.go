package mono

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/parser"
	"github.com/lumina-lang/luminac/internal/sema"
)

func analyze(t *testing.T, src string) (*ast.Program, *sema.SemanticResult) {
	t.Helper()
	prog, perr := parser.Parse(src, "test.lm")
	if perr != nil {
		t.Fatalf("parse failed: %s", perr.Message)
	}
	res := sema.Analyze(prog)
	if res.Reporter.HasErrors() {
		t.Fatalf("unexpected analysis errors: %v", res.Reporter.Errors())
	}
	return prog, res
}

func funcNames(prog *ast.Program) map[string]bool {
	out := map[string]bool{}
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			out[fn.Name] = true
		}
	}
	return out
}

func TestRunSpecializesGenericFunctionPerInstantiation(t *testing.T) {
	prog, res := analyze(t, `fn id<T>(x: T) -> T { return x; }
fn main() { let a = id(1); let b = id("hi"); }`)

	mres := Run(prog, res)

	if len(mres.Functions) != 2 {
		t.Fatalf("expected 2 specializations, got %d", len(mres.Functions))
	}
	names := funcNames(prog)
	if names["id"] {
		t.Fatal("generic declaration id should have been removed from the program")
	}
	if !names["id_i32"] || !names["id_string"] {
		t.Fatalf("expected id_i32 and id_string in program, got %v", names)
	}

	var mainFn *ast.FuncDecl
	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok && fn.Name == "main" {
			mainFn = fn
		}
	}
	if mainFn == nil {
		t.Fatal("main not found")
	}
	seen := map[string]bool{}
	for _, s := range mainFn.Body.Stmts {
		let, ok := s.(*ast.LetStmt)
		if !ok {
			continue
		}
		call, ok := let.Value.(*ast.CallExpr)
		if !ok {
			continue
		}
		ident, ok := call.Callee.(*ast.Identifier)
		if !ok {
			continue
		}
		seen[ident.Name] = true
	}
	if !seen["id_i32"] || !seen["id_string"] {
		t.Fatalf("expected call sites rewritten to id_i32/id_string, got %v", seen)
	}
}

func TestRunSpecializesConstGenericStruct(t *testing.T) {
	prog, res := analyze(t, `struct Vec<T, const N> { data: [T; N] }
fn main() { let v = Vec<i32, 3>{data: [1, 2, 3]}; }`)

	mres := Run(prog, res)

	if len(mres.Structs) != 1 {
		t.Fatalf("expected 1 struct specialization, got %d", len(mres.Structs))
	}
	spec := mres.Structs[0]
	if spec.Name != "Vec_i32_3" {
		t.Fatalf("expected mangled name Vec_i32_3, got %s", spec.Name)
	}
	if spec.FieldTypes["data"] == nil {
		t.Fatal("expected a resolved type for field data")
	}
}

func TestRunDeduplicatesRepeatedInstantiation(t *testing.T) {
	prog, res := analyze(t, `fn id<T>(x: T) -> T { return x; }
fn main() { let a = id(1); let b = id(2); }`)

	mres := Run(prog, res)

	if len(mres.Functions) != 1 {
		t.Fatalf("expected a single deduplicated specialization, got %d", len(mres.Functions))
	}
	if mres.Functions[0].Name != "id_i32" {
		t.Fatalf("expected id_i32, got %s", mres.Functions[0].Name)
	}
}

// Two independent compilations of the same source must produce
// byte-identical sets of specialized declarations and the same mangled
// names.
func TestRunDeterministicAcrossRuns(t *testing.T) {
	src := `fn id<T>(x: T) -> T { return x; }
struct Vec<T, const N> { data: [T; N] }
fn main() {
  let a = id(1);
  let b = id("hi");
  let v = Vec<i32, 2>{data: [1, 2]};
}`
	prog1, res1 := analyze(t, src)
	prog2, res2 := analyze(t, src)

	m1 := Run(prog1, res1)
	m2 := Run(prog2, res2)

	if diff := cmp.Diff(specNames(m1), specNames(m2)); diff != "" {
		t.Fatalf("specialization sets differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(m1.Functions, m2.Functions); diff != "" {
		t.Fatalf("specialized declarations differ between runs (-first +second):\n%s", diff)
	}
}

func specNames(res *Result) []string {
	var out []string
	for _, fn := range res.Functions {
		out = append(out, fn.Name)
	}
	for _, s := range res.Structs {
		out = append(out, s.Name)
	}
	return out
}
