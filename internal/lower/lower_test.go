package lower

import (
	"testing"

	"github.com/lumina-lang/luminac/internal/ir"
	"github.com/lumina-lang/luminac/internal/parser"
	"github.com/lumina-lang/luminac/internal/sema"
)

func lowerSource(t *testing.T, src string) *ir.Program {
	t.Helper()
	prog, perr := parser.Parse(src, "test.lm")
	if perr != nil {
		t.Fatalf("parse failed: %s", perr.Message)
	}
	res := sema.Analyze(prog)
	if res.Reporter.HasErrors() {
		t.Fatalf("unexpected analysis errors: %v", res.Reporter.Errors())
	}
	return LowerProgram(prog, res)
}

func findFunc(t *testing.T, prog *ir.Program, name string) *ir.Function {
	t.Helper()
	for _, fn := range prog.Functions {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("function %q not found in lowered program", name)
	return nil
}

func TestLowerEnumConstructorToEnumNode(t *testing.T) {
	prog := lowerSource(t, `enum Option<T> { Some(T), None }
fn main() { let x = Some(1); }`)
	main := findFunc(t, prog, "main")

	let, ok := main.Body[0].(*ir.Let)
	if !ok {
		t.Fatalf("expected a Let, got %T", main.Body[0])
	}
	enum, ok := let.Value.(*ir.Enum)
	if !ok {
		t.Fatalf("expected the constructor call to lower to ir.Enum, got %T", let.Value)
	}
	if enum.Tag != "Some" || enum.EnumName != "Option" || len(enum.Values) != 1 {
		t.Fatalf("unexpected enum node: %v", enum)
	}
}

func TestLowerMatchStmtToIfChain(t *testing.T) {
	prog := lowerSource(t, `enum Option<T> { Some(T), None }
fn main() {
  let x = Some(1);
  match (x) {
    Some(v) => { let y = v; },
    _ => { },
  }
}`)
	main := findFunc(t, prog, "main")

	// let x, let __match0, then the if-chain.
	if len(main.Body) < 3 {
		t.Fatalf("expected scrutinee binding plus if-chain, got %d stmts", len(main.Body))
	}
	temp, ok := main.Body[1].(*ir.Let)
	if !ok || temp.Name != "__match0" {
		t.Fatalf("expected let __match0, got %v", main.Body[1])
	}
	cond, ok := main.Body[2].(*ir.If)
	if !ok {
		t.Fatalf("expected an If after the match temp, got %T", main.Body[2])
	}
	bin, ok := cond.Cond.(*ir.Binary)
	if !ok || bin.Op != "==" {
		t.Fatalf("expected a tag equality check, got %v", cond.Cond)
	}
	member, ok := bin.Left.(*ir.Member)
	if !ok || member.Field != "tag" {
		t.Fatalf("expected __matchN.tag access, got %v", bin.Left)
	}
	tag, ok := bin.Right.(*ir.String)
	if !ok || tag.Value != "Some" {
		t.Fatalf("expected the variant name literal, got %v", bin.Right)
	}

	// First Then statement binds v from __match0.values[0].
	bindLet, ok := cond.Then[0].(*ir.Let)
	if !ok || bindLet.Name != "v" {
		t.Fatalf("expected let v binding, got %v", cond.Then[0])
	}
	idx, ok := bindLet.Value.(*ir.Index)
	if !ok {
		t.Fatalf("expected an index into values, got %T", bindLet.Value)
	}
	values, ok := idx.Object.(*ir.Member)
	if !ok || values.Field != "values" {
		t.Fatalf("expected __matchN.values access, got %v", idx.Object)
	}
}

func TestLowerPipelineOperatorPrependsArgument(t *testing.T) {
	prog := lowerSource(t, `fn f(x: i32, y: i32) -> i32 { return x; }
fn main() { let r = 1 |> f(2); }`)
	main := findFunc(t, prog, "main")

	let, ok := main.Body[0].(*ir.Let)
	if !ok {
		t.Fatalf("expected a Let, got %T", main.Body[0])
	}
	call, ok := let.Value.(*ir.Call)
	if !ok || call.Callee != "f" {
		t.Fatalf("expected a call to f, got %v", let.Value)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected the pipeline lhs prepended, got %d args", len(call.Args))
	}
	first, ok := call.Args[0].(*ir.Number)
	if !ok || first.Value != 1 {
		t.Fatalf("expected the lhs as first argument, got %v", call.Args[0])
	}
}

func TestLowerMemberAssignToSetCall(t *testing.T) {
	prog := lowerSource(t, `struct U { n: i32 }
fn main() { let u = U{n: 1}; u.n = 2; }`)
	main := findFunc(t, prog, "main")

	stmt, ok := main.Body[1].(*ir.ExprStmt)
	if !ok {
		t.Fatalf("expected an ExprStmt for the member assignment, got %T", main.Body[1])
	}
	call, ok := stmt.Value.(*ir.Call)
	if !ok || call.Callee != "__set" {
		t.Fatalf("expected a __set call, got %v", stmt.Value)
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected (obj, field, value), got %d args", len(call.Args))
	}
	field, ok := call.Args[1].(*ir.String)
	if !ok || field.Value != "n" {
		t.Fatalf("expected the field name literal, got %v", call.Args[1])
	}
}

func TestLowerImplMethodsAsMangledFunctions(t *testing.T) {
	prog := lowerSource(t, `trait P { fn p(self: Self) -> void; }
struct U { name: string }
impl P for U { fn p(self: Self) { self.name; } }
fn main() { let u = U{name: "A"}; u.p(); }`)

	method := findFunc(t, prog, "P$U$p")
	if len(method.Params) != 1 || method.Params[0] != "self" {
		t.Fatalf("expected the receiver parameter, got %v", method.Params)
	}

	main := findFunc(t, prog, "main")
	found := false
	for _, s := range main.Body {
		es, ok := s.(*ir.ExprStmt)
		if !ok {
			continue
		}
		if call, ok := es.Value.(*ir.Call); ok && call.Callee == "P$U$p" {
			if len(call.Args) != 1 {
				t.Fatalf("expected the receiver passed as the sole argument, got %d", len(call.Args))
			}
			found = true
		}
	}
	if !found {
		t.Fatal("expected the method call rewritten to the mangled free function")
	}
}

func TestLowerMatchExprPreservesWildcardArm(t *testing.T) {
	prog := lowerSource(t, `enum Option<T> { Some(T), None }
fn unwrap_or_zero(x: Option<i32>) -> i32 {
  return match (x) {
    Some(v) => v,
    _ => 0,
  };
}`)
	fn := findFunc(t, prog, "unwrap_or_zero")

	ret, ok := fn.Body[0].(*ir.Return)
	if !ok {
		t.Fatalf("expected a Return, got %T", fn.Body[0])
	}
	match, ok := ret.Value.(*ir.MatchExpr)
	if !ok {
		t.Fatalf("expected an ir.MatchExpr, got %T", ret.Value)
	}
	if len(match.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(match.Arms))
	}
	if match.Arms[0].Variant == nil || *match.Arms[0].Variant != "Some" {
		t.Fatalf("expected the first arm to match Some, got %v", match.Arms[0].Variant)
	}
	if match.Arms[1].Variant != nil {
		t.Fatal("expected the wildcard arm preserved as Variant nil")
	}
}
