package parser

import "testing"

func mustParse(t *testing.T, src string) {
	t.Helper()
	prog, err := Parse(src, "test.lm")
	if err != nil {
		t.Fatalf("parse failed: %s at %s", err.Message, err.Location)
	}
	if prog == nil || len(prog.Decls) == 0 {
		t.Fatalf("expected at least one declaration")
	}
}

func TestParseArithmeticFold(t *testing.T) {
	mustParse(t, `fn main() { let x = 1 + 2; return x * 3; }`)
}

func TestParseIfElseAssign(t *testing.T) {
	mustParse(t, `fn main(flag: bool) { let x = 0; if (flag) { x = 1; } else { x = 2; } return x; }`)
}

func TestParseWhileAssign(t *testing.T) {
	mustParse(t, `fn main(flag: bool) { let x = 0; while (flag) { x = x + 1; } return x; }`)
}

func TestParseGenericFunction(t *testing.T) {
	mustParse(t, `fn id<T>(x: T) -> T { return x; } fn main() { let a = id(1); let b = id("hi"); }`)
}

func TestParseTraitImplAndMethodCall(t *testing.T) {
	mustParse(t, `trait P { fn p(self: Self) -> void; }
struct U { name: string }
impl P for U { fn p(self: Self) { self.name; } }
fn main() { let u = U{name: "A"}; u.p(); }`)
}

func TestParseImport(t *testing.T) {
	mustParse(t, `import { x } from "pkg";
fn main() { return x; }`)
}

func TestParseEnumAndMatch(t *testing.T) {
	mustParse(t, `enum Option<T> { Some(T), None }
fn main() {
  let x = Some(1);
  match (x) {
    Some(v) => return v,
    None => return 0,
  }
}`)
}

func TestParseConstGenericStructAndArray(t *testing.T) {
	mustParse(t, `struct Vec<T, const N> { data: [T; N] }
fn main() { let v = Vec<i32, 3>{data: [1, 2, 3]}; }`)
}

func TestParsePipeline(t *testing.T) {
	mustParse(t, `fn f(x: i32) -> i32 { return x; }
fn main() { let y = 1 |> f(); }`)
}

func TestParseErrorReportsLocation(t *testing.T) {
	_, err := Parse(`fn main() { let x = ; }`, "test.lm")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if err.Location.Start.Line == 0 {
		t.Fatal("expected a populated location")
	}
}
