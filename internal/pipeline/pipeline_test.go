package pipeline

import (
	"strings"
	"testing"

	"github.com/lumina-lang/luminac/testutil"
)

func TestCompile_CheckModeStopsAfterAnalysis(t *testing.T) {
	res, err := Compile("pub fn main() { let x = 1; }", Config{Mode: ModeCheck})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IR != nil {
		t.Fatal("expected ModeCheck to stop before IR lowering")
	}
	if res.Sema == nil {
		t.Fatal("expected semantic analysis to have run")
	}
}

func TestCompile_EmitJS(t *testing.T) {
	res, err := Compile("pub fn add(a, b) { return a + b; }\npub fn main() { let r = add(1, 2); }", Config{
		Mode:   ModeEmit,
		Target: TargetJS,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Code == "" {
		t.Fatal("expected emitted JS code")
	}
	if !strings.Contains(res.Code, "function add") {
		t.Fatalf("expected add() in emitted code, got:\n%s", res.Code)
	}
}

func TestCompile_EmitWAT(t *testing.T) {
	res, err := Compile("pub fn add(a, b) { return a + b; }\npub fn main() { let r = add(1, 2); }", Config{
		Mode:   ModeEmit,
		Target: TargetWAT,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Code, "(module") {
		t.Fatalf("expected a WAT module, got:\n%s", res.Code)
	}
}

func TestCompile_DumpIRAndSSA(t *testing.T) {
	res, err := Compile("pub fn main() { let x = 1 + 2; }", Config{
		Mode:    ModeEmit,
		Target:  TargetJS,
		DumpIR:  true,
		DumpSSA: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IRDump == "" || res.SSADump == "" {
		t.Fatal("expected both IR and SSA dumps to be populated")
	}
}

func TestCompile_ParseErrorStopsAtDiagnostics(t *testing.T) {
	res, err := Compile("pub fn broken( {", Config{Mode: ModeEmit, Target: TargetJS})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected diagnostics for malformed source")
	}
	if res.Code != "" {
		t.Fatal("expected no emitted code when parsing failed")
	}
}

// Emission is deterministic: two full pipeline runs over the same
// source produce identical output text and source maps.
func TestCompile_DeterministicEmission(t *testing.T) {
	src := `fn id<T>(x: T) -> T { return x; }
pub fn main() { let a = id(1); let b = id("hi"); }`
	first, err := Compile(src, Config{Mode: ModeEmit, Target: TargetJS, SourceMap: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compile(src, Config{Mode: ModeEmit, Target: TargetJS, SourceMap: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Code != second.Code {
		t.Fatalf("emitted code differs between runs:\n%s", testutil.DiffJSON(first.Code, second.Code))
	}
	if diff := testutil.DiffJSON(first.SourceMap, second.SourceMap); diff != "" {
		t.Fatalf("source maps differ between runs:\n%s", diff)
	}
}

// Spec scenario: `let x = 1 + 2; return x * 3;` folds to a bare
// `return 9;` in the emitted JS.
func TestCompile_ArithmeticFoldsToLiteral(t *testing.T) {
	res, err := Compile("pub fn main() { let x = 1 + 2; return x * 3; }", Config{Mode: ModeEmit, Target: TargetJS})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Code, "return 9;") {
		t.Fatalf("expected the fold to reach the emitted code, got:\n%s", res.Code)
	}
	if strings.Contains(res.Code, "1 + 2") {
		t.Fatalf("expected the original arithmetic gone, got:\n%s", res.Code)
	}
}

// Spec scenario: a resolved trait-method call emits the mangled free
// function and a call through it.
func TestCompile_TraitMethodEmitsMangledFunction(t *testing.T) {
	src := `trait P { fn p(self: Self) -> void; }
struct U { name: string }
impl P for U { fn p(self: Self) { self.name; } }
pub fn main() { let u = U{name: "A"}; u.p(); }`
	res, err := Compile(src, Config{Mode: ModeEmit, Target: TargetJS})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Code, "function P$U$p(self)") {
		t.Fatalf("expected the mangled method function, got:\n%s", res.Code)
	}
	if !strings.Contains(res.Code, "P$U$p(u)") {
		t.Fatalf("expected the rewritten call site, got:\n%s", res.Code)
	}
}

// Spec scenario: a bare package import with no lockfile yields exactly
// one PKG-004 diagnostic mentioning the lockfile by name.
func TestCompile_MissingLockfileDiagnostic(t *testing.T) {
	res, err := Compile("import { x } from \"pkg\";\npub fn main() { }", Config{Mode: ModeCheck})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for _, d := range res.Diagnostics {
		if d.Code == "PKG-004" {
			count++
			if !strings.Contains(d.Message, "lumina.lock.json not found") {
				t.Fatalf("expected the lockfile named in the message, got %q", d.Message)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one PKG-004 diagnostic, got %d", count)
	}
}
