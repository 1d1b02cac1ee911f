package project

import (
	"strings"
	"testing"

	"github.com/lumina-lang/luminac/internal/pkgmanifest"
)

func TestAddOrUpdate_ParsesAndAnalyzes(t *testing.T) {
	m := New(Config{})
	res := m.AddOrUpdate("virtual://main.lm", "pub fn main() { let x = 1; }", 1)
	if !res.SignatureChanged {
		t.Fatal("expected the first update to report a signature change for pub fn main")
	}
	doc, ok := m.GetDocument("virtual://main.lm")
	if !ok || doc.AST == nil {
		t.Fatal("expected a stored document with a parsed AST")
	}
	if doc.Sema == nil {
		t.Fatal("expected semantic analysis to have run")
	}
}

func TestAddOrUpdate_NoSignatureChangeWhenBodyOnlyEdits(t *testing.T) {
	m := New(Config{})
	m.AddOrUpdate("virtual://main.lm", "pub fn main() { let x = 1; }", 1)
	res := m.AddOrUpdate("virtual://main.lm", "pub fn main() { let x = 2; }", 2)
	if res.SignatureChanged {
		t.Fatalf("expected no signature change across a body-only edit, got changed=%v", res.ChangedSymbols)
	}
}

func TestGetDiagnostics_ReportsParseErrors(t *testing.T) {
	m := New(Config{})
	m.AddOrUpdate("virtual://bad.lm", "pub fn main( { }", 1)
	diags := m.GetDiagnostics("virtual://bad.lm")
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for malformed source")
	}
}

func TestResolveOne_RelativeImport(t *testing.T) {
	m := New(Config{})
	m.AddOrUpdate("virtual://pkg/util.lm", "pub fn helper() { }", 1)
	m.AddOrUpdate("virtual://pkg/main.lm", "import \"./util\";\npub fn main() { }", 1)
	deps := m.GetDependencies("virtual://pkg/main.lm")
	found := false
	for _, d := range deps {
		if strings.Contains(d, "util") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a resolved dependency on util, got %v", deps)
	}
}

func TestResolveOne_MissingLockfileDiagnostic(t *testing.T) {
	m := New(Config{})
	m.AddOrUpdate("virtual://main.lm", "import \"somepkg\";\npub fn main() { }", 1)
	diags := m.GetDiagnostics("virtual://main.lm")
	found := false
	for _, d := range diags {
		if d.Code == "PKG-004" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected PKG-004 for a bare import with no lockfile, got %v", diags)
	}
}

func TestResolveOne_UnknownPackageDiagnostic(t *testing.T) {
	lf := &pkgmanifest.Lockfile{LockfileVersion: 1, Packages: map[string]pkgmanifest.PackageEntry{}}
	m := New(Config{Lockfile: lf})
	m.AddOrUpdate("virtual://main.lm", "import \"somepkg\";\npub fn main() { }", 1)
	diags := m.GetDiagnostics("virtual://main.lm")
	found := false
	for _, d := range diags {
		if d.Code == "PKG-001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected PKG-001 for an unknown package, got %v", diags)
	}
}

func TestPreludeInjection_MergesDeclsIntoUserDocument(t *testing.T) {
	m := New(Config{PreludeText: "pub fn identity(x) { return x; }"})
	m.AddOrUpdate("virtual://main.lm", "pub fn main() { }", 1)
	doc, _ := m.GetDocument("virtual://main.lm")
	if len(doc.AST.Decls) < 2 {
		t.Fatalf("expected prelude decls merged ahead of user decls, got %d decls", len(doc.AST.Decls))
	}
}

func TestParseWithRecovery_BlanksSkippedRegionAndPreservesLines(t *testing.T) {
	m := New(Config{})
	src := "pub fn broken( {\npub fn main() { }"
	_, diags := m.parseWithRecovery("virtual://x.lm", src)
	if len(diags) == 0 {
		t.Fatal("expected at least one recovery diagnostic")
	}
}

func TestAddOrUpdate_BodyHashSkipKeepsInferredReturn(t *testing.T) {
	m := New(Config{})
	m.AddOrUpdate("virtual://main.lm", "pub fn answer() -> i32 { return 42; }\npub fn main() { }", 1)
	doc, _ := m.GetDocument("virtual://main.lm")
	if _, ok := doc.inferredReturns["answer"]; !ok {
		t.Fatal("expected an inferred return type cached for answer")
	}
	firstHash := doc.funcBodyHashes["answer"]

	// main's body changes; answer's does not, so its hash must be
	// stable and its cached return type reused.
	res := m.AddOrUpdate("virtual://main.lm", "pub fn answer() -> i32 { return 42; }\npub fn main() { let x = 1; }", 2)
	if res.SignatureChanged {
		t.Fatalf("expected a body-only edit to keep signatures, got changed=%v", res.ChangedSymbols)
	}
	doc, _ = m.GetDocument("virtual://main.lm")
	if doc.funcBodyHashes["answer"] != firstHash {
		t.Fatal("expected answer's body hash to be stable across an unrelated edit")
	}
	if _, ok := doc.inferredReturns["answer"]; !ok {
		t.Fatal("expected answer's inferred return to survive the update")
	}
}

func TestCheckImportVisibility_PrivateSymbolReported(t *testing.T) {
	m := New(Config{})
	m.AddOrUpdate("virtual://lib.lm", "fn secret() { }\npub fn open() { }", 1)
	m.AddOrUpdate("virtual://main.lm", "import { secret } from \"./lib\";\npub fn main() { }", 1)
	diags := m.GetDiagnostics("virtual://main.lm")
	found := false
	for _, d := range diags {
		if d.Code == "VIS-PRIVATE" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected VIS-PRIVATE for importing a private symbol, got %v", diags)
	}
}

func TestCheckImportVisibility_PublicSymbolAccepted(t *testing.T) {
	m := New(Config{})
	m.AddOrUpdate("virtual://lib.lm", "pub fn open() { }", 1)
	m.AddOrUpdate("virtual://main.lm", "import { open } from \"./lib\";\npub fn main() { }", 1)
	for _, d := range m.GetDiagnostics("virtual://main.lm") {
		if d.Code == "VIS-PRIVATE" {
			t.Fatalf("unexpected VIS-PRIVATE for a public import: %v", d)
		}
	}
}

func TestAddOrUpdate_SignatureChangeReanalyzesDependents(t *testing.T) {
	m := New(Config{})
	m.AddOrUpdate("virtual://lib.lm", "pub fn helper() { }", 1)
	m.AddOrUpdate("virtual://main.lm", "import { helper } from \"./lib\";\npub fn main() { }", 1)
	before, _ := m.GetDocument("virtual://main.lm")

	res := m.AddOrUpdate("virtual://lib.lm", "pub fn helper(x: i32) { }", 2)
	if !res.SignatureChanged {
		t.Fatal("expected a parameter-list edit to report a signature change")
	}
	after, _ := m.GetDocument("virtual://main.lm")
	if before == after {
		t.Fatal("expected the dependent document to be re-analyzed after a signature change")
	}
}

func TestAddOrUpdate_ChangedSymbolsListsEditedDecl(t *testing.T) {
	m := New(Config{})
	m.AddOrUpdate("virtual://main.lm", "pub fn helper() { }\npub fn main() { }", 1)
	res := m.AddOrUpdate("virtual://main.lm", "pub fn helper(x: i32) { }\npub fn main() { }", 2)
	if !res.SignatureChanged {
		t.Fatal("expected a signature change")
	}
	found := false
	for _, s := range res.ChangedSymbols {
		if s == "helper" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected helper in changedSymbols, got %v", res.ChangedSymbols)
	}
}
