package pkgmanifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_EntryString(t *testing.T) {
	lf := &Lockfile{LockfileVersion: 1, Packages: map[string]PackageEntry{
		"pkg": {Version: "1.0.0", Resolved: "https://example.com/pkg", Lumina: &Lumina{Entry: "lib/pkg.lm"}},
	}}
	res := lf.Resolve("pkg", "")
	if res.Err != ErrNone || res.ResolvedPath != "lib/pkg.lm" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestResolve_UnknownPackage(t *testing.T) {
	lf := &Lockfile{LockfileVersion: 1, Packages: map[string]PackageEntry{}}
	if res := lf.Resolve("missing", ""); res.Err != ErrUnknownPackage {
		t.Fatalf("expected ErrUnknownPackage, got %+v", res)
	}
}

func TestResolve_MissingLuminaField(t *testing.T) {
	lf := &Lockfile{LockfileVersion: 1, Packages: map[string]PackageEntry{
		"pkg": {Version: "1.0.0", Resolved: "https://example.com/pkg"},
	}}
	if res := lf.Resolve("pkg", ""); res.Err != ErrMissingLumina {
		t.Fatalf("expected ErrMissingLumina, got %+v", res)
	}
}

func TestResolve_SubpathMapAndMiss(t *testing.T) {
	lf := &Lockfile{LockfileVersion: 1, Packages: map[string]PackageEntry{
		"pkg": {Lumina: &Lumina{Subpaths: map[string]string{"sub": "lib/sub.lm"}, isSubpaths: true}},
	}}
	if res := lf.Resolve("pkg", "sub"); res.Err != ErrNone || res.ResolvedPath != "lib/sub.lm" {
		t.Fatalf("unexpected subpath result: %+v", res)
	}
	if res := lf.Resolve("pkg", "other"); res.Err != ErrMissingSubpath {
		t.Fatalf("expected ErrMissingSubpath, got %+v", res)
	}
}

func TestUnmarshalLumina_BothShapes(t *testing.T) {
	var entry Lumina
	if err := json.Unmarshal([]byte(`"lib/main.lm"`), &entry); err != nil {
		t.Fatalf("string shape: %v", err)
	}
	if entry.Entry != "lib/main.lm" {
		t.Fatalf("Entry = %q", entry.Entry)
	}

	var sub Lumina
	if err := json.Unmarshal([]byte(`{"sub": "lib/sub.lm"}`), &sub); err != nil {
		t.Fatalf("object shape: %v", err)
	}
	if sub.Subpaths["sub"] != "lib/sub.lm" {
		t.Fatalf("Subpaths = %v", sub.Subpaths)
	}
}

func TestLoad_ParsesLockfileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumina.lock.json")
	text := `{"lockfileVersion": 1, "packages": {"pkg": {"version": "1.0.0", "resolved": "r", "lumina": "lib/pkg.lm"}}}`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	lf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lf.LockfileVersion != 1 {
		t.Fatalf("LockfileVersion = %d", lf.LockfileVersion)
	}
	if res := lf.Resolve("pkg", ""); res.ResolvedPath != "lib/pkg.lm" {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}
