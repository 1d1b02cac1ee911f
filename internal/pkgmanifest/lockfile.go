// Package pkgmanifest loads and queries lumina.lock.json, the package
// resolution lockfile consulted for bare import specs.
package pkgmanifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// SchemaVersion is the only lockfile version this toolchain accepts.
const SchemaVersion = 1

// Lumina describes how a locked package exposes its Lumina sources:
// either a single entry path, or a map of subpath -> path for packages
// with multiple export subpaths.
type Lumina struct {
	Entry      string
	Subpaths   map[string]string
	isSubpaths bool
}

// UnmarshalJSON accepts either a bare string or an object of subpaths.
func (l *Lumina) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.Entry = s
		l.isSubpaths = false
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("lumina.lock.json: \"lumina\" field must be a string or object: %w", err)
	}
	l.Subpaths = m
	l.isSubpaths = true
	return nil
}

// Resolve returns the path to use for the given export subpath (empty
// string for the package's default entry point).
func (l *Lumina) Resolve(subpath string) (string, bool) {
	if l == nil {
		return "", false
	}
	if !l.isSubpaths {
		if subpath == "" {
			return l.Entry, true
		}
		return "", false
	}
	p, ok := l.Subpaths[subpath]
	return p, ok
}

// PackageEntry is one locked package record.
type PackageEntry struct {
	Version  string  `json:"version"`
	Resolved string  `json:"resolved"`
	Lumina   *Lumina `json:"lumina,omitempty"`
}

// Lockfile is the parsed form of lumina.lock.json.
type Lockfile struct {
	LockfileVersion int                     `json:"lockfileVersion"`
	Packages        map[string]PackageEntry `json:"packages"`
}

// Load reads and parses a lockfile from disk. A missing or unreadable
// file is returned as the os.ReadFile error; malformed JSON or a
// lockfileVersion other than SchemaVersion is returned as a
// lumina.lock.json error. The project manager reports
// diag.CodePkgNoLockfile itself when it has no lockfile at all.
func Load(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lf Lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("lumina.lock.json: %w", err)
	}
	if lf.LockfileVersion != SchemaVersion {
		return nil, fmt.Errorf("lumina.lock.json: unsupported lockfileVersion %d (want %d)", lf.LockfileVersion, SchemaVersion)
	}
	return &lf, nil
}

// LookupResult is the outcome of resolving a bare import spec against a
// Lockfile, distinguishing the package-resolution failure modes
// (PKG-001..003) from success.
type LookupResult struct {
	ResolvedPath string
	Err          PackageError
}

// PackageError enumerates the non-lockfile-missing failure reasons.
type PackageError int

const (
	ErrNone PackageError = iota
	ErrUnknownPackage
	ErrMissingLumina
	ErrMissingSubpath
)

// Resolve looks up a bare package spec ("pkg" or "pkg/sub") against the
// lockfile, returning the resolved file path or a PackageError
// describing which of PKG-001/002/003 applies.
func (lf *Lockfile) Resolve(pkg, subpath string) LookupResult {
	entry, ok := lf.Packages[pkg]
	if !ok {
		return LookupResult{Err: ErrUnknownPackage}
	}
	if entry.Lumina == nil {
		return LookupResult{Err: ErrMissingLumina}
	}
	resolved, ok := entry.Lumina.Resolve(subpath)
	if !ok {
		return LookupResult{Err: ErrMissingSubpath}
	}
	return LookupResult{ResolvedPath: resolved}
}
