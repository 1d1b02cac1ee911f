package project

import (
	"fmt"
	"path"
	"strings"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/pkgmanifest"
)

// resolveImports turns each raw import spec from importerUri into a
// resolved document URI, recording PKG-00x diagnostics on the importer
// for anything that doesn't resolve.
func (m *Manager) resolveImports(importerURI string, specs []string) []string {
	var resolved []string
	for _, spec := range specs {
		uri, ok := m.resolveOne(importerURI, spec)
		if ok {
			resolved = append(resolved, uri)
		}
	}
	return resolved
}

func (m *Manager) resolveOne(importerURI, spec string) (string, bool) {
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		return resolveRelative(importerURI, spec), true
	}

	pkg, subpath := splitPackageSpec(spec)
	if m.cfg.Lockfile == nil {
		m.addDiagnostic(importerURI, diag.CodePkgNoLockfile, "lumina.lock.json not found; cannot resolve package %q", spec)
		return "", false
	}
	res := m.cfg.Lockfile.Resolve(pkg, subpath)
	switch res.Err {
	case pkgmanifest.ErrNone:
		return res.ResolvedPath, true
	case pkgmanifest.ErrUnknownPackage:
		m.addDiagnostic(importerURI, diag.CodePkgUnknownPackage, "unknown package %q", pkg)
	case pkgmanifest.ErrMissingLumina:
		m.addDiagnostic(importerURI, diag.CodePkgMissingLumina, "package %q has no \"lumina\" entry", pkg)
	case pkgmanifest.ErrMissingSubpath:
		m.addDiagnostic(importerURI, diag.CodePkgMissingSubpath, "package %q has no subpath %q", pkg, subpath)
	}
	return "", false
}

// resolveOneQuiet resolves a spec without reporting diagnostics, for
// callers (the visibility checker) that run after resolveImports has
// already reported every failure once.
func (m *Manager) resolveOneQuiet(importerURI, spec string) (string, bool) {
	if strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") {
		return resolveRelative(importerURI, spec), true
	}
	if m.cfg.Lockfile == nil {
		return "", false
	}
	pkg, subpath := splitPackageSpec(spec)
	res := m.cfg.Lockfile.Resolve(pkg, subpath)
	if res.Err != pkgmanifest.ErrNone {
		return "", false
	}
	return res.ResolvedPath, true
}

func resolveRelative(importerURI, spec string) string {
	dir := path.Dir(stripVirtualPrefix(importerURI))
	resolved := path.Clean(path.Join(dir, spec))
	if strings.HasPrefix(importerURI, "virtual://") {
		resolved = "virtual://" + resolved
	}
	return resolved
}

func splitPackageSpec(spec string) (pkg, subpath string) {
	parts := strings.SplitN(spec, "/", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

func stripVirtualPrefix(uri string) string {
	return strings.TrimPrefix(uri, "virtual://")
}

// addDiagnostic attaches a resolution-failure diagnostic to the
// importer's document, if it's already registered; this is a
// best-effort record kept alongside the parse/sema diagnostics so
// GetDiagnostics surfaces it.
func (m *Manager) addDiagnostic(uri, code, format string, args ...any) {
	doc, ok := m.documents[normalizeURI(uri)]
	if !ok {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	doc.ParseErrs = append(doc.ParseErrs, diag.Error(diag.SourceProject, code, msg, ast.Location{}))
}

// Load resolves uri through the configured Loader (if not already a
// registered document) and recursively loads its import graph,
// guarding against cycles by treating a document as "loaded" the
// moment its parse begins.
func (m *Manager) Load(uri string) (*Document, bool) {
	uri = normalizeURI(uri)
	if doc, ok := m.documents[uri]; ok {
		return doc, true
	}
	if m.loading[uri] {
		return nil, false
	}
	if m.cfg.Loader == nil {
		return nil, false
	}
	text, ok := m.cfg.Loader(uri)
	if !ok {
		return nil, false
	}

	m.loading[uri] = true
	m.AddOrUpdate(uri, text, 0)
	delete(m.loading, uri)

	doc := m.documents[uri]
	for _, dep := range doc.Imports {
		depURI, ok := m.resolveOne(uri, dep)
		if !ok {
			continue
		}
		m.Load(depURI)
	}
	return doc, true
}
