// Package project implements the project/module manager: a document
// map keyed by URI, incremental parse+analyze on edit, import
// resolution across relative specs and a lockfile, prelude injection,
// and panic-mode parse recovery. Incremental body/signature hashing is
// built on internal/sid.
package project

import (
	"path"
	"sort"
	"strings"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/pkgmanifest"
	"github.com/lumina-lang/luminac/internal/sema"
	"github.com/lumina-lang/luminac/internal/sid"
	"github.com/lumina-lang/luminac/internal/types"
)

// Loader resolves a URI to source text. Manager.Load delegates any URI
// that is not already a registered document to this function.
type Loader func(uri string) (string, bool)

// Document is the per-URI state the manager owns.
type Document struct {
	URI      string
	Text     string
	Version  int
	Imports  []string
	AST      *ast.Program
	Sema     *sema.SemanticResult
	ParseErrs []diag.Diagnostic

	funcBodyHashes  map[string]sid.Hash
	signatures      map[string]sid.Hash
	inferredReturns map[string]types.Type
}

// UpdateResult is what addOrUpdate reports back.
type UpdateResult struct {
	SignatureChanged bool
	ChangedSymbols   []string
}

// Config configures a Manager at construction.
type Config struct {
	Loader      Loader
	Lockfile    *pkgmanifest.Lockfile
	PreludeURI  string // defaults to "virtual://std/prelude.lm"
	PreludeText string
	MaxErrors   int // panic-mode recovery bound, default 25
}

// Manager owns the document map and the import dependency graph.
type Manager struct {
	cfg Config

	documents map[string]*Document
	deps      map[string][]string // importer uri -> importee uris
	loading   map[string]bool     // cycle guard: uri currently being parsed
}

const defaultPreludeURI = "virtual://std/prelude.lm"

// New constructs a Manager and registers the prelude as a virtual file.
func New(cfg Config) *Manager {
	if cfg.MaxErrors == 0 {
		cfg.MaxErrors = 25
	}
	if cfg.PreludeURI == "" {
		cfg.PreludeURI = defaultPreludeURI
	}
	m := &Manager{
		cfg:       cfg,
		documents: map[string]*Document{},
		deps:      map[string][]string{},
		loading:   map[string]bool{},
	}
	if cfg.PreludeText != "" {
		m.RegisterVirtualFile(cfg.PreludeURI, cfg.PreludeText)
	}
	return m
}

// normalizeURI puts file paths and virtual:// specs into one
// namespace: virtual specs pass through unchanged, file paths are
// cleaned.
func normalizeURI(uri string) string {
	if strings.HasPrefix(uri, "virtual://") {
		return uri
	}
	return path.Clean(uri)
}

// RegisterVirtualFile registers text under a synthetic virtual:// spec,
// used by playground/test hosts.
func (m *Manager) RegisterVirtualFile(spec, text string) {
	uri := normalizeURI(spec)
	m.AddOrUpdate(uri, text, 0)
}

// AddOrUpdate parses and analyzes uri's text, storing the result and
// reporting whether any public signature changed. When a
// function's body hash is unchanged since the prior update, its body is
// skipped and the cached inferred return type reused; when a public
// signature changed, dependents are re-analyzed in dependency order.
func (m *Manager) AddOrUpdate(uri string, text string, version int) UpdateResult {
	return m.addOrUpdate(uri, text, version, map[string]bool{})
}

func (m *Manager) addOrUpdate(uri, text string, version int, visited map[string]bool) UpdateResult {
	uri = normalizeURI(uri)
	visited[uri] = true

	prevSigs := map[string]sid.Hash{}
	prevBodies := map[string]sid.Hash{}
	var prevReturns map[string]types.Type
	if prev, ok := m.documents[uri]; ok {
		prevSigs = prev.signatures
		prevBodies = prev.funcBodyHashes
		prevReturns = prev.inferredReturns
	}

	doc := &Document{URI: uri, Text: text, Version: version}
	doc.Imports = extractImports(text)

	prog, diags := m.parseWithRecovery(uri, text)
	doc.AST = prog
	doc.ParseErrs = diags

	if prog != nil {
		// Hash bodies before prelude injection: prelude declarations
		// carry offsets into the prelude's own text, not this
		// document's, and must not pollute the incremental cache.
		doc.funcBodyHashes = bodyHashes(prog, text)
		doc.signatures = signatureHashes(prog)

		skip := map[string]types.Type{}
		for name, h := range doc.funcBodyHashes {
			if prev, ok := prevBodies[name]; ok && prev == h {
				if ret, ok := prevReturns[name]; ok {
					skip[name] = ret
				}
			}
		}

		m.injectPrelude(prog, uri)
		doc.Sema = sema.AnalyzeWithOptions(prog, sema.Options{SkipBodies: skip})

		doc.inferredReturns = map[string]types.Type{}
		for name := range doc.funcBodyHashes {
			if ret, ok := doc.Sema.FnReturnType(name); ok {
				doc.inferredReturns[name] = ret
			}
		}
	}

	m.documents[uri] = doc
	m.deps[uri] = m.resolveImports(uri, doc.Imports)
	m.checkImportVisibility(doc)

	res := diffSignatures(prevSigs, doc.signatures)
	if res.SignatureChanged {
		m.reanalyzeDependents(uri, visited)
	}
	return res
}

// reanalyzeDependents re-runs analysis over every document that
// (transitively) imports uri, in dependency order, visiting each node
// at most once per edit so import cycles terminate.
func (m *Manager) reanalyzeDependents(uri string, visited map[string]bool) {
	// Snapshot and sort the dependents before recursing: the nested
	// updates write back into m.deps, and a stable order keeps
	// re-analysis deterministic across runs.
	var dependents []string
	for depURI, importees := range m.deps {
		if visited[depURI] {
			continue
		}
		for _, imp := range importees {
			// Relative specs resolve without the on-disk extension.
			if imp == uri || imp+".lm" == uri {
				dependents = append(dependents, depURI)
				break
			}
		}
	}
	sort.Strings(dependents)
	for _, depURI := range dependents {
		if visited[depURI] {
			continue
		}
		doc := m.documents[depURI]
		if doc == nil {
			continue
		}
		m.addOrUpdate(depURI, doc.Text, doc.Version, visited)
	}
}

// checkImportVisibility reports VIS-PRIVATE for every named import of a
// symbol its exporting module declares as private. The check is owned
// by the manager since only it can see both sides of an import edge.
func (m *Manager) checkImportVisibility(doc *Document) {
	if doc.AST == nil {
		return
	}
	for _, d := range doc.AST.Decls {
		imp, ok := d.(*ast.ImportDecl)
		if !ok || len(imp.Names) == 0 {
			continue
		}
		depURI, ok := m.resolveOneQuiet(doc.URI, imp.Path)
		if !ok {
			continue
		}
		dep, ok := m.documents[normalizeURI(depURI)]
		if !ok {
			// Relative specs omit the extension; try the on-disk form.
			dep, ok = m.documents[normalizeURI(depURI+".lm")]
		}
		if !ok || dep.Sema == nil {
			continue
		}
		for _, name := range imp.Names {
			sym, found := dep.Sema.Symbols.Root.Lookup(name)
			if !found || sym.IsPublic {
				continue
			}
			doc.ParseErrs = append(doc.ParseErrs, diag.Error(diag.SourceProject, diag.CodeVisPrivate,
				"symbol \""+name+"\" is private to "+imp.Path, imp.Location))
		}
	}
}

func diffSignatures(prev, next map[string]sid.Hash) UpdateResult {
	var changed []string
	sigChanged := false
	for name, h := range next {
		if old, ok := prev[name]; !ok || old != h {
			changed = append(changed, name)
			sigChanged = true
		}
	}
	for name := range prev {
		if _, ok := next[name]; !ok {
			changed = append(changed, name)
			sigChanged = true
		}
	}
	return UpdateResult{SignatureChanged: sigChanged, ChangedSymbols: changed}
}

// injectPrelude merges the prelude's exported symbols into prog's scope
// before analysis, unless prog is itself the prelude.
func (m *Manager) injectPrelude(prog *ast.Program, uri string) {
	if uri == m.cfg.PreludeURI {
		return
	}
	prelude, ok := m.documents[m.cfg.PreludeURI]
	if !ok || prelude.AST == nil {
		return
	}
	prog.Decls = append(append([]ast.Decl{}, prelude.AST.Decls...), prog.Decls...)
}

// GetDiagnostics returns every diagnostic known for uri: parse errors
// plus semantic-analysis diagnostics.
func (m *Manager) GetDiagnostics(uri string) []diag.Diagnostic {
	doc, ok := m.documents[normalizeURI(uri)]
	if !ok {
		return nil
	}
	var out []diag.Diagnostic
	out = append(out, doc.ParseErrs...)
	if doc.Sema != nil {
		out = append(out, doc.Sema.Reporter.All()...)
	}
	return out
}

func (m *Manager) GetSymbols(uri string) *sema.SymbolTable {
	doc, ok := m.documents[normalizeURI(uri)]
	if !ok || doc.Sema == nil {
		return nil
	}
	return doc.Sema.Symbols
}

func (m *Manager) GetDocumentAst(uri string) *ast.Program {
	doc, ok := m.documents[normalizeURI(uri)]
	if !ok {
		return nil
	}
	return doc.AST
}

func (m *Manager) GetDependencies(uri string) []string {
	return m.deps[normalizeURI(uri)]
}

// GetDocument exposes the full per-document record, used by the
// pipeline orchestrator to reach the semantic result directly.
func (m *Manager) GetDocument(uri string) (*Document, bool) {
	doc, ok := m.documents[normalizeURI(uri)]
	return doc, ok
}

// extractImports scans source for `import` lines without a full parse,
// giving the dependency graph its edges even when the document does
// not parse.
func extractImports(src string) []string {
	var out []string
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "import ") {
			continue
		}
		rest := strings.TrimPrefix(line, "import ")
		rest = strings.TrimSuffix(strings.TrimSpace(rest), ";")
		// import { a, b } from "spec";  OR  import "spec";
		if idx := strings.LastIndex(rest, "from"); idx >= 0 {
			rest = rest[idx+len("from"):]
		}
		rest = strings.TrimSpace(rest)
		rest = strings.Trim(rest, `"'`)
		if rest != "" {
			out = append(out, rest)
		}
	}
	return out
}
