package diag

// Stable diagnostic codes. Each constant is the taxonomy code
// attached to Diagnostic.Code; messages are built by the call site.
const (
	CodeParseError = "PARSE_ERROR"

	// Package/lockfile resolution.
	CodePkgNoLockfile       = "PKG-004"
	CodePkgUnknownPackage   = "PKG-001"
	CodePkgMissingLumina    = "PKG-002"
	CodePkgMissingSubpath   = "PKG-003"

	// Semantic analysis.
	CodeVisPrivate       = "VIS-PRIVATE"
	CodeUnknownIdent     = "UNKNOWN-IDENT"
	CodeUnknownFn        = "UNKNOWN-FN"
	CodeDupDecl          = "DUP-DECL"
	CodeAmbiguousMethod  = "AMBIGUOUS-METHOD"
	CodeMemberNotFound   = "MEMBER-NOT-FOUND"
	CodeArraySizeMismatch = "ARRAY-SIZE-MISMATCH"
	CodeArrayElemType    = "ARRAY-ELEM-TYPE"
	CodeTypeMismatch     = "TYPE-MISMATCH"
	CodeUnknownType      = "UNKNOWN-TYPE"

	// WAT codegen unsupported-feature reports.
	CodeWasmUnsupported = "WASM-001"
)

// Source tags attached to Diagnostic.Source, identifying which
// pipeline phase produced the diagnostic.
const (
	SourceParser   = "parser"
	SourceProject  = "project"
	SourceAnalyzer = "analyzer"
	SourceMono     = "monomorphizer"
	SourceSSA      = "ssa"
	SourceCodegenJS  = "codegen-js"
	SourceCodegenWAT = "codegen-wat"
)
