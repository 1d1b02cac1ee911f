package sema

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/types"
)

// Instantiation records the type/const bindings a generic call site
// resolved to, consumed by the monomorphizer (C5) to select or create a
// specialization.
type Instantiation struct {
	Callee        string
	TypeBindings  map[string]types.Type
	ConstBindings types.ConstBindings
}

// TraitMethodResolution records how a method call on a value resolved to
// one impl's method. MangledName is
// sanitize(TraitType)$sanitize(ForType)$sanitize(MethodName); in this
// implementation TraitType is always the trait's own name (traits carry
// no separate type form).
type TraitMethodResolution struct {
	TraitName   string
	TraitType   string
	ForType     string
	MethodName  string
	MangledName string
}

// SemanticResult is the output of analyzing one program.
type SemanticResult struct {
	Symbols       *SymbolTable
	Reporter      *diag.Reporter
	Subst         types.Substitution
	VarGen        *types.VarGen
	InferredExprs map[int]types.Type // expression id -> inferred type
	InferredCalls map[int]*Instantiation
	TraitResolutions map[int]*TraitMethodResolution // call-expr id -> resolution
	InferredFnParams map[string][]types.Type // function name -> parameter types
	InferredFnReturns map[string]types.Type  // function name -> return type

	Structs map[string]*ast.StructDecl
	Enums   map[string]*ast.EnumDecl
	Aliases map[string]*ast.TypeAliasDecl
	Traits  map[string]*ast.TraitDecl
	Impls   []*ast.ImplDecl
	Funcs   map[string]*ast.FuncDecl
}

// FnReturnType returns the fully pruned return type inferred for the
// named function, if its body was checked (or skipped with a cached
// type supplied) this run.
func (r *SemanticResult) FnReturnType(name string) (types.Type, bool) {
	t, ok := r.InferredFnReturns[name]
	if !ok {
		return nil, false
	}
	return types.Prune(t, r.Subst), true
}

// ExprType returns the fully pruned type inferred for expr, if any.
func (r *SemanticResult) ExprType(id int) (types.Type, bool) {
	t, ok := r.InferredExprs[id]
	if !ok {
		return nil, false
	}
	return types.Prune(t, r.Subst), true
}
