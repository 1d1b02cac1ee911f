// Package sema implements Lumina's semantic analyzer: scope
// and symbol-table construction, Hindley-Milner type inference with
// eager unification, trait-method resolution, and the checks that
// downstream phases rely on (array-size agreement, array element
// types; match exhaustiveness is not checked, and import visibility is
// checked by internal/project). A single-pass walker dispatches on concrete AST node
// types, threading mutable analysis state through the recursion.
package sema

import (
	"fmt"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/types"
)

// Analyzer walks one program, building its symbol table and inferring
// types. One Analyzer is used for exactly one Analyze call.
type Analyzer struct {
	prog *ast.Program

	structs     map[string]*ast.StructDecl
	enums       map[string]*ast.EnumDecl
	variants    map[string]variantInfo
	aliases     map[string]*ast.TypeAliasDecl
	traits      map[string]*ast.TraitDecl
	impls       []*ast.ImplDecl
	implsByType map[string][]*implDef
	funcs       map[string]*ast.FuncDecl
	topLets     map[string]*ast.TopLevelLetDecl

	symbols  *SymbolTable
	reporter *diag.Reporter
	vg       *types.VarGen
	subst    types.Substitution

	exprTypes     map[int]types.Type
	calls         map[int]*Instantiation
	traitRes      map[int]*TraitMethodResolution
	numericLits   []numericLiteral
	inferredRets  []int // variable ids standing in for an unannotated return type
	fnParams      map[string][]types.Type
	fnReturns     map[string]types.Type
	skipBodies    map[string]types.Type
}

// Options tunes one Analyze run. SkipBodies maps function names whose
// bodies may be skipped to their cached inferred return types: the
// project manager supplies it when a function's body hash is unchanged
// since the last analysis.
type Options struct {
	SkipBodies map[string]types.Type
}

// funcCtx carries the type/const parameter bindings in effect while
// analyzing one function body.
type funcCtx struct {
	typeParams map[string]types.Type
	constKnown map[string]int64
	returnType types.Type
}

// Analyze runs semantic analysis over prog and returns the complete
// result. Errors are reported as diagnostics, never as a Go error
// return: callers check Reporter.HasErrors().
func Analyze(prog *ast.Program) *SemanticResult {
	return AnalyzeWithOptions(prog, Options{})
}

// AnalyzeWithOptions is Analyze with the incremental-analysis knobs
// exposed.
func AnalyzeWithOptions(prog *ast.Program, opts Options) *SemanticResult {
	a := &Analyzer{
		prog:        prog,
		structs:     make(map[string]*ast.StructDecl),
		enums:       make(map[string]*ast.EnumDecl),
		variants:    make(map[string]variantInfo),
		aliases:     make(map[string]*ast.TypeAliasDecl),
		traits:      make(map[string]*ast.TraitDecl),
		implsByType: make(map[string][]*implDef),
		funcs:       make(map[string]*ast.FuncDecl),
		topLets:     make(map[string]*ast.TopLevelLetDecl),
		symbols:     NewSymbolTable(),
		reporter:    diag.NewReporter(),
		vg:          &types.VarGen{},
		subst:       types.NewSubstitution(),
		exprTypes:   make(map[int]types.Type),
		calls:       make(map[int]*Instantiation),
		traitRes:    make(map[int]*TraitMethodResolution),
		fnParams:    make(map[string][]types.Type),
		fnReturns:   make(map[string]types.Type),
		skipBodies:  opts.SkipBodies,
	}
	a.collectDecls()
	a.checkBodies()
	return &SemanticResult{
		Symbols:          a.symbols,
		Reporter:         a.reporter,
		Subst:            a.subst,
		VarGen:           a.vg,
		InferredExprs:    a.exprTypes,
		InferredCalls:    a.calls,
		TraitResolutions: a.traitRes,
		InferredFnParams: a.fnParams,
		InferredFnReturns: a.fnReturns,
		Structs:          a.structs,
		Enums:            a.enums,
		Aliases:          a.aliases,
		Traits:           a.traits,
		Impls:            a.impls,
		Funcs:            a.funcs,
	}
}

func (a *Analyzer) errorf(code, source string, loc ast.Location, format string, args ...any) {
	a.reporter.Add(diag.Error(source, code, fmt.Sprintf(format, args...), loc))
}

// unify wraps types.Unify, turning a failure into a TYPE-MISMATCH
// diagnostic and leaving the substitution unchanged so analysis can
// continue.
func (a *Analyzer) unify(x, y types.Type, loc ast.Location) bool {
	next, err := types.Unify(x, y, a.subst)
	if err != nil {
		a.errorf(diag.CodeTypeMismatch, diag.SourceAnalyzer, loc, "%s", err.Error())
		return false
	}
	a.subst = next
	return true
}
