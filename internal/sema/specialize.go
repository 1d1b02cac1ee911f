package sema

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/types"
)

// Specialize re-runs inference over fn's body with its type and const
// parameters bound to concrete values, rather than fresh variables.
// It is how the monomorphizer (C5) obtains inferred types for a cloned,
// specialized function: the clone still refers to its original
// (generic-named) parameter types, so re-entering the analyzer with
// those names pre-bound resolves every NamedType{"T"} reference to the
// concrete instantiation instead of re-inferring a fresh one.
//
// Results merge into res in place: new expression ids from fn's cloned
// body populate res.InferredExprs/InferredCalls/TraitResolutions, and
// res.Subst is replaced with the extended substitution.
func (res *SemanticResult) Specialize(fn *ast.FuncDecl, typeBindings map[string]types.Type, constBindings types.ConstBindings) {
	a := &Analyzer{
		structs:     res.Structs,
		enums:       res.Enums,
		variants:    buildVariants(res.Enums),
		aliases:     res.Aliases,
		traits:      res.Traits,
		implsByType: buildImplsByType(res.Impls),
		funcs:       res.Funcs,
		topLets:     map[string]*ast.TopLevelLetDecl{},
		symbols:     res.Symbols,
		reporter:    res.Reporter,
		vg:          res.VarGen,
		subst:       res.Subst,
		exprTypes:   res.InferredExprs,
		calls:       res.InferredCalls,
		traitRes:    res.TraitResolutions,
	}

	ctx := &funcCtx{typeParams: map[string]types.Type{}, constKnown: map[string]int64{}}
	for k, v := range typeBindings {
		ctx.typeParams[k] = v
	}
	for k, v := range constBindings {
		ctx.constKnown[k] = v
	}

	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = a.resolveType(p.Type, ctx)
	}
	if fn.ReturnType != nil {
		ctx.returnType = a.resolveType(fn.ReturnType, ctx)
	} else {
		v := a.vg.Fresh()
		a.inferredRets = append(a.inferredRets, v.ID)
		ctx.returnType = v
	}

	scope := newScope(a.symbols.Root)
	for i, p := range fn.Params {
		scope.Define(&Symbol{Name: p.Name, Kind: SymbolParam, Location: p.Location, Type: params[i]})
	}
	if fn.Body != nil {
		a.inferBlock(fn.Body, scope, ctx)
	}
	a.defaultNumericLiterals()
	a.defaultInferredReturns()
	res.Subst = a.subst
}
