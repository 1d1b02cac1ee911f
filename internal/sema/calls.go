package sema

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/types"
)

func (a *Analyzer) inferCall(ex *ast.CallExpr, scope *Scope, ctx *funcCtx) types.Type {
	return a.inferCallWith(ex, scope, ctx, nil)
}

// inferCallWith resolves a call expression, optionally prepending
// extraFirstArg (the pipeline operator's left-hand side).
// The resolved type is recorded under ex's own id regardless of
// whether ex is reached directly or via a pipeline's Right side.
func (a *Analyzer) inferCallWith(ex *ast.CallExpr, scope *Scope, ctx *funcCtx, extraFirstArg ast.Expr) types.Type {
	return a.record(ex.ID, a.resolveCallWith(ex, scope, ctx, extraFirstArg))
}

func (a *Analyzer) resolveCallWith(ex *ast.CallExpr, scope *Scope, ctx *funcCtx, extraFirstArg ast.Expr) types.Type {
	switch callee := ex.Callee.(type) {
	case *ast.Identifier:
		if _, ok := a.variants[callee.Name]; ok {
			return a.inferVariantConstructor(callee.Name, collectArgs(extraFirstArg, ex.Args), scope, ctx, ex.ID, ex.Location)
		}
		if fn, ok := a.funcs[callee.Name]; ok {
			return a.inferFuncCall(ex, fn, scope, ctx, extraFirstArg)
		}
		a.errorf(diag.CodeUnknownFn, diag.SourceAnalyzer, ex.Location, "unknown function %q", callee.Name)
		a.inferArgs(extraFirstArg, ex.Args, scope, ctx)
		return a.vg.Fresh()

	case *ast.MemberExpr:
		return a.inferMethodCall(ex, callee, scope, ctx, extraFirstArg)

	default:
		ct := a.inferExpr(ex.Callee, scope, ctx)
		args := a.inferArgs(extraFirstArg, ex.Args, scope, ctx)
		pruned := types.Prune(ct, a.subst)
		if fnT, ok := pruned.(*types.Function); ok {
			for i, at := range args {
				if i < len(fnT.Args) {
					a.unify(fnT.Args[i], at, ex.Location)
				}
			}
			return fnT.ReturnType
		}
		return a.vg.Fresh()
	}
}

func collectArgs(extraFirst ast.Expr, args []ast.Expr) []ast.Expr {
	if extraFirst == nil {
		return args
	}
	return append([]ast.Expr{extraFirst}, args...)
}

func (a *Analyzer) inferArgs(extraFirst ast.Expr, args []ast.Expr, scope *Scope, ctx *funcCtx) []types.Type {
	all := collectArgs(extraFirst, args)
	out := make([]types.Type, len(all))
	for i, arg := range all {
		out[i] = a.inferExpr(arg, scope, ctx)
	}
	return out
}

func (a *Analyzer) inferFuncCall(ex *ast.CallExpr, fn *ast.FuncDecl, scope *Scope, ctx *funcCtx, extraFirst ast.Expr) types.Type {
	fnCtx, params, ret := a.funcSignature(fn)
	argTypes := a.inferArgs(extraFirst, ex.Args, scope, ctx)
	for i, at := range argTypes {
		if i < len(params) {
			a.unify(params[i], at, ex.Location)
		}
	}
	if len(fn.TypeParams) > 0 {
		inst := &Instantiation{Callee: fn.Name, TypeBindings: map[string]types.Type{}, ConstBindings: types.ConstBindings{}}
		for _, tp := range fn.TypeParams {
			if tp.IsConst {
				continue
			}
			if v, ok := fnCtx.typeParams[tp.Name]; ok {
				inst.TypeBindings[tp.Name] = types.Prune(v, a.subst)
			}
		}
		a.calls[ex.ID] = inst
	}
	return types.Prune(ret, a.subst)
}

// inferVariantConstructor handles a call to an enum constructor
// (`Some(1)`), which the grammar represents as a plain CallExpr on a
// bare identifier.
func (a *Analyzer) inferVariantConstructor(name string, args []ast.Expr, scope *Scope, ctx *funcCtx, exprID int, loc ast.Location) types.Type {
	vi := a.variants[name]
	enumCtx := &funcCtx{typeParams: map[string]types.Type{}, constKnown: map[string]int64{}}
	for _, tp := range vi.enum.TypeParams {
		if !tp.IsConst {
			enumCtx.typeParams[tp.Name] = a.vg.Fresh()
		}
	}
	for i, argExpr := range args {
		at := a.inferExpr(argExpr, scope, ctx)
		if i < len(vi.variant.Payload) {
			pt := a.resolveType(vi.variant.Payload[i], enumCtx)
			a.unify(pt, at, argExpr.Loc())
		}
	}
	adtT := &types.ADT{Name: vi.enum.Name, Params: typeParamValues(vi.enum.TypeParams, enumCtx)}
	if len(vi.enum.TypeParams) > 0 {
		a.calls[exprID] = &Instantiation{Callee: vi.enum.Name, TypeBindings: typeParamMap(vi.enum.TypeParams, enumCtx, a.subst)}
	}
	return adtT
}

func typeParamMap(tps []ast.TypeParam, ctx *funcCtx, subst types.Substitution) map[string]types.Type {
	out := map[string]types.Type{}
	for _, tp := range tps {
		if tp.IsConst {
			continue
		}
		if v, ok := ctx.typeParams[tp.Name]; ok {
			out[tp.Name] = types.Prune(v, subst)
		}
	}
	return out
}

// inferMethodCall resolves `obj.method(args)` to a trait impl.
func (a *Analyzer) inferMethodCall(ex *ast.CallExpr, member *ast.MemberExpr, scope *Scope, ctx *funcCtx, extraFirst ast.Expr) types.Type {
	objType := a.inferExpr(member.Object, scope, ctx)
	pruned := types.Prune(objType, a.subst)
	typeName := adtTypeName(pruned)

	candidates := a.implsByType[typeName]
	var matches []*implDef
	for _, c := range candidates {
		if _, ok := c.methods[member.Field]; ok {
			matches = append(matches, c)
		}
	}

	args := a.inferArgs(extraFirst, ex.Args, scope, ctx)

	switch len(matches) {
	case 0:
		a.errorf(diag.CodeMemberNotFound, diag.SourceAnalyzer, ex.Location, "no method %q found for type %s", member.Field, typeName)
		return a.vg.Fresh()
	case 1:
		return a.applyMethodMatch(matches[0], member.Field, typeName, args, ex)
	default:
		a.errorf(diag.CodeAmbiguousMethod, diag.SourceAnalyzer, ex.Location, "ambiguous method %q for type %s: matched by %d impls", member.Field, typeName, len(matches))
		return a.applyMethodMatch(matches[0], member.Field, typeName, args, ex)
	}
}

func (a *Analyzer) applyMethodMatch(impl *implDef, methodName, forType string, args []types.Type, ex *ast.CallExpr) types.Type {
	method := impl.methods[methodName]
	implCtx := &funcCtx{typeParams: map[string]types.Type{"Self": a.resolveType(impl.decl.ForType, nil)}, constKnown: map[string]int64{}}
	var params []types.Type
	for i, p := range method.Params {
		if i == 0 {
			continue // receiver (self); already unified via the object expr
		}
		params = append(params, a.resolveType(p.Type, implCtx))
	}
	for i, at := range args {
		if i < len(params) {
			a.unify(params[i], at, ex.Location)
		}
	}
	ret := types.Type(types.NewPrimitive("void"))
	if method.ReturnType != nil {
		ret = a.resolveType(method.ReturnType, implCtx)
	}

	mangled := types.SanitizeIdent(impl.decl.TraitName) + "$" + types.SanitizeIdent(forType) + "$" + types.SanitizeIdent(methodName)
	a.traitRes[ex.ID] = &TraitMethodResolution{
		TraitName:   impl.decl.TraitName,
		TraitType:   impl.decl.TraitName,
		ForType:     forType,
		MethodName:  methodName,
		MangledName: mangled,
	}
	return types.Prune(ret, a.subst)
}

func adtTypeName(t types.Type) string {
	switch n := t.(type) {
	case *types.ADT:
		return n.Name
	case *types.Primitive:
		return n.Name
	default:
		return ""
	}
}
