package sema

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/types"
)

// constExprOf adapts a type-argument position to a const-expression:
// the parser always emits *ast.ConstArgType for a literal integer, but
// forwarding a const parameter by name (`Vec<T, N>`) parses as a bare
// *ast.NamedType since the grammar can't disambiguate a generic name
// from a const reference. Both are accepted here.
func constExprOf(te ast.TypeExpr) (ast.ConstExpr, bool) {
	switch n := te.(type) {
	case *ast.ConstArgType:
		return n.Value, true
	case *ast.NamedType:
		if len(n.Args) == 0 {
			return &ast.ConstParamRef{Name: n.Name, Location: n.Location}, true
		}
	}
	return nil, false
}

// resolveType converts a surface TypeExpr into a types.Type, using ctx
// for in-scope type/const parameters. Unknown type names and malformed
// const arguments are reported as diagnostics; the function still
// returns a best-effort Type (a fresh variable) so analysis continues.
func (a *Analyzer) resolveType(te ast.TypeExpr, ctx *funcCtx) types.Type {
	switch n := te.(type) {
	case *ast.HoleType:
		return a.vg.Fresh()

	case *ast.ArrayType:
		elem := a.resolveType(n.Element, ctx)
		bindings := types.ConstBindings{}
		if ctx != nil {
			for k, v := range ctx.constKnown {
				bindings[k] = v
			}
		}
		if v, err := types.EvalConstExpr(n.Size, bindings); err == nil {
			cv := types.ConstValue{Value: v}
			return &types.Array{Element: elem, Size: &cv}
		}
		return &types.Array{Element: elem, Size: nil}

	case *ast.NamedType:
		if ctx != nil && len(n.Args) == 0 {
			if t, ok := ctx.typeParams[n.Name]; ok {
				return t
			}
		}
		if types.IsPrimitiveName(n.Name) {
			return types.NewPrimitive(n.Name)
		}
		if sdecl, ok := a.structs[n.Name]; ok {
			return a.resolveADT(n.Name, sdecl.TypeParams, n.Args, ctx, n.Location)
		}
		if edecl, ok := a.enums[n.Name]; ok {
			return a.resolveADT(n.Name, edecl.TypeParams, n.Args, ctx, n.Location)
		}
		if alias, ok := a.aliases[n.Name]; ok && len(n.Args) == 0 {
			return a.resolveType(alias.Target, ctx)
		}
		a.errorf(diag.CodeUnknownType, diag.SourceAnalyzer, n.Location, "unknown type %q", n.Name)
		return a.vg.Fresh()

	default:
		return a.vg.Fresh()
	}
}

// resolveADT builds an *types.ADT for a use of a struct/enum name,
// zipping the declared type parameters (which may mix type and const
// positions) against the supplied argument list.
func (a *Analyzer) resolveADT(name string, declParams []ast.TypeParam, args []ast.TypeExpr, ctx *funcCtx, loc ast.Location) types.Type {
	var params []types.Type
	var constArgs []types.ConstValue
	for i, tp := range declParams {
		if i >= len(args) {
			if tp.IsConst {
				constArgs = append(constArgs, types.ConstValue{})
			} else {
				params = append(params, a.vg.Fresh())
			}
			continue
		}
		if tp.IsConst {
			ce, ok := constExprOf(args[i])
			if !ok {
				a.errorf(diag.CodeUnknownType, diag.SourceAnalyzer, loc, "expected a const argument for %q", tp.Name)
				constArgs = append(constArgs, types.ConstValue{})
				continue
			}
			bindings := types.ConstBindings{}
			if ctx != nil {
				for k, v := range ctx.constKnown {
					bindings[k] = v
				}
			}
			v, err := types.EvalConstExpr(ce, bindings)
			if err != nil {
				constArgs = append(constArgs, types.ConstValue{})
				continue
			}
			constArgs = append(constArgs, types.ConstValue{Value: v})
		} else {
			params = append(params, a.resolveType(args[i], ctx))
		}
	}
	return &types.ADT{Name: name, Params: params, ConstArgs: constArgs}
}

// funcSignature builds the fresh-variable-instantiated parameter and
// return types for analyzing fn's own body: each of fn's type
// parameters maps to one fresh variable (not yet generalized/bound to
// any call site), in a single elaboration pass per declaration.
func (a *Analyzer) funcSignature(fn *ast.FuncDecl) (*funcCtx, []types.Type, types.Type) {
	ctx := &funcCtx{typeParams: make(map[string]types.Type), constKnown: make(map[string]int64)}
	for _, tp := range fn.TypeParams {
		if tp.IsConst {
			continue // left unbound; array sizes using it go unchecked in the generic body
		}
		ctx.typeParams[tp.Name] = a.vg.Fresh()
	}
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = a.resolveType(p.Type, ctx)
	}
	var ret types.Type
	if fn.ReturnType != nil {
		ret = a.resolveType(fn.ReturnType, ctx)
	} else {
		// No annotation: let the body's return statements (or void, if
		// there are none) determine it, the same way an unannotated
		// local let binding's type is inferred from its value.
		v := a.vg.Fresh()
		a.inferredRets = append(a.inferredRets, v.ID)
		ret = v
	}
	ctx.returnType = ret
	return ctx, params, ret
}
