package sema

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/types"
)

func (a *Analyzer) record(id int, t types.Type) types.Type {
	a.exprTypes[id] = t
	return t
}

func (a *Analyzer) inferExpr(e ast.Expr, scope *Scope, ctx *funcCtx) types.Type {
	switch ex := e.(type) {
	case *ast.NumberLit:
		v := a.vg.Fresh()
		a.numericLits = append(a.numericLits, numericLiteral{varID: v.ID, isFloat: ex.IsFloat, loc: ex.Location})
		return a.record(ex.ID, v)

	case *ast.BoolLit:
		return a.record(ex.ID, types.NewPrimitive("bool"))

	case *ast.StringLit:
		return a.record(ex.ID, types.NewPrimitive("string"))

	case *ast.Identifier:
		if sym, ok := scope.Lookup(ex.Name); ok {
			return a.record(ex.ID, sym.Type)
		}
		if fn, ok := a.funcs[ex.Name]; ok {
			_, params, ret := a.funcSignature(fn)
			return a.record(ex.ID, &types.Function{Args: params, ReturnType: ret})
		}
		if _, ok := a.variants[ex.Name]; ok {
			// bare reference to a zero-payload variant constructor used
			// as a value rather than called, e.g. `let n = None;`
			return a.record(ex.ID, a.inferVariantConstructor(ex.Name, nil, scope, ctx, ex.ID, ex.Location))
		}
		a.errorf(diag.CodeUnknownIdent, diag.SourceAnalyzer, ex.Location, "unknown identifier %q", ex.Name)
		return a.record(ex.ID, a.vg.Fresh())

	case *ast.UnaryExpr:
		ot := a.inferExpr(ex.Operand, scope, ctx)
		if ex.Op == "!" {
			a.unify(ot, types.NewPrimitive("bool"), ex.Location)
			return a.record(ex.ID, types.NewPrimitive("bool"))
		}
		return a.record(ex.ID, ot)

	case *ast.BinaryExpr:
		lt := a.inferExpr(ex.Left, scope, ctx)
		rt := a.inferExpr(ex.Right, scope, ctx)
		switch ex.Op {
		case "&&", "||":
			a.unify(lt, types.NewPrimitive("bool"), ex.Location)
			a.unify(rt, types.NewPrimitive("bool"), ex.Location)
			return a.record(ex.ID, types.NewPrimitive("bool"))
		case "==", "!=", "<", ">", "<=", ">=":
			a.unify(lt, rt, ex.Location)
			return a.record(ex.ID, types.NewPrimitive("bool"))
		default: // + - * / %
			a.unify(lt, rt, ex.Location)
			return a.record(ex.ID, lt)
		}

	case *ast.CallExpr:
		return a.inferCall(ex, scope, ctx)

	case *ast.PipelineExpr:
		right := ex.Right.(*ast.CallExpr)
		t := a.inferCallWith(right, scope, ctx, ex.Left)
		return a.record(ex.ID, t)

	case *ast.MemberExpr:
		ot := a.inferExpr(ex.Object, scope, ctx)
		ft, _ := a.resolveFieldType(ot, ex.Field, ex.Location)
		return a.record(ex.ID, ft)

	case *ast.IndexExpr:
		ot := a.inferExpr(ex.Object, scope, ctx)
		a.inferExpr(ex.Index, scope, ctx)
		pruned := types.Prune(ot, a.subst)
		if arr, ok := pruned.(*types.Array); ok {
			return a.record(ex.ID, arr.Element)
		}
		return a.record(ex.ID, a.vg.Fresh())

	case *ast.ArrayLit:
		elemT := a.vg.Fresh()
		for _, el := range ex.Elements {
			t := a.inferExpr(el, scope, ctx)
			next, err := types.Unify(elemT, t, a.subst)
			if err != nil {
				a.errorf(diag.CodeArrayElemType, diag.SourceAnalyzer, el.Loc(), "array element type mismatch: %s", err.Error())
				continue
			}
			a.subst = next
		}
		size := types.ConstValue{Value: int64(len(ex.Elements))}
		return a.record(ex.ID, &types.Array{Element: elemT, Size: &size})

	case *ast.StructLit:
		return a.record(ex.ID, a.inferStructLit(ex, scope, ctx))

	case *ast.LambdaExpr:
		lscope := newScope(scope)
		params := make([]types.Type, len(ex.Params))
		for i, p := range ex.Params {
			pt := a.resolveType(p.Type, ctx)
			params[i] = pt
			lscope.Define(&Symbol{Name: p.Name, Kind: SymbolParam, Location: p.Location, Type: pt})
		}
		bodyT := a.inferExpr(ex.Body, lscope, ctx)
		return a.record(ex.ID, &types.Function{Args: params, ReturnType: bodyT})

	case *ast.MatchExpr:
		scrut := a.inferExpr(ex.Scrutinee, scope, ctx)
		resultT := a.vg.Fresh()
		for _, arm := range ex.Arms {
			armScope := newScope(scope)
			a.bindPattern(arm.Pattern, scrut, armScope, ctx)
			if arm.Guard != nil {
				g := a.inferExpr(arm.Guard, armScope, ctx)
				a.unify(g, types.NewPrimitive("bool"), arm.Guard.Loc())
			}
			bt := a.inferExpr(arm.Body, armScope, ctx)
			a.unify(resultT, bt, arm.Body.Loc())
		}
		return a.record(ex.ID, resultT)

	case *ast.ErrorExpr:
		return a.record(ex.ID, a.vg.Fresh())

	default:
		return a.vg.Fresh()
	}
}

// bindPattern declares the names a match pattern binds, given the
// scrutinee's (pruned) type, in scope. A BindingPattern whose name
// matches a known zero-payload enum variant is reinterpreted as that
// variant (the grammar can't tell `None` the catch-all binding from
// `None` the constructor apart at parse time).
func (a *Analyzer) bindPattern(pat ast.Pattern, scrutType types.Type, scope *Scope, ctx *funcCtx) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return

	case *ast.BindingPattern:
		if vi, ok := a.variants[p.Name]; ok && len(vi.variant.Payload) == 0 {
			a.bindVariantPattern(&ast.VariantPattern{Variant: p.Name, Location: p.Location}, scrutType, scope, ctx)
			return
		}
		scope.Define(&Symbol{Name: p.Name, Kind: SymbolLet, Location: p.Location, Type: scrutType})

	case *ast.VariantPattern:
		a.bindVariantPattern(p, scrutType, scope, ctx)
	}
}

func (a *Analyzer) bindVariantPattern(p *ast.VariantPattern, scrutType types.Type, scope *Scope, ctx *funcCtx) {
	vi, ok := a.variants[p.Variant]
	if !ok {
		a.errorf(diag.CodeUnknownIdent, diag.SourceAnalyzer, p.Location, "unknown enum variant %q", p.Variant)
		return
	}
	enumCtx := &funcCtx{typeParams: map[string]types.Type{}, constKnown: map[string]int64{}}
	for _, tp := range vi.enum.TypeParams {
		if !tp.IsConst {
			enumCtx.typeParams[tp.Name] = a.vg.Fresh()
		}
	}
	adtT := &types.ADT{Name: vi.enum.Name, Params: typeParamValues(vi.enum.TypeParams, enumCtx)}
	a.unify(scrutType, adtT, p.Location)
	for i, bindName := range p.Bindings {
		if i >= len(vi.variant.Payload) {
			break
		}
		pt := a.resolveType(vi.variant.Payload[i], enumCtx)
		scope.Define(&Symbol{Name: bindName, Kind: SymbolLet, Location: p.Location, Type: pt})
	}
}

func typeParamValues(tps []ast.TypeParam, ctx *funcCtx) []types.Type {
	var out []types.Type
	for _, tp := range tps {
		if tp.IsConst {
			continue
		}
		out = append(out, ctx.typeParams[tp.Name])
	}
	return out
}

// resolveFieldType finds field's declared type on the struct named by
// objType, substituting the struct's own type parameters for the
// concrete/fresh arguments objType carries.
func (a *Analyzer) resolveFieldType(objType types.Type, field string, loc ast.Location) (types.Type, bool) {
	pruned := types.Prune(objType, a.subst)
	adt, ok := pruned.(*types.ADT)
	if !ok {
		a.errorf(diag.CodeMemberNotFound, diag.SourceAnalyzer, loc, "cannot access field %q on non-struct type %s", field, pruned)
		return a.vg.Fresh(), false
	}
	sdecl, ok := a.structs[adt.Name]
	if !ok {
		a.errorf(diag.CodeMemberNotFound, diag.SourceAnalyzer, loc, "unknown struct %q", adt.Name)
		return a.vg.Fresh(), false
	}
	ctx := structInstCtx(sdecl, adt)
	for _, f := range sdecl.Fields {
		if f.Name == field {
			return a.resolveType(f.Type, ctx), true
		}
	}
	a.errorf(diag.CodeMemberNotFound, diag.SourceAnalyzer, loc, "struct %q has no field %q", adt.Name, field)
	return a.vg.Fresh(), false
}

func structInstCtx(sdecl *ast.StructDecl, adt *types.ADT) *funcCtx {
	ctx := &funcCtx{typeParams: map[string]types.Type{}, constKnown: map[string]int64{}}
	ti, ci := 0, 0
	for _, tp := range sdecl.TypeParams {
		if tp.IsConst {
			if ci < len(adt.ConstArgs) {
				ctx.constKnown[tp.Name] = adt.ConstArgs[ci].Value
			}
			ci++
		} else {
			if ti < len(adt.Params) {
				ctx.typeParams[tp.Name] = adt.Params[ti]
			}
			ti++
		}
	}
	return ctx
}

func (a *Analyzer) inferStructLit(ex *ast.StructLit, scope *Scope, ctx *funcCtx) types.Type {
	adtT := a.resolveType(&ast.NamedType{Name: ex.TypeName, Args: ex.TypeArgs, Location: ex.Location}, ctx)
	adt, ok := types.Prune(adtT, a.subst).(*types.ADT)
	if !ok {
		return adtT
	}
	sdecl, ok := a.structs[ex.TypeName]
	if !ok {
		a.errorf(diag.CodeUnknownIdent, diag.SourceAnalyzer, ex.Location, "unknown struct %q", ex.TypeName)
		return adtT
	}
	fieldCtx := structInstCtx(sdecl, adt)
	for _, init := range ex.Fields {
		vt := a.inferExpr(init.Value, scope, ctx)
		var declaredField ast.TypeExpr
		for _, f := range sdecl.Fields {
			if f.Name == init.Name {
				declaredField = f.Type
				break
			}
		}
		if declaredField == nil {
			a.errorf(diag.CodeMemberNotFound, diag.SourceAnalyzer, ex.Location, "struct %q has no field %q", ex.TypeName, init.Name)
			continue
		}
		ft := a.resolveType(declaredField, fieldCtx)
		if arr, isArr := declaredField.(*ast.ArrayType); isArr {
			_ = arr
			if litArr, isLit := init.Value.(*ast.ArrayLit); isLit {
				if prunedFt, ok := types.Prune(ft, a.subst).(*types.Array); ok && prunedFt.Size != nil {
					if int64(len(litArr.Elements)) != prunedFt.Size.Value {
						a.errorf(diag.CodeArraySizeMismatch, diag.SourceAnalyzer, init.Value.Loc(),
							"field %q expects an array of size %d, got %d", init.Name, prunedFt.Size.Value, len(litArr.Elements))
					}
				}
			}
		}
		a.unify(ft, vt, init.Value.Loc())
	}
	return adtT
}
