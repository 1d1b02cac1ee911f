package sema

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/types"
)

// checkBodies runs inference over every function body, impl method
// body, and top-level let, in declaration order for deterministic
// diagnostics.
func (a *Analyzer) checkBodies() {
	for _, d := range a.prog.Decls {
		switch decl := d.(type) {
		case *ast.FuncDecl:
			a.checkFunc(decl)
		case *ast.ImplDecl:
			a.checkImpl(decl)
		case *ast.TopLevelLetDecl:
			scope := newScope(a.symbols.Root)
			vt := a.inferExpr(decl.Value, scope, &funcCtx{typeParams: map[string]types.Type{}, constKnown: map[string]int64{}})
			if decl.Type != nil {
				declared := a.resolveType(decl.Type, nil)
				a.unify(declared, vt, decl.Location)
			}
		}
	}
	a.defaultNumericLiterals()
	a.defaultInferredReturns()
}

func (a *Analyzer) checkFunc(fn *ast.FuncDecl) {
	if fn.Body == nil {
		return
	}
	ctx, params, ret := a.funcSignature(fn)
	ctx.returnType = ret
	a.fnParams[fn.Name] = params

	// Incremental skip: a function whose body hash is
	// unchanged since the prior analysis keeps its cached inferred
	// return type and its body is not re-checked.
	if cached, ok := a.skipBodies[fn.Name]; ok {
		a.unify(ret, cached, fn.Location)
		a.fnReturns[fn.Name] = ret
		return
	}

	scope := newScope(a.symbols.Root)
	for i, p := range fn.Params {
		scope.Define(&Symbol{Name: p.Name, Kind: SymbolParam, Location: p.Location, Type: params[i]})
	}
	a.inferBlock(fn.Body, scope, ctx)
	a.fnReturns[fn.Name] = ret
}

func (a *Analyzer) checkImpl(impl *ast.ImplDecl) {
	forType := a.resolveType(impl.ForType, nil)
	forName := typeExprName(impl.ForType)
	for _, m := range impl.Methods {
		if m.Body == nil {
			continue
		}
		ctx := &funcCtx{typeParams: map[string]types.Type{"Self": forType}, constKnown: map[string]int64{}}
		scope := newScope(a.symbols.Root)
		params := make([]types.Type, len(m.Params))
		for i, p := range m.Params {
			params[i] = a.resolveType(p.Type, ctx)
			scope.Define(&Symbol{Name: p.Name, Kind: SymbolParam, Location: p.Location, Type: params[i]})
		}
		var ret types.Type
		if m.ReturnType != nil {
			ret = a.resolveType(m.ReturnType, ctx)
		} else {
			v := a.vg.Fresh()
			a.inferredRets = append(a.inferredRets, v.ID)
			ret = v
		}
		ctx.returnType = ret
		_ = forName
		a.inferBlock(m.Body, scope, ctx)
	}
}

// numericLiteral records a NumberLit's inferred variable for the
// post-inference defaulting pass (unconstrained numeric
// literals default to i32, or f64 if written with a decimal point).
type numericLiteral struct {
	varID   int
	isFloat bool
	loc     ast.Location
}

// numericNames is the set of primitive names a numeric literal may
// legally resolve to through context.
// "string" is included because `+` concatenation unifies its other
// operand with string, which may absorb a literal (`"n=" + 1`).
var numericNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
	"usize": true, "f32": true, "f64": true, "any": true, "string": true,
}

func (a *Analyzer) defaultNumericLiterals() {
	for _, nl := range a.numericLits {
		pruned := types.Prune(&types.Variable{ID: nl.varID}, a.subst)
		if _, stillVar := pruned.(*types.Variable); !stillVar {
			if p, ok := pruned.(*types.Primitive); !ok || !numericNames[p.Name] {
				a.errorf(diag.CodeTypeMismatch, diag.SourceAnalyzer, nl.loc, "numeric literal used where %s is expected", pruned)
			}
			continue
		}
		if nl.isFloat {
			a.subst.Bind(nl.varID, types.NewPrimitive("f64"))
		} else {
			a.subst.Bind(nl.varID, types.NewPrimitive("i32"))
		}
	}
}

// defaultInferredReturns binds any unannotated function return type that
// inference left unconstrained (no return statements reached it) to
// void, the same default an empty block implies.
func (a *Analyzer) defaultInferredReturns() {
	for _, id := range a.inferredRets {
		pruned := types.Prune(&types.Variable{ID: id}, a.subst)
		if _, stillVar := pruned.(*types.Variable); stillVar {
			a.subst.Bind(id, types.NewPrimitive("void"))
		}
	}
}

func (a *Analyzer) inferBlock(b *ast.BlockStmt, parent *Scope, ctx *funcCtx) {
	scope := newScope(parent)
	for _, s := range b.Stmts {
		a.inferStmt(s, scope, ctx)
	}
}

func (a *Analyzer) inferStmt(s ast.Stmt, scope *Scope, ctx *funcCtx) {
	switch st := s.(type) {
	case *ast.BlockStmt:
		a.inferBlock(st, scope, ctx)

	case *ast.LetStmt:
		vt := a.inferExpr(st.Value, scope, ctx)
		if st.Type != nil {
			declared := a.resolveType(st.Type, ctx)
			a.unify(declared, vt, st.Location)
			vt = declared
		}
		if !scope.Define(&Symbol{Name: st.Name, Kind: SymbolLet, Location: st.Location, Type: vt}) {
			a.errorf(diag.CodeDupDecl, diag.SourceAnalyzer, st.Location, "duplicate binding %q", st.Name)
		}

	case *ast.ReturnStmt:
		if st.Value != nil {
			vt := a.inferExpr(st.Value, scope, ctx)
			a.unify(ctx.returnType, vt, st.Location)
		} else {
			a.unify(ctx.returnType, types.NewPrimitive("void"), st.Location)
		}

	case *ast.ExprStmt:
		a.inferExpr(st.Value, scope, ctx)

	case *ast.IfStmt:
		cond := a.inferExpr(st.Cond, scope, ctx)
		a.unify(cond, types.NewPrimitive("bool"), st.Cond.Loc())
		a.inferBlock(st.Then, scope, ctx)
		if st.Else != nil {
			a.inferBlock(st.Else, scope, ctx)
		}

	case *ast.WhileStmt:
		cond := a.inferExpr(st.Cond, scope, ctx)
		a.unify(cond, types.NewPrimitive("bool"), st.Cond.Loc())
		a.inferBlock(st.Body, scope, ctx)

	case *ast.AssignStmt:
		tt := a.inferExpr(st.Target, scope, ctx)
		vt := a.inferExpr(st.Value, scope, ctx)
		a.unify(tt, vt, st.Location)

	case *ast.MatchStmt:
		scrut := a.inferExpr(st.Scrutinee, scope, ctx)
		for _, arm := range st.Arms {
			armScope := newScope(scope)
			a.bindPattern(arm.Pattern, scrut, armScope, ctx)
			if arm.Guard != nil {
				g := a.inferExpr(arm.Guard, armScope, ctx)
				a.unify(g, types.NewPrimitive("bool"), arm.Guard.Loc())
			}
			a.inferBlock(arm.Body, armScope, ctx)
		}

	case *ast.ErrorStmt:
		// panic-mode placeholder; already reported by the parser.
	}
}
