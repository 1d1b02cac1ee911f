package ssa

import (
	"math"

	"github.com/lumina-lang/luminac/internal/ir"
)

// OptimizeProgram runs the optimizer passes over every
// already-SSA-converted function to a per-function fixed point, then
// removes functions unreachable from main.
func OptimizeProgram(prog *ir.Program) *ir.Program {
	for _, fn := range prog.Functions {
		OptimizeFunction(fn)
	}
	removeUnusedFunctions(prog)
	return prog
}

// OptimizeFunction re-runs constant folding, algebraic simplification,
// if/phi collapse, and dead-store elimination over fn's body until no
// pass makes further progress.
func OptimizeFunction(fn *ir.Function) {
	for {
		env := constEnv{}
		body, changedFold := foldBlock(fn.Body, env)
		body, changedDSE := deadStoreEliminate(body)
		fn.Body = body
		if !changedFold && !changedDSE {
			return
		}
	}
}

// constEnv tracks Let-bound names whose value is currently known to be
// a literal.
type constEnv map[string]ir.Expr

func isLiteral(e ir.Expr) bool {
	switch e.(type) {
	case *ir.Number, *ir.Boolean, *ir.String:
		return true
	}
	return false
}

// foldBlock applies constant propagation, constant/boolean folding, and
// algebraic simplification to a statement sequence. It
// returns the rewritten statements and whether anything changed.
func foldBlock(stmts []ir.Stmt, env constEnv) ([]ir.Stmt, bool) {
	changed := false
	out := make([]ir.Stmt, 0, len(stmts))
	for _, s := range stmts {
		switch st := s.(type) {
		case *ir.Let:
			v, ch := foldExpr(st.Value, env)
			changed = changed || ch
			if isLiteral(v) {
				env[st.Name] = v
			} else {
				delete(env, st.Name)
			}
			out = append(out, &ir.Let{Header: st.Header, Name: st.Name, Value: v})

		case *ir.Phi:
			cond, ch1 := foldExpr(st.Cond, env)
			then, ch2 := foldExpr(st.Then, env)
			els, ch3 := foldExpr(st.Else, env)
			changed = changed || ch1 || ch2 || ch3

			// Phi collapse: Phi(cond, v, v) -> Let target = v;
			// Phi(true, v, _) / Phi(false, _, v) -> Let target = v.
			if exprEqual(then, els) {
				out = append(out, &ir.Let{Header: st.Header, Name: st.Target, Value: then})
				changed = true
				continue
			}
			if b, ok := cond.(*ir.Boolean); ok {
				val := els
				if b.Value {
					val = then
				}
				out = append(out, &ir.Let{Header: st.Header, Name: st.Target, Value: val})
				changed = true
				continue
			}
			out = append(out, &ir.Phi{Header: st.Header, Target: st.Target, Cond: cond, Then: then, Else: els})

		case *ir.Return:
			if st.Value == nil {
				out = append(out, st)
				continue
			}
			v, ch := foldExpr(st.Value, env)
			changed = changed || ch
			out = append(out, &ir.Return{Header: st.Header, Value: v})

		case *ir.ExprStmt:
			v, ch := foldExpr(st.Value, env)
			changed = changed || ch
			out = append(out, &ir.ExprStmt{Header: st.Header, Value: v})

		case *ir.If:
			cond, ch := foldExpr(st.Cond, env)
			changed = changed || ch

			thenEnv := copyEnv(env)
			then, chThen := foldBlock(st.Then, thenEnv)
			elseEnv := copyEnv(env)
			els, chElse := foldBlock(st.Else, elseEnv)
			changed = changed || chThen || chElse

			// If-with-constant-condition: the dead branch is
			// dropped and the surviving branch's statements splice in
			// directly in its place.
			if b, ok := cond.(*ir.Boolean); ok {
				if b.Value {
					out = append(out, then...)
				} else {
					out = append(out, els...)
				}
				changed = true
				continue
			}
			out = append(out, &ir.If{Header: st.Header, Cond: cond, Then: then, Else: els})

		case *ir.While:
			cond, ch := foldExpr(st.Cond, env)
			changed = changed || ch
			// The loop body is not SSA-converted; the
			// optimizer likewise leaves it untouched rather than folding
			// against an env that assumes single assignment.
			out = append(out, &ir.While{Header: st.Header, Cond: cond, Body: st.Body})

		default:
			out = append(out, st)
		}
	}
	return out, changed
}

func copyEnv(env constEnv) constEnv {
	out := make(constEnv, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

// foldExpr folds e against the known-literal bindings in env, returning
// the possibly-simplified expression and whether it changed.
func foldExpr(e ir.Expr, env constEnv) (ir.Expr, bool) {
	switch ex := e.(type) {
	case *ir.Identifier:
		if lit, ok := env[ex.Name]; ok {
			return lit, true
		}
		return ex, false

	case *ir.Number, *ir.Boolean, *ir.String:
		return ex, false

	case *ir.Binary:
		left, ch1 := foldExpr(ex.Left, env)
		right, ch2 := foldExpr(ex.Right, env)
		changed := ch1 || ch2
		folded, didFold := foldBinary(ex.Op, left, right)
		if didFold {
			return folded, true
		}
		if simplified, didSimplify := simplifyAlgebraic(ex.Op, left, right); didSimplify {
			return simplified, true
		}
		if changed {
			return &ir.Binary{Header: ex.Header, Op: ex.Op, Left: left, Right: right}, true
		}
		return ex, false

	case *ir.Call:
		changed := false
		args := make([]ir.Expr, len(ex.Args))
		for i, a := range ex.Args {
			v, ch := foldExpr(a, env)
			args[i] = v
			changed = changed || ch
		}
		if !changed {
			return ex, false
		}
		return &ir.Call{Header: ex.Header, Callee: ex.Callee, Args: args}, true

	case *ir.Member:
		obj, ch := foldExpr(ex.Object, env)
		if !ch {
			return ex, false
		}
		return &ir.Member{Header: ex.Header, Object: obj, Field: ex.Field}, true

	case *ir.Index:
		obj, ch1 := foldExpr(ex.Object, env)
		idx, ch2 := foldExpr(ex.Idx, env)
		if !ch1 && !ch2 {
			return ex, false
		}
		return &ir.Index{Header: ex.Header, Object: obj, Idx: idx}, true

	case *ir.Enum:
		changed := false
		values := make([]ir.Expr, len(ex.Values))
		for i, v := range ex.Values {
			nv, ch := foldExpr(v, env)
			values[i] = nv
			changed = changed || ch
		}
		if !changed {
			return ex, false
		}
		return &ir.Enum{Header: ex.Header, EnumName: ex.EnumName, Tag: ex.Tag, Values: values}, true

	case *ir.StructLiteral:
		changed := false
		fields := make([]ir.StructFieldValue, len(ex.Fields))
		for i, f := range ex.Fields {
			nv, ch := foldExpr(f.Value, env)
			fields[i] = ir.StructFieldValue{Name: f.Name, Value: nv}
			changed = changed || ch
		}
		if !changed {
			return ex, false
		}
		return &ir.StructLiteral{Header: ex.Header, TypeName: ex.TypeName, Fields: fields}, true

	case *ir.MatchExpr:
		// Match expressions are left structurally intact;
		// only their scrutinee and arm bodies fold.
		scrutinee, ch := foldExpr(ex.Scrutinee, env)
		changed := ch
		arms := make([]ir.MatchArm, len(ex.Arms))
		for i, arm := range ex.Arms {
			armEnv := copyEnv(env)
			for _, b := range arm.Bindings {
				delete(armEnv, b)
			}
			body, bch := foldExpr(arm.Body, armEnv)
			changed = changed || bch
			arms[i] = ir.MatchArm{Variant: arm.Variant, Bindings: arm.Bindings, Body: body}
		}
		if !changed {
			return ex, false
		}
		return &ir.MatchExpr{Header: ex.Header, Scrutinee: scrutinee, Arms: arms}, true

	default:
		return e, false
	}
}

func numberOf(e ir.Expr) (float64, bool, bool) {
	n, ok := e.(*ir.Number)
	if !ok {
		return 0, false, false
	}
	return n.Value, n.IsFloat, true
}

// foldBinary folds arithmetic on two numeric literals, `+` on two
// string literals (concatenation), and comparison/boolean operators on
// literal operands. Division by zero is never folded.
func foldBinary(op string, l, r ir.Expr) (ir.Expr, bool) {
	if ls, ok := l.(*ir.String); ok {
		if rs, ok := r.(*ir.String); ok && op == "+" {
			return &ir.String{Value: ls.Value + rs.Value}, true
		}
		return nil, false
	}

	lv, lf, lok := numberOf(l)
	rv, rf, rok := numberOf(r)
	if lok && rok {
		isFloat := lf || rf
		switch op {
		case "+":
			return numLit(lv+rv, isFloat), true
		case "-":
			return numLit(lv-rv, isFloat), true
		case "*":
			return numLit(lv*rv, isFloat), true
		case "/":
			if rv == 0 {
				return nil, false
			}
			return numLit(lv/rv, isFloat), true
		case "==":
			return &ir.Boolean{Value: lv == rv}, true
		case "!=":
			return &ir.Boolean{Value: lv != rv}, true
		case "<":
			return &ir.Boolean{Value: lv < rv}, true
		case "<=":
			return &ir.Boolean{Value: lv <= rv}, true
		case ">":
			return &ir.Boolean{Value: lv > rv}, true
		case ">=":
			return &ir.Boolean{Value: lv >= rv}, true
		}
		return nil, false
	}

	lb, lbok := l.(*ir.Boolean)
	rb, rbok := r.(*ir.Boolean)
	if lbok && rbok {
		switch op {
		case "&&":
			return &ir.Boolean{Value: lb.Value && rb.Value}, true
		case "||":
			return &ir.Boolean{Value: lb.Value || rb.Value}, true
		case "==":
			return &ir.Boolean{Value: lb.Value == rb.Value}, true
		case "!=":
			return &ir.Boolean{Value: lb.Value != rb.Value}, true
		}
	}
	return nil, false
}

func numLit(v float64, isFloat bool) *ir.Number {
	if !isFloat {
		v = math.Trunc(v)
	}
	return &ir.Number{Value: v, IsFloat: isFloat}
}

// simplifyAlgebraic applies the identities x+0, 0+x, x-0, x*1, 1*x,
// x/1 -> x and x*0, 0*x -> 0, where the non-literal operand
// is left as-is (constant folding above already handles both-literal
// cases).
func simplifyAlgebraic(op string, l, r ir.Expr) (ir.Expr, bool) {
	lv, _, lok := numberOf(l)
	rv, _, rok := numberOf(r)

	switch op {
	case "+":
		if rok && rv == 0 {
			return l, true
		}
		if lok && lv == 0 {
			return r, true
		}
	case "-":
		if rok && rv == 0 {
			return l, true
		}
	case "*":
		if rok && rv == 1 {
			return l, true
		}
		if lok && lv == 1 {
			return r, true
		}
		if rok && rv == 0 {
			return &ir.Number{Value: 0}, true
		}
		if lok && lv == 0 {
			return &ir.Number{Value: 0}, true
		}
	case "/":
		if rok && rv == 1 {
			return l, true
		}
	}
	return nil, false
}

// exprEqual reports structural equality for the literal/identifier
// shapes the phi-collapse rule cares about.
func exprEqual(a, b ir.Expr) bool {
	switch av := a.(type) {
	case *ir.Identifier:
		bv, ok := b.(*ir.Identifier)
		return ok && av.Name == bv.Name
	case *ir.Number:
		bv, ok := b.(*ir.Number)
		return ok && av.Value == bv.Value && av.IsFloat == bv.IsFloat
	case *ir.Boolean:
		bv, ok := b.(*ir.Boolean)
		return ok && av.Value == bv.Value
	case *ir.String:
		bv, ok := b.(*ir.String)
		return ok && av.Value == bv.Value
	default:
		return false
	}
}
