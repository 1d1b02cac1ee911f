package ssa

import (
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/ir"
)

// Validate asserts the SSA invariants over an
// already-converted-and-optimized program: every Let/Phi name is
// introduced exactly once per function (a Let inside a While body may
// rebind a name defined before the loop), no Assign appears outside a
// While body, and every Identifier resolves to a parameter or a
// preceding Let/Phi definition. A violation is an internal compiler
// bug, not a user diagnostic, so it panics with
// diag.InternalError rather than returning an error.
func Validate(prog *ir.Program) {
	for _, fn := range prog.Functions {
		ValidateFunction(fn)
	}
}

func ValidateFunction(fn *ir.Function) {
	defined := map[string]bool{}
	for _, p := range fn.Params {
		defined[p] = true
	}
	validateBlock(fn.Name, fn.Body, defined, false)
}

// validateBlock walks stmts in order, maintaining the set of names
// defined so far (by parameters or preceding Let/Phi in this function).
// insideWhile permits Assign nodes.
func validateBlock(fnName string, stmts []ir.Stmt, defined map[string]bool, insideWhile bool) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ir.Let:
			checkExprRefs(fnName, st.Value, defined)
			if defined[st.Name] && !insideWhile {
				diag.Panic("ssa", "function %s: name %q defined more than once", fnName, st.Name)
			}
			defined[st.Name] = true

		case *ir.Phi:
			checkExprRefs(fnName, st.Cond, defined)
			checkExprRefs(fnName, st.Then, defined)
			checkExprRefs(fnName, st.Else, defined)
			if defined[st.Target] {
				diag.Panic("ssa", "function %s: phi target %q defined more than once", fnName, st.Target)
			}
			defined[st.Target] = true

		case *ir.Assign:
			if !insideWhile {
				diag.Panic("ssa", "function %s: Assign node found outside a While body", fnName)
			}
			checkExprRefs(fnName, st.Value, defined)
			defined[st.Name] = true

		case *ir.Return:
			if st.Value != nil {
				checkExprRefs(fnName, st.Value, defined)
			}

		case *ir.ExprStmt:
			checkExprRefs(fnName, st.Value, defined)

		case *ir.If:
			checkExprRefs(fnName, st.Cond, defined)
			// Each branch sees its own copy of the defined set plus
			// whatever the join's phi contributed is recorded by the
			// statement immediately following the If, not inside the
			// branches themselves.
			thenDefined := cloneSet(defined)
			validateBlock(fnName, st.Then, thenDefined, insideWhile)
			elseDefined := cloneSet(defined)
			validateBlock(fnName, st.Else, elseDefined, insideWhile)
			for k := range thenDefined {
				defined[k] = true
			}
			for k := range elseDefined {
				defined[k] = true
			}

		case *ir.While:
			checkExprRefs(fnName, st.Cond, defined)
			loopDefined := cloneSet(defined)
			validateBlock(fnName, st.Body, loopDefined, true)

		case *ir.Noop:
			// carries no bindings

		default:
			diag.Panic("ssa", "function %s: unhandled IR statement %T in validator", fnName, st)
		}
	}
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

// checkExprRefs asserts every Identifier in e resolves to an
// already-defined name.
func checkExprRefs(fnName string, e ir.Expr, defined map[string]bool) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ir.Identifier:
		if !defined[ex.Name] {
			diag.Panic("ssa", "function %s: identifier %q has no preceding definition", fnName, ex.Name)
		}
	case *ir.Binary:
		checkExprRefs(fnName, ex.Left, defined)
		checkExprRefs(fnName, ex.Right, defined)
	case *ir.Call:
		for _, a := range ex.Args {
			checkExprRefs(fnName, a, defined)
		}
	case *ir.Member:
		checkExprRefs(fnName, ex.Object, defined)
	case *ir.Index:
		checkExprRefs(fnName, ex.Object, defined)
		checkExprRefs(fnName, ex.Idx, defined)
	case *ir.Enum:
		for _, v := range ex.Values {
			checkExprRefs(fnName, v, defined)
		}
	case *ir.StructLiteral:
		for _, f := range ex.Fields {
			checkExprRefs(fnName, f.Value, defined)
		}
	case *ir.MatchExpr:
		checkExprRefs(fnName, ex.Scrutinee, defined)
		for _, arm := range ex.Arms {
			armDefined := cloneSet(defined)
			for _, b := range arm.Bindings {
				armDefined[b] = true
			}
			checkExprRefs(fnName, arm.Body, armDefined)
		}
	}
}
