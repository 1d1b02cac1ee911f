package ssa

import "github.com/lumina-lang/luminac/internal/ir"

// deadStoreEliminate reverse-walks body maintaining the set of names
// read by later statements, dropping any Let/Phi whose name is never
// subsequently read; a kept statement's right-hand side is visited to
// mark the names it in turn depends on. It reports whether
// anything was dropped.
func deadStoreEliminate(body []ir.Stmt) ([]ir.Stmt, bool) {
	reads := map[string]bool{}
	out, changed := dseBlock(body, reads)
	return out, changed
}

func dseBlock(stmts []ir.Stmt, reads map[string]bool) ([]ir.Stmt, bool) {
	changed := false
	out := make([]ir.Stmt, 0, len(stmts))
	for i := len(stmts) - 1; i >= 0; i-- {
		s := stmts[i]
		switch st := s.(type) {
		case *ir.Let:
			if !reads[st.Name] {
				changed = true
				continue
			}
			markReads(st.Value, reads)
			out = append([]ir.Stmt{st}, out...)

		case *ir.Phi:
			if !reads[st.Target] {
				changed = true
				continue
			}
			markReads(st.Cond, reads)
			markReads(st.Then, reads)
			markReads(st.Else, reads)
			out = append([]ir.Stmt{st}, out...)

		case *ir.Return:
			if st.Value != nil {
				markReads(st.Value, reads)
			}
			out = append([]ir.Stmt{st}, out...)

		case *ir.ExprStmt:
			markReads(st.Value, reads)
			out = append([]ir.Stmt{st}, out...)

		case *ir.If:
			markReads(st.Cond, reads)
			newThen, ch1 := dseBlock(st.Then, reads)
			newElse, ch2 := dseBlock(st.Else, reads)
			changed = changed || ch1 || ch2
			out = append([]ir.Stmt{&ir.If{Header: st.Header, Cond: st.Cond, Then: newThen, Else: newElse}}, out...)

		case *ir.While:
			markReads(st.Cond, reads)
			markAllReads(st.Body, reads)
			out = append([]ir.Stmt{st}, out...)

		default:
			out = append([]ir.Stmt{st}, out...)
		}
	}
	return out, changed
}

// markReads records every Identifier name referenced anywhere inside e.
func markReads(e ir.Expr, reads map[string]bool) {
	if e == nil {
		return
	}
	switch ex := e.(type) {
	case *ir.Identifier:
		reads[ex.Name] = true
	case *ir.Binary:
		markReads(ex.Left, reads)
		markReads(ex.Right, reads)
	case *ir.Call:
		for _, a := range ex.Args {
			markReads(a, reads)
		}
	case *ir.Member:
		markReads(ex.Object, reads)
	case *ir.Index:
		markReads(ex.Object, reads)
		markReads(ex.Idx, reads)
	case *ir.Enum:
		for _, v := range ex.Values {
			markReads(v, reads)
		}
	case *ir.StructLiteral:
		for _, f := range ex.Fields {
			markReads(f.Value, reads)
		}
	case *ir.MatchExpr:
		markReads(ex.Scrutinee, reads)
		for _, arm := range ex.Arms {
			markReads(arm.Body, reads)
		}
	}
}

// markAllReads conservatively marks every identifier referenced
// anywhere within a While loop's un-SSA-converted body, since the
// optimizer does not eliminate dead stores inside loops (loop bodies
// stay outside the SSA/dead-store machinery entirely).
func markAllReads(stmts []ir.Stmt, reads map[string]bool) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ir.Let:
			markReads(st.Value, reads)
		case *ir.Assign:
			markReads(st.Value, reads)
		case *ir.Phi:
			markReads(st.Cond, reads)
			markReads(st.Then, reads)
			markReads(st.Else, reads)
		case *ir.Return:
			markReads(st.Value, reads)
		case *ir.ExprStmt:
			markReads(st.Value, reads)
		case *ir.If:
			markReads(st.Cond, reads)
			markAllReads(st.Then, reads)
			markAllReads(st.Else, reads)
		case *ir.While:
			markReads(st.Cond, reads)
			markAllReads(st.Body, reads)
		}
	}
}

// removeUnusedFunctions computes reachability from main via call
// targets and drops unreachable function declarations.
func removeUnusedFunctions(prog *ir.Program) {
	byName := map[string]*ir.Function{}
	for _, fn := range prog.Functions {
		byName[fn.Name] = fn
	}
	main, ok := byName["main"]
	if !ok {
		return // nothing to anchor reachability on; leave the program as-is
	}

	reachable := map[string]bool{"main": true}
	worklist := []*ir.Function{main}
	for len(worklist) > 0 {
		fn := worklist[0]
		worklist = worklist[1:]
		for _, callee := range calledFunctionNames(fn.Body) {
			if reachable[callee] {
				continue
			}
			if target, ok := byName[callee]; ok {
				reachable[callee] = true
				worklist = append(worklist, target)
			}
		}
	}

	kept := make([]*ir.Function, 0, len(prog.Functions))
	for _, fn := range prog.Functions {
		if reachable[fn.Name] {
			kept = append(kept, fn)
		}
	}
	prog.Functions = kept
}

func calledFunctionNames(stmts []ir.Stmt) []string {
	var names []string
	var visitExpr func(ir.Expr)
	visitExpr = func(e ir.Expr) {
		switch ex := e.(type) {
		case *ir.Call:
			names = append(names, ex.Callee)
			for _, a := range ex.Args {
				visitExpr(a)
			}
		case *ir.Binary:
			visitExpr(ex.Left)
			visitExpr(ex.Right)
		case *ir.Member:
			visitExpr(ex.Object)
		case *ir.Index:
			visitExpr(ex.Object)
			visitExpr(ex.Idx)
		case *ir.Enum:
			for _, v := range ex.Values {
				visitExpr(v)
			}
		case *ir.StructLiteral:
			for _, f := range ex.Fields {
				visitExpr(f.Value)
			}
		case *ir.MatchExpr:
			visitExpr(ex.Scrutinee)
			for _, arm := range ex.Arms {
				visitExpr(arm.Body)
			}
		}
	}
	var visitStmts func([]ir.Stmt)
	visitStmts = func(ss []ir.Stmt) {
		for _, s := range ss {
			switch st := s.(type) {
			case *ir.Let:
				visitExpr(st.Value)
			case *ir.Assign:
				visitExpr(st.Value)
			case *ir.Phi:
				visitExpr(st.Cond)
				visitExpr(st.Then)
				visitExpr(st.Else)
			case *ir.Return:
				if st.Value != nil {
					visitExpr(st.Value)
				}
			case *ir.ExprStmt:
				visitExpr(st.Value)
			case *ir.If:
				visitExpr(st.Cond)
				visitStmts(st.Then)
				visitStmts(st.Else)
			case *ir.While:
				visitExpr(st.Cond)
				visitStmts(st.Body)
			}
		}
	}
	visitStmts(stmts)
	return names
}
