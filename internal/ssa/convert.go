// Package ssa implements SSA conversion and the optimizer: renaming
// each function's variables into static single assignment form with phi
// insertion at two-way branch joins, followed by fixed-point
// constant/algebraic/boolean folding, dead-store elimination, and
// unused-function pruning, plus a post-optimization validator asserting
// the SSA invariants. The walker shape (dispatch on concrete node
// types, threading mutable state through recursion) follows the style
// internal/sema and internal/lower establish.
package ssa

import (
	"fmt"

	"github.com/lumina-lang/luminac/internal/ir"
)

// ConvertProgram SSA-converts every function in prog in place and
// returns it for convenience.
func ConvertProgram(prog *ir.Program) *ir.Program {
	for _, fn := range prog.Functions {
		ConvertFunction(fn)
	}
	return prog
}

// ConvertFunction SSA-converts one function's body in place.
func ConvertFunction(fn *ir.Function) {
	rn := newRenamer()
	for _, p := range fn.Params {
		rn.current[p] = p // parameters are version 0
	}
	body, _ := rn.convertBlock(fn.Body)
	fn.Body = body
}

// renamer tracks each source variable name's current SSA name and a
// per-name counter for allocating fresh versions (`name`, `name_1`,
// `name_2`, …).
type renamer struct {
	current map[string]string
	nextVer map[string]int
}

func newRenamer() *renamer {
	return &renamer{current: map[string]string{}, nextVer: map[string]int{}}
}

// fresh allocates and records a new SSA name for the source variable
// name, without yet making it current (callers set rn.current
// themselves once the binding's value has been renamed).
func (rn *renamer) fresh(name string) string {
	v := rn.nextVer[name]
	rn.nextVer[name] = v + 1
	if v == 0 {
		return name
	}
	return fmt.Sprintf("%s_%d", name, v)
}

func (rn *renamer) snapshot() map[string]string {
	out := make(map[string]string, len(rn.current))
	for k, v := range rn.current {
		out[k] = v
	}
	return out
}

func (rn *renamer) restore(snap map[string]string) {
	rn.current = snap
}

// convertBlock SSA-renames a statement sequence, returning the
// rewritten statements and the set of original variable names given a
// fresh definition anywhere in this block (used by the caller, an If's
// branch handling, to decide which variables need a join phi).
func (rn *renamer) convertBlock(stmts []ir.Stmt) ([]ir.Stmt, map[string]bool) {
	touched := map[string]bool{}
	out := make([]ir.Stmt, 0, len(stmts))
	for _, s := range stmts {
		switch st := s.(type) {
		case *ir.Let:
			val := rn.renameExpr(st.Value)
			name := rn.fresh(st.Name)
			rn.current[st.Name] = name
			touched[st.Name] = true
			out = append(out, &ir.Let{Header: st.Header, Name: name, Value: val})

		case *ir.Assign:
			// Assign outside a loop behaves exactly like Let: a fresh
			// version is introduced and the Assign node itself is
			// removed.
			val := rn.renameExpr(st.Value)
			name := rn.fresh(st.Name)
			rn.current[st.Name] = name
			touched[st.Name] = true
			out = append(out, &ir.Let{Header: st.Header, Name: name, Value: val})

		case *ir.Return:
			out = append(out, &ir.Return{Header: st.Header, Value: rn.renameExprOpt(st.Value)})

		case *ir.ExprStmt:
			out = append(out, &ir.ExprStmt{Header: st.Header, Value: rn.renameExpr(st.Value)})

		case *ir.If:
			out = append(out, rn.convertIf(st, touched)...)

		case *ir.While:
			// While bodies are deliberately not SSA-rewritten: the
			// condition is renamed against current bindings,
			// but the body passes through untouched, Assign included.
			out = append(out, &ir.While{Header: st.Header, Cond: rn.renameExpr(st.Cond), Body: st.Body})

		case *ir.Noop:
			out = append(out, st)

		default:
			out = append(out, st)
		}
	}
	return out, touched
}

func (rn *renamer) convertIf(st *ir.If, outerTouched map[string]bool) []ir.Stmt {
	condR := rn.renameExpr(st.Cond)
	before := rn.snapshot()

	thenOut, thenTouched := rn.convertBlock(st.Then)
	thenSnap := rn.snapshot()

	rn.restore(before)
	elseOut, elseTouched := rn.convertBlock(st.Else)
	elseSnap := rn.snapshot()

	merged := make(map[string]string, len(before))
	for k, v := range before {
		merged[k] = v
	}
	var phis []ir.Stmt
	for name := range unionKeys(thenTouched, elseTouched) {
		thenVal := before[name]
		if thenTouched[name] {
			thenVal = thenSnap[name]
		}
		elseVal := before[name]
		if elseTouched[name] {
			elseVal = elseSnap[name]
		}
		if thenVal == elseVal {
			merged[name] = thenVal
			continue
		}
		target := rn.fresh(name)
		phis = append(phis, &ir.Phi{
			Target: target,
			Cond:   condR,
			Then:   &ir.Identifier{Name: thenVal},
			Else:   &ir.Identifier{Name: elseVal},
		})
		merged[name] = target
		outerTouched[name] = true
	}
	rn.current = merged

	out := []ir.Stmt{&ir.If{Header: st.Header, Cond: condR, Then: thenOut, Else: elseOut}}
	return append(out, phis...)
}

func unionKeys(a, b map[string]bool) map[string]bool {
	out := map[string]bool{}
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

func (rn *renamer) renameExprOpt(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	return rn.renameExpr(e)
}

// renameExpr rewrites every Identifier in e to its current SSA name,
// so identifiers resolve to a parameter or a preceding Let/Phi
// definition.
func (rn *renamer) renameExpr(e ir.Expr) ir.Expr {
	switch ex := e.(type) {
	case *ir.Identifier:
		if cur, ok := rn.current[ex.Name]; ok {
			return &ir.Identifier{Header: ex.Header, Name: cur}
		}
		return ex
	case *ir.Number, *ir.Boolean, *ir.String:
		return ex
	case *ir.Binary:
		return &ir.Binary{Header: ex.Header, Op: ex.Op, Left: rn.renameExpr(ex.Left), Right: rn.renameExpr(ex.Right)}
	case *ir.Call:
		args := make([]ir.Expr, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = rn.renameExpr(a)
		}
		return &ir.Call{Header: ex.Header, Callee: ex.Callee, Args: args}
	case *ir.Member:
		return &ir.Member{Header: ex.Header, Object: rn.renameExpr(ex.Object), Field: ex.Field}
	case *ir.Index:
		return &ir.Index{Header: ex.Header, Object: rn.renameExpr(ex.Object), Idx: rn.renameExpr(ex.Idx)}
	case *ir.Enum:
		values := make([]ir.Expr, len(ex.Values))
		for i, v := range ex.Values {
			values[i] = rn.renameExpr(v)
		}
		return &ir.Enum{Header: ex.Header, EnumName: ex.EnumName, Tag: ex.Tag, Values: values}
	case *ir.StructLiteral:
		fields := make([]ir.StructFieldValue, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = ir.StructFieldValue{Name: f.Name, Value: rn.renameExpr(f.Value)}
		}
		return &ir.StructLiteral{Header: ex.Header, TypeName: ex.TypeName, Fields: fields}
	case *ir.MatchExpr:
		scrutinee := rn.renameExpr(ex.Scrutinee)
		arms := make([]ir.MatchArm, len(ex.Arms))
		for i, arm := range ex.Arms {
			before := rn.snapshot()
			for _, b := range arm.Bindings {
				rn.current[b] = b
			}
			arms[i] = ir.MatchArm{Variant: arm.Variant, Bindings: arm.Bindings, Body: rn.renameExpr(arm.Body)}
			rn.restore(before)
		}
		return &ir.MatchExpr{Header: ex.Header, Scrutinee: scrutinee, Arms: arms}
	default:
		return e
	}
}
