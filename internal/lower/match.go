package lower

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/ir"
)

// lowerMatchStmt desugars a statement-position match to a
// `let __matchN = <scrutinee>` binding followed by a chain of `If`s,
// each checking `__matchN.tag == "<Variant>"`. The trailing
// `else` holds the wildcard (or binding) arm's body if present.
func (l *Lowerer) lowerMatchStmt(st *ast.MatchStmt) []ir.Stmt {
	temp := l.nextMatchTemp()
	out := []ir.Stmt{
		&ir.Let{Header: irLoc(st.Location), Name: temp, Value: l.lowerExpr(st.Scrutinee)},
	}

	// Build the If-chain from the last arm backward: an unconditional
	// wildcard/binding arm (no guard) becomes the innermost Else body
	// directly, and every preceding arm wraps it in one more If.
	var elseStmts []ir.Stmt
	for i := len(st.Arms) - 1; i >= 0; i-- {
		arm := st.Arms[i]
		cond := l.armCondition(temp, arm.Pattern)
		body := append(l.armBindings(temp, arm.Pattern), l.lowerBlock(arm.Body)...)

		if cond == nil && arm.Guard == nil {
			elseStmts = body
			continue
		}
		if cond == nil {
			cond = l.lowerExpr(arm.Guard)
		} else if arm.Guard != nil {
			cond = &ir.Binary{Op: "&&", Left: cond, Right: l.lowerExpr(arm.Guard)}
		}
		elseStmts = []ir.Stmt{&ir.If{Header: irLoc(arm.Body.Location), Cond: cond, Then: body, Else: elseStmts}}
	}
	return append(out, elseStmts...)
}

// lowerMatchExpr lowers a match used in expression position directly to
// an ir.MatchExpr, preserving the wildcard arm as Variant: nil.
func (l *Lowerer) lowerMatchExpr(ex *ast.MatchExpr) ir.Expr {
	scrutinee := l.lowerExpr(ex.Scrutinee)
	arms := make([]ir.MatchArm, len(ex.Arms))
	for i, arm := range ex.Arms {
		arms[i] = l.lowerExprArm(arm)
	}
	return &ir.MatchExpr{Header: irLoc(ex.Location), Scrutinee: scrutinee, Arms: arms}
}

func (l *Lowerer) lowerExprArm(arm ast.MatchArm) ir.MatchArm {
	switch p := arm.Pattern.(type) {
	case *ast.VariantPattern:
		variant := p.Variant
		return ir.MatchArm{Variant: &variant, Bindings: append([]string(nil), p.Bindings...), Body: l.lowerExpr(arm.Body)}
	case *ast.BindingPattern:
		// A bare binding arm matches everything, binding the whole
		// scrutinee under one name; modeled as a single-element binding
		// list against the wildcard arm shape so codegen can bind it like
		// a degenerate one-field variant match.
		return ir.MatchArm{Variant: nil, Bindings: []string{p.Name}, Body: l.lowerExpr(arm.Body)}
	default:
		return ir.MatchArm{Variant: nil, Bindings: nil, Body: l.lowerExpr(arm.Body)}
	}
}

// armCondition returns the `__matchN.tag == "<Variant>"` condition for
// a VariantPattern, or nil for a wildcard/binding pattern (which never
// needs a tag check).
func (l *Lowerer) armCondition(temp string, p ast.Pattern) ir.Expr {
	vp, ok := p.(*ast.VariantPattern)
	if !ok {
		return nil
	}
	tag := &ir.Member{Object: &ir.Identifier{Name: temp}, Field: "tag"}
	return &ir.Binary{Op: "==", Left: tag, Right: &ir.String{Value: vp.Variant}}
}

// armBindings emits the Let nodes that index into `__matchN.values[i]`
// for each name a VariantPattern binds, or a single
// `let name = __matchN;` for a whole-value BindingPattern.
func (l *Lowerer) armBindings(temp string, p ast.Pattern) []ir.Stmt {
	switch pat := p.(type) {
	case *ast.VariantPattern:
		out := make([]ir.Stmt, 0, len(pat.Bindings))
		for i, name := range pat.Bindings {
			if name == "_" {
				continue
			}
			values := &ir.Member{Object: &ir.Identifier{Name: temp}, Field: "values"}
			idx := &ir.Index{Object: values, Idx: &ir.Number{Value: float64(i)}}
			out = append(out, &ir.Let{Name: name, Value: idx})
		}
		return out
	case *ast.BindingPattern:
		return []ir.Stmt{&ir.Let{Name: pat.Name, Value: &ir.Identifier{Name: temp}}}
	default:
		return nil
	}
}
