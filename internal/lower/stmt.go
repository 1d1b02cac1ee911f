package lower

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/ir"
)

// lowerBlock lowers every statement in a block in order, flattening the
// multi-statement desugarings (match statements) into the surrounding
// sequence.
func (l *Lowerer) lowerBlock(b *ast.BlockStmt) []ir.Stmt {
	if b == nil {
		return nil
	}
	out := make([]ir.Stmt, 0, len(b.Stmts))
	for _, s := range b.Stmts {
		out = append(out, l.lowerStmt(s)...)
	}
	return out
}

// lowerStmt lowers one statement. Most statements produce exactly one
// IR statement; match statements expand to several.
func (l *Lowerer) lowerStmt(s ast.Stmt) []ir.Stmt {
	switch st := s.(type) {
	case *ast.LetStmt:
		return []ir.Stmt{&ir.Let{Header: irLoc(st.Location), Name: st.Name, Value: l.lowerExpr(st.Value)}}

	case *ast.ReturnStmt:
		var v ir.Expr
		if st.Value != nil {
			v = l.lowerExpr(st.Value)
		}
		return []ir.Stmt{&ir.Return{Header: irLoc(st.Location), Value: v}}

	case *ast.ExprStmt:
		return []ir.Stmt{&ir.ExprStmt{Header: irLoc(st.Location), Value: l.lowerExpr(st.Value)}}

	case *ast.IfStmt:
		var elseStmts []ir.Stmt
		if st.Else != nil {
			elseStmts = l.lowerBlock(st.Else)
		}
		return []ir.Stmt{&ir.If{Header: irLoc(st.Location), Cond: l.lowerExpr(st.Cond), Then: l.lowerBlock(st.Then), Else: elseStmts}}

	case *ast.WhileStmt:
		return []ir.Stmt{&ir.While{Header: irLoc(st.Location), Cond: l.lowerExpr(st.Cond), Body: l.lowerBlock(st.Body)}}

	case *ast.AssignStmt:
		return []ir.Stmt{l.lowerAssign(st)}

	case *ast.MatchStmt:
		return l.lowerMatchStmt(st)

	case *ast.BlockStmt:
		return l.lowerBlock(st)

	case *ast.ErrorStmt:
		return []ir.Stmt{&ir.Noop{Header: irLoc(st.Location)}}

	default:
		diagPanic("lower: unhandled statement node")
		return nil
	}
}

// lowerAssign lowers `target = value`. A plain identifier target lowers
// to Assign; a member target `a.b = v` desugars to
// ExprStmt(Call("__set", [obj, "b", v])).
func (l *Lowerer) lowerAssign(st *ast.AssignStmt) ir.Stmt {
	switch target := st.Target.(type) {
	case *ast.Identifier:
		return &ir.Assign{Header: irLoc(st.Location), Name: target.Name, Value: l.lowerExpr(st.Value)}
	case *ast.MemberExpr:
		args := []ir.Expr{l.lowerExpr(target.Object), &ir.String{Value: target.Field}, l.lowerExpr(st.Value)}
		return &ir.ExprStmt{Header: irLoc(st.Location), Value: &ir.Call{Callee: "__set", Args: args}}
	default:
		diagPanic("lower: unsupported assignment target")
		return nil
	}
}
