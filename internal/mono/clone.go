package mono

import "github.com/lumina-lang/luminac/internal/ast"

// cloner deep-copies AST subtrees, handing every expression and
// statement a fresh id so a specialized declaration's nodes never
// collide with the generic original's (or with another specialization
// of the same declaration) in the shared inferred-type tables.
type cloner struct {
	ids *ast.IDAllocator
}

func (c *cloner) cloneFunc(fn *ast.FuncDecl, newName string) *ast.FuncDecl {
	clone := &ast.FuncDecl{
		Name:       newName,
		IsPublic:   fn.IsPublic,
		TypeParams: nil, // the specialization is no longer generic
		ReturnType: fn.ReturnType,
		Location:   fn.Location,
	}
	clone.Params = make([]*ast.Param, len(fn.Params))
	for i, p := range fn.Params {
		clone.Params[i] = &ast.Param{Name: p.Name, Type: p.Type, Location: p.Location}
	}
	if fn.Body != nil {
		clone.Body = c.cloneBlock(fn.Body)
	}
	return clone
}

func (c *cloner) cloneBlock(b *ast.BlockStmt) *ast.BlockStmt {
	out := &ast.BlockStmt{StmtHeader: ast.StmtHeader{ID: c.ids.Next(), Location: b.Location}}
	out.Stmts = make([]ast.Stmt, len(b.Stmts))
	for i, s := range b.Stmts {
		out.Stmts[i] = c.cloneStmt(s)
	}
	return out
}

func (c *cloner) cloneStmt(s ast.Stmt) ast.Stmt {
	switch st := s.(type) {
	case *ast.BlockStmt:
		return c.cloneBlock(st)

	case *ast.LetStmt:
		return &ast.LetStmt{
			StmtHeader: ast.StmtHeader{ID: c.ids.Next(), Location: st.Location},
			Name:       st.Name, Type: st.Type, Value: c.cloneExpr(st.Value),
		}

	case *ast.ReturnStmt:
		var v ast.Expr
		if st.Value != nil {
			v = c.cloneExpr(st.Value)
		}
		return &ast.ReturnStmt{StmtHeader: ast.StmtHeader{ID: c.ids.Next(), Location: st.Location}, Value: v}

	case *ast.ExprStmt:
		return &ast.ExprStmt{StmtHeader: ast.StmtHeader{ID: c.ids.Next(), Location: st.Location}, Value: c.cloneExpr(st.Value)}

	case *ast.IfStmt:
		out := &ast.IfStmt{
			StmtHeader: ast.StmtHeader{ID: c.ids.Next(), Location: st.Location},
			Cond:       c.cloneExpr(st.Cond), Then: c.cloneBlock(st.Then),
		}
		if st.Else != nil {
			out.Else = c.cloneBlock(st.Else)
		}
		return out

	case *ast.WhileStmt:
		return &ast.WhileStmt{
			StmtHeader: ast.StmtHeader{ID: c.ids.Next(), Location: st.Location},
			Cond:       c.cloneExpr(st.Cond), Body: c.cloneBlock(st.Body),
		}

	case *ast.AssignStmt:
		return &ast.AssignStmt{
			StmtHeader: ast.StmtHeader{ID: c.ids.Next(), Location: st.Location},
			Target:     c.cloneExpr(st.Target), Value: c.cloneExpr(st.Value),
		}

	case *ast.MatchStmt:
		out := &ast.MatchStmt{StmtHeader: ast.StmtHeader{ID: c.ids.Next(), Location: st.Location}, Scrutinee: c.cloneExpr(st.Scrutinee)}
		out.Arms = make([]ast.MatchArmStmt, len(st.Arms))
		for i, arm := range st.Arms {
			na := ast.MatchArmStmt{Pattern: arm.Pattern, Body: c.cloneBlock(arm.Body)}
			if arm.Guard != nil {
				na.Guard = c.cloneExpr(arm.Guard)
			}
			out.Arms[i] = na
		}
		return out

	case *ast.ErrorStmt:
		return &ast.ErrorStmt{StmtHeader: ast.StmtHeader{ID: c.ids.Next(), Location: st.Location}}

	default:
		return s
	}
}

func (c *cloner) cloneExpr(e ast.Expr) ast.Expr {
	switch ex := e.(type) {
	case *ast.NumberLit:
		return &ast.NumberLit{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Value: ex.Value, IsFloat: ex.IsFloat, RawText: ex.RawText}

	case *ast.BoolLit:
		return &ast.BoolLit{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Value: ex.Value}

	case *ast.StringLit:
		return &ast.StringLit{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Value: ex.Value}

	case *ast.Identifier:
		return &ast.Identifier{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Name: ex.Name}

	case *ast.BinaryExpr:
		return &ast.BinaryExpr{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Op: ex.Op, Left: c.cloneExpr(ex.Left), Right: c.cloneExpr(ex.Right)}

	case *ast.UnaryExpr:
		return &ast.UnaryExpr{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Op: ex.Op, Operand: c.cloneExpr(ex.Operand)}

	case *ast.CallExpr:
		out := &ast.CallExpr{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Callee: c.cloneExpr(ex.Callee), TypeArgs: ex.TypeArgs}
		out.Args = make([]ast.Expr, len(ex.Args))
		for i, a := range ex.Args {
			out.Args[i] = c.cloneExpr(a)
		}
		return out

	case *ast.MemberExpr:
		return &ast.MemberExpr{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Object: c.cloneExpr(ex.Object), Field: ex.Field}

	case *ast.IndexExpr:
		return &ast.IndexExpr{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Object: c.cloneExpr(ex.Object), Index: c.cloneExpr(ex.Index)}

	case *ast.ArrayLit:
		out := &ast.ArrayLit{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}}
		out.Elements = make([]ast.Expr, len(ex.Elements))
		for i, el := range ex.Elements {
			out.Elements[i] = c.cloneExpr(el)
		}
		return out

	case *ast.StructLit:
		out := &ast.StructLit{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, TypeName: ex.TypeName, TypeArgs: ex.TypeArgs}
		out.Fields = make([]ast.StructFieldInit, len(ex.Fields))
		for i, f := range ex.Fields {
			out.Fields[i] = ast.StructFieldInit{Name: f.Name, Value: c.cloneExpr(f.Value)}
		}
		return out

	case *ast.MatchExpr:
		out := &ast.MatchExpr{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Scrutinee: c.cloneExpr(ex.Scrutinee)}
		out.Arms = make([]ast.MatchArm, len(ex.Arms))
		for i, arm := range ex.Arms {
			na := ast.MatchArm{Pattern: arm.Pattern, Body: c.cloneExpr(arm.Body), Location: arm.Location}
			if arm.Guard != nil {
				na.Guard = c.cloneExpr(arm.Guard)
			}
			out.Arms[i] = na
		}
		return out

	case *ast.PipelineExpr:
		return &ast.PipelineExpr{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Left: c.cloneExpr(ex.Left), Right: c.cloneExpr(ex.Right)}

	case *ast.LambdaExpr:
		out := &ast.LambdaExpr{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}, Body: c.cloneExpr(ex.Body)}
		out.Params = make([]*ast.Param, len(ex.Params))
		for i, p := range ex.Params {
			out.Params[i] = &ast.Param{Name: p.Name, Type: p.Type, Location: p.Location}
		}
		return out

	case *ast.ErrorExpr:
		return &ast.ErrorExpr{ExprHeader: ast.ExprHeader{ID: c.ids.Next(), Location: ex.Location}}

	default:
		return e
	}
}
