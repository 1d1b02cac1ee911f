package mono

import "github.com/lumina-lang/luminac/internal/ast"

// callSite is one use of a generic function worth considering for
// specialization: the call expression itself, so its Callee can be
// rewritten in place once a specialization is chosen.
type callSite struct {
	call *ast.CallExpr
}

// structSite is one use of a const/type-generic struct literal.
type structSite struct {
	lit *ast.StructLit
}

// collector walks a whole program collecting every call expression and
// struct literal, mirroring the way the lowerer (internal/lower) will
// later need to walk the same tree structurally.
type collector struct {
	calls   []callSite
	structs []structSite
	maxID   int
}

func (c *collector) noteID(id int) {
	if id > c.maxID {
		c.maxID = id
	}
}

func collect(prog *ast.Program) *collector {
	c := &collector{}
	for _, d := range prog.Decls {
		c.decl(d)
	}
	return c
}

func (c *collector) decl(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FuncDecl:
		if decl.Body != nil {
			c.block(decl.Body)
		}
	case *ast.ImplDecl:
		for _, m := range decl.Methods {
			if m.Body != nil {
				c.block(m.Body)
			}
		}
	case *ast.TopLevelLetDecl:
		c.expr(decl.Value)
	}
}

func (c *collector) block(b *ast.BlockStmt) {
	if b == nil {
		return
	}
	c.noteID(b.ID)
	for _, s := range b.Stmts {
		c.stmt(s)
	}
}

func (c *collector) stmt(s ast.Stmt) {
	if s == nil {
		return
	}
	c.noteID(s.StmtID())
	switch st := s.(type) {
	case *ast.BlockStmt:
		c.block(st)
	case *ast.LetStmt:
		c.expr(st.Value)
	case *ast.ReturnStmt:
		c.expr(st.Value)
	case *ast.ExprStmt:
		c.expr(st.Value)
	case *ast.IfStmt:
		c.expr(st.Cond)
		c.block(st.Then)
		c.block(st.Else)
	case *ast.WhileStmt:
		c.expr(st.Cond)
		c.block(st.Body)
	case *ast.AssignStmt:
		c.expr(st.Target)
		c.expr(st.Value)
	case *ast.MatchStmt:
		c.expr(st.Scrutinee)
		for _, arm := range st.Arms {
			c.expr(arm.Guard)
			c.block(arm.Body)
		}
	}
}

func (c *collector) expr(e ast.Expr) {
	if e == nil {
		return
	}
	c.noteID(e.ExprID())
	switch ex := e.(type) {
	case *ast.BinaryExpr:
		c.expr(ex.Left)
		c.expr(ex.Right)
	case *ast.UnaryExpr:
		c.expr(ex.Operand)
	case *ast.CallExpr:
		c.calls = append(c.calls, callSite{call: ex})
		c.expr(ex.Callee)
		for _, a := range ex.Args {
			c.expr(a)
		}
	case *ast.MemberExpr:
		c.expr(ex.Object)
	case *ast.IndexExpr:
		c.expr(ex.Object)
		c.expr(ex.Index)
	case *ast.ArrayLit:
		for _, el := range ex.Elements {
			c.expr(el)
		}
	case *ast.StructLit:
		c.structs = append(c.structs, structSite{lit: ex})
		for _, f := range ex.Fields {
			c.expr(f.Value)
		}
	case *ast.MatchExpr:
		c.expr(ex.Scrutinee)
		for _, arm := range ex.Arms {
			c.expr(arm.Guard)
			c.expr(arm.Body)
		}
	case *ast.PipelineExpr:
		c.expr(ex.Left)
		c.expr(ex.Right)
	case *ast.LambdaExpr:
		c.expr(ex.Body)
	}
}
