package lower

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/ir"
)

// lowerExpr translates one AST expression to its IR form.
func (l *Lowerer) lowerExpr(e ast.Expr) ir.Expr {
	switch ex := e.(type) {
	case *ast.NumberLit:
		return &ir.Number{Header: irLoc(ex.Location), Value: ex.Value, IsFloat: ex.IsFloat}
	case *ast.BoolLit:
		return &ir.Boolean{Header: irLoc(ex.Location), Value: ex.Value}
	case *ast.StringLit:
		return &ir.String{Header: irLoc(ex.Location), Value: ex.Value}
	case *ast.Identifier:
		return &ir.Identifier{Header: irLoc(ex.Location), Name: ex.Name}
	case *ast.UnaryExpr:
		// Lowered as a binary op (`0 - x` for `-`, `x != true` for `!`)
		// so IR need not carry a separate unary node.
		return l.lowerUnary(ex)
	case *ast.BinaryExpr:
		return &ir.Binary{Header: irLoc(ex.Location), Op: ex.Op, Left: l.lowerExpr(ex.Left), Right: l.lowerExpr(ex.Right)}
	case *ast.MemberExpr:
		return &ir.Member{Header: irLoc(ex.Location), Object: l.lowerExpr(ex.Object), Field: ex.Field}
	case *ast.IndexExpr:
		return &ir.Index{Header: irLoc(ex.Location), Object: l.lowerExpr(ex.Object), Idx: l.lowerExpr(ex.Index)}
	case *ast.ArrayLit:
		// Represented as a Call to the synthetic "__array" constructor;
		// codegens special-case this callee (array literals are a
		// host-level allocation, not a user-callable function).
		args := make([]ir.Expr, len(ex.Elements))
		for i, el := range ex.Elements {
			args[i] = l.lowerExpr(el)
		}
		return &ir.Call{Header: irLoc(ex.Location), Callee: "__array", Args: args}
	case *ast.StructLit:
		fields := make([]ir.StructFieldValue, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = ir.StructFieldValue{Name: f.Name, Value: l.lowerExpr(f.Value)}
		}
		return &ir.StructLiteral{Header: irLoc(ex.Location), TypeName: ex.TypeName, Fields: fields}
	case *ast.CallExpr:
		return l.lowerCall(ex, nil)
	case *ast.PipelineExpr:
		// a |> f(args) becomes Call(f, [a, ...args]).
		call, ok := ex.Right.(*ast.CallExpr)
		if !ok {
			diagPanic("pipeline right-hand side is not a call")
		}
		return l.lowerCall(call, ex.Left)
	case *ast.MatchExpr:
		return l.lowerMatchExpr(ex)
	case *ast.LambdaExpr:
		// No IR node models a closure directly; lambdas lower to a Call
		// of a synthetic "__lambda" marker carrying the lowered body as a
		// single argument, which codegens translate to a native closure
		// literal. This keeps lambdas representable without adding a
		// dedicated IR node.
		return &ir.Call{Header: irLoc(ex.Location), Callee: "__lambda", Args: []ir.Expr{l.lowerExpr(ex.Body)}}
	case *ast.ErrorExpr:
		return &ir.Identifier{Header: irLoc(ex.Location), Name: "__error"}
	default:
		diagPanic("lower: unhandled expression node")
		return nil
	}
}

func (l *Lowerer) lowerUnary(ex *ast.UnaryExpr) ir.Expr {
	operand := l.lowerExpr(ex.Operand)
	switch ex.Op {
	case "-":
		return &ir.Binary{Header: irLoc(ex.Location), Op: "-", Left: &ir.Number{Value: 0}, Right: operand}
	case "!":
		return &ir.Binary{Header: irLoc(ex.Location), Op: "!=", Left: operand, Right: &ir.Boolean{Value: true}}
	default:
		diagPanic("lower: unknown unary operator " + ex.Op)
		return nil
	}
}

// lowerCall lowers a call expression. extraFirst is the pipeline
// operator's left operand when non-nil. It resolves, in
// order: enum constructor calls (-> ir.Enum), trait-method calls on a
// member-expr callee that sema recorded a resolution for (-> Call to
// the mangled name), then ordinary function calls.
func (l *Lowerer) lowerCall(ex *ast.CallExpr, extraFirst ast.Expr) ir.Expr {
	if ident, ok := ex.Callee.(*ast.Identifier); ok {
		if enumName, isVariant := l.variantEnum[ident.Name]; isVariant {
			values := l.lowerArgs(extraFirst, ex.Args)
			return &ir.Enum{Header: irLoc(ex.Location), EnumName: enumName, Tag: ident.Name, Values: values}
		}
	}

	if res, ok := l.sem.TraitResolutions[ex.ID]; ok {
		member := ex.Callee.(*ast.MemberExpr)
		args := append([]ir.Expr{l.lowerExpr(member.Object)}, l.lowerArgs(extraFirst, ex.Args)...)
		return &ir.Call{Header: irLoc(ex.Location), Callee: res.MangledName, Args: args}
	}

	if ident, ok := ex.Callee.(*ast.Identifier); ok {
		return &ir.Call{Header: irLoc(ex.Location), Callee: ident.Name, Args: l.lowerArgs(extraFirst, ex.Args)}
	}

	// Call through an arbitrary expression (e.g. a lambda value, or a
	// member access that did not resolve to a trait method): lowered
	// through a synthetic "__call" indirection carrying the callee
	// expression as the first argument.
	args := append([]ir.Expr{l.lowerExpr(ex.Callee)}, l.lowerArgs(extraFirst, ex.Args)...)
	return &ir.Call{Header: irLoc(ex.Location), Callee: "__call", Args: args}
}

func (l *Lowerer) lowerArgs(extraFirst ast.Expr, args []ast.Expr) []ir.Expr {
	out := make([]ir.Expr, 0, len(args)+1)
	if extraFirst != nil {
		out = append(out, l.lowerExpr(extraFirst))
	}
	for _, a := range args {
		out = append(out, l.lowerExpr(a))
	}
	return out
}

func diagPanic(msg string) {
	panic("internal error in lower: " + msg)
}
