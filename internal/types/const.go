package types

import (
	"fmt"

	"github.com/lumina-lang/luminac/internal/ast"
)

// ConstValue is an evaluated const-expression: a plain integer once
// const parameters have been substituted and arithmetic folded.
type ConstValue struct {
	Value int64
}

func (c ConstValue) String() string { return fmt.Sprintf("%d", c.Value) }

// ConstBindings maps a const parameter name to its bound value during
// evaluation (used by both the monomorphizer and array-size checking).
type ConstBindings map[string]int64

// EvalConstExpr evaluates a const-expression AST node against bindings,
// folding `+ - * /` with floor division. Division by zero
// returns an error for the caller to report.
func EvalConstExpr(e ast.ConstExpr, bindings ConstBindings) (int64, error) {
	switch n := e.(type) {
	case *ast.ConstInt:
		return n.Value, nil
	case *ast.ConstParamRef:
		v, ok := bindings[n.Name]
		if !ok {
			return 0, fmt.Errorf("unbound const parameter %q", n.Name)
		}
		return v, nil
	case *ast.ConstBinary:
		l, err := EvalConstExpr(n.Left, bindings)
		if err != nil {
			return 0, err
		}
		r, err := EvalConstExpr(n.Right, bindings)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case "+":
			return l + r, nil
		case "-":
			return l - r, nil
		case "*":
			return l * r, nil
		case "/":
			if r == 0 {
				return 0, fmt.Errorf("division by zero in const-expression")
			}
			return floorDiv(l, r), nil
		default:
			return 0, fmt.Errorf("unknown const-expression operator %q", n.Op)
		}
	default:
		return 0, fmt.Errorf("unsupported const-expression node %T", e)
	}
}

// floorDiv implements floor division: const-expression `/` floors
// rather than truncating toward zero.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CanonicalConstText renders an evaluated const value in the canonical
// textual form used by the monomorphization key: plain
// decimal, so two differing source spellings that evaluate equal
// collapse to the same text.
func CanonicalConstText(v int64) string {
	return fmt.Sprintf("%d", v)
}
