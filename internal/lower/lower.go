// Package lower implements the AST-to-IR lowerer: a structural
// translation from internal/ast to internal/ir that desugars match
// statements/expressions, enum constructor calls, the pipeline
// operator, and member assignment along the way.
package lower

import (
	"fmt"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/ir"
	"github.com/lumina-lang/luminac/internal/sema"
	"github.com/lumina-lang/luminac/internal/types"
)

// Lowerer carries the semantic-analysis output consulted while lowering
// (enum variant lookup, trait-method resolutions) plus the monotonic
// counter used to name match temporaries uniquely per function.
type Lowerer struct {
	sem          *sema.SemanticResult
	variantEnum  map[string]string // variant name -> owning enum name
	matchCounter int
}

// New returns a Lowerer ready to lower every function in prog, using sem
// (the SemanticResult for the same program) to resolve enum
// constructors and trait-method calls.
func New(sem *sema.SemanticResult) *Lowerer {
	l := &Lowerer{sem: sem, variantEnum: map[string]string{}}
	for enumName, decl := range sem.Enums {
		for _, v := range decl.Variants {
			l.variantEnum[v.Name] = enumName
		}
	}
	return l
}

// LowerProgram lowers every function declaration in prog, in source
// order, plus each impl block's methods as mangled free functions
// (`Trait$Type$method`) so trait-method call sites resolved
// by sema have a definition to target. Other non-function top-level
// declarations (imports, type/trait declarations, struct/enum
// declarations, top-level lets, and ast.ErrorDecl placeholders) are
// skipped: they are not represented in the IR program at all, and no
// Noop statement is emitted for them.
func LowerProgram(prog *ast.Program, sem *sema.SemanticResult) *ir.Program {
	l := New(sem)
	out := &ir.Program{}
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.FuncDecl:
			out.Functions = append(out.Functions, l.LowerFunc(decl))
		case *ast.ImplDecl:
			forName := ""
			if nt, ok := decl.ForType.(*ast.NamedType); ok {
				forName = nt.Name
			}
			for _, m := range decl.Methods {
				fn := l.LowerFunc(m)
				fn.Name = types.SanitizeIdent(decl.TraitName) + "$" + types.SanitizeIdent(forName) + "$" + types.SanitizeIdent(m.Name)
				out.Functions = append(out.Functions, fn)
			}
		}
	}
	return out
}

// LowerFunc lowers one function declaration's body.
func (l *Lowerer) LowerFunc(fn *ast.FuncDecl) *ir.Function {
	l.matchCounter = 0
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name
	}
	return &ir.Function{
		Header:   ir.Header{Location: fn.Location, HasLocation: true},
		Name:     fn.Name,
		IsPublic: fn.IsPublic,
		Params:   params,
		Body:     l.lowerBlock(fn.Body),
	}
}

func (l *Lowerer) nextMatchTemp() string {
	name := fmt.Sprintf("__match%d", l.matchCounter)
	l.matchCounter++
	return name
}

func irLoc(loc ast.Location) ir.Header {
	return ir.Header{Location: loc, HasLocation: true}
}
