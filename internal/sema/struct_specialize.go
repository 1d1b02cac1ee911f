package sema

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/types"
)

// StructFieldTypes resolves every field of sd's declaration against a
// concrete instantiation adt, without cloning or mutating sd itself.
// The monomorphizer (C5) uses this to attach concrete field types to a
// const/type-generic struct's specialization, since a struct has no
// body to re-infer the way a function's does.
func (res *SemanticResult) StructFieldTypes(sd *ast.StructDecl, adt *types.ADT) map[string]types.Type {
	a := &Analyzer{
		structs:     res.Structs,
		enums:       res.Enums,
		aliases:     res.Aliases,
		vg:          res.VarGen,
		reporter:    diag.NewReporter(),
	}
	ctx := structInstCtx(sd, adt)
	out := make(map[string]types.Type, len(sd.Fields))
	for _, f := range sd.Fields {
		out[f.Name] = types.Prune(a.resolveType(f.Type, ctx), res.Subst)
	}
	return out
}
