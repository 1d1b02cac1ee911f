package sema

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
)

// collectDecls registers every top-level declaration into the module
// scope and the type/trait registries before any body is checked, so
// forward references (a function calling one declared later) resolve.
func (a *Analyzer) collectDecls() {
	root := a.symbols.Root
	for _, d := range a.prog.Decls {
		switch decl := d.(type) {
		case *ast.FuncDecl:
			if !root.Define(&Symbol{Name: decl.Name, Kind: SymbolFunc, Location: decl.Location, IsPublic: decl.IsPublic}) {
				a.errorf(diag.CodeDupDecl, diag.SourceAnalyzer, decl.Location, "duplicate declaration %q", decl.Name)
				continue
			}
			a.funcs[decl.Name] = decl

		case *ast.StructDecl:
			if !root.Define(&Symbol{Name: decl.Name, Kind: SymbolStruct, Location: decl.Location, IsPublic: decl.IsPublic}) {
				a.errorf(diag.CodeDupDecl, diag.SourceAnalyzer, decl.Location, "duplicate declaration %q", decl.Name)
				continue
			}
			a.structs[decl.Name] = decl

		case *ast.EnumDecl:
			if !root.Define(&Symbol{Name: decl.Name, Kind: SymbolEnum, Location: decl.Location, IsPublic: decl.IsPublic}) {
				a.errorf(diag.CodeDupDecl, diag.SourceAnalyzer, decl.Location, "duplicate declaration %q", decl.Name)
				continue
			}
			a.enums[decl.Name] = decl
			for i, v := range decl.Variants {
				a.variants[v.Name] = variantInfo{enum: decl, variant: v, index: i}
			}

		case *ast.TypeAliasDecl:
			if !root.Define(&Symbol{Name: decl.Name, Kind: SymbolTypeAlias, Location: decl.Location, IsPublic: decl.IsPublic}) {
				a.errorf(diag.CodeDupDecl, diag.SourceAnalyzer, decl.Location, "duplicate declaration %q", decl.Name)
				continue
			}
			a.aliases[decl.Name] = decl

		case *ast.TraitDecl:
			if !root.Define(&Symbol{Name: decl.Name, Kind: SymbolTrait, Location: decl.Location, IsPublic: decl.IsPublic}) {
				a.errorf(diag.CodeDupDecl, diag.SourceAnalyzer, decl.Location, "duplicate declaration %q", decl.Name)
				continue
			}
			a.traits[decl.Name] = decl

		case *ast.ImplDecl:
			a.impls = append(a.impls, decl)
			forName := typeExprName(decl.ForType)
			a.implsByType[forName] = append(a.implsByType[forName], implDefOf(decl))

		case *ast.TopLevelLetDecl:
			if !root.Define(&Symbol{Name: decl.Name, Kind: SymbolLet, Location: decl.Location, IsPublic: decl.IsPublic}) {
				a.errorf(diag.CodeDupDecl, diag.SourceAnalyzer, decl.Location, "duplicate declaration %q", decl.Name)
				continue
			}
			a.topLets[decl.Name] = decl

		case *ast.ImportDecl:
			for _, name := range decl.Names {
				root.Define(&Symbol{Name: name, Kind: SymbolImport, Location: decl.Location, ModulePath: decl.Path})
			}

		case *ast.ErrorDecl:
			// panic-mode placeholder; nothing to register.
		}
	}
}

// typeExprName returns the leading name of a type expression, used to
// index impls by the concrete type they target. Array/hole types have
// no name and return "".
func typeExprName(te ast.TypeExpr) string {
	if nt, ok := te.(*ast.NamedType); ok {
		return nt.Name
	}
	return ""
}

func implDefOf(decl *ast.ImplDecl) *implDef {
	def := &implDef{decl: decl, forType: typeExprName(decl.ForType), methods: make(map[string]*ast.FuncDecl)}
	for _, m := range decl.Methods {
		def.methods[m.Name] = m
	}
	return def
}

// buildImplsByType indexes a flat impl list the same way collectDecls
// does, for reuse when re-entering analysis over an existing result
// (monomorphizer specialization, see specialize.go).
func buildImplsByType(impls []*ast.ImplDecl) map[string][]*implDef {
	out := make(map[string][]*implDef)
	for _, decl := range impls {
		forName := typeExprName(decl.ForType)
		out[forName] = append(out[forName], implDefOf(decl))
	}
	return out
}

// buildVariants rebuilds the constructor-name -> variant index from a
// flat enum registry, for the same reuse case as buildImplsByType.
func buildVariants(enums map[string]*ast.EnumDecl) map[string]variantInfo {
	out := make(map[string]variantInfo)
	for _, decl := range enums {
		for i, v := range decl.Variants {
			out[v.Name] = variantInfo{enum: decl, variant: v, index: i}
		}
	}
	return out
}
