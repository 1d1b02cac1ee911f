package sema

import "github.com/lumina-lang/luminac/internal/ast"

// structDef is the registered shape of a struct declaration, kept
// alongside its raw AST so field types can be resolved against whatever
// type/const parameters are in scope at each use site.
type structDef struct {
	decl *ast.StructDecl
}

// enumDef mirrors structDef for enum declarations.
type enumDef struct {
	decl *ast.EnumDecl
}

// variantInfo resolves a bare constructor name (`Some`, `None`) back to
// its owning enum and variant for enum-constructor calls (`Some(1)`;
// there is no `::` syntax, see the ambiguity note on bindPattern).
type variantInfo struct {
	enum    *ast.EnumDecl
	variant *ast.EnumVariant
	index   int
}

// traitDef is a registered trait declaration.
type traitDef struct {
	decl *ast.TraitDecl
}

// implKey identifies one impl block by (trait, for-type-name).
type implKey struct {
	trait   string
	forType string
}

// implDef is a registered impl block, indexed by method name for
// resolution.
type implDef struct {
	decl    *ast.ImplDecl
	forType string
	methods map[string]*ast.FuncDecl
}
