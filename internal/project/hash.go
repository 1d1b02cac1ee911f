package project

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/sid"
)

// textSpan slices src by a Location's byte offsets, clamped to bounds.
func textSpan(src string, loc ast.Location) string {
	start, end := loc.Start.Offset, loc.End.Offset
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start > end || start > len(src) {
		return ""
	}
	return src[start:end]
}

// bodyHashes computes a per-function body hash keyed by function name,
// hashing the function body's source text span so an edit-preserving
// reformat that doesn't touch a function's bytes keeps its hash
// stable.
func bodyHashes(prog *ast.Program, src string) map[string]sid.Hash {
	out := map[string]sid.Hash{}
	for _, d := range prog.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		out[fn.Name] = sid.OfText(textSpan(src, fn.Body.Loc()))
	}
	return out
}

// signatureHashes computes a per-public-declaration signature hash:
// name + parameter types + return type. Only exported
// declarations are tracked since only a public signature change forces
// dependents to re-analyze.
func signatureHashes(prog *ast.Program) map[string]sid.Hash {
	out := map[string]sid.Hash{}
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.FuncDecl:
			if !decl.IsPublic {
				continue
			}
			params := make([]string, len(decl.Params))
			for i, p := range decl.Params {
				params[i] = typeExprString(p.Type)
			}
			out[decl.Name] = sid.OfSignature(decl.Name, params, typeExprString(decl.ReturnType))
		case *ast.StructDecl:
			if !decl.IsPublic {
				continue
			}
			fields := make([]string, len(decl.Fields))
			for i, f := range decl.Fields {
				fields[i] = typeExprString(f.Type)
			}
			out[decl.Name] = sid.OfSignature(decl.Name, fields, "struct")
		case *ast.EnumDecl:
			if !decl.IsPublic {
				continue
			}
			variants := make([]string, len(decl.Variants))
			for i, v := range decl.Variants {
				variants[i] = v.Name
			}
			out[decl.Name] = sid.OfSignature(decl.Name, variants, "enum")
		}
	}
	return out
}

// typeExprString renders a type expression to a canonical string for
// signature hashing; ast.NamedType already implements String(), the
// other forms are rendered directly since they carry no Stringer.
func typeExprString(t ast.TypeExpr) string {
	switch v := t.(type) {
	case nil:
		return "_"
	case *ast.NamedType:
		return v.String()
	case *ast.HoleType:
		return "_"
	case *ast.ArrayType:
		return "[" + typeExprString(v.Element) + "]"
	case *ast.ConstArgType:
		return "const"
	default:
		return "?"
	}
}
