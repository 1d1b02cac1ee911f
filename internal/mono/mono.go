// Package mono implements the monomorphizer: it eliminates type and
// const generics by cloning each generic function or const-generic
// struct once per distinct instantiation, rewriting call sites and
// struct literals to the specialized, mangled name.
package mono

import (
	"strings"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/sema"
	"github.com/lumina-lang/luminac/internal/types"
)

// StructSpecialization is one concrete instantiation of a const/type
// generic struct. Lowering and codegen key field layout off FieldTypes
// rather than re-parsing the (still generically-named) source fields.
type StructSpecialization struct {
	Name       string
	Base       string
	FieldTypes map[string]types.Type
}

// Result is the output of Run: every specialization produced, in
// first-seen order, ready to be appended to the program in place of the
// generic declarations they replace.
type Result struct {
	Functions []*ast.FuncDecl
	Structs   []*StructSpecialization
}

// Run mutates prog in place: generic call sites and struct literals are
// rewritten to reference mangled specializations, the function
// specializations are appended to prog.Decls (struct specializations
// are returned in Result.Structs only), and the now-unreferenceable
// generic FuncDecl/StructDecl nodes are dropped. sem is the
// SemanticResult produced by sema.Analyze over the same prog; its
// inferred-call and expression-type tables drive instantiation
// discovery, and it is extended in place with the specialized bodies'
// own inferred types (via sema.Specialize).
func Run(prog *ast.Program, sem *sema.SemanticResult) *Result {
	c := collect(prog)
	cl := &cloner{ids: ast.NewIDAllocatorFrom(c.maxID)}
	res := &Result{}

	funcKeys := map[string]*ast.FuncDecl{}
	genericFuncs := map[string]bool{}
	for _, site := range c.calls {
		inst, ok := sem.InferredCalls[site.call.ID]
		if !ok {
			continue
		}
		fn, ok := sem.Funcs[inst.Callee]
		if !ok || len(fn.TypeParams) == 0 {
			continue
		}
		genericFuncs[fn.Name] = true

		key, name := funcInstKeyAndName(fn, inst.TypeBindings, inst.ConstBindings, sem)
		key = fn.Name + "/" + key // instantiation keys are per generic declaration
		if _, done := funcKeys[key]; !done {
			clone := cl.cloneFunc(fn, name)
			sem.Specialize(clone, inst.TypeBindings, inst.ConstBindings)
			funcKeys[key] = clone
			res.Functions = append(res.Functions, clone)
		}
		rewriteCallee(site.call, name)
	}

	structKeys := map[string]*StructSpecialization{}
	genericStructs := map[string]bool{}
	for _, site := range c.structs {
		sd, ok := sem.Structs[site.lit.TypeName]
		if !ok || len(sd.TypeParams) == 0 {
			continue
		}
		genericStructs[sd.Name] = true

		adtT, ok := sem.ExprType(site.lit.ID)
		if !ok {
			continue
		}
		adt, ok := adtT.(*types.ADT)
		if !ok {
			continue
		}

		key, name := structInstKeyAndName(sd, adt)
		key = sd.Name + "/" + key // instantiation keys are per generic declaration
		if _, done := structKeys[key]; !done {
			spec := &StructSpecialization{Name: name, Base: sd.Name, FieldTypes: sem.StructFieldTypes(sd, adt)}
			structKeys[key] = spec
			res.Structs = append(res.Structs, spec)
		}
		site.lit.TypeName = name
		site.lit.TypeArgs = nil
	}

	rewriteDecls(prog, res, genericFuncs, genericStructs)
	return res
}

// rewriteCallee retargets a call expression to a specialized name and
// clears any explicit type-argument list, so later phases never
// re-specialize the same call.
func rewriteCallee(call *ast.CallExpr, name string) {
	if id, ok := call.Callee.(*ast.Identifier); ok {
		id.Name = name
	}
	call.TypeArgs = nil
}

// rewriteDecls drops every generic FuncDecl/StructDecl referenced by
// genericFuncs/genericStructs (they can no longer be emitted once their
// call sites point at specializations) and appends the function
// specializations produced by Run; struct specializations are not added
// to prog.Decls.
func rewriteDecls(prog *ast.Program, res *Result, genericFuncs, genericStructs map[string]bool) {
	kept := prog.Decls[:0]
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.FuncDecl:
			if genericFuncs[decl.Name] {
				continue
			}
		case *ast.StructDecl:
			if genericStructs[decl.Name] {
				continue
			}
		}
		kept = append(kept, d)
	}
	for _, fn := range res.Functions {
		kept = append(kept, fn)
	}
	prog.Decls = kept
}

// funcInstKeyAndName builds the dedup key and mangled name for one
// instantiation of a generic function.
func funcInstKeyAndName(fn *ast.FuncDecl, typeBindings map[string]types.Type, constBindings types.ConstBindings, sem *sema.SemanticResult) (string, string) {
	var typeNames, constTexts, nameArgs []string
	for _, tp := range fn.TypeParams {
		if tp.IsConst {
			text := types.CanonicalConstText(constBindings[tp.Name])
			constTexts = append(constTexts, text)
			nameArgs = append(nameArgs, text)
			continue
		}
		var t types.Type = &types.Primitive{Name: "any"}
		if bound, ok := typeBindings[tp.Name]; ok && bound != nil {
			t = types.Prune(bound, sem.Subst)
		}
		norm := types.NormalizeTypeName(t.String())
		typeNames = append(typeNames, norm)
		nameArgs = append(nameArgs, norm)
	}
	key := strings.Join(typeNames, "|") + "::" + strings.Join(constTexts, ",")
	return key, mangledName(fn.Name, nameArgs)
}

// structInstKeyAndName mirrors funcInstKeyAndName for a struct
// instantiation, zipping the declared type parameters (mixed type/const
// positions) against the resolved ADT's Params/ConstArgs in order, the
// same way sema's structInstCtx does.
func structInstKeyAndName(sd *ast.StructDecl, adt *types.ADT) (string, string) {
	var typeNames, constTexts, nameArgs []string
	ti, ci := 0, 0
	for _, tp := range sd.TypeParams {
		if tp.IsConst {
			var v int64
			if ci < len(adt.ConstArgs) {
				v = adt.ConstArgs[ci].Value
			}
			ci++
			text := types.CanonicalConstText(v)
			constTexts = append(constTexts, text)
			nameArgs = append(nameArgs, text)
			continue
		}
		var t types.Type = &types.Primitive{Name: "any"}
		if ti < len(adt.Params) {
			t = adt.Params[ti]
		}
		ti++
		norm := types.NormalizeTypeName(t.String())
		typeNames = append(typeNames, norm)
		nameArgs = append(nameArgs, norm)
	}
	key := strings.Join(typeNames, "|") + "::" + strings.Join(constTexts, ",")
	return key, mangledName(sd.Name, nameArgs)
}

func mangledName(base string, args []string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, a := range args {
		b.WriteByte('_')
		b.WriteString(types.SanitizeIdent(a))
	}
	return b.String()
}
