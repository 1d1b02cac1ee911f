// Package pipeline orchestrates the full compilation control flow:
// source → project manager → semantic analysis → monomorphization →
// IR lowering → SSA conversion + optimization → {JS | WAT} codegen,
// driven by a Config/Result pair with a Check-only short-circuit.
package pipeline

import (
	"fmt"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/codegen/js"
	"github.com/lumina-lang/luminac/internal/codegen/wat"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/ir"
	"github.com/lumina-lang/luminac/internal/lower"
	"github.com/lumina-lang/luminac/internal/mono"
	"github.com/lumina-lang/luminac/internal/project"
	"github.com/lumina-lang/luminac/internal/sema"
	"github.com/lumina-lang/luminac/internal/ssa"
	"github.com/lumina-lang/luminac/internal/types"
)

// Target selects the codegen backend.
type Target int

const (
	TargetJS Target = iota
	TargetWAT
)

// Mode selects how far the pipeline runs.
type Mode int

const (
	// ModeCheck runs through semantic analysis only, for editor/LSP use.
	ModeCheck Mode = iota
	// ModeEmit runs the full pipeline through codegen.
	ModeEmit
)

// Config controls one Compile call.
type Config struct {
	URI         string // document URI/filename for diagnostics; defaults to "virtual://main.lm"
	Target      Target
	Mode        Mode
	DumpIR      bool
	DumpSSA     bool
	SourceMap   bool
	JSFormat    js.ModuleFormat
	ProjectCfg  project.Config
}

// Result is everything a caller of Compile might want back.
type Result struct {
	Diagnostics []diag.Diagnostic
	Sema        *sema.SemanticResult
	IR          *ir.Program
	SSA         *ir.Program
	Code        string
	SourceMap   []js.SourceMapEntry
	WASMDiags   []diag.Diagnostic

	IRDump  string
	SSADump string
}

// Compile runs the pipeline over source text through the configured
// Mode/Target. Any error-severity
// diagnostic at any phase suppresses the remaining phases rather than
// emitting from a program known to be invalid.
func Compile(source string, cfg Config) (*Result, error) {
	if cfg.URI == "" {
		cfg.URI = "virtual://main.lm"
	}

	mgr := project.New(cfg.ProjectCfg)
	mgr.AddOrUpdate(cfg.URI, source, 1)

	doc, ok := mgr.GetDocument(cfg.URI)
	if !ok {
		return nil, fmt.Errorf("pipeline: document %q was not registered after AddOrUpdate", cfg.URI)
	}

	res := &Result{Diagnostics: mgr.GetDiagnostics(cfg.URI)}
	if doc.AST == nil || doc.Sema == nil {
		return res, nil
	}
	res.Sema = doc.Sema

	if hasErrors(res.Diagnostics) || cfg.Mode == ModeCheck {
		return res, nil
	}

	monoRes := mono.Run(doc.AST, doc.Sema)

	irProg := lower.LowerProgram(doc.AST, doc.Sema)
	res.IR = irProg
	if cfg.DumpIR {
		res.IRDump = irProg.String()
	}

	ssa.ConvertProgram(irProg)
	ssa.OptimizeProgram(irProg)
	ssa.Validate(irProg)
	res.SSA = irProg
	if cfg.DumpSSA {
		res.SSADump = irProg.String()
	}

	switch cfg.Target {
	case TargetJS:
		out := js.Emit(irProg, js.Config{Format: cfg.JSFormat, SourceMap: cfg.SourceMap})
		res.Code = out.Code
		res.SourceMap = out.SourceMap
	case TargetWAT:
		out := wat.Emit(irProg, structFieldSpecs(doc.Sema, monoRes), wat.Config{})
		res.Code = out.Code
		res.WASMDiags = out.Diagnostics
		res.Diagnostics = append(res.Diagnostics, out.Diagnostics...)
	}

	return res, nil
}

// structFieldSpecs converts the analyzed struct declarations into the
// field-order/kind table the WAT backend sizes layouts from. Concrete
// declarations come from the semantic registry; generic
// structs contribute one entry per monomorphized specialization, with
// field order taken from the base declaration and kinds from the
// specialization's resolved field types.
func structFieldSpecs(sem *sema.SemanticResult, monoRes *mono.Result) map[string][]wat.FieldSpec {
	out := make(map[string][]wat.FieldSpec, len(sem.Structs))
	for name, decl := range sem.Structs {
		if len(decl.TypeParams) > 0 {
			continue // replaced by its specializations below
		}
		specs := make([]wat.FieldSpec, 0, len(decl.Fields))
		for _, f := range decl.Fields {
			specs = append(specs, wat.FieldSpec{Name: f.Name, Kind: fieldKindOfExpr(f.Type)})
		}
		out[name] = specs
	}
	for _, spec := range monoRes.Structs {
		base, ok := sem.Structs[spec.Base]
		if !ok {
			continue
		}
		specs := make([]wat.FieldSpec, 0, len(base.Fields))
		for _, f := range base.Fields {
			specs = append(specs, wat.FieldSpec{Name: f.Name, Kind: fieldKindOfType(spec.FieldTypes[f.Name])})
		}
		out[spec.Name] = specs
	}
	return out
}

func fieldKindOfExpr(te ast.TypeExpr) string {
	nt, ok := te.(*ast.NamedType)
	if !ok {
		return ""
	}
	return fieldKindOfName(nt.Name)
}

func fieldKindOfType(t types.Type) string {
	p, ok := t.(*types.Primitive)
	if !ok {
		return ""
	}
	return fieldKindOfName(p.Name)
}

func fieldKindOfName(name string) string {
	switch types.NormalizeTypeName(name) {
	case "i8", "i16", "i32", "i64", "i128", "u8", "u16", "u32", "u64", "u128", "usize":
		return "int"
	case "f32", "f64":
		return "float"
	case "bool":
		return "bool"
	default:
		return ""
	}
}

func hasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}
