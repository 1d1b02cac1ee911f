package diag

// Reporter accumulates diagnostics across a single analysis run.
// Semantic errors are attached as diagnostics and analysis continues to
// produce as many as possible — Reporter never stops the
// caller; HasErrors lets the caller decide whether to suppress codegen.
type Reporter struct {
	diags []Diagnostic
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Add appends a diagnostic.
func (r *Reporter) Add(d Diagnostic) {
	r.diags = append(r.diags, d)
}

// All returns every diagnostic collected so far, in emission order.
func (r *Reporter) All() []Diagnostic {
	return r.diags
}

// HasErrors reports whether any error-severity diagnostic was
// collected. Compilation with any error-severity diagnostic must not
// produce emitted output from the codegens.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics.
func (r *Reporter) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Merge appends another Reporter's diagnostics into this one, used when
// a dependency's diagnostics should surface at the importer (C10).
func (r *Reporter) Merge(other *Reporter) {
	if other == nil {
		return
	}
	r.diags = append(r.diags, other.diags...)
}
