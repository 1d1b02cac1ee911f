// Package diag is the compiler's structured diagnostics channel. All
// user-visible errors flow through it — no public compiler
// operation throws a Go error across its boundary for a user-caused
// problem. Internal invariant violations instead raise InternalError.
package diag

import (
	"encoding/json"

	"github.com/lumina-lang/luminac/internal/ast"
)

// Severity is one of the four diagnostic levels.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// Diagnostic is the canonical structured diagnostic shape:
// { severity, message, location, code?, source? }.
type Diagnostic struct {
	Schema   string         `json:"schema"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Location ast.Location   `json:"location"`
	Code     string         `json:"code,omitempty"`
	Source   string         `json:"source,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

const schemaV1 = "lumina.diagnostic/v1"

// ToJSON renders the diagnostic as deterministic JSON.
func (d Diagnostic) ToJSON(compact bool) (string, error) {
	if compact {
		b, err := json.Marshal(d)
		return string(b), err
	}
	b, err := json.MarshalIndent(d, "", "  ")
	return string(b), err
}

func newDiag(sev Severity, source, code, msg string, loc ast.Location, data map[string]any) Diagnostic {
	return Diagnostic{Schema: schemaV1, Severity: sev, Message: msg, Location: loc, Code: code, Source: source, Data: data}
}

// Error builds an error-severity diagnostic.
func Error(source, code, msg string, loc ast.Location) Diagnostic {
	return newDiag(SeverityError, source, code, msg, loc, nil)
}

// ErrorWithData builds an error-severity diagnostic carrying structured
// context data (e.g. both sides of a type mismatch).
func ErrorWithData(source, code, msg string, loc ast.Location, data map[string]any) Diagnostic {
	return newDiag(SeverityError, source, code, msg, loc, data)
}

// Warning builds a warning-severity diagnostic.
func Warning(source, code, msg string, loc ast.Location) Diagnostic {
	return newDiag(SeverityWarning, source, code, msg, loc, nil)
}

// Info builds an info-severity diagnostic.
func Info(source, code, msg string, loc ast.Location) Diagnostic {
	return newDiag(SeverityInfo, source, code, msg, loc, nil)
}

// Hint builds a hint-severity diagnostic.
func Hint(source, code, msg string, loc ast.Location) Diagnostic {
	return newDiag(SeverityHint, source, code, msg, loc, nil)
}
