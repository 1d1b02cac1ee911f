package main

import (
	"fmt"
	"os"

	"github.com/lumina-lang/luminac/internal/diag"
)

// printDiagnostics renders diagnostics with severity coloring: red for
// errors, yellow for warnings, cyan for info/hint, one line per
// diagnostic with its source location.
func printDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		label := severityLabel(d.Severity)
		loc := d.Location.String()
		if d.Code != "" {
			fmt.Fprintf(os.Stderr, "%s [%s] %s: %s\n", label, d.Code, loc, d.Message)
		} else {
			fmt.Fprintf(os.Stderr, "%s %s: %s\n", label, loc, d.Message)
		}
	}
}

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SeverityError:
		return red("error")
	case diag.SeverityWarning:
		return yellow("warning")
	default:
		return cyan(string(sev))
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

func readSourceOrExit(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), path, err)
		os.Exit(1)
	}
	return string(content)
}
