package project

import (
	"strings"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/diag"
	"github.com/lumina-lang/luminac/internal/parser"
)

// parseWithRecovery runs the parser in a panic-mode recovery loop: on
// a parse error, record a diagnostic, advance to the next
// synchronization point (the character after the nearest following `;`
// or `}`), blank out the skipped region so line/column numbers are
// preserved, and retry. Bounded by cfg.MaxErrors; if no sync point
// exists or the offset fails to advance, recovery stops and returns
// whatever diagnostics were collected so far.
//
// Declarations that survive across a blanked region are not merged
// back into one AST: each successful parse attempt after recovery
// starts over on the patched text, so the final returned Program is
// the result of the last attempt (the one with the fewest remaining
// errors) — a best-effort partial AST for malformed input.
func (m *Manager) parseWithRecovery(uri, text string) (*ast.Program, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	src := text
	var lastGood *ast.Program

	for attempt := 0; attempt < m.cfg.MaxErrors; attempt++ {
		prog, perr := parser.Parse(src, uri)
		if perr == nil {
			if prog != nil {
				lastGood = prog
			}
			return lastGood, diags
		}

		diags = append(diags, diag.Error(diag.SourceParser, diag.CodeParseError, perr.Message, perr.Location))

		next, advanced := nextSyncPoint(src, perr.Location.Start.Offset)
		if !advanced {
			return lastGood, diags
		}
		src = blankRange(src, perr.Location.Start.Offset, next)
	}
	return lastGood, diags
}

// nextSyncPoint finds the offset immediately after the nearest `;` or
// `}` at or following from, returning false if none exists. The
// synchronization set is semicolon, rbrace, or — in a fuller tokenizing
// recovery — a top-level keyword; this text-level recovery covers the
// two structural delimiters directly.
func nextSyncPoint(src string, from int) (int, bool) {
	if from < 0 || from >= len(src) {
		return 0, false
	}
	idx := strings.IndexAny(src[from:], ";}")
	if idx < 0 {
		return 0, false
	}
	next := from + idx + 1
	if next <= from {
		return 0, false
	}
	return next, true
}

// blankRange replaces every non-newline byte in [from, to) with a
// space, preserving line/column numbering for any diagnostics produced
// by the retry parse.
func blankRange(src string, from, to int) string {
	b := []byte(src)
	for i := from; i < to && i < len(b); i++ {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
	return string(b)
}
