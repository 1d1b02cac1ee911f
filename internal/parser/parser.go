// Package parser implements `parse(source) -> AST | ParseError`: a
// hand-written recursive-descent parser over the internal/lexer token
// stream, covering the surface grammar the rest of the toolchain —
// the project manager's panic-mode recovery loop above all — drives.
package parser

import (
	"fmt"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/lexer"
)

// ParseError is the failure half of the parser contract.
type ParseError struct {
	Message  string
	Location ast.Location
	Expected string
	Found    string
}

func (e *ParseError) Error() string { return e.Message }

// Parser holds the token stream and the shared id allocator used to
// stamp every Expr/Stmt with a stable id.
type Parser struct {
	toks []lexer.Token
	pos  int
	ids  ast.IDAllocator
	file string
}

// New constructs a Parser over src. file is stored on the Parser but
// not read: Location carries no file name, and the single-file grammar
// here never needs it internally.
func New(src, file string) *Parser {
	return &Parser{toks: lexer.Tokenize(src), file: file}
}

// Parse tokenizes and parses src, returning as much of the Program as
// was parsed before any error plus the error, or a complete Program
// and a nil error. The caller (project manager) drives panic-mode
// recovery by re-invoking Parse on progressively blanked-out source.
func Parse(src, file string) (*ast.Program, *ParseError) {
	p := New(src, file)
	return p.parseProgram()
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) point(t lexer.Token) ast.Point {
	return ast.Point{Line: t.Line, Column: t.Column, Offset: t.Offset}
}

func (p *Parser) locFrom(start lexer.Token) ast.Location {
	end := p.toks[p.pos]
	return ast.Location{Start: p.point(start), End: p.point(end)}
}

func (p *Parser) errorHere(expected string) *ParseError {
	t := p.cur()
	loc := ast.Location{Start: p.point(t), End: p.point(t)}
	return &ParseError{
		Message:  fmt.Sprintf("unexpected token %q, expected %s", tokenText(t), expected),
		Location: loc,
		Expected: expected,
		Found:    tokenText(t),
	}
}

func tokenText(t lexer.Token) string {
	if t.Literal != "" {
		return t.Literal
	}
	return t.Type.String()
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, *ParseError) {
	if !p.at(tt) {
		return lexer.Token{}, p.errorHere(tt.String())
	}
	return p.advance(), nil
}

// parseProgram parses top-level declarations until EOF or an error.
func (p *Parser) parseProgram() (*ast.Program, *ParseError) {
	start := p.cur()
	prog := &ast.Program{}
	for !p.at(lexer.EOF) {
		decl, err := p.parseDecl()
		if err != nil {
			prog.Location = p.locFrom(start)
			return prog, err
		}
		prog.Decls = append(prog.Decls, decl)
	}
	prog.Location = p.locFrom(start)
	return prog, nil
}
