package parser

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/lexer"
)

// parsePattern parses a match-arm pattern: a wildcard `_`, a plain
// binding, or `Variant(b1, b2, ...)` / `Variant`.
func (p *Parser) parsePattern() (ast.Pattern, *ParseError) {
	start := p.cur()
	if p.at(lexer.UNDERSCORE) {
		p.advance()
		return &ast.WildcardPattern{Location: p.locFrom(start)}, nil
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.LPAREN) {
		return &ast.BindingPattern{Name: name.Literal, Location: p.locFrom(start)}, nil
	}
	p.advance() // (
	var bindings []string
	for !p.at(lexer.RPAREN) {
		b, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b.Literal)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.VariantPattern{Variant: name.Literal, Bindings: bindings, Location: p.locFrom(start)}, nil
}
