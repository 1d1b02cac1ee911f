package parser

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/lexer"
)

// parseTypeExpr parses a type expression: a named (possibly
// parameterized) type, a hole `_`, or an array type `[Element; Size]`.
func (p *Parser) parseTypeExpr() (ast.TypeExpr, *ParseError) {
	start := p.cur()
	if p.at(lexer.UNDERSCORE) {
		p.advance()
		return &ast.HoleType{Location: p.locFrom(start)}, nil
	}
	if p.at(lexer.LBRACKET) {
		p.advance()
		elem, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		size, err := p.parseConstExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.ArrayType{Element: elem, Size: size, Location: p.locFrom(start)}, nil
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	var args []ast.TypeExpr
	if p.at(lexer.LT) {
		p.advance()
		for !p.at(lexer.GT) {
			a, err := p.parseTypeArg()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.GT); err != nil {
			return nil, err
		}
	}
	return &ast.NamedType{Name: name.Literal, Args: args, Location: p.locFrom(start)}, nil
}

// parseTypeArg parses one entry of a `<...>` argument list, which may
// be a type (`T`) or a const value (`3`, `N`) — structs generic over
// both type and const parameters mix the
// two positionally.
func (p *Parser) parseTypeArg() (ast.TypeExpr, *ParseError) {
	if p.at(lexer.INT) {
		start := p.cur()
		v, err := p.parseConstExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ConstArgType{Value: v, Location: p.locFrom(start)}, nil
	}
	return p.parseTypeExpr()
}

// parseConstExpr parses a compile-time integer expression: literal
// integers, const-parameter references, and binary + - * /.
// Precedence: * and / bind tighter than + and -.
func (p *Parser) parseConstExpr() (ast.ConstExpr, *ParseError) {
	return p.parseConstAddSub()
}

func (p *Parser) parseConstAddSub() (ast.ConstExpr, *ParseError) {
	left, err := p.parseConstMulDiv()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		start := p.cur()
		op := "+"
		if p.at(lexer.MINUS) {
			op = "-"
		}
		p.advance()
		right, err := p.parseConstMulDiv()
		if err != nil {
			return nil, err
		}
		left = &ast.ConstBinary{Op: op, Left: left, Right: right, Location: p.locFrom(start)}
	}
	return left, nil
}

func (p *Parser) parseConstMulDiv() (ast.ConstExpr, *ParseError) {
	left, err := p.parseConstPrimary()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.STAR) || p.at(lexer.SLASH) {
		start := p.cur()
		op := "*"
		if p.at(lexer.SLASH) {
			op = "/"
		}
		p.advance()
		right, err := p.parseConstPrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.ConstBinary{Op: op, Left: left, Right: right, Location: p.locFrom(start)}
	}
	return left, nil
}

func (p *Parser) parseConstPrimary() (ast.ConstExpr, *ParseError) {
	start := p.cur()
	switch p.cur().Type {
	case lexer.INT:
		t := p.advance()
		return &ast.ConstInt{Value: parseIntLiteral(t.Literal), Location: p.locFrom(start)}, nil
	case lexer.IDENT:
		t := p.advance()
		return &ast.ConstParamRef{Name: t.Literal, Location: p.locFrom(start)}, nil
	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseConstExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorHere("a const-expression")
	}
}

func parseIntLiteral(s string) int64 {
	var v int64
	for _, c := range s {
		v = v*10 + int64(c-'0')
	}
	return v
}
