package parser

import (
	"strconv"

	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/lexer"
)

// parseExpr is the entry point for expression parsing; pipeline `|>`
// binds loosest.
func (p *Parser) parseExpr() (ast.Expr, *ParseError) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.PIPEGT) {
		start := p.cur()
		p.advance()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = &ast.PipelineExpr{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) binaryLevel(next func() (ast.Expr, *ParseError), ops ...lexer.TokenType) func() (ast.Expr, *ParseError) {
	return func() (ast.Expr, *ParseError) {
		left, err := next()
		if err != nil {
			return nil, err
		}
		for {
			matched := false
			for _, op := range ops {
				if p.at(op) {
					start := p.cur()
					opTok := p.advance()
					right, err := next()
					if err != nil {
						return nil, err
					}
					left = &ast.BinaryExpr{
						ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)},
						Op:         opTok.Type.String(), Left: left, Right: right,
					}
					matched = true
					break
				}
			}
			if !matched {
				return left, nil
			}
		}
	}
}

func (p *Parser) parseOr() (ast.Expr, *ParseError) {
	return p.binaryLevel(p.parseAnd, lexer.OR)()
}
func (p *Parser) parseAnd() (ast.Expr, *ParseError) {
	return p.binaryLevel(p.parseEquality, lexer.AND)()
}
func (p *Parser) parseEquality() (ast.Expr, *ParseError) {
	return p.binaryLevel(p.parseRelational, lexer.EQ, lexer.NEQ)()
}
func (p *Parser) parseRelational() (ast.Expr, *ParseError) {
	return p.binaryLevel(p.parseAdditive, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE)()
}
func (p *Parser) parseAdditive() (ast.Expr, *ParseError) {
	return p.binaryLevel(p.parseMultiplicative, lexer.PLUS, lexer.MINUS)()
}
func (p *Parser) parseMultiplicative() (ast.Expr, *ParseError) {
	return p.binaryLevel(p.parseUnary, lexer.STAR, lexer.SLASH, lexer.PERCENT)()
}

func (p *Parser) parseUnary() (ast.Expr, *ParseError) {
	if p.at(lexer.NOT) || p.at(lexer.MINUS) {
		start := p.cur()
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Op: op.Type.String(), Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expr, *ParseError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		start := p.cur()
		switch {
		case p.at(lexer.DOT):
			p.advance()
			field, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpr{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Object: expr, Field: field.Literal}
		case p.at(lexer.LPAREN):
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Callee: expr, Args: args}
		case p.at(lexer.LBRACKET):
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Object: expr, Index: idx}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgs() ([]ast.Expr, *ParseError) {
	p.advance() // (
	var args []ast.Expr
	for !p.at(lexer.RPAREN) {
		a, err := p.parseExpr()
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
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expr, *ParseError) {
	start := p.cur()
	switch p.cur().Type {
	case lexer.INT:
		t := p.advance()
		v, _ := strconv.ParseFloat(t.Literal, 64)
		return &ast.NumberLit{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Value: v, IsFloat: false, RawText: t.Literal}, nil
	case lexer.FLOAT:
		t := p.advance()
		v, _ := strconv.ParseFloat(t.Literal, 64)
		return &ast.NumberLit{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Value: v, IsFloat: true, RawText: t.Literal}, nil
	case lexer.STRING:
		t := p.advance()
		return &ast.StringLit{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Value: t.Literal}, nil
	case lexer.TRUE, lexer.FALSE:
		t := p.advance()
		return &ast.BoolLit{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Value: t.Type == lexer.TRUE}, nil
	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.LBRACKET:
		p.advance()
		var elems []ast.Expr
		for !p.at(lexer.RBRACKET) {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.ArrayLit{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Elements: elems}, nil
	case lexer.MATCH:
		return p.parseMatchExpr()
	case lexer.IDENT:
		return p.parseIdentOrStructLit()
	default:
		return nil, p.errorHere("an expression")
	}
}

func (p *Parser) parseIdentOrStructLit() (ast.Expr, *ParseError) {
	start := p.cur()
	name := p.advance()

	var typeArgs []ast.TypeExpr
	if p.at(lexer.LT) {
		if args, ok := p.tryParseTypeArgList(); ok {
			typeArgs = args
		}
	}

	if p.at(lexer.LBRACE) {
		fields, err := p.parseStructFields()
		if err != nil {
			return nil, err
		}
		return &ast.StructLit{
			ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)},
			TypeName:   name.Literal, TypeArgs: typeArgs, Fields: fields,
		}, nil
	}
	id := &ast.Identifier{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Name: name.Literal}
	if len(typeArgs) == 0 {
		return id, nil
	}
	// Explicit type-argument call, e.g. id<i32>(1); require a following
	// call so a bare `x<T>` without parens doesn't silently swallow `<`.
	if !p.at(lexer.LPAREN) {
		return nil, p.errorHere("(")
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &ast.CallExpr{
		ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)},
		Callee:     id, Args: args, TypeArgs: typeArgs,
	}, nil
}

// tryParseTypeArgList attempts to parse `<T1, T2, ...>` as an explicit
// type-argument list, rolling back if the tokens don't form one (the
// `<`/`>` delimiters are ambiguous with comparison operators).
func (p *Parser) tryParseTypeArgList() ([]ast.TypeExpr, bool) {
	save := p.pos
	p.advance() // <
	var args []ast.TypeExpr
	for !p.at(lexer.GT) {
		ty, err := p.parseTypeArg()
		if err != nil {
			p.pos = save
			return nil, false
		}
		args = append(args, ty)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.at(lexer.GT) {
		p.pos = save
		return nil, false
	}
	p.advance() // >
	return args, true
}

func (p *Parser) parseStructFields() ([]ast.StructFieldInit, *ParseError) {
	p.advance() // {
	var fields []ast.StructFieldInit
	for !p.at(lexer.RBRACE) {
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructFieldInit{Name: name.Literal, Value: value})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *Parser) parseMatchExpr() (ast.Expr, *ParseError) {
	start := p.cur()
	p.advance() // match
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var arms []ast.MatchArm
	for !p.at(lexer.RBRACE) {
		astart := p.cur()
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		var guard ast.Expr
		if p.at(lexer.IF) {
			p.advance()
			guard, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.FARROW); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body, Location: p.locFrom(astart)})
		if p.at(lexer.COMMA) {
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.MatchExpr{ExprHeader: ast.ExprHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Scrutinee: scrutinee, Arms: arms}, nil
}
