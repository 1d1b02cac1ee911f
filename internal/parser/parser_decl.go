package parser

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/lexer"
)

func (p *Parser) parseDecl() (ast.Decl, *ParseError) {
	pub := false
	if p.at(lexer.PUB) {
		p.advance()
		pub = true
	}
	switch p.cur().Type {
	case lexer.FN:
		return p.parseFuncDecl(pub)
	case lexer.STRUCT:
		return p.parseStructDecl(pub)
	case lexer.ENUM:
		return p.parseEnumDecl(pub)
	case lexer.TRAIT:
		return p.parseTraitDecl(pub)
	case lexer.IMPL:
		return p.parseImplDecl()
	case lexer.IMPORT:
		return p.parseImportDecl()
	case lexer.LET:
		return p.parseTopLevelLet(pub)
	default:
		return nil, p.errorHere("a declaration (fn, struct, enum, trait, impl, import, let)")
	}
}

func (p *Parser) parseTypeParams() ([]ast.TypeParam, *ParseError) {
	if !p.at(lexer.LT) {
		return nil, nil
	}
	p.advance()
	var params []ast.TypeParam
	for !p.at(lexer.GT) {
		isConst := false
		if p.at(lexer.CONST) {
			p.advance()
			isConst = true
		}
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.TypeParam{Name: name.Literal, IsConst: isConst})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.GT); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseParams() ([]*ast.Param, *ParseError) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.Param
	for !p.at(lexer.RPAREN) {
		start := p.cur()
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		// The annotation is optional; an untyped parameter's type is
		// inferred from its uses (a fresh variable in sema).
		var ty ast.TypeExpr
		if p.at(lexer.COLON) {
			p.advance()
			ty, err = p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, &ast.Param{Name: name.Literal, Type: ty, Location: p.locFrom(start)})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFuncDecl(pub bool) (*ast.FuncDecl, *ParseError) {
	start := p.cur()
	if _, err := p.expect(lexer.FN); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	typeParams, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	var retType ast.TypeExpr
	if p.at(lexer.ARROW) {
		p.advance()
		retType, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlockStmt()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDecl{
		Name: name.Literal, IsPublic: pub, TypeParams: typeParams,
		Params: params, ReturnType: retType, Body: body, Location: p.locFrom(start),
	}, nil
}

func (p *Parser) parseStructDecl(pub bool) (*ast.StructDecl, *ParseError) {
	start := p.cur()
	p.advance() // struct
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	typeParams, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var fields []*ast.StructField
	for !p.at(lexer.RBRACE) {
		fstart := p.cur()
		fname, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		ty, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		fields = append(fields, &ast.StructField{Name: fname.Literal, Type: ty, Location: p.locFrom(fstart)})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.StructDecl{Name: name.Literal, IsPublic: pub, TypeParams: typeParams, Fields: fields, Location: p.locFrom(start)}, nil
}

func (p *Parser) parseEnumDecl(pub bool) (*ast.EnumDecl, *ParseError) {
	start := p.cur()
	p.advance() // enum
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	typeParams, err := p.parseTypeParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var variants []*ast.EnumVariant
	for !p.at(lexer.RBRACE) {
		vstart := p.cur()
		vname, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		var payload []ast.TypeExpr
		if p.at(lexer.LPAREN) {
			p.advance()
			for !p.at(lexer.RPAREN) {
				ty, err := p.parseTypeExpr()
				if err != nil {
					return nil, err
				}
				payload = append(payload, ty)
				if p.at(lexer.COMMA) {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
		}
		variants = append(variants, &ast.EnumVariant{Name: vname.Literal, Payload: payload, Location: p.locFrom(vstart)})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.EnumDecl{Name: name.Literal, IsPublic: pub, TypeParams: typeParams, Variants: variants, Location: p.locFrom(start)}, nil
}

func (p *Parser) parseTraitDecl(pub bool) (*ast.TraitDecl, *ParseError) {
	start := p.cur()
	p.advance() // trait
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var methods []*ast.TraitMethodSig
	for !p.at(lexer.RBRACE) {
		mstart := p.cur()
		if _, err := p.expect(lexer.FN); err != nil {
			return nil, err
		}
		mname, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		var ret ast.TypeExpr
		if p.at(lexer.ARROW) {
			p.advance()
			ret, err = p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		methods = append(methods, &ast.TraitMethodSig{Name: mname.Literal, Params: params, ReturnType: ret, Location: p.locFrom(mstart)})
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.TraitDecl{Name: name.Literal, IsPublic: pub, Methods: methods, Location: p.locFrom(start)}, nil
}

func (p *Parser) parseImplDecl() (*ast.ImplDecl, *ParseError) {
	start := p.cur()
	p.advance() // impl
	traitName, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.FOR); err != nil {
		return nil, err
	}
	forType, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var methods []*ast.FuncDecl
	for !p.at(lexer.RBRACE) {
		m, err := p.parseFuncDecl(false)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.ImplDecl{TraitName: traitName.Literal, ForType: forType, Methods: methods, Location: p.locFrom(start)}, nil
}

func (p *Parser) parseImportDecl() (*ast.ImportDecl, *ParseError) {
	start := p.cur()
	p.advance() // import
	var names []string
	if p.at(lexer.LBRACE) {
		p.advance()
		for !p.at(lexer.RBRACE) {
			n, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			names = append(names, n.Literal)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RBRACE); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.FROM); err != nil {
			return nil, err
		}
	}
	pathTok, err := p.expect(lexer.STRING)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.ImportDecl{Names: names, Path: pathTok.Literal, Location: p.locFrom(start)}, nil
}

func (p *Parser) parseTopLevelLet(pub bool) (*ast.TopLevelLetDecl, *ParseError) {
	start := p.cur()
	p.advance() // let
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	var ty ast.TypeExpr
	if p.at(lexer.COLON) {
		p.advance()
		ty, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.TopLevelLetDecl{Name: name.Literal, IsPublic: pub, Type: ty, Value: value, Location: p.locFrom(start)}, nil
}
