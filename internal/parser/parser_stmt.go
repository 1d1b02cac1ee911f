package parser

import (
	"github.com/lumina-lang/luminac/internal/ast"
	"github.com/lumina-lang/luminac/internal/lexer"
)

func (p *Parser) parseBlockStmt() (*ast.BlockStmt, *ParseError) {
	start := p.cur()
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Stmts: stmts}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, *ParseError) {
	switch p.cur().Type {
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.MATCH:
		return p.parseMatchStmt()
	case lexer.LBRACE:
		return p.parseBlockStmt()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseLetStmt() (*ast.LetStmt, *ParseError) {
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
	return &ast.LetStmt{
		StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)},
		Name:       name.Literal, Type: ty, Value: value,
	}, nil
}

func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, *ParseError) {
	start := p.cur()
	p.advance() // return
	var value ast.Expr
	if !p.at(lexer.SEMI) {
		var err *ParseError
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Value: value}, nil
}

func (p *Parser) parseIfStmt() (*ast.IfStmt, *ParseError) {
	start := p.cur()
	p.advance() // if
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBlockStmt()
	if err != nil {
		return nil, err
	}
	var els *ast.BlockStmt
	if p.at(lexer.ELSE) {
		p.advance()
		if p.at(lexer.IF) {
			nested, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			els = &ast.BlockStmt{
				StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: nested.Location},
				Stmts:      []ast.Stmt{nested},
			}
		} else {
			els, err = p.parseBlockStmt()
			if err != nil {
				return nil, err
			}
		}
	}
	return &ast.IfStmt{StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseWhileStmt() (*ast.WhileStmt, *ParseError) {
	start := p.cur()
	p.advance() // while
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlockStmt()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseMatchStmt() (*ast.MatchStmt, *ParseError) {
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
	var arms []ast.MatchArmStmt
	for !p.at(lexer.RBRACE) {
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
		body, err := p.parseMatchArmStmtBody()
		if err != nil {
			return nil, err
		}
		arms = append(arms, ast.MatchArmStmt{Pattern: pat, Guard: guard, Body: body})
		if p.at(lexer.COMMA) {
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.MatchStmt{StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Scrutinee: scrutinee, Arms: arms}, nil
}

// parseMatchArmStmtBody parses one statement-match arm body: either a
// full block, or the terse braceless forms `return expr` / `expr`
// terminated by the arm's own `,` or the match's closing `}` rather
// than a semicolon.
func (p *Parser) parseMatchArmStmtBody() (*ast.BlockStmt, *ParseError) {
	if p.at(lexer.LBRACE) {
		return p.parseBlockStmt()
	}
	start := p.cur()
	var stmt ast.Stmt
	if p.at(lexer.RETURN) {
		p.advance()
		var value ast.Expr
		if !p.at(lexer.COMMA) && !p.at(lexer.RBRACE) {
			var err *ParseError
			value, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		stmt = &ast.ReturnStmt{StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Value: value}
	} else {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt = &ast.ExprStmt{StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Value: value}
	}
	return &ast.BlockStmt{
		StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)},
		Stmts:      []ast.Stmt{stmt},
	}, nil
}

// parseExprOrAssignStmt parses either `target = value;` or an
// expression statement `expr;`.
func (p *Parser) parseExprOrAssignStmt() (ast.Stmt, *ParseError) {
	start := p.cur()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.ASSIGN) {
		p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Target: expr, Value: value}, nil
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{StmtHeader: ast.StmtHeader{ID: p.ids.Next(), Location: p.locFrom(start)}, Value: expr}, nil
}
