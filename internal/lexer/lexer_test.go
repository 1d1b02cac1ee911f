package lexer

import "testing"

func TestTokenizeKeywordsAndOperators(t *testing.T) {
	toks := Tokenize(`fn main() { let x = 1 + 2; return x * 3; }`)
	want := []TokenType{
		FN, IDENT, LPAREN, RPAREN, LBRACE,
		LET, IDENT, ASSIGN, INT, PLUS, INT, SEMI,
		RETURN, IDENT, STAR, INT, SEMI,
		RBRACE, EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestTokenizePipelineAndArrow(t *testing.T) {
	toks := Tokenize(`a |> f(x) -> T`)
	want := []TokenType{IDENT, PIPEGT, IDENT, LPAREN, IDENT, RPAREN, ARROW, IDENT, EOF}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestTokenizePositionsAreOneBased(t *testing.T) {
	toks := Tokenize("x\ny")
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Fatalf("expected 1:1, got %d:%d", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 2 || toks[1].Column != 1 {
		t.Fatalf("expected 2:1, got %d:%d", toks[1].Line, toks[1].Column)
	}
}

func TestTokenizeUnderscoreIsWildcard(t *testing.T) {
	toks := Tokenize(`_`)
	if toks[0].Type != UNDERSCORE {
		t.Fatalf("expected UNDERSCORE, got %s", toks[0].Type)
	}
}
