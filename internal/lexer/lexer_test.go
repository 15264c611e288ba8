package lexer

import (
	"testing"

	"github.com/cwbudde/c0c/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := All(src, "test.c0")
	if err != nil {
		t.Fatalf("All(%q) failed: %s", src, err.Error())
	}
	return toks
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := lexAll(t, "int x = total;")
	kinds := []token.Kind{token.INT_KW, token.IDENT, token.ASSIGN, token.IDENT, token.SEMI, token.EOF}
	if len(toks) != len(kinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(kinds), toks)
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[1].Literal != "x" || toks[3].Literal != "total" {
		t.Errorf("identifier literals not preserved: %+v", toks)
	}
}

func TestDecimalInteger(t *testing.T) {
	toks := lexAll(t, "42")
	if toks[0].Kind != token.INT || toks[0].IntVal != 42 {
		t.Errorf("got %+v, want INT(42)", toks[0])
	}
}

func TestHexInteger(t *testing.T) {
	toks := lexAll(t, "0x2A")
	if toks[0].Kind != token.INT || toks[0].IntVal != 42 {
		t.Errorf("got %+v, want INT(42)", toks[0])
	}
}

func TestZeroLiteral(t *testing.T) {
	toks := lexAll(t, "0")
	if toks[0].Kind != token.INT || toks[0].IntVal != 0 {
		t.Errorf("got %+v, want INT(0)", toks[0])
	}
}

func TestLeadingZeroIsInvalid(t *testing.T) {
	if _, err := All("007", "test.c0"); err == nil {
		t.Fatalf("expected a lexical error for a leading-zero decimal literal")
	}
}

func TestIntegerOverflow(t *testing.T) {
	if _, err := All("99999999999", "test.c0"); err == nil {
		t.Fatalf("expected an overflow error")
	}
}

func TestIdentifierCannotStartWithDigit(t *testing.T) {
	if _, err := All("123abc", "test.c0"); err == nil {
		t.Fatalf("expected an invalid-identifier error")
	}
}

func TestCharLiteral(t *testing.T) {
	toks := lexAll(t, "'a'")
	if toks[0].Kind != token.CHAR || toks[0].IntVal != 'a' {
		t.Errorf("got %+v, want CHAR('a')", toks[0])
	}
}

func TestCharLiteralEscapes(t *testing.T) {
	cases := map[string]int32{
		`'\n'`:  '\n',
		`'\t'`:  '\t',
		`'\\'`:  '\\',
		`'\''`:  '\'',
		`'\x41'`: 'A',
	}
	for src, want := range cases {
		toks := lexAll(t, src)
		if toks[0].Kind != token.CHAR || toks[0].IntVal != want {
			t.Errorf("lex(%q) = %+v, want CHAR(%d)", src, toks[0], want)
		}
	}
}

func TestUnterminatedCharLiteral(t *testing.T) {
	if _, err := All("'a", "test.c0"); err == nil {
		t.Fatalf("expected an error for an unterminated char literal")
	}
}

func TestStringLiteral(t *testing.T) {
	toks := lexAll(t, `"hello\n"`)
	if toks[0].Kind != token.STRING || toks[0].Literal != "hello\n" {
		t.Errorf("got %+v, want STRING(hello\\n)", toks[0])
	}
}

func TestUnterminatedStringLiteral(t *testing.T) {
	if _, err := All("\"abc", "test.c0"); err == nil {
		t.Fatalf("expected an error for an unterminated string literal")
	}
	if _, err := All("\"abc\n\"", "test.c0"); err == nil {
		t.Fatalf("expected an error: newline inside a string literal")
	}
}

func TestOperatorsAndPunctuation(t *testing.T) {
	src := "+ - * / ( ) { } , ; = == < <= > >= !="
	toks := lexAll(t, src)
	kinds := []token.Kind{
		token.ADD, token.SUB, token.MUL, token.QUO, token.LPAREN, token.RPAREN,
		token.LBRACE, token.RBRACE, token.COMMA, token.SEMI, token.ASSIGN, token.EQL,
		token.LSS, token.LEQ, token.GTR, token.GEQ, token.NEQ, token.EOF,
	}
	if len(toks) != len(kinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(kinds), toks)
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestBangAloneIsInvalid(t *testing.T) {
	if _, err := All("!true", "test.c0"); err == nil {
		t.Fatalf("expected an error: '!' is only valid as part of '!='")
	}
}

func TestLineComment(t *testing.T) {
	toks := lexAll(t, "int x; // trailing comment\nint y;")
	var idents int
	for _, tok := range toks {
		if tok.Kind == token.IDENT {
			idents++
		}
	}
	if idents != 2 {
		t.Errorf("expected 2 identifiers around the line comment, got %d", idents)
	}
}

func TestBlockComment(t *testing.T) {
	toks := lexAll(t, "int /* skip\nthis */ x;")
	kinds := []token.Kind{token.INT_KW, token.IDENT, token.SEMI, token.EOF}
	if len(toks) != len(kinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(kinds), toks)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	if _, err := All("int /* never closed", "test.c0"); err == nil {
		t.Fatalf("expected an unterminated-comment error")
	}
}

func TestPositionTracking(t *testing.T) {
	toks := lexAll(t, "int\nx;")
	// "int" on line 1 columns 1-3, "x" on line 2 column 1.
	if toks[0].Start.Line != 1 || toks[0].Start.Column != 1 {
		t.Errorf("int start = %s, want 1:1", toks[0].Start)
	}
	if toks[1].Start.Line != 2 || toks[1].Start.Column != 1 {
		t.Errorf("x start = %s, want 2:1", toks[1].Start)
	}
}

func TestEmptyInputYieldsEOF(t *testing.T) {
	toks := lexAll(t, "")
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Errorf("got %v, want a single EOF token", toks)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	if _, err := All("@", "test.c0"); err == nil {
		t.Fatalf("expected an error for an unrecognised character")
	}
}
