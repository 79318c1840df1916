package lexer

import (
	"testing"

	"github.com/tserg/jlitec/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexMinimalProgram(t *testing.T) {
	src := []byte(`class Main { Void main(){ println(1+2); } }`)
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	want := []token.Kind{
		token.CLASS, token.CLASSNAME, token.LBRACE,
		token.VOID, token.MAIN, token.LPAREN, token.RPAREN,
		token.LBRACE, token.PRINTLN, token.LPAREN, token.INTEGER,
		token.PLUS, token.INTEGER, token.RPAREN, token.SEMI,
		token.RBRACE, token.RBRACE, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexDeterministic(t *testing.T) {
	src := []byte(`class Main { Void main(){ x = 1; println(x); } }`)
	a, err := Lex(src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Lex(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("non-deterministic token count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("token %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestNestedComment(t *testing.T) {
	src := []byte(`/* a /* b */ c */ class Main{ Void main(){ println(0); } }`)
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	if toks[0].Kind != token.CLASS {
		t.Errorf("expected first token to be 'class' after nested comment, got %s", toks[0].Kind)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, err := Lex([]byte("/* this never ends\nclass Main {}"))
	if err == nil {
		t.Fatal("expected a lexical error for an unterminated comment")
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := Lex([]byte(`"abc`))
	if err == nil {
		t.Fatal("expected a lexical error for an unterminated string literal")
	}
}

func TestStringEscapes(t *testing.T) {
	src := []byte(`"a\nb\tc\x41\101"`)
	toks, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	want := "a\nb\tcAA"
	if toks[0].Literal != want {
		t.Errorf("got literal %q, want %q", toks[0].Literal, want)
	}
}

func TestMalformedEscape(t *testing.T) {
	_, err := Lex([]byte(`"\q"`))
	if err == nil {
		t.Fatal("expected a lexical error for a malformed escape")
	}
}

func TestIdentifierVsClassName(t *testing.T) {
	toks, err := Lex([]byte("foo Bar"))
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Kind != token.IDENTIFIER {
		t.Errorf("'foo' should be IDENTIFIER, got %s", toks[0].Kind)
	}
	if toks[1].Kind != token.CLASSNAME {
		t.Errorf("'Bar' should be CLASSNAME, got %s", toks[1].Kind)
	}
}

func TestTwoByteOperators(t *testing.T) {
	toks, err := Lex([]byte("== != <= >= && ||"))
	if err != nil {
		t.Fatal(err)
	}
	want := []token.Kind{token.EQ, token.NEQ, token.LE, token.GE, token.AND, token.OR, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestLineComment(t *testing.T) {
	toks, err := Lex([]byte("x // trailing comment\ny"))
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 || toks[0].Kind != token.IDENTIFIER || toks[1].Kind != token.IDENTIFIER {
		t.Fatalf("unexpected tokens: %v", toks)
	}
}

func TestPositionTracking(t *testing.T) {
	toks, err := Lex([]byte("x\ny"))
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Pos.Line != 1 {
		t.Errorf("x: got line %d, want 1", toks[0].Pos.Line)
	}
	if toks[1].Pos.Line != 2 {
		t.Errorf("y: got line %d, want 2", toks[1].Pos.Line)
	}
}
