package typecheck

import (
	"testing"

	"github.com/tserg/jlitec/internal/lexer"
	"github.com/tserg/jlitec/internal/parser"
)

func checkSrc(t *testing.T, src string) error {
	t.Helper()
	toks, err := lexer.Lex([]byte(src))
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	_, err = Check(prog)
	return err
}

func TestCheckMinimalProgram(t *testing.T) {
	if err := checkSrc(t, `class Main { Void main(){ println(1+2); } }`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckStringConcat(t *testing.T) {
	if err := checkSrc(t, `class Main { Void main(){ println("a" + "b"); } }`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckMixedArithRejected(t *testing.T) {
	err := checkSrc(t, `class Main { Void main(){ println(1 + "b"); } }`)
	if err == nil {
		t.Fatal("expected a type error mixing Int and String")
	}
}

func TestCheckIfConditionMustBeBool(t *testing.T) {
	err := checkSrc(t, `class Main { Void main(){ if (1) { println(1); } else { println(0); } } }`)
	if err == nil {
		t.Fatal("expected a type error: if condition must be Bool")
	}
}

func TestCheckUndeclaredIdentifier(t *testing.T) {
	err := checkSrc(t, `class Main { Void main(){ println(x); } }`)
	if err == nil {
		t.Fatal("expected an error for an undeclared identifier")
	}
}

func TestCheckFieldAccessAndAssignment(t *testing.T) {
	src := `
class Main { Void main(){
	Shape s;
	s = new Shape();
	s.area = 5;
	println(s.area);
} }
class Shape { Int area; }`
	if err := checkSrc(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckNullAssignableToObjectAndString(t *testing.T) {
	src := `
class Main { Void main(){
	Shape s;
	String str;
	s = null;
	str = null;
	println(str);
} }
class Shape { Int area; }`
	if err := checkSrc(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckNullNotAssignableToInt(t *testing.T) {
	err := checkSrc(t, `class Main { Void main(){ Int x; x = null; println(x); } }`)
	if err == nil {
		t.Fatal("expected an error: null is not assignable to Int")
	}
}

func TestCheckMethodOverloadResolution(t *testing.T) {
	src := `
class Main { Void main(){
	Printer p;
	p = new Printer();
	p.show(1);
	p.show("x");
} }
class Printer {
	Void show(Int x) { println(x); }
	Void show(String x) { println(x); }
}`
	if err := checkSrc(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckReturnTypeMismatch(t *testing.T) {
	src := `
class Main { Void main(){ println(0); } }
class C { Int f() { return "x"; } }`
	if err := checkSrc(t, src); err == nil {
		t.Fatal("expected a return-type mismatch error")
	}
}

func TestCheckEqualityWithNull(t *testing.T) {
	src := `
class Main { Void main(){
	Shape s;
	s = new Shape();
	if (s == null) { println(0); } else { println(1); }
} }
class Shape { Int area; }`
	if err := checkSrc(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
