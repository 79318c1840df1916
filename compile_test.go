package jlitec

import (
	"strings"
	"testing"
)

func TestCompileEndToEnd(t *testing.T) {
	src := `
class Main {
	Void main(){
		Counter c;
		c = new Counter();
		c.bump();
		c.bump();
		println(c.get());
	}
}
class Counter {
	Int n;
	Void bump() { n = n + 1; }
	Int get() { return n; }
}`
	result, err := Compile([]byte(src), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AST.Main.Name != "Main" {
		t.Fatalf("got main class %q", result.AST.Main.Name)
	}
	listing := result.IR3.Print()
	if !strings.Contains(listing, "Main.main:") || !strings.Contains(listing, "Counter.bump:") {
		t.Fatalf("expected an IR3 listing with Main.main and Counter.bump headers, got:\n%s", listing)
	}
	if len(result.CFGs) != len(result.IR3.Methods) {
		t.Fatalf("expected one CFG per method, got %d CFGs for %d methods", len(result.CFGs), len(result.IR3.Methods))
	}
}

func TestCompileStopsAtFirstTypeError(t *testing.T) {
	_, err := Compile([]byte(`class Main { Void main(){ println(1 + true); } }`), Options{})
	if err == nil {
		t.Fatal("expected a type error mixing Int and Bool")
	}
}

func TestCompileWithConstPropFoldsPrintln(t *testing.T) {
	src := `class Main { Void main(){ Int x; x = 7; println(x); } }`
	result, err := Compile([]byte(src), Options{ConstProp: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.IR3.Print(), "println(7)") {
		t.Fatalf("expected constant propagation to fold println(x) into println(7), got:\n%s", result.IR3.Print())
	}
}
