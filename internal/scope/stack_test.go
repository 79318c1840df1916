package scope

import (
	"testing"

	"github.com/tserg/jlitec/internal/ast"
)

func TestStackPushPopOrder(t *testing.T) {
	var s Stack[int]
	s.Push(1)
	s.Push(2)
	s.Push(3)
	for _, want := range []int{3, 2, 1} {
		got, err := s.Pop()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %d, want %d", got, want)
		}
	}
	if _, err := s.Pop(); err == nil {
		t.Fatal("expected an error popping an empty stack")
	}
}

func TestFrameDeclareRejectsDuplicate(t *testing.T) {
	f := NewFrame()
	if !f.Declare("x", ast.Int) {
		t.Fatal("expected the first declaration of x to succeed")
	}
	if f.Declare("x", ast.Bool) {
		t.Fatal("expected a second declaration of x in the same frame to fail")
	}
	ty, ok := f.Lookup("x")
	if !ok || !ty.Equal(ast.Int) {
		t.Errorf("expected x to remain Int, got %v", ty)
	}
}

func TestEnvLookupInnermostFirst(t *testing.T) {
	e := NewEnv()
	e.Declare("x", ast.Int)
	e.Push()
	e.Declare("x", ast.String)

	ty, ok := e.Lookup("x")
	if !ok || !ty.Equal(ast.String) {
		t.Errorf("expected innermost frame's x (String), got %v", ty)
	}

	if err := e.Pop(); err != nil {
		t.Fatalf("unexpected error popping: %v", err)
	}
	ty, ok = e.Lookup("x")
	if !ok || !ty.Equal(ast.Int) {
		t.Errorf("expected outer frame's x (Int) after pop, got %v", ty)
	}
}

func TestEnvLookupMissing(t *testing.T) {
	e := NewEnv()
	if _, ok := e.Lookup("nope"); ok {
		t.Fatal("expected lookup of an undeclared name to fail")
	}
}
