package ir3

import (
	"strings"
	"testing"

	"github.com/tserg/jlitec/internal/lexer"
	"github.com/tserg/jlitec/internal/parser"
	"github.com/tserg/jlitec/internal/typecheck"
)

func lowerSrc(t *testing.T, src string) *Program {
	t.Helper()
	toks, err := lexer.Lex([]byte(src))
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	classes, err := typecheck.Check(prog)
	if err != nil {
		t.Fatalf("typecheck error: %v", err)
	}
	return Lower(prog, classes)
}

func findMethod(t *testing.T, p *Program, class, name string) *Method {
	t.Helper()
	for _, m := range p.Methods {
		if m.Class == class && m.Name == name {
			return m
		}
	}
	t.Fatalf("no method %s.%s in lowered program", class, name)
	return nil
}

func TestLowerArithExprFlattensToTemps(t *testing.T) {
	p := lowerSrc(t, `class Main { Void main(){ println(1+2*3); } }`)
	m := findMethod(t, p, "Main", "main")
	if len(m.VarDecls) == 0 {
		t.Fatal("expected at least one temp declared for the nested arithmetic")
	}
	found := false
	for _, instr := range m.Code {
		if _, ok := instr.(PrintlnInstr); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a PrintlnInstr in the lowered code")
	}
}

func TestLowerIfProducesLabelsAndGotos(t *testing.T) {
	p := lowerSrc(t, `class Main { Void main(){
		Int x;
		x = 1;
		if (x > 0) { println(1); } else { println(0); }
	} }`)
	m := findMethod(t, p, "Main", "main")
	var labels, gotos int
	var ifgotos []IfGotoInstr
	for _, instr := range m.Code {
		switch v := instr.(type) {
		case LabelInstr:
			labels++
		case GotoInstr:
			gotos++
		case IfGotoInstr:
			ifgotos = append(ifgotos, v)
		}
	}
	if labels != 2 {
		t.Fatalf("expected 2 labels (else/endif), got %d", labels)
	}
	if gotos != 1 {
		t.Fatalf("expected 1 goto (then-branch falling to endif), got %d", gotos)
	}
	if len(ifgotos) != 1 {
		t.Fatalf("expected 1 if-goto (on the negated condition), got %d", len(ifgotos))
	}
	// `x > 0` negates to the rel-expression `x <= 0`, per spec.md §4.4 —
	// not a precomputed opaque boolean temp.
	cond := ifgotos[0].Cond
	if cond.Op != "<=" {
		t.Fatalf("expected the negated condition's operator to be <=, got %q (%s)", cond.Op, cond)
	}
	if _, ok := cond.L.(Var); !ok {
		t.Fatalf("expected the negated condition's left operand to be the Var x, got %#v", cond.L)
	}
	if lit, ok := cond.R.(IntConst); !ok || lit.Value != 0 {
		t.Fatalf("expected the negated condition's right operand to be IntConst(0), got %#v", cond.R)
	}
}

func TestLowerIfWithNonRelationalConditionSynthesizesEquality(t *testing.T) {
	p := lowerSrc(t, `class Main { Void main(){
		Bool flag;
		flag = true;
		if (flag) { println(1); } else { println(0); }
	} }`)
	m := findMethod(t, p, "Main", "main")
	var ifgotos []IfGotoInstr
	for _, instr := range m.Code {
		if v, ok := instr.(IfGotoInstr); ok {
			ifgotos = append(ifgotos, v)
		}
	}
	if len(ifgotos) != 1 {
		t.Fatalf("expected 1 if-goto, got %d", len(ifgotos))
	}
	cond := ifgotos[0].Cond
	if cond.Op != "==" {
		t.Fatalf("expected a synthesized equality comparison, got op %q", cond.Op)
	}
	if lit, ok := cond.R.(BoolConst); !ok || lit.Value != false {
		t.Fatalf("expected the negated bare-Bool condition to compare against false, got %#v", cond.R)
	}
}

func TestLowerWhileProducesLoopBackEdge(t *testing.T) {
	p := lowerSrc(t, `class Main { Void main(){
		Int x;
		x = 3;
		while (x > 0) { x = x - 1; }
	} }`)
	m := findMethod(t, p, "Main", "main")
	var gotoTargets []string
	var labelNames []string
	for _, instr := range m.Code {
		switch v := instr.(type) {
		case GotoInstr:
			gotoTargets = append(gotoTargets, v.Target)
		case LabelInstr:
			labelNames = append(labelNames, v.Name)
		}
	}
	if len(labelNames) == 0 || gotoTargets[len(gotoTargets)-1] != labelNames[0] {
		t.Fatalf("expected the loop body's back-edge goto to target the loop's start label, got gotos=%v labels=%v", gotoTargets, labelNames)
	}
}

func TestLowerFieldReadAndWrite(t *testing.T) {
	p := lowerSrc(t, `
class Main { Void main(){
	Shape s;
	s = new Shape();
	s.area = 5;
	println(s.area);
} }
class Shape { Int area; }`)
	m := findMethod(t, p, "Main", "main")
	var sawWrite, sawRead bool
	for _, instr := range m.Code {
		if fw, ok := instr.(FieldWriteInstr); ok && fw.Field == "area" {
			sawWrite = true
		}
		if ai, ok := instr.(AssignInstr); ok {
			if fr, ok := ai.Rhs.(FieldReadRhs); ok && fr.Field == "area" {
				sawRead = true
			}
		}
	}
	if !sawWrite {
		t.Fatal("expected a FieldWriteInstr for s.area = 5")
	}
	if !sawRead {
		t.Fatal("expected a FieldReadRhs for println(s.area)")
	}
}

func TestLowerImplicitThisField(t *testing.T) {
	p := lowerSrc(t, `
class Main { Void main(){ println(0); } }
class Counter {
	Int count;
	Void bump() { count = count + 1; }
}`)
	m := findMethod(t, p, "Counter", "bump")
	var sawFieldRead, sawFieldWrite bool
	for _, instr := range m.Code {
		if ai, ok := instr.(AssignInstr); ok {
			if fr, ok := ai.Rhs.(FieldReadRhs); ok && fr.Field == "count" {
				sawFieldRead = true
			}
		}
		if fw, ok := instr.(FieldWriteInstr); ok && fw.Field == "count" {
			sawFieldWrite = true
		}
	}
	if !sawFieldRead {
		t.Fatal("expected the bare identifier `count` on the rhs to lower to a field read off `this`")
	}
	if !sawFieldWrite {
		t.Fatal("expected the bare identifier `count` as an assign target to lower to a field write on `this`")
	}
}

func TestLowerMethodCallAsStatementAndExpression(t *testing.T) {
	p := lowerSrc(t, `
class Main { Void main(){
	Printer p;
	p = new Printer();
	p.show();
	println(p.get());
} }
class Printer {
	Void show() { println(0); }
	Int get() { return 1; }
}`)
	m := findMethod(t, p, "Main", "main")
	var sawCallInstr, sawCallRhs bool
	for _, instr := range m.Code {
		if ci, ok := instr.(CallInstr); ok && ci.Call.Method == "show" {
			sawCallInstr = true
		}
		if ai, ok := instr.(AssignInstr); ok {
			if cr, ok := ai.Rhs.(CallRhs); ok && cr.Method == "get" {
				sawCallRhs = true
			}
		}
	}
	if !sawCallInstr {
		t.Fatal("expected p.show() as a bare CallInstr")
	}
	if !sawCallRhs {
		t.Fatal("expected p.get() to lower into a CallRhs assigned to a temp")
	}
}

func TestLowerReadlnIntoField(t *testing.T) {
	p := lowerSrc(t, `
class Main { Void main(){ println(0); } }
class Box {
	Int v;
	Void fill() { readln(v); }
}`)
	m := findMethod(t, p, "Box", "fill")
	var sawReadln, sawWrite bool
	for _, instr := range m.Code {
		if _, ok := instr.(ReadlnInstr); ok {
			sawReadln = true
		}
		if fw, ok := instr.(FieldWriteInstr); ok && fw.Field == "v" {
			sawWrite = true
		}
	}
	if !sawReadln || !sawWrite {
		t.Fatal("expected readln(v) to read into a temp then write it to field v")
	}
}

func TestLowerProgramPrintsVarDeclsBeforeCode(t *testing.T) {
	p := lowerSrc(t, `class Main { Void main(){ Int x; x = 1 + 2; println(x); } }`)
	out := p.Print()
	if !strings.Contains(out, "Main.main:") {
		t.Fatalf("expected a Main.main: header, got:\n%s", out)
	}
	declIdx := strings.Index(out, "x;")
	printIdx := strings.Index(out, "println(")
	if declIdx == -1 || printIdx == -1 || declIdx > printIdx {
		t.Fatalf("expected the local's VarDecl to print before the statement stream, got:\n%s", out)
	}
}
