// Package ir3 defines JLite's three-address intermediate representation
// (spec.md §3.5, §3.6): a flat, label-and-goto instruction list per
// method, structurally grounded on the Program/Function/Instr shape of
// lang/ygen/ir_types.go (IRProgram → IRFunction → IRInstr) — generalized
// from that assembly-level IR's struct/const/global sections to JLite's
// class-data-plus-method-code program shape.
package ir3

import (
	"fmt"
	"strings"

	"github.com/tserg/jlitec/internal/ast"
)

// Value is anything that can appear as an IR3 operand: a temp, a named
// local/parameter/`this`, or a constant. Fields are not Values; they are
// read through FieldReadRhs and written through FieldWriteInstr.
type Value interface {
	isValue()
	String() string
}

// Temp is a compiler-generated three-address temporary, e.g. `_t3`.
type Temp struct {
	Name string
	Type ast.Type
}

func (Temp) isValue() {}

func (t Temp) String() string { return t.Name }

// Var is a named local, parameter, or `this`.
type Var struct {
	Name string
	Type ast.Type
}

func (Var) isValue() {}

func (v Var) String() string { return v.Name }

// IntConst, StringConst, BoolConst and NullConst are literal operands.
type IntConst struct{ Value int64 }
type StringConst struct{ Value string }
type BoolConst struct{ Value bool }
type NullConst struct{}

func (IntConst) isValue()    {}
func (StringConst) isValue() {}
func (BoolConst) isValue()   {}
func (NullConst) isValue()   {}

func (c IntConst) String() string    { return fmt.Sprintf("%d", c.Value) }
func (c StringConst) String() string { return fmt.Sprintf("%q", c.Value) }
func (c BoolConst) String() string   { return fmt.Sprintf("%t", c.Value) }
func (NullConst) String() string     { return "null" }

// Instr is one three-address instruction. Every instruction kind is a
// distinct Go type implementing Instr (spec.md §3.5); a CFG basic block
// is a contiguous run of these.
type Instr interface {
	isInstr()
	String() string
}

type instrBase struct{}

func (instrBase) isInstr() {}

// LabelInstr marks a jump target. It carries no computation of its own
// and always begins a new basic block (spec.md §3.7).
type LabelInstr struct {
	instrBase
	Name string
}

func (i LabelInstr) String() string { return i.Name + ":" }

// GotoInstr is an unconditional jump.
type GotoInstr struct {
	instrBase
	Target string
}

func (i GotoInstr) String() string { return fmt.Sprintf("goto %s", i.Target) }

// RelCond is a BinRel over simple operands: the only shape spec.md §3.5
// permits as an IfGoto's condition (`IfGoto(rel_expr, label_id)` where
// rel_expr is BinRel over simple operands). A condition that is not
// itself relational is lowered into one by comparing a Bool value
// against a literal (see lower.go's lowerRel).
type RelCond struct {
	Op   string // one of < > <= >= == !=
	L, R Value
}

func (c RelCond) String() string { return fmt.Sprintf("%s %s %s", c.L, c.Op, c.R) }

// IfGotoInstr jumps to Target when Cond is true, falling through
// otherwise (spec.md §3.5).
type IfGotoInstr struct {
	instrBase
	Cond   RelCond
	Target string
}

func (i IfGotoInstr) String() string { return fmt.Sprintf("if %s goto %s", i.Cond, i.Target) }

// AssignInstr is `Dest = Rhs`, where Rhs is an already-flattened
// three-address right-hand side (spec.md §3.5): a value, a unary/binary
// op over values, a field read, a new object, or a method call. Field
// writes are FieldWriteInstr, not AssignInstr.
type AssignInstr struct {
	instrBase
	Dest Value
	Rhs  Rhs
}

func (i AssignInstr) String() string { return fmt.Sprintf("%s = %s", i.Dest, i.Rhs) }

// Rhs is the right-hand side of an AssignInstr.
type Rhs interface {
	isRhs()
	String() string
}

type rhsBase struct{}

func (rhsBase) isRhs() {}

// ValueRhs is a plain operand copy: `Dest = Value`.
type ValueRhs struct {
	rhsBase
	Value Value
}

func (r ValueRhs) String() string { return r.Value.String() }

// UnaryRhs is `Op Operand` (negation or boolean not).
type UnaryRhs struct {
	rhsBase
	Op      string
	Operand Value
}

func (r UnaryRhs) String() string { return fmt.Sprintf("%s%s", r.Op, r.Operand) }

// BinRhs is `L Op R`, where Op is one of the arithmetic, relational or
// boolean operator symbols.
type BinRhs struct {
	rhsBase
	Op   string
	L, R Value
}

func (r BinRhs) String() string { return fmt.Sprintf("%s %s %s", r.L, r.Op, r.R) }

// FieldReadRhs is `Obj.Field`.
type FieldReadRhs struct {
	rhsBase
	Obj   Value
	Field string
}

func (r FieldReadRhs) String() string { return fmt.Sprintf("%s.%s", r.Obj, r.Field) }

// NewObjectRhs is `new ClassName()`.
type NewObjectRhs struct {
	rhsBase
	ClassName string
}

func (r NewObjectRhs) String() string { return fmt.Sprintf("new %s()", r.ClassName) }

// CallRhs is `Receiver.Method(Args...)`, lowered as its own instruction
// kind rather than folded into a general "call" expression since JLite
// calls are always method calls with a fixed target resolved at
// type-check time (spec.md §4.4).
type CallRhs struct {
	rhsBase
	Receiver Value
	Class    string
	Method   string
	Args     []Value
}

func (r CallRhs) String() string {
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s.%s(%s)", r.Receiver, r.Method, strings.Join(args, ", "))
}

// FieldWriteInstr is `Obj.Field = Src`, kept distinct from AssignInstr
// because its destination is not a Value (spec.md §3.5).
type FieldWriteInstr struct {
	instrBase
	Obj   Value
	Field string
	Src   Value
}

func (i FieldWriteInstr) String() string { return fmt.Sprintf("%s.%s = %s", i.Obj, i.Field, i.Src) }

// CallInstr is a method call used as a statement (its result, if any, is
// discarded).
type CallInstr struct {
	instrBase
	Call CallRhs
}

func (i CallInstr) String() string { return i.Call.String() }

// ReturnInstr returns from the current method, optionally with a value.
type ReturnInstr struct {
	instrBase
	Value Value // nil for a Void return
}

func (i ReturnInstr) String() string {
	if i.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", i.Value)
}

// ReadlnInstr reads a line into Target.
type ReadlnInstr struct {
	instrBase
	Target Value
}

func (i ReadlnInstr) String() string { return fmt.Sprintf("readln(%s)", i.Target) }

// PrintlnInstr prints Value followed by a newline.
type PrintlnInstr struct {
	instrBase
	Value Value
}

func (i PrintlnInstr) String() string { return fmt.Sprintf("println(%s)", i.Value) }

// VarDeclInstr declares a method-local temporary/variable's existence,
// printed ahead of the statement stream (spec.md §6, SPEC_FULL.md §5).
type VarDeclInstr struct {
	instrBase
	Name string
	Type ast.Type
}

func (i VarDeclInstr) String() string { return fmt.Sprintf("%s %s;", i.Type, i.Name) }

// Method is one method's lowered body: its declared locals/temps
// (printed first) followed by the straight-line instruction stream
// (spec.md §3.6).
type Method struct {
	Class      string
	Name       string
	Params     []Var
	ReturnType ast.Type
	VarDecls   []VarDeclInstr
	Code       []Instr
}

// ClassData is a class's field layout, carried into IR3 so the backend
// (out of scope, spec.md §6) knows object shapes without consulting the
// AST.
type ClassData struct {
	Name   string
	Fields []ast.VarDecl
}

// Program is the whole lowered program: every class's field layout plus
// every method's code, main included as a method named "main" on the
// program's main class (spec.md §3.6).
type Program struct {
	MainClass string
	Classes   []ClassData
	Methods   []*Method
}

// Print renders every method as a `Class.method:` header, then its
// VarDecls, then its statement stream (labels unindented). It does not
// print the class-data section, parameter lists or return types.
func (p *Program) Print() string {
	var b strings.Builder
	for _, m := range p.Methods {
		fmt.Fprintf(&b, "%s.%s:\n", m.Class, m.Name)
		for _, vd := range m.VarDecls {
			fmt.Fprintf(&b, "    %s\n", vd.String())
		}
		for _, instr := range m.Code {
			switch instr.(type) {
			case LabelInstr:
				fmt.Fprintf(&b, "%s\n", instr.String())
			default:
				fmt.Fprintf(&b, "    %s\n", instr.String())
			}
		}
	}
	return b.String()
}
