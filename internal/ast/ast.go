package ast

import "github.com/tserg/jlitec/internal/token"

// Param is a formal parameter: a name paired with its declared type.
type Param struct {
	Name string
	Type Type
}

// VarDecl is a local variable or field declaration: `Type name;`.
type VarDecl struct {
	Name string
	Type Type
	Pos  token.Position
}

// Program is the root of the AST: the main class followed by every other
// class declaration, in source order (spec.md §3.3).
type Program struct {
	Main    *MainClass
	Classes []*ClassDecl
}

// MainClass is the distinguished first class, whose `main` method is the
// program's entry point.
type MainClass struct {
	Name   string
	Params []Param
	Locals []VarDecl
	Stmts  []Statement
	Pos    token.Position
}

// ClassDecl is one `class C { ... }` declaration.
type ClassDecl struct {
	Name    string
	Fields  []VarDecl
	Methods []*MethodDecl
	Pos     token.Position
}

// MethodDecl is one method declaration within a class.
type MethodDecl struct {
	Name       string
	Params     []Param
	ReturnType Type
	Locals     []VarDecl
	Stmts      []Statement
	Pos        token.Position
}

// ---------------------------------------------------------------------
// Statements

// Statement is the shared interface for every JLite statement form
// (spec.md §3.3). Position returns the line/column of the statement's
// first token, for diagnostics (spec.md §7).
type Statement interface {
	Position() token.Position
	isStatement()
}

// StmtBase is embedded by every Statement implementation to supply its
// Position. It is exported so that other packages (the parser) can
// construct statement nodes directly with a keyed composite literal.
type StmtBase struct{ Pos token.Position }

func (s StmtBase) Position() token.Position { return s.Pos }
func (StmtBase) isStatement()               {}

// IfStmt is `if (Cond) { Then } else { Else }`.
type IfStmt struct {
	StmtBase
	Cond Expression
	Then []Statement
	Else []Statement
}

// WhileStmt is `while (Cond) { Body }`.
type WhileStmt struct {
	StmtBase
	Cond Expression
	Body []Statement
}

// ReadlnStmt is `readln(Name);`.
type ReadlnStmt struct {
	StmtBase
	Name string
}

// PrintlnStmt is `println(Expr);`.
type PrintlnStmt struct {
	StmtBase
	Expr Expression
}

// AssignStmt is `target = Expr;` where Target is either an *Identifier or
// a *FieldAccessExpr (spec.md §3.3).
type AssignStmt struct {
	StmtBase
	Target Expression
	Expr   Expression
}

// ReturnStmt is `return Expr?;`.
type ReturnStmt struct {
	StmtBase
	Expr Expression // nil when no value is returned
}

// CallStmt is a method call used as a statement: `atom.id(args);`.
type CallStmt struct {
	StmtBase
	Call *MethodCallExpr
}

// ---------------------------------------------------------------------
// Expressions

// Expression is the shared interface for every JLite expression form
// (spec.md §3.3). Every expression eventually acquires a non-empty
// resolved Type after type checking (spec.md §3.3 invariant).
type Expression interface {
	Position() token.Position
	ResolvedType() Type
	SetType(Type)
	isExpression()
}

type ExprBase struct {
	Pos token.Position
	Typ Type
}

func (e *ExprBase) Position() token.Position { return e.Pos }
func (e *ExprBase) ResolvedType() Type       { return e.Typ }
func (e *ExprBase) SetType(t Type)           { e.Typ = t }
func (*ExprBase) isExpression()              {}

type IntLit struct {
	ExprBase
	Value int64
}

type StringLit struct {
	ExprBase
	Value string
}

type BoolLit struct {
	ExprBase
	Value bool
}

// NullLit is the literal `null`.
type NullLit struct{ ExprBase }

// ThisExpr is the expression `this`.
type ThisExpr struct{ ExprBase }

// Identifier is a bare name reference, resolved by the type checker
// against local frames, then the current class's fields; a name found in
// neither is an undeclared-identifier error. Identifiers are never looked
// up as class names (class names lex as CLASSNAME, not IDENTIFIER).
type Identifier struct {
	ExprBase
	Name string
}

// FieldAccessExpr is `Atom.Field`.
type FieldAccessExpr struct {
	ExprBase
	Atom  Expression
	Field string
}

// MethodCallExpr is `Atom.Method(Args...)`.
type MethodCallExpr struct {
	ExprBase
	Atom   Expression
	Method string
	Args   []Expression
}

// NewObjectExpr is `new ClassName()`.
type NewObjectExpr struct {
	ExprBase
	ClassName string
}

type UnaryMinusExpr struct {
	ExprBase
	Operand Expression
}

type NotExpr struct {
	ExprBase
	Operand Expression
}

// BinArithOp enumerates the four arithmetic operators.
type BinArithOp string

const (
	Add BinArithOp = "+"
	Sub BinArithOp = "-"
	Mul BinArithOp = "*"
	Div BinArithOp = "/"
)

type BinArithExpr struct {
	ExprBase
	Op   BinArithOp
	L, R Expression
}

// BinRelOp enumerates the six relational operators.
type BinRelOp string

const (
	Lt  BinRelOp = "<"
	Gt  BinRelOp = ">"
	Le  BinRelOp = "<="
	Ge  BinRelOp = ">="
	Eq  BinRelOp = "=="
	Neq BinRelOp = "!="
)

type BinRelExpr struct {
	ExprBase
	Op   BinRelOp
	L, R Expression
}

// BinBoolOp enumerates the two boolean operators.
type BinBoolOp string

const (
	LAnd BinBoolOp = "&&"
	LOr  BinBoolOp = "||"
)

type BinBoolExpr struct {
	ExprBase
	Op   BinBoolOp
	L, R Expression
}

// ParenExpr is `(Inner)`; kept distinct in the tree so pretty-printing can
// round-trip parentheses even though it carries no semantics of its own.
type ParenExpr struct {
	ExprBase
	Inner Expression
}
