// Package typecheck implements JLite's multi-pass, scope-aware type
// checker (spec.md §4.3): build the class table, then type every method
// body against a local-environment frame stack, grounded on the
// teacher's scoped-symbol-table build-then-resolve shape
// (lang/yparse/symtab.go's SymbolTable/FuncScope) generalized from a flat
// function namespace to per-class fields and overloaded methods.
package typecheck

import (
	"fmt"

	"github.com/tserg/jlitec/internal/ast"
	"github.com/tserg/jlitec/internal/classtab"
	"github.com/tserg/jlitec/internal/diag"
	"github.com/tserg/jlitec/internal/scope"
	"github.com/tserg/jlitec/internal/token"
)

// Error is a type diagnostic. The checker halts at the first one raised;
// there is no recovery (spec.md §7).
type Error struct{ diag.Diagnostic }

func (e *Error) Error() string { return e.Diagnostic.Error() }

// checker carries the state threaded through one compilation unit's type
// check: the class table built up front, and — while walking one
// method's body — that method's receiver class and local environment.
type checker struct {
	classes *classtab.Table

	curClass  string
	curReturn ast.Type
	env       *scope.Env
}

// Check runs all four phases of spec.md §4.3/§4.4 against prog and
// returns the first diagnostic raised, if any. On success every
// Expression node in prog carries its resolved Type.
func Check(prog *ast.Program) (*classtab.Table, error) {
	classes, err := classtab.Build(prog)
	if err != nil {
		return nil, err
	}
	c := &checker{classes: classes}

	if err := c.checkBody(prog.Main.Name, ast.Void, prog.Main.Params, prog.Main.Locals, prog.Main.Stmts); err != nil {
		return nil, err
	}

	for _, cd := range prog.Classes {
		for _, md := range cd.Methods {
			if err := c.checkMethodParams(cd.Name, md); err != nil {
				return nil, err
			}
			if err := c.checkBody(cd.Name, md.ReturnType, md.Params, md.Locals, md.Stmts); err != nil {
				return nil, err
			}
		}
	}
	return classes, nil
}

func (c *checker) checkMethodParams(className string, md *ast.MethodDecl) error {
	for _, p := range md.Params {
		if p.Type.Kind == ast.KindObject && c.classes.Lookup(p.Type.ClassName) == nil {
			return typeErr(md.Pos, p.Name, "parameter %s has undeclared class type %s", p.Name, p.Type.ClassName)
		}
	}
	if md.ReturnType.Kind == ast.KindObject && c.classes.Lookup(md.ReturnType.ClassName) == nil {
		return typeErr(md.Pos, md.Name, "method %s.%s has undeclared return class type %s", className, md.Name, md.ReturnType.ClassName)
	}
	return nil
}

// checkBody pushes a fresh frame holding `this`, the parameters and the
// locals (spec.md §4.3 Phase 2), then type-checks every statement.
func (c *checker) checkBody(className string, ret ast.Type, params []ast.Param, locals []ast.VarDecl, stmts []ast.Statement) error {
	c.curClass = className
	c.curReturn = ret
	c.env = scope.NewEnv()
	c.env.Declare("this", ast.Object(className))

	for _, p := range params {
		if !c.env.Declare(p.Name, p.Type) {
			return typeErr(token.Position{}, p.Name, "duplicate parameter name %s", p.Name)
		}
	}
	for _, l := range locals {
		if !c.env.Declare(l.Name, l.Type) {
			return typeErr(l.Pos, l.Name, "duplicate local variable %s", l.Name)
		}
	}
	for _, s := range stmts {
		if err := c.checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------
// Statements (spec.md §4.3 Phase 4)

func (c *checker) checkStmt(s ast.Statement) error {
	switch st := s.(type) {
	case *ast.IfStmt:
		cond, err := c.checkExpr(st.Cond)
		if err != nil {
			return err
		}
		if !cond.Equal(ast.Bool) {
			return typeErr(st.Pos, "", "if condition must be Bool, got %s", cond)
		}
		for _, inner := range st.Then {
			if err := c.checkStmt(inner); err != nil {
				return err
			}
		}
		for _, inner := range st.Else {
			if err := c.checkStmt(inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.WhileStmt:
		cond, err := c.checkExpr(st.Cond)
		if err != nil {
			return err
		}
		if !cond.Equal(ast.Bool) {
			return typeErr(st.Pos, "", "while condition must be Bool, got %s", cond)
		}
		for _, inner := range st.Body {
			if err := c.checkStmt(inner); err != nil {
				return err
			}
		}
		return nil

	case *ast.ReadlnStmt:
		ty, ok := c.env.Lookup(st.Name)
		if !ok {
			if fty, fok := c.classes.Lookup(c.curClass).Field(st.Name); fok {
				ty, ok = fty, true
			}
		}
		if !ok {
			return typeErr(st.Pos, st.Name, "undeclared identifier %s", st.Name)
		}
		if ty.Kind != ast.KindInt && ty.Kind != ast.KindString && ty.Kind != ast.KindBool {
			return typeErr(st.Pos, st.Name, "readln target must be Int, Bool or String, got %s", ty)
		}
		return nil

	case *ast.PrintlnStmt:
		ty, err := c.checkExpr(st.Expr)
		if err != nil {
			return err
		}
		if ty.Kind != ast.KindInt && ty.Kind != ast.KindBool && ty.Kind != ast.KindString {
			return typeErr(st.Pos, "", "println argument must be Int, Bool or String, got %s", ty)
		}
		return nil

	case *ast.AssignStmt:
		targetTy, err := c.checkAssignTarget(st.Target)
		if err != nil {
			return err
		}
		exprTy, err := c.checkExpr(st.Expr)
		if err != nil {
			return err
		}
		if !targetTy.AssignableFrom(exprTy) {
			return typeErr(st.Pos, "", "cannot assign %s to target of type %s", exprTy, targetTy)
		}
		return nil

	case *ast.ReturnStmt:
		if st.Expr == nil {
			if c.curReturn.Kind != ast.KindVoid {
				return typeErr(st.Pos, "", "missing return value for non-Void method")
			}
			return nil
		}
		ty, err := c.checkExpr(st.Expr)
		if err != nil {
			return err
		}
		if !c.curReturn.AssignableFrom(ty) {
			return typeErr(st.Pos, "", "return type mismatch: expected %s, got %s", c.curReturn, ty)
		}
		return nil

	case *ast.CallStmt:
		_, err := c.checkExpr(st.Call)
		return err

	default:
		diag.Internal(diag.StageTypecheck, "unhandled statement type %T", s)
		return nil
	}
}

// checkAssignTarget types an assignment's left-hand side: a bare
// identifier (local, param or field) or a field access (spec.md §3.3).
func (c *checker) checkAssignTarget(target ast.Expression) (ast.Type, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		return c.checkExpr(t)
	case *ast.FieldAccessExpr:
		return c.checkExpr(t)
	default:
		return ast.Invalid, typeErr(target.Position(), "", "invalid assignment target")
	}
}

// ---------------------------------------------------------------------
// Expressions (spec.md §4.3 Phase 3)

func (c *checker) checkExpr(e ast.Expression) (ast.Type, error) {
	ty, err := c.resolveExpr(e)
	if err != nil {
		return ast.Invalid, err
	}
	e.SetType(ty)
	return ty, nil
}

func (c *checker) resolveExpr(e ast.Expression) (ast.Type, error) {
	switch ex := e.(type) {
	case *ast.IntLit:
		return ast.Int, nil
	case *ast.StringLit:
		return ast.String, nil
	case *ast.BoolLit:
		return ast.Bool, nil
	case *ast.NullLit:
		return ast.Null, nil
	case *ast.ThisExpr:
		return ast.Object(c.curClass), nil

	case *ast.Identifier:
		if ty, ok := c.env.Lookup(ex.Name); ok {
			return ty, nil
		}
		if ty, ok := c.classes.Lookup(c.curClass).Field(ex.Name); ok {
			return ty, nil
		}
		return ast.Invalid, typeErr(ex.Pos, ex.Name, "undeclared identifier %s", ex.Name)

	case *ast.FieldAccessExpr:
		atomTy, err := c.checkExpr(ex.Atom)
		if err != nil {
			return ast.Invalid, err
		}
		if atomTy.Kind != ast.KindObject {
			return ast.Invalid, typeErr(ex.Pos, ex.Field, "field access on non-object type %s", atomTy)
		}
		info := c.classes.Lookup(atomTy.ClassName)
		if info == nil {
			diag.Internal(diag.StageTypecheck, "field access on unknown class %s", atomTy.ClassName)
		}
		fty, ok := info.Field(ex.Field)
		if !ok {
			return ast.Invalid, typeErr(ex.Pos, ex.Field, "class %s has no field %s", atomTy.ClassName, ex.Field)
		}
		return fty, nil

	case *ast.MethodCallExpr:
		atomTy, err := c.checkExpr(ex.Atom)
		if err != nil {
			return ast.Invalid, err
		}
		if atomTy.Kind != ast.KindObject {
			return ast.Invalid, typeErr(ex.Pos, ex.Method, "method call on non-object type %s", atomTy)
		}
		info := c.classes.Lookup(atomTy.ClassName)
		if info == nil {
			diag.Internal(diag.StageTypecheck, "method call on unknown class %s", atomTy.ClassName)
		}
		argTypes := make([]ast.Type, len(ex.Args))
		for i, a := range ex.Args {
			aty, err := c.checkExpr(a)
			if err != nil {
				return ast.Invalid, err
			}
			argTypes[i] = aty
		}
		sig, resErr := info.ResolveCall(ex.Method, argTypes)
		if resErr != nil {
			return ast.Invalid, typeErr(ex.Pos, ex.Method, "%s", resErr)
		}
		return sig.ReturnType, nil

	case *ast.NewObjectExpr:
		if c.classes.Lookup(ex.ClassName) == nil {
			return ast.Invalid, typeErr(ex.Pos, ex.ClassName, "new of undeclared class %s", ex.ClassName)
		}
		return ast.Object(ex.ClassName), nil

	case *ast.UnaryMinusExpr:
		ty, err := c.checkExpr(ex.Operand)
		if err != nil {
			return ast.Invalid, err
		}
		if !ty.Equal(ast.Int) {
			return ast.Invalid, typeErr(ex.Pos, "", "unary - requires Int, got %s", ty)
		}
		return ast.Int, nil

	case *ast.NotExpr:
		ty, err := c.checkExpr(ex.Operand)
		if err != nil {
			return ast.Invalid, err
		}
		if !ty.Equal(ast.Bool) {
			return ast.Invalid, typeErr(ex.Pos, "", "! requires Bool, got %s", ty)
		}
		return ast.Bool, nil

	case *ast.BinArithExpr:
		lty, err := c.checkExpr(ex.L)
		if err != nil {
			return ast.Invalid, err
		}
		rty, err := c.checkExpr(ex.R)
		if err != nil {
			return ast.Invalid, err
		}
		if ex.Op == ast.Add && isStringOrNull(lty) && isStringOrNull(rty) && (lty.Equal(ast.String) || rty.Equal(ast.String)) {
			return ast.String, nil
		}
		if !lty.Equal(ast.Int) || !rty.Equal(ast.Int) {
			return ast.Invalid, typeErr(ex.Pos, string(ex.Op), "operator %s requires two Ints (or two Strings for +), got %s and %s", ex.Op, lty, rty)
		}
		return ast.Int, nil

	case *ast.BinRelExpr:
		lty, err := c.checkExpr(ex.L)
		if err != nil {
			return ast.Invalid, err
		}
		rty, err := c.checkExpr(ex.R)
		if err != nil {
			return ast.Invalid, err
		}
		if ex.Op == ast.Eq || ex.Op == ast.Neq {
			if !ast.EqualityComparable(lty, rty) {
				return ast.Invalid, typeErr(ex.Pos, string(ex.Op), "operands of %s are not comparable: %s and %s", ex.Op, lty, rty)
			}
			return ast.Bool, nil
		}
		if !lty.Equal(ast.Int) || !rty.Equal(ast.Int) {
			return ast.Invalid, typeErr(ex.Pos, string(ex.Op), "operator %s requires two Ints, got %s and %s", ex.Op, lty, rty)
		}
		return ast.Bool, nil

	case *ast.BinBoolExpr:
		lty, err := c.checkExpr(ex.L)
		if err != nil {
			return ast.Invalid, err
		}
		rty, err := c.checkExpr(ex.R)
		if err != nil {
			return ast.Invalid, err
		}
		if !lty.Equal(ast.Bool) || !rty.Equal(ast.Bool) {
			return ast.Invalid, typeErr(ex.Pos, string(ex.Op), "operator %s requires two Bools, got %s and %s", ex.Op, lty, rty)
		}
		return ast.Bool, nil

	case *ast.ParenExpr:
		return c.checkExpr(ex.Inner)

	default:
		diag.Internal(diag.StageTypecheck, "unhandled expression type %T", e)
		return ast.Invalid, nil
	}
}

// isStringOrNull reports whether ty may stand as an operand of `+` under
// the String-concatenation rule: spec.md §3.2/§4.3 permit null on either
// side of a String `+`, not just two Strings.
func isStringOrNull(ty ast.Type) bool {
	return ty.Kind == ast.KindString || ty.Kind == ast.KindNullLiteral
}

func typeErr(pos token.Position, offender string, format string, args ...interface{}) error {
	return &Error{diag.Diagnostic{
		Stage:    diag.StageTypecheck,
		Category: diag.Type,
		Message:  fmt.Sprintf(format, args...),
		Offender: offender,
		Line:     pos.Line,
		Column:   pos.Index,
	}}
}
