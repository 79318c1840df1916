package ir3

import (
	"fmt"

	"github.com/tserg/jlitec/internal/ast"
	"github.com/tserg/jlitec/internal/classtab"
	"github.com/tserg/jlitec/internal/diag"
)

// ctx is the per-method lowering state: fresh temp/label generators and
// the instruction list built up so far (spec.md §4.4). Temps and labels
// are numbered from zero within each method, mirroring the per-function
// NewLabel counter of lang/ygen/emit.go's Emitter.
type ctx struct {
	classes   *classtab.Table
	className string
	locals    map[string]ast.Type // params + locals, everything NOT implicitly `this.field`

	tempN  int
	labelN int

	varDecls []VarDeclInstr
	code     []Instr
}

// newTemp allocates a fresh compiler temp, skipping any `_t<N>` value that
// collides with a user-declared local or parameter name: JLite identifiers
// may start with `_` (internal/lexer's clsLower class), so nothing stops a
// source program from declaring its own `_t0`.
func (c *ctx) newTemp(ty ast.Type) Temp {
	var name string
	for {
		name = fmt.Sprintf("_t%d", c.tempN)
		c.tempN++
		if _, taken := c.locals[name]; !taken {
			break
		}
	}
	c.varDecls = append(c.varDecls, VarDeclInstr{Name: name, Type: ty})
	return Temp{Name: name, Type: ty}
}

func (c *ctx) newLabel(prefix string) string {
	name := fmt.Sprintf("L_%s%d", prefix, c.labelN)
	c.labelN++
	return name
}

func (c *ctx) emit(i Instr) { c.code = append(c.code, i) }

func (c *ctx) thisVar() Var { return Var{Name: "this", Type: ast.Object(c.className)} }

// negatedRelOp returns the relational operator whose sense is the
// logical negation of op (`<` negates to `>=`, `==` to `!=`, and so on).
func negatedRelOp(op ast.BinRelOp) ast.BinRelOp {
	switch op {
	case ast.Lt:
		return ast.Ge
	case ast.Gt:
		return ast.Le
	case ast.Le:
		return ast.Gt
	case ast.Ge:
		return ast.Lt
	case ast.Eq:
		return ast.Neq
	case ast.Neq:
		return ast.Eq
	default:
		diag.Internal(diag.StageLower, "unhandled relational operator %s", op)
		return op
	}
}

// lowerRel lowers cond into the RelCond spec.md §3.5 requires as an
// IfGoto's operand, negating it first when negate is true. A BinRel
// condition (optionally wrapped in Not/Paren) negates by flipping its
// own operator, per spec.md §4.4 ("lower c to a rel-expression operand");
// any other condition shape is lowered to a plain Bool value and
// compared against a literal (`v == true` / `v == false`) to produce a
// rel-expression without inventing a non-spec instruction shape.
func (c *ctx) lowerRel(cond ast.Expression, negate bool) RelCond {
	switch ex := cond.(type) {
	case *ast.ParenExpr:
		return c.lowerRel(ex.Inner, negate)
	case *ast.NotExpr:
		return c.lowerRel(ex.Operand, !negate)
	case *ast.BinRelExpr:
		l := c.lowerExpr(ex.L)
		r := c.lowerExpr(ex.R)
		op := ex.Op
		if negate {
			op = negatedRelOp(op)
		}
		return RelCond{Op: string(op), L: l, R: r}
	default:
		v := c.lowerExpr(cond)
		return RelCond{Op: "==", L: v, R: BoolConst{Value: !negate}}
	}
}

// lowerNegatedCond lowers a Bool-typed condition into the RelCond for its
// negation, for the IfGoto-on-negated-condition scheme of spec.md §4.4
// (If/While both branch away from their guarded code when false).
func (c *ctx) lowerNegatedCond(cond ast.Expression) RelCond {
	return c.lowerRel(cond, true)
}

// Lower lowers a type-checked Program into IR3 (spec.md §4.4): main's
// body becomes a method named "main" on the program's main class, and
// every other class's methods are lowered the same way.
func Lower(prog *ast.Program, classes *classtab.Table) *Program {
	out := &Program{MainClass: prog.Main.Name}

	for _, cd := range prog.Classes {
		out.Classes = append(out.Classes, ClassData{Name: cd.Name, Fields: cd.Fields})
	}

	out.Methods = append(out.Methods, lowerMethod(classes, prog.Main.Name, "main",
		prog.Main.Params, ast.Void, prog.Main.Locals, prog.Main.Stmts))

	for _, cd := range prog.Classes {
		for _, md := range cd.Methods {
			out.Methods = append(out.Methods, lowerMethod(classes, cd.Name, md.Name,
				md.Params, md.ReturnType, md.Locals, md.Stmts))
		}
	}
	return out
}

func lowerMethod(classes *classtab.Table, className, name string, params []ast.Param, ret ast.Type, locals []ast.VarDecl, stmts []ast.Statement) *Method {
	c := &ctx{classes: classes, className: className, locals: make(map[string]ast.Type)}
	for _, p := range params {
		c.locals[p.Name] = p.Type
	}
	for _, l := range locals {
		c.locals[l.Name] = l.Type
		c.varDecls = append(c.varDecls, VarDeclInstr{Name: l.Name, Type: l.Type})
	}
	for _, s := range stmts {
		c.lowerStmt(s)
	}

	paramVars := make([]Var, len(params))
	for i, p := range params {
		paramVars[i] = Var{Name: p.Name, Type: p.Type}
	}
	return &Method{
		Class: className, Name: name, Params: paramVars, ReturnType: ret,
		VarDecls: c.varDecls, Code: c.code,
	}
}

// resolveIdent materializes a bare identifier: a local/param is already a
// Value, but a name that resolves to a field is implicitly `this.name`
// and must be read into a temp first (spec.md §4.3 Phase 3 identifier
// rule, §4.4 lowering).
func (c *ctx) resolveIdent(name string) Value {
	if ty, ok := c.locals[name]; ok {
		return Var{Name: name, Type: ty}
	}
	info := c.classes.Lookup(c.className)
	if info == nil {
		diag.Internal(diag.StageLower, "lowering identifier %s against unknown class %s", name, c.className)
	}
	fty, ok := info.Field(name)
	if !ok {
		diag.Internal(diag.StageLower, "identifier %s resolves to neither a local nor a field of %s", name, c.className)
	}
	t := c.newTemp(fty)
	c.emit(AssignInstr{Dest: t, Rhs: FieldReadRhs{Obj: c.thisVar(), Field: name}})
	return t
}

// ---------------------------------------------------------------------
// Statements

func (c *ctx) lowerStmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.IfStmt:
		condNeg := c.lowerNegatedCond(st.Cond)
		lelse := c.newLabel("else")
		lend := c.newLabel("endif")
		c.emit(IfGotoInstr{Cond: condNeg, Target: lelse})
		for _, inner := range st.Then {
			c.lowerStmt(inner)
		}
		c.emit(GotoInstr{Target: lend})
		c.emit(LabelInstr{Name: lelse})
		for _, inner := range st.Else {
			c.lowerStmt(inner)
		}
		c.emit(LabelInstr{Name: lend})

	case *ast.WhileStmt:
		lcond := c.newLabel("while")
		lend := c.newLabel("endwhile")
		c.emit(LabelInstr{Name: lcond})
		condNeg := c.lowerNegatedCond(st.Cond)
		c.emit(IfGotoInstr{Cond: condNeg, Target: lend})
		for _, inner := range st.Body {
			c.lowerStmt(inner)
		}
		c.emit(GotoInstr{Target: lcond})
		c.emit(LabelInstr{Name: lend})

	case *ast.ReadlnStmt:
		if ty, ok := c.locals[st.Name]; ok {
			c.emit(ReadlnInstr{Target: Var{Name: st.Name, Type: ty}})
			return
		}
		info := c.classes.Lookup(c.className)
		fty, _ := info.Field(st.Name)
		t := c.newTemp(fty)
		c.emit(ReadlnInstr{Target: t})
		c.emit(FieldWriteInstr{Obj: c.thisVar(), Field: st.Name, Src: t})

	case *ast.PrintlnStmt:
		c.emit(PrintlnInstr{Value: c.lowerExpr(st.Expr)})

	case *ast.AssignStmt:
		rhs := c.lowerExpr(st.Expr)
		switch target := st.Target.(type) {
		case *ast.Identifier:
			if ty, ok := c.locals[target.Name]; ok {
				c.emit(AssignInstr{Dest: Var{Name: target.Name, Type: ty}, Rhs: ValueRhs{Value: rhs}})
				return
			}
			c.emit(FieldWriteInstr{Obj: c.thisVar(), Field: target.Name, Src: rhs})
		case *ast.FieldAccessExpr:
			obj := c.lowerExpr(target.Atom)
			c.emit(FieldWriteInstr{Obj: obj, Field: target.Field, Src: rhs})
		default:
			diag.Internal(diag.StageLower, "unlowerable assignment target %T", target)
		}

	case *ast.ReturnStmt:
		if st.Expr == nil {
			c.emit(ReturnInstr{})
			return
		}
		c.emit(ReturnInstr{Value: c.lowerExpr(st.Expr)})

	case *ast.CallStmt:
		c.emit(CallInstr{Call: c.lowerCall(st.Call)})

	default:
		diag.Internal(diag.StageLower, "unhandled statement type %T", s)
	}
}

// ---------------------------------------------------------------------
// Expressions: every non-atomic subexpression flattens into a fresh
// temp, per the three-address-code discipline (spec.md §3.5).

func (c *ctx) lowerExpr(e ast.Expression) Value {
	switch ex := e.(type) {
	case *ast.IntLit:
		return IntConst{Value: ex.Value}
	case *ast.StringLit:
		return StringConst{Value: ex.Value}
	case *ast.BoolLit:
		return BoolConst{Value: ex.Value}
	case *ast.NullLit:
		return NullConst{}
	case *ast.ThisExpr:
		return c.thisVar()
	case *ast.Identifier:
		return c.resolveIdent(ex.Name)
	case *ast.ParenExpr:
		return c.lowerExpr(ex.Inner)

	case *ast.FieldAccessExpr:
		obj := c.lowerExpr(ex.Atom)
		t := c.newTemp(ex.ResolvedType())
		c.emit(AssignInstr{Dest: t, Rhs: FieldReadRhs{Obj: obj, Field: ex.Field}})
		return t

	case *ast.MethodCallExpr:
		call := c.lowerCall(ex)
		if ex.ResolvedType().Kind == ast.KindVoid {
			c.emit(CallInstr{Call: call})
			return nil
		}
		t := c.newTemp(ex.ResolvedType())
		c.emit(AssignInstr{Dest: t, Rhs: call})
		return t

	case *ast.NewObjectExpr:
		t := c.newTemp(ast.Object(ex.ClassName))
		c.emit(AssignInstr{Dest: t, Rhs: NewObjectRhs{ClassName: ex.ClassName}})
		return t

	case *ast.UnaryMinusExpr:
		operand := c.lowerExpr(ex.Operand)
		t := c.newTemp(ast.Int)
		c.emit(AssignInstr{Dest: t, Rhs: UnaryRhs{Op: "-", Operand: operand}})
		return t

	case *ast.NotExpr:
		operand := c.lowerExpr(ex.Operand)
		t := c.newTemp(ast.Bool)
		c.emit(AssignInstr{Dest: t, Rhs: UnaryRhs{Op: "!", Operand: operand}})
		return t

	case *ast.BinArithExpr:
		l := c.lowerExpr(ex.L)
		r := c.lowerExpr(ex.R)
		t := c.newTemp(ex.ResolvedType())
		c.emit(AssignInstr{Dest: t, Rhs: BinRhs{Op: string(ex.Op), L: l, R: r}})
		return t

	case *ast.BinRelExpr:
		l := c.lowerExpr(ex.L)
		r := c.lowerExpr(ex.R)
		t := c.newTemp(ast.Bool)
		c.emit(AssignInstr{Dest: t, Rhs: BinRhs{Op: string(ex.Op), L: l, R: r}})
		return t

	case *ast.BinBoolExpr:
		// Lowered as plain three-address evaluation of both operands, not
		// short-circuited: JLite has no side-effecting boolean operands
		// beyond method calls, and short-circuit control flow is a backend
		// concern out of scope here (spec.md §6).
		l := c.lowerExpr(ex.L)
		r := c.lowerExpr(ex.R)
		t := c.newTemp(ast.Bool)
		c.emit(AssignInstr{Dest: t, Rhs: BinRhs{Op: string(ex.Op), L: l, R: r}})
		return t

	default:
		diag.Internal(diag.StageLower, "unhandled expression type %T", e)
		return nil
	}
}

func (c *ctx) lowerCall(call *ast.MethodCallExpr) CallRhs {
	obj := c.lowerExpr(call.Atom)
	atomTy := call.Atom.ResolvedType()
	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		args[i] = c.lowerExpr(a)
	}
	return CallRhs{Receiver: obj, Class: atomTy.ClassName, Method: call.Method, Args: args}
}
