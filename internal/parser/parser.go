// Package parser implements JLite's recursive-descent parser (spec.md
// §4.2): grammar productions are ordinary Go methods, ambiguity between
// the boolean/arithmetic/string expression grammars is resolved by
// trying each in turn and restoring the token position on failure, and
// left recursion in the binary-operator productions is eliminated with
// the usual left-fold "continuation" loop, grounded on the
// precedence-climbing structure of lang/parse/parser.go's
// parseLogicalOr/parseComparison/parseAdditive chain — but without that
// parser's panic-mode synchronize, since the compiler does not recover
// past the first diagnostic (spec.md §7).
package parser

import (
	"fmt"
	"strconv"

	"github.com/tserg/jlitec/internal/ast"
	"github.com/tserg/jlitec/internal/diag"
	"github.com/tserg/jlitec/internal/token"
)

// Error is a parse diagnostic naming the offending token's literal text.
type Error struct{ diag.Diagnostic }

func (e *Error) Error() string { return e.Diagnostic.Error() }

// Parser holds the token stream and a cursor. Backtracking is a plain
// integer save/restore of the cursor (a "checkpoint"), not an exception
// stack: every tentative production returns (node, error) and the caller
// decides whether to keep the side effect (the advanced cursor) or roll
// it back.
type Parser struct {
	toks []token.Token
	pos  int
}

// New constructs a Parser over an already-lexed token stream.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// checkpoint is a saved cursor position.
type checkpoint int

func (p *Parser) mark() checkpoint       { return checkpoint(p.pos) }
func (p *Parser) reset(c checkpoint)     { p.pos = int(c) }

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, p.errorf(p.peek(), "expected %s, found %s", k, p.peek().Kind)
	}
	return p.advance(), nil
}

func stmtAt(pos token.Position) ast.StmtBase { return ast.StmtBase{Pos: pos} }
func exprAt(pos token.Position) ast.ExprBase { return ast.ExprBase{Pos: pos} }

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) *Error {
	return &Error{diag.Diagnostic{
		Stage:    diag.StageParse,
		Category: diag.Parse,
		Message:  fmt.Sprintf(format, args...),
		Offender: tok.Literal,
		Line:     tok.Pos.Line,
		Column:   tok.Pos.Index,
	}}
}

// Parse is the package-level entry point: tokens in, AST out.
func Parse(toks []token.Token) (*ast.Program, error) {
	return New(toks).ParseProgram()
}

// ---------------------------------------------------------------------
// Program structure

// ParseProgram parses `MainClass ClassDecl*` (spec.md §4.2).
func (p *Parser) ParseProgram() (*ast.Program, error) {
	main, err := p.parseMainClass()
	if err != nil {
		return nil, err
	}
	prog := &ast.Program{Main: main}
	for !p.at(token.EOF) {
		cd, err := p.parseClassDecl()
		if err != nil {
			return nil, err
		}
		prog.Classes = append(prog.Classes, cd)
	}
	return prog, nil
}

func (p *Parser) parseMainClass() (*ast.MainClass, error) {
	start := p.peek().Pos
	if _, err := p.expect(token.CLASS); err != nil {
		return nil, err
	}
	name, err := p.expect(token.CLASSNAME)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.VOID); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.MAIN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseFormalList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	locals, stmts, err := p.parseLocalsAndStmts()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.MainClass{Name: name.Literal, Params: params, Locals: locals, Stmts: stmts, Pos: start}, nil
}

func (p *Parser) parseClassDecl() (*ast.ClassDecl, error) {
	start := p.peek().Pos
	if _, err := p.expect(token.CLASS); err != nil {
		return nil, err
	}
	name, err := p.expect(token.CLASSNAME)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	cd := &ast.ClassDecl{Name: name.Literal, Pos: start}
	for !p.at(token.RBRACE) {
		if !p.isTypeStart() {
			return nil, p.errorf(p.peek(), "expected a field or method declaration, found %s", p.peek().Kind)
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		memberName, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if p.at(token.SEMI) {
			p.advance()
			cd.Fields = append(cd.Fields, ast.VarDecl{Name: memberName.Literal, Type: ty, Pos: memberName.Pos})
			continue
		}
		md, err := p.parseMethodTail(ty, memberName)
		if err != nil {
			return nil, err
		}
		cd.Methods = append(cd.Methods, md)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return cd, nil
}

// parseMethodTail parses the remainder of a method declaration after its
// return type and name have already been consumed by the caller, which
// needed that lookahead to distinguish a field from a method.
func (p *Parser) parseMethodTail(ret ast.Type, name token.Token) (*ast.MethodDecl, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseFormalList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	locals, stmts, err := p.parseLocalsAndStmts()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.MethodDecl{
		Name: name.Literal, Params: params, ReturnType: ret,
		Locals: locals, Stmts: stmts, Pos: name.Pos,
	}, nil
}

func (p *Parser) isTypeStart() bool {
	switch p.peek().Kind {
	case token.INT, token.BOOL, token.STRING, token.VOID, token.CLASSNAME:
		return true
	}
	return false
}

func (p *Parser) parseType() (ast.Type, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.INT:
		p.advance()
		return ast.Int, nil
	case token.BOOL:
		p.advance()
		return ast.Bool, nil
	case token.STRING:
		p.advance()
		return ast.String, nil
	case token.VOID:
		p.advance()
		return ast.Void, nil
	case token.CLASSNAME:
		p.advance()
		return ast.Object(tok.Literal), nil
	default:
		return ast.Invalid, p.errorf(tok, "expected a type, found %s", tok.Kind)
	}
}

func (p *Parser) parseFormalList() ([]ast.Param, error) {
	var params []ast.Param
	if !p.isTypeStart() {
		return params, nil
	}
	for {
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name.Literal, Type: ty})
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	return params, nil
}

// parseLocalsAndStmts parses `VarDecl* Stmt+` (spec.md §4.2): a VarDecl is
// distinguished from the first statement by trying it at a checkpoint and
// falling back if what follows the type is not `id ;`.
func (p *Parser) parseLocalsAndStmts() ([]ast.VarDecl, []ast.Statement, error) {
	var locals []ast.VarDecl
	for p.isTypeStart() {
		cp := p.mark()
		vd, err := p.tryParseVarDecl()
		if err != nil {
			p.reset(cp)
			break
		}
		locals = append(locals, vd)
	}
	var stmts []ast.Statement
	for !p.at(token.RBRACE) {
		st, err := p.parseStmt()
		if err != nil {
			return nil, nil, err
		}
		stmts = append(stmts, st)
	}
	if len(stmts) == 0 {
		return nil, nil, p.errorf(p.peek(), "a method body requires at least one statement")
	}
	return locals, stmts, nil
}

func (p *Parser) tryParseVarDecl() (ast.VarDecl, error) {
	ty, err := p.parseType()
	if err != nil {
		return ast.VarDecl{}, err
	}
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return ast.VarDecl{}, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return ast.VarDecl{}, err
	}
	return ast.VarDecl{Name: name.Literal, Type: ty, Pos: name.Pos}, nil
}

// ---------------------------------------------------------------------
// Statements

func (p *Parser) parseStmt() (ast.Statement, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.READLN:
		return p.parseReadln()
	case token.PRINTLN:
		return p.parsePrintln()
	case token.RETURN:
		return p.parseReturn()
	default:
		return p.parseAssignOrCallStmt()
	}
}

func (p *Parser) parseBlockStmts() ([]ast.Statement, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.at(token.RBRACE) {
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	p.advance() // RBRACE
	return stmts, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	start := p.advance().Pos // IF
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBlockStmts()
	if err != nil {
		return nil, err
	}
	if len(then) == 0 {
		return nil, p.errorf(p.peek(), "an if-branch requires at least one statement")
	}
	if _, err := p.expect(token.ELSE); err != nil {
		return nil, err
	}
	els, err := p.parseBlockStmts()
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, p.errorf(p.peek(), "an else-branch requires at least one statement")
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els, StmtBase: stmtAt(start)}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	start := p.advance().Pos // WHILE
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlockStmts()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, StmtBase: stmtAt(start)}, nil
}

func (p *Parser) parseReadln() (ast.Statement, error) {
	start := p.advance().Pos // READLN
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ReadlnStmt{Name: name.Literal, StmtBase: stmtAt(start)}, nil
}

func (p *Parser) parsePrintln() (ast.Statement, error) {
	start := p.advance().Pos // PRINTLN
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.PrintlnStmt{Expr: e, StmtBase: stmtAt(start)}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	start := p.advance().Pos // RETURN
	if p.at(token.SEMI) {
		p.advance()
		return &ast.ReturnStmt{StmtBase: stmtAt(start)}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: e, StmtBase: stmtAt(start)}, nil
}

// parseAssignOrCallStmt parses `id = Exp ;`, `Atom . id = Exp ;` and
// `Atom . id ( ExpList ) ;` by parsing a single Atom first (its
// continuation chain already produces FieldAccessExpr/MethodCallExpr) and
// then dispatching on what follows (spec.md §4.2).
func (p *Parser) parseAssignOrCallStmt() (ast.Statement, error) {
	start := p.peek().Pos
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.at(token.ASSIGN) {
		p.advance()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Target: atom, Expr: rhs, StmtBase: stmtAt(start)}, nil
	}
	if call, ok := atom.(*ast.MethodCallExpr); ok {
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
		return &ast.CallStmt{Call: call, StmtBase: stmtAt(start)}, nil
	}
	return nil, p.errorf(p.peek(), "expected '=' or a method call, found %s", p.peek().Kind)
}

// ---------------------------------------------------------------------
// Expressions: BExp, then AExp, then SExp, in that order (spec.md §4.2).
// AExp's operands never accept a bare StringLiteral (parseAtom rejects it),
// so a concatenation like `"a" + "b"` fails out of both BExp and AExp and
// only succeeds once SExp is tried, the same string-expression
// disambiguation `_aexp_expression`'s two-token lookahead performs in the
// original grammar.

func (p *Parser) parseExpr() (ast.Expression, error) {
	cp := p.mark()
	if e, err := p.parseBExp(); err == nil {
		return e, nil
	}
	p.reset(cp)
	if e, err := p.parseAExp(); err == nil {
		return e, nil
	}
	p.reset(cp)
	return p.parseSExp()
}

func (p *Parser) parseBExp() (ast.Expression, error) {
	left, err := p.parseConj()
	if err != nil {
		return nil, err
	}
	for p.at(token.OR) {
		p.advance()
		right, err := p.parseConj()
		if err != nil {
			return nil, err
		}
		left = &ast.BinBoolExpr{Op: ast.LOr, L: left, R: right, ExprBase: exprAt(left.Position())}
	}
	return left, nil
}

func (p *Parser) parseConj() (ast.Expression, error) {
	left, err := p.parseBgrd()
	if err != nil {
		return nil, err
	}
	for p.at(token.AND) {
		p.advance()
		right, err := p.parseBgrd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinBoolExpr{Op: ast.LAnd, L: left, R: right, ExprBase: exprAt(left.Position())}
	}
	return left, nil
}

// parseBgrd parses one non-associative relational comparison, a negation,
// a parenthesized BExp, or a boolean atom (identifier/literal/call),
// trying the relational form first since it shares a prefix with AExp.
func (p *Parser) parseBgrd() (ast.Expression, error) {
	start := p.peek().Pos

	if p.at(token.NOT) {
		p.advance()
		operand, err := p.parseBgrd()
		if err != nil {
			return nil, err
		}
		return &ast.NotExpr{Operand: operand, ExprBase: exprAt(start)}, nil
	}

	cp := p.mark()
	if rel, err := p.parseRelational(); err == nil {
		return rel, nil
	}
	p.reset(cp)

	if p.at(token.TRUE) {
		p.advance()
		return &ast.BoolLit{Value: true, ExprBase: exprAt(start)}, nil
	}
	if p.at(token.FALSE) {
		p.advance()
		return &ast.BoolLit{Value: false, ExprBase: exprAt(start)}, nil
	}
	if p.at(token.LPAREN) {
		p.advance()
		inner, err := p.parseBExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Inner: inner, ExprBase: exprAt(start)}, nil
	}
	// Fall through to a full AExp, not a bare Atom: a plain arithmetic
	// chain like `1+2` with no boolean operator anywhere in it must still
	// be consumed whole here, or the leftover `+2` would wrongly appear
	// to terminate the expression one token early.
	return p.parseAExp()
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	left, err := p.parseAExp()
	if err != nil {
		return nil, err
	}
	op, ok := relOpOf(p.peek().Kind)
	if !ok {
		return nil, p.errorf(p.peek(), "expected a relational operator, found %s", p.peek().Kind)
	}
	p.advance()
	right, err := p.parseAExp()
	if err != nil {
		return nil, err
	}
	return &ast.BinRelExpr{Op: op, L: left, R: right, ExprBase: exprAt(left.Position())}, nil
}

func relOpOf(k token.Kind) (ast.BinRelOp, bool) {
	switch k {
	case token.LT:
		return ast.Lt, true
	case token.GT:
		return ast.Gt, true
	case token.LE:
		return ast.Le, true
	case token.GE:
		return ast.Ge, true
	case token.EQ:
		return ast.Eq, true
	case token.NEQ:
		return ast.Neq, true
	default:
		return "", false
	}
}

func (p *Parser) parseAExp() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := ast.Add
		if p.peek().Kind == token.MINUS {
			op = ast.Sub
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.BinArithExpr{Op: op, L: left, R: right, ExprBase: exprAt(left.Position())}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseUnaryArith()
	if err != nil {
		return nil, err
	}
	for p.at(token.STAR) || p.at(token.SLASH) {
		op := ast.Mul
		if p.peek().Kind == token.SLASH {
			op = ast.Div
		}
		p.advance()
		right, err := p.parseUnaryArith()
		if err != nil {
			return nil, err
		}
		left = &ast.BinArithExpr{Op: op, L: left, R: right, ExprBase: exprAt(left.Position())}
	}
	return left, nil
}

func (p *Parser) parseUnaryArith() (ast.Expression, error) {
	if p.at(token.MINUS) {
		start := p.advance().Pos
		operand, err := p.parseUnaryArith()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryMinusExpr{Operand: operand, ExprBase: exprAt(start)}, nil
	}
	if p.at(token.LPAREN) {
		start := p.peek().Pos
		p.advance()
		inner, err := p.parseAExp()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Inner: inner, ExprBase: exprAt(start)}, nil
	}
	return p.parseAtom()
}

// parseSExp is AExp's grammar restricted to "+" only, tried as a last
// resort when neither BExp nor AExp accepted the input.
func (p *Parser) parseSExp() (ast.Expression, error) {
	left, err := p.parseSExpAtom()
	if err != nil {
		return nil, err
	}
	for p.at(token.PLUS) {
		p.advance()
		right, err := p.parseSExpAtom()
		if err != nil {
			return nil, err
		}
		left = &ast.BinArithExpr{Op: ast.Add, L: left, R: right, ExprBase: exprAt(left.Position())}
	}
	return left, nil
}

// parseSExpAtom is SExp's own leaf rule: a StringLiteral directly, or else
// whatever parseAtom accepts — mirroring `_sexp_expression`'s
// "STRING_LITERAL, else fall back to atom_expression" structure, since
// parseAtom itself no longer accepts a bare StringLiteral.
func (p *Parser) parseSExpAtom() (ast.Expression, error) {
	if p.at(token.STRINGLIT) {
		tok := p.advance()
		return &ast.StringLit{Value: tok.Literal, ExprBase: exprAt(tok.Pos)}, nil
	}
	return p.parseAtom()
}

// parseAtom parses `this | null | true | false | id | IntegerLiteral |
// new cname() | ( Exp )` followed by zero or more `.id` / `.id(ExpList)`
// continuations (spec.md §4.2). A bare StringLiteral is deliberately NOT an
// Atom here: the original grammar's `_atom_expression` never accepts
// STRING_LITERAL either, so a string literal can only appear where SExp's
// own leaf rule (parseSExpAtom above) looks for one directly — never as an
// AExp/BExp operand. Without this split, `1 - "x"` would parse as a valid
// AExp and only fail at type-check time instead of being rejected at parse
// time the way the original's `_aexp_expression` two-token lookahead does.
func (p *Parser) parseAtom() (ast.Expression, error) {
	tok := p.peek()
	var base ast.Expression

	switch tok.Kind {
	case token.THIS:
		p.advance()
		base = &ast.ThisExpr{ExprBase: exprAt(tok.Pos)}
	case token.NULL:
		p.advance()
		base = &ast.NullLit{ExprBase: exprAt(tok.Pos)}
	case token.TRUE:
		p.advance()
		base = &ast.BoolLit{Value: true, ExprBase: exprAt(tok.Pos)}
	case token.FALSE:
		p.advance()
		base = &ast.BoolLit{Value: false, ExprBase: exprAt(tok.Pos)}
	case token.INTEGER:
		p.advance()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf(tok, "malformed integer literal %q", tok.Literal)
		}
		base = &ast.IntLit{Value: v, ExprBase: exprAt(tok.Pos)}
	case token.IDENTIFIER:
		p.advance()
		base = &ast.Identifier{Name: tok.Literal, ExprBase: exprAt(tok.Pos)}
	case token.NEW:
		p.advance()
		cname, err := p.expect(token.CLASSNAME)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		base = &ast.NewObjectExpr{ClassName: cname.Literal, ExprBase: exprAt(tok.Pos)}
	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		base = &ast.ParenExpr{Inner: inner, ExprBase: exprAt(tok.Pos)}
	default:
		return nil, p.errorf(tok, "expected an expression, found %s", tok.Kind)
	}

	for p.at(token.DOT) {
		p.advance()
		member, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if p.at(token.LPAREN) {
			p.advance()
			args, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			base = &ast.MethodCallExpr{Atom: base, Method: member.Literal, Args: args, ExprBase: exprAt(base.Position())}
			continue
		}
		base = &ast.FieldAccessExpr{Atom: base, Field: member.Literal, ExprBase: exprAt(base.Position())}
	}
	return base, nil
}

func (p *Parser) parseExprList() ([]ast.Expression, error) {
	var args []ast.Expression
	if p.at(token.RPAREN) {
		return args, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.at(token.COMMA) {
			break
		}
		p.advance()
	}
	return args, nil
}
