// Package jlitec wires the pipeline stages together: lex → parse →
// typecheck → lower → optimize, mirroring the original compile.py
// driver's order (SPEC_FULL.md §5 item 7). This is the library entry
// point cmd/jlitec calls; every stage it drives is independently usable
// without going through here (§5: no process boundary required).
package jlitec

import (
	"github.com/tserg/jlitec/internal/ast"
	"github.com/tserg/jlitec/internal/cfg"
	"github.com/tserg/jlitec/internal/ir3"
	"github.com/tserg/jlitec/internal/lexer"
	"github.com/tserg/jlitec/internal/parser"
	"github.com/tserg/jlitec/internal/typecheck"
)

// Options tunes the one flag the spec names (§4.5 Step 4). The
// intermediate AST is always returned in Result; no option controls it.
type Options struct {
	ConstProp bool
}

// Result carries every intermediate form a caller might want to print
// (cmd/jlitec's --print-ast/--print-cfg options, SPEC_FULL.md §5 item 7).
type Result struct {
	AST  *ast.Program
	IR3  *ir3.Program
	CFGs []*cfg.CFG // one per method, in Program.Methods order
}

// Compile runs the full pipeline over source bytes and returns every
// stage's output. It returns the first diagnostic raised by lex, parse
// or typecheck (spec.md §7: stop at the first error, no recovery);
// internal invariant violations panic instead, per internal/diag.
func Compile(src []byte, opts Options) (*Result, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}

	classes, err := typecheck.Check(prog)
	if err != nil {
		return nil, err
	}

	lowered := ir3.Lower(prog, classes)

	opt := &cfg.Optimizer{ConstProp: opts.ConstProp}
	optimizedMethods := make([]*ir3.Method, len(lowered.Methods))
	graphs := make([]*cfg.CFG, len(lowered.Methods))
	for i, m := range lowered.Methods {
		om, g := opt.Optimize(m)
		optimizedMethods[i] = om
		graphs[i] = g
	}
	lowered.Methods = optimizedMethods

	return &Result{AST: prog, IR3: lowered, CFGs: graphs}, nil
}
