// Package diag is the structured diagnostic sink every compiler stage
// reports through, replacing the scattered stdout/stderr writes of the
// original implementation with values a caller can inspect or redirect.
package diag

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category classifies where a Diagnostic came from, per the error table of
// the specification (lexical, parse, type; internal errors panic instead).
type Category string

const (
	Lexical Category = "lexical"
	Parse   Category = "parse"
	Type    Category = "type"
)

// Stage names the pipeline stage that raised a Diagnostic.
type Stage string

const (
	StageLex       Stage = "lex"
	StageParse     Stage = "parse"
	StageTypecheck Stage = "typecheck"
	StageLower     Stage = "lower"
	StageCFG       Stage = "cfg"
)

// Diagnostic is one fatal, user-visible compiler error. The pipeline stops
// at the first one raised; there is no error recovery (spec.md §7).
type Diagnostic struct {
	Stage    Stage
	Category Category
	Message  string
	Offender string // offending lexeme or identifier text
	Line     int
	Column   int
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s error: %s", "", d.Line, d.Column, d.Category, d.Message)
	if d.Offender != "" {
		fmt.Fprintf(&b, " (near %q)", d.Offender)
	}
	return b.String()
}

// Bag accumulates diagnostics for one compilation unit. The core only ever
// stops at the first diagnostic raised (no recovery), but Bag can hold more
// than one so that a caller driving the pipeline manually can print what it
// collected so far.
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic and returns it so callers can both collect and
// propagate it as an error in one expression.
func (b *Bag) Add(d Diagnostic) Diagnostic {
	b.items = append(b.items, d)
	return d
}

// First returns the first diagnostic added, or nil if the bag is empty.
func (b *Bag) First() *Diagnostic {
	if len(b.items) == 0 {
		return nil
	}
	return &b.items[0]
}

// Empty reports whether the bag holds no diagnostics.
func (b *Bag) Empty() bool { return len(b.items) == 0 }

// All returns every diagnostic collected, in the order they were added.
func (b *Bag) All() []Diagnostic { return b.items }

func (b *Bag) Error() string {
	if b.Empty() {
		return "<empty diagnostic bag>"
	}
	return b.First().Error()
}

// InternalError is raised by panic when a stage's own invariant is violated
// (§7, category "Internal" — not recoverable, intentionally loud). RunID
// correlates one panic with the rest of a single compilation's output, the
// way a server tags a crash report with its request ID.
type InternalError struct {
	RunID   string
	Stage   Stage
	Message string
}

func (e InternalError) Error() string {
	return fmt.Sprintf("internal error [run %s] during %s: %s", e.RunID, e.Stage, e.Message)
}

// Internal panics with an InternalError tagged with a fresh run ID. Callers
// use this for invariants that should never fail given a type-checked AST
// or a well-formed IR3 program — e.g. a lowering pass meeting an
// identifier that resolves to neither a local nor a field.
func Internal(stage Stage, format string, args ...interface{}) {
	panic(InternalError{
		RunID:   uuid.NewString(),
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}
