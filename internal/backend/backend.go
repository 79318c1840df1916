// Package backend declares the seam a downstream assembly back end would
// fill in. Emitting machine code and peephole-optimizing it are
// explicitly out of scope for this module (spec.md §1) — this package
// exists only so the shape of that seam is visible, grounded on
// gmofishsauce/wut4's assembler/peephole pair (lang/yasm's
// instruction/operand value types, lang/ypeep's line-kind
// classification and address map) without pulling in anything specific
// to the wut4 instruction set.
package backend

import "github.com/tserg/jlitec/internal/cfg"

// Instruction is one target-machine instruction a future Emitter would
// produce from a CFG's IR3 instructions. It is intentionally opaque:
// Mnemonic and Operands carry whatever shape a real target needs,
// mirroring the untyped `Op string; Args []string` pair lang/ypeep.Line
// uses for its assembly source lines.
type Instruction struct {
	Mnemonic string
	Operands []string
}

// Emitter turns an optimized CFG into a linear sequence of target
// instructions, one method at a time. No implementation is provided:
// wiring a concrete Emitter (e.g. the wut4 ISA, or any other target) is
// the explicit non-goal of spec.md §1.
type Emitter interface {
	EmitMethod(g *cfg.CFG) ([]Instruction, error)
}

// PeepholeOptimizer rewrites a flat instruction stream in place,
// returning the instructions it deleted (as a count, the way
// lang/ypeep's sentinel-deletion pass reports how many LineDeleted
// lines it produced) rather than a boolean, so a caller can report how
// much it shrank the stream.
type PeepholeOptimizer interface {
	Optimize(instrs []Instruction) (kept []Instruction, deleted int)
}
