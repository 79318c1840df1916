// Package cfg builds the control-flow graph of an IR3 method and applies
// the two intra-procedural optimizations of spec.md §4.5: intra-block
// constant propagation into `Println` operands, and algebraic-identity
// simplification of `Int`-typed arithmetic. Block partitioning and edge
// derivation are grounded on the basic-block/successor-list shape of
// gmofishsauce/wut4's lang/ypeep line-kind classification, generalized
// from a flat peephole window to a block graph with successor lists.
package cfg

import "github.com/tserg/jlitec/internal/ir3"

// Line is one instruction together with its position in the method
// (global, 1-based) and within its block (local, 1-based), per spec.md
// §4.5 Step 1.
type Line struct {
	Instr    ir3.Instr
	GlobalNo int
	LocalNo  int
}

// Block is a maximal run of instructions with a single entry and exit
// (spec.md §4.5 Step 2).
type Block struct {
	ID    int
	Lines []Line
	// Succs holds successor block IDs in the order spec.md §4.5 Step 3
	// prescribes: for an IfGoto, the branch target first, then the
	// fall-through.
	Succs []int
}

// CFG is the whole method's basic-block graph.
type CFG struct {
	Method       *ir3.Method
	Blocks       []*Block
	LabelBlock   map[string]int // label name -> block ID
	DeclaredVars map[string]bool
}

// Build partitions a method's instruction stream into basic blocks and
// derives successor edges (spec.md §4.5 Steps 1-3).
func Build(m *ir3.Method) *CFG {
	g := &CFG{
		Method:       m,
		LabelBlock:   make(map[string]int),
		DeclaredVars: make(map[string]bool),
	}
	for _, vd := range m.VarDecls {
		g.DeclaredVars[vd.Name] = true
	}

	code := m.Code
	if len(code) == 0 {
		return g
	}

	boundaries := map[int]bool{0: true}
	for i := 1; i < len(code); i++ {
		switch code[i-1].(type) {
		case ir3.GotoInstr, ir3.IfGotoInstr:
			boundaries[i] = true
		}
		if _, ok := code[i].(ir3.LabelInstr); ok {
			boundaries[i] = true
		}
	}

	var starts []int
	for i := range code {
		if boundaries[i] {
			starts = append(starts, i)
		}
	}

	globalNo := 1
	for bi, start := range starts {
		end := len(code)
		if bi+1 < len(starts) {
			end = starts[bi+1]
		}
		blk := &Block{ID: bi}
		for local, idx := 1, start; idx < end; local, idx = local+1, idx+1 {
			blk.Lines = append(blk.Lines, Line{Instr: code[idx], GlobalNo: globalNo, LocalNo: local})
			globalNo++
		}
		if lbl, ok := code[start].(ir3.LabelInstr); ok {
			g.LabelBlock[lbl.Name] = bi
		}
		g.Blocks = append(g.Blocks, blk)
	}

	for bi, blk := range g.Blocks {
		if len(blk.Lines) == 0 {
			continue
		}
		last := blk.Lines[len(blk.Lines)-1].Instr
		next := -1
		if bi+1 < len(g.Blocks) {
			next = bi + 1
		}
		switch instr := last.(type) {
		case ir3.IfGotoInstr:
			if target, ok := g.LabelBlock[instr.Target]; ok {
				blk.Succs = append(blk.Succs, target)
			}
			if next >= 0 {
				blk.Succs = append(blk.Succs, next)
			}
		case ir3.GotoInstr:
			if target, ok := g.LabelBlock[instr.Target]; ok {
				blk.Succs = append(blk.Succs, target)
			}
		default:
			if next >= 0 {
				blk.Succs = append(blk.Succs, next)
			}
		}
	}

	return g
}

// Flatten rebuilds a linear instruction list from the graph's blocks, in
// block order — the inverse of Build, used after a rewrite pass.
func (g *CFG) Flatten() []ir3.Instr {
	var out []ir3.Instr
	for _, blk := range g.Blocks {
		for _, line := range blk.Lines {
			out = append(out, line.Instr)
		}
	}
	return out
}
