package cfg

import (
	"fmt"
	"strings"
)

// Print renders the graph as a block-numbered listing with successor
// edges, for the `--print-cfg` CLI option (SPEC_FULL.md §5 item 7).
func (g *CFG) Print() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.%s:\n", g.Method.Class, g.Method.Name)
	for _, blk := range g.Blocks {
		fmt.Fprintf(&b, "  block %d -> %v\n", blk.ID, blk.Succs)
		for _, line := range blk.Lines {
			fmt.Fprintf(&b, "    [%d:%d] %s\n", line.GlobalNo, line.LocalNo, line.Instr.String())
		}
	}
	return b.String()
}
