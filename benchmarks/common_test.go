// Package benchmarks compares treeflow's lazy traversals against eager
// level-by-level flattening built on popular Go collection and stream
// libraries.
package benchmarks

import "context"

var ctx = context.Background()

// Tree shapes
const (
	FanOut = 4

	SmallDepth  = 4 // 85 nodes
	MediumDepth = 6 // 1365 nodes
	LargeDepth  = 8 // 21845 nodes
)

// tree numbers a complete tree of the given depth: node n has the children
// n*FanOut+1 .. n*FanOut+FanOut.
type tree struct {
	size int
}

func newTree(depth int) tree {
	size, width := 0, 1
	for range depth {
		size += width
		width *= FanOut
	}
	return tree{size: size}
}

func (t tree) children(n int) []int {
	first := n*FanOut + 1
	if first >= t.size {
		return nil
	}
	out := make([]int, FanOut)
	for i := range out {
		out[i] = first + i
	}
	return out
}

// isLeafEven is a cheap per-node predicate so pipelines have work to do.
func isLeafEven(n int) bool {
	return n%2 == 0
}
