package analytics

import (
	"github.com/xkilldash9x/climarisk-cli/internal/riskgraph"
)

// FeedbackLoops returns every simple cycle of length strictly greater than 2
// in the undirected graph. Two-node back-and-forth edges are not feedback
// loops. Each cycle is reported exactly once, in a canonical orientation:
// it starts at its smallest node id and its second node id is smaller than
// its last, which rules out rotations and reflections of the same cycle.
func FeedbackLoops(g *riskgraph.Graph) [][]int {
	var loops [][]int
	for _, start := range g.Nodes() {
		path := []int{start}
		onPath := map[int]bool{start: true}
		loops = appendCycles(g, start, start, path, onPath, loops)
	}
	return loops
}

// appendCycles extends the current simple path by one node and records any
// cycle that closes back on the start. Only nodes greater than the start are
// eligible, so each cycle is discovered from its minimal node only.
func appendCycles(g *riskgraph.Graph, start, current int, path []int, onPath map[int]bool, loops [][]int) [][]int {
	for _, nbr := range g.Neighbors(current) {
		if nbr == start {
			// Closing edge. Needs at least 3 nodes on the path, and the
			// canonical direction check deduplicates the reverse walk.
			if len(path) > 2 && path[1] < path[len(path)-1] {
				loops = append(loops, append([]int(nil), path...))
			}
			continue
		}
		if nbr < start || onPath[nbr] {
			continue
		}
		onPath[nbr] = true
		loops = appendCycles(g, start, nbr, append(path, nbr), onPath, loops)
		delete(onPath, nbr)
	}
	return loops
}
