// Package riskgraph holds the immutable weighted, undirected graph of risks
// and their scored interactions. The graph is built exactly once per analysis
// run; every downstream analyzer reads it, none mutate it.
package riskgraph

import (
	"fmt"
	"sort"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

// IntegrityError reports an input that would silently corrupt the graph
// representation: an interaction referencing an unknown risk, a self-pair, or
// a duplicate unordered pair (ambiguous which score wins).
type IntegrityError struct {
	Risk1ID int
	Risk2ID int
	Reason  string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("graph integrity violation for pair (%d, %d): %s", e.Risk1ID, e.Risk2ID, e.Reason)
}

// Graph is the risk-interaction network. Construction validates the inputs;
// afterwards the structure is read-only and safe for concurrent readers.
type Graph struct {
	risks map[int]schemas.Risk
	adj   map[int]map[int]float64
	types map[string]schemas.InteractionType
	ids   []int // node ids, ascending
	edges int
}

// Build constructs the graph from a risk set and an interaction set. One node
// per risk carrying the full Risk record, one undirected edge per interaction
// with the interaction score as its weight.
func Build(risks []schemas.Risk, interactions []schemas.RiskInteraction) (*Graph, error) {
	g := &Graph{
		risks: make(map[int]schemas.Risk, len(risks)),
		adj:   make(map[int]map[int]float64, len(risks)),
		types: make(map[string]schemas.InteractionType, len(interactions)),
	}

	for _, r := range risks {
		if _, dup := g.risks[r.ID]; dup {
			return nil, &IntegrityError{Risk1ID: r.ID, Risk2ID: r.ID, Reason: "duplicate risk id in risk set"}
		}
		g.risks[r.ID] = r
		g.adj[r.ID] = make(map[int]float64)
		g.ids = append(g.ids, r.ID)
	}
	sort.Ints(g.ids)

	for _, in := range interactions {
		if in.Risk1ID == in.Risk2ID {
			return nil, &IntegrityError{Risk1ID: in.Risk1ID, Risk2ID: in.Risk2ID, Reason: "self-interaction is not allowed"}
		}
		if _, ok := g.risks[in.Risk1ID]; !ok {
			return nil, &IntegrityError{Risk1ID: in.Risk1ID, Risk2ID: in.Risk2ID, Reason: "risk1 id not present in risk set"}
		}
		if _, ok := g.risks[in.Risk2ID]; !ok {
			return nil, &IntegrityError{Risk1ID: in.Risk1ID, Risk2ID: in.Risk2ID, Reason: "risk2 id not present in risk set"}
		}
		key := in.PairKey()
		if _, dup := g.types[key]; dup {
			return nil, &IntegrityError{Risk1ID: in.Risk1ID, Risk2ID: in.Risk2ID, Reason: "duplicate unordered pair"}
		}
		g.types[key] = in.Type
		g.adj[in.Risk1ID][in.Risk2ID] = in.Score
		g.adj[in.Risk2ID][in.Risk1ID] = in.Score
		g.edges++
	}

	return g, nil
}

// NodeCount returns the number of risks in the graph.
func (g *Graph) NodeCount() int { return len(g.ids) }

// EdgeCount returns the number of scored interactions in the graph.
func (g *Graph) EdgeCount() int { return g.edges }

// Nodes returns the node ids in ascending order. The slice is a copy.
func (g *Graph) Nodes() []int {
	out := make([]int, len(g.ids))
	copy(out, g.ids)
	return out
}

// HasNode reports whether the given risk id is a node of the graph.
func (g *Graph) HasNode(id int) bool {
	_, ok := g.risks[id]
	return ok
}

// Risk returns the full risk record attached to a node.
func (g *Graph) Risk(id int) (schemas.Risk, bool) {
	r, ok := g.risks[id]
	return r, ok
}

// Neighbors returns the ids adjacent to the given node, ascending.
func (g *Graph) Neighbors(id int) []int {
	nbrs := g.adj[id]
	out := make([]int, 0, len(nbrs))
	for n := range nbrs {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Weight returns the interaction score on the edge between a and b. Lookups
// are symmetric: Weight(a, b) == Weight(b, a).
func (g *Graph) Weight(a, b int) (float64, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

// EdgeType returns the strength band of the edge between a and b.
func (g *Graph) EdgeType(a, b int) (schemas.InteractionType, bool) {
	t, ok := g.types[schemas.RiskInteraction{Risk1ID: a, Risk2ID: b}.PairKey()]
	return t, ok
}

// Degree returns the number of edges incident to the given node.
func (g *Graph) Degree(id int) int { return len(g.adj[id]) }

// Index returns a mapping from node id to its row position in the ordering
// used by Nodes and AdjacencyMatrix.
func (g *Graph) Index() map[int]int {
	idx := make(map[int]int, len(g.ids))
	for i, id := range g.ids {
		idx[id] = i
	}
	return idx
}

// AdjacencyMatrix returns the dense weighted adjacency matrix with rows and
// columns in Nodes order. Absent edges and the diagonal are 0.
func (g *Graph) AdjacencyMatrix() [][]float64 {
	n := len(g.ids)
	m := make([][]float64, n)
	for i, a := range g.ids {
		m[i] = make([]float64, n)
		for j, b := range g.ids {
			if w, ok := g.adj[a][b]; ok {
				m[i][j] = w
			}
		}
	}
	return m
}

// Connected reports whether every node is reachable from every other node.
// The empty graph is trivially connected.
func (g *Graph) Connected() bool {
	if len(g.ids) <= 1 {
		return true
	}
	visited := make(map[int]bool, len(g.ids))
	queue := []int{g.ids[0]}
	visited[g.ids[0]] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for n := range g.adj[cur] {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(visited) == len(g.ids)
}
