// Package analytics implements the read-only analyses that run over a built
// risk-interaction graph: combined centrality, k-means clustering, cascade
// simulation, feedback loop detection, resilience metrics, correlations and
// systemic trigger points. Everything here is pure and deterministic given a
// seed; the graph is never mutated.
package analytics

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/climarisk-cli/internal/riskgraph"
)

const (
	powerIterMax = 100
	powerIterTol = 1e-6

	pagerankDamping = 0.85
	pagerankIterMax = 100
	pagerankTol     = 1e-6
)

// ConvergenceError reports a numerical routine that failed to converge, or a
// precondition that makes a measure undefined. The measure name makes the
// failure attributable so callers can tell which analysis went wrong.
type ConvergenceError struct {
	Measure string
	Reason  string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Measure, e.Reason)
}

// Centrality computes the combined centrality ranking: the arithmetic mean of
// degree, weighted betweenness, weighted eigenvector and weighted PageRank
// centrality, each normalized to [0,1]. A blended score avoids over-indexing
// on a single notion of importance across star, clique and chain topologies.
func Centrality(g *riskgraph.Graph) (map[int]float64, error) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil, &ConvergenceError{Measure: "centrality", Reason: "graph has no nodes"}
	}

	degree := degreeCentrality(g)
	betweenness := betweennessCentrality(g)

	eigenvector, err := eigenvectorCentrality(g)
	if err != nil {
		return nil, err
	}
	pagerank, err := pagerankCentrality(g)
	if err != nil {
		return nil, err
	}

	combined := make(map[int]float64, len(nodes))
	for _, id := range nodes {
		combined[id] = (degree[id] + betweenness[id] + eigenvector[id] + pagerank[id]) / 4.0
	}
	return combined, nil
}

// degreeCentrality is the fraction of other nodes each node is connected to.
func degreeCentrality(g *riskgraph.Graph) map[int]float64 {
	nodes := g.Nodes()
	out := make(map[int]float64, len(nodes))
	if len(nodes) < 2 {
		for _, id := range nodes {
			out[id] = 0
		}
		return out
	}
	denom := float64(len(nodes) - 1)
	for _, id := range nodes {
		out[id] = float64(g.Degree(id)) / denom
	}
	return out
}

// betweennessCentrality runs Brandes' algorithm with Dijkstra shortest paths,
// treating edge weight as traversal cost, normalized for undirected graphs.
func betweennessCentrality(g *riskgraph.Graph) map[int]float64 {
	nodes := g.Nodes()
	n := len(nodes)
	bc := make(map[int]float64, n)
	for _, id := range nodes {
		bc[id] = 0
	}
	if n < 3 {
		return bc
	}

	for _, source := range nodes {
		dist := make(map[int]float64, n)
		sigma := make(map[int]float64, n)
		preds := make(map[int][]int, n)
		done := make(map[int]bool, n)
		for _, id := range nodes {
			dist[id] = math.Inf(1)
		}
		dist[source] = 0
		sigma[source] = 1

		var order []int // settled nodes, ascending distance
		for {
			// Linear-scan extract-min; risk networks are small enough
			// that a heap buys nothing here.
			cur, best := -1, math.Inf(1)
			for _, id := range nodes {
				if !done[id] && dist[id] < best {
					cur, best = id, dist[id]
				}
			}
			if cur == -1 {
				break
			}
			done[cur] = true
			order = append(order, cur)

			for _, nbr := range g.Neighbors(cur) {
				w, _ := g.Weight(cur, nbr)
				alt := dist[cur] + w
				if alt < dist[nbr] {
					dist[nbr] = alt
					sigma[nbr] = sigma[cur]
					preds[nbr] = []int{cur}
				} else if alt == dist[nbr] {
					sigma[nbr] += sigma[cur]
					preds[nbr] = append(preds[nbr], cur)
				}
			}
		}

		// Dependency accumulation in reverse settled order.
		delta := make(map[int]float64, len(order))
		for i := len(order) - 1; i >= 0; i-- {
			wnode := order[i]
			for _, pred := range preds[wnode] {
				delta[pred] += sigma[pred] / sigma[wnode] * (1 + delta[wnode])
			}
			if wnode != source {
				bc[wnode] += delta[wnode]
			}
		}
	}

	// Undirected normalization: each pair counted twice, scale to [0,1].
	scale := 1.0 / (float64(n-1) * float64(n-2))
	for id := range bc {
		bc[id] *= scale
	}
	return bc
}

// eigenvectorCentrality runs power iteration on the weighted adjacency.
// Isolated nodes make the principal eigenvector degenerate, so they are
// rejected up front rather than letting the iteration quietly decay to zero.
func eigenvectorCentrality(g *riskgraph.Graph) (map[int]float64, error) {
	nodes := g.Nodes()
	n := len(nodes)
	for _, id := range nodes {
		if g.Degree(id) == 0 {
			return nil, &ConvergenceError{
				Measure: "eigenvector centrality",
				Reason:  fmt.Sprintf("node %d is isolated; the adjacency matrix is reducible", id),
			}
		}
	}

	x := make(map[int]float64, n)
	for _, id := range nodes {
		x[id] = 1.0 / float64(n)
	}

	for iter := 0; iter < powerIterMax; iter++ {
		xlast := x
		x = make(map[int]float64, n)
		// x = xlast + A*xlast; the identity shift keeps bipartite
		// structures from oscillating.
		for _, id := range nodes {
			x[id] = xlast[id]
		}
		for _, id := range nodes {
			for _, nbr := range g.Neighbors(id) {
				w, _ := g.Weight(id, nbr)
				x[nbr] += xlast[id] * w
			}
		}

		var norm float64
		for _, v := range x {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return nil, &ConvergenceError{Measure: "eigenvector centrality", Reason: "zero vector during power iteration"}
		}
		var diff float64
		for _, id := range nodes {
			x[id] /= norm
			diff += math.Abs(x[id] - xlast[id])
		}
		if diff < float64(n)*powerIterTol {
			return x, nil
		}
	}
	return nil, &ConvergenceError{
		Measure: "eigenvector centrality",
		Reason:  fmt.Sprintf("power iteration did not converge within %d iterations", powerIterMax),
	}
}

// pagerankCentrality computes weighted PageRank with the standard 0.85
// damping factor. Scores sum to 1, so each lies in [0,1].
func pagerankCentrality(g *riskgraph.Graph) (map[int]float64, error) {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return map[int]float64{}, nil
	}

	// Total outgoing weight per node, for transition probabilities.
	outWeight := make(map[int]float64, n)
	for _, id := range nodes {
		var total float64
		for _, nbr := range g.Neighbors(id) {
			w, _ := g.Weight(id, nbr)
			total += w
		}
		outWeight[id] = total
	}

	rank := make(map[int]float64, n)
	for _, id := range nodes {
		rank[id] = 1.0 / float64(n)
	}

	base := (1.0 - pagerankDamping) / float64(n)
	for iter := 0; iter < pagerankIterMax; iter++ {
		next := make(map[int]float64, n)

		// Mass on nodes without outgoing weight is spread uniformly.
		var dangling float64
		for _, id := range nodes {
			if outWeight[id] == 0 {
				dangling += rank[id]
			}
		}
		danglingShare := pagerankDamping * dangling / float64(n)

		for _, id := range nodes {
			next[id] = base + danglingShare
		}
		for _, id := range nodes {
			if outWeight[id] == 0 {
				continue
			}
			share := pagerankDamping * rank[id] / outWeight[id]
			for _, nbr := range g.Neighbors(id) {
				w, _ := g.Weight(id, nbr)
				next[nbr] += share * w
			}
		}

		var diff float64
		for _, id := range nodes {
			diff += math.Abs(next[id] - rank[id])
		}
		rank = next
		if diff < float64(n)*pagerankTol {
			return rank, nil
		}
	}
	return nil, &ConvergenceError{
		Measure: "pagerank",
		Reason:  fmt.Sprintf("did not converge within %d iterations", pagerankIterMax),
	}
}
