package analytics

import (
	"math"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
	"github.com/xkilldash9x/climarisk-cli/internal/riskgraph"
)

// Resilience computes the aggregate structural statistics of the network:
// average clustering coefficient, weighted average shortest path length,
// density and degree assortativity. Metrics that are undefined for the given
// topology are flagged as such instead of surfacing Inf or NaN as a score;
// risk networks are not guaranteed connected once sparse interaction sets are
// in play, and that must not read as an error.
func Resilience(g *riskgraph.Graph) schemas.ResilienceMetrics {
	m := schemas.ResilienceMetrics{
		AverageClustering: averageClustering(g),
		Density:           density(g),
	}

	if path, ok := averageShortestPath(g); ok {
		m.AverageShortestPath = path
		m.PathLengthDefined = true
	} else {
		m.AverageShortestPath = math.Inf(1)
	}

	if r, ok := degreeAssortativity(g); ok {
		m.Assortativity = r
		m.AssortativityDefined = true
	}
	return m
}

// averageClustering is the mean of the local clustering coefficients: for
// each node, the fraction of its neighbor pairs that are themselves linked.
// Nodes with fewer than two neighbors contribute zero.
func averageClustering(g *riskgraph.Graph) float64 {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return 0
	}
	var total float64
	for _, id := range nodes {
		nbrs := g.Neighbors(id)
		k := len(nbrs)
		if k < 2 {
			continue
		}
		links := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if _, ok := g.Weight(nbrs[i], nbrs[j]); ok {
					links++
				}
			}
		}
		total += 2.0 * float64(links) / (float64(k) * float64(k-1))
	}
	return total / float64(len(nodes))
}

// averageShortestPath computes the mean weighted shortest-path distance over
// all node pairs. Returns ok=false when the metric is undefined: fewer than
// two nodes, or a disconnected graph.
func averageShortestPath(g *riskgraph.Graph) (float64, bool) {
	nodes := g.Nodes()
	n := len(nodes)
	if n < 2 {
		return 0, false
	}

	var total float64
	for _, source := range nodes {
		dist := dijkstra(g, source)
		for _, target := range nodes {
			if target == source {
				continue
			}
			d, ok := dist[target]
			if !ok {
				return 0, false // Unreachable pair: disconnected graph.
			}
			total += d
		}
	}
	return total / float64(n*(n-1)), true
}

// dijkstra returns weighted shortest-path distances from source to every
// reachable node, edge weight as traversal cost.
func dijkstra(g *riskgraph.Graph, source int) map[int]float64 {
	dist := map[int]float64{source: 0}
	done := make(map[int]bool)
	for {
		cur, best := -1, math.Inf(1)
		for id, d := range dist {
			if !done[id] && d < best {
				cur, best = id, d
			}
		}
		if cur == -1 {
			return dist
		}
		done[cur] = true
		for _, nbr := range g.Neighbors(cur) {
			w, _ := g.Weight(cur, nbr)
			alt := dist[cur] + w
			if d, ok := dist[nbr]; !ok || alt < d {
				dist[nbr] = alt
			}
		}
	}
}

// density is the fraction of possible edges that exist: 2m / n(n-1).
func density(g *riskgraph.Graph) float64 {
	n := g.NodeCount()
	if n < 2 {
		return 0
	}
	return 2.0 * float64(g.EdgeCount()) / (float64(n) * float64(n-1))
}

// degreeAssortativity is the Pearson correlation of the degrees at either end
// of each edge. Undefined (ok=false) for graphs without edges or with a
// degree-regular edge set where the variance collapses.
func degreeAssortativity(g *riskgraph.Graph) (float64, bool) {
	var xs, ys []float64
	for _, a := range g.Nodes() {
		for _, b := range g.Neighbors(a) {
			// Each undirected edge contributes both orientations,
			// which keeps the measure symmetric.
			xs = append(xs, float64(g.Degree(a)))
			ys = append(ys, float64(g.Degree(b)))
		}
	}
	if len(xs) == 0 {
		return 0, false
	}
	return pearson(xs, ys)
}
