package analytics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/xkilldash9x/climarisk-cli/internal/riskgraph"
)

const kmeansIterMax = 300

// Clusters partitions the graph's nodes into k groups by running k-means over
// the rows of the dense weighted adjacency matrix. Nodes with similar
// connectivity patterns land in the same cluster. The rng seed makes the
// outcome reproducible: a fixed seed and a fixed graph always yield the same
// assignment.
func Clusters(g *riskgraph.Graph, k int, seed int64) (map[int]int, error) {
	nodes := g.Nodes()
	n := len(nodes)
	if k < 1 {
		return nil, &ConvergenceError{Measure: "k-means clustering", Reason: fmt.Sprintf("cluster count must be >= 1, got %d", k)}
	}
	if k > n {
		return nil, &ConvergenceError{Measure: "k-means clustering", Reason: fmt.Sprintf("cluster count %d exceeds node count %d", k, n)}
	}

	rows := g.AdjacencyMatrix()
	rng := rand.New(rand.NewSource(seed))
	labels := kmeans(rows, k, rng)

	out := make(map[int]int, n)
	for i, id := range nodes {
		out[id] = labels[i]
	}
	return out, nil
}

// kmeans is a plain Lloyd's algorithm with k-means++ seeding. rows is the
// point set, one point per matrix row.
func kmeans(rows [][]float64, k int, rng *rand.Rand) []int {
	n := len(rows)
	centroids := seedCentroids(rows, k, rng)
	labels := make([]int, n)

	for iter := 0; iter < kmeansIterMax; iter++ {
		changed := false

		// Assignment step.
		for i, row := range rows {
			best, bestDist := 0, math.Inf(1)
			for c, centroid := range centroids {
				if d := sqDist(row, centroid); d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}

		// Update step.
		dim := len(rows[0])
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, row := range rows {
			c := labels[i]
			counts[c]++
			for j, v := range row {
				sums[c][j] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// An emptied cluster gets re-seeded on the point
				// farthest from its centroid, keeping k partitions.
				centroids[c] = append([]float64(nil), rows[farthestPoint(rows, centroids, labels)]...)
				changed = true
				continue
			}
			for j := range centroids[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}

		if !changed && iter > 0 {
			break
		}
	}
	return labels
}

// seedCentroids picks initial centroids with k-means++: the first uniformly,
// the rest proportional to squared distance from the nearest chosen centroid.
func seedCentroids(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	first := rng.Intn(len(rows))
	centroids = append(centroids, append([]float64(nil), rows[first]...))

	for len(centroids) < k {
		dists := make([]float64, len(rows))
		var total float64
		for i, row := range rows {
			d := math.Inf(1)
			for _, c := range centroids {
				if sd := sqDist(row, c); sd < d {
					d = sd
				}
			}
			dists[i] = d
			total += d
		}

		var pick int
		if total == 0 {
			// All remaining points coincide with a centroid; any choice
			// is equivalent, take a seeded-uniform one.
			pick = rng.Intn(len(rows))
		} else {
			target := rng.Float64() * total
			var acc float64
			for i, d := range dists {
				acc += d
				if acc >= target {
					pick = i
					break
				}
			}
		}
		centroids = append(centroids, append([]float64(nil), rows[pick]...))
	}
	return centroids
}

func farthestPoint(rows [][]float64, centroids [][]float64, labels []int) int {
	best, bestDist := 0, -1.0
	for i, row := range rows {
		if d := sqDist(row, centroids[labels[i]]); d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
