package analytics

import (
	"fmt"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
	"github.com/xkilldash9x/climarisk-cli/internal/riskgraph"
)

// SimulateCascade propagates activation from the seed risks through the
// weighted network over discrete steps.
//
// Seeds start at activation 1.0 at step 0. At each step, every untracked node
// sums its neighbors' last activation times the connecting edge weight; when
// that influence strictly exceeds the threshold the node becomes tracked,
// backfilled with zeros for the steps it missed. Every tracked timeline then
// appends (holds) its last value. The simulation halts on the first step that
// activates nothing new, or after maxSteps, whichever comes first.
//
// An activated node's value is intentionally held constant for all future
// steps rather than re-evaluated, so activation never decays even if the
// neighbors' influence later would. All tracked timelines share the same
// length: productive steps + 1.
func SimulateCascade(g *riskgraph.Graph, seeds []int, threshold float64, maxSteps int) (schemas.CascadeResult, error) {
	if len(seeds) == 0 {
		return schemas.CascadeResult{}, fmt.Errorf("cascade simulation requires at least one seed risk")
	}
	timelines := make(map[int]schemas.Timeline, len(seeds))
	for _, s := range seeds {
		if !g.HasNode(s) {
			return schemas.CascadeResult{}, fmt.Errorf("seed risk %d is not a node of the graph", s)
		}
		timelines[s] = schemas.Timeline{1.0}
	}

	steps := 0
	for step := 0; step < maxSteps; step++ {
		newActivations := make(map[int]float64)
		for _, node := range g.Nodes() {
			if _, tracked := timelines[node]; tracked {
				continue
			}
			var influence float64
			for _, nbr := range g.Neighbors(node) {
				w, _ := g.Weight(node, nbr)
				influence += timelines[nbr].Last() * w
			}
			if influence > threshold {
				newActivations[node] = influence
			}
		}

		if len(newActivations) == 0 {
			break // Stable state: nothing new crossed the threshold.
		}

		// Backfill latecomers with zeros so their timeline aligns with
		// the already-tracked ones before this step's append.
		aligned := steps + 1
		for node, activation := range newActivations {
			tl := make(schemas.Timeline, aligned-1, aligned+1)
			timelines[node] = append(tl, activation)
		}
		for node := range timelines {
			timelines[node] = append(timelines[node], timelines[node].Last())
		}
		steps++
	}

	return schemas.CascadeResult{Steps: steps, Timelines: timelines}, nil
}
