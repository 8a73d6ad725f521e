package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
	"github.com/xkilldash9x/climarisk-cli/internal/riskgraph"
)

func testRisks(ids ...int) []schemas.Risk {
	risks := make([]schemas.Risk, 0, len(ids))
	for _, id := range ids {
		risks = append(risks, schemas.Risk{ID: id, Description: "risk", Likelihood: 0.5, Impact: 0.5})
	}
	return risks
}

func edge(a, b int, w float64) schemas.RiskInteraction {
	return schemas.RiskInteraction{
		Risk1ID: a,
		Risk2ID: b,
		Score:   w,
		Type:    schemas.ClassifyInteraction(w),
	}
}

func buildGraph(t *testing.T, risks []schemas.Risk, interactions []schemas.RiskInteraction) *riskgraph.Graph {
	t.Helper()
	g, err := riskgraph.Build(risks, interactions)
	require.NoError(t, err)
	return g
}

// fixtureGraph is the reference network shared across the analytics tests:
// four risks, five scored interactions, no 1-4 edge. Nodes 2 and 3 each touch
// three neighbors, nodes 1 and 4 two.
func fixtureGraph(t *testing.T) *riskgraph.Graph {
	t.Helper()
	return buildGraph(t, testRisks(1, 2, 3, 4), []schemas.RiskInteraction{
		edge(1, 2, 0.7),
		edge(1, 3, 0.4),
		edge(2, 3, 0.6),
		edge(2, 4, 0.8),
		edge(3, 4, 0.5),
	})
}

// starGraph links a hub to every leaf with uniform weight.
func starGraph(t *testing.T, hub int, leaves []int, w float64) *riskgraph.Graph {
	t.Helper()
	ids := append([]int{hub}, leaves...)
	interactions := make([]schemas.RiskInteraction, 0, len(leaves))
	for _, leaf := range leaves {
		interactions = append(interactions, edge(hub, leaf, w))
	}
	return buildGraph(t, testRisks(ids...), interactions)
}
