package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

func TestCentralityScoresStayNormalized(t *testing.T) {
	g := fixtureGraph(t)

	scores, err := Centrality(g)
	require.NoError(t, err)
	require.Len(t, scores, 4)

	for id, score := range scores {
		assert.GreaterOrEqual(t, score, 0.0, "node %d", id)
		assert.LessOrEqual(t, score, 1.0, "node %d", id)
	}
}

func TestCentralityTracksDegree(t *testing.T) {
	g := fixtureGraph(t)

	scores, err := Centrality(g)
	require.NoError(t, err)

	// Nodes 2 and 3 (degree 3) must both outrank nodes 1 and 4 (degree 2);
	// the blend may order the two hubs either way.
	for _, hub := range []int{2, 3} {
		for _, periphery := range []int{1, 4} {
			assert.Greater(t, scores[hub], scores[periphery],
				"node %d (degree 3) should outrank node %d (degree 2)", hub, periphery)
		}
	}
}

func TestCentralityRanksLighterHubFirst(t *testing.T) {
	g := fixtureGraph(t)

	scores, err := Centrality(g)
	require.NoError(t, err)

	// Edge weight acts as distance in the betweenness pass, so node 3's
	// lighter edges put it on every shortest path and it edges out node 2
	// despite their equal degree.
	assert.Greater(t, scores[3], scores[2])
}

func TestCentralityStarTopology(t *testing.T) {
	g := starGraph(t, 1, []int{2, 3, 4, 5}, 0.6)

	scores, err := Centrality(g)
	require.NoError(t, err)

	for _, leaf := range []int{2, 3, 4, 5} {
		assert.Greater(t, scores[1], scores[leaf], "the hub must dominate leaf %d", leaf)
	}
	// Leaves are interchangeable, so their scores must agree.
	assert.InDelta(t, scores[2], scores[5], 1e-9)
}

func TestCentralityRejectsIsolatedNodes(t *testing.T) {
	g := buildGraph(t, testRisks(1, 2, 3), []schemas.RiskInteraction{edge(1, 2, 0.5)})

	_, err := Centrality(g)
	require.Error(t, err)

	var convErr *ConvergenceError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "eigenvector centrality", convErr.Measure)
	assert.Contains(t, convErr.Reason, "isolated")
}

func TestCentralityEmptyGraph(t *testing.T) {
	g := buildGraph(t, nil, nil)

	_, err := Centrality(g)
	require.Error(t, err)

	var convErr *ConvergenceError
	require.ErrorAs(t, err, &convErr)
	assert.Contains(t, convErr.Reason, "no nodes")
}
