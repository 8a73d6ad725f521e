package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

func TestTriggerPoints(t *testing.T) {
	g := fixtureGraph(t)

	points := TriggerPoints(g)
	require.Len(t, points, 2, "only nodes with more than two neighbors qualify")

	assert.Equal(t, 2, points[0].RiskID)
	assert.Equal(t, []int{1, 3, 4}, points[0].ConnectedRisks)
	assert.Equal(t, 3, points[1].RiskID)
	assert.Equal(t, []int{1, 2, 4}, points[1].ConnectedRisks)
}

func TestTriggerPointsSparseGraph(t *testing.T) {
	g := buildGraph(t, testRisks(1, 2, 3), []schemas.RiskInteraction{
		edge(1, 2, 0.5),
		edge(2, 3, 0.5),
	})
	assert.Empty(t, TriggerPoints(g), "degree two is not a trigger point")
}

func TestSystemicRisks(t *testing.T) {
	risks := []schemas.Risk{
		{ID: 1, Description: "Global supply chain disruption from extreme weather", Impact: 0.8},
		{ID: 2, Description: "Systemic financial exposure to stranded assets", Impact: 0.9},
		{ID: 3, Description: "Local flooding at the Hamburg facility", Impact: 0.6},
		{ID: 4, Description: "Geopolitical instability in interconnected energy markets", Impact: 0.7},
		{ID: 5, Description: "Water scarcity limiting cooling capacity", Impact: 0.5},
	}

	out := SystemicRisks(risks, []string{"water"})
	require.Len(t, out, 4)

	byID := make(map[int]schemas.SystemicRisk, len(out))
	for _, s := range out {
		byID[s.RiskID] = s
	}

	assert.Equal(t, "Supply Chain", byID[1].SystemicFactor)
	assert.Equal(t, "Financial System", byID[2].SystemicFactor)
	assert.Equal(t, "Geopolitical", byID[4].SystemicFactor)
	assert.Equal(t, "Other", byID[5].SystemicFactor, "key-dependency matches without a named factor fall through to Other")
	assert.NotContains(t, byID, 3, "purely local risks are not systemic")
	assert.Equal(t, 0.9, byID[2].Impact)
}

func TestSystemicRisksNoDependencies(t *testing.T) {
	risks := []schemas.Risk{
		{ID: 1, Description: "Local flooding", Impact: 0.6},
	}
	assert.Empty(t, SystemicRisks(risks, nil))
}
