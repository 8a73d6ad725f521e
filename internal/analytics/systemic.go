package analytics

import (
	"strings"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
	"github.com/xkilldash9x/climarisk-cli/internal/riskgraph"
)

// systemicKeywords mark risk descriptions with market-wide reach.
var systemicKeywords = []string{"market-wide", "industry-wide", "global", "systemic", "interconnected"}

// TriggerPoints returns the risks whose connectivity makes them plausible
// cascade origins: any node with more than two neighbors in the interaction
// network.
func TriggerPoints(g *riskgraph.Graph) []schemas.TriggerPoint {
	var out []schemas.TriggerPoint
	for _, id := range g.Nodes() {
		nbrs := g.Neighbors(id)
		if len(nbrs) <= 2 {
			continue
		}
		risk, _ := g.Risk(id)
		out = append(out, schemas.TriggerPoint{
			RiskID:         id,
			Description:    risk.Description,
			ConnectedRisks: nbrs,
		})
	}
	return out
}

// SystemicRisks filters the risk set down to those whose description matches
// a systemic keyword or one of the caller's key dependencies, and labels each
// with the systemic factor it maps onto.
func SystemicRisks(risks []schemas.Risk, keyDependencies []string) []schemas.SystemicRisk {
	var out []schemas.SystemicRisk
	for _, r := range risks {
		if !isSystemic(r, keyDependencies) {
			continue
		}
		out = append(out, schemas.SystemicRisk{
			RiskID:         r.ID,
			Description:    r.Description,
			Impact:         r.Impact,
			SystemicFactor: systemicFactor(r),
		})
	}
	return out
}

func isSystemic(r schemas.Risk, keyDependencies []string) bool {
	desc := strings.ToLower(r.Description)
	for _, kw := range systemicKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	for _, dep := range keyDependencies {
		if dep != "" && strings.Contains(desc, strings.ToLower(dep)) {
			return true
		}
	}
	return false
}

func systemicFactor(r schemas.Risk) string {
	desc := strings.ToLower(r.Description)
	switch {
	case strings.Contains(desc, "financial"):
		return "Financial System"
	case strings.Contains(desc, "supply chain"):
		return "Supply Chain"
	case strings.Contains(desc, "geopolitical"):
		return "Geopolitical"
	default:
		return "Other"
	}
}
