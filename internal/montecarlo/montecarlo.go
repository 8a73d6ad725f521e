// Package montecarlo samples per-risk impact and likelihood distributions
// under each scenario. It is a data producer for the reporting layer and the
// correlation pass, independent of the graph analytics.
package montecarlo

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

// noiseStdDev is the spread of the lognormal-ish perturbation applied around
// each scenario-adjusted base value.
const noiseStdDev = 0.1

// Simulate draws `iterations` samples of impact and likelihood for every risk
// under every scenario and condenses each distribution into its summary
// statistics. The rng seed makes the whole simulation reproducible.
func Simulate(risks []schemas.Risk, scens map[string]schemas.Scenario, iterations int, seed int64) (map[string]map[int]schemas.SimulationSummary, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("monte carlo iterations must be >= 1, got %d", iterations)
	}
	rng := rand.New(rand.NewSource(seed))

	// Iterate scenarios in a stable order so the rng stream, and therefore
	// the whole simulation, is reproducible for a given seed.
	names := make([]string, 0, len(scens))
	for name := range scens {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]map[int]schemas.SimulationSummary, len(scens))
	for _, name := range names {
		scen := scens[name]
		perRisk := make(map[int]schemas.SimulationSummary, len(risks))
		for _, risk := range risks {
			impacts := make([]float64, iterations)
			likelihoods := make([]float64, iterations)
			baseImpact := stressedImpact(risk, scen)
			baseLikelihood := stressedLikelihood(risk, scen)
			for i := 0; i < iterations; i++ {
				impacts[i] = clamp01(baseImpact + rng.NormFloat64()*noiseStdDev)
				likelihoods[i] = clamp01(baseLikelihood + rng.NormFloat64()*noiseStdDev)
			}
			perRisk[risk.ID] = summarize(impacts, likelihoods)
		}
		out[name] = perRisk
	}
	return out, nil
}

// stressedImpact shifts a risk's base impact by the scenario's stress
// factors: hotter, less stable worlds push impacts up.
func stressedImpact(risk schemas.Risk, scen schemas.Scenario) float64 {
	stress := 0.5*(scen.TempIncrease/4.0) +
		0.25*(1.0-scen.FinancialStability) +
		0.25*scen.SupplyChainDisruption
	return clamp01(risk.Impact * (0.75 + 0.5*stress))
}

// stressedLikelihood shifts a risk's base likelihood by policy stringency and
// ecosystem pressure.
func stressedLikelihood(risk schemas.Risk, scen schemas.Scenario) float64 {
	stress := 0.5*scen.EcosystemDegradation + 0.5*(1.0-scen.PolicyStringency)
	return clamp01(risk.Likelihood * (0.75 + 0.5*stress))
}

func summarize(impacts, likelihoods []float64) schemas.SimulationSummary {
	return schemas.SimulationSummary{
		MeanImpact:     mean(impacts),
		StdImpact:      stdDev(impacts),
		Percentile5:    percentile(impacts, 5),
		Percentile95:   percentile(impacts, 95),
		MeanLikelihood: mean(likelihoods),
		StdLikelihood:  stdDev(likelihoods),
	}
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stdDev(xs []float64) float64 {
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// percentile computes the p-th percentile with linear interpolation between
// the closest ranks.
func percentile(xs []float64, p float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
