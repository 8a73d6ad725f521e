package schemas

import (
	"math"
	"time"
)

// Timeline is the ordered, append-only activation history of one node in a
// cascade simulation. Index 0 is the step at which tracking began for the
// whole cascade (seeds start at 1.0; latecomers are backfilled with zeros so
// every tracked timeline stays aligned).
//
// Invariant: for every tracked node, len(timeline) == productive steps + 1.
type Timeline []float64

// Last returns the most recent activation value, or 0 for an empty timeline.
func (t Timeline) Last() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1]
}

// CascadeResult captures a full cascade simulation: how many productive steps
// ran before stabilization (or the step budget) and the aligned per-node
// activation timelines.
type CascadeResult struct {
	Steps     int              `json:"steps"`
	Timelines map[int]Timeline `json:"timelines"`
}

// ResilienceMetrics are aggregate structural statistics of the risk network.
// Metrics that are undefined for the given topology (path length on a
// disconnected graph, assortativity on a degree-regular graph) carry an
// explicit Defined flag instead of leaking NaN or Inf as a score.
type ResilienceMetrics struct {
	AverageClustering    float64 `json:"average_clustering"`
	AverageShortestPath  float64 `json:"average_shortest_path_length"`
	PathLengthDefined    bool    `json:"path_length_defined"`
	Density              float64 `json:"graph_density"`
	Assortativity        float64 `json:"assortativity"`
	AssortativityDefined bool    `json:"assortativity_defined"`
}

// PathLengthOrInf returns the average shortest path length, or +Inf when the
// metric is undefined for the graph (disconnected network).
func (m ResilienceMetrics) PathLengthOrInf() float64 {
	if !m.PathLengthDefined {
		return math.Inf(1)
	}
	return m.AverageShortestPath
}

// RiskCorrelation is the Pearson correlation of two risks' simulated
// activation or impact series.
type RiskCorrelation struct {
	Risk1ID     int     `json:"risk1_id"`
	Risk2ID     int     `json:"risk2_id"`
	Coefficient float64 `json:"coefficient"`
}

// TriggerPoint marks a risk whose connectivity makes it a plausible cascade
// origin (more than two neighbors in the interaction network).
type TriggerPoint struct {
	RiskID         int    `json:"risk_id"`
	Description    string `json:"description"`
	ConnectedRisks []int  `json:"connected_risks"`
}

// SystemicRisk labels a risk whose description matches market-wide or
// dependency-linked patterns, together with the systemic factor it maps to.
type SystemicRisk struct {
	RiskID         int     `json:"risk_id"`
	Description    string  `json:"description"`
	Impact         float64 `json:"impact"`
	SystemicFactor string  `json:"systemic_factor"`
}

// SimulationSummary condenses a Monte Carlo run for one risk under one
// scenario into the statistics the report cares about.
type SimulationSummary struct {
	MeanImpact       float64 `json:"mean_impact"`
	StdImpact        float64 `json:"std_impact"`
	Percentile5      float64 `json:"5th_percentile_impact"`
	Percentile95     float64 `json:"95th_percentile_impact"`
	MeanLikelihood   float64 `json:"mean_likelihood"`
	StdLikelihood    float64 `json:"std_likelihood"`
}

// ResultEnvelope is the complete output bundle of one analysis run. Every
// field is plain serializable data; downstream consumers read but never
// mutate it.
type ResultEnvelope struct {
	RunID        string            `json:"run_id"`
	CreatedAt    time.Time         `json:"created_at"`
	Risks        []Risk            `json:"risks"`
	Interactions []RiskInteraction `json:"interactions"`

	Centrality    map[int]float64   `json:"centrality"`
	Clusters      map[int]int       `json:"clusters"`
	Cascade       CascadeResult     `json:"cascade"`
	FeedbackLoops [][]int           `json:"feedback_loops"`
	Resilience    ResilienceMetrics `json:"resilience"`

	Correlations  []RiskCorrelation `json:"correlations,omitempty"`
	TriggerPoints []TriggerPoint    `json:"trigger_points,omitempty"`
	SystemicRisks []SystemicRisk    `json:"systemic_risks,omitempty"`

	// MonteCarlo is keyed scenario name -> risk id -> summary.
	MonteCarlo map[string]map[int]SimulationSummary `json:"monte_carlo_results,omitempty"`
}
