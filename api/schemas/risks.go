package schemas

import "fmt"

// InteractionType is the discrete strength band assigned to a scored risk pair.
type InteractionType string

const (
	InteractionWeak     InteractionType = "Weak"
	InteractionModerate InteractionType = "Moderate"
	InteractionStrong   InteractionType = "Strong"
)

// ClassifyInteraction maps a continuous interaction score onto its strength band.
// Boundaries are inclusive on the upper side: 0.3 is Moderate, 0.7 is Strong.
func ClassifyInteraction(score float64) InteractionType {
	switch {
	case score < 0.3:
		return InteractionWeak
	case score < 0.7:
		return InteractionModerate
	default:
		return InteractionStrong
	}
}

// Risk is a single identified climate-related hazard or opportunity.
// Risks are owned by the caller and are never mutated by the analysis core.
type Risk struct {
	ID               int     `json:"id"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	Subcategory      string  `json:"subcategory,omitempty"`
	TertiaryCategory string  `json:"tertiary_category,omitempty"`
	Likelihood       float64 `json:"likelihood"`
	Impact           float64 `json:"impact"`
	TimeHorizon      string  `json:"time_horizon,omitempty"`
	IndustrySpecific bool    `json:"industry_specific,omitempty"`
	SASBCategory     string  `json:"sasb_category,omitempty"`
}

// RiskInteraction records the scored relationship between one unordered pair
// of distinct risks. Produced once per analysis run and immutable thereafter.
type RiskInteraction struct {
	Risk1ID int             `json:"risk1_id"`
	Risk2ID int             `json:"risk2_id"`
	Score   float64         `json:"interaction_score"`
	Type    InteractionType `json:"interaction_type"`
	// Rationale holds the oracle's free-text analysis. The core never
	// interprets it beyond the numeric score already extracted.
	Rationale string `json:"rationale,omitempty"`
}

// PairKey returns a canonical identifier for the unordered pair, used to
// detect duplicates regardless of the order the endpoints were supplied in.
func (ri RiskInteraction) PairKey() string {
	a, b := ri.Risk1ID, ri.Risk2ID
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}
