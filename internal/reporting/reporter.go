// Package reporting renders a completed analysis envelope into the JSON and
// HTML report documents consumed by people and downstream tooling. It is a
// pure formatter: everything it touches was already computed.
package reporting

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Reporter writes analysis reports to an output directory.
type Reporter struct {
	outputDir string
	logger    *zap.Logger
}

// NewReporter creates a reporter rooted at the given output directory.
func NewReporter(outputDir string, logger *zap.Logger) *Reporter {
	return &Reporter{
		outputDir: outputDir,
		logger:    logger.Named("reporter"),
	}
}

// report is the serialized document shape. It wraps the raw envelope with
// derived narrative sections.
type report struct {
	ExecutiveSummary     string                    `json:"executive_summary"`
	InteractionSummary   string                    `json:"interaction_summary"`
	TopInteractions      []schemas.RiskInteraction `json:"top_interactions"`
	CentralRisks         []centralRisk             `json:"central_risks"`
	MitigationStrategies map[int][]string          `json:"mitigation_strategies"`
	Envelope             *schemas.ResultEnvelope   `json:"envelope"`
}

type centralRisk struct {
	RiskID     int     `json:"risk_id"`
	Centrality float64 `json:"centrality"`
}

// WriteJSON renders the envelope as an indented JSON document and writes it
// to <outputDir>/climate_risk_report.json, returning the serialized bytes.
func (r *Reporter) WriteJSON(envelope *schemas.ResultEnvelope) ([]byte, error) {
	doc := r.buildReport(envelope)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	path := filepath.Join(r.outputDir, "climate_risk_report.json")
	if err := r.writeFile(path, data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteHTML renders the envelope through the HTML template into
// <outputDir>/climate_risk_report.html.
func (r *Reporter) WriteHTML(envelope *schemas.ResultEnvelope) error {
	doc := r.buildReport(envelope)

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	path := filepath.Join(r.outputDir, "climate_risk_report.html")
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, doc); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	r.logger.Info("HTML report written", zap.String("path", path))
	return nil
}

func (r *Reporter) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	r.logger.Info("Report written", zap.String("path", path))
	return nil
}

func (r *Reporter) buildReport(envelope *schemas.ResultEnvelope) *report {
	return &report{
		ExecutiveSummary:     executiveSummary(envelope),
		InteractionSummary:   SummarizeInteractions(envelope.Interactions),
		TopInteractions:      topInteractions(envelope.Interactions, 5),
		CentralRisks:         rankCentrality(envelope.Centrality, 3),
		MitigationStrategies: MitigationStrategies(envelope.Risks),
		Envelope:             envelope,
	}
}

// executiveSummary produces the headline paragraph of the report.
func executiveSummary(envelope *schemas.ResultEnvelope) string {
	highImpact := 0
	for _, risk := range envelope.Risks {
		if risk.Impact > 0.7 {
			highImpact++
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "This climate risk assessment identified %d distinct risks, with %d classified as high-impact. ",
		len(envelope.Risks), highImpact)
	fmt.Fprintf(&b, "The interaction network holds %d scored pairings across %d feedback loops. ",
		len(envelope.Interactions), len(envelope.FeedbackLoops))
	if envelope.Resilience.PathLengthDefined {
		fmt.Fprintf(&b, "The network is connected with an average weighted path length of %.2f.",
			envelope.Resilience.AverageShortestPath)
	} else {
		b.WriteString("The network is disconnected; average path length is undefined.")
	}
	return b.String()
}

// SummarizeInteractions counts the interactions per strength band.
func SummarizeInteractions(interactions []schemas.RiskInteraction) string {
	var strong, moderate, weak int
	for _, in := range interactions {
		switch in.Type {
		case schemas.InteractionStrong:
			strong++
		case schemas.InteractionModerate:
			moderate++
		case schemas.InteractionWeak:
			weak++
		}
	}
	return fmt.Sprintf("Strong interactions: %d, Moderate interactions: %d, Weak interactions: %d. "+
		"The analysis reveals %d strong interactions indicating potential compounding effects.",
		strong, moderate, weak, strong)
}

func topInteractions(interactions []schemas.RiskInteraction, limit int) []schemas.RiskInteraction {
	sorted := append([]schemas.RiskInteraction(nil), interactions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func rankCentrality(centrality map[int]float64, limit int) []centralRisk {
	ranked := make([]centralRisk, 0, len(centrality))
	for id, score := range centrality {
		ranked = append(ranked, centralRisk{RiskID: id, Centrality: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Centrality != ranked[j].Centrality {
			return ranked[i].Centrality > ranked[j].Centrality
		}
		return ranked[i].RiskID < ranked[j].RiskID
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// MitigationStrategies assembles category-specific mitigation advice per
// risk. The lookup table mirrors the strategy bank the narrative reports are
// built from.
func MitigationStrategies(risks []schemas.Risk) map[int][]string {
	byCategory := map[string]string{
		"Physical Risk":   "Invest in climate-resilient infrastructure and operations",
		"Transition Risk": "Diversify product/service portfolio to align with low-carbon economy",
		"Market Risk":     "Monitor and adapt to changing consumer preferences and market dynamics",
		"Policy Risk":     "Engage in policy discussions and prepare for various regulatory scenarios",
		"Reputation Risk": "Enhance sustainability reporting and stakeholder communication",
	}

	out := make(map[int][]string, len(risks))
	for _, risk := range risks {
		var strategies []string
		if s, ok := byCategory[risk.Category]; ok {
			strategies = append(strategies, s)
		}
		if risk.Impact > 0.7 {
			strategies = append(strategies, "Prioritize for immediate mitigation planning given high impact")
		}
		out[risk.ID] = strategies
	}
	return out
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Climate Risk Assessment Report</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
        h1, h2, h3 { color: #2c3e50; }
        .summary { background-color: #f0f0f0; padding: 15px; border-radius: 5px; }
        table { border-collapse: collapse; width: 100%; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
    </style>
</head>
<body>
    <h1>Climate Risk Assessment Report</h1>

    <div class="summary">
        <h2>Executive Summary</h2>
        <p>{{.ExecutiveSummary}}</p>
    </div>

    <h2>Risk Interactions</h2>
    <p>{{.InteractionSummary}}</p>
    <table>
        <tr><th>Risk 1</th><th>Risk 2</th><th>Score</th><th>Type</th></tr>
        {{range .TopInteractions}}
        <tr><td>{{.Risk1ID}}</td><td>{{.Risk2ID}}</td><td>{{printf "%.2f" .Score}}</td><td>{{.Type}}</td></tr>
        {{end}}
    </table>

    <h2>Central Risks</h2>
    <ul>
        {{range .CentralRisks}}
        <li>Risk {{.RiskID}} (Centrality: {{printf "%.2f" .Centrality}})</li>
        {{end}}
    </ul>

    <h2>Mitigation Strategies</h2>
    {{range $riskID, $strategies := .MitigationStrategies}}
    <h3>Risk {{$riskID}}</h3>
    <ul>
        {{range $strategies}}<li>{{.}}</li>{{end}}
    </ul>
    {{end}}
</body>
</html>
`
