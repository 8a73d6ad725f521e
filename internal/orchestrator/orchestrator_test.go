package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
	"github.com/xkilldash9x/climarisk-cli/internal/config"
)

// testConfig is a fixed-value config.Interface for driving the orchestrator
// without touching viper.
type testConfig struct {
	oracle   config.OracleConfig
	analysis config.AnalysisConfig
	database config.DatabaseConfig
	report   config.ReportConfig
}

var _ config.Interface = (*testConfig)(nil)

func (c *testConfig) Logger() config.LoggerConfig     { return config.LoggerConfig{} }
func (c *testConfig) Oracle() config.OracleConfig     { return c.oracle }
func (c *testConfig) Analysis() config.AnalysisConfig { return c.analysis }
func (c *testConfig) Database() config.DatabaseConfig { return c.database }
func (c *testConfig) Report() config.ReportConfig     { return c.report }

func (c *testConfig) SetAnalysisClusters(k int)             { c.analysis.Clusters = k }
func (c *testConfig) SetAnalysisCascadeThreshold(v float64) { c.analysis.CascadeThreshold = v }
func (c *testConfig) SetAnalysisCascadeMaxSteps(s int)      { c.analysis.CascadeMaxSteps = s }
func (c *testConfig) SetAnalysisSeedRisks(ids []int)        { c.analysis.SeedRisks = ids }
func (c *testConfig) SetOracleConcurrency(n int)            { c.oracle.Concurrency = n }
func (c *testConfig) SetReportOutputDir(dir string)         { c.report.OutputDir = dir }
func (c *testConfig) SetReportFormat(format string)         { c.report.Format = format }

func newTestConfig() *testConfig {
	return &testConfig{
		oracle: config.OracleConfig{Concurrency: 2},
		analysis: config.AnalysisConfig{
			Clusters:             2,
			ClusterSeed:          42,
			CascadeThreshold:     0.5,
			CascadeMaxSteps:      10,
			SeedRisks:            []int{1, 2},
			MonteCarloIterations: 50,
			MonteCarloSeed:       7,
		},
	}
}

// scriptedOracle replays canned scores keyed by the unordered pair.
type scriptedOracle struct {
	scores map[string]float64
	err    error
}

func (o *scriptedOracle) ScoreInteraction(_ context.Context, a, b schemas.Risk) (string, error) {
	if o.err != nil {
		return "", o.err
	}
	key := schemas.RiskInteraction{Risk1ID: a.ID, Risk2ID: b.ID}.PairKey()
	score, ok := o.scores[key]
	if !ok {
		return "no view on this pairing", nil
	}
	return fmt.Sprintf("These risks interact at %.2f", score), nil
}

var _ schemas.InteractionOracle = (*scriptedOracle)(nil)

// memStore records persisted envelopes in memory.
type memStore struct {
	saved []*schemas.ResultEnvelope
	err   error
}

func (s *memStore) SaveRun(_ context.Context, envelope *schemas.ResultEnvelope) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, envelope)
	return nil
}

var _ schemas.RunStore = (*memStore)(nil)

func analysisRisks() []schemas.Risk {
	return []schemas.Risk{
		{ID: 1, Description: "Coastal flooding", Category: "Physical Risk", Likelihood: 0.6, Impact: 0.8},
		{ID: 2, Description: "Global supply chain disruption", Category: "Market Risk", Likelihood: 0.5, Impact: 0.9},
		{ID: 3, Description: "Carbon tax expansion", Category: "Policy Risk", Likelihood: 0.7, Impact: 0.5},
		{ID: 4, Description: "Reputational damage", Category: "Reputation Risk", Likelihood: 0.4, Impact: 0.4},
	}
}

func scriptedScores() map[string]float64 {
	return map[string]float64{
		"1-2": 0.7,
		"1-3": 0.4,
		"1-4": 0.2,
		"2-3": 0.6,
		"2-4": 0.8,
		"3-4": 0.5,
	}
}

func TestRunProducesCompleteEnvelope(t *testing.T) {
	oracle := &scriptedOracle{scores: scriptedScores()}
	store := &memStore{}
	orch := New(newTestConfig(), oracle, store, zap.NewNop())

	envelope, err := orch.Run(context.Background(), analysisRisks())
	require.NoError(t, err)

	assert.NotEmpty(t, envelope.RunID)
	assert.False(t, envelope.CreatedAt.IsZero())
	assert.Len(t, envelope.Risks, 4)
	assert.Len(t, envelope.Interactions, 6, "every unordered pair must be scored")

	require.Len(t, envelope.Centrality, 4)
	for id, score := range envelope.Centrality {
		assert.GreaterOrEqual(t, score, 0.0, "node %d", id)
		assert.LessOrEqual(t, score, 1.0, "node %d", id)
	}

	require.Len(t, envelope.Clusters, 4)
	for id, label := range envelope.Clusters {
		assert.GreaterOrEqual(t, label, 0, "node %d", id)
		assert.Less(t, label, 2, "node %d", id)
	}

	// Seeds 1 and 2 start fully activated; with these weights every other
	// risk activates too.
	require.Contains(t, envelope.Cascade.Timelines, 1)
	assert.Equal(t, 1.0, envelope.Cascade.Timelines[1][0])
	assert.Equal(t, 1.0, envelope.Cascade.Timelines[2][0])
	assert.Len(t, envelope.Cascade.Timelines, 4)

	assert.NotEmpty(t, envelope.FeedbackLoops, "a near-complete graph has feedback loops")
	assert.True(t, envelope.Resilience.PathLengthDefined, "the scripted network is connected")

	// Every node touches three others, so all four are trigger points.
	assert.Len(t, envelope.TriggerPoints, 4)
	// Risk 2's description matches the systemic keyword list.
	require.Len(t, envelope.SystemicRisks, 1)
	assert.Equal(t, 2, envelope.SystemicRisks[0].RiskID)
	assert.Equal(t, "Supply Chain", envelope.SystemicRisks[0].SystemicFactor)

	require.Len(t, envelope.MonteCarlo, 8, "every scenario bundle is simulated")
	for name, perRisk := range envelope.MonteCarlo {
		assert.Len(t, perRisk, 4, "scenario %q", name)
	}

	require.Len(t, store.saved, 1, "the completed run must be persisted")
	assert.Equal(t, envelope.RunID, store.saved[0].RunID)
}

func TestRunWithoutStore(t *testing.T) {
	oracle := &scriptedOracle{scores: scriptedScores()}
	orch := New(newTestConfig(), oracle, nil, zap.NewNop())

	envelope, err := orch.Run(context.Background(), analysisRisks())
	require.NoError(t, err)
	assert.NotNil(t, envelope)
}

func TestRunClampsClusterCount(t *testing.T) {
	cfg := newTestConfig()
	cfg.analysis.Clusters = 10 // More clusters than risks.
	oracle := &scriptedOracle{scores: scriptedScores()}
	orch := New(cfg, oracle, nil, zap.NewNop())

	envelope, err := orch.Run(context.Background(), analysisRisks())
	require.NoError(t, err)

	for id, label := range envelope.Clusters {
		assert.Less(t, label, 4, "node %d: labels must stay below the clamped k", id)
	}
}

func TestRunDefaultsSeedToHighestImpact(t *testing.T) {
	cfg := newTestConfig()
	cfg.analysis.SeedRisks = nil
	oracle := &scriptedOracle{scores: scriptedScores()}
	orch := New(cfg, oracle, nil, zap.NewNop())

	envelope, err := orch.Run(context.Background(), analysisRisks())
	require.NoError(t, err)

	// Risk 2 carries the highest impact (0.9) and therefore seeds the cascade.
	require.Contains(t, envelope.Cascade.Timelines, 2)
	assert.Equal(t, 1.0, envelope.Cascade.Timelines[2][0])
}

func TestRunRejectsEmptyRiskSet(t *testing.T) {
	orch := New(newTestConfig(), &scriptedOracle{}, nil, zap.NewNop())

	_, err := orch.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one risk")
}

func TestRunPropagatesOracleFailure(t *testing.T) {
	boom := errors.New("oracle down")
	orch := New(newTestConfig(), &scriptedOracle{err: boom}, nil, zap.NewNop())

	_, err := orch.Run(context.Background(), analysisRisks())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "scoring pass failed")
}

func TestRunPropagatesStoreFailure(t *testing.T) {
	oracle := &scriptedOracle{scores: scriptedScores()}
	store := &memStore{err: errors.New("database offline")}
	orch := New(newTestConfig(), oracle, store, zap.NewNop())

	_, err := orch.Run(context.Background(), analysisRisks())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist run")
}
