// Package orchestrator wires the full analysis pipeline: pairwise scoring,
// graph construction, the parallel analytics fan-out, the Monte Carlo pass,
// and assembly of the final result envelope. The caller receives either a
// complete bundle or a specific, attributable error - never a silently
// degraded result.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
	"github.com/xkilldash9x/climarisk-cli/internal/analytics"
	"github.com/xkilldash9x/climarisk-cli/internal/config"
	"github.com/xkilldash9x/climarisk-cli/internal/montecarlo"
	"github.com/xkilldash9x/climarisk-cli/internal/oracle"
	"github.com/xkilldash9x/climarisk-cli/internal/riskgraph"
	"github.com/xkilldash9x/climarisk-cli/internal/scenarios"
)

// Orchestrator runs complete analysis passes. The oracle is the only
// external collaborator; the store is optional.
type Orchestrator struct {
	cfg    config.Interface
	oracle schemas.InteractionOracle
	store  schemas.RunStore
	logger *zap.Logger
}

// New creates an orchestrator. A nil store disables persistence.
func New(cfg config.Interface, oracleClient schemas.InteractionOracle, runStore schemas.RunStore, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		oracle: oracleClient,
		store:  runStore,
		logger: logger.Named("orchestrator"),
	}
}

// Run executes one full analysis over the given risk set.
func (o *Orchestrator) Run(ctx context.Context, risks []schemas.Risk) (*schemas.ResultEnvelope, error) {
	if len(risks) == 0 {
		return nil, fmt.Errorf("analysis requires at least one risk")
	}

	started := time.Now()
	o.logger.Info("Starting analysis run", zap.Int("risks", len(risks)))

	// 1. Pairwise scoring. Any oracle failure aborts the run: a partial
	// interaction set would bias every downstream metric.
	scorer := oracle.NewScorer(o.oracle, o.cfg.Oracle().Concurrency, o.cfg.Oracle().RequestsPerSecond, o.logger)
	interactions, err := scorer.ScoreAll(ctx, risks)
	if err != nil {
		return nil, fmt.Errorf("scoring pass failed: %w", err)
	}

	// 2. Graph construction. Integrity violations abort here, before any
	// analyzer can observe a corrupt network.
	graph, err := riskgraph.Build(risks, interactions)
	if err != nil {
		return nil, fmt.Errorf("graph construction failed: %w", err)
	}

	envelope := &schemas.ResultEnvelope{
		RunID:        uuid.NewString(),
		CreatedAt:    started.UTC(),
		Risks:        risks,
		Interactions: interactions,
	}

	// 3. Graph analytics. All of these read the immutable graph, so they
	// fan out concurrently; each failure stays attributable to its measure.
	analysisCfg := o.cfg.Analysis()
	var g errgroup.Group

	g.Go(func() error {
		centrality, err := analytics.Centrality(graph)
		if err != nil {
			return err
		}
		envelope.Centrality = centrality
		return nil
	})

	g.Go(func() error {
		k := analysisCfg.Clusters
		if k > graph.NodeCount() {
			// More clusters than nodes can never partition; fall back
			// to one cluster per node and say so.
			o.logger.Warn("Cluster count exceeds node count, clamping",
				zap.Int("requested", k), zap.Int("nodes", graph.NodeCount()))
			k = graph.NodeCount()
		}
		clusters, err := analytics.Clusters(graph, k, analysisCfg.ClusterSeed)
		if err != nil {
			return err
		}
		envelope.Clusters = clusters
		return nil
	})

	g.Go(func() error {
		seeds := analysisCfg.SeedRisks
		if len(seeds) == 0 {
			seeds = []int{highestImpactRisk(risks)}
			o.logger.Info("No cascade seeds configured, seeding with highest-impact risk",
				zap.Int("seed", seeds[0]))
		}
		cascade, err := analytics.SimulateCascade(graph, seeds, analysisCfg.CascadeThreshold, analysisCfg.CascadeMaxSteps)
		if err != nil {
			return err
		}
		envelope.Cascade = cascade
		return nil
	})

	g.Go(func() error {
		envelope.FeedbackLoops = analytics.FeedbackLoops(graph)
		return nil
	})

	g.Go(func() error {
		envelope.Resilience = analytics.Resilience(graph)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("graph analytics failed: %w", err)
	}

	// 4. Derived passes over the analytics output.
	envelope.Correlations = analytics.Correlations(timelineSeries(envelope.Cascade))
	envelope.TriggerPoints = analytics.TriggerPoints(graph)
	envelope.SystemicRisks = analytics.SystemicRisks(risks, analysisCfg.KeyDependencies)

	// 5. Monte Carlo sampling across every scenario bundle.
	mc, err := montecarlo.Simulate(risks, scenarios.All(), analysisCfg.MonteCarloIterations, analysisCfg.MonteCarloSeed)
	if err != nil {
		return nil, fmt.Errorf("monte carlo simulation failed: %w", err)
	}
	envelope.MonteCarlo = mc

	// 6. Optional persistence.
	if o.store != nil {
		if err := o.store.SaveRun(ctx, envelope); err != nil {
			return nil, fmt.Errorf("failed to persist run: %w", err)
		}
	}

	o.logger.Info("Analysis run complete",
		zap.String("run_id", envelope.RunID),
		zap.Int("interactions", len(envelope.Interactions)),
		zap.Int("feedback_loops", len(envelope.FeedbackLoops)),
		zap.Duration("duration", time.Since(started)),
	)
	return envelope, nil
}

// highestImpactRisk picks the default cascade seed: the risk with the
// highest impact, ties broken by the lower id.
func highestImpactRisk(risks []schemas.Risk) int {
	best := risks[0]
	for _, r := range risks[1:] {
		if r.Impact > best.Impact || (r.Impact == best.Impact && r.ID < best.ID) {
			best = r
		}
	}
	return best.ID
}

// timelineSeries converts cascade timelines into plain per-risk series for
// the correlation pass.
func timelineSeries(cascade schemas.CascadeResult) map[int][]float64 {
	series := make(map[int][]float64, len(cascade.Timelines))
	for id, tl := range cascade.Timelines {
		series[id] = []float64(tl)
	}
	return series
}
