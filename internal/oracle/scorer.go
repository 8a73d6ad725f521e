// Package oracle implements the interaction scorer: the component that asks
// an external LLM oracle how strongly each unordered pair of risks interacts
// and turns the free-text answers into scored RiskInteraction records.
package oracle

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/climarisk-cli/api/schemas"
)

// defaultScore is the documented neutral/unknown signal used when the
// oracle's response contains no parseable numeric token.
const defaultScore = 0.5

// numberPattern matches floating-point-looking tokens; the last match in a
// response is taken as the interaction score.
var numberPattern = regexp.MustCompile(`[-+]?\d*\.\d+|\d+`)

// Scorer runs the O(n^2) pairwise scoring pass over a risk set. Calls are
// dispatched through a bounded worker pool purely as a performance
// optimization: each call is independent and keyed by its pair, so results
// are deterministic regardless of completion order. Any single failure
// aborts the whole pass - a partial interaction set would bias every
// downstream metric.
type Scorer struct {
	oracle      schemas.InteractionOracle
	limiter     *rate.Limiter
	concurrency int
	logger      *zap.Logger
}

// NewScorer builds a scorer around the given oracle. A non-positive
// concurrency falls back to serial dispatch; requestsPerSecond <= 0 disables
// pacing.
func NewScorer(oracleClient schemas.InteractionOracle, concurrency int, requestsPerSecond float64, logger *zap.Logger) *Scorer {
	if concurrency < 1 {
		concurrency = 1
	}
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &Scorer{
		oracle:      oracleClient,
		limiter:     limiter,
		concurrency: concurrency,
		logger:      logger.Named("scorer"),
	}
}

// ScoreAll queries the oracle for every unordered pair of distinct risks: all
// C(n,2) pairs, no sampling. The returned slice is ordered by pair position
// (i<j over the input order), independent of call completion order. The
// first oracle failure cancels the remaining calls and is returned; no
// interaction is ever silently dropped.
func (s *Scorer) ScoreAll(ctx context.Context, risks []schemas.Risk) ([]schemas.RiskInteraction, error) {
	type pair struct{ i, j int }
	var pairs []pair
	for i := range risks {
		for j := i + 1; j < len(risks); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	s.logger.Info("Starting pairwise interaction scoring",
		zap.Int("risks", len(risks)),
		zap.Int("pairs", len(pairs)),
		zap.Int("concurrency", s.concurrency),
	)

	interactions := make([]schemas.RiskInteraction, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for idx, p := range pairs {
		g.Go(func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(gctx); err != nil {
					return err
				}
			}
			a, b := risks[p.i], risks[p.j]
			analysis, err := s.oracle.ScoreInteraction(gctx, a, b)
			if err != nil {
				return fmt.Errorf("oracle call failed for pair (%d, %d): %w", a.ID, b.ID, err)
			}
			score := ExtractScore(analysis)
			interactions[idx] = schemas.RiskInteraction{
				Risk1ID:   a.ID,
				Risk2ID:   b.ID,
				Score:     score,
				Type:      schemas.ClassifyInteraction(score),
				Rationale: analysis,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("Pairwise scoring complete", zap.Int("interactions", len(interactions)))
	return interactions, nil
}

// ExtractScore pulls the last floating-point-looking token out of the
// oracle's free-text response. Responses without any numeric token resolve
// to the neutral 0.5 default - a defined signal, not an error.
func ExtractScore(analysis string) float64 {
	matches := numberPattern.FindAllString(analysis, -1)
	if len(matches) == 0 {
		return defaultScore
	}
	score, err := strconv.ParseFloat(matches[len(matches)-1], 64)
	if err != nil {
		return defaultScore
	}
	return score
}
