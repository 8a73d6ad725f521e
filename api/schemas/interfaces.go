package schemas

import "context"

// InteractionOracle is the narrow contract the scoring pass depends on. It
// hides the prompt text and transport entirely: the core only ever sees the
// oracle's free-form response, from which a trailing numeric token is
// extracted. Tests substitute a deterministic stub.
type InteractionOracle interface {
	// ScoreInteraction asks the oracle how strongly two risks interact and
	// returns its free-text analysis. An error here aborts the scoring pass.
	ScoreInteraction(ctx context.Context, a, b Risk) (string, error)
}

// RunStore persists completed analysis runs. Persistence is optional; the
// orchestrator treats a nil store as "do not persist".
type RunStore interface {
	SaveRun(ctx context.Context, envelope *ResultEnvelope) error
}
