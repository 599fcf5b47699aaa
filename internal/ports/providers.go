package ports

import (
	"context"

	"cybershield/internal/domain"
)

// SignalProvider fetches one source's evidence for a target. Fetch is
// attempted exactly once per assessment; on failure the orchestrator
// substitutes Defaults() for this provider's contribution (fail open to
// empty evidence) rather than aborting the assessment.
type SignalProvider interface {
	Name() string
	Fetch(ctx context.Context, target string) (domain.SignalSet, error)
	Defaults() domain.SignalSet
}

// BreachDirectory looks up known breach campaigns for an email address.
type BreachDirectory interface {
	Breaches(ctx context.Context, email string) ([]string, error)
}
