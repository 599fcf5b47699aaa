package ports

import (
	"context"

	"cybershield/internal/domain"
)

// Assessor runs the full assessment pipeline for one target.
type Assessor interface {
	Assess(ctx context.Context, t domain.TargetType, target, userID string) (domain.Assessment, domain.Report, error)
}

// Reports retrieves stored assessments and regenerates report views.
type Reports interface {
	Get(ctx context.Context, reportID, userID string) (domain.Report, error)
	RenderPDF(ctx context.Context, reportID, userID string) ([]byte, error)
	History(ctx context.Context, userID string, page, limit int, typeFilter string) (HistoryPage, error)
}

// HistoryPage is one page of a user's assessment history.
type HistoryPage struct {
	Assessments []HistoryItem
	Page        int
	TotalPages  int
	TotalItems  int
}

// Notifier delivers assessment results. Best effort: failures are
// logged by the caller and never affect the assessment outcome.
type Notifier interface {
	Notify(ctx context.Context, recipient string, a domain.Assessment) error
}

// RateLimiter is the advisory per-user request limiter. Allow errors are
// treated as "allow" by callers (fail open); only an explicit false
// blocks the request.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
