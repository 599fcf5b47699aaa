package ports

import (
	"context"
	"time"

	"cybershield/internal/domain"
)

// HistoryItem is the compact listing row for a user's scan history.
type HistoryItem struct {
	ReportID  string            `json:"report_id"`
	Target    string            `json:"target"`
	Type      domain.TargetType `json:"type"`
	Score     int               `json:"score"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// AssessmentRepository stores completed assessments keyed by report id.
type AssessmentRepository interface {
	Save(ctx context.Context, reportID, userID string, a domain.Assessment) error
	GetByReportID(ctx context.Context, reportID, userID string) (domain.Assessment, error)
	ListByUser(ctx context.Context, userID string, page, limit int, typeFilter string) (items []HistoryItem, total int, err error)
}

// ThreatRepository stores community-reported threats.
type ThreatRepository interface {
	InsertThreat(ctx context.Context, t domain.CommunityThreat) (domain.CommunityThreat, error)
	ListThreats(ctx context.Context) ([]domain.CommunityThreat, error)
}

// ResourceRepository stores educational resources.
type ResourceRepository interface {
	InsertResource(ctx context.Context, r domain.Resource) (domain.Resource, error)
	ListResources(ctx context.Context, category string) ([]domain.Resource, error)
}
