// Package community handles user-submitted threat sightings.
package community

import (
	"context"
	"time"

	"cybershield/internal/domain"
	"cybershield/internal/ports"
)

type Service struct {
	repo ports.ThreatRepository
}

func New(repo ports.ThreatRepository) *Service { return &Service{repo: repo} }

// Report records a threat sighting submitted by a user.
func (s *Service) Report(ctx context.Context, userID string, t domain.CommunityThreat) (domain.CommunityThreat, error) {
	if t.Target == "" {
		return domain.CommunityThreat{}, &domain.ValidationError{Msg: "target is required"}
	}
	switch t.Type {
	case domain.TargetEmail, domain.TargetURL, domain.TargetIP:
	default:
		return domain.CommunityThreat{}, &domain.ValidationError{Msg: "unknown target type"}
	}
	if t.ThreatType == "" || t.Severity == "" {
		return domain.CommunityThreat{}, &domain.ValidationError{Msg: "threat_type and severity are required"}
	}
	t.ReportedBy = userID
	t.ReportedAt = time.Now().UTC()
	return s.repo.InsertThreat(ctx, t)
}

// List returns all community-reported threats.
func (s *Service) List(ctx context.Context) ([]domain.CommunityThreat, error) {
	return s.repo.ListThreats(ctx)
}
