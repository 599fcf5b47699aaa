// Package reports serves stored assessments: report regeneration, PDF
// rendering, and paginated history.
package reports

import (
	"context"
	"fmt"

	"cybershield/internal/domain"
	"cybershield/internal/ports"
	"cybershield/internal/report"
)

type Service struct {
	repo ports.AssessmentRepository
}

func New(repo ports.AssessmentRepository) *Service { return &Service{repo: repo} }

// Get regenerates the report view for a stored assessment. The stored
// report id is kept so the identifier round-trips; everything else is
// re-synthesized, which refreshes the timestamp but not the
// score-derived section.
func (s *Service) Get(ctx context.Context, reportID, userID string) (domain.Report, error) {
	a, err := s.repo.GetByReportID(ctx, reportID, userID)
	if err != nil {
		return domain.Report{}, err
	}
	rep := report.Synthesize(a)
	rep.ReportID = reportID
	return rep, nil
}

// RenderPDF renders the stored assessment as a PDF document.
func (s *Service) RenderPDF(ctx context.Context, reportID, userID string) ([]byte, error) {
	a, err := s.repo.GetByReportID(ctx, reportID, userID)
	if err != nil {
		return nil, err
	}
	return report.RenderPDF(a), nil
}

// History lists a user's assessments, newest first, with an optional
// type filter.
func (s *Service) History(ctx context.Context, userID string, page, limit int, typeFilter string) (ports.HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	if typeFilter != "" {
		switch domain.TargetType(typeFilter) {
		case domain.TargetEmail, domain.TargetURL, domain.TargetIP:
		default:
			return ports.HistoryPage{}, &domain.ValidationError{Msg: fmt.Sprintf("unknown type filter %q", typeFilter)}
		}
	}

	items, total, err := s.repo.ListByUser(ctx, userID, page, limit, typeFilter)
	if err != nil {
		return ports.HistoryPage{}, err
	}
	if items == nil {
		items = []ports.HistoryItem{}
	}
	return ports.HistoryPage{
		Assessments: items,
		Page:        page,
		TotalPages:  (total + limit - 1) / limit,
		TotalItems:  total,
	}, nil
}
