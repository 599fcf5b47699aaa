// Package report synthesizes presentation reports from assessments.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cybershield/internal/domain"
)

// Synthesize derives a Report from an Assessment. It is a pure function
// of the assessment apart from the generated id and the timestamp, which
// is the synthesis time: regenerating a report later yields a fresh
// timestamp but an identical score-derived section.
//
// Risk level and recommendation are re-derived from the score, never
// copied from the caller-supplied status, so both always sit in the same
// tier as the status.
func Synthesize(a domain.Assessment) domain.Report {
	return domain.Report{
		ReportID:  NewID(a.Type),
		Target:    a.Target,
		Type:      a.Type,
		Score:     a.Score,
		Status:    domain.StatusForScore(a.Score),
		CreatedAt: time.Now().UTC(),
		Summary: domain.ReportSummary{
			RiskLevel:      domain.RiskLevelForScore(a.Score),
			PrimaryThreats: append([]string(nil), a.Threats...),
			Recommendation: domain.RecommendationForScore(a.Score),
		},
		TechnicalDetails: a.Details.Clone(),
		Recommendations:  actions(a.Score),
	}
}

// NewID generates a report identifier of the form {type}_report_{suffix}
// with a 6-hex-char random suffix. Uniqueness is enforced by the
// persistence layer; callers needing stronger collision resistance
// should widen the suffix.
func NewID(t domain.TargetType) string {
	u := uuid.New()
	return fmt.Sprintf("%s_report_%x", t, u[:3])
}

func actions(score int) []string {
	if score < 50 {
		return []string{"Block target"}
	}
	return []string{"Monitor activity"}
}
