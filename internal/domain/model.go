package domain

import "time"

// Core domain models. Providers return SignalSets, calculators fold them
// into scores, and the synthesizer derives Reports from Assessments.

type TargetType string

const (
	TargetEmail TargetType = "email"
	TargetURL   TargetType = "url"
	TargetIP    TargetType = "ip"
)

// Assessment is the immutable outcome of one scan request.
type Assessment struct {
	Target    string     `json:"target"`
	Type      TargetType `json:"type"`
	Score     int        `json:"score"`
	Status    string     `json:"status"`
	Threats   []string   `json:"threats"`
	Details   SignalSet  `json:"details"`
	CreatedAt time.Time  `json:"created_at"`
}

// Report is a derived, regenerable view over an Assessment. Only the
// report id needs to round-trip through storage; everything else can be
// re-synthesized from the assessment at any time.
type Report struct {
	ReportID         string        `json:"report_id"`
	Target           string        `json:"target"`
	Type             TargetType    `json:"type"`
	Score            int           `json:"score"`
	Status           string        `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	Summary          ReportSummary `json:"summary"`
	TechnicalDetails SignalSet     `json:"technical_details"`
	Recommendations  []string      `json:"recommendations"`
}

type ReportSummary struct {
	RiskLevel      string   `json:"risk_level"`
	PrimaryThreats []string `json:"primary_threats"`
	Recommendation string   `json:"recommendation"`
}

// CommunityThreat is a user-submitted threat sighting.
type CommunityThreat struct {
	ID         string         `json:"id"`
	Target     string         `json:"target"`
	Type       TargetType     `json:"type"`
	ThreatType string         `json:"threat_type"`
	Severity   string         `json:"severity"`
	ReportedBy string         `json:"reported_by"`
	Details    map[string]any `json:"details"`
	ReportedAt time.Time      `json:"reported_at"`
}

// Resource is an educational article shown alongside assessments.
type Resource struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
