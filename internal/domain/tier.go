package domain

// Status tier boundaries. Every derivation of status, risk level, or
// recommendation goes through these functions so two code paths looking
// at the same score can never disagree.

const (
	StatusSecure   = "Secure"
	StatusModerate = "Moderate"
	StatusHighRisk = "High Risk"
)

// StatusForScore maps a score onto its tier. Boundaries are inclusive on
// the lower bound: exactly 75 is Secure, exactly 50 is Moderate.
func StatusForScore(score int) string {
	switch {
	case score >= 75:
		return StatusSecure
	case score >= 50:
		return StatusModerate
	default:
		return StatusHighRisk
	}
}

// RiskLevelForScore maps a score onto the report risk label.
func RiskLevelForScore(score int) string {
	switch {
	case score >= 75:
		return "Low"
	case score >= 50:
		return "Moderate"
	default:
		return "High"
	}
}

// RecommendationForScore maps a score onto the report recommendation.
func RecommendationForScore(score int) string {
	switch {
	case score >= 75:
		return "Safe"
	case score >= 50:
		return "Monitor"
	default:
		return "Avoid"
	}
}
