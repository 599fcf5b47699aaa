// Package scoring folds merged signal evidence into bounded risk scores.
// Each calculator is a pure function: baseline 100, a fixed ordered table
// of independent deductions, then a clamp to [0,100]. Deductions are
// additive and never conditional on one another.
package scoring

import "cybershield/internal/domain"

// Email scores an email target's merged signals.
func Email(signals domain.SignalSet) int {
	score := 100
	if !signals.Bool("spf_record") {
		score -= 20
	}
	if !signals.Bool("dmarc_record") {
		score -= 20
	}
	if !signals.Bool("dkim_record") {
		score -= 10
	}
	if signals.Bool("blacklisted") {
		score -= 30
	}
	if signals.String("reputation") == "poor" {
		score -= 20
	}
	score -= 10 * len(signals.Strings("phishing_indicators"))
	score -= 10 * len(signals.Strings("breaches"))
	if signals.Bool("is_exposed") {
		score -= 20
	}
	return clamp(score)
}

// URL scores a URL target's merged signals.
func URL(signals domain.SignalSet) int {
	score := 100
	if !signals.Bool("ssl_valid") {
		score -= 30
	}
	if signals.Bool("malware_detected") {
		score -= 40
	}
	if signals.Bool("phishing_detected") {
		score -= 40
	}
	if signals.Bool("blacklisted") {
		score -= 30
	}
	if signals.Bool("is_exposed") {
		score -= 20
	}
	return clamp(score)
}

// IP scores an IP target's merged signals. The abuse score only counts
// once it crosses 50, and then deducts half its value (integer division).
func IP(signals domain.SignalSet) int {
	score := 100
	if abuse := signals.Int("abuse_score"); abuse > 50 {
		score -= abuse / 2
	}
	score -= 20 * len(signals.Strings("threats"))
	if signals.Bool("is_exposed") {
		score -= 20
	}
	return clamp(score)
}

// ForType returns the calculator matching a target type, or nil for an
// unknown type.
func ForType(t domain.TargetType) func(domain.SignalSet) int {
	switch t {
	case domain.TargetEmail:
		return Email
	case domain.TargetURL:
		return URL
	case domain.TargetIP:
		return IP
	}
	return nil
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
