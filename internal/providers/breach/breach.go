// Package breach looks up known breach campaigns for an email address.
// The static directory is a placeholder for a real breach-database
// integration; the port boundary is what the orchestrator depends on.
package breach

import "context"

// StaticDirectory serves breach lookups from an in-memory table keyed by
// exact email address.
type StaticDirectory struct {
	entries map[string][]string
}

// NewStatic builds a directory from the given table, or from a small
// built-in sample when entries is nil.
func NewStatic(entries map[string][]string) *StaticDirectory {
	if entries == nil {
		entries = map[string][]string{
			"suspicious@example.com": {"DataBreach2023", "Phishing2022"},
			"test@example.com":       {},
		}
	}
	return &StaticDirectory{entries: entries}
}

// Breaches returns the campaign names recorded for email. Unknown
// addresses yield an empty list, never an error.
func (d *StaticDirectory) Breaches(ctx context.Context, email string) ([]string, error) {
	return d.entries[email], nil
}
