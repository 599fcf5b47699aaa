package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"cybershield/internal/domain"
)

// ThreatRepository

func (db *DB) InsertThreat(ctx context.Context, t domain.CommunityThreat) (domain.CommunityThreat, error) {
	details, err := json.Marshal(t.Details)
	if err != nil {
		return domain.CommunityThreat{}, fmt.Errorf("marshal details: %w", err)
	}
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO community_threats (target, type, threat_type, severity, reported_by, details, reported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, t.Target, string(t.Type), t.ThreatType, t.Severity, t.ReportedBy, details, t.ReportedAt).Scan(&t.ID)
	return t, err
}

func (db *DB) ListThreats(ctx context.Context) ([]domain.CommunityThreat, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, target, type, threat_type, severity, COALESCE(reported_by, ''), details, reported_at
		FROM community_threats
		ORDER BY reported_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CommunityThreat
	for rows.Next() {
		var t domain.CommunityThreat
		var typ string
		var details []byte
		if err := rows.Scan(&t.ID, &t.Target, &typ, &t.ThreatType, &t.Severity, &t.ReportedBy, &details, &t.ReportedAt); err != nil {
			return nil, err
		}
		t.Type = domain.TargetType(typ)
		if len(details) > 0 {
			if err := json.Unmarshal(details, &t.Details); err != nil {
				return nil, fmt.Errorf("unmarshal details: %w", err)
			}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
