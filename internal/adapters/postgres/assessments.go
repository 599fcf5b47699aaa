package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"cybershield/internal/domain"
	"cybershield/internal/ports"
)

// AssessmentRepository

func (db *DB) Save(ctx context.Context, reportID, userID string, a domain.Assessment) error {
	threats, err := json.Marshal(a.Threats)
	if err != nil {
		return fmt.Errorf("marshal threats: %w", err)
	}
	details, err := json.Marshal(a.Details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO assessments (report_id, user_id, target, type, score, status, threats, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, reportID, userID, a.Target, string(a.Type), a.Score, a.Status, threats, details, a.CreatedAt)
	return err
}

func (db *DB) GetByReportID(ctx context.Context, reportID, userID string) (domain.Assessment, error) {
	var (
		a       domain.Assessment
		typ     string
		threats []byte
		details []byte
	)
	err := db.Pool.QueryRow(ctx, `
		SELECT target, type, score, status, threats, details, created_at
		FROM assessments
		WHERE report_id = $1 AND user_id = $2
	`, reportID, userID).Scan(&a.Target, &typ, &a.Score, &a.Status, &threats, &details, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Assessment{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Assessment{}, err
	}
	a.Type = domain.TargetType(typ)
	if err := json.Unmarshal(threats, &a.Threats); err != nil {
		return domain.Assessment{}, fmt.Errorf("unmarshal threats: %w", err)
	}
	if err := json.Unmarshal(details, &a.Details); err != nil {
		return domain.Assessment{}, fmt.Errorf("unmarshal details: %w", err)
	}
	return a, nil
}

func (db *DB) ListByUser(ctx context.Context, userID string, page, limit int, typeFilter string) ([]ports.HistoryItem, int, error) {
	var total int
	countQ := `SELECT count(*) FROM assessments WHERE user_id = $1`
	args := []any{userID}
	if typeFilter != "" {
		countQ += ` AND type = $2`
		args = append(args, typeFilter)
	}
	if err := db.Pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQ := `
		SELECT report_id, target, type, score, status, created_at
		FROM assessments
		WHERE user_id = $1`
	if typeFilter != "" {
		listQ += ` AND type = $2`
	}
	listQ += fmt.Sprintf(`
		ORDER BY created_at DESC
		LIMIT %d OFFSET %d`, limit, (page-1)*limit)

	rows, err := db.Pool.Query(ctx, listQ, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []ports.HistoryItem
	for rows.Next() {
		var item ports.HistoryItem
		var typ string
		if err := rows.Scan(&item.ReportID, &item.Target, &typ, &item.Score, &item.Status, &item.CreatedAt); err != nil {
			return nil, 0, err
		}
		item.Type = domain.TargetType(typ)
		items = append(items, item)
	}
	return items, total, rows.Err()
}
