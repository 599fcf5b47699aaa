package postgres

import (
	"context"

	"cybershield/internal/domain"
)

// ResourceRepository

func (db *DB) InsertResource(ctx context.Context, r domain.Resource) (domain.Resource, error) {
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO resources (title, content, category)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.Title, r.Content, r.Category).Scan(&r.ID, &r.CreatedAt)
	return r, err
}

func (db *DB) ListResources(ctx context.Context, category string) ([]domain.Resource, error) {
	q := `SELECT id, title, content, category, created_at FROM resources`
	args := []any{}
	if category != "" {
		q += ` WHERE category = $1`
		args = append(args, category)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Resource
	for rows.Next() {
		var r domain.Resource
		if err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.Category, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
