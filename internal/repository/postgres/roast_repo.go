package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/manan0209/gitroaster/internal/errs"
	"github.com/manan0209/gitroaster/internal/model"
)

// RoastRepo implements RoastRepository using PostgreSQL.
type RoastRepo struct{ db *DB }

// NewRoastRepo constructs a roast repository.
func NewRoastRepo(db *DB) *RoastRepo { return &RoastRepo{db: db} }

// Create inserts a new roast row. votes starts at zero; created_at comes
// back from the database so the caller sees the authoritative timestamp.
func (r *RoastRepo) Create(ctx context.Context, rst *model.Roast) error {
	const q = `
INSERT INTO roasts (id, username, repo_name, roast_type, roast_text)
VALUES ($1, $2, NULLIF($3, ''), $4, $5)
RETURNING created_at`
	row := r.db.Pool.QueryRow(ctx, q, rst.ID, rst.Username, rst.RepoName, string(rst.RoastType), rst.RoastText)
	return row.Scan(&rst.CreatedAt)
}

func scanRoast(row pgx.Row) (*model.Roast, error) {
	var (
		rst      model.Roast
		repoName *string
		rtype    string
	)
	if err := row.Scan(&rst.ID, &rst.Username, &repoName, &rtype, &rst.RoastText, &rst.Votes, &rst.CreatedAt); err != nil {
		return nil, err
	}
	if repoName != nil {
		rst.RepoName = *repoName
	}
	rst.RoastType = model.RoastType(rtype)
	return &rst, nil
}

// GetByID selects one roast by id.
func (r *RoastRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Roast, error) {
	const q = `
SELECT id, username, repo_name, roast_type, roast_text, votes, created_at
FROM roasts WHERE id=$1`
	rst, err := scanRoast(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return rst, nil
}

// TopByVotes returns the hall of shame: votes descending, recency breaking ties.
func (r *RoastRepo) TopByVotes(ctx context.Context, limit int) ([]model.Roast, error) {
	const q = `
SELECT id, username, repo_name, roast_type, roast_text, votes, created_at
FROM roasts
ORDER BY votes DESC, created_at DESC
LIMIT $1`
	rows, err := r.db.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Roast
	for rows.Next() {
		rst, err := scanRoast(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rst)
	}
	return out, rows.Err()
}

// DailyRoast returns the roast pointed at by daily_roasts for the given date.
// The pointer table is populated by an external scheduled process.
func (r *RoastRepo) DailyRoast(ctx context.Context, day time.Time) (*model.Roast, error) {
	const q = `
SELECT r.id, r.username, r.repo_name, r.roast_type, r.roast_text, r.votes, r.created_at
FROM daily_roasts d
JOIN roasts r ON r.id = d.roast_id
WHERE d.date = $1`
	rst, err := scanRoast(r.db.Pool.QueryRow(ctx, q, day.Format("2006-01-02")))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return rst, nil
}
