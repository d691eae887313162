package limiter

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Defaults for the vote ceiling.
const (
	DefaultWindow  = time.Hour
	DefaultMaxVote = 20
)

// PG is a PostgreSQL-backed limiter counting ledger rows inside a sliding
// window. The votes table itself is the counter: no separate bookkeeping
// state can drift from the ledger.
type PG struct {
	pool     pgxQuerier
	window   time.Duration
	maxVotes int
}

type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPG constructs a PostgreSQL-backed limiter.
func NewPG(pool *pgxpool.Pool, window time.Duration, maxVotes int) *PG {
	return NewPGWithQuerier(pool, window, maxVotes)
}

// NewPGWithQuerier constructs a limiter over any querier (for tests).
func NewPGWithQuerier(q pgxQuerier, window time.Duration, maxVotes int) *PG {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxVotes <= 0 {
		maxVotes = DefaultMaxVote
	}
	return &PG{pool: q, window: window, maxVotes: maxVotes}
}

// Allow reports whether the fingerprint is under the ceiling for the trailing
// window, regardless of which roasts the votes targeted.
func (l *PG) Allow(ctx context.Context, fingerprint string) (bool, error) {
	const q = `SELECT count(*) FROM votes WHERE fingerprint=$1 AND created_at >= $2`
	var n int
	since := time.Now().Add(-l.window)
	if err := l.pool.QueryRow(ctx, q, fingerprint, since).Scan(&n); err != nil {
		return false, err
	}
	return n < l.maxVotes, nil
}
