package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/manan0209/gitroaster/internal/errs"
)

// VoteRepo implements VoteRepository using PostgreSQL.
type VoteRepo struct{ db *DB }

// NewVoteRepo constructs a vote repository.
func NewVoteRepo(db *DB) *VoteRepo { return &VoteRepo{db: db} }

// CastVote records one vote in a single transaction: insert the ledger row,
// then increment the roast's counter in place. The UNIQUE(roast_id,
// fingerprint) constraint makes the insert the authoritative duplicate check;
// two concurrent casts from the same fingerprint cannot both commit. The
// counter update is a relative increment executed by the database, never a
// read-modify-write in the client, so concurrent votes from different
// fingerprints do not lose updates.
func (r *VoteRepo) CastVote(ctx context.Context, voteID, roastID uuid.UUID, fingerprint string) (total int64, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const ins = `INSERT INTO votes (id, roast_id, fingerprint) VALUES ($1,$2,$3)`
	if _, err = tx.Exec(ctx, ins, voteID, roastID, fingerprint); err != nil {
		switch {
		case isUniqueViolation(err):
			return 0, errs.ErrAlreadyVoted
		case isForeignKeyViolation(err):
			return 0, errs.ErrNotFound
		}
		return 0, err
	}

	const inc = `UPDATE roasts SET votes = votes + 1 WHERE id=$1 RETURNING votes`
	if err = tx.QueryRow(ctx, inc, roastID).Scan(&total); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	return total, nil
}

// HasVoted reports whether a ledger row exists for (roast, fingerprint).
func (r *VoteRepo) HasVoted(ctx context.Context, roastID uuid.UUID, fingerprint string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM votes WHERE roast_id=$1 AND fingerprint=$2)`
	var voted bool
	if err := r.db.Pool.QueryRow(ctx, q, roastID, fingerprint).Scan(&voted); err != nil {
		return false, err
	}
	return voted, nil
}

// CountSince counts a fingerprint's ledger rows created at or after since.
func (r *VoteRepo) CountSince(ctx context.Context, fingerprint string, since time.Time) (int, error) {
	const q = `SELECT count(*) FROM votes WHERE fingerprint=$1 AND created_at >= $2`
	var n int
	if err := r.db.Pool.QueryRow(ctx, q, fingerprint, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
