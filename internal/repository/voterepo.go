package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// VoteRepository is the durable vote ledger plus the denormalized tally.
type VoteRepository interface {
	// CastVote inserts a ledger row and atomically increments the roast's
	// counter in one transaction, returning the new total. The storage-level
	// uniqueness constraint on (roast, fingerprint) is the authoritative
	// duplicate check: a violation surfaces as errs.ErrAlreadyVoted.
	CastVote(ctx context.Context, voteID, roastID uuid.UUID, fingerprint string) (int64, error)
	// HasVoted reports whether a ledger row exists for the pair.
	HasVoted(ctx context.Context, roastID uuid.UUID, fingerprint string) (bool, error)
	// CountSince counts ledger rows for a fingerprint created at or after since.
	CountSince(ctx context.Context, fingerprint string, since time.Time) (int, error)
}
