// Package service contains application services for roast generation and voting.
package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/manan0209/gitroaster/internal/errs"
	"github.com/manan0209/gitroaster/internal/limiter"
	"github.com/manan0209/gitroaster/internal/repository"
)

// VoteService defines the vote ledger operations.
type VoteService interface {
	// CastVote records one vote and returns the roast's new total.
	CastVote(ctx context.Context, roastID uuid.UUID, fingerprint string) (int64, error)
	// HasVoted is an advisory probe for the UI; it never fails.
	HasVoted(ctx context.Context, roastID uuid.UUID, fingerprint string) bool
}

type VoteServiceImpl struct {
	votes repository.VoteRepository
	lim   limiter.Limiter
	log   *zap.Logger
}

// NewVoteService constructs VoteService with required dependencies.
func NewVoteService(votes repository.VoteRepository, lim limiter.Limiter, log *zap.Logger) *VoteServiceImpl {
	return &VoteServiceImpl{votes: votes, lim: lim, log: log}
}

// CastVote applies the ledger protocol: rate-limit gate, ledger insert
// (storage-enforced uniqueness is the authoritative duplicate check), atomic
// counter increment, new total back to the caller. The per-pair state machine
// is NotVoted -> Voted with no way back: after the first success every retry
// fails with ErrAlreadyVoted and never double-counts.
func (s *VoteServiceImpl) CastVote(ctx context.Context, roastID uuid.UUID, fingerprint string) (int64, error) {
	if roastID == uuid.Nil {
		return 0, errors.New("validation: empty roast id")
	}
	if fingerprint == "" {
		return 0, errors.New("validation: empty fingerprint")
	}

	allowed, err := s.lim.Allow(ctx, fingerprint)
	if err != nil {
		return 0, err
	}
	if !allowed {
		return 0, errs.ErrRateLimited
	}

	voteID, err := uuid.NewV4()
	if err != nil {
		return 0, err
	}
	return s.votes.CastVote(ctx, voteID, roastID, fingerprint)
}

// HasVoted reads the ledger to pre-disable a vote control. Any storage error
// degrades to "not voted": a false negative only lets the user attempt a vote
// that CastVote will reject, while an error here would break the page.
func (s *VoteServiceImpl) HasVoted(ctx context.Context, roastID uuid.UUID, fingerprint string) bool {
	if roastID == uuid.Nil || fingerprint == "" {
		return false
	}
	voted, err := s.votes.HasVoted(ctx, roastID, fingerprint)
	if err != nil {
		s.log.Warn("vote probe failed, degrading to not-voted",
			zap.String("roast_id", roastID.String()),
			zap.Error(err),
		)
		return false
	}
	return voted
}
