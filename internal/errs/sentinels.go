// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist
	// (GitHub user or repository, roast, or featured roast).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyVoted indicates the (roast, fingerprint) pair already has a ledger row.
	ErrAlreadyVoted = errors.New("already voted")

	// ErrRateLimited indicates too many votes from one fingerprint within the window.
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstreamUnavailable indicates the completion endpoint failed or returned
	// output too short to be usable.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
