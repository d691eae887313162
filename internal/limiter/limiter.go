// Package limiter bounds how many votes one fingerprint may cast per rolling window.
package limiter

import "context"

// Limiter gates vote submission per anonymous fingerprint.
type Limiter interface {
	// Allow reports whether the fingerprint may cast another vote right now.
	Allow(ctx context.Context, fingerprint string) (bool, error)
}
