// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/manan0209/gitroaster/internal/model"
)

// RoastRepository provides access to persisted roasts and the daily feature.
type RoastRepository interface {
	// Create inserts a new roast and fills its CreatedAt from the database.
	Create(ctx context.Context, r *model.Roast) error
	// GetByID loads one roast.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Roast, error)
	// TopByVotes returns up to limit roasts ordered by votes descending,
	// ties broken by creation time descending.
	TopByVotes(ctx context.Context, limit int) ([]model.Roast, error)
	// DailyRoast returns the roast featured on the given calendar date.
	DailyRoast(ctx context.Context, day time.Time) (*model.Roast, error)
}
