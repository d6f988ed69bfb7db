package repository

import (
	"context"

	"hivewatch/internal/domain"
)

// ReadingsRepository is the Reading Store boundary: the only operations the
// core pipeline consumes from the persistence engine.
type ReadingsRepository interface {
	// Insert persists a reading. A zero Timestamp is assigned by the store;
	// the reading's ID and Timestamp are filled in on return.
	Insert(ctx context.Context, r *domain.Reading) error

	// Latest returns the most recent reading, or (nil, nil) for an empty store.
	Latest(ctx context.Context) (*domain.Reading, error)

	// Range returns readings matching both the date-range and time-of-day
	// predicates of q, ascending by timestamp, at most limit rows (the
	// earliest in range). Time-of-day bounds compare at whole-second
	// granularity, per HistoryQuery.Matches. q must already be validated.
	Range(ctx context.Context, q domain.HistoryQuery, limit int) ([]domain.Reading, error)

	// Extent returns the overall min/max timestamp aggregate.
	Extent(ctx context.Context) (domain.Extent, error)
}

// ThresholdsRepository loads persisted threshold overrides. Mutation is an
// admin concern handled outside this service.
type ThresholdsRepository interface {
	LoadOverrides(ctx context.Context) (map[string]float64, error)
}
