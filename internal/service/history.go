package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hivewatch/internal/domain"
	"hivewatch/internal/repository"

	"go.uber.org/zap"
)

// MaxHistoryRows caps every history result at the earliest rows in range.
const MaxHistoryRows = 500

// ErrInvalidQuery marks a malformed or incomplete history filter. Such a
// request is rejected before the store is touched, never turned into an
// unbounded query.
var ErrInvalidQuery = errors.New("invalid history query")

// HistoryService translates user-specified date+time filters into store
// queries and derives the default window when no filter was given.
type HistoryService struct {
	repo   repository.ReadingsRepository
	logger *zap.Logger
}

func NewHistoryService(repo repository.ReadingsRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{repo: repo, logger: logger}
}

// Query returns the readings matching q, ascending by timestamp, capped at
// MaxHistoryRows. An empty result is valid output (inverted ranges included),
// not an error.
func (s *HistoryService) Query(ctx context.Context, q domain.HistoryQuery) ([]domain.Reading, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	rows, err := s.repo.Range(ctx, q, MaxHistoryRows)
	if err != nil {
		s.logger.Error("history query failed",
			zap.String("start_date", q.StartDate),
			zap.String("end_date", q.EndDate),
			zap.Error(err),
		)
		return nil, err
	}
	if rows == nil {
		rows = []domain.Reading{}
	}
	return rows, nil
}

// DefaultWindow derives the filter for callers with no explicit filter yet,
// anchored on the store's newest reading. A failed extent lookup degrades to
// a now-anchored window.
func (s *HistoryService) DefaultWindow(ctx context.Context, now time.Time) domain.HistoryQuery {
	ext, err := s.repo.Extent(ctx)
	if err != nil {
		s.logger.Warn("failed to load readings extent, using now-anchored default window", zap.Error(err))
		ext = domain.Extent{}
	}
	return domain.DefaultWindow(ext, now)
}

// Extent exposes the store's min/max timestamp aggregate for the filter form's
// date limits.
func (s *HistoryService) Extent(ctx context.Context) (domain.Extent, error) {
	ext, err := s.repo.Extent(ctx)
	if err != nil {
		s.logger.Error("failed to load readings extent", zap.Error(err))
		return domain.Extent{}, err
	}
	return ext, nil
}
