package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"hivewatch/internal/domain"
)

// MemoryReadingsRepository is an in-memory ReadingsRepository with the same
// predicate semantics as the Postgres one. Used for local development
// (DB_ENABLED=false) and in tests.
type MemoryReadingsRepository struct {
	mu       sync.RWMutex
	nextID   int64
	readings []domain.Reading
}

func NewMemoryReadingsRepository() *MemoryReadingsRepository {
	return &MemoryReadingsRepository{nextID: 1}
}

var _ ReadingsRepository = (*MemoryReadingsRepository)(nil)

func (m *MemoryReadingsRepository) Insert(_ context.Context, r *domain.Reading) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	r.ID = m.nextID
	m.nextID++
	m.readings = append(m.readings, *r)
	return nil
}

func (m *MemoryReadingsRepository) Latest(_ context.Context) (*domain.Reading, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.readings) == 0 {
		return nil, nil
	}
	latest := m.readings[0]
	for _, r := range m.readings[1:] {
		if r.Timestamp.After(latest.Timestamp) ||
			(r.Timestamp.Equal(latest.Timestamp) && r.ID > latest.ID) {
			latest = r
		}
	}
	return &latest, nil
}

func (m *MemoryReadingsRepository) Range(_ context.Context, q domain.HistoryQuery, limit int) ([]domain.Reading, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []domain.Reading
	for _, r := range m.readings {
		if q.Matches(r.Timestamp) {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Timestamp.Equal(results[j].Timestamp) {
			return results[i].ID < results[j].ID
		}
		return results[i].Timestamp.Before(results[j].Timestamp)
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *MemoryReadingsRepository) Extent(_ context.Context) (domain.Extent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.readings) == 0 {
		return domain.Extent{}, nil
	}
	min, max := m.readings[0].Timestamp, m.readings[0].Timestamp
	for _, r := range m.readings[1:] {
		if r.Timestamp.Before(min) {
			min = r.Timestamp
		}
		if r.Timestamp.After(max) {
			max = r.Timestamp
		}
	}
	return domain.Extent{Min: &min, Max: &max}, nil
}
