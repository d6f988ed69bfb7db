package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivewatch/internal/domain"
)

func insertAt(t *testing.T, repo *MemoryReadingsRepository, ts time.Time, weight float64) domain.Reading {
	t.Helper()
	rd := domain.Reading{Weight: weight, Temperature: 34.0, Timestamp: ts}
	require.NoError(t, repo.Insert(context.Background(), &rd))
	return rd
}

func TestMemoryRange_TimeOfDayRecursDaily(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	ctx := context.Background()

	// Three days, one morning and one night sample each.
	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 3; day++ {
		insertAt(t, repo, base.AddDate(0, 0, day).Add(9*time.Hour), 15000+float64(day))
		insertAt(t, repo, base.AddDate(0, 0, day).Add(22*time.Hour), 16000+float64(day))
	}

	q := domain.HistoryQuery{
		StartDate: "2026-08-20",
		EndDate:   "2026-08-22",
		StartTime: "08:00:00",
		EndTime:   "18:00:00",
	}
	results, err := repo.Range(ctx, q, 500)

	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, rd := range results {
		assert.Equal(t, 9, rd.Timestamp.Hour(), "result %d should be a morning sample", i)
	}
}

func TestMemoryRange_CapKeepsEarliest(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 600; i++ {
		insertAt(t, repo, base.Add(time.Duration(i)*time.Minute), 15000)
	}

	q := domain.HistoryQuery{
		StartDate: "2026-08-25",
		EndDate:   "2026-08-25",
		StartTime: "00:00:00",
		EndTime:   "23:59:59",
	}
	results, err := repo.Range(ctx, q, 500)

	require.NoError(t, err)
	require.Len(t, results, 500)
	assert.Equal(t, base, results[0].Timestamp)
	assert.Equal(t, base.Add(499*time.Minute), results[499].Timestamp)
}

func TestMemoryRange_BoundariesInclusive(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	ctx := context.Background()

	on := insertAt(t, repo, time.Date(2026, 8, 25, 18, 0, 0, 0, time.UTC), 15000)
	insertAt(t, repo, time.Date(2026, 8, 25, 18, 0, 1, 0, time.UTC), 15001)

	q := domain.HistoryQuery{
		StartDate: "2026-08-25",
		EndDate:   "2026-08-25",
		StartTime: "08:00:00",
		EndTime:   "18:00:00",
	}
	results, err := repo.Range(ctx, q, 500)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, on.ID, results[0].ID)
}

func TestMemoryRange_FractionalSecondsTruncatedAtBoundary(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	ctx := context.Background()

	// Store-assigned timestamps carry sub-second precision; a reading half
	// a second into the boundary second still belongs to 18:00:00.
	within := insertAt(t, repo, time.Date(2026, 8, 25, 18, 0, 0, 500_000_000, time.UTC), 15000)
	insertAt(t, repo, time.Date(2026, 8, 25, 18, 0, 1, 0, time.UTC), 15001)

	q := domain.HistoryQuery{
		StartDate: "2026-08-25",
		EndDate:   "2026-08-25",
		StartTime: "08:00:00",
		EndTime:   "18:00:00",
	}
	results, err := repo.Range(ctx, q, 500)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, within.ID, results[0].ID)
}

func TestMemoryRange_SingleInstantWindow(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	ctx := context.Background()

	insertAt(t, repo, time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), 15000)

	q := domain.HistoryQuery{
		StartDate: "2026-08-25",
		EndDate:   "2026-08-25",
		StartTime: "12:00:00",
		EndTime:   "12:00:00",
	}
	results, err := repo.Range(ctx, q, 500)
	require.NoError(t, err)
	require.Len(t, results, 1)

	q.StartTime, q.EndTime = "13:00:00", "13:00:00"
	results, err = repo.Range(ctx, q, 500)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryRange_InvertedRangeMatchesNothing(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	ctx := context.Background()
	insertAt(t, repo, time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), 15000)

	q := domain.HistoryQuery{
		StartDate: "2026-08-26",
		EndDate:   "2026-08-25",
		StartTime: "00:00:00",
		EndTime:   "23:59:59",
	}
	results, err := repo.Range(ctx, q, 500)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemoryLatest_OrderIndependent(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	ctx := context.Background()

	newest := insertAt(t, repo, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), 15300)
	insertAt(t, repo, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC), 15100)
	insertAt(t, repo, time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC), 15200)

	rd, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, rd)
	assert.Equal(t, newest.ID, rd.ID)
}

func TestMemoryLatest_Empty(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	rd, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rd)
}

func TestMemoryExtent(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	ctx := context.Background()

	ext, err := repo.Extent(ctx)
	require.NoError(t, err)
	assert.Nil(t, ext.Min)
	assert.Nil(t, ext.Max)

	min := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	max := time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC)
	insertAt(t, repo, max, 15300)
	insertAt(t, repo, min, 15100)

	ext, err = repo.Extent(ctx)
	require.NoError(t, err)
	require.NotNil(t, ext.Min)
	require.NotNil(t, ext.Max)
	assert.Equal(t, min, *ext.Min)
	assert.Equal(t, max, *ext.Max)
}

func TestMemoryInsert_AssignsIDsAndTimestamp(t *testing.T) {
	repo := NewMemoryReadingsRepository()
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		rd := domain.Reading{Weight: 15000, Temperature: 34}
		require.NoError(t, repo.Insert(ctx, &rd))
		assert.False(t, rd.Timestamp.IsZero())
		ids = append(ids, rd.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}
