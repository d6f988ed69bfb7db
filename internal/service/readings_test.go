package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hivewatch/internal/domain"
	"hivewatch/internal/store"
)

// fakeKV is an in-memory store.KV without TTL expiry.
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
	sets int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.sets++
	return nil
}

func payload(weight, temp float64) ReadingPayload {
	return ReadingPayload{Weight: &weight, Temperature: &temp}
}

func TestIngest_MissingRequiredFields(t *testing.T) {
	repo := &fakeReadingsRepo{}
	svc := NewReadingsService(repo, nil, zap.NewNop())

	w := 15800.0
	tests := []struct {
		name string
		p    ReadingPayload
	}{
		{"empty payload", ReadingPayload{}},
		{"missing temperature", ReadingPayload{Weight: &w}},
		{"missing weight", ReadingPayload{Temperature: &w}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Ingest(context.Background(), tt.p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, repo.inserted, "invalid payloads must not reach the store")
}

func TestIngest_PersistsAndReturnsStoredReading(t *testing.T) {
	repo := &fakeReadingsRepo{}
	svc := NewReadingsService(repo, nil, zap.NewNop())

	hum := 62.5
	p := payload(15800, 34.2)
	p.Humidity = &hum

	rd, err := svc.Ingest(context.Background(), p)

	require.NoError(t, err)
	require.NotNil(t, rd)
	assert.Equal(t, int64(1), rd.ID)
	assert.False(t, rd.Timestamp.IsZero())
	require.NotNil(t, rd.Humidity)
	assert.Equal(t, 62.5, *rd.Humidity)
	assert.Nil(t, rd.Audio)
	require.Len(t, repo.inserted, 1)
}

func TestIngest_UpdatesLatestCache(t *testing.T) {
	repo := &fakeReadingsRepo{}
	kv := newFakeKV()
	svc := NewReadingsService(repo, kv, zap.NewNop())

	_, err := svc.Ingest(context.Background(), payload(15800, 34.2))
	require.NoError(t, err)

	cached, err := kv.Get(context.Background(), "hive:latest")
	require.NoError(t, err)
	var rd domain.Reading
	require.NoError(t, json.Unmarshal([]byte(cached), &rd))
	assert.Equal(t, 15800.0, rd.Weight)
}

func TestLatest_CacheHitSkipsStore(t *testing.T) {
	stored := &domain.Reading{ID: 9, Weight: 15000, Temperature: 34}
	repo := &fakeReadingsRepo{latest: stored}
	kv := newFakeKV()
	svc := NewReadingsService(repo, kv, zap.NewNop())

	cached := domain.Reading{ID: 10, Weight: 15900, Temperature: 35}
	raw, _ := json.Marshal(cached)
	require.NoError(t, kv.Set(context.Background(), "hive:latest", string(raw), 0))
	kv.sets = 0

	rd, err := svc.Latest(context.Background())

	require.NoError(t, err)
	require.NotNil(t, rd)
	assert.Equal(t, int64(10), rd.ID)
	assert.Zero(t, kv.sets, "a cache hit must not rewrite the cache")
}

func TestLatest_CacheMissFallsBackAndRecaches(t *testing.T) {
	stored := &domain.Reading{ID: 9, Weight: 15000, Temperature: 34}
	repo := &fakeReadingsRepo{latest: stored}
	kv := newFakeKV()
	svc := NewReadingsService(repo, kv, zap.NewNop())

	rd, err := svc.Latest(context.Background())

	require.NoError(t, err)
	require.NotNil(t, rd)
	assert.Equal(t, int64(9), rd.ID)
	assert.Equal(t, 1, kv.sets)
}

func TestLatest_NoCacheConfigured(t *testing.T) {
	repo := &fakeReadingsRepo{latest: &domain.Reading{ID: 3, Weight: 15000, Temperature: 34}}
	svc := NewReadingsService(repo, nil, zap.NewNop())

	rd, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rd)
	assert.Equal(t, int64(3), rd.ID)
}

func TestLatest_EmptyStore(t *testing.T) {
	repo := &fakeReadingsRepo{}
	svc := NewReadingsService(repo, nil, zap.NewNop())

	rd, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rd)
}
