package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hivewatch/internal/domain"
	"hivewatch/internal/repository"
	"hivewatch/internal/store"

	"go.uber.org/zap"
)

// ErrValidation marks an incomplete or malformed ingestion payload. It is
// rejected at the boundary and never reaches the store.
var ErrValidation = errors.New("validation failed")

const (
	latestCacheKey = "hive:latest"
	latestCacheTTL = 30 * time.Second
)

// ReadingPayload is the device wire format. Weight and temperature are
// mandatory; humidity and audio may be absent on a sample. A missing
// timestamp is assigned by the store.
type ReadingPayload struct {
	Weight      *float64   `json:"weight"`
	Temperature *float64   `json:"temperature"`
	Humidity    *float64   `json:"humidity"`
	Audio       *int       `json:"audio"`
	Timestamp   *time.Time `json:"timestamp"`
}

// ReadingsService owns the ingestion boundary and the latest-reading read
// path, sharing one optional cache between them. Both the HTTP POST /data
// handler and the MQTT bridge ingest through it, so no reading lacking
// weight or temperature is ever persisted, whatever the transport.
type ReadingsService struct {
	repo   repository.ReadingsRepository
	cache  store.KV // nil when no cache is configured
	logger *zap.Logger
}

func NewReadingsService(repo repository.ReadingsRepository, cache store.KV, logger *zap.Logger) *ReadingsService {
	return &ReadingsService{repo: repo, cache: cache, logger: logger}
}

// Ingest validates and persists one device payload.
func (s *ReadingsService) Ingest(ctx context.Context, p ReadingPayload) (*domain.Reading, error) {
	if p.Weight == nil || p.Temperature == nil {
		return nil, fmt.Errorf("%w: missing required sensor fields (weight, temperature)", ErrValidation)
	}

	rd := &domain.Reading{
		Weight:      *p.Weight,
		Temperature: *p.Temperature,
		Humidity:    p.Humidity,
		Audio:       p.Audio,
	}
	if p.Timestamp != nil {
		rd.Timestamp = *p.Timestamp
	}

	if err := s.repo.Insert(ctx, rd); err != nil {
		return nil, fmt.Errorf("failed to persist reading: %w", err)
	}
	s.cacheLatest(ctx, rd)
	return rd, nil
}

// Latest returns the most recent reading, or nil for an empty store. Cache
// problems degrade to a store read, never to an error.
func (s *ReadingsService) Latest(ctx context.Context) (*domain.Reading, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, latestCacheKey); err == nil {
			var rd domain.Reading
			if err := json.Unmarshal([]byte(val), &rd); err == nil {
				return &rd, nil
			}
		} else if err != store.ErrMiss {
			s.logger.Warn("latest cache read failed", zap.Error(err))
		}
	}

	rd, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if rd != nil {
		s.cacheLatest(ctx, rd)
	}
	return rd, nil
}

func (s *ReadingsService) cacheLatest(ctx context.Context, rd *domain.Reading) {
	if s.cache == nil {
		return
	}
	val, err := json.Marshal(rd)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, latestCacheKey, string(val), latestCacheTTL); err != nil {
		s.logger.Warn("latest cache write failed", zap.Error(err))
	}
}
