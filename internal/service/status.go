package service

import (
	"context"

	"hivewatch/internal/domain"
	"hivewatch/internal/repository"

	"go.uber.org/zap"
)

// StatusService owns the effective ThresholdSet: process-wide defaults merged
// with persisted overrides loaded once at startup. The set is read-only after
// that; threshold mutation is an admin path outside this service.
type StatusService struct {
	repo       repository.ThresholdsRepository
	logger     *zap.Logger
	thresholds domain.ThresholdSet
}

func NewStatusService(repo repository.ThresholdsRepository, logger *zap.Logger) *StatusService {
	return &StatusService{
		repo:       repo,
		logger:     logger,
		thresholds: domain.DefaultThresholds(),
	}
}

// LoadOverrides merges persisted overrides onto the defaults. A load failure
// (for instance a missing table) leaves the defaults in effect.
func (s *StatusService) LoadOverrides(ctx context.Context) {
	if s.repo == nil {
		return
	}
	overrides, err := s.repo.LoadOverrides(ctx)
	if err != nil {
		s.logger.Warn("failed to load threshold overrides, using defaults", zap.Error(err))
		return
	}
	if len(overrides) > 0 {
		s.thresholds = s.thresholds.ApplyOverrides(overrides)
		s.logger.Info("applied threshold overrides", zap.Int("count", len(overrides)))
	}
}

// Thresholds returns the effective ThresholdSet.
func (s *StatusService) Thresholds() domain.ThresholdSet {
	return s.thresholds
}
