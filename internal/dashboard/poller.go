package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"hivewatch/internal/domain"
	"hivewatch/internal/evaluator"
)

// StatusFunc receives each accepted poll result.
type StatusFunc func(reading *domain.Reading, state evaluator.AlertState)

// Poller fetches the latest reading on an interval and evaluates it against
// the thresholds. Each fetch runs in its own goroutine so a slow server
// never stalls the ticker; every request carries a sequence number and a
// response older than the newest applied one is discarded. Application runs
// under the same lock as the acceptance check, so the displayed status only
// ever moves forward in request order even when a callback is slow.
type Poller struct {
	client     *Client
	thresholds domain.ThresholdSet
	interval   time.Duration
	onStatus   StatusFunc
	logger     *zap.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
}

func NewPoller(
	client *Client,
	thresholds domain.ThresholdSet,
	interval time.Duration,
	onStatus StatusFunc,
	logger *zap.Logger,
) *Poller {
	return &Poller{
		client:     client,
		thresholds: thresholds,
		interval:   interval,
		onStatus:   onStatus,
		logger:     logger,
	}
}

// Run polls until the context is cancelled. The first poll fires
// immediately rather than one interval in.
func (p *Poller) Run(ctx context.Context) {
	p.pollOnce()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce()
		}
	}
}

func (p *Poller) pollOnce() {
	p.mu.Lock()
	p.issued++
	seq := p.issued
	p.mu.Unlock()

	go func() {
		rd, err := p.client.Latest()
		if err != nil {
			p.logger.Warn("latest reading poll failed", zap.Error(err))
		}
		p.apply(seq, rd, evaluator.Evaluate(rd, err, p.thresholds))
	}()
}

// apply delivers a response unless a newer one has already been applied.
// The callback runs while the lock is held: checking and marking without
// also applying would let a response accepted first finish applying after
// a newer accepted one.
func (p *Poller) apply(seq uint64, rd *domain.Reading, state evaluator.AlertState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.applied {
		return
	}
	p.applied = seq
	p.onStatus(rd, state)
}
