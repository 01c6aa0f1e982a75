package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/store"
)

// DefaultSweepInterval is used when NewHousekeepingService gets a
// non-positive interval.
const DefaultSweepInterval = time.Minute

// HousekeepingService periodically drops expired claim records. Writes
// already sweep opportunistically; this covers quiet periods with no writes.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweeper in the background. Call Stop to end it. Only the
// first call has any effect.
func (s *HousekeepingService) Start() {
	s.startOnce.Do(func() {
		s.started = true
		go s.run()
		s.Logger.Info("housekeeping service started", "interval", s.Interval)
	})
}

// Stop ends the sweeper and waits for an in-flight sweep to finish. It is
// safe to call more than once, and without a prior Start.
func (s *HousekeepingService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		// Start after Stop is a no-op.
		s.startOnce.Do(func() {})
		if s.started {
			<-s.doneCh
		}
		s.Logger.Info("housekeeping service stopped")
	})
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep removes expired claims once and returns how many were removed.
func (s *HousekeepingService) Sweep(ctx context.Context) int {
	removed, err := s.Store.Claims().DeleteExpiredClaims(ctx)
	if err != nil {
		s.Logger.Error("failed to delete expired claims", "error", err)
		return 0
	}

	if removed > 0 {
		s.Logger.Debug("expired claims removed", "count", removed)
	}
	return removed
}
