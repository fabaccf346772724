package revocation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"scribe/internal/domain/service"
)

// Sweeper periodically purges expired entries from a registry.
type Sweeper struct {
	registry service.RevocationRegistry
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	cancel context.CancelFunc
	done   sync.WaitGroup
}

// NewSweeper creates a sweeper; call Start to begin purging.
func NewSweeper(registry service.RevocationRegistry, interval time.Duration, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}

	return &Sweeper{
		registry: registry,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches the purge loop. It returns immediately.
func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.done.Add(1)
	go func() {
		defer s.done.Done()
		s.run(ctx)
	}()
}

// Stop ends the purge loop and waits for it to exit.
func (s *Sweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.done.Wait()
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	purged, err := s.registry.Purge(ctx, s.now())
	if err != nil {
		s.logger.WarnContext(ctx, "Revocation purge failed", slog.Any("error", err))

		return
	}
	if purged > 0 {
		s.logger.DebugContext(ctx, "Revocation entries purged", slog.Int("count", purged))
	}
}
