// Package scheduler runs the background maintenance jobs: sweeping expired
// cache entries and warming the equity universe before the session opens.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"stocksense/internal/domain"
	"stocksense/internal/pricecache"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// every 15 minutes, keeps the price cache from holding dead entries
	sweepSpec = "*/15 * * * *"
	// weekdays at 08:45 local, half an hour before the NSE open
	warmUniverseSpec = "45 8 * * 1-5"
)

type UniverseWarmer interface {
	Listings(ctx context.Context) ([]domain.Listing, error)
}

type Scheduler struct {
	cron     *cron.Cron
	cache    *pricecache.Store
	universe UniverseWarmer
	log      *zap.SugaredLogger
}

func New(location *time.Location, cache *pricecache.Store, universe UniverseWarmer, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		cache:    cache,
		universe: universe,
		log:      log,
	}
}

func (s *Scheduler) Register() error {
	if _, err := s.cron.AddFunc(sweepSpec, s.sweepCache); err != nil {
		return fmt.Errorf("register cache sweep: %w", err)
	}
	if _, err := s.cron.AddFunc(warmUniverseSpec, s.warmUniverse); err != nil {
		return fmt.Errorf("register universe warm: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infow("scheduler started")
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Infow("scheduler stopped")
}

func (s *Scheduler) sweepCache() {
	removed := s.cache.Sweep()
	if removed > 0 {
		s.log.Infow("swept price cache", "removed", removed)
	}
}

func (s *Scheduler) warmUniverse() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	listings, err := s.universe.Listings(ctx)
	if err != nil {
		s.log.Warnw("universe warm failed", "error", err)
		return
	}
	s.log.Infow("warmed equity universe", "count", len(listings))
}
