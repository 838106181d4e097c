// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookcatalog/internal/cache"
)

// CacheSweeper periodically evicts expired entries from the in-process
// response cache. The redis backend expires entries server-side and
// does not need one.
type CacheSweeper struct {
	cache    *cache.MemoryCache
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewCacheSweeper creates a sweeper for the given memory cache with a
// standard 5-field cron schedule.
func NewCacheSweeper(c *cache.MemoryCache, schedule string) *CacheSweeper {
	return &CacheSweeper{
		cache:    c,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the sweep job. Calling Start on a running sweeper is
// a no-op.
func (s *CacheSweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return fmt.Errorf("invalid cache sweep schedule %q: %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Cache sweeper scheduled: %s", s.schedule)
	return nil
}

// Stop halts the sweep job. Safe to call on a stopped sweeper.
func (s *CacheSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	s.cron.Remove(s.entryID)
	s.cron.Stop()
	s.isRunning = false
}

func (s *CacheSweeper) sweep() {
	if removed := s.cache.Sweep(); removed > 0 {
		log.Printf("Cache sweep evicted %d expired entries", removed)
	}
}
