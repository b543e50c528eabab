package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/umputun/newsdeck/pkg/domain"
)

//go:generate moq -out mocks/loader.go -pkg mocks -skip-ensure -fmt goimports . Loader

// DefaultSpec reloads expired feeds every five minutes
const DefaultSpec = "@every 5m"

// Loader requests a feed load, served from cache while it is fresh
type Loader interface {
	RequestLoad(kind domain.FeedKind) error
}

// Params holds scheduler configuration
type Params struct {
	Loader Loader
	Spec   string // cron spec, standard 5 fields or descriptors like "@every 10m"
	Feeds  []domain.FeedKind
}

// Scheduler triggers background feed loads on a cron schedule
type Scheduler struct {
	loader Loader
	spec   string
	feeds  []domain.FeedKind

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
}

// NewScheduler creates a new scheduler instance, empty spec and feeds mean defaults
func NewScheduler(p Params) *Scheduler {
	if p.Spec == "" {
		p.Spec = DefaultSpec
	}
	if len(p.Feeds) == 0 {
		p.Feeds = domain.AllFeeds
	}
	return &Scheduler{loader: p.Loader, spec: p.Spec, feeds: p.Feeds}
}

// Start loads all feeds once and schedules the next loads
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return errors.New("scheduler already started")
	}

	c := cron.New()
	id, err := c.AddFunc(s.spec, s.LoadNow)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
	}
	s.cron, s.entryID = c, id

	s.LoadNow()
	c.Start()
	lgr.Printf("[INFO] scheduler started with %q, next run at %s", s.spec, c.Entry(id).Schedule.Next(time.Now()).Format(time.RFC3339))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop stops the schedule. Loads already requested keep running in the coordinator.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	lgr.Printf("[INFO] scheduler stopped")
}

// NextRun returns the time of the next scheduled load, zero if not running
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// LoadNow requests a load of every configured feed
func (s *Scheduler) LoadNow() {
	for _, kind := range s.feeds {
		if err := s.loader.RequestLoad(kind); err != nil {
			lgr.Printf("[WARN] scheduled load of %s failed: %v", kind, err)
			continue
		}
		lgr.Printf("[DEBUG] scheduled load of %s requested", kind)
	}
}
