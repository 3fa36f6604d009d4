// Package tracker implements the user operations of the placement tracker on
// top of the repository: applications, study progress, study plans, badges and
// the dashboard summary.
//
// Every mutating operation loads the current document, changes a copy and
// writes it back while holding the service mutex, so concurrent callers in one
// process never lose updates. Writers in other processes are last-write-wins.
package tracker

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/placement-tracker/internal/planning"
	"github.com/jonathan/placement-tracker/internal/repository"
	"github.com/jonathan/placement-tracker/internal/timesource"
)

// Service runs tracker operations against a repository.
type Service struct {
	repo     *repository.Repository
	clock    timesource.Clock
	now      func() time.Time
	planOpts planning.Options
	logger   *slog.Logger

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for application dates. Defaults to the local clock.
func WithClock(c timesource.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithNow sets the local clock used for ids, update stamps and "today".
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPlanOptions sets the plan generation options.
func WithPlanOptions(opts planning.Options) Option {
	return func(s *Service) { s.planOpts = opts }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New returns a Service over repo.
func New(repo *repository.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		clock:    timesource.Local,
		now:      time.Now,
		planOpts: planning.DefaultOptions(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository exposes the underlying repository, e.g. for change subscriptions.
func (s *Service) Repository() *repository.Repository {
	return s.repo
}

// nextID returns the current millisecond timestamp, bumped until it is not taken.
func nextID(now time.Time, taken func(int64) bool) int64 {
	id := now.UnixMilli()
	for taken(id) {
		id++
	}
	return id
}
