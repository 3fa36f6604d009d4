// Package repository reads and writes the tracker's persisted documents.
//
// Every read validates the stored JSON against its schema before decoding.
// A missing key yields the default silently; an unreadable or invalid one is
// logged at warn level and also yields the default. Every successful write
// notifies subscribers synchronously.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/placement-tracker/internal/catalog"
	"github.com/jonathan/placement-tracker/internal/schemas"
	"github.com/jonathan/placement-tracker/internal/store"
	"github.com/jonathan/placement-tracker/internal/types"
)

// Persisted keys.
const (
	KeyCompanies      = "companies"
	KeyStudyProgress  = "studyProgress"
	KeyActiveCategory = "activeStudyCategory"
	KeyStudyPlans     = "studyPlans"
	KeyEarnedBadges   = "earnedBadges"
	KeyUserName       = "userName"
)

// DefaultUserName is shown until the user sets a name.
const DefaultUserName = "Guest"

// Change announces that a key was rewritten.
type Change struct {
	Key string    `json:"key"`
	At  time.Time `json:"at"`
}

// Repository is the typed view of a Store.
type Repository struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	subs   map[int]func(Change)
	nextID int
}

// New wraps s. A nil logger uses slog.Default().
func New(s store.Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		store:  s,
		logger: logger,
		now:    time.Now,
		subs:   make(map[int]func(Change)),
	}
}

// Subscribe registers fn for every subsequent write. The returned function
// removes the subscription and is safe to call more than once.
func (r *Repository) Subscribe(fn func(Change)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}

func (r *Repository) publish(key string) {
	change := Change{Key: key, At: r.now()}

	r.mu.RLock()
	handlers := make([]func(Change), 0, len(r.subs))
	for _, fn := range r.subs {
		handlers = append(handlers, fn)
	}
	r.mu.RUnlock()

	for _, fn := range handlers {
		fn(change)
	}
}

// load decodes key into out. It reports false when the default should be used.
func (r *Repository) load(ctx context.Context, key string, out any) bool {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		r.logger.Warn("failed to read key, using default", "key", key, "error", err)
		return false
	}
	if err := schemas.ValidateKey(key, raw); err != nil {
		r.logger.Warn("stored value failed validation, using default", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		r.logger.Warn("failed to decode key, using default", "key", key, "error", err)
		return false
	}
	return true
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	r.logger.Debug("saved key", "key", key, "bytes", len(data))
	r.publish(key)
	return nil
}

// Applications returns the tracked applications, empty by default.
func (r *Repository) Applications(ctx context.Context) []types.Application {
	var apps []types.Application
	if !r.load(ctx, KeyCompanies, &apps) || apps == nil {
		return []types.Application{}
	}
	return apps
}

// SaveApplications replaces the application list.
func (r *Repository) SaveApplications(ctx context.Context, apps []types.Application) error {
	if apps == nil {
		apps = []types.Application{}
	}
	return r.save(ctx, KeyCompanies, apps)
}

// StudyProgress returns the stored progress, or every catalog category freshly seeded.
func (r *Repository) StudyProgress(ctx context.Context) types.StudyProgress {
	var p types.StudyProgress
	if !r.load(ctx, KeyStudyProgress, &p) || p == nil {
		return SeedProgress()
	}
	return p
}

// SaveStudyProgress replaces the whole progress document.
func (r *Repository) SaveStudyProgress(ctx context.Context, p types.StudyProgress) error {
	if p == nil {
		p = types.StudyProgress{}
	}
	return r.save(ctx, KeyStudyProgress, p)
}

// ClearStudyProgress removes the stored progress so the next read returns the
// seeded catalog.
func (r *Repository) ClearStudyProgress(ctx context.Context) error {
	if err := r.store.Delete(ctx, KeyStudyProgress); err != nil {
		return fmt.Errorf("failed to clear %s: %w", KeyStudyProgress, err)
	}
	r.logger.Debug("cleared key", "key", KeyStudyProgress)
	r.publish(KeyStudyProgress)
	return nil
}

// ActiveCategory returns the selected study category, catalog.DefaultCategory by default.
func (r *Repository) ActiveCategory(ctx context.Context) string {
	var key string
	if !r.load(ctx, KeyActiveCategory, &key) || key == "" {
		return catalog.DefaultCategory
	}
	return key
}

// SaveActiveCategory stores the selected study category.
func (r *Repository) SaveActiveCategory(ctx context.Context, key string) error {
	return r.save(ctx, KeyActiveCategory, key)
}

// Plans returns the study plans, empty by default.
func (r *Repository) Plans(ctx context.Context) []types.StudyPlan {
	var plans []types.StudyPlan
	if !r.load(ctx, KeyStudyPlans, &plans) || plans == nil {
		return []types.StudyPlan{}
	}
	return plans
}

// SavePlans replaces the plan list.
func (r *Repository) SavePlans(ctx context.Context, plans []types.StudyPlan) error {
	if plans == nil {
		plans = []types.StudyPlan{}
	}
	return r.save(ctx, KeyStudyPlans, plans)
}

// Badges returns the earned badges, empty by default.
func (r *Repository) Badges(ctx context.Context) []types.Badge {
	var badges []types.Badge
	if !r.load(ctx, KeyEarnedBadges, &badges) || badges == nil {
		return []types.Badge{}
	}
	return badges
}

// SaveBadges replaces the earned badge list.
func (r *Repository) SaveBadges(ctx context.Context, badges []types.Badge) error {
	if badges == nil {
		badges = []types.Badge{}
	}
	return r.save(ctx, KeyEarnedBadges, badges)
}

// UserName returns the display name, DefaultUserName by default.
func (r *Repository) UserName(ctx context.Context) string {
	var name string
	if !r.load(ctx, KeyUserName, &name) || name == "" {
		return DefaultUserName
	}
	return name
}

// SaveUserName stores the display name.
func (r *Repository) SaveUserName(ctx context.Context, name string) error {
	return r.save(ctx, KeyUserName, name)
}

// SeedProgress returns every catalog category with all topics incomplete.
func SeedProgress() types.StudyProgress {
	p := make(types.StudyProgress)
	for _, key := range catalog.CategoryKeys() {
		p[key] = SeedCategory(key)
	}
	return p
}

// SeedCategory returns the catalog topics of one category, all incomplete.
func SeedCategory(key string) []types.Topic {
	seeds := catalog.SeedTopics(key)
	topics := make([]types.Topic, len(seeds))
	for i, s := range seeds {
		topics[i] = types.Topic{ID: s.ID, Name: s.Name}
	}
	return topics
}
