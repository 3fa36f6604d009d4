package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/jonathan/placement-tracker/internal/badges"
	"github.com/jonathan/placement-tracker/internal/catalog"
	"github.com/jonathan/placement-tracker/internal/progress"
	"github.com/jonathan/placement-tracker/internal/repository"
	"github.com/jonathan/placement-tracker/internal/schemas"
	"github.com/jonathan/placement-tracker/internal/types"
)

// ExportFileName is the suggested name of a study progress backup.
const ExportFileName = "study-progress-backup.json"

// maxImportBytes caps the size of an imported progress document.
const maxImportBytes = 1 << 20

// StudyOverview is the study page: the selected category, its topics and a
// progress line per category.
type StudyOverview struct {
	Active     string                  `json:"active"`
	Topics     []types.Topic           `json:"topics"`
	Categories []types.CategorySummary `json:"categories"`
}

// TopicUpdate is the result of marking a topic.
type TopicUpdate struct {
	Topic     types.Topic   `json:"topic"`
	Category  string        `json:"category"`
	Percent   int           `json:"percent"`
	NewBadges []types.Badge `json:"newBadges"`
}

// StudyProgress returns the stored progress with every catalog category present.
// Missing categories are seeded in the returned copy only.
func (s *Service) StudyProgress(ctx context.Context) types.StudyProgress {
	p := s.repo.StudyProgress(ctx)
	for _, key := range catalog.CategoryKeys() {
		if _, ok := p[key]; !ok {
			p[key] = repository.SeedCategory(key)
		}
	}
	return p
}

// Study returns the overview of the active category.
func (s *Service) Study(ctx context.Context) StudyOverview {
	p := s.StudyProgress(ctx)
	active := s.repo.ActiveCategory(ctx)
	return StudyOverview{
		Active:     active,
		Topics:     p[active],
		Categories: progress.Summaries(p),
	}
}

// CategoryTopics returns the topics of one category.
func (s *Service) CategoryTopics(ctx context.Context, category string) ([]types.Topic, error) {
	p := s.StudyProgress(ctx)
	topics, ok := p[category]
	if !ok {
		return nil, &NotFoundError{Kind: "category", ID: category}
	}
	return topics, nil
}

// ActiveCategory returns the selected study category.
func (s *Service) ActiveCategory(ctx context.Context) string {
	return s.repo.ActiveCategory(ctx)
}

// SetActiveCategory selects the category shown by default.
func (s *Service) SetActiveCategory(ctx context.Context, req types.ActiveCategoryRequest) error {
	if err := req.Validate(); err != nil {
		return invalid(err)
	}
	return s.repo.SaveActiveCategory(ctx, req.Category)
}

// SetTopicCompleted marks one topic done or not done and awards any badge the
// new progress qualifies for. Only the touched category is added to the stored
// document; other missing catalog categories stay unwritten.
func (s *Service) SetTopicCompleted(ctx context.Context, category string, topicID int, completed bool) (TopicUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.repo.StudyProgress(ctx)
	topics, ok := p[category]
	if !ok {
		if _, known := catalog.LookupCategory(category); !known {
			return TopicUpdate{}, &NotFoundError{Kind: "category", ID: category}
		}
		topics = repository.SeedCategory(category)
		p[category] = topics
	}
	i := slices.IndexFunc(topics, func(t types.Topic) bool { return t.ID == topicID })
	if i < 0 {
		return TopicUpdate{}, &NotFoundError{Kind: "topic", ID: fmt.Sprintf("%s/%d", category, topicID)}
	}
	topics[i].Completed = completed

	if err := s.repo.SaveStudyProgress(ctx, p); err != nil {
		return TopicUpdate{}, err
	}
	fresh, err := s.refreshBadges(ctx, p)
	if err != nil {
		return TopicUpdate{}, err
	}
	return TopicUpdate{
		Topic:     topics[i],
		Category:  category,
		Percent:   progress.CategoryProgress(topics),
		NewBadges: fresh,
	}, nil
}

// ResetStudy restores every category to its seeded, incomplete state.
// Earned badges are kept.
func (s *Service) ResetStudy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.ClearStudyProgress(ctx); err != nil {
		return err
	}
	s.logger.Info("study progress reset")
	return nil
}

// ExportStudy writes the stored progress as indented JSON.
func (s *Service) ExportStudy(ctx context.Context, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.repo.StudyProgress(ctx)); err != nil {
		return fmt.Errorf("failed to export study progress: %w", err)
	}
	return nil
}

// ImportStudy replaces the stored progress with the document read from r.
// Documents that are not JSON or do not match the progress schema are
// rejected with *ImportError and nothing is written.
func (s *Service) ImportStudy(ctx context.Context, r io.Reader) (types.StudyProgress, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxImportBytes+1))
	if err != nil {
		return nil, &ImportError{Message: "failed to read document", Cause: err}
	}
	if len(raw) > maxImportBytes {
		return nil, &ImportError{Message: fmt.Sprintf("document exceeds %d bytes", maxImportBytes)}
	}
	if err := schemas.ValidateKey(repository.KeyStudyProgress, string(raw)); err != nil {
		return nil, &ImportError{Message: "invalid study progress file", Cause: err}
	}
	var p types.StudyProgress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &ImportError{Message: "invalid study progress file", Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveStudyProgress(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("study progress imported", "categories", len(p))
	return p, nil
}

// refreshBadges derives badges from p, persisting them when any is new.
// Callers hold s.mu.
func (s *Service) refreshBadges(ctx context.Context, p types.StudyProgress) ([]types.Badge, error) {
	before := s.repo.Badges(ctx)
	after := badges.Derive(p, before)
	fresh := badges.NewlyEarned(before, after)
	if len(fresh) == 0 {
		return []types.Badge{}, nil
	}
	if err := s.repo.SaveBadges(ctx, after); err != nil {
		return nil, err
	}
	for _, b := range fresh {
		s.logger.Info("badge earned", "badge", b.Name)
	}
	return fresh, nil
}
