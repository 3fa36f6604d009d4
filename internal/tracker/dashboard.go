package tracker

import (
	"context"
	"strings"

	"github.com/jonathan/placement-tracker/internal/progress"
	"github.com/jonathan/placement-tracker/internal/types"
)

// Dashboard summarizes applications and study progress. Badges the current
// progress qualifies for are awarded and persisted as a side effect.
func (s *Service) Dashboard(ctx context.Context) (types.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.repo.StudyProgress(ctx)
	fresh, err := s.refreshBadges(ctx, p)
	if err != nil {
		return types.Dashboard{}, err
	}

	return types.Dashboard{
		UserName:        s.repo.UserName(ctx),
		Applications:    progress.ApplicationStats(s.repo.Applications(ctx)),
		Categories:      progress.Summaries(p),
		OverallProgress: progress.OverallProgress(p),
		Badges:          s.repo.Badges(ctx),
		NewBadges:       fresh,
	}, nil
}

// UserName returns the display name.
func (s *Service) UserName(ctx context.Context) string {
	return s.repo.UserName(ctx)
}

// SetUserName stores a new display name.
func (s *Service) SetUserName(ctx context.Context, req types.UserNameRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", invalid(err)
	}
	name := strings.TrimSpace(req.Name)
	if err := s.repo.SaveUserName(ctx, name); err != nil {
		return "", err
	}
	return name, nil
}
