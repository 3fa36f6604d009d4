package tracker

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/placement-tracker/internal/catalog"
	"github.com/jonathan/placement-tracker/internal/progress"
	"github.com/jonathan/placement-tracker/internal/types"
)

// Applications returns the tracked applications, optionally filtered by status.
// An empty filter or "All" returns everything.
func (s *Service) Applications(ctx context.Context, filter string) ([]types.Application, error) {
	if filter != "" && filter != progress.FilterAll && !types.ApplicationStatus(filter).Valid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", filter)}
	}
	apps := s.repo.Applications(ctx)
	if filter == "" {
		return apps, nil
	}
	return progress.FilterByStatus(apps, filter), nil
}

// AddApplication records a new application in status Applied.
func (s *Service) AddApplication(ctx context.Context, req types.NewApplicationRequest) (types.Application, error) {
	if err := req.Validate(); err != nil {
		return types.Application{}, invalid(err)
	}

	applied := s.clock.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	apps := s.repo.Applications(ctx)
	now := s.now()
	app := types.Application{
		ID: nextID(now, func(id int64) bool {
			return slices.ContainsFunc(apps, func(a types.Application) bool { return a.ID == id })
		}),
		Name:         strings.TrimSpace(req.Name),
		Role:         orDefault(req.Role, catalog.DefaultRole),
		Location:     orDefault(req.Location, catalog.DefaultLocation),
		PackageRange: orDefault(req.PackageRange, catalog.DefaultPackageRange),
		Status:       types.StatusApplied,
		AppliedDate:  applied,
		LastUpdated:  now,
	}

	apps = append(apps, app)
	if err := s.repo.SaveApplications(ctx, apps); err != nil {
		return types.Application{}, err
	}
	s.logger.Info("application added", "id", app.ID, "name", app.Name)
	return app, nil
}

// UpdateApplicationStatus moves an application to any status and stamps lastUpdated.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id int64, req types.StatusUpdateRequest) (types.Application, error) {
	if err := req.Validate(); err != nil {
		return types.Application{}, invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	apps := s.repo.Applications(ctx)
	i := slices.IndexFunc(apps, func(a types.Application) bool { return a.ID == id })
	if i < 0 {
		return types.Application{}, notFound("application", id)
	}
	apps[i].Status = req.Status
	apps[i].LastUpdated = s.now()

	if err := s.repo.SaveApplications(ctx, apps); err != nil {
		return types.Application{}, err
	}
	s.logger.Info("application status changed", "id", id, "status", req.Status)
	return apps[i], nil
}

// DeleteApplication removes an application by id.
func (s *Service) DeleteApplication(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := s.repo.Applications(ctx)
	i := slices.IndexFunc(apps, func(a types.Application) bool { return a.ID == id })
	if i < 0 {
		return notFound("application", id)
	}
	apps = slices.Delete(apps, i, i+1)

	if err := s.repo.SaveApplications(ctx, apps); err != nil {
		return err
	}
	s.logger.Info("application deleted", "id", id)
	return nil
}

// ApplicationStats counts applications per status.
func (s *Service) ApplicationStats(ctx context.Context) types.ApplicationStats {
	return progress.ApplicationStats(s.repo.Applications(ctx))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
