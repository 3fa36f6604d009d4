package tracker

import (
	"context"
	"slices"
	"strings"

	"github.com/jonathan/placement-tracker/internal/planning"
	"github.com/jonathan/placement-tracker/internal/progress"
	"github.com/jonathan/placement-tracker/internal/types"
)

// TodayView is the task scheduled for today in the plan that covers it.
// Plan is nil when no plan covers today; Task is nil when the plan has no task dated today.
type TodayView struct {
	Date       string           `json:"date"`
	Plan       *types.StudyPlan `json:"plan"`
	Index      int              `json:"index"`
	Task       *types.DailyTask `json:"task"`
	Completion int              `json:"completion"`
}

// PreviewPlan generates a plan without saving it.
func (s *Service) PreviewPlan(ctx context.Context, req types.NewPlanRequest) (types.StudyPlan, error) {
	return s.buildPlan(req, s.repo.Plans(ctx))
}

// CreatePlan generates a plan and appends it to the stored plans.
func (s *Service) CreatePlan(ctx context.Context, req types.NewPlanRequest) (types.StudyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans := s.repo.Plans(ctx)
	plan, err := s.buildPlan(req, plans)
	if err != nil {
		return types.StudyPlan{}, err
	}

	plans = append(plans, plan)
	if err := s.repo.SavePlans(ctx, plans); err != nil {
		return types.StudyPlan{}, err
	}
	s.logger.Info("study plan created", "id", plan.ID, "title", plan.Title, "days", plan.Duration)
	return plan, nil
}

func (s *Service) buildPlan(req types.NewPlanRequest, existing []types.StudyPlan) (types.StudyPlan, error) {
	if err := req.Validate(); err != nil {
		return types.StudyPlan{}, invalid(err)
	}
	start, err := planning.ParseDate(req.StartDate)
	if err != nil {
		return types.StudyPlan{}, &ValidationError{Field: "startDate", Message: err.Error(), Cause: err}
	}
	end, err := planning.ParseDate(req.EndDate)
	if err != nil {
		return types.StudyPlan{}, &ValidationError{Field: "endDate", Message: err.Error(), Cause: err}
	}
	if err := planning.ValidateRange(start, end); err != nil {
		return types.StudyPlan{}, invalid(err)
	}

	tasks, err := planning.Generate(start, end, req.Topics, s.planOpts)
	if err != nil {
		return types.StudyPlan{}, invalid(err)
	}

	now := s.now()
	return types.StudyPlan{
		ID: nextID(now, func(id int64) bool {
			return slices.ContainsFunc(existing, func(p types.StudyPlan) bool { return p.ID == id })
		}),
		Title:      strings.TrimSpace(req.Title),
		Topics:     slices.Clone(req.Topics),
		StartDate:  planning.FormatDate(start),
		EndDate:    planning.FormatDate(end),
		DailyTasks: tasks,
		Duration:   len(tasks),
		CreatedAt:  now,
	}, nil
}

// Plans returns every stored plan.
func (s *Service) Plans(ctx context.Context) []types.StudyPlan {
	return s.repo.Plans(ctx)
}

// Plan returns one plan by id.
func (s *Service) Plan(ctx context.Context, id int64) (types.StudyPlan, error) {
	plans := s.repo.Plans(ctx)
	i := slices.IndexFunc(plans, func(p types.StudyPlan) bool { return p.ID == id })
	if i < 0 {
		return types.StudyPlan{}, notFound("plan", id)
	}
	return plans[i], nil
}

// DeletePlan removes a plan by id.
func (s *Service) DeletePlan(ctx context.Context, id int64) error {
	return s.mutatePlans(ctx, func(plans []types.StudyPlan) ([]types.StudyPlan, error) {
		i := slices.IndexFunc(plans, func(p types.StudyPlan) bool { return p.ID == id })
		if i < 0 {
			return nil, notFound("plan", id)
		}
		s.logger.Info("study plan deleted", "id", id)
		return slices.Delete(plans, i, i+1), nil
	})
}

// ToggleTask flips the completion of the task at a 0-based index.
func (s *Service) ToggleTask(ctx context.Context, id int64, index int) (types.DailyTask, error) {
	var task types.DailyTask
	err := s.mutatePlan(ctx, id, func(plan *types.StudyPlan) error {
		if err := planning.ToggleTask(plan.DailyTasks, index); err != nil {
			return invalid(err)
		}
		task = plan.DailyTasks[index]
		return nil
	})
	return task, err
}

// EditDay replaces the text of a 1-based day.
func (s *Service) EditDay(ctx context.Context, id int64, day int, req types.EditDayRequest) (types.DailyTask, error) {
	if err := req.Validate(); err != nil {
		return types.DailyTask{}, invalid(err)
	}
	var task types.DailyTask
	err := s.mutatePlan(ctx, id, func(plan *types.StudyPlan) error {
		if err := planning.EditDay(plan.DailyTasks, day, req.Task); err != nil {
			return invalid(err)
		}
		task = plan.DailyTasks[day-1]
		return nil
	})
	return task, err
}

// EditWeek replaces the texts of a 1-based week; blank entries keep the current text.
func (s *Service) EditWeek(ctx context.Context, id int64, week int, req types.EditWeekRequest) ([]types.DailyTask, error) {
	if err := req.Validate(); err != nil {
		return nil, invalid(err)
	}
	var tasks []types.DailyTask
	err := s.mutatePlan(ctx, id, func(plan *types.StudyPlan) error {
		if err := planning.EditWeek(plan.DailyTasks, week, req.Tasks); err != nil {
			return invalid(err)
		}
		weekTasks, _ := planning.WeekTasks(plan.DailyTasks, week)
		tasks = slices.Clone(weekTasks)
		return nil
	})
	return tasks, err
}

// Today returns the current plan's task for today.
func (s *Service) Today(ctx context.Context) TodayView {
	today := s.now()
	view := TodayView{Date: planning.FormatDate(today), Index: -1}

	plans := s.repo.Plans(ctx)
	plan := planning.CurrentPlan(plans, today)
	if plan == nil {
		return view
	}
	view.Plan = plan
	view.Completion = progress.PlanCompletion(plan.DailyTasks)
	view.Index, view.Task = planning.TodayTask(plan, today)
	return view
}

// Reminders lists upcoming plan weeks that still have days without text.
func (s *Service) Reminders(ctx context.Context) []types.Reminder {
	reminders := planning.WeekReminders(s.repo.Plans(ctx), s.now())
	if reminders == nil {
		return []types.Reminder{}
	}
	return reminders
}

func (s *Service) mutatePlan(ctx context.Context, id int64, fn func(*types.StudyPlan) error) error {
	return s.mutatePlans(ctx, func(plans []types.StudyPlan) ([]types.StudyPlan, error) {
		i := slices.IndexFunc(plans, func(p types.StudyPlan) bool { return p.ID == id })
		if i < 0 {
			return nil, notFound("plan", id)
		}
		if err := fn(&plans[i]); err != nil {
			return nil, err
		}
		return plans, nil
	})
}

func (s *Service) mutatePlans(ctx context.Context, fn func([]types.StudyPlan) ([]types.StudyPlan, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plans, err := fn(s.repo.Plans(ctx))
	if err != nil {
		return err
	}
	return s.repo.SavePlans(ctx, plans)
}
