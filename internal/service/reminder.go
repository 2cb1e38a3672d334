package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taigen-app/taigen/internal/metrics"
	"github.com/taigen-app/taigen/internal/repository"
)

// ReminderService emails owners of unfinished goals whose deadline is within
// the window. Each goal is reminded at most once.
type ReminderService struct {
	goalRepo     repository.GoalRepository
	userRepo     repository.UserRepository
	reminderRepo repository.ReminderRepository
	emailService *EmailService
	window       time.Duration
	loc          *time.Location
	cron         *cron.Cron
	now          func() time.Time
}

func NewReminderService(
	goalRepo repository.GoalRepository,
	userRepo repository.UserRepository,
	reminderRepo repository.ReminderRepository,
	emailService *EmailService,
	window time.Duration,
	loc *time.Location,
) *ReminderService {
	return &ReminderService{
		goalRepo:     goalRepo,
		userRepo:     userRepo,
		reminderRepo: reminderRepo,
		emailService: emailService,
		window:       window,
		loc:          loc,
		cron:         cron.New(cron.WithLocation(loc), cron.WithSeconds()),
		now:          time.Now,
	}
}

// Schedule registers the reminder run on a six-field cron spec
// (second minute hour dom month dow).
func (s *ReminderService) Schedule(ctx context.Context, spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		sent, err := s.RunOnce(ctx)
		if err != nil {
			slog.Error("reminder run failed", "error", err)
			return
		}
		slog.Info("reminder run finished", "sent", sent)
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return nil
}

func (s *ReminderService) Start() {
	s.cron.Start()
}

func (s *ReminderService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunOnce sends the due reminders and returns how many went out. A failed
// email is logged and retried on the next run.
func (s *ReminderService) RunOnce(ctx context.Context) (int, error) {
	now := s.now().In(s.loc)
	from := calendarDate(now)
	to := calendarDate(now.Add(s.window))

	goals, err := s.goalRepo.DueBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list due goals: %w", err)
	}

	sent := 0
	for _, goal := range goals {
		user, err := s.userRepo.ByID(ctx, goal.UserID)
		if err != nil {
			slog.Warn("reminder skipped, owner not found", "error", err, "goal_id", goal.ID)
			continue
		}

		err = s.emailService.SendDeadlineReminder(ctx, user.Email, goal, now)
		metrics.ObserveReminder(err)
		if err != nil {
			slog.Error("failed to send deadline reminder", "error", err, "goal_id", goal.ID)
			continue
		}

		err = s.reminderRepo.MarkSent(ctx, goal.ID, now.UTC())
		if err != nil {
			slog.Error("failed to mark reminder sent", "error", err, "goal_id", goal.ID)
			continue
		}
		sent++
	}

	return sent, nil
}
