package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/taigen-app/taigen/internal/gateway"
	"github.com/taigen-app/taigen/internal/goalstore"
	"github.com/taigen-app/taigen/internal/model"
	"github.com/taigen-app/taigen/internal/repository"
)

// GoalService is the table half of the gateway, backed by the app database.
type GoalService struct {
	db                 *sqlx.DB
	goalRepo           repository.GoalRepository
	milestoneRepo      repository.MilestoneRepository
	progressUpdateRepo repository.ProgressUpdateRepository
}

var _ gateway.Tables = (*GoalService)(nil)

func NewGoalService(
	db *sqlx.DB,
	goalRepo repository.GoalRepository,
	milestoneRepo repository.MilestoneRepository,
	progressUpdateRepo repository.ProgressUpdateRepository,
) *GoalService {
	return &GoalService{
		db:                 db,
		goalRepo:           goalRepo,
		milestoneRepo:      milestoneRepo,
		progressUpdateRepo: progressUpdateRepo,
	}
}

func (s *GoalService) GoalsByOwner(ctx context.Context, userID string) ([]*model.Goal, error) {
	return s.goalRepo.Goals(ctx, userID)
}

func (s *GoalService) InsertGoal(ctx context.Context, ng gateway.NewGoal) (*model.Goal, error) {
	now := time.Now().UTC()
	goal := &model.Goal{
		ID:         uuid.New().String(),
		UserID:     ng.UserID,
		Title:      ng.Title,
		Deadline:   calendarDate(ng.Deadline),
		Category:   ng.Category,
		Progress:   model.ProgressMin,
		Status:     goalstore.DeriveStatus(model.ProgressMin),
		CreatedAt:  now,
		UpdatedAt:  now,
		Milestones: []*model.Milestone{},
	}
	if ng.Description != "" {
		description := ng.Description
		goal.Description = &description
	}

	err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to insert goal: %w", err)
	}

	return goal, nil
}

// RecordProgress writes the goal's new progress and its audit row in one
// transaction, so neither is visible without the other.
func (s *GoalService) RecordProgress(ctx context.Context, userID, goalID string, progress int, status, note string) (*model.ProgressUpdate, error) {
	update := &model.ProgressUpdate{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Progress:  progress,
		CreatedAt: time.Now().UTC(),
	}
	if note != "" {
		update.Note = &note
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		rbErr := tx.Rollback()
		if rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Warn("rollback failed", "error", rbErr, "goal_id", goalID)
		}
	}()

	err = s.goalRepo.UpdateProgress(ctx, tx, userID, goalID, progress, status)
	if err != nil {
		return nil, err
	}

	err = s.progressUpdateRepo.Create(ctx, tx, update)
	if err != nil {
		return nil, fmt.Errorf("failed to insert progress update: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit progress: %w", err)
	}

	return update, nil
}

func (s *GoalService) InsertMilestone(ctx context.Context, userID, goalID, title string) (*model.Milestone, error) {
	milestone := &model.Milestone{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Title:     title,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}

	err := s.milestoneRepo.Create(ctx, userID, milestone)
	if err != nil {
		return nil, err
	}

	return milestone, nil
}

func (s *GoalService) UpdateMilestoneCompleted(ctx context.Context, userID, milestoneID string, completed bool) error {
	return s.milestoneRepo.SetCompleted(ctx, userID, milestoneID, completed)
}

func (s *GoalService) ProgressUpdates(ctx context.Context, userID, goalID string) ([]*model.ProgressUpdate, error) {
	return s.progressUpdateRepo.ByGoal(ctx, userID, goalID)
}
