package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/taigen-app/taigen/internal/model"
)

var (
	ErrMilestoneNotFound = errors.New("milestone not found")
)

type MilestoneRepository interface {
	Create(ctx context.Context, userID string, milestone *model.Milestone) error
	SetCompleted(ctx context.Context, userID, milestoneID string, completed bool) error
}

type milestoneRepository struct {
	db *sqlx.DB
}

func NewMilestoneRepository(db *sqlx.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

// Create inserts the milestone only when its goal belongs to userID.
func (r *milestoneRepository) Create(ctx context.Context, userID string, milestone *model.Milestone) error {
	query := `INSERT INTO milestones (id, goal_id, title, completed, created_at)
	          SELECT $1, id, $2, $3, $4 FROM goals WHERE id = $5 AND user_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		milestone.ID,
		milestone.Title,
		milestone.Completed,
		milestone.CreatedAt,
		milestone.GoalID,
		userID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *milestoneRepository) SetCompleted(ctx context.Context, userID, milestoneID string, completed bool) error {
	query := `UPDATE milestones
	          SET completed = $1
	          WHERE id = $2 AND goal_id IN (SELECT id FROM goals WHERE user_id = $3)`

	result, err := r.db.ExecContext(ctx, query, completed, milestoneID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrMilestoneNotFound
	}

	return nil
}
