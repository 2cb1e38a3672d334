package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/taigen-app/taigen/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	ByID(ctx context.Context, userID, goalID string) (*model.Goal, error)
	// Goals returns the user's goals newest-created-first, each with its milestones.
	Goals(ctx context.Context, userID string) ([]*model.Goal, error)
	UpdateProgress(ctx context.Context, tx sqlx.ExecerContext, userID, goalID string, progress int, status string) error
	DueBetween(ctx context.Context, from, to time.Time) ([]*model.Goal, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, deadline, category, progress, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Deadline,
		goal.Category,
		goal.Progress,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Goals(ctx context.Context, userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &goals, query, userID)
	if err != nil {
		return nil, err
	}

	var milestones []*model.Milestone
	query = `SELECT m.* FROM milestones m
	         JOIN goals g ON g.id = m.goal_id
	         WHERE g.user_id = $1
	         ORDER BY m.created_at ASC`

	err = r.db.SelectContext(ctx, &milestones, query, userID)
	if err != nil {
		return nil, err
	}

	byGoal := make(map[string]*model.Goal, len(goals))
	for _, g := range goals {
		g.Milestones = []*model.Milestone{}
		byGoal[g.ID] = g
	}
	for _, m := range milestones {
		g, ok := byGoal[m.GoalID]
		if ok {
			g.Milestones = append(g.Milestones, m)
		}
	}

	return goals, nil
}

// UpdateProgress runs on tx so it can share a transaction with the audit row.
func (r *goalRepository) UpdateProgress(ctx context.Context, tx sqlx.ExecerContext, userID, goalID string, progress int, status string) error {
	query := `UPDATE goals
	          SET progress = $1, status = $2, updated_at = $3
	          WHERE id = $4 AND user_id = $5`

	result, err := tx.ExecContext(ctx, query, progress, status, time.Now().UTC(), goalID, userID)
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

// DueBetween lists unfinished goals of all users whose deadline falls in [from, to]
// and that have not had a deadline reminder yet.
func (r *goalRepository) DueBetween(ctx context.Context, from, to time.Time) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT g.* FROM goals g
	          LEFT JOIN deadline_reminders d ON d.goal_id = g.id
	          WHERE g.status = $1 AND g.deadline >= $2 AND g.deadline <= $3 AND d.goal_id IS NULL
	          ORDER BY g.deadline ASC`

	err := r.db.SelectContext(ctx, &goals, query, model.GoalStatusProgress, from, to)
	if err != nil {
		return nil, err
	}

	return goals, nil
}
