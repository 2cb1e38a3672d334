package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/taigen-app/taigen/internal/model"
)

// ProgressUpdateRepository is append-only: there is no update or delete.
type ProgressUpdateRepository interface {
	Create(ctx context.Context, tx sqlx.ExecerContext, update *model.ProgressUpdate) error
	ByGoal(ctx context.Context, userID, goalID string) ([]*model.ProgressUpdate, error)
}

type progressUpdateRepository struct {
	db *sqlx.DB
}

func NewProgressUpdateRepository(db *sqlx.DB) ProgressUpdateRepository {
	return &progressUpdateRepository{db: db}
}

func (r *progressUpdateRepository) Create(ctx context.Context, tx sqlx.ExecerContext, update *model.ProgressUpdate) error {
	query := `INSERT INTO progress_updates (id, goal_id, progress, note, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.ExecContext(ctx, query,
		update.ID,
		update.GoalID,
		update.Progress,
		update.Note,
		update.CreatedAt,
	)

	return err
}

// ByGoal returns the audit trail oldest-first.
func (r *progressUpdateRepository) ByGoal(ctx context.Context, userID, goalID string) ([]*model.ProgressUpdate, error) {
	var updates []*model.ProgressUpdate
	query := `SELECT p.* FROM progress_updates p
	          JOIN goals g ON g.id = p.goal_id
	          WHERE p.goal_id = $1 AND g.user_id = $2
	          ORDER BY p.created_at ASC`

	err := r.db.SelectContext(ctx, &updates, query, goalID, userID)
	if err != nil {
		return nil, err
	}

	return updates, nil
}
