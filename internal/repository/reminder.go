package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type ReminderRepository interface {
	MarkSent(ctx context.Context, goalID string, sentAt time.Time) error
}

type reminderRepository struct {
	db *sqlx.DB
}

func NewReminderRepository(db *sqlx.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) MarkSent(ctx context.Context, goalID string, sentAt time.Time) error {
	query := `INSERT INTO deadline_reminders (goal_id, sent_at) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, goalID, sentAt)
	return err
}
