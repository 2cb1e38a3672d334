package model

import (
	"time"
)

// ProgressUpdate is an audit record of a progress change. Rows are never
// updated or deleted.
type ProgressUpdate struct {
	ID        string    `db:"id" json:"id"`
	GoalID    string    `db:"goal_id" json:"goal_id"`
	Progress  int       `db:"progress" json:"progress"`
	Note      *string   `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (u *ProgressUpdate) NoteText() string {
	if u.Note == nil {
		return ""
	}
	return *u.Note
}
