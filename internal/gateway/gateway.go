// Package gateway describes the remote data service the goal store depends on:
// authentication with pushed session changes, and row storage for goals,
// milestones and progress updates.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/taigen-app/taigen/internal/model"
)

var (
	ErrNoSession = errors.New("no session")
)

// SessionEvent is pushed on every sign-in and sign-out. Session is nil when
// the identity became absent.
type SessionEvent struct {
	UserID  string
	Session *model.Session
}

type Auth interface {
	GetSession(ctx context.Context, token string) (*model.Session, error)
	// OnSessionChange registers fn for session events and returns a function that
	// removes it.
	OnSessionChange(fn func(SessionEvent)) (unsubscribe func())
	SignUp(ctx context.Context, email, password string) (*model.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error)
	SignOut(ctx context.Context, token string) error
}

type NewGoal struct {
	UserID      string
	Title       string
	Description string
	Deadline    time.Time
	Category    string
}

type Tables interface {
	GoalsByOwner(ctx context.Context, userID string) ([]*model.Goal, error)
	InsertGoal(ctx context.Context, goal NewGoal) (*model.Goal, error)
	// RecordProgress appends the audit row and writes {progress, status} onto
	// the goal as one unit.
	RecordProgress(ctx context.Context, userID, goalID string, progress int, status, note string) (*model.ProgressUpdate, error)
	InsertMilestone(ctx context.Context, userID, goalID, title string) (*model.Milestone, error)
	UpdateMilestoneCompleted(ctx context.Context, userID, milestoneID string, completed bool) error
	ProgressUpdates(ctx context.Context, userID, goalID string) ([]*model.ProgressUpdate, error)
}
