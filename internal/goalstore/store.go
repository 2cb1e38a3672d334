package goalstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taigen-app/taigen/internal/gateway"
	"github.com/taigen-app/taigen/internal/metrics"
	"github.com/taigen-app/taigen/internal/model"
)

var (
	ErrProgressOutOfRange = errors.New("progress must be between 0 and 100")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrMilestoneNotFound  = errors.New("milestone not found")
	ErrSessionMismatch    = errors.New("session does not own this store")
)

// Store mirrors one user's goals (with milestones). The mirror only changes
// after a remote write succeeds, and then only by what that write changed.
type Store struct {
	tables gateway.Tables
	userID string
	now    func() time.Time

	mu     sync.RWMutex
	goals  []*model.Goal
	loaded bool
}

func NewStore(tables gateway.Tables, userID string, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		tables: tables,
		userID: userID,
		now: func() time.Time {
			return time.Now().In(loc)
		},
	}
}

func (s *Store) UserID() string {
	return s.userID
}

func (s *Store) checkSession(sess *model.Session) error {
	if sess == nil {
		return gateway.ErrNoSession
	}
	if sess.UserID != s.userID {
		return ErrSessionMismatch
	}
	return nil
}

// Load replaces the mirror with the user's goals, newest first. On failure the
// previous mirror stays in place.
func (s *Store) Load(ctx context.Context, sess *model.Session) error {
	err := s.checkSession(sess)
	if err != nil {
		return err
	}

	start := time.Now()
	goals, err := s.tables.GoalsByOwner(ctx, s.userID)
	metrics.ObserveGatewayCall("goals_by_owner", start, err)
	if err != nil {
		slog.Error("failed to load goals", "error", err, "user_id", s.userID)
		return fmt.Errorf("failed to load goals: %w", err)
	}

	mirror := make([]*model.Goal, 0, len(goals))
	for _, g := range goals {
		c := g.Clone()
		mirror = append(mirror, c)
	}

	s.mu.Lock()
	s.goals = mirror
	s.loaded = true
	s.mu.Unlock()

	return nil
}

func (s *Store) CreateGoal(ctx context.Context, sess *model.Session, req Request) (*model.Goal, error) {
	err := s.checkSession(sess)
	if err != nil {
		return nil, err
	}

	err = req.check(s.now())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	goal, err := s.tables.InsertGoal(ctx, gateway.NewGoal{
		UserID:      s.userID,
		Title:       req.Title(),
		Description: req.Description(),
		Deadline:    req.Deadline(),
		Category:    req.Category(),
	})
	metrics.ObserveGatewayCall("insert_goal", start, err)
	if err != nil {
		slog.Error("failed to create goal", "error", err, "user_id", s.userID)
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	created := goal.Clone()

	s.mu.Lock()
	s.goals = append([]*model.Goal{created}, s.goals...)
	s.mu.Unlock()

	return goal.Clone(), nil
}

// RecordProgress rejects out-of-range values before any write.
func (s *Store) RecordProgress(ctx context.Context, sess *model.Session, goalID string, value int, note string) (*model.ProgressUpdate, error) {
	err := s.checkSession(sess)
	if err != nil {
		return nil, err
	}

	if !ValidProgress(value) {
		return nil, fmt.Errorf("%w: got %d", ErrProgressOutOfRange, value)
	}

	if s.Goal(goalID) == nil {
		return nil, ErrGoalNotFound
	}

	status := DeriveStatus(value)

	start := time.Now()
	update, err := s.tables.RecordProgress(ctx, s.userID, goalID, value, status, strings.TrimSpace(note))
	metrics.ObserveGatewayCall("record_progress", start, err)
	if err != nil {
		slog.Error("failed to record progress", "error", err, "user_id", s.userID, "goal_id", goalID, "progress", value)
		return nil, fmt.Errorf("failed to record progress: %w", err)
	}

	s.mu.Lock()
	g := s.find(goalID)
	if g != nil {
		g.Progress = value
		g.Status = status
		g.UpdatedAt = update.CreatedAt
	}
	s.mu.Unlock()

	return update, nil
}

// AddMilestone is a no-op for blank titles and returns (nil, nil).
func (s *Store) AddMilestone(ctx context.Context, sess *model.Session, goalID, title string) (*model.Milestone, error) {
	err := s.checkSession(sess)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	if s.Goal(goalID) == nil {
		return nil, ErrGoalNotFound
	}

	start := time.Now()
	milestone, err := s.tables.InsertMilestone(ctx, s.userID, goalID, title)
	metrics.ObserveGatewayCall("insert_milestone", start, err)
	if err != nil {
		slog.Error("failed to add milestone", "error", err, "user_id", s.userID, "goal_id", goalID)
		return nil, fmt.Errorf("failed to add milestone: %w", err)
	}

	s.mu.Lock()
	g := s.find(goalID)
	if g != nil {
		m := *milestone
		g.Milestones = append(g.Milestones, &m)
	}
	s.mu.Unlock()

	return milestone, nil
}

// ToggleMilestone writes the negation of the mirrored value and returns the
// new value. Two toggles issued together both read the same mirror value, so
// the result is whichever write lands last.
func (s *Store) ToggleMilestone(ctx context.Context, sess *model.Session, goalID, milestoneID string) (bool, error) {
	err := s.checkSession(sess)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	m := s.findMilestone(goalID, milestoneID)
	var next bool
	if m != nil {
		next = !m.Completed
	}
	s.mu.RUnlock()

	if m == nil {
		return false, ErrMilestoneNotFound
	}

	start := time.Now()
	err = s.tables.UpdateMilestoneCompleted(ctx, s.userID, milestoneID, next)
	metrics.ObserveGatewayCall("update_milestone", start, err)
	if err != nil {
		slog.Error("failed to toggle milestone", "error", err, "user_id", s.userID, "goal_id", goalID, "milestone_id", milestoneID)
		return false, fmt.Errorf("failed to toggle milestone: %w", err)
	}

	s.mu.Lock()
	m = s.findMilestone(goalID, milestoneID)
	if m != nil {
		m.Completed = next
	}
	s.mu.Unlock()

	return next, nil
}

func (s *Store) ProgressHistory(ctx context.Context, sess *model.Session, goalID string) ([]*model.ProgressUpdate, error) {
	err := s.checkSession(sess)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	updates, err := s.tables.ProgressUpdates(ctx, s.userID, goalID)
	metrics.ObserveGatewayCall("progress_updates", start, err)
	if err != nil {
		slog.Error("failed to load progress history", "error", err, "user_id", s.userID, "goal_id", goalID)
		return nil, fmt.Errorf("failed to load progress history: %w", err)
	}

	return updates, nil
}

// Goals returns a copy of the mirror.
func (s *Store) Goals() []*model.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goals := make([]*model.Goal, len(s.goals))
	for i, g := range s.goals {
		goals[i] = g.Clone()
	}
	return goals
}

func (s *Store) Goal(goalID string) *model.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.find(goalID)
	if g == nil {
		return nil
	}
	return g.Clone()
}

type Stats struct {
	Total     int
	Completed int
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.goals)}
	for _, g := range s.goals {
		if g.IsCompleted() {
			stats.Completed++
		}
	}
	return stats
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.goals = nil
	s.loaded = false
	s.mu.Unlock()
}

// find and findMilestone expect s.mu to be held.
func (s *Store) find(goalID string) *model.Goal {
	for _, g := range s.goals {
		if g.ID == goalID {
			return g
		}
	}
	return nil
}

func (s *Store) findMilestone(goalID, milestoneID string) *model.Milestone {
	g := s.find(goalID)
	if g == nil {
		return nil
	}
	for _, m := range g.Milestones {
		if m.ID == milestoneID {
			return m
		}
	}
	return nil
}
