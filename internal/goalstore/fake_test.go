package goalstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/taigen-app/taigen/internal/gateway"
	"github.com/taigen-app/taigen/internal/model"
)

// fakeTables records every call and serves rows from memory. Setting an err
// field makes the matching operation fail.
type fakeTables struct {
	mu    sync.Mutex
	calls []string
	seq   int

	goals   []*model.Goal
	updates []*model.ProgressUpdate

	loadErr      error
	insertErr    error
	progressErr  error
	milestoneErr error
	toggleErr    error

	lastProgress struct {
		value  int
		status string
		note   string
	}
	lastToggle struct {
		milestoneID string
		completed   bool
	}
}

func (f *fakeTables) record(op string) {
	f.calls = append(f.calls, op)
}

func (f *fakeTables) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeTables) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeTables) GoalsByOwner(ctx context.Context, userID string) ([]*model.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GoalsByOwner")
	if f.loadErr != nil {
		return nil, f.loadErr
	}

	var goals []*model.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			goals = append(goals, g.Clone())
		}
	}
	return goals, nil
}

func (f *fakeTables) InsertGoal(ctx context.Context, ng gateway.NewGoal) (*model.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertGoal")
	if f.insertErr != nil {
		return nil, f.insertErr
	}

	now := time.Now().UTC()
	g := &model.Goal{
		ID:         f.nextID("goal"),
		UserID:     ng.UserID,
		Title:      ng.Title,
		Deadline:   ng.Deadline,
		Category:   ng.Category,
		Status:     model.GoalStatusProgress,
		CreatedAt:  now,
		UpdatedAt:  now,
		Milestones: []*model.Milestone{},
	}
	if ng.Description != "" {
		d := ng.Description
		g.Description = &d
	}
	f.goals = append([]*model.Goal{g}, f.goals...)
	return g.Clone(), nil
}

func (f *fakeTables) RecordProgress(ctx context.Context, userID, goalID string, progress int, status, note string) (*model.ProgressUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("RecordProgress")
	f.lastProgress.value = progress
	f.lastProgress.status = status
	f.lastProgress.note = note
	if f.progressErr != nil {
		return nil, f.progressErr
	}

	u := &model.ProgressUpdate{
		ID:        f.nextID("update"),
		GoalID:    goalID,
		Progress:  progress,
		CreatedAt: time.Now().UTC(),
	}
	if note != "" {
		u.Note = &note
	}
	f.updates = append(f.updates, u)
	return u, nil
}

func (f *fakeTables) InsertMilestone(ctx context.Context, userID, goalID, title string) (*model.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertMilestone")
	if f.milestoneErr != nil {
		return nil, f.milestoneErr
	}

	return &model.Milestone{
		ID:        f.nextID("milestone"),
		GoalID:    goalID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (f *fakeTables) UpdateMilestoneCompleted(ctx context.Context, userID, milestoneID string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateMilestoneCompleted")
	f.lastToggle.milestoneID = milestoneID
	f.lastToggle.completed = completed
	return f.toggleErr
}

func (f *fakeTables) ProgressUpdates(ctx context.Context, userID, goalID string) ([]*model.ProgressUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ProgressUpdates")

	var updates []*model.ProgressUpdate
	for _, u := range f.updates {
		if u.GoalID == goalID {
			updates = append(updates, u)
		}
	}
	return updates, nil
}

// fakeAuth accepts any token of the form "token-<userID>" and lets tests push
// session events by hand.
type fakeAuth struct {
	mu          sync.Mutex
	subscribers map[int]func(gateway.SessionEvent)
	seq         int
	getErr      error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{subscribers: make(map[int]func(gateway.SessionEvent))}
}

func (a *fakeAuth) GetSession(ctx context.Context, token string) (*model.Session, error) {
	if a.getErr != nil {
		return nil, a.getErr
	}
	var userID string
	_, err := fmt.Sscanf(token, "token-%s", &userID)
	if err != nil || userID == "" {
		return nil, gateway.ErrNoSession
	}
	return testSession(userID), nil
}

func (a *fakeAuth) OnSessionChange(fn func(gateway.SessionEvent)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	id := a.seq
	a.subscribers[id] = fn
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subscribers, id)
	}
}

func (a *fakeAuth) emit(ev gateway.SessionEvent) {
	a.mu.Lock()
	subs := make([]func(gateway.SessionEvent), 0, len(a.subscribers))
	for _, fn := range a.subscribers {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func (a *fakeAuth) subscriberCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.subscribers)
}

func (a *fakeAuth) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	return nil, fmt.Errorf("not implemented")
}

func (a *fakeAuth) SignInWithPassword(ctx context.Context, email, password string) (*model.Session, error) {
	return nil, fmt.Errorf("not implemented")
}

func (a *fakeAuth) SignOut(ctx context.Context, token string) error {
	return nil
}

func testSession(userID string) *model.Session {
	return &model.Session{
		UserID:    userID,
		Email:     userID + "@example.com",
		Token:     "token-" + userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}
