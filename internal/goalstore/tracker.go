package goalstore

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/taigen-app/taigen/internal/gateway"
	"github.com/taigen-app/taigen/internal/model"
)

// Tracker follows gateway session changes for the life of the process. A new
// identity (re)loads its store; a vanished one clears the store and drops any
// personalized navigation state.
type Tracker struct {
	auth   gateway.Auth
	stores *Registry

	mu          sync.RWMutex
	ctx         context.Context
	sessions    map[string]*model.Session
	modes       map[string]Mode
	unsubscribe func()
}

func NewTracker(auth gateway.Auth, stores *Registry) *Tracker {
	return &Tracker{
		auth:     auth,
		stores:   stores,
		ctx:      context.Background(),
		sessions: make(map[string]*model.Session),
		modes:    make(map[string]Mode),
	}
}

// Start subscribes to session events. ctx bounds the loads triggered by events.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	t.ctx = ctx
	t.mu.Unlock()

	unsubscribe := t.auth.OnSessionChange(t.handle)

	t.mu.Lock()
	t.unsubscribe = unsubscribe
	t.mu.Unlock()
}

func (t *Tracker) Close() {
	t.mu.Lock()
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Adopt resolves an existing session token. When it is valid the user's store
// is loaded unless it already holds a mirror. A missing or invalid token
// yields (nil, nil).
func (t *Tracker) Adopt(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, nil
	}

	sess, err := t.auth.GetSession(ctx, token)
	if errors.Is(err, gateway.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.sessions[sess.UserID] = sess
	t.mu.Unlock()

	store := t.stores.For(sess.UserID)
	if !store.Loaded() {
		// A failed load leaves an empty but usable store; the next request retries.
		_ = store.Load(ctx, sess)
	}

	return sess, nil
}

func (t *Tracker) handle(ev gateway.SessionEvent) {
	if ev.Session == nil {
		t.mu.Lock()
		delete(t.sessions, ev.UserID)
		delete(t.modes, ev.UserID)
		t.mu.Unlock()

		t.stores.Drop(ev.UserID)
		slog.Debug("session ended, store cleared", "user_id", ev.UserID)
		return
	}

	t.mu.Lock()
	t.sessions[ev.Session.UserID] = ev.Session
	ctx := t.ctx
	t.mu.Unlock()

	err := t.stores.For(ev.Session.UserID).Load(ctx, ev.Session)
	if err != nil {
		slog.Warn("reload after sign-in failed", "error", err, "user_id", ev.Session.UserID)
	}
}

// Authenticated reports whether the user currently holds a session.
func (t *Tracker) Authenticated(userID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.sessions[userID]
	return ok
}

func (t *Tracker) Store(userID string) *Store {
	return t.stores.For(userID)
}

// Mode returns the user's navigation mode. Signed-in users land on the
// composer.
func (t *Tracker) Mode(userID string) Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if _, ok := t.sessions[userID]; !ok {
		return ModeLanding{}
	}
	mode, ok := t.modes[userID]
	if !ok {
		return ModeCompose{}
	}
	return mode
}

// SetMode is ignored for users without a session so no personalized state
// outlives a sign-out. Guest modes reset a signed-in user to the composer.
func (t *Tracker) SetMode(userID string, mode Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions[userID]; !ok {
		return
	}
	if !Personalized(mode) {
		delete(t.modes, userID)
		return
	}
	t.modes[userID] = mode
}
