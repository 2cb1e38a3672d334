package goalstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigen-app/taigen/internal/gateway"
)

func newTestTracker() (*Tracker, *fakeAuth, *fakeTables) {
	auth := newFakeAuth()
	tables := seededTables()
	tracker := NewTracker(auth, NewRegistry(tables, time.UTC))
	tracker.Start(context.Background())
	return tracker, auth, tables
}

func TestTrackerSignInLoadsStore(t *testing.T) {
	tracker, auth, tables := newTestTracker()
	defer tracker.Close()

	auth.emit(gateway.SessionEvent{UserID: "u1", Session: testSession("u1")})

	assert.True(t, tracker.Authenticated("u1"))
	assert.True(t, tracker.Store("u1").Loaded())
	assert.Len(t, tracker.Store("u1").Goals(), 2)
	assert.Equal(t, []string{"GoalsByOwner"}, tables.Calls())
	assert.Equal(t, ModeCompose{}, tracker.Mode("u1"))
}

func TestTrackerSignOutClearsState(t *testing.T) {
	tracker, auth, _ := newTestTracker()
	defer tracker.Close()

	auth.emit(gateway.SessionEvent{UserID: "u1", Session: testSession("u1")})
	tracker.SetMode("u1", ModeProgressEditor{GoalID: "g2"})
	store := tracker.Store("u1")

	auth.emit(gateway.SessionEvent{UserID: "u1"})

	assert.False(t, tracker.Authenticated("u1"))
	assert.Empty(t, store.Goals())
	assert.False(t, store.Loaded())
	assert.Equal(t, ModeLanding{}, tracker.Mode("u1"))
	assert.False(t, Personalized(tracker.Mode("u1")))
}

func TestTrackerSignInAgainReloads(t *testing.T) {
	tracker, auth, tables := newTestTracker()
	defer tracker.Close()

	auth.emit(gateway.SessionEvent{UserID: "u1", Session: testSession("u1")})
	auth.emit(gateway.SessionEvent{UserID: "u1", Session: testSession("u1")})

	assert.Equal(t, []string{"GoalsByOwner", "GoalsByOwner"}, tables.Calls())
}

func TestTrackerAdopt(t *testing.T) {
	tracker, _, tables := newTestTracker()
	defer tracker.Close()
	ctx := context.Background()

	sess, err := tracker.Adopt(ctx, "token-u1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.UserID)
	assert.True(t, tracker.Store("u1").Loaded())

	// Already mirrored, no second load.
	_, err = tracker.Adopt(ctx, "token-u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"GoalsByOwner"}, tables.Calls())
}

func TestTrackerAdoptWithoutSession(t *testing.T) {
	tracker, _, tables := newTestTracker()
	defer tracker.Close()

	sess, err := tracker.Adopt(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, sess)

	sess, err = tracker.Adopt(context.Background(), "garbage")
	assert.NoError(t, err)
	assert.Nil(t, sess)

	assert.Empty(t, tables.Calls())
}

func TestTrackerAdoptLoadFailureRetries(t *testing.T) {
	tracker, _, tables := newTestTracker()
	defer tracker.Close()
	tables.loadErr = errRemote

	sess, err := tracker.Adopt(context.Background(), "token-u1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.False(t, tracker.Store("u1").Loaded())

	tables.loadErr = nil
	_, err = tracker.Adopt(context.Background(), "token-u1")
	require.NoError(t, err)
	assert.True(t, tracker.Store("u1").Loaded())
}

func TestTrackerSetModeRequiresSession(t *testing.T) {
	tracker, _, _ := newTestTracker()
	defer tracker.Close()

	tracker.SetMode("u1", ModeMyPage{})
	assert.Equal(t, ModeLanding{}, tracker.Mode("u1"))

	_, err := tracker.Adopt(context.Background(), "token-u1")
	require.NoError(t, err)

	tracker.SetMode("u1", ModeMyPage{})
	assert.Equal(t, ModeMyPage{}, tracker.Mode("u1"))
	assert.True(t, Personalized(tracker.Mode("u1")))

	tracker.SetMode("u1", ModeLanding{})
	assert.Equal(t, ModeCompose{}, tracker.Mode("u1"))

	tracker.SetMode("u1", ModeMilestoneEditor{GoalID: "g1"})
	tracker.SetMode("u1", ModeAuth{SignUp: true})
	assert.Equal(t, ModeCompose{}, tracker.Mode("u1"))
}

func TestTrackerCloseUnsubscribes(t *testing.T) {
	tracker, auth, _ := newTestTracker()
	assert.Equal(t, 1, auth.subscriberCount())

	tracker.Close()
	assert.Equal(t, 0, auth.subscriberCount())

	auth.emit(gateway.SessionEvent{UserID: "u1", Session: testSession("u1")})
	assert.False(t, tracker.Authenticated("u1"))
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(seededTables(), time.UTC)

	a := registry.For("u1")
	assert.Same(t, a, registry.For("u1"))
	assert.NotSame(t, a, registry.For("u2"))
	assert.Equal(t, 2, registry.Len())

	registry.Drop("u1")
	assert.Equal(t, 1, registry.Len())
	assert.NotSame(t, a, registry.For("u1"))
}
