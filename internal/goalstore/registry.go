package goalstore

import (
	"sync"
	"time"

	"github.com/taigen-app/taigen/internal/gateway"
)

// Registry keeps one Store per signed-in user.
type Registry struct {
	tables gateway.Tables
	loc    *time.Location

	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry(tables gateway.Tables, loc *time.Location) *Registry {
	return &Registry{
		tables: tables,
		loc:    loc,
		stores: make(map[string]*Store),
	}
}

// For returns the user's store, creating an empty one if needed.
func (r *Registry) For(userID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[userID]
	if !ok {
		store = NewStore(r.tables, userID, r.loc)
		r.stores[userID] = store
	}
	return store
}

// Drop clears and forgets the user's store.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	store, ok := r.stores[userID]
	delete(r.stores, userID)
	r.mu.Unlock()

	if ok {
		store.Clear()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
