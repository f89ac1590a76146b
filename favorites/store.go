// Package favorites tracks which properties the current actor has marked as
// favorite. Two strategies share one Store interface: a local scope persisted
// in a key-value store, and a per-user scope persisted as favorite records.
package favorites

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrUnauthenticated is returned by mutations when an identity provider is
// configured but the caller has no actor.
var ErrUnauthenticated = errors.New("unauthenticated")

// Store is one actor's favorite membership. Reads answer from the state last
// confirmed by the backing store; mutations are idempotent and only change
// that state after the backing store accepted them.
type Store interface {
	IsFavorite(propertyID int64) bool
	Add(ctx context.Context, propertyID int64) error
	Remove(ctx context.Context, propertyID int64) error
	// Toggle flips membership and returns the resulting state.
	Toggle(ctx context.Context, propertyID int64) (bool, error)
	List() []int64
}

// membership is the confirmed set shared by both strategies.
type membership struct {
	mu  sync.RWMutex
	ids map[int64]int64 // property id -> favorite record id (0 for local)
}

func newMembership() *membership {
	return &membership{ids: make(map[int64]int64)}
}

func (m *membership) has(id int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.ids[id]
	return ok
}

func (m *membership) put(id, recordID int64) {
	m.mu.Lock()
	m.ids[id] = recordID
	m.mu.Unlock()
}

func (m *membership) drop(id int64) {
	m.mu.Lock()
	delete(m.ids, id)
	m.mu.Unlock()
}

// list returns the property ids in ascending order.
func (m *membership) list() []int64 {
	m.mu.RLock()
	out := make([]int64, 0, len(m.ids))
	for id := range m.ids {
		out = append(out, id)
	}
	m.mu.RUnlock()
	slices.Sort(out)
	return out
}

// keyedMutex serializes work per property id.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(id int64) (unlock func()) {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[int64]*refMutex)
	}
	l, ok := k.locks[id]
	if !ok {
		l = &refMutex{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

// anonymous is handed out when an identity provider is active but the caller
// is not signed in: reads see nothing and every mutation is refused.
type anonymous struct{}

func (anonymous) IsFavorite(int64) bool { return false }

func (anonymous) Add(context.Context, int64) error { return ErrUnauthenticated }

func (anonymous) Remove(context.Context, int64) error { return ErrUnauthenticated }

func (anonymous) Toggle(context.Context, int64) (bool, error) { return false, ErrUnauthenticated }

func (anonymous) List() []int64 { return []int64{} }
