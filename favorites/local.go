package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"EstateView/records"
)

// KV is the durable local scope: a plain key-value surface.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

var _ Store = (*LocalStore)(nil)

// LocalStore keeps a single implicit scope as a JSON array of property ids
// under one key. Every write replaces the whole array, so writes are
// serialized store-wide.
type LocalStore struct {
	kv    KV
	key   string
	state *membership
	order []int64 // insertion order, as persisted

	writeMu sync.Mutex
}

// NewLocalStore loads the persisted scope. A missing key is an empty scope;
// an unreadable value is treated the same way rather than failing startup.
func NewLocalStore(ctx context.Context, kv KV, key string) (*LocalStore, error) {
	s := &LocalStore{kv: kv, key: key, state: newMembership()}

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load local favorites: %w: %w", records.ErrBackingStore, err)
	}
	if !ok || raw == "" {
		return s, nil
	}

	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return s, nil
	}
	for _, id := range ids {
		if s.state.has(id) {
			continue
		}
		s.state.put(id, 0)
		s.order = append(s.order, id)
	}
	return s, nil
}

func (s *LocalStore) IsFavorite(propertyID int64) bool { return s.state.has(propertyID) }

func (s *LocalStore) List() []int64 { return s.state.list() }

func (s *LocalStore) Add(ctx context.Context, propertyID int64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.addLocked(ctx, propertyID)
}

func (s *LocalStore) Remove(ctx context.Context, propertyID int64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.removeLocked(ctx, propertyID)
}

func (s *LocalStore) Toggle(ctx context.Context, propertyID int64) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.state.has(propertyID) {
		if err := s.removeLocked(ctx, propertyID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.addLocked(ctx, propertyID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *LocalStore) addLocked(ctx context.Context, propertyID int64) error {
	if s.state.has(propertyID) {
		return nil
	}
	next := append(append([]int64(nil), s.order...), propertyID)
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.order = next
	s.state.put(propertyID, 0)
	return nil
}

func (s *LocalStore) removeLocked(ctx context.Context, propertyID int64) error {
	if !s.state.has(propertyID) {
		return nil
	}
	next := make([]int64, 0, len(s.order))
	for _, id := range s.order {
		if id != propertyID {
			next = append(next, id)
		}
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.order = next
	s.state.drop(propertyID)
	return nil
}

func (s *LocalStore) persist(ctx context.Context, ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode local favorites: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("save local favorites: %w: %w", records.ErrBackingStore, err)
	}
	return nil
}
