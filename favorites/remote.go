package favorites

import (
	"context"
	"fmt"

	"EstateView/records"
)

// Raw field names of the favorite table.
const (
	FieldName       = "Name"
	FieldPropertyID = "property_id_c"
	FieldOwner      = "Owner"
)

var _ Store = (*RemoteStore)(nil)

// RemoteStore is one user's favorites kept as records in the favorite table.
// Mutations re-read the user's record for the property before writing, so a
// stale cache never produces a duplicate record or a missed delete.
type RemoteStore struct {
	recs   records.Store
	userID string
	state  *membership
	locks  keyedMutex
}

// NewRemoteStore loads every favorite record owned by userID.
func NewRemoteStore(ctx context.Context, recs records.Store, userID string) (*RemoteStore, error) {
	s := &RemoteStore{recs: recs, userID: userID, state: newMembership()}

	rows, err := recs.Fetch(ctx, records.TableFavorites, records.Where(FieldOwner, userID))
	if err != nil {
		return nil, fmt.Errorf("load favorites for %s: %w", userID, err)
	}
	for _, r := range rows {
		pid, ok := records.Int64(r[FieldPropertyID])
		if !ok || pid == 0 {
			continue
		}
		rid, _ := r.ID()
		s.state.put(pid, rid)
	}
	return s, nil
}

func (s *RemoteStore) UserID() string { return s.userID }

func (s *RemoteStore) IsFavorite(propertyID int64) bool { return s.state.has(propertyID) }

func (s *RemoteStore) List() []int64 { return s.state.list() }

func (s *RemoteStore) Add(ctx context.Context, propertyID int64) error {
	unlock := s.locks.lock(propertyID)
	defer unlock()
	return s.addLocked(ctx, propertyID)
}

func (s *RemoteStore) Remove(ctx context.Context, propertyID int64) error {
	unlock := s.locks.lock(propertyID)
	defer unlock()
	return s.removeLocked(ctx, propertyID)
}

// Toggle decides from the owner's records as they are now, not from the
// membership cached when the store was loaded. A failed toggle reports the
// prior state.
func (s *RemoteStore) Toggle(ctx context.Context, propertyID int64) (bool, error) {
	unlock := s.locks.lock(propertyID)
	defer unlock()

	existing, err := s.ownedRecords(ctx, propertyID)
	if err != nil {
		return s.state.has(propertyID), err
	}
	if len(existing) > 0 {
		if err := s.deleteOwned(ctx, propertyID, existing); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.create(ctx, propertyID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RemoteStore) addLocked(ctx context.Context, propertyID int64) error {
	existing, err := s.ownedRecords(ctx, propertyID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.state.put(propertyID, existing[0])
		return nil
	}
	return s.create(ctx, propertyID)
}

func (s *RemoteStore) removeLocked(ctx context.Context, propertyID int64) error {
	existing, err := s.ownedRecords(ctx, propertyID)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		s.state.drop(propertyID)
		return nil
	}
	return s.deleteOwned(ctx, propertyID, existing)
}

func (s *RemoteStore) create(ctx context.Context, propertyID int64) error {
	ids, err := s.recs.CreateRecord(ctx, records.TableFavorites, records.Record{
		FieldName:       fmt.Sprintf("Favorite Property %d", propertyID),
		FieldPropertyID: propertyID,
		FieldOwner:      s.userID,
	})
	if err != nil {
		return fmt.Errorf("add favorite %d: %w", propertyID, err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("add favorite %d: %w: no record created", propertyID, records.ErrBackingStore)
	}
	s.state.put(propertyID, ids[0])
	return nil
}

func (s *RemoteStore) deleteOwned(ctx context.Context, propertyID int64, recordIDs []int64) error {
	if err := s.recs.DeleteRecord(ctx, records.TableFavorites, recordIDs...); err != nil {
		return fmt.Errorf("remove favorite %d: %w", propertyID, err)
	}
	s.state.drop(propertyID)
	return nil
}

// ownedRecords returns the ids of this user's favorite records for one
// property, normally zero or one.
func (s *RemoteStore) ownedRecords(ctx context.Context, propertyID int64) ([]int64, error) {
	rows, err := s.recs.Fetch(ctx, records.TableFavorites, records.Query{
		Where: []records.Condition{
			{FieldName: FieldOwner, Operator: records.OperatorEqualTo, Values: []any{s.userID}},
			{FieldName: FieldPropertyID, Operator: records.OperatorEqualTo, Values: []any{propertyID}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("check favorite %d: %w", propertyID, err)
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		if id, ok := r.ID(); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
