package records

import (
	"context"
	"sync"
)

var (
	_ Store  = (*MemoryStore)(nil)
	_ Seeder = (*MemoryStore)(nil)
)

// MemoryStore keeps every table in process memory. Records are copied on the
// way in and out so callers never share state with the store.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Record
	nextID map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]Record),
		nextID: make(map[string]int64),
	}
}

func (s *MemoryStore) Fetch(ctx context.Context, table string, q Query) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("fetch", table, err)
	}
	for _, c := range q.Where {
		if err := checkOperator(c); err != nil {
			return nil, storeErr("fetch", table, err)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0)
	for _, r := range s.tables[table] {
		if !matches(r, q.Where) {
			continue
		}
		out = append(out, r.Clone())
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateRecord(ctx context.Context, table string, payloads ...Record) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("create", table, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(payloads))
	for _, p := range payloads {
		s.nextID[table]++
		id := s.nextID[table]
		r := p.Clone()
		if r == nil {
			r = Record{}
		}
		r[FieldID] = id
		s.tables[table] = append(s.tables[table], r)
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) DeleteRecord(ctx context.Context, table string, ids ...int64) error {
	if err := ctx.Err(); err != nil {
		return storeErr("delete", table, err)
	}
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tables[table][:0]
	for _, r := range s.tables[table] {
		if id, ok := r.ID(); ok && drop[id] {
			continue
		}
		kept = append(kept, r)
	}
	s.tables[table] = kept
	return nil
}

// Seed appends recs keeping their ids; later creates continue after the
// highest seeded id.
func (s *MemoryStore) Seed(ctx context.Context, table string, recs []Record) error {
	if err := ctx.Err(); err != nil {
		return storeErr("seed", table, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range recs {
		c := r.Clone()
		id, ok := c.ID()
		if !ok {
			s.nextID[table]++
			id = s.nextID[table]
		}
		c[FieldID] = id
		if id > s.nextID[table] {
			s.nextID[table] = id
		}
		s.tables[table] = append(s.tables[table], c)
	}
	return nil
}

func matches(r Record, where []Condition) bool {
	for _, c := range where {
		v, present := r[c.FieldName]
		if !present {
			return false
		}
		hit := false
		for _, want := range c.Values {
			if valuesEqual(v, want) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}
