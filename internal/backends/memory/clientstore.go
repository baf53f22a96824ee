package memory

import (
	"clientreg/internal/types"
	"context"
	"sync"
)

// ClientStore keeps the session's records in process memory.
// Records are kept in registration order; byID indexes into records.
type ClientStore struct {
	mu      sync.RWMutex
	records []types.ClientRecord
	byID    map[int]int
	lastID  int
}

func NewClientStore() *ClientStore {
	return &ClientStore{byID: make(map[int]int)}
}

func (s *ClientStore) Register(_ context.Context, fields types.ClientFields) (types.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	rec := types.NewRecord(s.lastID, fields)
	s.byID[rec.ID] = len(s.records)
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *ClientStore) List(_ context.Context) ([]types.ClientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ClientRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *ClientStore) FindByID(_ context.Context, id int) (types.ClientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return types.ClientRecord{}, types.ErrNotFound
	}
	return s.records[i], nil
}

func (s *ClientStore) Update(_ context.Context, id int, fields types.ClientFields) (types.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return types.ClientRecord{}, types.ErrNotFound
	}
	s.records[i] = fields.Apply(s.records[i])
	return s.records[i], nil
}

func (s *ClientStore) Deactivate(_ context.Context, id int) (types.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return types.ClientRecord{}, types.ErrNotFound
	}
	s.records[i].Active = false
	return s.records[i], nil
}

// ClearAll drops every record and restarts ids at 1.
func (s *ClientStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.byID = make(map[int]int)
	s.lastID = 0
	return nil
}
