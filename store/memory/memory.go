// Package memory provides the default in-process run store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/smallnest/agentgraph/store"
)

// MemoryStore keeps runs in a mutex-guarded map. It is the default
// backend and the reference for the Store contract.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*store.Run
}

var _ store.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory run store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string]*store.Run),
	}
}

// Save stores a run, overwriting any run with the same ID.
func (s *MemoryStore) Save(ctx context.Context, run *store.Run) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("run must have an ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// Load retrieves a run by ID.
func (s *MemoryStore) Load(ctx context.Context, runID string) (*store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	if !ok {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	return run, nil
}

// List returns all runs of a session, oldest first.
func (s *MemoryStore) List(ctx context.Context, sessionID string) ([]*store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var runs []*store.Run
	for _, run := range s.runs {
		if run.SessionID == sessionID {
			runs = append(runs, run)
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, nil
}

// Delete removes a run. Deleting a missing run is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
	return nil
}
