package memory

import (
	"context"
	"sync"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

// StateStore keeps the service configuration and fee balance.
type StateStore struct {
	mu    sync.RWMutex
	state model.ServiceState
	saved bool
}

// NewStateStore returns an empty StateStore.
func NewStateStore() *StateStore {
	return &StateStore{}
}

func (s *StateStore) LoadState(_ context.Context) (model.ServiceState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.saved, nil
}

func (s *StateStore) SaveState(_ context.Context, state model.ServiceState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.saved = true
	return nil
}
