package docstore

import (
	"context"
	"sync"

	"github.com/evergreen-power/apiserver/types"
)

// MemoryStore keeps both collections in memory. It backs the test suites and
// mirrors the overwrite semantics of the durable backends.
type MemoryStore struct {
	mu    sync.Mutex
	leads []types.Lead
	users []types.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{leads: []types.Lead{}}
}

func (s *MemoryStore) LoadLeads(ctx context.Context) ([]types.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Lead{}, s.leads...), nil
}

func (s *MemoryStore) SaveLeads(ctx context.Context, leads []types.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append([]types.Lead{}, leads...)
	return nil
}

func (s *MemoryStore) LoadUsers(ctx context.Context) ([]types.User, error) {
	s.mu.Lock()
	if len(s.users) > 0 {
		defer s.mu.Unlock()
		return append([]types.User{}, s.users...), nil
	}
	s.mu.Unlock()

	users := DefaultUsers()
	if err := s.SaveUsers(ctx, users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MemoryStore) SaveUsers(ctx context.Context, users []types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]types.User{}, users...)
	return nil
}
