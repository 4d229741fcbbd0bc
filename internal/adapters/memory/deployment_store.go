package memory

import (
	"context"
	"sync"

	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// DeploymentStore keeps deployed mocks for the lifetime of the process
type DeploymentStore struct {
	mu      sync.RWMutex
	entries map[uint64][]*domain.Contract
}

// NewDeploymentStore creates an empty in-memory deployment store
func NewDeploymentStore() *DeploymentStore {
	return &DeploymentStore{entries: make(map[uint64][]*domain.Contract)}
}

// Record appends a deployed contract
func (s *DeploymentStore) Record(ctx context.Context, chainID uint64, contract *domain.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[chainID] = append(s.entries[chainID], contract)
	return nil
}

// Latest returns the most recently recorded contract of the type, nil when none
func (s *DeploymentStore) Latest(ctx context.Context, chainID uint64, contractType string) (*domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries[chainID]
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Type == contractType {
			return entries[i], nil
		}
	}
	return nil, nil
}

// All returns every recorded contract for the chain in deployment order
func (s *DeploymentStore) All(ctx context.Context, chainID uint64) ([]*domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Contract, len(s.entries[chainID]))
	copy(out, s.entries[chainID])
	return out, nil
}

// Reset forgets all contracts recorded for the chain
func (s *DeploymentStore) Reset(ctx context.Context, chainID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, chainID)
	return nil
}

var _ usecase.DeploymentStore = (*DeploymentStore)(nil)
