package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

const (
	DeploymentsDir = "deployments"
	MapFile        = "map.json"
)

// DeploymentStore persists deployed mocks to <build>/deployments/<chainID>/map.json.
// The file maps each mock type to its instances, oldest first.
type DeploymentStore struct {
	rootDir string
	abis    usecase.ArtifactRepository

	mu     sync.Mutex
	chains map[uint64]map[string][]*domain.Contract
}

// NewDeploymentStore creates a file-backed deployment store under the build directory
func NewDeploymentStore(cfg *config.RuntimeConfig, abis usecase.ArtifactRepository) *DeploymentStore {
	return &DeploymentStore{
		rootDir: filepath.Join(cfg.BuildDir, DeploymentsDir),
		abis:    abis,
		chains:  make(map[uint64]map[string][]*domain.Contract),
	}
}

// Record appends a deployed contract and writes the chain's map to disk
func (s *DeploymentStore) Record(ctx context.Context, chainID uint64, contract *domain.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx, chainID)
	if err != nil {
		return err
	}
	entries[contract.Type] = append(entries[contract.Type], contract)
	return s.save(chainID, entries)
}

// Latest returns the most recently recorded contract of the type, nil when none
func (s *DeploymentStore) Latest(ctx context.Context, chainID uint64, contractType string) (*domain.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx, chainID)
	if err != nil {
		return nil, err
	}
	instances := entries[contractType]
	if len(instances) == 0 {
		return nil, nil
	}
	return instances[len(instances)-1], nil
}

// All returns every recorded contract for the chain, ordered by deployment time
func (s *DeploymentStore) All(ctx context.Context, chainID uint64) ([]*domain.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx, chainID)
	if err != nil {
		return nil, err
	}

	var all []*domain.Contract
	for _, instances := range entries {
		all = append(all, instances...)
	}
	sortByDeployed(all)
	return all, nil
}

// Reset removes the chain's map file
func (s *DeploymentStore) Reset(ctx context.Context, chainID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.chains, chainID)
	if err := os.RemoveAll(s.chainDir(chainID)); err != nil {
		return fmt.Errorf("failed to reset deployments for chain %d: %w", chainID, err)
	}
	return nil
}

func (s *DeploymentStore) chainDir(chainID uint64) string {
	return filepath.Join(s.rootDir, strconv.FormatUint(chainID, 10))
}

// load reads the chain's map once and restores the ABIs from the artifact repository
func (s *DeploymentStore) load(ctx context.Context, chainID uint64) (map[string][]*domain.Contract, error) {
	if entries, ok := s.chains[chainID]; ok {
		return entries, nil
	}

	entries := make(map[string][]*domain.Contract)
	data, err := os.ReadFile(filepath.Join(s.chainDir(chainID), MapFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read deployments: %w", err)
		}
		s.chains[chainID] = entries
		return entries, nil
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse deployments for chain %d: %w", chainID, err)
	}

	for contractType, instances := range entries {
		parsed, err := s.abis.GetABI(ctx, contractType)
		if err != nil {
			return nil, fmt.Errorf("failed to restore ABI for %s: %w", contractType, err)
		}
		for _, instance := range instances {
			instance.Type = contractType
			instance.ABI = *parsed
		}
	}

	s.chains[chainID] = entries
	return entries, nil
}

func (s *DeploymentStore) save(chainID uint64, entries map[string][]*domain.Contract) error {
	dir := s.chainDir(chainID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create deployments directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployments: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, MapFile), data, 0644)
}

func sortByDeployed(contracts []*domain.Contract) {
	sort.SliceStable(contracts, func(i, j int) bool {
		return contracts[i].Deployed.Before(contracts[j].Deployed)
	})
}

var _ usecase.DeploymentStore = (*DeploymentStore)(nil)
