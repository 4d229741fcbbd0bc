package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

// ListMocksResult contains every mock recorded on the active chain
type ListMocksResult struct {
	Network   string
	ChainID   uint64
	Contracts []*domain.Contract
}

// ListMocks lists the deployment history of the active chain
type ListMocks struct {
	config *config.RuntimeConfig
	store  DeploymentStore
	chain  Chain
}

// NewListMocks creates a new ListMocks use case
func NewListMocks(cfg *config.RuntimeConfig, store DeploymentStore, chain Chain) *ListMocks {
	return &ListMocks{config: cfg, store: store, chain: chain}
}

// Run returns the recorded mocks in deployment order
func (uc *ListMocks) Run(ctx context.Context) (*ListMocksResult, error) {
	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	contracts, err := uc.store.All(ctx, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	return &ListMocksResult{
		Network:   uc.config.Network.Name,
		ChainID:   chainID,
		Contracts: contracts,
	}, nil
}

// Reset forgets every mock recorded on the active chain. The next
// resolution on a local network deploys a fresh set.
func (uc *ListMocks) Reset(ctx context.Context) error {
	if !uc.config.Network.IsLocal() {
		return fmt.Errorf("mock deployments only exist on local networks, %s is %s", uc.config.Network.Name, uc.config.Network.Kind)
	}

	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	return uc.store.Reset(ctx, chainID)
}
