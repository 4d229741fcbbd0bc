package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

// ResolveContractParams contains parameters for resolving a contract
type ResolveContractParams struct {
	Name string
	// Redeploy forces a fresh mock set on local networks
	Redeploy bool
}

// ResolveContract is the use case for resolving a logical contract name to a handle
type ResolveContract struct {
	config      *config.RuntimeConfig
	registry    *domain.Registry
	artifacts   ArtifactRepository
	store       DeploymentStore
	chain       Chain
	deployMocks *DeployMocks
	sink        ProgressSink
}

// NewResolveContract creates a new ResolveContract use case
func NewResolveContract(
	cfg *config.RuntimeConfig,
	registry *domain.Registry,
	artifacts ArtifactRepository,
	store DeploymentStore,
	chain Chain,
	deployMocks *DeployMocks,
	sink ProgressSink,
) *ResolveContract {
	return &ResolveContract{
		config:      cfg,
		registry:    registry,
		artifacts:   artifacts,
		store:       store,
		chain:       chain,
		deployMocks: deployMocks,
		sink:        sink,
	}
}

// Resolve resolves a contract by name without forcing a redeploy
func (uc *ResolveContract) Resolve(ctx context.Context, name string) (*domain.Contract, error) {
	return uc.Run(ctx, ResolveContractParams{Name: name})
}

// Run resolves a contract. On local networks the most recently deployed mock is
// returned, deploying the mock set first when none exists. Elsewhere the address
// comes from the network configuration and nothing is deployed.
func (uc *ResolveContract) Run(ctx context.Context, params ResolveContractParams) (*domain.Contract, error) {
	spec, err := uc.registry.Lookup(params.Name)
	if err != nil {
		return nil, err
	}

	if uc.config.Network.IsLocal() {
		return uc.resolveMock(ctx, spec, params.Redeploy)
	}

	return uc.resolveConfigured(ctx, spec)
}

func (uc *ResolveContract) resolveMock(ctx context.Context, spec domain.MockSpec, redeploy bool) (*domain.Contract, error) {
	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	var latest *domain.Contract
	if !redeploy {
		if latest, err = uc.latestLive(ctx, chainID, spec.Type); err != nil {
			return nil, err
		}
	}

	if latest == nil {
		if _, err := uc.deployMocks.Run(ctx, DeployMocksParams{}); err != nil {
			return nil, err
		}
		if latest, err = uc.store.Latest(ctx, chainID, spec.Type); err != nil {
			return nil, fmt.Errorf("failed to read %s deployment: %w", spec.Type, err)
		}
		if latest == nil {
			return nil, fmt.Errorf("mock set deployed but no %s instance was recorded", spec.Type)
		}
	}

	return latest, nil
}

// latestLive returns the latest recorded instance of a type. On persistent networks
// an instance with no code on chain (node was reset) counts as not deployed.
func (uc *ResolveContract) latestLive(ctx context.Context, chainID uint64, contractType string) (*domain.Contract, error) {
	latest, err := uc.store.Latest(ctx, chainID, contractType)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s deployment: %w", contractType, err)
	}
	if latest == nil || !uc.config.Network.Persist {
		return latest, nil
	}

	code, err := uc.chain.CodeAt(ctx, latest.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", latest.Address.Hex(), err)
	}
	if len(code) == 0 {
		uc.sink.Info(fmt.Sprintf("No code at recorded %s address %s, redeploying mocks", contractType, latest.Address.Hex()))
		return nil, nil
	}

	return latest, nil
}

func (uc *ResolveContract) resolveConfigured(ctx context.Context, spec domain.MockSpec) (*domain.Contract, error) {
	address, ok := uc.config.Network.ContractAddress(spec.Name)
	if !ok {
		return nil, domain.MissingConfigError{
			Key: fmt.Sprintf("networks.%s.%s", uc.config.Network.Name, spec.Name),
		}
	}

	contractABI, err := uc.artifacts.GetABI(ctx, spec.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s interface: %w", spec.Type, err)
	}

	return &domain.Contract{
		Name:    spec.Name,
		Type:    spec.Type,
		Address: address,
		ABI:     *contractABI,
	}, nil
}
