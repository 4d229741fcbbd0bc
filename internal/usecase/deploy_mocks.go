package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

// DeployMocksParams contains constructor parameters for the mock set.
// Zero values fall back to the configured defaults.
type DeployMocksParams struct {
	Decimals     *uint8
	InitialValue *big.Int
}

// DeployMocksResult contains the freshly deployed mock set, in deployment order
type DeployMocksResult struct {
	Network   string
	ChainID   uint64
	Deployer  *domain.Account
	Contracts []*domain.Contract
}

// DeployMocks deploys the full mock set on a local network
type DeployMocks struct {
	config        *config.RuntimeConfig
	registry      *domain.Registry
	artifacts     ArtifactRepository
	store         DeploymentStore
	chain         Chain
	selectAccount *SelectAccount
	sink          ProgressSink
}

// NewDeployMocks creates a new DeployMocks use case
func NewDeployMocks(
	cfg *config.RuntimeConfig,
	registry *domain.Registry,
	artifacts ArtifactRepository,
	store DeploymentStore,
	chain Chain,
	selectAccount *SelectAccount,
	sink ProgressSink,
) *DeployMocks {
	return &DeployMocks{
		config:        cfg,
		registry:      registry,
		artifacts:     artifacts,
		store:         store,
		chain:         chain,
		selectAccount: selectAccount,
		sink:          sink,
	}
}

// Run deploys every registered mock with the default account and records each instance
func (uc *DeployMocks) Run(ctx context.Context, params DeployMocksParams) (*DeployMocksResult, error) {
	mockParams, err := uc.resolveParams(params)
	if err != nil {
		return nil, err
	}

	account, err := uc.selectAccount.Run(ctx, SelectAccountParams{})
	if err != nil {
		return nil, err
	}

	chainID, err := uc.chain.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	uc.sink.Info(fmt.Sprintf("The active network is %s", uc.config.Network.Name))
	uc.sink.Info("Deploying Mocks...")

	deployer := &mockDeployer{
		chain:     uc.chain,
		artifacts: uc.artifacts,
		from:      account,
	}

	result := &DeployMocksResult{
		Network:  uc.config.Network.Name,
		ChainID:  chainID,
		Deployer: account,
	}

	deployed := make(map[string]*domain.Contract)
	for _, spec := range uc.registry.Specs() {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "deploying",
			Message: fmt.Sprintf("Deploying %s...", spec.Type),
			Spinner: true,
		})

		contract, err := spec.Deploy(ctx, deployer, deployed, mockParams)
		if err != nil {
			return nil, fmt.Errorf("failed to deploy %s: %w", spec.Type, err)
		}
		contract.Name = spec.Name
		contract.Type = spec.Type

		if err := uc.store.Record(ctx, chainID, contract); err != nil {
			return nil, fmt.Errorf("failed to record %s deployment: %w", spec.Type, err)
		}

		deployed[spec.Type] = contract
		result.Contracts = append(result.Contracts, contract)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete"})
	uc.sink.Info("Mocks Deployed!")

	return result, nil
}

func (uc *DeployMocks) resolveParams(params DeployMocksParams) (domain.MockParams, error) {
	mockParams := domain.DefaultMockParams()

	if uc.config.Mocks.Decimals != 0 {
		mockParams.Decimals = uc.config.Mocks.Decimals
	}
	if uc.config.Mocks.InitialValue != "" {
		value, ok := new(big.Int).SetString(uc.config.Mocks.InitialValue, 10)
		if !ok {
			return mockParams, fmt.Errorf("invalid mocks.initial_value: %q", uc.config.Mocks.InitialValue)
		}
		mockParams.InitialValue = value
	}

	if params.Decimals != nil {
		mockParams.Decimals = *params.Decimals
	}
	if params.InitialValue != nil {
		mockParams.InitialValue = params.InitialValue
	}

	return mockParams, nil
}

// mockDeployer binds the deploying account to the chain for registry deploy functions
type mockDeployer struct {
	chain     Chain
	artifacts ArtifactRepository
	from      *domain.Account
}

func (d *mockDeployer) DeployMock(ctx context.Context, contractType string, args ...any) (*domain.Contract, error) {
	artifact, err := d.artifacts.GetArtifact(ctx, contractType)
	if err != nil {
		return nil, err
	}
	return d.chain.Deploy(ctx, d.from, artifact, args...)
}
