package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/devkit/internal/domain"
)

// Chain is the network client every operation bottoms out in
type Chain interface {
	ChainID(ctx context.Context) (uint64, error)
	Deploy(ctx context.Context, from *domain.Account, artifact *domain.Artifact, args ...any) (*domain.Contract, error)
	Transact(ctx context.Context, from *domain.Account, contract *domain.Contract, method string, args ...any) (*types.Transaction, error)
	Call(ctx context.Context, contract *domain.Contract, method string, args ...any) ([]any, error)
	WaitMined(ctx context.Context, tx *types.Transaction, confirmations uint64) (*types.Receipt, error)
	CodeAt(ctx context.Context, address common.Address) ([]byte, error)
}

// DevAccounts enumerates the deterministic accounts funded on local networks
type DevAccounts interface {
	Accounts(ctx context.Context) ([]*domain.Account, error)
}

// KeystoreLoader loads accounts saved in the local encrypted keystore
type KeystoreLoader interface {
	Load(ctx context.Context, id string) (*domain.Account, error)
}

// ArtifactRepository provides mock build artifacts and interface ABIs
type ArtifactRepository interface {
	// GetArtifact returns the compiled mock, bytecode included
	GetArtifact(ctx context.Context, contractType string) (*domain.Artifact, error)
	// GetABI returns the interface ABI; no build output needed
	GetABI(ctx context.Context, contractType string) (*abi.ABI, error)
}

// DeploymentStore keeps the append-only list of mocks deployed per chain
type DeploymentStore interface {
	Record(ctx context.Context, chainID uint64, contract *domain.Contract) error
	// Latest returns the most recently recorded instance of a type, nil when none
	Latest(ctx context.Context, chainID uint64, contractType string) (*domain.Contract, error)
	All(ctx context.Context, chainID uint64) ([]*domain.Contract, error)
	Reset(ctx context.Context, chainID uint64) error
}

// NetworkResolver resolves network names
type NetworkResolver interface {
	Names() []string
	Resolve(name string) (*domain.Network, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
