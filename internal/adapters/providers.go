package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/devkit/internal/adapters/accounts"
	"github.com/trebuchet-org/devkit/internal/adapters/artifacts"
	"github.com/trebuchet-org/devkit/internal/adapters/blockchain"
	"github.com/trebuchet-org/devkit/internal/adapters/fs"
	"github.com/trebuchet-org/devkit/internal/adapters/interactive"
	"github.com/trebuchet-org/devkit/internal/adapters/memory"
	internalconfig "github.com/trebuchet-org/devkit/internal/config"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// ProvideDeploymentStore picks the store for the active network. Mocks on a
// persisted external node survive restarts of devkit; everything else lives in memory.
func ProvideDeploymentStore(cfg *config.RuntimeConfig, artifactRepo *artifacts.Repository) usecase.DeploymentStore {
	if cfg.Network.Persist && !cfg.Network.InProcess() {
		return fs.NewDeploymentStore(cfg, artifactRepo)
	}
	return memory.NewDeploymentStore()
}

// DomainSet provides the mock registry
var DomainSet = wire.NewSet(
	domain.DefaultRegistry,
)

// AccountsSet provides the account sources
var AccountsSet = wire.NewSet(
	accounts.NewDevAccountsAdapter,
	wire.Bind(new(usecase.DevAccounts), new(*accounts.DevAccountsAdapter)),

	accounts.NewKeystoreAdapter,
	wire.Bind(new(usecase.KeystoreLoader), new(*accounts.KeystoreAdapter)),
)

// ArtifactsSet provides build artifacts and the deployment store
var ArtifactsSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),

	ProvideDeploymentStore,
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPromptAdapter,
	wire.Bind(new(accounts.PasswordSource), new(*interactive.PromptAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolver)),
)

// BlockchainSet provides the network client
var BlockchainSet = wire.NewSet(
	blockchain.ProvideChain,
	wire.Bind(new(usecase.Chain), new(*blockchain.ChainAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	DomainSet,
	AccountsSet,
	ArtifactsSet,
	InteractiveSet,
	ConfigSet,
	BlockchainSet,
)
