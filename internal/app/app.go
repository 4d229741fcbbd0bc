package app

import (
	"log/slog"

	"github.com/trebuchet-org/devkit/internal/adapters/accounts"
	"github.com/trebuchet-org/devkit/internal/adapters/interactive"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Registry *domain.Registry
	Keystore *accounts.KeystoreAdapter
	Prompt   *interactive.PromptAdapter

	// Use cases
	SelectAccount   *usecase.SelectAccount
	ResolveContract *usecase.ResolveContract
	DeployMocks     *usecase.DeployMocks
	FundWithToken   *usecase.FundWithToken
	ListNetworks    *usecase.ListNetworks
	ListMocks       *usecase.ListMocks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	registry *domain.Registry,
	keystore *accounts.KeystoreAdapter,
	prompt *interactive.PromptAdapter,
	selectAccount *usecase.SelectAccount,
	resolveContract *usecase.ResolveContract,
	deployMocks *usecase.DeployMocks,
	fundWithToken *usecase.FundWithToken,
	listNetworks *usecase.ListNetworks,
	listMocks *usecase.ListMocks,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		Registry:        registry,
		Keystore:        keystore,
		Prompt:          prompt,
		SelectAccount:   selectAccount,
		ResolveContract: resolveContract,
		DeployMocks:     deployMocks,
		FundWithToken:   fundWithToken,
		ListNetworks:    listNetworks,
		ListMocks:       listMocks,
	}, nil
}
