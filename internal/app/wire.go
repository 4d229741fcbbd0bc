//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/devkit/internal/adapters"
	"github.com/trebuchet-org/devkit/internal/config"
	"github.com/trebuchet-org/devkit/internal/logging"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// InitApp creates a fully wired App instance. The returned func releases the
// network connection.
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewSelectAccount,
		usecase.NewDeployMocks,
		usecase.NewResolveContract,
		usecase.NewFundWithToken,
		usecase.NewListNetworks,
		usecase.NewListMocks,

		// App
		NewApp,
	)
	return nil, nil, nil
}
