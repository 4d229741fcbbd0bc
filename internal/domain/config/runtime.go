package config

import (
	"time"

	"github.com/trebuchet-org/devkit/internal/domain"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	BuildDir    string

	// Network is the active network, never nil after loading
	Network *domain.Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Wallet settings
	FromKey     string // private key for live networks, env-expanded
	KeystoreDir string

	DevAccounts DevAccountsConfig
	Mocks       MocksConfig

	// Resolved configurations
	ProjectConfig *ProjectConfig
	RPCEndpoints  map[string]string // foundry.toml [rpc_endpoints]
}

// DevAccountsConfig configures the deterministic accounts of local networks
type DevAccountsConfig struct {
	Mnemonic string
	Count    int
	Balance  string // wei, decimal; funds accounts on the in-process chain
}

// MocksConfig holds the constructor parameters of the mock set
type MocksConfig struct {
	Decimals     uint8
	InitialValue string
}
