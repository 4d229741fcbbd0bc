package config

// Default network classification lists
var (
	DefaultLocalEnvironments  = []string{"development", "ganache-local", "ganache-cli"}
	DefaultForkedEnvironments = []string{"mainnet-fork", "mainnet-fork-dev"}
)

const (
	// DefaultNetwork is used when neither flags nor devkit.yaml name one
	DefaultNetwork = "development"

	// DefaultMnemonic is the well-known development mnemonic used by anvil and hardhat
	DefaultMnemonic = "test test test test test test test test test test test junk"

	DefaultDevAccountCount = 10

	// DefaultDevBalance is 10000 ether in wei
	DefaultDevBalance = "10000000000000000000000"
)

// Reserved keys of a network section; every other key is a contract address
const (
	NetworkKeyHost    = "host"
	NetworkKeyChainID = "chain_id"
	NetworkKeyPersist = "persist"
)

// ProjectConfig represents devkit.yaml after env expansion
type ProjectConfig struct {
	DefaultNetwork string
	Networks       map[string]NetworkConfig
	Environments   EnvironmentsConfig
	Wallets        WalletsConfig
}

// NetworkConfig is one section under networks
type NetworkConfig struct {
	Host      string
	ChainID   uint64
	Persist   bool
	Contracts map[string]string
}

// EnvironmentsConfig classifies network names
type EnvironmentsConfig struct {
	Local  []string `mapstructure:"local"`
	Forked []string `mapstructure:"forked"`
}

// WalletsConfig holds wallet secrets
type WalletsConfig struct {
	FromKey string `mapstructure:"from_key"`
}
