package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

// ConfigFileName is the project configuration file, without extension
const ConfigFileName = "devkit"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env must be loaded before any ${VAR} expansion
	loadDotenv(projectRoot, v.GetString("dotenv"))

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		BuildDir:       resolvePath(projectRoot, v.GetString("build_dir")),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		FromKey:        os.ExpandEnv(v.GetString("wallets.from_key")),
		KeystoreDir:    expandHome(os.ExpandEnv(v.GetString("keystore_dir"))),
		DevAccounts: config.DevAccountsConfig{
			Mnemonic: v.GetString("dev_accounts.mnemonic"),
			Count:    v.GetInt("dev_accounts.count"),
			Balance:  v.GetString("dev_accounts.balance"),
		},
		Mocks: config.MocksConfig{
			InitialValue: v.GetString("mocks.initial_value"),
		},
	}

	decimals, err := loadMockDecimals(v)
	if err != nil {
		return nil, err
	}
	cfg.Mocks.Decimals = decimals

	project, err := loadProjectConfig(v)
	if err != nil {
		return nil, err
	}
	cfg.ProjectConfig = project

	endpoints, err := loadFoundryEndpoints(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.RPCEndpoints = endpoints

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = project.DefaultNetwork
	}

	network, err := ProvideNetworkResolver(cfg).Resolve(networkName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
	}
	cfg.Network = network

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find devkit.yaml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, ext := range []string{".yaml", ".yml"} {
			if _, err := os.Stat(filepath.Join(dir, ConfigFileName+ext)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a devkit project (%s.yaml not found)", ConfigFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(projectRoot)

	v.SetEnvPrefix("DEVKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setDefaults(v, projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		bindFlags(v, cmd)
	}

	return v
}

func setDefaults(v *viper.Viper, projectRoot string) {
	v.SetDefault("project_root", projectRoot)
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("dotenv", ".env")
	v.SetDefault("build_dir", "build")
	v.SetDefault("keystore_dir", "~/.devkit/accounts")
	v.SetDefault("dev_accounts.mnemonic", config.DefaultMnemonic)
	v.SetDefault("dev_accounts.count", config.DefaultDevAccountCount)
	v.SetDefault("dev_accounts.balance", config.DefaultDevBalance)
	v.SetDefault("mocks.decimals", 8)
	v.SetDefault("mocks.initial_value", "200000000000")
	v.SetDefault("environments.local", config.DefaultLocalEnvironments)
	v.SetDefault("environments.forked", config.DefaultForkedEnvironments)
}

// bindFlags binds the global flags that were set on the command line
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		switch f.Name {
		case "network", "debug", "timeout":
			v.Set(f.Name, f.Value.String())
		case "non-interactive":
			v.Set("non_interactive", f.Value.String())
		}
	})
}

func resolvePath(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// loadMockDecimals reads mocks.decimals, which must fit a uint8
func loadMockDecimals(v *viper.Viper) (uint8, error) {
	raw := v.Get("mocks.decimals")
	if raw == nil {
		return 0, nil
	}
	decimals, err := cast.ToIntE(raw)
	if err != nil || decimals < 0 || decimals > 255 {
		return 0, fmt.Errorf("%w: mocks.decimals must be an integer between 0 and 255, got %v", domain.ErrMissingConfiguration, raw)
	}
	return uint8(decimals), nil
}
