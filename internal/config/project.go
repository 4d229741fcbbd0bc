package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

// loadDotenv loads the project's .env files into the process environment.
// Variables already set in the environment win.
func loadDotenv(projectRoot, dotenv string) {
	envFiles := []string{
		resolvePath(projectRoot, dotenv),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if envFile == "" {
			continue
		}
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectConfig builds the ProjectConfig from the viper tree
func loadProjectConfig(v *viper.Viper) (*config.ProjectConfig, error) {
	project := &config.ProjectConfig{
		DefaultNetwork: config.DefaultNetwork,
		Networks:       make(map[string]config.NetworkConfig),
		Wallets: config.WalletsConfig{
			FromKey: os.ExpandEnv(v.GetString("wallets.from_key")),
		},
	}

	if err := v.UnmarshalKey("environments", &project.Environments); err != nil {
		return nil, fmt.Errorf("failed to parse environments: %w", err)
	}

	raw := v.GetStringMap("networks")
	for name, value := range raw {
		if name == "default" {
			def, err := cast.ToStringE(value)
			if err != nil {
				return nil, fmt.Errorf("networks.default must be a network name: %w", err)
			}
			if def != "" {
				project.DefaultNetwork = def
			}
			continue
		}

		section, err := parseNetworkSection(name, value)
		if err != nil {
			return nil, err
		}
		project.Networks[name] = section
	}

	return project, nil
}

// parseNetworkSection decodes one networks.<name> entry. Reserved keys configure the
// connection, everything else is a contract address.
func parseNetworkSection(name string, value any) (config.NetworkConfig, error) {
	section := config.NetworkConfig{Contracts: make(map[string]string)}
	if value == nil {
		return section, nil
	}

	fields, err := cast.ToStringMapE(value)
	if err != nil {
		return section, fmt.Errorf("networks.%s must be a mapping: %w", name, err)
	}

	for key, field := range fields {
		switch key {
		case config.NetworkKeyHost:
			host, err := cast.ToStringE(field)
			if err != nil {
				return section, fmt.Errorf("networks.%s.host: %w", name, err)
			}
			section.Host = os.ExpandEnv(host)
		case config.NetworkKeyChainID:
			chainID, err := cast.ToUint64E(field)
			if err != nil {
				return section, fmt.Errorf("networks.%s.chain_id: %w", name, err)
			}
			section.ChainID = chainID
		case config.NetworkKeyPersist:
			persist, err := cast.ToBoolE(field)
			if err != nil {
				return section, fmt.Errorf("networks.%s.persist: %w", name, err)
			}
			section.Persist = persist
		default:
			// Unquoted 0x literals are decoded as numbers by YAML
			addr, ok := field.(string)
			if !ok {
				return section, fmt.Errorf("networks.%s.%s must be a quoted address string", name, key)
			}
			section.Contracts[key] = os.ExpandEnv(addr)
		}
	}

	return section, nil
}
