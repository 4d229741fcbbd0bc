package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FoundryTOML represents the parts of foundry.toml devkit reads
type FoundryTOML struct {
	RpcEndpoints map[string]string `toml:"rpc_endpoints"`
}

// loadFoundryEndpoints reads [rpc_endpoints] from foundry.toml.
// Returns an empty map when the project has no foundry.toml.
func loadFoundryEndpoints(projectRoot string) (map[string]string, error) {
	endpoints := make(map[string]string)

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return endpoints, nil
	}

	var raw FoundryTOML
	if _, err := toml.DecodeFile(foundryPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for name, url := range raw.RpcEndpoints {
		endpoints[name] = os.ExpandEnv(url)
	}

	return endpoints, nil
}
