package config

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

// NetworkResolver resolves network names to their classification and configuration
type NetworkResolver struct {
	project   *config.ProjectConfig
	endpoints map[string]string
}

// NewNetworkResolver creates a new network resolver. endpoints are fallback RPC
// hosts, usually foundry.toml [rpc_endpoints].
func NewNetworkResolver(project *config.ProjectConfig, endpoints map[string]string) *NetworkResolver {
	if endpoints == nil {
		endpoints = map[string]string{}
	}
	return &NetworkResolver{
		project:   project,
		endpoints: endpoints,
	}
}

// ProvideNetworkResolver builds the resolver from the loaded runtime config
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectConfig, cfg.RPCEndpoints)
}

// Classify returns the kind of a network name
func (r *NetworkResolver) Classify(name string) domain.NetworkKind {
	local := r.project.Environments.Local
	if len(local) == 0 {
		local = config.DefaultLocalEnvironments
	}
	forked := r.project.Environments.Forked
	if len(forked) == 0 {
		forked = config.DefaultForkedEnvironments
	}

	switch {
	case lo.Contains(local, name):
		return domain.NetworkLocal
	case lo.Contains(forked, name):
		return domain.NetworkForkedLocal
	default:
		return domain.NetworkLive
	}
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(name string) (*domain.Network, error) {
	if name == "" {
		return nil, fmt.Errorf("no network specified")
	}

	section := r.project.Networks[name]

	network := &domain.Network{
		Name:      name,
		Kind:      r.Classify(name),
		RPCURL:    section.Host,
		ChainID:   section.ChainID,
		Persist:   section.Persist,
		Contracts: make(map[string]common.Address, len(section.Contracts)),
	}

	if network.RPCURL == "" {
		network.RPCURL = r.endpoints[name]
	}

	for contractName, hexAddr := range section.Contracts {
		if hexAddr == "" {
			continue
		}
		if !common.IsHexAddress(hexAddr) {
			return nil, fmt.Errorf("%w: networks.%s.%s: %q is not an address",
				domain.ErrMissingConfiguration, name, contractName, hexAddr)
		}
		network.Contracts[contractName] = common.HexToAddress(hexAddr)
	}

	return network, nil
}

// Names returns every network known from devkit.yaml, foundry.toml and the classification lists
func (r *NetworkResolver) Names() []string {
	names := lo.Keys(r.project.Networks)
	names = append(names, lo.Keys(r.endpoints)...)
	names = append(names, r.project.Environments.Local...)
	names = append(names, r.project.Environments.Forked...)
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}
