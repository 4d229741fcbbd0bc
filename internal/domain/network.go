package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// NetworkKind classifies a network by how contracts and accounts are obtained on it
type NetworkKind string

const (
	// NetworkLocal is a simulated chain where mocks are deployed on demand
	NetworkLocal NetworkKind = "local"
	// NetworkForkedLocal is a local fork of a live chain; dev accounts, real addresses
	NetworkForkedLocal NetworkKind = "forked-local"
	// NetworkLive is a public test or main network
	NetworkLive NetworkKind = "live"
)

// Network represents the active network and its per-network configuration
type Network struct {
	Name    string      `json:"name"`
	Kind    NetworkKind `json:"kind"`
	RPCURL  string      `json:"rpcUrl,omitempty"`
	ChainID uint64      `json:"chainId,omitempty"`

	// Persist keeps mock deployments across runs (local networks with an external node)
	Persist bool `json:"persist,omitempty"`

	// Contracts maps logical contract names to their deployed address on this network
	Contracts map[string]common.Address `json:"contracts,omitempty"`
}

// IsLocal reports whether mocks are deployed on this network
func (n *Network) IsLocal() bool {
	return n != nil && n.Kind == NetworkLocal
}

// UsesDevAccounts reports whether the deterministic dev accounts are funded on this network
func (n *Network) UsesDevAccounts() bool {
	return n != nil && (n.Kind == NetworkLocal || n.Kind == NetworkForkedLocal)
}

// InProcess reports whether the network runs as an in-process simulated chain
func (n *Network) InProcess() bool {
	return n.IsLocal() && n.RPCURL == ""
}

// ContractAddress returns the configured address of a named contract
func (n *Network) ContractAddress(name string) (common.Address, bool) {
	if n == nil || n.Contracts == nil {
		return common.Address{}, false
	}
	addr, ok := n.Contracts[name]
	return addr, ok
}
