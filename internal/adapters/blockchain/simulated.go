package blockchain

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/trebuchet-org/devkit/internal/domain"
)

const (
	// SimulatedGasLimit is the block gas limit of the in-process chain
	SimulatedGasLimit = uint64(30_000_000)

	// SimulatedChainID is the chain ID of ethclient/simulated backends
	SimulatedChainID = 1337
)

// NewSimulatedChain starts an in-process chain with accounts funded in genesis.
// Every submitted transaction is mined immediately. The returned func stops the chain.
func NewSimulatedChain(accounts []*domain.Account, balance *big.Int, log *slog.Logger) (*ChainAdapter, func()) {
	alloc := types.GenesisAlloc{}
	for _, account := range accounts {
		alloc[account.Address] = types.Account{Balance: new(big.Int).Set(balance)}
	}

	sim := simulated.NewBackend(alloc, simulated.WithBlockGasLimit(SimulatedGasLimit))

	adapter := NewChainAdapter(func(ctx context.Context) (Backend, error) {
		return sim.Client(), nil
	}, SimulatedChainID, log)
	adapter.mine = func() { sim.Commit() }

	return adapter, func() {
		if err := sim.Close(); err != nil {
			log.Debug("failed to close simulated chain", "error", err)
		}
	}
}
