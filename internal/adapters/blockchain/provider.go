package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// ProvideChain connects the active network. Local networks without a host run
// in-process; everything else is dialed lazily over RPC.
func ProvideChain(cfg *config.RuntimeConfig, dev usecase.DevAccounts, log *slog.Logger) (*ChainAdapter, func(), error) {
	network := cfg.Network

	if network.InProcess() {
		accounts, err := dev.Accounts(context.Background())
		if err != nil {
			return nil, nil, err
		}

		balance, ok := new(big.Int).SetString(cfg.DevAccounts.Balance, 10)
		if !ok {
			balance, _ = new(big.Int).SetString(config.DefaultDevBalance, 10)
		}

		adapter, stop := NewSimulatedChain(accounts, balance, log)
		return adapter, stop, nil
	}

	adapter := NewChainAdapter(DialRPC(network), network.ChainID, log)
	return adapter, func() { adapter.Close() }, nil
}

// DialRPC returns a connector for the network's RPC host
func DialRPC(network *domain.Network) Connector {
	return func(ctx context.Context) (Backend, error) {
		if network.RPCURL == "" {
			return nil, domain.MissingConfigError{Key: fmt.Sprintf("networks.%s.host", network.Name)}
		}
		client, err := ethclient.DialContext(ctx, network.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RPC: %w", err)
		}
		return client, nil
	}
}

// Close releases an RPC connection if one was opened
func (c *ChainAdapter) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if closer, ok := c.backend.(interface{ Close() }); ok {
		closer.Close()
	}
	c.backend = nil
	c.chainID = nil
}
