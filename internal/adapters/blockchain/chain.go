package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/devkit/internal/domain"
)

// Backend is the part of an Ethereum client the chain adapter needs.
// Both *ethclient.Client and simulated.Client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Connector opens the backend on first use
type Connector func(ctx context.Context) (Backend, error)

// ChainAdapter implements the Chain port over a go-ethereum backend
type ChainAdapter struct {
	connect         Connector
	expectedChainID uint64
	pollInterval    time.Duration
	log             *slog.Logger

	// mine is set for in-process chains, which have no block producer
	mine func()

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewChainAdapter creates a chain adapter. expectedChainID of 0 accepts any chain.
func NewChainAdapter(connect Connector, expectedChainID uint64, log *slog.Logger) *ChainAdapter {
	return &ChainAdapter{
		connect:         connect,
		expectedChainID: expectedChainID,
		pollInterval:    time.Second,
		log:             log,
	}
}

func (c *ChainAdapter) client(ctx context.Context) (Backend, *big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, c.chainID, nil
	}

	backend, err := c.connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to network: %w", err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if c.expectedChainID != 0 && chainID.Uint64() != c.expectedChainID {
		return nil, nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.expectedChainID, chainID.Uint64())
	}

	c.log.Debug("connected to network", "chainId", chainID.Uint64())
	c.backend = backend
	c.chainID = chainID
	return backend, chainID, nil
}

// ChainID returns the connected chain's ID
func (c *ChainAdapter) ChainID(ctx context.Context) (uint64, error) {
	_, chainID, err := c.client(ctx)
	if err != nil {
		return 0, err
	}
	return chainID.Uint64(), nil
}

// Deploy deploys an artifact from the given account and waits for the deployment to be mined
func (c *ChainAdapter) Deploy(ctx context.Context, from *domain.Account, artifact *domain.Artifact, args ...any) (*domain.Contract, error) {
	backend, chainID, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := from.TransactOpts(ctx, chainID)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, backend, args...)
	if err != nil {
		return nil, domain.TransactionError{Err: fmt.Errorf("deploy %s: %w", artifact.Name, err)}
	}
	c.afterSend()

	c.log.Debug("deployment submitted", "contract", artifact.Name, "address", address.Hex(), "tx", tx.Hash().Hex())

	if _, err := c.WaitMined(ctx, tx, 1); err != nil {
		return nil, err
	}

	return &domain.Contract{
		Type:     artifact.Name,
		Address:  address,
		TxHash:   tx.Hash(),
		Deployed: time.Now().UTC(),
		ABI:      artifact.ABI,
	}, nil
}

// Transact submits a state-changing call. It does not wait for the transaction to be mined.
func (c *ChainAdapter) Transact(ctx context.Context, from *domain.Account, contract *domain.Contract, method string, args ...any) (*types.Transaction, error) {
	backend, chainID, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := from.TransactOpts(ctx, chainID)
	if err != nil {
		return nil, err
	}

	bound := bind.NewBoundContract(contract.Address, contract.ABI, backend, backend, backend)
	tx, err := bound.Transact(opts, method, args...)
	if err != nil {
		return nil, domain.TransactionError{Err: fmt.Errorf("%s.%s: %w", contract.Name, method, err)}
	}
	c.afterSend()

	c.log.Debug("transaction submitted", "contract", contract.Name, "method", method, "tx", tx.Hash().Hex())
	return tx, nil
}

// Call performs a read-only call against the latest state
func (c *ChainAdapter) Call(ctx context.Context, contract *domain.Contract, method string, args ...any) ([]any, error) {
	backend, _, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	bound := bind.NewBoundContract(contract.Address, contract.ABI, backend, backend, backend)

	var out []any
	if err := bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("call %s.%s: %w", contract.Name, method, err)
	}
	return out, nil
}

// WaitMined blocks until tx is mined and the head is confirmations-1 blocks past it.
// A reverted receipt is reported as a TransactionError.
func (c *ChainAdapter) WaitMined(ctx context.Context, tx *types.Transaction, confirmations uint64) (*types.Receipt, error) {
	backend, _, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, domain.TransactionError{TxHash: tx.Hash(), Err: err}
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, domain.TransactionError{TxHash: tx.Hash(), Status: receipt.Status}
	}

	if confirmations <= 1 {
		return receipt, nil
	}

	target := receipt.BlockNumber.Uint64() + confirmations - 1
	if err := c.waitForBlock(ctx, backend, target); err != nil {
		return receipt, domain.TransactionError{TxHash: tx.Hash(), Err: err}
	}
	return receipt, nil
}

// CodeAt returns the runtime code at address
func (c *ChainAdapter) CodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	backend, _, err := c.client(ctx)
	if err != nil {
		return nil, err
	}
	return backend.CodeAt(ctx, address, nil)
}

func (c *ChainAdapter) waitForBlock(ctx context.Context, backend Backend, target uint64) error {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		head, err := backend.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to get block number: %w", err)
		}
		if head >= target {
			return nil
		}

		// In-process chains only advance when asked to
		if c.mine != nil {
			c.mine()
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *ChainAdapter) afterSend() {
	if c.mine != nil {
		c.mine()
	}
}
