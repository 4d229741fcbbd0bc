package usecase_test

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/devkit/internal/adapters/memory"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// Well-known keys of the "test test ... junk" mnemonic
const (
	devKey0 = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devKey1 = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

var (
	devAddr0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	devAddr1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

// linkSupply is minted to the LinkToken deployer, like the real mock
var linkSupply = new(big.Int).Exp(big.NewInt(10), big.NewInt(27), nil)

func mustKey(t *testing.T, hexKey string) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA(hexKey)
	require.NoError(t, err)
	return key
}

// StaticDevAccounts serves a fixed dev account list
type StaticDevAccounts struct {
	accounts []*domain.Account
	err      error
}

func newDevAccounts(t *testing.T, count int) *StaticDevAccounts {
	t.Helper()
	accounts := []*domain.Account{
		domain.NewAccount(mustKey(t, devKey0), domain.AccountSourceDev),
		domain.NewAccount(mustKey(t, devKey1), domain.AccountSourceDev),
	}
	for len(accounts) < count {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		accounts = append(accounts, domain.NewAccount(key, domain.AccountSourceDev))
	}
	return &StaticDevAccounts{accounts: accounts[:count]}
}

func (s *StaticDevAccounts) Accounts(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts, s.err
}

// MockKeystore is a mock implementation of KeystoreLoader
type MockKeystore struct {
	mock.Mock
}

func (m *MockKeystore) Load(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// StubArtifacts returns empty-ABI artifacts for every type not listed as missing
type StubArtifacts struct {
	missing map[string]bool
}

func (s *StubArtifacts) GetArtifact(ctx context.Context, contractType string) (*domain.Artifact, error) {
	if s.missing[contractType] {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, contractType)
	}
	return &domain.Artifact{Name: contractType, Bytecode: []byte{0x60, 0x00}}, nil
}

func (s *StubArtifacts) GetABI(ctx context.Context, contractType string) (*abi.ABI, error) {
	return &abi.ABI{}, nil
}

// deployCall records one Deploy on the fake chain
type deployCall struct {
	Type string
	From common.Address
	Args []any
}

// FakeChain is an in-memory chain. Deployed LinkTokens keep a balance ledger
// so transfers can be observed through Call("balanceOf").
type FakeChain struct {
	chainID uint64
	nonce   uint64

	deploys  []deployCall
	code     map[common.Address][]byte
	balances map[common.Address]map[common.Address]*big.Int

	// revert makes every mined transaction fail with status 0
	revert bool
}

func newFakeChain(chainID uint64) *FakeChain {
	return &FakeChain{
		chainID:  chainID,
		code:     make(map[common.Address][]byte),
		balances: make(map[common.Address]map[common.Address]*big.Int),
	}
}

func (c *FakeChain) ChainID(ctx context.Context) (uint64, error) {
	return c.chainID, nil
}

func (c *FakeChain) Deploy(ctx context.Context, from *domain.Account, artifact *domain.Artifact, args ...any) (*domain.Contract, error) {
	address := crypto.CreateAddress(from.Address, c.nonce)
	txHash := common.BigToHash(new(big.Int).SetUint64(c.nonce + 1))
	c.nonce++

	c.deploys = append(c.deploys, deployCall{Type: artifact.Name, From: from.Address, Args: args})
	c.code[address] = []byte{0x00}

	if artifact.Name == domain.LinkTokenType {
		c.balances[address] = map[common.Address]*big.Int{from.Address: new(big.Int).Set(linkSupply)}
	}

	return &domain.Contract{
		Type:     artifact.Name,
		Address:  address,
		TxHash:   txHash,
		Deployed: time.Now().UTC(),
		ABI:      artifact.ABI,
	}, nil
}

func (c *FakeChain) Transact(ctx context.Context, from *domain.Account, contract *domain.Contract, method string, args ...any) (*types.Transaction, error) {
	ledger, ok := c.balances[contract.Address]
	if !ok || method != "transfer" {
		return nil, domain.TransactionError{Err: fmt.Errorf("%s.%s: execution reverted", contract.Name, method)}
	}

	to := args[0].(common.Address)
	amount := args[1].(*big.Int)

	balance := ledger[from.Address]
	if balance == nil || balance.Cmp(amount) < 0 {
		return nil, domain.TransactionError{Err: fmt.Errorf("%s.transfer: insufficient balance", contract.Name)}
	}

	tx := types.NewTx(&types.LegacyTx{Nonce: c.nonce, To: &contract.Address})
	c.nonce++

	if !c.revert {
		ledger[from.Address] = new(big.Int).Sub(balance, amount)
		if ledger[to] == nil {
			ledger[to] = new(big.Int)
		}
		ledger[to] = new(big.Int).Add(ledger[to], amount)
	}
	return tx, nil
}

func (c *FakeChain) Call(ctx context.Context, contract *domain.Contract, method string, args ...any) ([]any, error) {
	if method != "balanceOf" {
		return nil, fmt.Errorf("unsupported call %s", method)
	}
	balance := c.balances[contract.Address][args[0].(common.Address)]
	if balance == nil {
		balance = new(big.Int)
	}
	return []any{new(big.Int).Set(balance)}, nil
}

func (c *FakeChain) WaitMined(ctx context.Context, tx *types.Transaction, confirmations uint64) (*types.Receipt, error) {
	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(tx.Nonce() + 1),
	}
	if c.revert {
		receipt.Status = types.ReceiptStatusFailed
		return receipt, domain.TransactionError{TxHash: tx.Hash(), Status: receipt.Status}
	}
	return receipt, nil
}

func (c *FakeChain) CodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	return c.code[address], nil
}

// RecordingSink keeps the messages a use case reports
type RecordingSink struct {
	infos  []string
	errors []string
	events []usecase.ProgressEvent
}

func (s *RecordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}

func (s *RecordingSink) Info(message string)  { s.infos = append(s.infos, message) }
func (s *RecordingSink) Error(message string) { s.errors = append(s.errors, message) }

func localConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network: &domain.Network{
			Name:      "development",
			Kind:      domain.NetworkLocal,
			Contracts: map[string]common.Address{},
		},
	}
}

func liveConfig(contracts map[string]common.Address) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network: &domain.Network{
			Name:      "sepolia",
			Kind:      domain.NetworkLive,
			RPCURL:    "https://rpc.sepolia.example",
			ChainID:   11155111,
			Contracts: contracts,
		},
	}
}

// harness wires the use cases over fakes the way the app does
type harness struct {
	cfg       *config.RuntimeConfig
	chain     *FakeChain
	store     *memory.DeploymentStore
	artifacts *StubArtifacts
	sink      *RecordingSink
	keystore  *MockKeystore

	selectAccount   *usecase.SelectAccount
	deployMocks     *usecase.DeployMocks
	resolveContract *usecase.ResolveContract
	fundWithToken   *usecase.FundWithToken
}

func newHarness(t *testing.T, cfg *config.RuntimeConfig) *harness {
	t.Helper()

	h := &harness{
		cfg:       cfg,
		chain:     newFakeChain(1337),
		store:     memory.NewDeploymentStore(),
		artifacts: &StubArtifacts{},
		sink:      &RecordingSink{},
		keystore:  new(MockKeystore),
	}

	registry := domain.DefaultRegistry()
	h.selectAccount = usecase.NewSelectAccount(cfg, newDevAccounts(t, 10), h.keystore)
	h.deployMocks = usecase.NewDeployMocks(cfg, registry, h.artifacts, h.store, h.chain, h.selectAccount, h.sink)
	h.resolveContract = usecase.NewResolveContract(cfg, registry, h.artifacts, h.store, h.chain, h.deployMocks, h.sink)
	h.fundWithToken = usecase.NewFundWithToken(h.selectAccount, h.resolveContract, h.chain, h.sink)
	return h
}

func (h *harness) deployedTypes() []string {
	names := make([]string, 0, len(h.chain.deploys))
	for _, d := range h.chain.deploys {
		names = append(names, d.Type)
	}
	return names
}
