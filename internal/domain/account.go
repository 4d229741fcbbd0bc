package domain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// AccountSource records which selection path produced an account
type AccountSource string

const (
	AccountSourceIndex      AccountSource = "index"
	AccountSourceKeystore   AccountSource = "keystore"
	AccountSourceDev        AccountSource = "dev"
	AccountSourcePrivateKey AccountSource = "private-key"
)

// Account is an externally-owned account able to sign transactions
type Account struct {
	Address common.Address `json:"address"`
	Source  AccountSource  `json:"source"`
	Label   string         `json:"label,omitempty"`

	key *ecdsa.PrivateKey
}

// NewAccount creates an account from a private key
func NewAccount(key *ecdsa.PrivateKey, source AccountSource) *Account {
	return &Account{
		Address: crypto.PubkeyToAddress(key.PublicKey),
		Source:  source,
		key:     key,
	}
}

// WithSource returns a copy of the account attributed to a different selection path
func (a *Account) WithSource(source AccountSource, label string) *Account {
	cp := *a
	cp.Source = source
	cp.Label = label
	return &cp
}

// PrivateKey returns the signing key
func (a *Account) PrivateKey() *ecdsa.PrivateKey {
	return a.key
}

// TransactOpts builds keyed transaction options for the given chain
func (a *Account) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	if a.key == nil {
		return nil, fmt.Errorf("account %s has no signing key", a.Address.Hex())
	}
	opts, err := bind.NewKeyedTransactorWithChainID(a.key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

// ParsePrivateKey parses a hex private key, with or without 0x prefix
func ParsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, error) {
	privateKeyHex = strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if privateKeyHex == "" {
		return nil, fmt.Errorf("empty private key")
	}

	key, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	return key, nil
}

func (a *Account) String() string {
	if a.Label != "" {
		return fmt.Sprintf("%s (%s:%s)", a.Address.Hex(), a.Source, a.Label)
	}
	return fmt.Sprintf("%s (%s)", a.Address.Hex(), a.Source)
}
