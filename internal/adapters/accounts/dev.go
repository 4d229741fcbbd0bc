package accounts

import (
	"context"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	gethaccounts "github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
	"github.com/tyler-smith/go-bip39"
)

// DevAccountsAdapter derives the deterministic local accounts from a BIP39 mnemonic
// along m/44'/60'/0'/0/i, the layout used by anvil, hardhat and ganache.
type DevAccountsAdapter struct {
	mnemonic string
	count    int

	once     sync.Once
	accounts []*domain.Account
	err      error
}

// NewDevAccountsAdapter creates a new dev accounts adapter
func NewDevAccountsAdapter(cfg *config.RuntimeConfig) *DevAccountsAdapter {
	mnemonic := cfg.DevAccounts.Mnemonic
	if mnemonic == "" {
		mnemonic = config.DefaultMnemonic
	}
	count := cfg.DevAccounts.Count
	if count <= 0 {
		count = config.DefaultDevAccountCount
	}
	return &DevAccountsAdapter{
		mnemonic: mnemonic,
		count:    count,
	}
}

// Accounts returns the enumerated dev accounts, deriving them on first use
func (a *DevAccountsAdapter) Accounts(ctx context.Context) ([]*domain.Account, error) {
	a.once.Do(func() {
		a.accounts, a.err = DeriveAccounts(a.mnemonic, a.count)
	})
	return a.accounts, a.err
}

// DeriveAccounts derives count accounts from mnemonic
func DeriveAccounts(mnemonic string, count int) ([]*domain.Account, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("invalid dev account mnemonic: %w", err)
	}

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	accounts := make([]*domain.Account, 0, count)
	next := gethaccounts.DefaultIterator(gethaccounts.DefaultBaseDerivationPath)
	for i := 0; i < count; i++ {
		path := next()
		account, err := deriveAccount(master, path)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", path.String(), err)
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func deriveAccount(master *hdkeychain.ExtendedKey, path gethaccounts.DerivationPath) (*domain.Account, error) {
	key := master
	for _, component := range path {
		var err error
		if key, err = key.Derive(component); err != nil {
			return nil, err
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, err
	}

	ecdsaKey, err := crypto.ToECDSA(priv.Serialize())
	if err != nil {
		return nil, err
	}

	return domain.NewAccount(ecdsaKey, domain.AccountSourceDev), nil
}
