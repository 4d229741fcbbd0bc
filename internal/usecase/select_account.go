package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

// SelectAccountParams selects an account explicitly. Both fields are optional;
// Index wins over ID.
type SelectAccountParams struct {
	Index *int
	ID    string
}

// SelectAccount picks the signing account appropriate to the active network
type SelectAccount struct {
	config   *config.RuntimeConfig
	dev      DevAccounts
	keystore KeystoreLoader
}

// NewSelectAccount creates a new SelectAccount use case
func NewSelectAccount(cfg *config.RuntimeConfig, dev DevAccounts, keystore KeystoreLoader) *SelectAccount {
	return &SelectAccount{
		config:   cfg,
		dev:      dev,
		keystore: keystore,
	}
}

// Run selects exactly one account, in priority order: explicit index, keystore
// identifier, first dev account on local and forked networks, configured private key.
func (uc *SelectAccount) Run(ctx context.Context, params SelectAccountParams) (*domain.Account, error) {
	if params.Index != nil {
		return uc.byIndex(ctx, *params.Index)
	}

	if params.ID != "" {
		account, err := uc.keystore.Load(ctx, params.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load account '%s': %w", params.ID, err)
		}
		return account.WithSource(domain.AccountSourceKeystore, params.ID), nil
	}

	if uc.config.Network.UsesDevAccounts() {
		account, err := uc.byIndex(ctx, 0)
		if err != nil {
			return nil, err
		}
		return account.WithSource(domain.AccountSourceDev, ""), nil
	}

	return uc.fromPrivateKey()
}

func (uc *SelectAccount) byIndex(ctx context.Context, index int) (*domain.Account, error) {
	accounts, err := uc.dev.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate accounts: %w", err)
	}

	if index < 0 || index >= len(accounts) {
		return nil, fmt.Errorf("%w: index %d out of range (%d accounts available)",
			domain.ErrAccountNotFound, index, len(accounts))
	}

	return accounts[index].WithSource(domain.AccountSourceIndex, fmt.Sprintf("%d", index)), nil
}

func (uc *SelectAccount) fromPrivateKey() (*domain.Account, error) {
	if uc.config.FromKey == "" {
		return nil, domain.MissingConfigError{Key: "wallets.from_key"}
	}

	key, err := domain.ParsePrivateKey(uc.config.FromKey)
	if err != nil {
		return nil, fmt.Errorf("%w: wallets.from_key: %v", domain.ErrMissingConfiguration, err)
	}

	return domain.NewAccount(key, domain.AccountSourcePrivateKey), nil
}
