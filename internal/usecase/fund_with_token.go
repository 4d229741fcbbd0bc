package usecase

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/devkit/internal/domain"
)

// DefaultFundAmount is 0.25 of a token with 18 decimals, the usual VRF request fee
var DefaultFundAmount = new(big.Int).Mul(big.NewInt(25), new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil))

// FundConfirmations is the number of blocks a funding transfer waits for
const FundConfirmations = 1

// FundParams contains parameters for funding a contract. Account, Token and
// Amount are optional.
type FundParams struct {
	Target  common.Address
	Account *domain.Account
	Token   *domain.Contract
	Amount  *big.Int
}

// FundResult contains the confirmed funding transfer
type FundResult struct {
	From    *domain.Account
	Token   *domain.Contract
	Target  common.Address
	Amount  *big.Int
	Receipt *types.Receipt
}

// FundWithToken transfers test tokens to a contract
type FundWithToken struct {
	selectAccount   *SelectAccount
	resolveContract *ResolveContract
	chain           Chain
	sink            ProgressSink
}

// NewFundWithToken creates a new FundWithToken use case
func NewFundWithToken(
	selectAccount *SelectAccount,
	resolveContract *ResolveContract,
	chain Chain,
	sink ProgressSink,
) *FundWithToken {
	return &FundWithToken{
		selectAccount:   selectAccount,
		resolveContract: resolveContract,
		chain:           chain,
		sink:            sink,
	}
}

// Run submits transfer(target, amount) on the token and blocks until it is mined
func (uc *FundWithToken) Run(ctx context.Context, params FundParams) (*FundResult, error) {
	if params.Target == (common.Address{}) {
		return nil, fmt.Errorf("%w: fund target is the zero address", domain.ErrTransactionFailure)
	}
	if params.Amount != nil && params.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: fund amount must be positive, got %s", domain.ErrTransactionFailure, params.Amount)
	}

	account := params.Account
	if account == nil {
		var err error
		if account, err = uc.selectAccount.Run(ctx, SelectAccountParams{}); err != nil {
			return nil, err
		}
	}

	token := params.Token
	if token == nil {
		var err error
		if token, err = uc.resolveContract.Resolve(ctx, domain.LinkToken); err != nil {
			return nil, err
		}
	}

	amount := params.Amount
	if amount == nil {
		amount = new(big.Int).Set(DefaultFundAmount)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "funding",
		Message: fmt.Sprintf("Transferring %s %s to %s...", amount.String(), token.Name, params.Target.Hex()),
		Spinner: true,
	})

	tx, err := uc.chain.Transact(ctx, account, token, "transfer", params.Target, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to fund %s: %w", params.Target.Hex(), err)
	}

	receipt, err := uc.chain.WaitMined(ctx, tx, FundConfirmations)
	if err != nil {
		return nil, fmt.Errorf("failed to fund %s: %w", params.Target.Hex(), err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete"})
	uc.sink.Info("LINK token contract funded!")

	return &FundResult{
		From:    account,
		Token:   token,
		Target:  params.Target,
		Amount:  amount,
		Receipt: receipt,
	}, nil
}
