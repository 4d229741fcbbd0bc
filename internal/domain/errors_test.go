package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestUnknownContractError(t *testing.T) {
	err := fmt.Errorf("resolve: %w", UnknownContractError{Name: "feed"})
	assert.ErrorIs(t, err, ErrUnknownContract)
	assert.EqualError(t, err, "resolve: unknown contract 'feed'")
}

func TestMissingConfigError(t *testing.T) {
	err := MissingConfigError{Key: "networks.sepolia.link_token"}
	assert.ErrorIs(t, err, ErrMissingConfiguration)
	assert.Contains(t, err.Error(), "networks.sepolia.link_token")
}

func TestTransactionError(t *testing.T) {
	hash := common.HexToHash("0xabc")

	t.Run("revert", func(t *testing.T) {
		err := TransactionError{TxHash: hash, Status: 0}
		assert.ErrorIs(t, err, ErrTransactionFailure)
		assert.Contains(t, err.Error(), "reverted (status 0)")
	})

	t.Run("wraps the cause", func(t *testing.T) {
		cause := errors.New("insufficient funds for gas")
		err := fmt.Errorf("fund: %w", TransactionError{Err: cause})

		assert.ErrorIs(t, err, ErrTransactionFailure)
		assert.ErrorIs(t, err, cause)

		var txErr TransactionError
		assert.ErrorAs(t, err, &txErr)
		assert.Equal(t, common.Hash{}, txErr.TxHash)
	})
}
