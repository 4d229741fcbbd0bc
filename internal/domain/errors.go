package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for resolver operations
var (
	// ErrAccountNotFound is returned when an account index or identifier does not resolve
	ErrAccountNotFound = errors.New("account not found")

	// ErrMissingConfiguration is returned when a private key or contract address is not configured
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrUnknownContract is returned when a contract name is not in the registry
	ErrUnknownContract = errors.New("unknown contract")

	// ErrTransactionFailure is returned when a transaction cannot be submitted or is reverted
	ErrTransactionFailure = errors.New("transaction failed")

	// ErrArtifactNotFound is returned when no build artifact exists for a mock type
	ErrArtifactNotFound = errors.New("artifact not found")
)

type UnknownContractError struct {
	Name        string
	Suggestions []string
}

func (e UnknownContractError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown contract '%s'", e.Name)
	}
	return fmt.Sprintf("unknown contract '%s' (did you mean: %s?)", e.Name, strings.Join(e.Suggestions, ", "))
}

func (e UnknownContractError) Unwrap() error { return ErrUnknownContract }

type MissingConfigError struct {
	Key string
}

func (e MissingConfigError) Error() string {
	return fmt.Sprintf("missing configuration: %s is not set", e.Key)
}

func (e MissingConfigError) Unwrap() error { return ErrMissingConfiguration }

// TransactionError wraps a failure on submission, confirmation or execution of a transaction
type TransactionError struct {
	TxHash common.Hash
	Status uint64
	Err    error
}

func (e TransactionError) Error() string {
	if e.TxHash == (common.Hash{}) {
		return fmt.Sprintf("transaction failed: %v", e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("transaction %s reverted (status %d)", e.TxHash.Hex(), e.Status)
	}
	return fmt.Sprintf("transaction %s failed: %v", e.TxHash.Hex(), e.Err)
}

func (e TransactionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransactionFailure}
	}
	return []error{ErrTransactionFailure, e.Err}
}
