package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract is a usable handle to a contract on the active network
type Contract struct {
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Address common.Address `json:"address"`
	TxHash  common.Hash    `json:"txHash,omitempty"`

	// Deployed is set for mocks deployed by devkit, zero for configured addresses
	Deployed time.Time `json:"deployed"`

	ABI abi.ABI `json:"-"`
}

// Artifact is a compiled contract: its interface and creation bytecode
type Artifact struct {
	Name     string
	Path     string
	ABI      abi.ABI
	Bytecode []byte
}
