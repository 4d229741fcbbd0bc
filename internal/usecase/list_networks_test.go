package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

type stubResolver struct {
	networks map[string]*domain.Network
	order    []string
}

func (s *stubResolver) Names() []string { return s.order }

func (s *stubResolver) Resolve(name string) (*domain.Network, error) {
	network, ok := s.networks[name]
	if !ok {
		return nil, errors.New("no rpc url configured")
	}
	return network, nil
}

func TestListNetworks(t *testing.T) {
	resolver := &stubResolver{
		order: []string{"development", "mainnet-fork", "sepolia", "broken"},
		networks: map[string]*domain.Network{
			"development": {Name: "development", Kind: domain.NetworkLocal},
			"mainnet-fork": {
				Name:   "mainnet-fork",
				Kind:   domain.NetworkForkedLocal,
				RPCURL: "http://127.0.0.1:8545",
			},
			"sepolia": {
				Name:   "sepolia",
				Kind:   domain.NetworkLive,
				RPCURL: "https://rpc.sepolia.example",
				Contracts: map[string]common.Address{
					domain.VRFCoordinator:  common.HexToAddress("0x8103B0A8A00be2DDC778e6e7eaa21791Cd364625"),
					domain.EthUsdPriceFeed: sepoliaPriceFeed,
				},
			},
		},
	}

	uc := usecase.NewListNetworks(localConfig(), resolver)
	result, err := uc.Run(context.Background(), usecase.ListNetworksParams{})
	require.NoError(t, err)

	assert.Equal(t, "development", result.Active)
	require.Len(t, result.Networks, 4)

	dev := result.Networks[0]
	assert.Equal(t, domain.NetworkLocal, dev.Kind)
	assert.True(t, dev.InProcess)
	assert.Empty(t, dev.Contracts)

	fork := result.Networks[1]
	assert.Equal(t, domain.NetworkForkedLocal, fork.Kind)
	assert.False(t, fork.InProcess)

	sepolia := result.Networks[2]
	assert.Equal(t, []string{domain.EthUsdPriceFeed, domain.VRFCoordinator}, sepolia.Contracts)
	assert.NoError(t, sepolia.Error)

	broken := result.Networks[3]
	assert.Equal(t, "broken", broken.Name)
	assert.Error(t, broken.Error)
}
