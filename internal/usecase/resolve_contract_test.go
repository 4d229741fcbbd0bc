package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

var (
	sepoliaPriceFeed = common.HexToAddress("0x694AA1769357215DE4FAC081bf1f309aDC325306")
	sepoliaLinkToken = common.HexToAddress("0x779877A7B0D9E8603169DdbD7836e478b4624789")
)

func TestResolveContract(t *testing.T) {
	ctx := context.Background()

	t.Run("first resolution on a fresh local network deploys the mock set", func(t *testing.T) {
		h := newHarness(t, localConfig())

		feed, err := h.resolveContract.Resolve(ctx, domain.EthUsdPriceFeed)
		require.NoError(t, err)

		assert.Equal(t, []string{
			domain.MockV3AggregatorType,
			domain.LinkTokenType,
			domain.VRFCoordinatorMockType,
		}, h.deployedTypes())

		latest, err := h.store.Latest(ctx, 1337, domain.MockV3AggregatorType)
		require.NoError(t, err)
		assert.Same(t, latest, feed)
		assert.Equal(t, domain.EthUsdPriceFeed, feed.Name)
		assert.Equal(t, domain.MockV3AggregatorType, feed.Type)

		again, err := h.resolveContract.Resolve(ctx, domain.EthUsdPriceFeed)
		require.NoError(t, err)
		assert.Same(t, feed, again)
		assert.Len(t, h.chain.deploys, 3)
	})

	t.Run("every name resolves from a single mock set", func(t *testing.T) {
		h := newHarness(t, localConfig())

		resolved := map[string]*domain.Contract{}
		for _, name := range []string{domain.VRFCoordinator, domain.LinkToken, domain.EthUsdPriceFeed} {
			contract, err := h.resolveContract.Resolve(ctx, name)
			require.NoError(t, err)
			resolved[name] = contract
		}

		assert.Len(t, h.chain.deploys, 3)
		assert.Equal(t, domain.VRFCoordinatorMockType, resolved[domain.VRFCoordinator].Type)
		assert.Equal(t, domain.LinkTokenType, resolved[domain.LinkToken].Type)

		// the coordinator was constructed with the link token of the same set
		vrfDeploy := h.chain.deploys[2]
		require.Len(t, vrfDeploy.Args, 1)
		assert.Equal(t, resolved[domain.LinkToken].Address, vrfDeploy.Args[0])
	})

	t.Run("redeploy returns a fresh instance", func(t *testing.T) {
		h := newHarness(t, localConfig())

		first, err := h.resolveContract.Resolve(ctx, domain.LinkToken)
		require.NoError(t, err)

		second, err := h.resolveContract.Run(ctx, usecase.ResolveContractParams{Name: domain.LinkToken, Redeploy: true})
		require.NoError(t, err)

		assert.Len(t, h.chain.deploys, 6)
		assert.NotEqual(t, first.Address, second.Address)

		// later resolutions return the newest instance
		third, err := h.resolveContract.Resolve(ctx, domain.LinkToken)
		require.NoError(t, err)
		assert.Same(t, second, third)
	})

	t.Run("live network returns the configured address", func(t *testing.T) {
		h := newHarness(t, liveConfig(map[string]common.Address{
			domain.EthUsdPriceFeed: sepoliaPriceFeed,
			domain.LinkToken:       sepoliaLinkToken,
		}))

		feed, err := h.resolveContract.Resolve(ctx, domain.EthUsdPriceFeed)
		require.NoError(t, err)
		assert.Equal(t, sepoliaPriceFeed, feed.Address)
		assert.Equal(t, domain.MockV3AggregatorType, feed.Type)
		assert.True(t, feed.Deployed.IsZero())

		link, err := h.resolveContract.Resolve(ctx, domain.LinkToken)
		require.NoError(t, err)
		assert.Equal(t, sepoliaLinkToken, link.Address)

		assert.Empty(t, h.chain.deploys)
	})

	t.Run("live network without the address configured", func(t *testing.T) {
		h := newHarness(t, liveConfig(map[string]common.Address{
			domain.EthUsdPriceFeed: sepoliaPriceFeed,
		}))

		_, err := h.resolveContract.Resolve(ctx, domain.VRFCoordinator)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingConfiguration)

		var missing domain.MissingConfigError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "networks.sepolia.vrf_coordinator", missing.Key)
		assert.Empty(t, h.chain.deploys)
	})

	t.Run("forked network reads configured addresses", func(t *testing.T) {
		cfg := liveConfig(map[string]common.Address{domain.LinkToken: sepoliaLinkToken})
		cfg.Network.Name = "mainnet-fork"
		cfg.Network.Kind = domain.NetworkForkedLocal
		h := newHarness(t, cfg)

		link, err := h.resolveContract.Resolve(ctx, domain.LinkToken)
		require.NoError(t, err)
		assert.Equal(t, sepoliaLinkToken, link.Address)
		assert.Empty(t, h.chain.deploys)
	})

	t.Run("unknown name", func(t *testing.T) {
		for _, cfgName := range []string{"local", "live"} {
			cfg := localConfig()
			if cfgName == "live" {
				cfg = liveConfig(nil)
			}
			h := newHarness(t, cfg)

			_, err := h.resolveContract.Resolve(ctx, "link_tokn")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnknownContract)

			var unknown domain.UnknownContractError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, "link_tokn", unknown.Name)
			assert.Contains(t, unknown.Suggestions, domain.LinkToken)
			assert.Empty(t, h.chain.deploys)
		}
	})

	t.Run("persisted entry without code is redeployed", func(t *testing.T) {
		cfg := localConfig()
		cfg.Network.Name = "ganache-local"
		cfg.Network.RPCURL = "http://127.0.0.1:8545"
		cfg.Network.Persist = true
		h := newHarness(t, cfg)

		stale := &domain.Contract{
			Name:     domain.EthUsdPriceFeed,
			Type:     domain.MockV3AggregatorType,
			Address:  common.HexToAddress("0x1111111111111111111111111111111111111111"),
			Deployed: time.Now().Add(-time.Hour),
		}
		require.NoError(t, h.store.Record(ctx, 1337, stale))

		feed, err := h.resolveContract.Resolve(ctx, domain.EthUsdPriceFeed)
		require.NoError(t, err)

		assert.Len(t, h.chain.deploys, 3)
		assert.NotEqual(t, stale.Address, feed.Address)
		assert.NotEmpty(t, h.chain.code[feed.Address])
		assert.Contains(t, h.sink.infos[0], "No code at recorded")
	})

	t.Run("persisted entry with code is reused", func(t *testing.T) {
		cfg := localConfig()
		cfg.Network.Name = "ganache-local"
		cfg.Network.RPCURL = "http://127.0.0.1:8545"
		cfg.Network.Persist = true
		h := newHarness(t, cfg)

		recorded := &domain.Contract{
			Name:    domain.LinkToken,
			Type:    domain.LinkTokenType,
			Address: common.HexToAddress("0x2222222222222222222222222222222222222222"),
		}
		h.chain.code[recorded.Address] = []byte{0x60, 0x80}
		require.NoError(t, h.store.Record(ctx, 1337, recorded))

		link, err := h.resolveContract.Resolve(ctx, domain.LinkToken)
		require.NoError(t, err)
		assert.Same(t, recorded, link)
		assert.Empty(t, h.chain.deploys)
	})

	t.Run("missing artifact is reported and nothing is recorded", func(t *testing.T) {
		h := newHarness(t, localConfig())
		h.artifacts.missing = map[string]bool{domain.MockV3AggregatorType: true}

		_, err := h.resolveContract.Resolve(ctx, domain.LinkToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

		all, err := h.store.All(ctx, 1337)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
