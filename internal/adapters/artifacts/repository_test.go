package artifacts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

const feedABI = `[{"type":"constructor","inputs":[{"name":"_decimals","type":"uint8"},{"name":"_initialAnswer","type":"int256"}],"stateMutability":"nonpayable"}]`

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.RuntimeConfig{ProjectRoot: root, BuildDir: filepath.Join(root, "build")}
	return NewRepository(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))), root
}

func writeArtifact(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestGetArtifact(t *testing.T) {
	ctx := context.Background()

	t.Run("brownie build output", func(t *testing.T) {
		repo, root := newTestRepository(t)
		writeArtifact(t, filepath.Join(root, "build", "contracts", "MockV3Aggregator.json"),
			`{"contractName":"MockV3Aggregator","abi":`+feedABI+`,"bytecode":"6080604052"}`)

		artifact, err := repo.GetArtifact(ctx, domain.MockV3AggregatorType)
		require.NoError(t, err)
		assert.Equal(t, domain.MockV3AggregatorType, artifact.Name)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, artifact.Bytecode)
		assert.Len(t, artifact.ABI.Constructor.Inputs, 2)
		assert.Equal(t, filepath.Join("build", "contracts", "MockV3Aggregator.json"), artifact.Path)

		again, err := repo.GetArtifact(ctx, domain.MockV3AggregatorType)
		require.NoError(t, err)
		assert.Same(t, artifact, again)
	})

	t.Run("foundry output", func(t *testing.T) {
		repo, root := newTestRepository(t)
		writeArtifact(t, filepath.Join(root, "out", "LinkToken.sol", "LinkToken.json"),
			`{"abi":[],"bytecode":{"object":"0x6080","linkReferences":{}}}`)

		artifact, err := repo.GetArtifact(ctx, domain.LinkTokenType)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80}, artifact.Bytecode)
	})

	t.Run("hardhat output", func(t *testing.T) {
		repo, root := newTestRepository(t)
		writeArtifact(t, filepath.Join(root, "artifacts", "build-info", "VRFCoordinatorMock.json"), `not json`)
		writeArtifact(t, filepath.Join(root, "artifacts", "contracts", "test", "VRFCoordinatorMock.sol", "VRFCoordinatorMock.json"),
			`{"contractName":"VRFCoordinatorMock","abi":[],"bytecode":"0x6001"}`)

		artifact, err := repo.GetArtifact(ctx, domain.VRFCoordinatorMockType)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x01}, artifact.Bytecode)
	})

	t.Run("brownie wins over foundry", func(t *testing.T) {
		repo, root := newTestRepository(t)
		writeArtifact(t, filepath.Join(root, "build", "contracts", "LinkToken.json"), `{"abi":[],"bytecode":"0x01"}`)
		writeArtifact(t, filepath.Join(root, "out", "LinkToken.sol", "LinkToken.json"), `{"abi":[],"bytecode":{"object":"0x02"}}`)

		artifact, err := repo.GetArtifact(ctx, domain.LinkTokenType)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01}, artifact.Bytecode)
	})

	t.Run("missing", func(t *testing.T) {
		repo, _ := newTestRepository(t)

		_, err := repo.GetArtifact(ctx, domain.LinkTokenType)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("unusable bytecode", func(t *testing.T) {
		for name, bytecode := range map[string]string{
			"empty":    `""`,
			"unlinked": `"0x6080__$abc$__6040"`,
			"missing":  `null`,
		} {
			t.Run(name, func(t *testing.T) {
				repo, root := newTestRepository(t)
				writeArtifact(t, filepath.Join(root, "build", "contracts", "LinkToken.json"),
					`{"abi":[],"bytecode":`+bytecode+`}`)

				_, err := repo.GetArtifact(ctx, domain.LinkTokenType)
				require.Error(t, err)
				assert.NotErrorIs(t, err, domain.ErrArtifactNotFound)
			})
		}
	})
}

func TestGetABI(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	link, err := repo.GetABI(ctx, domain.LinkTokenType)
	require.NoError(t, err)
	for _, method := range []string{"transfer", "transferAndCall", "balanceOf"} {
		assert.Contains(t, link.Methods, method)
	}

	feed, err := repo.GetABI(ctx, domain.MockV3AggregatorType)
	require.NoError(t, err)
	assert.Contains(t, feed.Methods, "latestRoundData")
	assert.Len(t, feed.Constructor.Inputs, 2)

	vrf, err := repo.GetABI(ctx, domain.VRFCoordinatorMockType)
	require.NoError(t, err)
	assert.Contains(t, vrf.Methods, "callBackWithRandomness")

	again, err := repo.GetABI(ctx, domain.LinkTokenType)
	require.NoError(t, err)
	assert.Same(t, link, again)

	_, err = repo.GetABI(ctx, "Unknown")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}
