package accounts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

func newTestKeystore(t *testing.T) *KeystoreAdapter {
	t.Helper()
	cfg := &config.RuntimeConfig{KeystoreDir: filepath.Join(t.TempDir(), "accounts")}
	return NewKeystoreAdapter(cfg, EnvPassword{}).WithLightScrypt()
}

func TestKeystoreAdapter(t *testing.T) {
	ctx := context.Background()
	t.Setenv(KeystorePasswordEnv, "hunter2")

	key, err := crypto.HexToECDSA("59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d")
	require.NoError(t, err)

	t.Run("save then load", func(t *testing.T) {
		ks := newTestKeystore(t)

		saved, err := ks.Save(ctx, "deployer", key, "hunter2")
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), saved.Address)

		loaded, err := ks.Load(ctx, "deployer")
		require.NoError(t, err)
		assert.Equal(t, saved.Address, loaded.Address)
		assert.Equal(t, domain.AccountSourceKeystore, loaded.Source)
		assert.True(t, key.Equal(loaded.PrivateKey()))

		address, err := ks.Address(ctx, "deployer")
		require.NoError(t, err)
		assert.Equal(t, saved.Address, address)

		info, err := os.Stat(filepath.Join(ks.dir, "deployer.json"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("save does not overwrite", func(t *testing.T) {
		ks := newTestKeystore(t)

		_, err := ks.Save(ctx, "deployer", key, "hunter2")
		require.NoError(t, err)
		_, err = ks.Save(ctx, "deployer", key, "other")
		assert.ErrorContains(t, err, "already exists")
	})

	t.Run("list", func(t *testing.T) {
		ks := newTestKeystore(t)

		ids, err := ks.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, ids)

		for _, id := range []string{"zeta", "alpha"} {
			_, err := ks.Save(ctx, id, key, "hunter2")
			require.NoError(t, err)
		}
		require.NoError(t, os.WriteFile(filepath.Join(ks.dir, "notes.txt"), []byte("x"), 0600))

		ids, err = ks.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "zeta"}, ids)
	})

	t.Run("missing entry", func(t *testing.T) {
		ks := newTestKeystore(t)

		_, err := ks.Load(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		ks := newTestKeystore(t)

		_, err := ks.Load(ctx, "../escape")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		ks := newTestKeystore(t)

		_, err := ks.Save(ctx, "deployer", key, "correct horse")
		require.NoError(t, err)

		_, err = ks.Load(ctx, "deployer")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrAccountNotFound)
		assert.Contains(t, err.Error(), "failed to decrypt")
	})

	t.Run("no keystore directory configured", func(t *testing.T) {
		ks := NewKeystoreAdapter(&config.RuntimeConfig{}, EnvPassword{})

		_, err := ks.Load(ctx, "deployer")
		assert.ErrorIs(t, err, domain.ErrMissingConfiguration)
	})
}

func TestEnvPasswordUnset(t *testing.T) {
	t.Setenv(KeystorePasswordEnv, "")
	require.NoError(t, os.Unsetenv(KeystorePasswordEnv))

	_, err := EnvPassword{}.Password(context.Background(), "deployer")
	assert.ErrorContains(t, err, KeystorePasswordEnv)
}
