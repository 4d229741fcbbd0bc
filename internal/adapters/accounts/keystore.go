package accounts

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
)

// KeystorePasswordEnv supplies the keystore password without prompting
const KeystorePasswordEnv = "DEVKIT_KEYSTORE_PASSWORD"

var validID = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// PasswordSource provides the password that unlocks a keystore entry
type PasswordSource interface {
	Password(ctx context.Context, id string) (string, error)
}

// EnvPassword reads the password from DEVKIT_KEYSTORE_PASSWORD
type EnvPassword struct{}

func (EnvPassword) Password(ctx context.Context, id string) (string, error) {
	password, ok := os.LookupEnv(KeystorePasswordEnv)
	if !ok {
		return "", fmt.Errorf("%s is not set", KeystorePasswordEnv)
	}
	return password, nil
}

// KeystoreAdapter loads v3 keystore files stored as <dir>/<id>.json
type KeystoreAdapter struct {
	dir      string
	password PasswordSource

	// scrypt parameters used when saving
	scryptN int
	scryptP int
}

// NewKeystoreAdapter creates a new keystore adapter
func NewKeystoreAdapter(cfg *config.RuntimeConfig, password PasswordSource) *KeystoreAdapter {
	return &KeystoreAdapter{
		dir:      cfg.KeystoreDir,
		password: password,
		scryptN:  keystore.StandardScryptN,
		scryptP:  keystore.StandardScryptP,
	}
}

// WithLightScrypt makes Save use cheap scrypt parameters
func (k *KeystoreAdapter) WithLightScrypt() *KeystoreAdapter {
	k.scryptN = keystore.LightScryptN
	k.scryptP = keystore.LightScryptP
	return k
}

// Load decrypts the keystore entry saved under id
func (k *KeystoreAdapter) Load(ctx context.Context, id string) (*domain.Account, error) {
	path, err := k.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no keystore entry '%s' in %s", domain.ErrAccountNotFound, id, k.dir)
		}
		return nil, fmt.Errorf("failed to read keystore entry: %w", err)
	}

	password, err := k.password.Password(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get password for '%s': %w", id, err)
	}

	key, err := keystore.DecryptKey(data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore entry '%s': %w", id, err)
	}

	return domain.NewAccount(key.PrivateKey, domain.AccountSourceKeystore), nil
}

// Save encrypts a private key under id. Existing entries are not overwritten.
func (k *KeystoreAdapter) Save(ctx context.Context, id string, privateKey *ecdsa.PrivateKey, password string) (*domain.Account, error) {
	path, err := k.path(id)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("keystore entry '%s' already exists", id)
	}

	keyID, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key id: %w", err)
	}

	data, err := keystore.EncryptKey(&keystore.Key{
		Id:         keyID,
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}, password, k.scryptN, k.scryptP)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt key: %w", err)
	}

	if err := os.MkdirAll(k.dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create keystore directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write keystore entry: %w", err)
	}

	return domain.NewAccount(privateKey, domain.AccountSourceKeystore), nil
}

// List returns the ids of all saved entries, sorted
func (k *KeystoreAdapter) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(k.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Address reads the unencrypted address of a saved entry
func (k *KeystoreAdapter) Address(ctx context.Context, id string) (common.Address, error) {
	path, err := k.path(id)
	if err != nil {
		return common.Address{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read keystore entry: %w", err)
	}

	var entry struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return common.Address{}, fmt.Errorf("failed to parse keystore entry '%s': %w", id, err)
	}
	if !common.IsHexAddress(entry.Address) {
		return common.Address{}, fmt.Errorf("keystore entry '%s' has no address", id)
	}
	return common.HexToAddress(entry.Address), nil
}

func (k *KeystoreAdapter) path(id string) (string, error) {
	if !validID.MatchString(id) {
		return "", fmt.Errorf("%w: invalid account id '%s'", domain.ErrAccountNotFound, id)
	}
	if k.dir == "" {
		return "", domain.MissingConfigError{Key: "keystore_dir"}
	}
	return filepath.Join(k.dir, id+".json"), nil
}
