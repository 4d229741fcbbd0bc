package artifacts

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/domain/config"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

//go:embed interfaces/*.json
var interfaces embed.FS

// Repository finds compiled mocks in the project's build output and serves
// the embedded interface ABIs
type Repository struct {
	projectRoot string
	buildDir    string
	log         *slog.Logger

	mu        sync.Mutex
	artifacts map[string]*domain.Artifact
	abis      map[string]*abi.ABI
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot: cfg.ProjectRoot,
		buildDir:    cfg.BuildDir,
		log:         log,
		artifacts:   make(map[string]*domain.Artifact),
		abis:        make(map[string]*abi.ABI),
	}
}

// artifactFile covers the brownie, hardhat and foundry artifact layouts
type artifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

// GetArtifact returns the compiled mock of the given type, bytecode included
func (r *Repository) GetArtifact(ctx context.Context, contractType string) (*domain.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if artifact, ok := r.artifacts[contractType]; ok {
		return artifact, nil
	}

	path, err := r.find(contractType)
	if err != nil {
		return nil, err
	}

	artifact, err := r.load(path, contractType)
	if err != nil {
		return nil, err
	}

	r.log.Debug("loaded artifact", "type", contractType, "path", artifact.Path)
	r.artifacts[contractType] = artifact
	return artifact, nil
}

// GetABI returns the embedded interface ABI of a mock type. Types without an
// embedded interface fall back to the build output.
func (r *Repository) GetABI(ctx context.Context, contractType string) (*abi.ABI, error) {
	r.mu.Lock()
	if parsed, ok := r.abis[contractType]; ok {
		r.mu.Unlock()
		return parsed, nil
	}
	r.mu.Unlock()

	data, err := interfaces.ReadFile("interfaces/" + contractType + ".json")
	if err != nil {
		artifact, artErr := r.GetArtifact(ctx, contractType)
		if artErr != nil {
			return nil, artErr
		}
		return &artifact.ABI, nil
	}

	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse interface ABI for %s: %w", contractType, err)
	}

	r.mu.Lock()
	r.abis[contractType] = &parsed
	r.mu.Unlock()
	return &parsed, nil
}

// find locates the artifact of contractType. Brownie's build/contracts wins,
// then foundry's out/, then hardhat's artifacts/ tree.
func (r *Repository) find(contractType string) (string, error) {
	candidates := []string{
		filepath.Join(r.buildDir, "contracts", contractType+".json"),
		filepath.Join(r.projectRoot, "out", contractType+".sol", contractType+".json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	hardhatDir := filepath.Join(r.projectRoot, "artifacts")
	var found string
	err := filepath.WalkDir(hardhatDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() == contractType+".json" && filepath.Base(filepath.Dir(path)) == contractType+".sol" {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search %s: %w", hardhatDir, err)
	}
	if found != "" {
		return found, nil
	}

	return "", fmt.Errorf("%w: %s (compile the project's mock contracts first)", domain.ErrArtifactNotFound, contractType)
}

func (r *Repository) load(path, contractType string) (*domain.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}

	if len(file.ABI) == 0 {
		return nil, fmt.Errorf("artifact %s has no abi", path)
	}
	parsed, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi in %s: %w", path, err)
	}

	bytecode, err := decodeBytecode(file.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}

	relPath, relErr := filepath.Rel(r.projectRoot, path)
	if relErr != nil {
		relPath = path
	}

	return &domain.Artifact{
		Name:     contractType,
		Path:     relPath,
		ABI:      parsed,
		Bytecode: bytecode,
	}, nil
}

// decodeBytecode accepts a plain hex string (brownie, hardhat) or a foundry
// {"object": "0x..."} section. The 0x prefix is optional.
func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no bytecode")
	}

	var code string
	if err := json.Unmarshal(raw, &code); err != nil {
		var section struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &section); err != nil {
			return nil, fmt.Errorf("unrecognized bytecode format")
		}
		code = section.Object
	}

	code = strings.TrimPrefix(code, "0x")
	if code == "" {
		return nil, fmt.Errorf("empty bytecode (abstract contract or interface)")
	}
	if strings.Contains(code, "__") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}

	return hexutil.Decode("0x" + code)
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
