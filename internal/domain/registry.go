package domain

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/sahilm/fuzzy"
)

// Mock contract types deployed on local networks
const (
	MockV3AggregatorType   = "MockV3Aggregator"
	LinkTokenType          = "LinkToken"
	VRFCoordinatorMockType = "VRFCoordinatorMock"
)

// Logical contract names
const (
	EthUsdPriceFeed = "eth_usd_price_feed"
	VRFCoordinator  = "vrf_coordinator"
	LinkToken       = "link_token"
)

// Default constructor parameters for the price feed mock
const (
	DefaultDecimals = 8
)

// DefaultInitialValue is the price feed mock's initial answer (2000 with 8 decimals)
var DefaultInitialValue = big.NewInt(200000000000)

// MockParams holds constructor parameters for a mock set deployment
type MockParams struct {
	Decimals     uint8
	InitialValue *big.Int
}

// DefaultMockParams returns the parameters used when none are given
func DefaultMockParams() MockParams {
	return MockParams{
		Decimals:     DefaultDecimals,
		InitialValue: new(big.Int).Set(DefaultInitialValue),
	}
}

// MockDeployer deploys a single mock type with constructor arguments
type MockDeployer interface {
	DeployMock(ctx context.Context, contractType string, args ...any) (*Contract, error)
}

// DeployFunc deploys one mock. deployed holds the mocks already deployed in the
// current set, keyed by type.
type DeployFunc func(ctx context.Context, d MockDeployer, deployed map[string]*Contract, params MockParams) (*Contract, error)

// MockSpec maps a logical contract name to the mock type deployed for it locally
type MockSpec struct {
	Name   string
	Type   string
	Deploy DeployFunc
}

// Registry is the table of contract names known to the resolver.
// Specs are kept in deployment order.
type Registry struct {
	specs  []MockSpec
	byName map[string]int
}

// NewRegistry creates a registry from specs in deployment order
func NewRegistry(specs ...MockSpec) *Registry {
	r := &Registry{byName: make(map[string]int, len(specs))}
	for _, spec := range specs {
		r.byName[spec.Name] = len(r.specs)
		r.specs = append(r.specs, spec)
	}
	return r
}

// DefaultRegistry returns the price feed, link token and VRF coordinator mocks
func DefaultRegistry() *Registry {
	return NewRegistry(
		MockSpec{
			Name: EthUsdPriceFeed,
			Type: MockV3AggregatorType,
			Deploy: func(ctx context.Context, d MockDeployer, _ map[string]*Contract, params MockParams) (*Contract, error) {
				return d.DeployMock(ctx, MockV3AggregatorType, params.Decimals, params.InitialValue)
			},
		},
		MockSpec{
			Name: LinkToken,
			Type: LinkTokenType,
			Deploy: func(ctx context.Context, d MockDeployer, _ map[string]*Contract, _ MockParams) (*Contract, error) {
				return d.DeployMock(ctx, LinkTokenType)
			},
		},
		MockSpec{
			Name: VRFCoordinator,
			Type: VRFCoordinatorMockType,
			Deploy: func(ctx context.Context, d MockDeployer, deployed map[string]*Contract, _ MockParams) (*Contract, error) {
				link, ok := deployed[LinkTokenType]
				if !ok {
					return nil, fmt.Errorf("%s requires %s to be deployed first", VRFCoordinatorMockType, LinkTokenType)
				}
				return d.DeployMock(ctx, VRFCoordinatorMockType, link.Address)
			},
		},
	)
}

// Lookup returns the mock entry registered under name
func (r *Registry) Lookup(name string) (MockSpec, error) {
	idx, ok := r.byName[name]
	if !ok {
		return MockSpec{}, UnknownContractError{Name: name, Suggestions: r.suggest(name)}
	}
	return r.specs[idx], nil
}

// Specs returns all specs in deployment order
func (r *Registry) Specs() []MockSpec {
	out := make([]MockSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Names returns the registered contract names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for _, spec := range r.specs {
		names = append(names, spec.Name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) suggest(name string) []string {
	matches := fuzzy.Find(name, r.Names())
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}
