package crypto

import (
	"fmt"

	"github.com/NethermindEth/starkhash/core/felt"
	lru "github.com/hashicorp/golang-lru/v2"
)

//go:generate mockgen -destination=../../mocks/mock_provider.go -package=mocks github.com/NethermindEth/starkhash/core/crypto Provider

// Provider supplies the hash primitives every calculator is built on. Implementations must be
// deterministic and safe for concurrent use.
type Provider interface {
	Pedersen(a, b *felt.Felt) felt.Felt
	Poseidon(a, b *felt.Felt) felt.Felt
	PoseidonArray(elems ...*felt.Felt) felt.Felt
	Blake2sArray(elems ...*felt.Felt) felt.Felt
	// Keccak256 is the plain Ethereum keccak digest
	Keccak256(data []byte) [32]byte
	// StarknetKeccak is Keccak256 masked to 250 bits
	StarknetKeccak(data []byte) felt.Felt
}

const DefaultPedersenCacheSize = 1 << 16

// StarkProvider is the default Provider backed by gnark-crypto, Juno's Poseidon and x/crypto.
type StarkProvider struct {
	pedersenCache *lru.Cache[pedersenKey, felt.Felt]
}

var _ Provider = (*StarkProvider)(nil)

type ProviderOption func(*StarkProvider) error

// WithPedersenCache sets the number of memoised Pedersen results, 0 disables the cache.
func WithPedersenCache(size int) ProviderOption {
	return func(p *StarkProvider) error {
		if size == 0 {
			p.pedersenCache = nil
			return nil
		}
		cache, err := lru.New[pedersenKey, felt.Felt](size)
		if err != nil {
			return fmt.Errorf("pedersen cache: %w", err)
		}
		p.pedersenCache = cache
		return nil
	}
}

func NewStarkProvider(opts ...ProviderOption) (*StarkProvider, error) {
	p := new(StarkProvider)
	opts = append([]ProviderOption{WithPedersenCache(DefaultPedersenCacheSize)}, opts...)
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustNewStarkProvider panics on invalid options. Intended for package level defaults and tests.
func MustNewStarkProvider(opts ...ProviderOption) *StarkProvider {
	p, err := NewStarkProvider(opts...)
	if err != nil {
		panic(err)
	}
	return p
}
