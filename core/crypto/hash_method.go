package crypto

import (
	"encoding"
	"errors"
	"fmt"
	"strings"

	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/spf13/pflag"
)

var ErrUnknownHashMethod = errors.New("unknown hash method (known: pedersen, poseidon, blake2s)")

type HashMethod uint8

// The following are necessary for Cobra and Viper, respectively, to unmarshal hash method
// CLI/config parameters properly.
var (
	_ pflag.Value              = (*HashMethod)(nil)
	_ encoding.TextUnmarshaler = (*HashMethod)(nil)
)

const (
	Pedersen HashMethod = iota + 1
	Poseidon
	Blake2s
)

func (m HashMethod) String() string {
	switch m {
	case Pedersen:
		return "pedersen"
	case Poseidon:
		return "poseidon"
	case Blake2s:
		return "blake2s"
	default:
		return fmt.Sprintf("HashMethod(%d)", uint8(m))
	}
}

func (m *HashMethod) Set(s string) error {
	switch strings.ToLower(s) {
	case "pedersen":
		*m = Pedersen
	case "poseidon":
		*m = Poseidon
	case "blake2s", "blake":
		*m = Blake2s
	default:
		return ErrUnknownHashMethod
	}
	return nil
}

func (m *HashMethod) Type() string {
	return "HashMethod"
}

func (m *HashMethod) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

func (m HashMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Hasher binds a HashMethod to a Provider.
type Hasher struct {
	Provider Provider
	Method   HashMethod
}

func NewHasher(p Provider, m HashMethod) Hasher {
	return Hasher{Provider: p, Method: m}
}

// Hash is the two input hash of the method. Blake2s hashes the pair as a two element array.
func (h Hasher) Hash(a, b *felt.Felt) felt.Felt {
	switch h.Method {
	case Pedersen:
		return h.Provider.Pedersen(a, b)
	case Poseidon:
		return h.Provider.Poseidon(a, b)
	case Blake2s:
		return h.Provider.Blake2sArray(a, b)
	default:
		panic(ErrUnknownHashMethod)
	}
}

func (h Hasher) HashArray(elems ...*felt.Felt) felt.Felt {
	return h.Digest().Update(elems...).Finish()
}

func (h Hasher) Digest() Digest {
	switch h.Method {
	case Pedersen:
		return NewPedersenDigest(h.Provider)
	case Poseidon:
		return NewPoseidonDigest(h.Provider)
	case Blake2s:
		return NewBlake2sDigest(h.Provider)
	default:
		panic(ErrUnknownHashMethod)
	}
}
