package crypto

import (
	"github.com/NethermindEth/starkhash/core/felt"
	"golang.org/x/crypto/sha3"
)

func (p *StarkProvider) Keccak256(data []byte) [32]byte {
	var d [32]byte
	h := sha3.NewLegacyKeccak256()
	// hash.Hash never returns an error on Write
	_, _ = h.Write(data)
	h.Sum(d[:0])
	return d
}

// StarknetKeccak implements [StarkNet keccak]
//
// [StarkNet keccak]: https://docs.starknet.io/documentation/develop/Hashing/hash-functions/#starknet_keccak
func (p *StarkProvider) StarknetKeccak(data []byte) felt.Felt {
	d := p.Keccak256(data)
	// Remove the first 6 bits from the first byte
	d[0] &= 3

	var f felt.Felt
	f.SetBytes(d[:])
	return f
}

const (
	defaultEntryPoint   = "__default__"
	l1DefaultEntryPoint = "__l1_default__"
)

// SelectorFromName returns the entry point selector of a Cairo function name.
func SelectorFromName(p Provider, name string) felt.Felt {
	if name == defaultEntryPoint || name == l1DefaultEntryPoint {
		return felt.Zero
	}
	return p.StarknetKeccak([]byte(name))
}
