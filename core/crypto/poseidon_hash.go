package crypto

import (
	"github.com/NethermindEth/starkhash/core/felt"
	junocrypto "github.com/NethermindEth/juno/core/crypto"
	junofelt "github.com/NethermindEth/juno/core/felt"
)

// Poseidon implements the two input [Poseidon hash].
//
// [Poseidon hash]: https://docs.starknet.io/documentation/architecture_and_concepts/Cryptography/hash-functions/#poseidon_hash
func (p *StarkProvider) Poseidon(a, b *felt.Felt) felt.Felt {
	x, y := toJuno(a), toJuno(b)
	h := junocrypto.Poseidon(x, y)
	return fromJuno(h.Bytes())
}

// PoseidonArray implements Poseidon hash-many over an arbitrary number of felts.
func (p *StarkProvider) PoseidonArray(elems ...*felt.Felt) felt.Felt {
	in := make([]*junofelt.Felt, len(elems))
	for i, e := range elems {
		in[i] = toJuno(e)
	}
	h := junocrypto.PoseidonArray(in...)
	return fromJuno(h.Bytes())
}

func toJuno(f *felt.Felt) *junofelt.Felt {
	b := f.Bytes()
	return new(junofelt.Felt).SetBytes(b[:])
}

func fromJuno(b [32]byte) felt.Felt {
	var f felt.Felt
	f.SetBytes(b[:])
	return f
}
