package blake2s

import (
	"slices"

	"github.com/NethermindEth/starkhash/core/felt"
	"golang.org/x/crypto/blake2s"
)

// Following the same implementation behind
// https://github.com/starknet-io/types-rs/blob/main/crates/starknet-types-core/src/hash/blake2s.rs

func Blake2s(x, y *felt.Felt) felt.Felt {
	return Blake2sArray(x, y)
}

func Blake2sArray(felts ...*felt.Felt) felt.Felt {
	digest := blake2s.Sum256(encodeFeltsToBytes(felts...))
	// Result is in big endian, turning into little endian
	slices.Reverse(digest[:])

	var f felt.Felt
	f.SetBytes(digest[:])
	return f
}
