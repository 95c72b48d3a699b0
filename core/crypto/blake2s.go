package crypto

import (
	"github.com/NethermindEth/starkhash/core/crypto/blake2s"
	"github.com/NethermindEth/starkhash/core/felt"
)

func (p *StarkProvider) Blake2sArray(elems ...*felt.Felt) felt.Felt {
	return blake2s.Blake2sArray(elems...)
}
