package crypto

import (
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/utils"
)

// LoggingProvider traces every primitive call of the wrapped Provider at debug level.
type LoggingProvider struct {
	inner Provider
	log   utils.SimpleLogger
}

var _ Provider = (*LoggingProvider)(nil)

func NewLoggingProvider(inner Provider, log utils.SimpleLogger) *LoggingProvider {
	return &LoggingProvider{inner: inner, log: log}
}

func (p *LoggingProvider) Pedersen(a, b *felt.Felt) felt.Felt {
	res := p.inner.Pedersen(a, b)
	p.log.Debugw("pedersen", "a", a, "b", b, "result", &res)
	return res
}

func (p *LoggingProvider) Poseidon(a, b *felt.Felt) felt.Felt {
	res := p.inner.Poseidon(a, b)
	p.log.Debugw("poseidon", "a", a, "b", b, "result", &res)
	return res
}

func (p *LoggingProvider) PoseidonArray(elems ...*felt.Felt) felt.Felt {
	res := p.inner.PoseidonArray(elems...)
	p.log.Debugw("poseidon array", "elems", elems, "result", &res)
	return res
}

func (p *LoggingProvider) Blake2sArray(elems ...*felt.Felt) felt.Felt {
	res := p.inner.Blake2sArray(elems...)
	p.log.Debugw("blake2s array", "elems", elems, "result", &res)
	return res
}

func (p *LoggingProvider) Keccak256(data []byte) [32]byte {
	res := p.inner.Keccak256(data)
	p.log.Debugw("keccak256", "len", len(data), "result", res)
	return res
}

func (p *LoggingProvider) StarknetKeccak(data []byte) felt.Felt {
	res := p.inner.StarknetKeccak(data)
	p.log.Debugw("starknet keccak", "len", len(data), "result", &res)
	return res
}
