package crypto

import (
	"github.com/NethermindEth/starkhash/core/felt"
	pedersenhash "github.com/consensys/gnark-crypto/ecc/stark-curve/pedersen-hash"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var pedersenCacheCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "starkhash_pedersen_cache",
	Help: "Pedersen cache lookups by outcome",
}, []string{"hit"})

type pedersenKey struct {
	x, y felt.Felt
}

// Pedersen implements the [Pedersen hash].
//
// [Pedersen hash]: https://docs.starknet.io/documentation/develop/Hashing/hash-functions/#pedersen_hash
func (p *StarkProvider) Pedersen(a, b *felt.Felt) felt.Felt {
	if p.pedersenCache == nil {
		return pedersen(a, b)
	}

	key := pedersenKey{x: *a, y: *b}
	if res, ok := p.pedersenCache.Get(key); ok {
		pedersenCacheCounter.WithLabelValues("true").Inc()
		return res
	}

	result := pedersen(a, b)
	p.pedersenCache.Add(key, result)
	pedersenCacheCounter.WithLabelValues("false").Inc()
	return result
}

func pedersen(a, b *felt.Felt) felt.Felt {
	hash := pedersenhash.Pedersen(a.Impl(), b.Impl())
	return *felt.NewFelt(&hash)
}

// PedersenArray implements [Pedersen array hashing].
//
// [Pedersen array hashing]: https://docs.starknet.io/documentation/develop/Hashing/hash-functions/#array_hashing
func PedersenArray(p Provider, elems ...*felt.Felt) felt.Felt {
	return NewPedersenDigest(p).Update(elems...).Finish()
}
