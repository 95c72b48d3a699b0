package crypto

import "github.com/NethermindEth/starkhash/core/felt"

type Digest interface {
	Update(...*felt.Felt) Digest
	Finish() felt.Felt
}

var (
	_ Digest = (*PedersenDigest)(nil)
	_ Digest = (*PoseidonDigest)(nil)
	_ Digest = (*Blake2sDigest)(nil)
)

// PedersenDigest folds elements with Pedersen starting from zero and finishes with the count.
type PedersenDigest struct {
	provider Provider
	digest   felt.Felt
	count    uint64
}

func NewPedersenDigest(p Provider) *PedersenDigest {
	return &PedersenDigest{provider: p}
}

func (d *PedersenDigest) Update(elems ...*felt.Felt) Digest {
	for idx := range elems {
		d.digest = d.provider.Pedersen(&d.digest, elems[idx])
	}
	d.count += uint64(len(elems))
	return d
}

func (d *PedersenDigest) Finish() felt.Felt {
	count := felt.FromUint64(d.count)
	return d.provider.Pedersen(&d.digest, &count)
}

// PoseidonDigest buffers elements and hashes them with Poseidon hash-many on Finish.
type PoseidonDigest struct {
	provider Provider
	elems    []*felt.Felt
}

func NewPoseidonDigest(p Provider) *PoseidonDigest {
	return &PoseidonDigest{provider: p}
}

func (d *PoseidonDigest) Update(elems ...*felt.Felt) Digest {
	d.elems = appendCopies(d.elems, elems)
	return d
}

func (d *PoseidonDigest) Finish() felt.Felt {
	return d.provider.PoseidonArray(d.elems...)
}

type Blake2sDigest struct {
	provider Provider
	elems    []*felt.Felt
}

func NewBlake2sDigest(p Provider) *Blake2sDigest {
	return &Blake2sDigest{provider: p}
}

func (d *Blake2sDigest) Update(elems ...*felt.Felt) Digest {
	d.elems = appendCopies(d.elems, elems)
	return d
}

func (d *Blake2sDigest) Finish() felt.Felt {
	return d.provider.Blake2sArray(d.elems...)
}

func appendCopies(dst, elems []*felt.Felt) []*felt.Felt {
	for _, e := range elems {
		v := *e
		dst = append(dst, &v)
	}
	return dst
}
