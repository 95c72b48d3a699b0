package felt

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Uint64 is a felt that fits into 64 bits.
type Uint64 struct {
	value Felt
}

func NewUint64(v uint64) Uint64 {
	return Uint64{value: FromUint64(v)}
}

func Uint64FromFelt(f Felt) (Uint64, error) {
	if !fitsLimbs(&f, 1) {
		return Uint64{}, fmt.Errorf("%w: %s exceeds 64 bits", ErrOutOfRange, &f)
	}
	return Uint64{value: f}, nil
}

func (u Uint64) Felt() Felt {
	return u.value
}

func (u Uint64) Uint64() uint64 {
	return u.value.Bits()[0]
}

// Uint128 is a felt that fits into 128 bits.
type Uint128 struct {
	value Felt
}

func Uint128FromFelt(f Felt) (Uint128, error) {
	if !fitsLimbs(&f, 2) {
		return Uint128{}, fmt.Errorf("%w: %s exceeds 128 bits", ErrOutOfRange, &f)
	}
	return Uint128{value: f}, nil
}

func Uint128FromBig(v *big.Int) (Uint128, error) {
	if v.Sign() < 0 || v.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("%w: %s exceeds 128 bits", ErrOutOfRange, v)
	}
	var f Felt
	f.SetBigInt(v)
	return Uint128{value: f}, nil
}

func NewUint128(v uint64) Uint128 {
	return Uint128{value: FromUint64(v)}
}

func (u Uint128) Felt() Felt {
	return u.value
}

func (u Uint128) BigInt() *big.Int {
	return u.value.BigInt(new(big.Int))
}

// Uint256 is a 256 bit unsigned integer split into two 128 bit halves,
// value = Low + High * 2^128.
type Uint256 struct {
	Low  Uint128
	High Uint128
}

func NewUint256(v *uint256.Int) Uint256 {
	return Uint256{
		Low:  Uint128{value: limbsToFelt(v[0], v[1])},
		High: Uint128{value: limbsToFelt(v[2], v[3])},
	}
}

func Uint256FromParts(low, high Felt) (Uint256, error) {
	l, err := Uint128FromFelt(low)
	if err != nil {
		return Uint256{}, fmt.Errorf("low: %w", err)
	}
	h, err := Uint128FromFelt(high)
	if err != nil {
		return Uint256{}, fmt.Errorf("high: %w", err)
	}
	return Uint256{Low: l, High: h}, nil
}

func Uint256FromBig(v *big.Int) (Uint256, error) {
	value, overflow := uint256.FromBig(v)
	if v.Sign() < 0 || overflow {
		return Uint256{}, fmt.Errorf("%w: %s exceeds 256 bits", ErrOutOfRange, v)
	}
	return NewUint256(value), nil
}

func (u Uint256) Value() *uint256.Int {
	low, high := u.Low.value.Bits(), u.High.value.Bits()
	return &uint256.Int{low[0], low[1], high[0], high[1]}
}

// Felts returns the calldata encoding [low, high].
func (u Uint256) Felts() []Felt {
	return []Felt{u.Low.value, u.High.value}
}

func limbsToFelt(lo, hi uint64) Felt {
	v := uint256.Int{lo, hi, 0, 0}
	b := v.Bytes32()

	var f Felt
	f.SetBytes(b[:])
	return f
}

func fitsLimbs(f *Felt, limbs int) bool {
	bits := f.Bits()
	for i := limbs; i < len(bits); i++ {
		if bits[i] != 0 {
			return false
		}
	}
	return true
}
