package felt

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	"github.com/fxamacker/cbor/v2"
)

var (
	ErrOutOfRange       = errors.New("value out of field range")
	ErrInvalidHexFormat = errors.New("invalid hex format")
)

type Felt struct {
	val fp.Element
}

func NewFelt(element *fp.Element) *Felt {
	return &Felt{
		val: *element,
	}
}

const (
	Limbs = fp.Limbs // number of 64 bits words needed to represent a Element
	Bits  = fp.Bits  // number of bits needed to represent a Element
	Bytes = fp.Bytes // number of bytes needed to represent a Element

	Base10 = 10
	Base16 = 16
)

var (
	// zero felt constant
	Zero = Felt{}
	// One is the multiplicative identity
	One = FromUint64(1)

	modulus = fp.Modulus()
)

var bigIntPool = sync.Pool{
	New: func() any {
		return new(big.Int)
	},
}

// Modulus returns a copy of the field prime P = 2^251 + 17*2^192 + 1
func Modulus() *big.Int {
	return new(big.Int).Set(modulus)
}

// Impl returns the underlying field element type
func (z *Felt) Impl() *fp.Element {
	return &z.val
}

func FromUint64(v uint64) Felt {
	var f Felt
	f.val.SetUint64(v)
	return f
}

// FromBigInt fails with ErrOutOfRange if v is negative or not smaller than P.
func FromBigInt(v *big.Int) (Felt, error) {
	var f Felt
	if v.Sign() < 0 || v.Cmp(modulus) >= 0 {
		return f, fmt.Errorf("%w: %s", ErrOutOfRange, v.String())
	}
	f.val.SetBigInt(v)
	return f, nil
}

// FromSigned maps a negative value v to P + v. |v| must be smaller than P.
func FromSigned(v *big.Int) (Felt, error) {
	if v.Sign() >= 0 {
		return FromBigInt(v)
	}
	shifted := new(big.Int).Add(modulus, v)
	if shifted.Sign() <= 0 {
		return Felt{}, fmt.Errorf("%w: %s", ErrOutOfRange, v.String())
	}
	return FromBigInt(shifted)
}

// FromHex parses a 0x prefixed hexadecimal string.
func FromHex(s string) (Felt, error) {
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok {
		digits, ok = strings.CutPrefix(s, "0X")
	}
	if !ok || digits == "" {
		return Felt{}, fmt.Errorf("%w: %q", ErrInvalidHexFormat, s)
	}

	vv := bigIntPool.Get().(*big.Int)
	defer bigIntPool.Put(vv)

	for _, c := range digits {
		if !isHexDigit(c) {
			return Felt{}, fmt.Errorf("%w: %q", ErrInvalidHexFormat, s)
		}
	}
	vv.SetString(digits, Base16)
	return FromBigInt(vv)
}

func FromDecimal(s string) (Felt, error) {
	vv, ok := new(big.Int).SetString(s, Base10)
	if !ok {
		return Felt{}, fmt.Errorf("invalid decimal %q", s)
	}
	return FromBigInt(vv)
}

// FromBytes interprets b as a big-endian integer. It does not reduce modulo P.
func FromBytes(b []byte) (Felt, error) {
	if len(b) > Bytes {
		return Felt{}, fmt.Errorf("%w: %d bytes", ErrOutOfRange, len(b))
	}
	return FromBigInt(new(big.Int).SetBytes(b))
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// UnmarshalJSON accepts numbers and strings as input.
// See Element.SetString for valid prefixes (0x, 0b, ...).
// If there is an error, we try to explicitly unmarshal from hex before
// returning an error. Values outside of the field are rejected.
func (z *Felt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > fp.Bits*3 {
		return errors.New("value too large (max = Element.Bits * 3)")
	}

	// we accept numbers and strings, remove leading and trailing quotes if any
	if len(s) > 0 && s[0] == '"' {
		s = s[1:]
	}
	if len(s) > 0 && s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	return z.UnmarshalText([]byte(s))
}

func (z *Felt) UnmarshalText(text []byte) error {
	s := string(text)

	// get temporary big int from the pool
	vv := bigIntPool.Get().(*big.Int)
	defer bigIntPool.Put(vv)

	if _, ok := vv.SetString(s, 0); !ok {
		if _, ok := vv.SetString(s, Base16); !ok {
			return errors.New("can't parse into a big.Int: " + s)
		}
	}

	f, err := FromBigInt(vv)
	if err != nil {
		return err
	}
	*z = f
	return nil
}

func (z *Felt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + z.String() + `"`), nil
}

func (z *Felt) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

func (z Felt) MarshalCBOR() ([]byte, error) {
	b := z.val.Bytes()
	return cbor.Marshal(b[:])
}

func (z *Felt) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	f, err := FromBytes(b)
	if err != nil {
		return err
	}
	*z = f
	return nil
}

// SetBytes interprets e as big-endian and reduces it modulo P
func (z *Felt) SetBytes(e []byte) *Felt {
	z.val.SetBytes(e)
	return z
}

// SetUint64 forwards the call to underlying field element implementation
func (z *Felt) SetUint64(v uint64) *Felt {
	z.val.SetUint64(v)
	return z
}

// SetBigInt reduces v modulo P
func (z *Felt) SetBigInt(v *big.Int) *Felt {
	z.val.SetBigInt(v)
	return z
}

// SetRandom forwards the call to underlying field element implementation
func (z *Felt) SetRandom() (*Felt, error) {
	_, err := z.val.SetRandom()
	return z, err
}

// String returns the canonical lowercase hex form with a 0x prefix
func (z *Felt) String() string {
	return "0x" + z.val.Text(Base16)
}

// Text forwards the call to underlying field element implementation
func (z *Felt) Text(base int) string {
	return z.val.Text(base)
}

// Equal forwards the call to underlying field element implementation
func (z *Felt) Equal(x *Felt) bool {
	return z.val.Equal(&x.val)
}

// Bytes returns the 32 byte big-endian representation
func (z *Felt) Bytes() [32]byte {
	return z.val.Bytes()
}

// BigInt sets res to the regular form of z and returns it
func (z *Felt) BigInt(res *big.Int) *big.Int {
	return z.val.BigInt(res)
}

// Uint64 fails with ErrOutOfRange when z does not fit into 64 bits
func (z *Felt) Uint64() (uint64, error) {
	if !z.val.IsUint64() {
		return 0, fmt.Errorf("%w: %s does not fit into uint64", ErrOutOfRange, z)
	}
	return z.val.Uint64(), nil
}

// Bits returns the regular (non-Montgomery) little-endian limbs
func (z *Felt) Bits() [4]uint64 {
	return z.val.Bits()
}

// IsOne forwards the call to underlying field element implementation
func (z *Felt) IsOne() bool {
	return z.val.IsOne()
}

// IsZero forwards the call to underlying field element implementation
func (z *Felt) IsZero() bool {
	return z.val.IsZero()
}

// Add forwards the call to underlying field element implementation
func (z *Felt) Add(x, y *Felt) *Felt {
	z.val.Add(&x.val, &y.val)
	return z
}

// Sub forwards the call to underlying field element implementation
func (z *Felt) Sub(x, y *Felt) *Felt {
	z.val.Sub(&x.val, &y.val)
	return z
}

// Mul forwards the call to underlying field element implementation
func (z *Felt) Mul(x, y *Felt) *Felt {
	z.val.Mul(&x.val, &y.val)
	return z
}

// Cmp compares the regular forms of z and x
func (z *Felt) Cmp(x *Felt) int {
	return z.val.Cmp(&x.val)
}
