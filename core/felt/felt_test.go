package felt_test

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/fxamacker/cbor/v2"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	primeHex        = "0x800000000000011000000000000000000000000000000000000000000000001"
	primeMinusOneHx = "0x800000000000011000000000000000000000000000000000000000000000000"
)

func TestUnmarshalJson(t *testing.T) {
	var with felt.Felt
	require.NoError(t, with.UnmarshalJSON([]byte("0x4437ab")))

	var without felt.Felt
	require.NoError(t, without.UnmarshalJSON([]byte("4437ab")))
	assert.True(t, without.Equal(&with))

	var quoted felt.Felt
	require.NoError(t, json.Unmarshal([]byte(`"0x4437ab"`), &quoted))
	assert.True(t, quoted.Equal(&with))

	var tooBig felt.Felt
	require.ErrorIs(t, tooBig.UnmarshalJSON([]byte(`"`+primeHex+`"`)), felt.ErrOutOfRange)
}

func TestMarshalJson(t *testing.T) {
	f := felt.FromUint64(0xabc)
	out, err := json.Marshal(&f)
	require.NoError(t, err)
	assert.Equal(t, `"0xabc"`, string(out))
}

func TestFeltCbor(t *testing.T) {
	var val felt.Felt
	_, err := val.SetRandom()
	require.NoError(t, err)

	bytes, err := cbor.Marshal(val)
	require.NoError(t, err)

	var unmarshaledFelt felt.Felt
	require.NoError(t, cbor.Unmarshal(bytes, &unmarshaledFelt))
	assert.Equal(t, val, unmarshaledFelt)
}

func TestFromHex(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, hex := range []string{
			"0x0",
			"0x1",
			"0x7d260744de9d8c55e7675a34512d1951a7b262c79e685d26599edd2948de959",
			primeMinusOneHx,
		} {
			f, err := felt.FromHex(hex)
			require.NoError(t, err)
			assert.Equal(t, hex, f.String())
		}
	})

	t.Run("leading zeros and upper case", func(t *testing.T) {
		f, err := felt.FromHex("0X000ABC")
		require.NoError(t, err)
		assert.Equal(t, "0xabc", f.String())
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := felt.FromHex(primeHex)
		require.ErrorIs(t, err, felt.ErrOutOfRange)
	})

	for name, input := range map[string]string{
		"no prefix":    "123",
		"empty digits": "0x",
		"not hex":      "0xzz",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := felt.FromHex(input)
			require.ErrorIs(t, err, felt.ErrInvalidHexFormat)
		})
	}
}

func TestFromDecimal(t *testing.T) {
	f, err := felt.FromDecimal("9876")
	require.NoError(t, err)
	assert.Equal(t, "0x2694", f.String())

	_, err = felt.FromDecimal("-1")
	require.ErrorIs(t, err, felt.ErrOutOfRange)

	_, err = felt.FromDecimal("12a")
	require.Error(t, err)
}

func TestFromBigInt(t *testing.T) {
	_, err := felt.FromBigInt(felt.Modulus())
	require.ErrorIs(t, err, felt.ErrOutOfRange)

	f, err := felt.FromBigInt(new(big.Int).Sub(felt.Modulus(), big.NewInt(1)))
	require.NoError(t, err)
	assert.Equal(t, primeMinusOneHx, f.String())
}

func TestFromSigned(t *testing.T) {
	f, err := felt.FromSigned(big.NewInt(-1))
	require.NoError(t, err)
	assert.Equal(t, primeMinusOneHx, f.String())

	f, err = felt.FromSigned(big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, "0x5", f.String())

	_, err = felt.FromSigned(new(big.Int).Neg(felt.Modulus()))
	require.ErrorIs(t, err, felt.ErrOutOfRange)
}

func TestArithmetic(t *testing.T) {
	one := felt.FromUint64(1)
	two := felt.FromUint64(2)
	three := felt.FromUint64(3)

	var res felt.Felt
	assert.Equal(t, "0x3", res.Add(&one, &two).String())
	assert.Equal(t, "0x6", res.Mul(&two, &three).String())
	assert.Equal(t, primeMinusOneHx, res.Sub(&felt.Zero, &one).String())

	assert.Equal(t, -1, one.Cmp(&two))
	assert.Equal(t, 1, three.Cmp(&two))
	assert.Equal(t, 0, two.Cmp(&two))
}

func TestBytes(t *testing.T) {
	f := felt.FromUint64(0x0102)
	b := f.Bytes()
	assert.Equal(t, byte(0x01), b[30])
	assert.Equal(t, byte(0x02), b[31])

	fromBytes, err := felt.FromBytes(b[:])
	require.NoError(t, err)
	assert.Equal(t, f, fromBytes)

	_, err = felt.FromBytes(make([]byte, 33))
	require.ErrorIs(t, err, felt.ErrOutOfRange)
}

func TestBits(t *testing.T) {
	f, err := felt.FromHex("0x3000000000000000200000000000000010000000000000005")
	require.NoError(t, err)
	assert.Equal(t, [4]uint64{5, 1, 2, 3}, f.Bits())
}

func TestUint64(t *testing.T) {
	f := felt.FromUint64(42)
	v, err := f.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	wide, err := felt.FromHex("0x10000000000000000")
	require.NoError(t, err)
	_, err = wide.Uint64()
	require.ErrorIs(t, err, felt.ErrOutOfRange)
}

func TestShortString(t *testing.T) {
	f, err := felt.FromShortString("hello")
	require.NoError(t, err)
	assert.Equal(t, "0x68656c6c6f", f.String())
	assert.Equal(t, "hello", f.ShortString())

	empty, err := felt.FromShortString("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = felt.FromShortString(strings.Repeat("a", 32))
	require.ErrorIs(t, err, felt.ErrInvalidShortString)

	_, err = felt.FromShortString("héllo")
	require.ErrorIs(t, err, felt.ErrInvalidShortString)
}

func TestSplitLongString(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected []string
	}{
		"empty": {
			input:    "",
			expected: []string{},
		},
		"short": {
			input:    "abc",
			expected: []string{"abc"},
		},
		"exact": {
			input:    strings.Repeat("a", 31),
			expected: []string{strings.Repeat("a", 31)},
		},
		"long": {
			input:    strings.Repeat("a", 31) + strings.Repeat("b", 31) + "c",
			expected: []string{strings.Repeat("a", 31), strings.Repeat("b", 31), "c"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, felt.SplitLongString(test.input))
		})
	}
}

func TestUint256RoundTrip(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Lsh(big.NewInt(1), 128),
		new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 200), big.NewInt(5)),
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
	}

	for _, v := range values {
		t.Run(v.String(), func(t *testing.T) {
			u, err := felt.Uint256FromBig(v)
			require.NoError(t, err)

			again, err := felt.Uint256FromParts(u.Low.Felt(), u.High.Felt())
			require.NoError(t, err)
			assert.Equal(t, 0, v.Cmp(again.Value().ToBig()))
			assert.Equal(t, u, felt.NewUint256(again.Value()))
		})
	}

	t.Run("split", func(t *testing.T) {
		u := felt.NewUint256(new(uint256.Int).Lsh(uint256.NewInt(3), 128))
		low := u.Low.Felt()
		assert.True(t, low.IsZero())
		high := u.High.Felt()
		assert.Equal(t, "0x3", high.String())
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := felt.Uint256FromBig(new(big.Int).Lsh(big.NewInt(1), 256))
		require.ErrorIs(t, err, felt.ErrOutOfRange)

		_, err = felt.Uint256FromBig(big.NewInt(-1))
		require.ErrorIs(t, err, felt.ErrOutOfRange)

		tooWide, err := felt.FromHex("0x100000000000000000000000000000000")
		require.NoError(t, err)
		_, err = felt.Uint256FromParts(tooWide, felt.Zero)
		require.ErrorIs(t, err, felt.ErrOutOfRange)
	})
}

func TestUint64Packed(t *testing.T) {
	u := felt.NewUint64(7)
	assert.Equal(t, uint64(7), u.Uint64())

	wide, err := felt.FromHex("0x10000000000000000")
	require.NoError(t, err)
	_, err = felt.Uint64FromFelt(wide)
	require.ErrorIs(t, err, felt.ErrOutOfRange)
}
