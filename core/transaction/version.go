package transaction

import (
	"fmt"

	"github.com/NethermindEth/starkhash/core/felt"
)

// queryVersionOffset is 2^128. Query versions are offset by it so that a signature over a
// simulated transaction can never be replayed as an executable one.
var queryVersionOffset = new(felt.Felt).SetBytes(append([]byte{1}, make([]byte, 16)...))

const maxVersion = 3

type Version struct {
	Number uint8
	Query  bool
}

// ParseVersion accepts the plain versions 0 to 3 and their query counterparts 2^128 + v.
func ParseVersion(f *felt.Felt) (Version, error) {
	v := *f
	query := false
	if !fitsUint128(&v) {
		v.Sub(&v, queryVersionOffset)
		query = true
	}

	n, err := v.Uint64()
	if err != nil || n > maxVersion {
		return Version{}, fmt.Errorf("%w: %s", ErrUnsupportedTransactionVersion, f)
	}
	return Version{Number: uint8(n), Query: query}, nil
}

// Felt returns the version as it enters the hash chain.
func (v Version) Felt() felt.Felt {
	f := felt.FromUint64(uint64(v.Number))
	if v.Query {
		f.Add(&f, queryVersionOffset)
	}
	return f
}

func (v Version) String() string {
	if v.Query {
		return fmt.Sprintf("%d (query)", v.Number)
	}
	return fmt.Sprintf("%d", v.Number)
}

func fitsUint128(f *felt.Felt) bool {
	bits := f.Bits()
	return bits[2] == 0 && bits[3] == 0
}
