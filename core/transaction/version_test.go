package transaction_test

import (
	"testing"

	"github.com/NethermindEth/starkhash/core/transaction"
	"github.com/NethermindEth/starkhash/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := map[string]struct {
		input string
		want  transaction.Version
		err   bool
	}{
		"v0":            {input: "0x0", want: transaction.Version{Number: 0}},
		"v3":            {input: "0x3", want: transaction.Version{Number: 3}},
		"query v1":      {input: "0x100000000000000000000000000000001", want: transaction.Version{Number: 1, Query: true}},
		"query v3":      {input: "0x100000000000000000000000000000003", want: transaction.Version{Number: 3, Query: true}},
		"v4":            {input: "0x4", err: true},
		"query v4":      {input: "0x100000000000000000000000000000004", err: true},
		"above 2^128+v": {input: "0x200000000000000000000000000000000", err: true},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := transaction.ParseVersion(utils.HexToFelt(t, test.input))
			if test.err {
				require.ErrorIs(t, err, transaction.ErrUnsupportedTransactionVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, v)

			f := v.Felt()
			assert.Equal(t, test.input, f.String())
		})
	}
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "1", transaction.Version{Number: 1}.String())
	assert.Equal(t, "3 (query)", transaction.Version{Number: 3, Query: true}.String())
}
