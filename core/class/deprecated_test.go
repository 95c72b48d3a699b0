package class_test

import (
	"encoding/json"
	"testing"

	"github.com/NethermindEth/starkhash/core/class"
	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProgram = `{
	"attributes": [],
	"builtins": ["pedersen", "range_check"],
	"compiler_version": "0.10.3",
	"data": ["0x40780017fff7fff", "0x1", "0x208b7fff7fff7ffe"],
	"debug_info": {"instruction_locations": {}},
	"hints": {},
	"identifiers": {"__main__.main": {"decorators": [], "pc": 0, "type": "function"}},
	"main_scope": "__main__",
	"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
	"reference_manager": {"references": []}
}`

const sampleAbi = `[{"inputs": [], "name": "main", "outputs": [], "type": "function"}]`

func TestDeprecatedClassHash(t *testing.T) {
	calc := class.NewCalculator(provider)
	selector := crypto.SelectorFromName(provider, "main")
	cls := &class.DeprecatedClass{
		Abi:       json.RawMessage(sampleAbi),
		Program:   json.RawMessage(sampleProgram),
		Externals: []class.EntryPoint{{Selector: selector, Offset: felt.FromUint64(0)}},
	}

	got, err := calc.DeprecatedClassHash(cls)
	require.NoError(t, err)

	hinted := provider.StarknetKeccak([]byte(`{"abi": [{"inputs": [], "name": "main", "outputs": [], "type": "function"}], ` +
		`"program": {"builtins": ["pedersen", "range_check"], "compiler_version": "0.10.3", ` +
		`"data": ["0x40780017fff7fff", "0x1", "0x208b7fff7fff7ffe"], "debug_info": null, "hints": {}, ` +
		`"identifiers": {"__main__.main": {"decorators": [], "pc": 0, "type": "function"}}, "main_scope": "__main__", ` +
		`"prime": "0x800000000000011000000000000000000000000000000000000000000000001", ` +
		`"reference_manager": {"references": []}}}`))

	builtinA, err := felt.FromShortString("pedersen")
	require.NoError(t, err)
	builtinB, err := felt.FromShortString("range_check")
	require.NoError(t, err)

	zero := felt.FromUint64(0)
	external := crypto.PedersenArray(provider, &selector, &zero)
	empty := crypto.PedersenArray(provider)
	builtins := crypto.PedersenArray(provider, &builtinA, &builtinB)
	data := crypto.PedersenArray(provider,
		mustHex(t, "0x40780017fff7fff"), mustHex(t, "0x1"), mustHex(t, "0x208b7fff7fff7ffe"))

	expected := crypto.PedersenArray(provider, &zero, &external, &empty, &empty, &builtins, &hinted, &data)
	assert.Equal(t, expected, got)
}

func mustHex(t *testing.T, s string) *felt.Felt {
	t.Helper()
	f, err := felt.FromHex(s)
	require.NoError(t, err)
	return &f
}

func TestDeprecatedClassHashErrors(t *testing.T) {
	calc := class.NewCalculator(provider)

	tests := map[string]string{
		"not json":          `{`,
		"not an object":     `[]`,
		"numeric builtin":   `{"builtins": [1], "data": []}`,
		"bad data word":     `{"builtins": [], "data": ["zz"]}`,
		"non numeric hints": `{"builtins": [], "data": [], "hints": {"x": []}}`,
	}

	for name, program := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := calc.DeprecatedClassHash(&class.DeprecatedClass{
				Abi:     json.RawMessage(`[]`),
				Program: json.RawMessage(program),
			})
			require.ErrorIs(t, err, class.ErrInvalidProgram)
		})
	}
}
