package class

import (
	"testing"

	"github.com/NethermindEth/starkhash/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatted(t *testing.T, input string) string {
	t.Helper()

	decoded, err := decodeJSON([]byte(input))
	require.NoError(t, err)
	program := decoded.(map[string]any)
	require.NoError(t, formatProgram(program))

	out, err := utils.MarshalPythonicJSON(program)
	require.NoError(t, err)
	return string(out)
}

func TestFormatProgram(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"debug info is nulled": {
			input:    `{"compiler_version": "0.10.1", "debug_info": {"file_contents": {}}, "data": ["0x1"]}`,
			expected: `{"compiler_version": "0.10.1", "data": ["0x1"], "debug_info": null}`,
		},
		"empty attributes are dropped": {
			input:    `{"compiler_version": "0.10.1", "attributes": []}`,
			expected: `{"compiler_version": "0.10.1", "debug_info": null}`,
		},
		"empty attribute fields are dropped": {
			input: `{"compiler_version": "0.10.1", "attributes": [` +
				`{"name": "error_message", "accessible_scopes": [], "flow_tracking_data": null, "value": "x"}]}`,
			expected: `{"attributes": [{"name": "error_message", "value": "x"}], "compiler_version": "0.10.1", "debug_info": null}`,
		},
		"null compiler version is dropped": {
			input:    `{"compiler_version": null, "identifiers": {"a": {"cairo_type": "(x: felt)"}}}`,
			expected: `{"debug_info": null, "identifiers": {"a": {"cairo_type": "(x: felt)"}}}`,
		},
		"pre 0.10 cairo types are spaced": {
			input:    `{"identifiers": {"a": {"cairo_type": "(x: felt, y: felt)", "members": [{"cairo_type": "a: b"}]}}}`,
			expected: `{"debug_info": null, "identifiers": {"a": {"cairo_type": "(x : felt, y : felt)", "members": [{"cairo_type": "a : b"}]}}}`,
		},
		"hints are ordered numerically": {
			input:    `{"compiler_version": "0.10.1", "hints": {"10": [{"code": "b"}], "2": [{"code": "a"}]}}`,
			expected: `{"compiler_version": "0.10.1", "debug_info": null, "hints": {"2": [{"code": "a"}], "10": [{"code": "b"}]}}`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, formatted(t, test.input))
		})
	}
}

func TestReorderHintsRejectsNonNumericKeys(t *testing.T) {
	_, err := reorderHints(map[string]any{"pc": nil})
	require.Error(t, err)

	_, err = reorderHints(map[string]any{"01": nil})
	require.Error(t, err)
}
