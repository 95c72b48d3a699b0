package merkle_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/core/merkle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNode(t *testing.T) {
	tests := map[string]struct {
		input string
		want  merkle.Node
		err   bool
	}{
		"binary node": {
			input: `{"left": "0x1", "right": "0x2"}`,
			want:  &merkle.BinaryNode{Left: felt.FromUint64(1), Right: felt.FromUint64(2)},
		},
		"edge node": {
			input: `{"path": 10, "length": 20, "child": "0x123"}`,
			want:  &merkle.EdgeNode{Path: felt.FromUint64(10), Length: 20, Child: felt.FromUint64(0x123)},
		},
		"edge node with hex path": {
			input: `{"path": "0xa", "length": 4, "child": "0x1"}`,
			want:  &merkle.EdgeNode{Path: felt.FromUint64(10), Length: 4, Child: felt.FromUint64(1)},
		},
		"binary node with missing field": {
			input: `{"left": "0x1"}`,
			err:   true,
		},
		"edge node with missing fields": {
			input: `{"path": 10, "length": 20}`,
			err:   true,
		},
		"mixed fields": {
			input: `{"path": 10, "length": 20, "right": "0x123"}`,
			err:   true,
		},
		"extra field": {
			input: `{"left": "0x1", "right": "0x2", "child": "0x3"}`,
			err:   true,
		},
		"not an object": {
			input: `[1, 2]`,
			err:   true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			node, err := merkle.DecodeNode([]byte(test.input))
			if test.err {
				require.ErrorIs(t, err, merkle.ErrInvalidMerkleNodeShape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, node)
		})
	}
}

func TestHashToNodeUnmarshal(t *testing.T) {
	var items []merkle.HashToNode
	input := `[
		{"node_hash": "0x5", "node": {"left": "0x1", "right": "0x2"}},
		{"node_hash": "0x6", "node": {"path": "0x3", "length": 2, "child": "0x4"}}
	]`
	require.NoError(t, json.Unmarshal([]byte(input), &items))
	require.Len(t, items, 2)
	assert.IsType(t, &merkle.BinaryNode{}, items[0].Node)
	assert.IsType(t, &merkle.EdgeNode{}, items[1].Node)
	assert.Equal(t, felt.FromUint64(6), items[1].NodeHash)

	err := json.Unmarshal([]byte(`[{"node_hash": "0x5", "node": {"left": "0x1"}}]`), &items)
	require.ErrorIs(t, err, merkle.ErrInvalidMerkleNodeShape)
}

func TestNodeHash(t *testing.T) {
	hasher := crypto.NewHasher(provider, crypto.Pedersen)
	left := felt.FromUint64(1)
	right := felt.FromUint64(2)

	binary := &merkle.BinaryNode{Left: left, Right: right}
	assert.Equal(t, hasher.Hash(&left, &right), binary.Hash(hasher))

	edge := &merkle.EdgeNode{Path: felt.FromUint64(3), Length: 2, Child: felt.FromUint64(4)}
	expected := hasher.Hash(&edge.Child, &edge.Path)
	two := felt.FromUint64(2)
	expected.Add(&expected, &two)
	assert.Equal(t, expected, edge.Hash(hasher))
}

// buildPath returns a two node proof for key: a binary root whose left child is an edge
// covering the remaining 250 bits.
func buildPath(hasher crypto.Hasher, key, value felt.Felt) (felt.Felt, []merkle.Node) {
	edge := &merkle.EdgeNode{Path: key, Length: merkle.KeyLength - 1, Child: value}
	binary := &merkle.BinaryNode{Left: edge.Hash(hasher), Right: felt.FromUint64(7)}
	return binary.Hash(hasher), []merkle.Node{binary, edge}
}

func TestVerifyNodePath(t *testing.T) {
	hasher := crypto.NewHasher(provider, crypto.Pedersen)
	root, nodes := buildPath(hasher, felt.FromUint64(5), felt.FromUint64(99))

	require.NoError(t, merkle.VerifyNodePath(hasher, &root, nodes))

	wrongRoot := felt.FromUint64(1)
	require.ErrorIs(t, merkle.VerifyNodePath(hasher, &wrongRoot, nodes), merkle.ErrNodeHashMismatch)

	reversed := []merkle.Node{nodes[1], nodes[0]}
	require.ErrorIs(t, merkle.VerifyNodePath(hasher, &root, reversed), merkle.ErrNodeHashMismatch)
}

func TestVerifyKeyPath(t *testing.T) {
	hasher := crypto.NewHasher(provider, crypto.Pedersen)
	key := felt.FromUint64(5)
	value := felt.FromUint64(99)
	root, nodes := buildPath(hasher, key, value)

	tests := map[string]struct {
		key, value felt.Felt
		valid      bool
	}{
		"matching key and value": {key: key, value: value, valid: true},
		"wrong value":            {key: key, value: felt.FromUint64(98)},
		"wrong key":              {key: felt.FromUint64(4), value: value},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.valid, merkle.VerifyKeyPath(hasher, &root, &test.key, &test.value, nodes))
		})
	}

	t.Run("key routed to the right child", func(t *testing.T) {
		rightKey := felt.FromUint64(1)
		var high felt.Felt
		high.SetBigInt(new(big.Int).Lsh(big.NewInt(1), merkle.KeyLength-1))
		rightKey.Add(&rightKey, &high)
		assert.False(t, merkle.VerifyKeyPath(hasher, &root, &rightKey, &value, nodes))
	})
}
