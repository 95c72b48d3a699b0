package merkle

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/bits-and-blooms/bitset"
)

var (
	ErrInvalidMerkleNodeShape = errors.New("invalid merkle node shape")
	ErrNodeHashMismatch       = errors.New("proof node does not match its parent")
)

// KeyLength is the height of the Starknet state tries.
const KeyLength = 251

// Node is a trie proof node as returned by storage proof requests.
type Node interface {
	Hash(hasher crypto.Hasher) felt.Felt
}

type BinaryNode struct {
	Left  felt.Felt `json:"left"`
	Right felt.Felt `json:"right"`
}

func (n *BinaryNode) Hash(hasher crypto.Hasher) felt.Felt {
	return hasher.Hash(&n.Left, &n.Right)
}

type EdgeNode struct {
	Path   felt.Felt `json:"path"`
	Length uint8     `json:"length"`
	Child  felt.Felt `json:"child"`
}

func (n *EdgeNode) Hash(hasher crypto.Hasher) felt.Felt {
	length := felt.FromUint64(uint64(n.Length))
	h := hasher.Hash(&n.Child, &n.Path)
	return *h.Add(&h, &length)
}

var (
	binaryNodeKeys = []string{"left", "right"}
	edgeNodeKeys   = []string{"path", "length", "child"}
)

// DecodeNode decodes a JSON object whose key set is exactly the one of a binary or an edge node.
func DecodeNode(data []byte) (Node, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMerkleNodeShape, err)
	}

	var node Node
	switch {
	case hasExactKeys(fields, binaryNodeKeys):
		node = new(BinaryNode)
	case hasExactKeys(fields, edgeNodeKeys):
		node = new(EdgeNode)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMerkleNodeShape, data)
	}

	if err := json.Unmarshal(data, node); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMerkleNodeShape, err)
	}
	return node, nil
}

func hasExactKeys(fields map[string]json.RawMessage, keys []string) bool {
	if len(fields) != len(keys) {
		return false
	}
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return false
		}
	}
	return true
}

// HashToNode pairs a proof node with the hash it is stored under.
type HashToNode struct {
	NodeHash felt.Felt
	Node     Node
}

func (m *HashToNode) UnmarshalJSON(data []byte) error {
	var raw struct {
		NodeHash felt.Felt       `json:"node_hash"`
		Node     json.RawMessage `json:"node"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	node, err := DecodeNode(raw.Node)
	if err != nil {
		return err
	}
	m.NodeHash = raw.NodeHash
	m.Node = node
	return nil
}

// VerifyNodePath checks that nodes, ordered top-down, chain to root: the first node hashes
// to root and every following node is referenced by its predecessor.
func VerifyNodePath(hasher crypto.Hasher, root *felt.Felt, nodes []Node) error {
	expected := []felt.Felt{*root}
	for i, node := range nodes {
		h := node.Hash(hasher)
		if !containsFelt(expected, &h) {
			return fmt.Errorf("%w: node %d hashes to %s", ErrNodeHashMismatch, i, h.String())
		}

		switch n := node.(type) {
		case *BinaryNode:
			expected = []felt.Felt{n.Left, n.Right}
		case *EdgeNode:
			expected = []felt.Felt{n.Child}
		}
	}
	return nil
}

func containsFelt(set []felt.Felt, f *felt.Felt) bool {
	for i := range set {
		if set[i].Equal(f) {
			return true
		}
	}
	return false
}

// VerifyKeyPath walks nodes from root along the bits of key, most significant first, and
// reports whether the walk ends at value.
func VerifyKeyPath(hasher crypto.Hasher, root, key, value *felt.Felt, nodes []Node) bool {
	keyBits := key.Bits()
	path := bitset.From(keyBits[:])
	remaining := uint(KeyLength)

	expected := *root
	for _, node := range nodes {
		h := node.Hash(hasher)
		if !h.Equal(&expected) {
			return false
		}

		switch n := node.(type) {
		case *BinaryNode:
			if remaining == 0 {
				return false
			}
			remaining--
			if path.Test(remaining) {
				expected = n.Right
			} else {
				expected = n.Left
			}
		case *EdgeNode:
			length := uint(n.Length)
			if length > remaining {
				return false
			}
			edgeBits := n.Path.Bits()
			edgePath := bitset.From(edgeBits[:])
			for i := uint(0); i < length; i++ {
				if path.Test(remaining-length+i) != edgePath.Test(i) {
					return false
				}
			}
			remaining -= length
			expected = n.Child
		default:
			return false
		}
	}
	return expected.Equal(value)
}
