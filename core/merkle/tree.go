package merkle

import (
	"errors"
	"fmt"
	"slices"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
)

var (
	ErrEmptyMerkleLeaves   = errors.New("cannot build merkle tree from an empty list of leaves")
	ErrLeafIndexOutOfRange = errors.New("leaf index out of range")
)

// Tree is a binary commitment over a leaf sequence. Siblings are hashed in ascending numeric
// order and an unpaired trailing node is paired with zero.
type Tree struct {
	hasher   crypto.Hasher
	leaves   []felt.Felt
	branches [][]felt.Felt
	root     felt.Felt
}

func New(hasher crypto.Hasher, leaves []felt.Felt) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyMerkleLeaves
	}

	t := &Tree{
		hasher: hasher,
		leaves: slices.Clone(leaves),
	}

	level := t.leaves
	for len(level) > 1 {
		if len(level) != len(t.leaves) {
			t.branches = append(t.branches, level)
		}
		level = t.nextLevel(level)
	}
	t.root = level[0]
	return t, nil
}

func (t *Tree) nextLevel(level []felt.Felt) []felt.Felt {
	next := make([]felt.Felt, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		sibling := felt.Zero
		if i+1 < len(level) {
			sibling = level[i+1]
		}
		next = append(next, HashPair(t.hasher, &level[i], &sibling))
	}
	return next
}

// HashPair hashes a and b with the smaller value first.
func HashPair(hasher crypto.Hasher, a, b *felt.Felt) felt.Felt {
	if a.Cmp(b) > 0 {
		a, b = b, a
	}
	return hasher.Hash(a, b)
}

func (t *Tree) Root() felt.Felt {
	return t.root
}

func (t *Tree) Leaves() []felt.Felt {
	return slices.Clone(t.leaves)
}

// Branches returns the intermediate levels bottom-up, without the leaves and the root.
func (t *Tree) Branches() [][]felt.Felt {
	branches := slices.Clone(t.branches)
	for i := range branches {
		branches[i] = slices.Clone(branches[i])
	}
	return branches
}

// Proof returns the siblings met on the way from the leaf at index to the root.
func (t *Tree) Proof(index int) ([]felt.Felt, error) {
	if index < 0 || index >= len(t.leaves) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLeafIndexOutOfRange, index, len(t.leaves))
	}

	levels := make([][]felt.Felt, 0, len(t.branches)+1)
	levels = append(levels, t.leaves)
	levels = append(levels, t.branches...)

	var path []felt.Felt
	if len(t.leaves) == 1 {
		return path, nil
	}
	for _, level := range levels {
		sibling := index ^ 1
		if sibling < len(level) {
			path = append(path, level[sibling])
		} else {
			path = append(path, felt.Zero)
		}
		index /= 2
	}
	return path, nil
}

// VerifyProof folds path onto leaf and reports whether the result is root.
func VerifyProof(hasher crypto.Hasher, root, leaf *felt.Felt, path []felt.Felt) bool {
	acc := *leaf
	for i := range path {
		acc = HashPair(hasher, &acc, &path[i])
	}
	return acc.Equal(root)
}
