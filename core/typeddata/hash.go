package typeddata

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/core/merkle"
)

// maxDepth bounds the nesting of values below the root struct.
const maxDepth = 64

var messagePrefix, _ = felt.FromShortString("StarkNet Message")

type Calculator struct {
	provider crypto.Provider
}

func NewCalculator(p crypto.Provider) *Calculator {
	return &Calculator{provider: p}
}

// TypeHash is the starknet keccak of the encoded type.
func (c *Calculator) TypeHash(td *TypedData, name string) (felt.Felt, error) {
	encoded, err := td.EncodeType(name)
	if err != nil {
		return felt.Felt{}, err
	}
	return c.provider.StarknetKeccak([]byte(encoded)), nil
}

// StructHash hashes the type hash of name followed by the encoding of every field of data.
func (c *Calculator) StructHash(td *TypedData, name string, data map[string]any) (felt.Felt, error) {
	return c.encoder(td).structHash(name, data, 0)
}

// MessageHash is the value an account signs: H("StarkNet Message", H(domain), account,
// H(message)) with the hash function of the revision.
func (c *Calculator) MessageHash(td *TypedData, account *felt.Felt) (felt.Felt, error) {
	e := c.encoder(td)
	domainHash, err := e.structHash(td.revision.domainType(), td.domain, 0)
	if err != nil {
		return felt.Felt{}, fmt.Errorf("domain: %w", err)
	}
	messageHash, err := e.structHash(td.primaryType, td.message, 0)
	if err != nil {
		return felt.Felt{}, fmt.Errorf("message: %w", err)
	}
	return e.hasher.HashArray(&messagePrefix, &domainHash, account, &messageHash), nil
}

// EncodeValue encodes a single value of typeName outside of any struct. Merkletree values
// encoded this way hold raw leaves.
func (c *Calculator) EncodeValue(td *TypedData, typeName string, value any) (felt.Felt, error) {
	return c.encoder(td).encodeValue(typeName, value, fieldContext{}, 0)
}

func (c *Calculator) encoder(td *TypedData) *encoder {
	return &encoder{
		td:       td,
		provider: c.provider,
		hasher:   crypto.NewHasher(c.provider, td.revision.hashMethod()),
	}
}

type encoder struct {
	td       *TypedData
	provider crypto.Provider
	hasher   crypto.Hasher
}

// fieldContext names the struct field a value belongs to. Merkletree and enum values need
// it to find their leaf or enum type.
type fieldContext struct {
	parent string
	key    string
}

func (e *encoder) structHash(name string, data map[string]any, depth int) (felt.Felt, error) {
	if depth > maxDepth {
		return felt.Felt{}, ErrMaxDepthExceeded
	}
	fields, ok := e.td.all[name]
	if !ok {
		return felt.Felt{}, fmt.Errorf("%w: %q", ErrMissingTypeDependency, name)
	}

	encoded, err := e.td.EncodeType(name)
	if err != nil {
		return felt.Felt{}, err
	}
	typeHash := e.provider.StarknetKeccak([]byte(encoded))

	elems := make([]*felt.Felt, 0, 1+len(fields))
	elems = append(elems, &typeHash)
	for _, f := range fields {
		value, ok := data[f.Name]
		if !ok {
			return felt.Felt{}, fmt.Errorf("%w: %s is missing field %q", ErrInvalidValue, name, f.Name)
		}
		v, err := e.encodeValue(f.Type, value, fieldContext{parent: name, key: f.Name}, depth+1)
		if err != nil {
			return felt.Felt{}, fmt.Errorf("%s.%s: %w", name, f.Name, err)
		}
		elems = append(elems, &v)
	}
	return e.hasher.HashArray(elems...), nil
}

func (e *encoder) encodeValue(typeName string, value any, ctx fieldContext, depth int) (felt.Felt, error) {
	if depth > maxDepth {
		return felt.Felt{}, ErrMaxDepthExceeded
	}

	if _, ok := e.td.all[typeName]; ok {
		obj, ok := value.(map[string]any)
		if !ok {
			return felt.Felt{}, fmt.Errorf("%w: %s expects an object, got %T", ErrInvalidValue, typeName, value)
		}
		return e.structHash(typeName, obj, depth)
	}

	if elemType, ok := strings.CutSuffix(typeName, "*"); ok {
		arr, ok := value.([]any)
		if !ok {
			return felt.Felt{}, fmt.Errorf("%w: %s expects an array, got %T", ErrInvalidValue, typeName, value)
		}
		elems := make([]*felt.Felt, 0, len(arr))
		for _, item := range arr {
			v, err := e.encodeValue(elemType, item, fieldContext{}, depth+1)
			if err != nil {
				return felt.Felt{}, err
			}
			elems = append(elems, &v)
		}
		return e.hasher.HashArray(elems...), nil
	}

	rev1 := e.td.revision == Revision1
	switch typeName {
	case "felt", "bool", "raw":
		return parseFelt(value, false)
	case "string":
		if rev1 {
			return e.byteArrayHash(value)
		}
		return parseFelt(value, false)
	case "selector":
		return e.selector(value)
	case "merkletree":
		return e.merkleRoot(value, ctx, depth)
	case "enum":
		if rev1 {
			return e.enum(value, ctx, depth)
		}
	case "i128":
		if rev1 {
			return parseFelt(value, true)
		}
	case "u128", "ContractAddress", "ClassHash", "timestamp", "shortstring":
		if rev1 {
			return parseFelt(value, false)
		}
	default:
		return felt.Felt{}, fmt.Errorf("%w: %q", ErrMissingTypeDependency, typeName)
	}
	return felt.Felt{}, fmt.Errorf("%w: %q is not supported in revision 0", ErrInvalidType, typeName)
}

func (e *encoder) selector(value any) (felt.Felt, error) {
	s, ok := value.(string)
	if !ok {
		return felt.Felt{}, fmt.Errorf("%w: selector expects a string, got %T", ErrInvalidValue, value)
	}
	if f, err := felt.FromHex(s); err == nil {
		return f, nil
	}
	return crypto.SelectorFromName(e.provider, s), nil
}

// byteArrayHash hashes the Cairo ByteArray serialisation of a string: the number of full
// 31 byte words, the words, the pending word and its length.
func (e *encoder) byteArrayHash(value any) (felt.Felt, error) {
	s, ok := value.(string)
	if !ok {
		return felt.Felt{}, fmt.Errorf("%w: string expects a string, got %T", ErrInvalidValue, value)
	}

	chunks := felt.SplitLongString(s)
	words := make([]felt.Felt, len(chunks))
	for i, chunk := range chunks {
		w, err := felt.FromShortString(chunk)
		if err != nil {
			return felt.Felt{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		words[i] = w
	}

	var pending felt.Felt
	var pendingLen uint64
	if len(chunks) == 0 {
		words = []felt.Felt{felt.Zero}
	} else if last := chunks[len(chunks)-1]; len(last) < felt.ShortStringMaxLen {
		pending = words[len(words)-1]
		pendingLen = uint64(len(last))
		words = words[:len(words)-1]
	}

	size := felt.FromUint64(uint64(len(words)))
	pendingSize := felt.FromUint64(pendingLen)
	elems := make([]*felt.Felt, 0, len(words)+3)
	elems = append(elems, &size)
	for i := range words {
		elems = append(elems, &words[i])
	}
	elems = append(elems, &pending, &pendingSize)
	return e.hasher.HashArray(elems...), nil
}

func (e *encoder) parentField(ctx fieldContext) (Type, error) {
	for _, f := range e.td.all[ctx.parent] {
		if f.Name == ctx.key {
			return f, nil
		}
	}
	return Type{}, fmt.Errorf("%w: %q is not a field of %q", ErrInvalidType, ctx.key, ctx.parent)
}

func (e *encoder) merkleRoot(value any, ctx fieldContext, depth int) (felt.Felt, error) {
	leafType := "raw"
	if ctx.parent != "" && ctx.key != "" {
		field, err := e.parentField(ctx)
		if err != nil {
			return felt.Felt{}, err
		}
		if field.Type != "merkletree" {
			return felt.Felt{}, fmt.Errorf("%w: %s.%s is not a merkletree", ErrInvalidType, ctx.parent, ctx.key)
		}
		leafType = field.Contains
	}

	arr, ok := value.([]any)
	if !ok {
		return felt.Felt{}, fmt.Errorf("%w: merkletree expects an array, got %T", ErrInvalidValue, value)
	}
	leaves := make([]felt.Felt, len(arr))
	for i, item := range arr {
		leaf, err := e.encodeValue(leafType, item, fieldContext{}, depth+1)
		if err != nil {
			return felt.Felt{}, err
		}
		leaves[i] = leaf
	}

	tree, err := merkle.New(e.hasher, leaves)
	if err != nil {
		return felt.Felt{}, err
	}
	return tree.Root(), nil
}

// enum hashes the index of the selected variant followed by its encoded data. The value is
// an object with the variant name as its only key.
func (e *encoder) enum(value any, ctx fieldContext, depth int) (felt.Felt, error) {
	field, err := e.parentField(ctx)
	if err != nil {
		return felt.Felt{}, err
	}
	variants, ok := e.td.all[field.Contains]
	if !ok {
		return felt.Felt{}, fmt.Errorf("%w: enum %q", ErrMissingTypeDependency, field.Contains)
	}

	obj, ok := value.(map[string]any)
	if !ok || len(obj) != 1 {
		return felt.Felt{}, fmt.Errorf("%w: enum expects an object with a single variant", ErrInvalidValue)
	}
	var name string
	var data any
	for k, v := range obj {
		name, data = k, v
	}

	index := -1
	for i, v := range variants {
		if v.Name == name {
			index = i
			break
		}
	}
	if index < 0 {
		return felt.Felt{}, fmt.Errorf("%w: %q is not a variant of %q", ErrInvalidValue, name, field.Contains)
	}

	var subtypes []string
	if sig := variants[index].Type; isEnumSignature(sig) {
		subtypes = enumVariantTypes(sig)
	} else {
		subtypes = []string{sig}
	}
	args, _ := data.([]any)
	if len(args) != len(subtypes) {
		return felt.Felt{}, fmt.Errorf("%w: variant %q expects %d values, got %d",
			ErrInvalidValue, name, len(subtypes), len(args))
	}

	idx := felt.FromUint64(uint64(index))
	elems := make([]*felt.Felt, 0, 1+len(args))
	elems = append(elems, &idx)
	for i, sub := range subtypes {
		v, err := e.encodeValue(sub, args[i], fieldContext{}, depth+1)
		if err != nil {
			return felt.Felt{}, err
		}
		elems = append(elems, &v)
	}
	return e.hasher.HashArray(elems...), nil
}

// parseFelt reads a primitive JSON value. Strings are tried as a decimal, a boolean, a hex
// number and finally as a short string. signed admits negative decimals.
func parseFelt(value any, signed bool) (felt.Felt, error) {
	switch v := value.(type) {
	case string:
		return feltFromString(v, signed)
	case json.Number:
		n, ok := new(big.Int).SetString(v.String(), 10)
		if !ok {
			return felt.Felt{}, fmt.Errorf("%w: %s is not an integer", ErrInvalidValue, v)
		}
		return feltFromBig(n, signed)
	case bool:
		if v {
			return felt.One, nil
		}
		return felt.Zero, nil
	case int:
		return feltFromBig(big.NewInt(int64(v)), signed)
	case uint64:
		return felt.FromUint64(v), nil
	default:
		return felt.Felt{}, fmt.Errorf("%w: %T", ErrInvalidValue, value)
	}
}

func feltFromString(s string, signed bool) (felt.Felt, error) {
	if s == "" {
		return felt.Zero, nil
	}
	if n, ok := new(big.Int).SetString(s, 10); ok {
		return feltFromBig(n, signed)
	}
	switch s {
	case "true":
		return felt.One, nil
	case "false":
		return felt.Zero, nil
	}
	if f, err := felt.FromHex(s); err == nil {
		return f, nil
	}

	f, err := felt.FromShortString(s)
	if err != nil {
		return felt.Felt{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return f, nil
}

func feltFromBig(n *big.Int, signed bool) (felt.Felt, error) {
	var (
		f   felt.Felt
		err error
	)
	if signed {
		f, err = felt.FromSigned(n)
	} else {
		f, err = felt.FromBigInt(n)
	}
	if err != nil {
		return felt.Felt{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return f, nil
}
