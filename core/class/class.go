package class

import (
	"encoding/json"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
)

// EntryPoint uniquely identifies a Cairo 0 function of a deprecated class.
type EntryPoint struct {
	// starknet_keccak hash of the function signature.
	Selector felt.Felt
	// The offset of the instruction in the class's bytecode.
	Offset felt.Felt
}

type DeprecatedClass struct {
	// Json encoded ABI, used only for the hinted class hash.
	Abi json.RawMessage
	// Json encoded program as emitted by the Cairo 0 compiler.
	Program      json.RawMessage
	Externals    []EntryPoint
	L1Handlers   []EntryPoint
	Constructors []EntryPoint
}

type SierraEntryPoint struct {
	Index    uint64
	Selector felt.Felt
}

type SierraEntryPoints struct {
	Constructor []SierraEntryPoint
	External    []SierraEntryPoint
	L1Handler   []SierraEntryPoint
}

// SierraClass is the declared form of a Cairo 1 class.
type SierraClass struct {
	Abi             string
	EntryPoints     SierraEntryPoints
	Program         []*felt.Felt
	SemanticVersion string
}

type CompiledEntryPoint struct {
	Selector felt.Felt
	Offset   uint64
	Builtins []string
}

type CompiledEntryPoints struct {
	External    []CompiledEntryPoint
	L1Handler   []CompiledEntryPoint
	Constructor []CompiledEntryPoint
}

// SegmentLengths is either a leaf covering Length bytecode words or a list of Children.
type SegmentLengths struct {
	Children []SegmentLengths
	Length   uint64
}

// CasmClass is the compiled form of a Cairo 1 class.
type CasmClass struct {
	// Defaults to COMPILED_CLASS_V1 when empty.
	Version         string
	CompilerVersion string
	Prime           string
	Bytecode        []*felt.Felt
	// nil when the compiler did not emit bytecode segments.
	BytecodeSegmentLengths *SegmentLengths
	// Decoded for completeness, hints are not committed to by the compiled class hash.
	Hints       json.RawMessage
	EntryPoints CompiledEntryPoints
}

// Calculator computes class hashes with the primitives of its provider.
type Calculator struct {
	provider crypto.Provider
}

func NewCalculator(p crypto.Provider) *Calculator {
	return &Calculator{provider: p}
}
