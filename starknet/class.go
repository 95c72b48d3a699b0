package starknet

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/validator"
)

var ErrUnknownClassFormat = errors.New("unknown class format")

type EntryPoint struct {
	Selector *felt.Felt `json:"selector" validate:"required"`
	Offset   *felt.Felt `json:"offset" validate:"required"`
}

type SierraEntryPoints struct {
	Constructor []SierraEntryPoint `json:"CONSTRUCTOR" validate:"dive"`
	External    []SierraEntryPoint `json:"EXTERNAL" validate:"dive"`
	L1Handler   []SierraEntryPoint `json:"L1_HANDLER" validate:"dive"`
}

type SierraClass struct {
	Abi         string            `json:"abi,omitempty"`
	EntryPoints SierraEntryPoints `json:"entry_points_by_type"`
	Program     []*felt.Felt      `json:"sierra_program" validate:"required"`
	Version     string            `json:"contract_class_version" validate:"required"`
}

type SierraEntryPoint struct {
	Index    uint64     `json:"function_idx"`
	Selector *felt.Felt `json:"selector" validate:"required"`
}

type EntryPoints struct {
	Constructor []EntryPoint `json:"CONSTRUCTOR" validate:"dive"`
	External    []EntryPoint `json:"EXTERNAL" validate:"dive"`
	L1Handler   []EntryPoint `json:"L1_HANDLER" validate:"dive"`
}

type DeprecatedCairoClass struct {
	Abi         json.RawMessage `json:"abi"`
	EntryPoints EntryPoints     `json:"entry_points_by_type"`
	Program     json.RawMessage `json:"program" validate:"required"`
}

// ClassDefinition holds exactly one of the class forms a class file can contain.
type ClassDefinition struct {
	DeprecatedCairo *DeprecatedCairoClass
	Sierra          *SierraClass
	Casm            *CasmClass
}

// UnmarshalJSON dispatches on the key that only one form carries: sierra_program for a
// Sierra class, bytecode for a compiled class and program for a Cairo 0 class.
func (c *ClassDefinition) UnmarshalJSON(data []byte) error {
	jsonMap := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &jsonMap); err != nil {
		return err
	}

	switch {
	case len(jsonMap["sierra_program"]) > 0:
		c.Sierra = new(SierraClass)
		return json.Unmarshal(data, c.Sierra)
	case len(jsonMap["bytecode"]) > 0:
		c.Casm = new(CasmClass)
		return json.Unmarshal(data, c.Casm)
	case len(jsonMap["program"]) > 0:
		c.DeprecatedCairo = new(DeprecatedCairoClass)
		return json.Unmarshal(data, c.DeprecatedCairo)
	default:
		return ErrUnknownClassFormat
	}
}

type SegmentLengths struct {
	Children []SegmentLengths
	Length   uint64
}

func (n *SegmentLengths) UnmarshalJSON(data []byte) error {
	var err error
	n.Length, err = strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return json.Unmarshal(data, &n.Children)
	}
	return err
}

func (n SegmentLengths) MarshalJSON() ([]byte, error) {
	if len(n.Children) > 0 {
		return json.Marshal(n.Children)
	}
	return json.Marshal(n.Length)
}

type CasmClass struct {
	Prime                  string          `json:"prime"`
	Bytecode               []*felt.Felt    `json:"bytecode" validate:"required"`
	Hints                  json.RawMessage `json:"hints"`
	PythonicHints          json.RawMessage `json:"pythonic_hints"`
	CompilerVersion        string          `json:"compiler_version"`
	BytecodeSegmentLengths *SegmentLengths `json:"bytecode_segment_lengths"`
	EntryPoints            struct {
		External    []CompiledEntryPoint `json:"EXTERNAL" validate:"dive"`
		L1Handler   []CompiledEntryPoint `json:"L1_HANDLER" validate:"dive"`
		Constructor []CompiledEntryPoint `json:"CONSTRUCTOR" validate:"dive"`
	} `json:"entry_points_by_type"`
}

type CompiledEntryPoint struct {
	Selector *felt.Felt `json:"selector" validate:"required"`
	Offset   uint64     `json:"offset"`
	Builtins []string   `json:"builtins"`
}

// ParseClass decodes a class file and validates the form it holds.
func ParseClass(data []byte) (*ClassDefinition, error) {
	c := new(ClassDefinition)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}

	var form any
	switch {
	case c.Sierra != nil:
		form = c.Sierra
	case c.Casm != nil:
		form = c.Casm
	default:
		form = c.DeprecatedCairo
	}
	if err := validator.Validator().Struct(form); err != nil {
		return nil, err
	}
	return c, nil
}
