package class

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/NethermindEth/starkhash/utils"
	"github.com/sourcegraph/conc"
)

var ErrInvalidProgram = errors.New("invalid cairo 0 program")

// DeprecatedClassHash computes the class hash of a Cairo 0 class.
func (c *Calculator) DeprecatedClassHash(cls *DeprecatedClass) (felt.Felt, error) {
	decoded, err := decodeJSON(cls.Program)
	if err != nil {
		return felt.Felt{}, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
	}
	program, ok := decoded.(map[string]any)
	if !ok {
		return felt.Felt{}, fmt.Errorf("%w: program is not an object", ErrInvalidProgram)
	}

	builtins, err := programBuiltins(program)
	if err != nil {
		return felt.Felt{}, err
	}
	data, err := programData(program)
	if err != nil {
		return felt.Felt{}, err
	}

	var externalHash, l1HandlerHash, constructorHash, builtinsHash, dataHash, hintedClassHash felt.Felt
	var hintedClassHashErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		externalHash = crypto.PedersenArray(c.provider, flattenEntryPoints(cls.Externals)...)
	})
	wg.Go(func() {
		l1HandlerHash = crypto.PedersenArray(c.provider, flattenEntryPoints(cls.L1Handlers)...)
	})
	wg.Go(func() {
		constructorHash = crypto.PedersenArray(c.provider, flattenEntryPoints(cls.Constructors)...)
	})
	wg.Go(func() {
		builtinsHash = crypto.PedersenArray(c.provider, builtins...)
	})
	wg.Go(func() {
		dataHash = crypto.PedersenArray(c.provider, data...)
	})
	wg.Go(func() {
		// formatProgram mutates the decoded program, the builtins and data were read above.
		hintedClassHash, hintedClassHashErr = c.HintedClassHash(cls.Abi, program)
	})
	wg.Wait()

	if hintedClassHashErr != nil {
		return felt.Felt{}, hintedClassHashErr
	}

	return crypto.PedersenArray(
		c.provider,
		&felt.Zero,
		&externalHash,
		&l1HandlerHash,
		&constructorHash,
		&builtinsHash,
		&hintedClassHash,
		&dataHash,
	), nil
}

// HintedClassHash is the starknet_keccak of the Python json.dumps(sort_keys=True) form of
// {"abi": abi, "program": program} after program formatting.
func (c *Calculator) HintedClassHash(abi []byte, program map[string]any) (felt.Felt, error) {
	if err := formatProgram(program); err != nil {
		return felt.Felt{}, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
	}

	decodedAbi, err := decodeJSON(abi)
	if err != nil {
		return felt.Felt{}, fmt.Errorf("abi: %w", err)
	}

	encoded, err := utils.MarshalPythonicJSON(map[string]any{
		"abi":     decodedAbi,
		"program": program,
	})
	if err != nil {
		return felt.Felt{}, err
	}
	return c.provider.StarknetKeccak(encoded), nil
}

func flattenEntryPoints(entryPoints []EntryPoint) []*felt.Felt {
	result := make([]*felt.Felt, 0, len(entryPoints)*2)
	for i := range entryPoints {
		result = append(result, &entryPoints[i].Selector, &entryPoints[i].Offset)
	}
	return result
}

func programBuiltins(program map[string]any) ([]*felt.Felt, error) {
	raw, _ := program["builtins"].([]any)
	builtins := make([]*felt.Felt, 0, len(raw))
	for _, b := range raw {
		name, ok := b.(string)
		if !ok {
			return nil, fmt.Errorf("%w: builtin %v is not a string", ErrInvalidProgram, b)
		}
		builtins = append(builtins, new(felt.Felt).SetBytes([]byte(name)))
	}
	return builtins, nil
}

func programData(program map[string]any) ([]*felt.Felt, error) {
	raw, _ := program["data"].([]any)
	data := make([]*felt.Felt, 0, len(raw))
	for _, d := range raw {
		word, ok := d.(string)
		if !ok {
			return nil, fmt.Errorf("%w: data word %v is not a string", ErrInvalidProgram, d)
		}
		f, err := felt.FromHex(word)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
		}
		data = append(data, &f)
	}
	return data, nil
}
