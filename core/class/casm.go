package class

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/sourcegraph/conc"
)

var ErrUnsupportedCasmVersion = errors.New("unsupported compiled class version")

const compiledClassVersion = "COMPILED_CLASS_V1"

// maxCompilerMajor is the newest Cairo compiler generation whose output is understood.
const maxCompilerMajor = 2

func checkCasmVersion(cls *CasmClass) error {
	if cls.Version != "" && cls.Version != compiledClassVersion {
		return fmt.Errorf("%w: %s", ErrUnsupportedCasmVersion, cls.Version)
	}
	if cls.CompilerVersion == "" {
		return nil
	}

	v, err := semver.NewVersion(cls.CompilerVersion)
	if err != nil {
		return fmt.Errorf("%w: compiler version %q: %v", ErrUnsupportedCasmVersion, cls.CompilerVersion, err)
	}
	if v.Major() > maxCompilerMajor {
		return fmt.Errorf("%w: compiler version %s", ErrUnsupportedCasmVersion, v)
	}
	return nil
}

// CompiledClassHash computes the compiled class hash of cls with Poseidon or Blake2s.
func (c *Calculator) CompiledClassHash(cls *CasmClass, method crypto.HashMethod) (felt.Felt, error) {
	if method != crypto.Poseidon && method != crypto.Blake2s {
		return felt.Felt{}, fmt.Errorf("%w: %s cannot hash compiled classes", crypto.ErrUnknownHashMethod, method)
	}
	if err := checkCasmVersion(cls); err != nil {
		return felt.Felt{}, err
	}

	hasher := crypto.NewHasher(c.provider, method)
	version := new(felt.Felt).SetBytes([]byte(compiledClassVersion))

	var externalHash, l1HandlerHash, constructorHash, bytecodeHash felt.Felt
	var bytecodeErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		externalHash = hasher.HashArray(flattenCompiledEntryPoints(hasher, cls.EntryPoints.External)...)
	})
	wg.Go(func() {
		l1HandlerHash = hasher.HashArray(flattenCompiledEntryPoints(hasher, cls.EntryPoints.L1Handler)...)
	})
	wg.Go(func() {
		constructorHash = hasher.HashArray(flattenCompiledEntryPoints(hasher, cls.EntryPoints.Constructor)...)
	})
	wg.Go(func() {
		if cls.BytecodeSegmentLengths == nil {
			bytecodeHash = hasher.HashArray(cls.Bytecode...)
			return
		}
		bytecodeHash, bytecodeErr = SegmentedBytecodeHash(hasher, cls.Bytecode, cls.BytecodeSegmentLengths)
	})
	wg.Wait()

	if bytecodeErr != nil {
		return felt.Felt{}, bytecodeErr
	}

	return hasher.HashArray(
		version,
		&externalHash,
		&l1HandlerHash,
		&constructorHash,
		&bytecodeHash,
	), nil
}

func flattenCompiledEntryPoints(hasher crypto.Hasher, entryPoints []CompiledEntryPoint) []*felt.Felt {
	result := make([]*felt.Felt, 0, len(entryPoints)*3)
	for i := range entryPoints {
		builtins := make([]*felt.Felt, len(entryPoints[i].Builtins))
		for j, builtin := range entryPoints[i].Builtins {
			builtins[j] = new(felt.Felt).SetBytes([]byte(builtin))
		}
		offset := felt.FromUint64(entryPoints[i].Offset)
		builtinsHash := hasher.HashArray(builtins...)
		result = append(result, &entryPoints[i].Selector, &offset, &builtinsHash)
	}
	return result
}

var ErrInvalidSegmentLengths = errors.New("bytecode segment lengths do not match the bytecode")

// SegmentedBytecodeHash hashes bytecode split by segments. A leaf segment hashes to
// H(words) and a list of segments to 1 + H(len0, hash0, len1, hash1, ...).
func SegmentedBytecodeHash(hasher crypto.Hasher, bytecode []*felt.Felt, segments *SegmentLengths) (felt.Felt, error) {
	var offset uint64

	var digestSegment func(segment *SegmentLengths) (uint64, felt.Felt, error)
	digestSegment = func(segment *SegmentLengths) (uint64, felt.Felt, error) {
		if len(segment.Children) == 0 {
			end := offset + segment.Length
			if end > uint64(len(bytecode)) {
				return 0, felt.Felt{}, fmt.Errorf("%w: %d > %d", ErrInvalidSegmentLengths, end, len(bytecode))
			}
			hash := hasher.HashArray(bytecode[offset:end]...)
			offset = end
			return segment.Length, hash, nil
		}

		var totalLength uint64
		digest := hasher.Digest()
		for i := range segment.Children {
			length, hash, err := digestSegment(&segment.Children[i])
			if err != nil {
				return 0, felt.Felt{}, err
			}
			lengthFelt := felt.FromUint64(length)
			digest.Update(&lengthFelt, &hash)
			totalLength += length
		}

		res := digest.Finish()
		res.Add(&res, &felt.One)
		return totalLength, res, nil
	}

	_, hash, err := digestSegment(segments)
	if err != nil {
		return felt.Felt{}, err
	}
	if offset != uint64(len(bytecode)) {
		return felt.Felt{}, fmt.Errorf("%w: %d words left unhashed", ErrInvalidSegmentLengths, uint64(len(bytecode))-offset)
	}
	return hash, nil
}
