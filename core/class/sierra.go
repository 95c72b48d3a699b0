package class

import (
	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/sourcegraph/conc"
)

const sierraVersionPrefix = "CONTRACT_CLASS_V"

// SierraClassHash computes the class hash of a declared Cairo 1 class.
func (c *Calculator) SierraClassHash(cls *SierraClass) (felt.Felt, error) {
	version, err := felt.FromShortString(sierraVersionPrefix + cls.SemanticVersion)
	if err != nil {
		return felt.Felt{}, err
	}

	var externalHash, l1HandlerHash, constructorHash, abiHash, programHash felt.Felt

	var wg conc.WaitGroup
	wg.Go(func() {
		externalHash = c.provider.PoseidonArray(flattenSierraEntryPoints(cls.EntryPoints.External)...)
	})
	wg.Go(func() {
		l1HandlerHash = c.provider.PoseidonArray(flattenSierraEntryPoints(cls.EntryPoints.L1Handler)...)
	})
	wg.Go(func() {
		constructorHash = c.provider.PoseidonArray(flattenSierraEntryPoints(cls.EntryPoints.Constructor)...)
	})
	wg.Go(func() {
		abiHash = c.provider.StarknetKeccak([]byte(cls.Abi))
	})
	wg.Go(func() {
		programHash = c.provider.PoseidonArray(cls.Program...)
	})
	wg.Wait()

	return c.provider.PoseidonArray(
		&version,
		&externalHash,
		&l1HandlerHash,
		&constructorHash,
		&abiHash,
		&programHash,
	), nil
}

func flattenSierraEntryPoints(entryPoints []SierraEntryPoint) []*felt.Felt {
	result := make([]*felt.Felt, 0, len(entryPoints)*2)
	for i := range entryPoints {
		index := felt.FromUint64(entryPoints[i].Index)
		result = append(result, &entryPoints[i].Selector, &index)
	}
	return result
}
