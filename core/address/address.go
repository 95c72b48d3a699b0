package address

import (
	"math/big"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
)

// contractAddressPrefix is []byte("STARKNET_CONTRACT_ADDRESS")
var contractAddressPrefix = new(felt.Felt).SetBytes([]byte("STARKNET_CONTRACT_ADDRESS"))

// addressBound is 2^251 - 256, the exclusive upper bound of contract addresses.
var addressBound = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 251), big.NewInt(256))

type Calculator struct {
	provider crypto.Provider
}

func NewCalculator(p crypto.Provider) *Calculator {
	return &Calculator{provider: p}
}

// FromHash derives the address of a contract deployed with the given class hash,
// constructor calldata, salt and deployer. Contracts deployed by a deploy account or a
// legacy deploy transaction use a zero deployer.
func (c *Calculator) FromHash(classHash *felt.Felt, calldata []*felt.Felt, salt, deployer *felt.Felt) felt.Felt {
	calldataHash := crypto.PedersenArray(c.provider, calldata...)

	h := crypto.PedersenArray(
		c.provider,
		contractAddressPrefix,
		deployer,
		salt,
		classHash,
		&calldataHash,
	)
	return reduce(&h)
}

func reduce(f *felt.Felt) felt.Felt {
	v := f.BigInt(new(big.Int))
	if v.Cmp(addressBound) < 0 {
		return *f
	}
	var res felt.Felt
	res.SetBigInt(v.Mod(v, addressBound))
	return res
}
