package transaction

import (
	"fmt"

	"github.com/NethermindEth/starkhash/core/address"
	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
)

// Calculator computes transaction hashes: Pedersen chains for versions 0 to 2 and Poseidon
// chains for version 3.
type Calculator struct {
	provider  crypto.Provider
	addresses *address.Calculator
}

func NewCalculator(p crypto.Provider) *Calculator {
	return &Calculator{
		provider:  p,
		addresses: address.NewCalculator(p),
	}
}

func errUnsupportedTransaction(t Transaction) error {
	return fmt.Errorf("%w: %T", ErrUnsupportedTransactionVersion, t)
}

// Hash returns the hash the network assigns to t on the chain identified by chainID.
func (c *Calculator) Hash(t Transaction, chainID *felt.Felt) (felt.Felt, error) {
	switch tx := t.(type) {
	case *InvokeV0:
		return c.invokeV0Hash(tx, chainID), nil
	case *InvokeV1:
		return c.invokeV1Hash(tx, chainID), nil
	case *InvokeV3:
		return c.invokeV3Hash(tx, chainID), nil
	case *DeclareV0:
		return c.declareV0Hash(tx, chainID), nil
	case *DeclareV1:
		return c.declareV1Hash(tx, chainID), nil
	case *DeclareV2:
		return c.declareV2Hash(tx, chainID), nil
	case *DeclareV3:
		return c.declareV3Hash(tx, chainID), nil
	case *DeployAccountV1:
		return c.deployAccountV1Hash(tx, chainID), nil
	case *DeployAccountV3:
		return c.deployAccountV3Hash(tx, chainID), nil
	case *DeployV0:
		return c.deployHash(tx.Version(), tx.ContractAddress, tx.ClassHash, tx.ContractAddressSalt,
			tx.ConstructorCallData, chainID), nil
	case *DeployV1:
		return c.deployHash(tx.Version(), tx.ContractAddress, tx.ClassHash, tx.ContractAddressSalt,
			tx.ConstructorCallData, chainID), nil
	case *L1HandlerV0:
		return c.l1HandlerV0Hash(tx, chainID), nil
	default:
		return felt.Felt{}, errUnsupportedTransaction(t)
	}
}

func (c *Calculator) pedersenArray(elems ...*felt.Felt) *felt.Felt {
	h := crypto.PedersenArray(c.provider, elems...)
	return &h
}

func (c *Calculator) poseidonArray(elems ...*felt.Felt) *felt.Felt {
	h := c.provider.PoseidonArray(elems...)
	return &h
}

func orZero(f *felt.Felt) *felt.Felt {
	if f == nil {
		return &felt.Zero
	}
	return f
}

func (c *Calculator) invokeV0Hash(i *InvokeV0, chainID *felt.Felt) felt.Felt {
	version := i.Version().Felt()
	return crypto.PedersenArray(
		c.provider,
		invokeFelt,
		&version,
		i.ContractAddress,
		i.EntryPointSelector,
		c.pedersenArray(i.CallData...),
		orZero(i.MaxFee),
		chainID,
	)
}

func (c *Calculator) invokeV1Hash(i *InvokeV1, chainID *felt.Felt) felt.Felt {
	version := i.Version().Felt()
	return crypto.PedersenArray(
		c.provider,
		invokeFelt,
		&version,
		i.SenderAddress,
		&felt.Zero,
		c.pedersenArray(i.CallData...),
		orZero(i.MaxFee),
		chainID,
		orZero(i.Nonce),
	)
}

func (c *Calculator) declareV0Hash(d *DeclareV0, chainID *felt.Felt) felt.Felt {
	version := d.Version().Felt()
	return crypto.PedersenArray(
		c.provider,
		declareFelt,
		&version,
		d.SenderAddress,
		&felt.Zero,
		c.pedersenArray(),
		orZero(d.MaxFee),
		chainID,
		d.ClassHash,
	)
}

func (c *Calculator) declareV1Hash(d *DeclareV1, chainID *felt.Felt) felt.Felt {
	version := d.Version().Felt()
	return crypto.PedersenArray(
		c.provider,
		declareFelt,
		&version,
		d.SenderAddress,
		&felt.Zero,
		c.pedersenArray(d.ClassHash),
		orZero(d.MaxFee),
		chainID,
		orZero(d.Nonce),
	)
}

func (c *Calculator) declareV2Hash(d *DeclareV2, chainID *felt.Felt) felt.Felt {
	version := d.Version().Felt()
	return crypto.PedersenArray(
		c.provider,
		declareFelt,
		&version,
		d.SenderAddress,
		&felt.Zero,
		c.pedersenArray(d.ClassHash),
		orZero(d.MaxFee),
		chainID,
		orZero(d.Nonce),
		d.CompiledClassHash,
	)
}

// contractAddress returns addr, or the address a deploy account or a legacy deploy lands on
// when the caller has not derived it.
func (c *Calculator) contractAddress(addr, classHash, salt *felt.Felt, ctor []*felt.Felt) *felt.Felt {
	if addr != nil {
		return addr
	}
	derived := c.addresses.FromHash(classHash, ctor, salt, &felt.Zero)
	return &derived
}

func (c *Calculator) deployAccountV1Hash(d *DeployAccountV1, chainID *felt.Felt) felt.Felt {
	callData := []*felt.Felt{d.ClassHash, d.ContractAddressSalt}
	callData = append(callData, d.ConstructorCallData...)

	version := d.Version().Felt()
	return crypto.PedersenArray(
		c.provider,
		deployAccountFelt,
		&version,
		c.contractAddress(d.ContractAddress, d.ClassHash, d.ContractAddressSalt, d.ConstructorCallData),
		&felt.Zero,
		c.pedersenArray(callData...),
		orZero(d.MaxFee),
		chainID,
		orZero(d.Nonce),
	)
}

func (c *Calculator) deployHash(v Version, addr, classHash, salt *felt.Felt, ctor []*felt.Felt,
	chainID *felt.Felt,
) felt.Felt {
	version := v.Felt()
	constructor := crypto.SelectorFromName(c.provider, "constructor")
	return crypto.PedersenArray(
		c.provider,
		deployFelt,
		&version,
		c.contractAddress(addr, classHash, salt, ctor),
		&constructor,
		c.pedersenArray(ctor...),
		&felt.Zero,
		chainID,
	)
}

func (c *Calculator) l1HandlerV0Hash(l *L1HandlerV0, chainID *felt.Felt) felt.Felt {
	version := l.Version().Felt()
	return crypto.PedersenArray(
		c.provider,
		l1HandlerFelt,
		&version,
		l.ContractAddress,
		l.EntryPointSelector,
		c.pedersenArray(l.CallData...),
		&felt.Zero,
		chainID,
		orZero(l.Nonce),
	)
}

// v3Fields lists the fields every version 3 hash starts with:
// prefix, version, address, H(tip, resource words...), H(paymaster data), chain id, nonce
// and the packed data availability modes.
func (c *Calculator) v3Fields(k Kind, v Version, addr *felt.Felt, fm *FeeMarket, chainID,
	nonce *felt.Felt,
) []*felt.Felt {
	tip := fm.Tip.Felt()
	words := fm.ResourceBounds.Words()
	feeElems := make([]*felt.Felt, 0, 1+len(words))
	feeElems = append(feeElems, &tip)
	for i := range words {
		feeElems = append(feeElems, &words[i])
	}

	version := v.Felt()
	daModes := fm.daModes()
	return []*felt.Felt{
		k.prefix(),
		&version,
		addr,
		c.poseidonArray(feeElems...),
		c.poseidonArray(fm.PaymasterData...),
		chainID,
		orZero(nonce),
		&daModes,
	}
}

func (c *Calculator) invokeV3Hash(i *InvokeV3, chainID *felt.Felt) felt.Felt {
	elems := c.v3Fields(Invoke, i.Version(), i.SenderAddress, &i.FeeMarket, chainID, i.Nonce)
	elems = append(elems,
		c.poseidonArray(i.AccountDeploymentData...),
		c.poseidonArray(i.CallData...),
	)
	return c.provider.PoseidonArray(elems...)
}

func (c *Calculator) declareV3Hash(d *DeclareV3, chainID *felt.Felt) felt.Felt {
	elems := c.v3Fields(Declare, d.Version(), d.SenderAddress, &d.FeeMarket, chainID, d.Nonce)
	elems = append(elems,
		c.poseidonArray(d.AccountDeploymentData...),
		d.ClassHash,
		d.CompiledClassHash,
	)
	return c.provider.PoseidonArray(elems...)
}

func (c *Calculator) deployAccountV3Hash(d *DeployAccountV3, chainID *felt.Felt) felt.Felt {
	addr := c.contractAddress(d.ContractAddress, d.ClassHash, d.ContractAddressSalt, d.ConstructorCallData)
	elems := c.v3Fields(DeployAccount, d.Version(), addr, &d.FeeMarket, chainID, d.Nonce)
	elems = append(elems,
		c.poseidonArray(d.ConstructorCallData...),
		d.ClassHash,
		d.ContractAddressSalt,
	)
	return c.provider.PoseidonArray(elems...)
}
