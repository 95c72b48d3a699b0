package transaction

import (
	"encoding/binary"
	"fmt"

	"github.com/NethermindEth/starkhash/core/felt"
)

type Resource uint32

const (
	ResourceL1Gas Resource = iota + 1
	ResourceL2Gas
	ResourceL1DataGas
)

func (r Resource) String() string {
	switch r {
	case ResourceL1Gas:
		return "L1_GAS"
	case ResourceL2Gas:
		return "L2_GAS"
	case ResourceL1DataGas:
		return "L1_DATA"
	default:
		return fmt.Sprintf("Resource(%d)", uint32(r))
	}
}

type DataAvailabilityMode uint32

const (
	DAModeL1 DataAvailabilityMode = iota
	DAModeL2
)

type ResourceBounds struct {
	// The maximum amount of the resource allowed for usage during the execution.
	MaxAmount uint64
	// The maximum price the user is willing to pay for the resource unit.
	MaxPricePerUnit felt.Uint128
}

type ResourceBoundsMapping struct {
	L1Gas ResourceBounds
	L2Gas ResourceBounds
	// Absent on transactions signed before 0.13.4.
	L1DataGas *ResourceBounds
}

// FeeMarket holds the fee fields shared by every version 3 transaction.
type FeeMarket struct {
	ResourceBounds ResourceBoundsMapping
	// The tip for the sequencer, paid on top of the resource prices.
	Tip felt.Uint64
	// Data needed to allow the paymaster to pay for the transaction in native tokens.
	PaymasterData []*felt.Felt
	// The storage domain of the account's nonce.
	NonceDAMode DataAvailabilityMode
	// The storage domain of the account's balance from which fee will be charged.
	FeeDAMode DataAvailabilityMode
}

// Word packs the bounds of resource r as r's ASCII name << 192 | max_amount << 128 | max_price.
func (rb ResourceBounds) Word(r Resource) felt.Felt {
	var word [32]byte

	name := []byte(r.String())
	copy(word[8-len(name):8], name)
	binary.BigEndian.PutUint64(word[8:16], rb.MaxAmount)

	price := rb.MaxPricePerUnit.Felt()
	priceBytes := price.Bytes()
	copy(word[16:], priceBytes[16:])

	var f felt.Felt
	f.SetBytes(word[:])
	return f
}

// Words lists the packed resource words in hashing order, L1 data gas last and only if set.
func (m *ResourceBoundsMapping) Words() []felt.Felt {
	words := []felt.Felt{
		m.L1Gas.Word(ResourceL1Gas),
		m.L2Gas.Word(ResourceL2Gas),
	}
	if m.L1DataGas != nil {
		words = append(words, m.L1DataGas.Word(ResourceL1DataGas))
	}
	return words
}

// daModes packs the nonce mode in the upper and the fee mode in the lower 32 bits.
func (f *FeeMarket) daModes() felt.Felt {
	return felt.FromUint64(uint64(f.NonceDAMode)<<32 | uint64(f.FeeDAMode))
}
