package transaction

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starkhash/core/felt"
	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidL1Sender = errors.New("invalid l1 sender")

type L1ToL2Message struct {
	From     common.Address
	To       *felt.Felt
	Selector *felt.Felt
	Nonce    *felt.Felt
	Payload  []*felt.Felt
}

// Hash is the key under which the Starknet core contract on Ethereum records the message:
// keccak256 over the 32 byte words from, to, nonce, selector, len(payload), payload...
func (m *L1ToL2Message) Hash() common.Hash {
	words := make([][]byte, 0, 5+len(m.Payload))
	words = append(words, common.LeftPadBytes(m.From.Bytes(), common.HashLength))
	for _, f := range []*felt.Felt{m.To, m.Nonce, m.Selector} {
		words = append(words, feltWord(f))
	}

	size := felt.FromUint64(uint64(len(m.Payload)))
	words = append(words, feltWord(&size))
	for _, f := range m.Payload {
		words = append(words, feltWord(f))
	}
	return gethcrypto.Keccak256Hash(words...)
}

func feltWord(f *felt.Felt) []byte {
	b := orZero(f).Bytes()
	return b[:]
}

// Message recovers the L1 message that triggered l. The first calldata element is the
// Ethereum address of the sender.
func (l *L1HandlerV0) Message() (*L1ToL2Message, error) {
	if len(l.CallData) == 0 {
		return nil, fmt.Errorf("%w: empty calldata", ErrInvalidL1Sender)
	}

	sender := l.CallData[0].Bytes()
	for _, b := range sender[:common.HashLength-common.AddressLength] {
		if b != 0 {
			return nil, fmt.Errorf("%w: %s does not fit an Ethereum address", ErrInvalidL1Sender, l.CallData[0])
		}
	}

	return &L1ToL2Message{
		From:     common.BytesToAddress(sender[:]),
		To:       l.ContractAddress,
		Selector: l.EntryPointSelector,
		Nonce:    l.Nonce,
		Payload:  l.CallData[1:],
	}, nil
}
