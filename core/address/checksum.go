package address

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/starkhash/core/crypto"
	"github.com/NethermindEth/starkhash/core/felt"
)

var ErrChecksumMismatch = errors.New("address checksum mismatch")

const checksumHexLen = 64

// Checksum encodes addr as 0x followed by 64 hex characters where letters are upper-cased
// according to the keccak digest of the address' minimal big-endian bytes. Unlike EIP-55 the
// digest is taken over the number, not over its ASCII hex form.
func Checksum(p crypto.Provider, addr *felt.Felt) string {
	chars := []byte(paddedHex(addr))

	raw := addr.BigInt(new(big.Int)).Bytes()
	if len(raw) == 0 {
		raw = []byte{0}
	}
	digest := p.Keccak256(raw)

	for i, c := range chars {
		if c >= 'a' && c <= 'f' && digestBit(&digest, 255-4*i) {
			chars[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(chars)
}

// digestBit reports whether bit i, counted from the least significant end, is set.
func digestBit(digest *[32]byte, i int) bool {
	return digest[31-i/8]>>(i%8)&1 == 1
}

// IsChecksumValid reports whether s is exactly the checksum form of the address it encodes.
func IsChecksumValid(p crypto.Provider, s string) bool {
	return VerifyChecksum(p, s) == nil
}

func VerifyChecksum(p crypto.Provider, s string) error {
	addr, err := felt.FromHex(s)
	if err != nil {
		return err
	}
	if expected := Checksum(p, &addr); expected != s {
		return fmt.Errorf("%w: expected %s", ErrChecksumMismatch, expected)
	}
	return nil
}

// Normalise returns the lowercase, zero padded form of an address string.
func Normalise(s string) (string, error) {
	addr, err := felt.FromHex(s)
	if err != nil {
		return "", err
	}
	return "0x" + paddedHex(&addr), nil
}

func paddedHex(addr *felt.Felt) string {
	hex := addr.Text(felt.Base16)
	return strings.Repeat("0", checksumHexLen-len(hex)) + hex
}
