package felt

import (
	"errors"
	"fmt"
	"strings"
)

// ShortStringMaxLen is the number of ASCII characters that fit into a single felt.
const ShortStringMaxLen = 31

var ErrInvalidShortString = errors.New("invalid short string")

// FromShortString packs up to 31 ASCII characters into a felt, first character in the most
// significant byte.
func FromShortString(s string) (Felt, error) {
	if len(s) > ShortStringMaxLen {
		return Felt{}, fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidShortString, s, ShortStringMaxLen)
	}
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return Felt{}, fmt.Errorf("%w: %q is not ASCII", ErrInvalidShortString, s)
		}
	}

	var f Felt
	f.SetBytes([]byte(s))
	return f, nil
}

// ShortString decodes z as a short string, dropping leading zero bytes.
func (z *Felt) ShortString() string {
	b := z.Bytes()
	return strings.TrimLeft(string(b[:]), "\x00")
}

// SplitLongString cuts s into chunks of at most 31 bytes.
func SplitLongString(s string) []string {
	chunks := make([]string, 0, (len(s)+ShortStringMaxLen-1)/ShortStringMaxLen)
	for len(s) > ShortStringMaxLen {
		chunks = append(chunks, s[:ShortStringMaxLen])
		s = s[ShortStringMaxLen:]
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
