package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf16"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MarshalPythonicJSON encodes v byte for byte like Python's json.dumps(v, sort_keys=True):
// ", " and ": " separators and ASCII only output with \uXXXX escapes.
//
// Accepted values are the ones produced by a json.Decoder with UseNumber: nil, bool,
// json.Number, string, []any and map[string]any. Keys of map[string]any are sorted while
// *orderedmap.OrderedMap[string, any] keeps its insertion order.
func MarshalPythonicJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writePythonic(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePythonic(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		buf.WriteString(val.String())
	case string:
		writePythonicString(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := writePythonic(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteString(", ")
			}
			writePythonicString(buf, k)
			buf.WriteString(": ")
			if err := writePythonic(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *orderedmap.OrderedMap[string, any]:
		buf.WriteByte('{')
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			if pair != val.Oldest() {
				buf.WriteString(", ")
			}
			writePythonicString(buf, pair.Key)
			buf.WriteString(": ")
			if err := writePythonic(buf, pair.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported pythonic JSON value of type %T", v)
	}
	return nil
}

func writePythonicString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, char := range s {
		switch {
		case char == '"':
			buf.WriteString(`\"`)
		case char == '\\':
			buf.WriteString(`\\`)
		case char == '\n':
			buf.WriteString(`\n`)
		case char == '\r':
			buf.WriteString(`\r`)
		case char == '\t':
			buf.WriteString(`\t`)
		case char == '\b':
			buf.WriteString(`\b`)
		case char == '\f':
			buf.WriteString(`\f`)
		case char >= ' ' && char <= '~':
			buf.WriteRune(char)
		default:
			// For non-ASCII characters, convert to UTF-16 surrogate pairs
			for _, c := range utf16.Encode([]rune{char}) {
				fmt.Fprintf(buf, "\\u%04x", c)
			}
		}
	}
	buf.WriteByte('"')
}
