package utils

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"io"
)

// Gzip64Encode gzips data and encodes the result as standard base64, the form in which
// JSON-RPC nodes serve Cairo 0 programs.
func Gzip64Encode(data []byte) (string, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func Gzip64Decode(data string) ([]byte, error) {
	compressed, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}
	r, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
