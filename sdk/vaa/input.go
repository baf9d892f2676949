package vaa

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// DecodeInput turns a VAA given on the command line into bytes. Hex (with or without 0x) is tried first, then
// base64. Input that decodes to nothing under both is rejected with ErrUnparseableInput.
func DecodeInput(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	if bz, err := hex.DecodeString(strings.TrimPrefix(s, "0x")); err == nil && len(bz) > 0 {
		return bz, nil
	}

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding} {
		if bz, err := enc.DecodeString(s); err == nil && len(bz) > 0 {
			return bz, nil
		}
	}

	return nil, ErrUnparseableInput
}

// ParseInput decodes CLI input with DecodeInput and unmarshals the VAA.
func ParseInput(s string) (*VAA, error) {
	bz, err := DecodeInput(s)
	if err != nil {
		return nil, err
	}
	return Unmarshal(bz)
}
