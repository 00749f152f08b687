package security

import (
	"encoding/hex"
	"fmt"
)

// HexEncode renders bytes as lowercase hex, two characters per byte.
func HexEncode(value []byte) string {
	return hex.EncodeToString(value)
}

func HexDecode(value string) ([]byte, error) {
	decoded, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return decoded, nil
}
