package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	errNegativeLength   = errors.New("length must be non-negative")
	errEmptyAlphabet    = errors.New("alphabet must not be empty")
	errAlphabetTooLarge = errors.New("alphabet must not exceed 256 symbols")
	randomSource        = rand.Reader
)

// RandomString draws length symbols uniformly from alphabet. Bytes that would
// bias the modulo are rejected and redrawn.
func RandomString(length int, alphabet string) (string, error) {
	return randomStringFrom(randomSource, length, alphabet)
}

func randomStringFrom(source io.Reader, length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}

	symbols := []rune(alphabet)
	switch {
	case len(symbols) == 0:
		return "", errEmptyAlphabet
	case len(symbols) > 256:
		return "", errAlphabetTooLarge
	}

	limit := 256 - 256%len(symbols)
	buffer := make([]byte, length)
	var builder strings.Builder
	for drawn := 0; drawn < length; {
		if _, err := io.ReadFull(source, buffer); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, value := range buffer {
			if int(value) >= limit {
				continue
			}
			builder.WriteRune(symbols[int(value)%len(symbols)])
			if drawn++; drawn == length {
				break
			}
		}
	}
	return builder.String(), nil
}
