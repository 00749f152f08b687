package security

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

type KeyDerivation string

const (
	// KeyDerivationSHA256 hashes the raw password once. It carries no salt and
	// no work factor, but it matches reports encrypted by earlier releases.
	KeyDerivationSHA256 KeyDerivation = "sha256"
	// KeyDerivationArgon2id stretches the password with a per-payload salt.
	KeyDerivationArgon2id KeyDerivation = "argon2id"
)

const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	keySize       = 32
	saltSize      = 16
)

func ParseKeyDerivation(raw string) (KeyDerivation, error) {
	switch KeyDerivation(strings.ToLower(strings.TrimSpace(raw))) {
	case "", KeyDerivationSHA256:
		return KeyDerivationSHA256, nil
	case KeyDerivationArgon2id:
		return KeyDerivationArgon2id, nil
	default:
		return "", fmt.Errorf("unknown key derivation %q", raw)
	}
}

func deriveLegacyKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

func deriveArgon2Key(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, keySize)
}
