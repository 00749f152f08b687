package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	sealedValueVersion    = "v1"
	sealedValueNamePrefix = "healthlog.setting."
)

var errInvalidSealedValue = errors.New("invalid sealed setting value")

// KeyValueStore is the plain settings backend a SealedStore wraps.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Delete(key string) error
}

// SealedStore encrypts every value at rest with AES-256-GCM. The entry name is
// bound as associated data, so a value copied under another name fails to open.
type SealedStore struct {
	backend KeyValueStore
	aead    cipher.AEAD
}

func NewSealedStore(backend KeyValueStore, secretKey []byte) (*SealedStore, error) {
	if backend == nil {
		return nil, errors.New("sealed store backend is required")
	}
	if len(secretKey) == 0 {
		return nil, errors.New("sealed store secret key is required")
	}

	derivedKey := deriveSealedStoreKey(secretKey)
	block, err := aes.NewCipher(derivedKey[:])
	if err != nil {
		return nil, fmt.Errorf("init sealed store cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init sealed store aead: %w", err)
	}
	return &SealedStore{backend: backend, aead: aead}, nil
}

func deriveSealedStoreKey(secretKey []byte) [32]byte {
	label := []byte("healthlog.sealed-settings.v1")
	material := make([]byte, 0, len(label)+len(secretKey))
	material = append(material, label...)
	material = append(material, secretKey...)
	return sha256.Sum256(material)
}

func (store *SealedStore) Get(key string) (string, bool, error) {
	raw, found, err := store.backend.Get(key)
	if err != nil || !found {
		return "", found, err
	}

	plaintext, err := store.open(key, raw)
	if err != nil {
		return "", false, err
	}
	return string(plaintext), true, nil
}

func (store *SealedStore) Set(key string, value string) error {
	sealed, err := store.seal(key, []byte(value))
	if err != nil {
		return err
	}
	return store.backend.Set(key, sealed)
}

func (store *SealedStore) Delete(key string) error {
	return store.backend.Delete(key)
}

func (store *SealedStore) seal(name string, plaintext []byte) (string, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return "", errors.New("sealed setting name is required")
	}

	nonce := make([]byte, store.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate sealed setting nonce: %w", err)
	}

	aad := []byte(sealedValueNamePrefix + trimmedName)
	ciphertext := store.aead.Seal(nil, nonce, plaintext, aad)
	payload := make([]byte, 0, len(nonce)+len(ciphertext))
	payload = append(payload, nonce...)
	payload = append(payload, ciphertext...)

	return sealedValueVersion + "." + HexEncode(payload), nil
}

func (store *SealedStore) open(name string, rawValue string) ([]byte, error) {
	trimmedName := strings.TrimSpace(name)
	rawValue = strings.TrimSpace(rawValue)
	if trimmedName == "" || rawValue == "" {
		return nil, errInvalidSealedValue
	}

	version, encodedPayload, found := strings.Cut(rawValue, ".")
	if !found || version != sealedValueVersion || strings.TrimSpace(encodedPayload) == "" {
		return nil, errInvalidSealedValue
	}

	payload, err := HexDecode(encodedPayload)
	if err != nil {
		return nil, errInvalidSealedValue
	}

	nonceSize := store.aead.NonceSize()
	if len(payload) <= nonceSize {
		return nil, errInvalidSealedValue
	}

	aad := []byte(sealedValueNamePrefix + trimmedName)
	plaintext, err := store.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], aad)
	if err != nil {
		return nil, errInvalidSealedValue
	}
	return plaintext, nil
}
