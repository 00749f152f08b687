package security

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	PasswordHashKey = "report_password_hash"

	NonceSize = 12
	TagSize   = 16
)

// argon2Envelope marks payloads whose key came from KeyDerivationArgon2id:
// magic || salt || nonce || ciphertext || tag.
var argon2Envelope = []byte("HLK2")

var ErrEmptyPassword = errors.New("password must not be empty")

// CryptoStore owns the single report password hash and performs payload
// encryption. Password store operations are serialized; Encrypt and Decrypt
// touch no shared state.
type CryptoStore struct {
	mu         sync.Mutex
	store      KeyValueStore
	derivation KeyDerivation
	random     io.Reader
}

type Option func(*CryptoStore)

func WithKeyDerivation(derivation KeyDerivation) Option {
	return func(store *CryptoStore) {
		store.derivation = derivation
	}
}

func withRandomSource(random io.Reader) Option {
	return func(store *CryptoStore) {
		store.random = random
	}
}

func NewCryptoStore(store KeyValueStore, options ...Option) *CryptoStore {
	cryptoStore := &CryptoStore{
		store:      store,
		derivation: KeyDerivationSHA256,
		random:     rand.Reader,
	}
	for _, option := range options {
		option(cryptoStore)
	}
	return cryptoStore
}

// HashPassword is unsalted SHA-256 over the UTF-8 bytes, base64 without padding.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.RawStdEncoding.EncodeToString(sum[:])
}

func (store *CryptoStore) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if store.store == nil {
		return ErrStoreUnavailable
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.store.Set(PasswordHashKey, HashPassword(password)); err != nil {
		return fmt.Errorf("save password hash: %w", err)
	}
	return nil
}

func (store *CryptoStore) VerifyPassword(password string) (bool, error) {
	if store.store == nil {
		return false, nil
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	storedHash, found, err := store.store.Get(PasswordHashKey)
	if err != nil {
		return false, fmt.Errorf("load password hash: %w", err)
	}
	if !found {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(HashPassword(password))) == 1, nil
}

func (store *CryptoStore) HasPassword() (bool, error) {
	if store.store == nil {
		return false, nil
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	_, found, err := store.store.Get(PasswordHashKey)
	if err != nil {
		return false, fmt.Errorf("load password hash: %w", err)
	}
	return found, nil
}

func (store *CryptoStore) ClearPassword() error {
	if store.store == nil {
		return ErrStoreUnavailable
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.store.Delete(PasswordHashKey); err != nil {
		return fmt.Errorf("clear password hash: %w", err)
	}
	return nil
}

// Encrypt seals plaintext with AES-256-GCM under a fresh random nonce.
// The legacy layout is nonce || ciphertext || tag.
func (store *CryptoStore) Encrypt(plaintext []byte, password string) ([]byte, error) {
	if store.derivation == KeyDerivationArgon2id {
		salt := make([]byte, saltSize)
		if _, err := io.ReadFull(store.random, salt); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
		sealed, err := store.seal(deriveArgon2Key(password, salt), plaintext)
		if err != nil {
			return nil, err
		}
		payload := make([]byte, 0, len(argon2Envelope)+len(salt)+len(sealed))
		payload = append(payload, argon2Envelope...)
		payload = append(payload, salt...)
		return append(payload, sealed...), nil
	}
	return store.seal(deriveLegacyKey(password), plaintext)
}

// Decrypt accepts both payload layouts regardless of the configured derivation.
func (store *CryptoStore) Decrypt(blob []byte, password string) ([]byte, error) {
	if len(blob) < NonceSize {
		return nil, ErrInvalidInput
	}

	headerSize := len(argon2Envelope) + saltSize
	if len(blob) >= headerSize+NonceSize+TagSize && bytes.HasPrefix(blob, argon2Envelope) {
		salt := blob[len(argon2Envelope):headerSize]
		if plaintext, err := open(deriveArgon2Key(password, salt), blob[headerSize:]); err == nil {
			return plaintext, nil
		}
	}

	return open(deriveLegacyKey(password), blob)
}

func (store *CryptoStore) seal(key []byte, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(store.random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	payload := make([]byte, 0, NonceSize+len(plaintext)+TagSize)
	payload = append(payload, nonce...)
	return aead.Seal(payload, nonce, plaintext, nil), nil
}

func open(key []byte, payload []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, payload[:NonceSize], payload[NonceSize:], nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("init aead: %w", err)
	}
	return aead, nil
}
