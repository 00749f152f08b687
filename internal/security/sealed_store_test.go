package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealedStoreRoundTripAndOpacity(t *testing.T) {
	backend := newMemoryKeyValueStore()
	store, err := NewSealedStore(backend, []byte("test-secret-key"))
	require.NoError(t, err)

	require.NoError(t, store.Set(PasswordHashKey, "hash-value"))
	require.True(t, strings.HasPrefix(backend.values[PasswordHashKey], sealedValueVersion+"."))
	require.NotContains(t, backend.values[PasswordHashKey], "hash-value")

	value, found, err := store.Get(PasswordHashKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "hash-value", value)

	require.NoError(t, store.Delete(PasswordHashKey))
	_, found, err = store.Get(PasswordHashKey)
	require.NoError(t, err)
	require.False(t, found)
}

func TestSealedStoreBindsValueToName(t *testing.T) {
	backend := newMemoryKeyValueStore()
	store, err := NewSealedStore(backend, []byte("test-secret-key"))
	require.NoError(t, err)

	require.NoError(t, store.Set("a", "value"))
	backend.values["b"] = backend.values["a"]

	_, _, err = store.Get("b")
	require.ErrorIs(t, err, errInvalidSealedValue)
}

func TestSealedStoreRejectsOtherSecret(t *testing.T) {
	backend := newMemoryKeyValueStore()
	first, err := NewSealedStore(backend, []byte("first"))
	require.NoError(t, err)
	second, err := NewSealedStore(backend, []byte("second"))
	require.NoError(t, err)

	require.NoError(t, first.Set("k", "v"))
	_, _, err = second.Get("k")
	require.Error(t, err)
}

func TestCryptoStoreOverSealedStore(t *testing.T) {
	sealed, err := NewSealedStore(newMemoryKeyValueStore(), []byte("secret"))
	require.NoError(t, err)
	store := NewCryptoStore(sealed)

	require.NoError(t, store.SetPassword("pw"))
	ok, err := store.VerifyPassword("pw")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNewSealedStoreValidatesArguments(t *testing.T) {
	_, err := NewSealedStore(nil, []byte("secret"))
	require.Error(t, err)
	_, err = NewSealedStore(newMemoryKeyValueStore(), nil)
	require.Error(t, err)
}

func TestSealedStoreWritesLowercaseHexPayload(t *testing.T) {
	backend := newMemoryKeyValueStore()
	store, err := NewSealedStore(backend, []byte("test-secret-key"))
	require.NoError(t, err)

	require.NoError(t, store.Set("k", "value"))
	_, encoded, found := strings.Cut(backend.values["k"], ".")
	require.True(t, found)

	payload, err := HexDecode(encoded)
	require.NoError(t, err)
	require.Equal(t, strings.ToLower(encoded), encoded)
	// nonce + ciphertext + tag
	require.Len(t, payload, NonceSize+len("value")+TagSize)

	backend.values["k"] = sealedValueVersion + ".zz" + encoded[2:]
	_, _, err = store.Get("k")
	require.ErrorIs(t, err, errInvalidSealedValue)
}
