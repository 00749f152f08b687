package security

import "errors"

var (
	// ErrInvalidInput reports a payload too short to carry a nonce.
	ErrInvalidInput = errors.New("invalid encrypted payload")
	// ErrAuthenticationFailed reports a GCM tag mismatch: wrong password or corrupted data.
	ErrAuthenticationFailed = errors.New("payload authentication failed")
	ErrStoreUnavailable     = errors.New("credential store unavailable")
)
