package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/terraincognita07/healthlog/internal/security"
)

// ErrorKind is the closed failure taxonomy surfaced by exports and crypto.
type ErrorKind string

const (
	KindInvalidInput          ErrorKind = "invalid_input"
	KindAuthenticationFailure ErrorKind = "authentication_failure"
	KindSerializationFailure  ErrorKind = "serialization_failure"
	KindStorageFailure        ErrorKind = "storage_failure"
)

// ExportError tags a failure with its kind and the operation that produced it.
type ExportError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (err *ExportError) Error() string {
	if err.Err == nil {
		return err.Op + ": " + string(err.Kind)
	}
	return fmt.Sprintf("%s: %v", err.Op, err.Err)
}

func (err *ExportError) Unwrap() error {
	return err.Err
}

func newExportError(kind ErrorKind, op string, err error) error {
	return &ExportError{Kind: kind, Op: op, Err: err}
}

// KindOf classifies err. Unknown non-nil errors count as storage failures
// because every remaining code path that can fail is an I/O path.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return exportErr.Kind
	}

	switch {
	case errors.Is(err, security.ErrAuthenticationFailed),
		errors.Is(err, ErrCurrentPasswordInvalid):
		return KindAuthenticationFailure
	case errors.Is(err, security.ErrInvalidInput),
		errors.Is(err, security.ErrEmptyPassword),
		errors.Is(err, ErrExportFromDateInvalid),
		errors.Is(err, ErrExportToDateInvalid),
		errors.Is(err, ErrExportRangeInvalid),
		errors.Is(err, ErrExportPeriodInvalid),
		errors.Is(err, ErrRecordInvalid),
		errors.Is(err, ErrPasswordInputInvalid),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrPasswordMustDiffer),
		errors.Is(err, ErrWeakPassword):
		return KindInvalidInput
	}

	var unsupportedValue *json.UnsupportedValueError
	var unsupportedType *json.UnsupportedTypeError
	var marshalerErr *json.MarshalerError
	if errors.As(err, &unsupportedValue) || errors.As(err, &unsupportedType) || errors.As(err, &marshalerErr) {
		return KindSerializationFailure
	}

	return KindStorageFailure
}
