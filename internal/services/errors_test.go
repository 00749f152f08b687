package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/terraincognita07/healthlog/internal/security"
)

func TestKindOfClassifiesKnownFailures(t *testing.T) {
	_, marshalErr := json.Marshal(math.Inf(1))

	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "tagged", err: newExportError(KindSerializationFailure, "op", errors.New("x")), want: KindSerializationFailure},
		{name: "wrapped tagged", err: fmt.Errorf("outer: %w", newExportError(KindInvalidInput, "op", nil)), want: KindInvalidInput},
		{name: "auth", err: fmt.Errorf("decrypt: %w", security.ErrAuthenticationFailed), want: KindAuthenticationFailure},
		{name: "short blob", err: security.ErrInvalidInput, want: KindInvalidInput},
		{name: "empty password", err: security.ErrEmptyPassword, want: KindInvalidInput},
		{name: "range", err: ErrExportRangeInvalid, want: KindInvalidInput},
		{name: "record", err: fmt.Errorf("%w: bad", ErrRecordInvalid), want: KindInvalidInput},
		{name: "json", err: marshalErr, want: KindSerializationFailure},
		{name: "io", err: errors.New("disk full"), want: KindStorageFailure},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := KindOf(testCase.err); got != testCase.want {
				t.Fatalf("KindOf(%v) = %q, want %q", testCase.err, got, testCase.want)
			}
		})
	}
}

func TestExportErrorMessageCarriesOperation(t *testing.T) {
	err := newExportError(KindStorageFailure, "write report", errors.New("permission denied"))
	if err.Error() != "write report: permission denied" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, err.(*ExportError).Err) {
		t.Fatalf("expected Unwrap to expose the cause")
	}
}
