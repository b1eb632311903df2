package errors

import (
	"errors"
	"fmt"
	"testing"
)

var errSentinel = errors.New("sentinel")

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", BadRequestError(errSentinel, "bad input"))

	if !Is(err, CategoryDataError) {
		t.Error("Expected CategoryDataError")
	}
	if Is(err, CategoryGeneralError) {
		t.Error("Did not expect CategoryGeneralError")
	}
	if !errors.Is(err, errSentinel) {
		t.Error("Expected the sentinel to be reachable through Unwrap")
	}
	if IsInternalError(err) {
		t.Error("Data errors are not internal")
	}
}

func TestConstructorsWithNilError(t *testing.T) {
	tests := []struct {
		err      error
		category Category
	}{
		{GeneralError(nil), CategoryGeneralError},
		{BadRequestError(nil, "x"), CategoryDataError},
		{NotSupportedError(nil, "x"), CategoryNotSupported},
	}
	for _, tt := range tests {
		if tt.err.Error() == "" {
			t.Errorf("%s: empty message", tt.category)
		}
		if !Is(tt.err, tt.category) {
			t.Errorf("Expected category %s", tt.category)
		}
	}

	if !IsInternalError(GeneralError(nil)) || !IsInternalError(errors.New("plain")) {
		t.Error("Expected general and plain errors to be internal")
	}
}
