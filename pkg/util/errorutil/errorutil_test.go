package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("create ticket: %w", NewValidationError("Please enter a title.", nil))

	domainErr := ToDomainError(wrapped)
	if domainErr.Code != CodeValidationFailed {
		t.Fatalf("expected %s, got %s", CodeValidationFailed, domainErr.Code)
	}
	if domainErr.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", domainErr.HTTPStatus)
	}
	if !IsValidation(wrapped) {
		t.Error("IsValidation should see through wrapping")
	}
}

func TestToDomainErrorMapsUnknownToInternal(t *testing.T) {
	cause := errors.New("boom")
	domainErr := ToDomainError(cause)
	if domainErr.Code != CodeInternalError {
		t.Fatalf("expected %s, got %s", CodeInternalError, domainErr.Code)
	}
	if !errors.Is(domainErr, cause) {
		t.Error("internal error should unwrap to its cause")
	}
	if ToDomainError(nil) != nil {
		t.Error("nil error should map to nil")
	}
}

func TestNewNotFoundMessage(t *testing.T) {
	err := NewNotFound("ticket", map[string]any{"id": "42"})
	domainErr := ToDomainError(err)
	if domainErr.Message != "ticket not found" {
		t.Errorf("unexpected message %q", domainErr.Message)
	}
	if domainErr.Details["id"] != "42" {
		t.Errorf("details lost: %v", domainErr.Details)
	}
	if IsValidation(err) {
		t.Error("not-found is not a validation failure")
	}
}
