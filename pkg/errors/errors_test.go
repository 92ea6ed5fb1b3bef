package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("VALIDATION_ERROR", "validation failed", http.StatusUnprocessableEntity)

	if err.Code != "VALIDATION_ERROR" {
		t.Errorf("expected code VALIDATION_ERROR, got %s", err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.StatusCode() != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.StatusCode())
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFound("Timezone"),
			expected: "NOT_FOUND: Timezone not found",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("failed to load tables", errors.New("unexpected EOF")),
			expected: "INTERNAL_ERROR: failed to load tables (caused by: unexpected EOF)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if !errors.Is(appErr, originalErr) {
		t.Errorf("errors.Is should find the original error")
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Country", "ZZ")

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.Details["id"] != "ZZ" {
		t.Errorf("expected id 'ZZ', got %v", err.Details["id"])
	}
	if err.Details["resource"] != "Country" {
		t.Errorf("expected resource 'Country', got %v", err.Details["resource"])
	}
}

func TestConstructorsStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{name: "invalid input", err: InvalidInput("phoneNumber is required"), wantCode: CodeInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unsupported media type", err: UnsupportedMediaType("form encoding required"), wantCode: CodeUnsupportedType, wantStatus: http.StatusUnsupportedMediaType},
		{name: "not found", err: NotFound("Timezone"), wantCode: CodeNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: Internal("boom", nil), wantCode: CodeInternal, wantStatus: http.StatusInternalServerError},
		{name: "unavailable", err: Unavailable("lookup tables"), wantCode: CodeUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "too many requests", err: TooManyRequests(), wantCode: CodeTooManyRequests, wantStatus: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	appErr := InvalidInput("bad")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("AsAppError should return the same AppError")
	}

	wrapped := fmt.Errorf("handler: %w", appErr)
	if got := AsAppError(wrapped); got != appErr {
		t.Errorf("AsAppError should unwrap to the AppError")
	}

	plain := errors.New("plain")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected code %s for plain error, got %s", CodeInternal, got.Code)
	}
	if !errors.Is(got, plain) {
		t.Errorf("internal error should wrap the plain error")
	}
}
