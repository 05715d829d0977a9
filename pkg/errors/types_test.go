package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewError(t *testing.T) {
	err := New(ErrCodeInvalidCredentials, "bad login")

	if err.Code != ErrCodeInvalidCredentials {
		t.Errorf("code = %q", err.Code)
	}
	if !strings.Contains(err.Error(), "AUTH_INVALID_CREDENTIALS") {
		t.Errorf("message missing code: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "bad login") {
		t.Errorf("message missing text: %s", err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if got := Wrap(nil, ErrCodeInternal, "nope"); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}
}

func TestWrapPreservesUnderlying(t *testing.T) {
	base := stderrors.New("connection refused")
	err := Wrap(base, ErrCodeProviderError, "doubao request failed")

	if !stderrors.Is(err, base) {
		t.Error("wrapped error lost underlying cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("underlying missing from message: %s", err.Error())
	}
}

func TestWithContext(t *testing.T) {
	err := New(ErrCodeProviderUnavailable, "no api key").WithContext("provider", "qwen")
	if !strings.Contains(err.Error(), "provider: qwen") {
		t.Errorf("context missing: %s", err.Error())
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeUnauthenticated, "login required")

	if !IsCode(err, ErrCodeUnauthenticated) {
		t.Error("IsCode should match")
	}
	if IsCode(err, ErrCodeInternal) {
		t.Error("IsCode should not match other codes")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("IsCode(nil) should be false")
	}
	if IsCode(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("IsCode on plain error should be false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeParseDegraded, "tier 3")); got != ErrCodeParseDegraded {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %q", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q", got)
	}
}
