//go:build unit

package icelandauth

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := TokenError("could not decode token", cause)

	if err.Error() != "could not decode token" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the cause")
	}

	var appErr *AppError
	if !errors.As(error(err), &appErr) {
		t.Fatal("errors.As failed on an AppError")
	}
	if appErr.Code != ErrCodeTokenInvalid {
		t.Errorf("Code = %s, want %s", appErr.Code, ErrCodeTokenInvalid)
	}
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeTokenInvalid, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeSignatureInvalid, http.StatusUnauthorized},
		{ErrCodeCertUntrusted, http.StatusUnauthorized},
		{ErrCodeLoginRejected, http.StatusUnauthorized},
		{ErrCodeConfigMissing, http.StatusInternalServerError},
		{ErrCodeServiceError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestNewJSONErrorResponse(t *testing.T) {
	resp := NewJSONErrorResponse(LoginRejectedError("login token rejected"))

	if resp.Error.Code != "login_rejected" {
		t.Errorf("Code = %q", resp.Error.Code)
	}
	if resp.Error.Message != "login token rejected" {
		t.Errorf("Message = %q", resp.Error.Message)
	}
}
