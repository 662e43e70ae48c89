package domain

import (
	"fmt"
	"net/http"
)

// ErrorCode represents categorized error types.
// These codes are stable and can be used for programmatic error handling.
type ErrorCode string

const (
	ErrCodeConfigMissing    ErrorCode = "config_missing"
	ErrCodeTokenInvalid     ErrorCode = "token_invalid"
	ErrCodeSignatureInvalid ErrorCode = "signature_invalid"
	ErrCodeCertUntrusted    ErrorCode = "cert_untrusted"
	ErrCodeLoginRejected    ErrorCode = "login_rejected"
	ErrCodeServiceError     ErrorCode = "service_error"
	ErrCodeBadRequest       ErrorCode = "bad_request"
)

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// AppError is a structured error with code, message, and optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the HTTP status code for this error code.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeTokenInvalid, ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeSignatureInvalid, ErrCodeCertUntrusted, ErrCodeLoginRejected:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Title returns a user-friendly title for this error code.
func (c ErrorCode) Title() string {
	switch c {
	case ErrCodeConfigMissing:
		return "Configuration Error"
	case ErrCodeTokenInvalid:
		return "Invalid Token"
	case ErrCodeSignatureInvalid:
		return "Signature Invalid"
	case ErrCodeCertUntrusted:
		return "Certificate Untrusted"
	case ErrCodeLoginRejected:
		return "Login Rejected"
	case ErrCodeServiceError:
		return "Service Error"
	case ErrCodeBadRequest:
		return "Invalid Request"
	default:
		return "Error"
	}
}

// JSONErrorResponse is the standard JSON error format for API endpoints.
type JSONErrorResponse struct {
	Error JSONErrorDetail `json:"error"`
}

// JSONErrorDetail contains error details.
type JSONErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewJSONErrorResponse creates a JSON error response from an AppError.
func NewJSONErrorResponse(err *AppError) JSONErrorResponse {
	return JSONErrorResponse{
		Error: JSONErrorDetail{
			Code:    err.Code.String(),
			Message: err.Message,
		},
	}
}

// ConfigError creates a configuration error.
func ConfigError(message string) *AppError {
	return &AppError{Code: ErrCodeConfigMissing, Message: message}
}

// TokenError creates a decode-tier token error with optional cause.
func TokenError(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeTokenInvalid, Message: message, Cause: cause}
}

// SignatureError creates a signature verification error with optional cause.
func SignatureError(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeSignatureInvalid, Message: message, Cause: cause}
}

// LoginRejectedError creates a business-validation rejection error.
func LoginRejectedError(message string) *AppError {
	return &AppError{Code: ErrCodeLoginRejected, Message: message}
}

// BadRequestError creates a bad request error.
func BadRequestError(message string) *AppError {
	return &AppError{Code: ErrCodeBadRequest, Message: message}
}

// ServiceError creates a service error.
func ServiceError(message string) *AppError {
	return &AppError{Code: ErrCodeServiceError, Message: message}
}

// MalformedFormatError reports a structurally incomplete token, such as a
// response without a signature or certificate element.
func MalformedFormatError(message string) *AppError {
	return &AppError{Code: ErrCodeTokenInvalid, Message: fmt.Sprintf("malformed response: %s", message)}
}
