package icelandauth

import (
	"github.com/djgunni86/icelandauth/internal/core/domain"
)

// Re-export error types from domain package for embedding applications
type ErrorCode = domain.ErrorCode
type AppError = domain.AppError
type JSONErrorResponse = domain.JSONErrorResponse
type JSONErrorDetail = domain.JSONErrorDetail

// Re-export error code constants
const (
	ErrCodeConfigMissing    = domain.ErrCodeConfigMissing
	ErrCodeTokenInvalid     = domain.ErrCodeTokenInvalid
	ErrCodeSignatureInvalid = domain.ErrCodeSignatureInvalid
	ErrCodeCertUntrusted    = domain.ErrCodeCertUntrusted
	ErrCodeLoginRejected    = domain.ErrCodeLoginRejected
	ErrCodeServiceError     = domain.ErrCodeServiceError
	ErrCodeBadRequest       = domain.ErrCodeBadRequest
)

// Re-export error constructors
var (
	ConfigError          = domain.ConfigError
	TokenError           = domain.TokenError
	SignatureError       = domain.SignatureError
	LoginRejectedError   = domain.LoginRejectedError
	BadRequestError      = domain.BadRequestError
	ServiceError         = domain.ServiceError
	NewJSONErrorResponse = domain.NewJSONErrorResponse
)
