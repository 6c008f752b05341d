package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents application error codes
type ErrorCode int

const (
	// Client errors (4xx)
	ErrCodeBadRequest   ErrorCode = 400
	ErrCodeUnauthorized ErrorCode = 401
	ErrCodeForbidden    ErrorCode = 403
	ErrCodeNotFound     ErrorCode = 404

	// Key and parameter validation failures
	ErrCodeInvalidKey        ErrorCode = 420
	ErrCodeInvalidKeyShape   ErrorCode = 421
	ErrCodeNonInvertibleKey  ErrorCode = 422
	ErrCodeMalformedAlphabet ErrorCode = 423
	ErrCodeUnknownCipher     ErrorCode = 424

	// Server errors (5xx)
	ErrCodeInternal ErrorCode = 500
)

// Sentinels for errors.Is; any AppError with the same code matches.
var (
	ErrInvalidKey        = &AppError{Code: ErrCodeInvalidKey, Message: "invalid key", HTTPStatus: http.StatusBadRequest}
	ErrInvalidKeyShape   = &AppError{Code: ErrCodeInvalidKeyShape, Message: "invalid key shape", HTTPStatus: http.StatusBadRequest}
	ErrNonInvertibleKey  = &AppError{Code: ErrCodeNonInvertibleKey, Message: "key is not invertible mod 26", HTTPStatus: http.StatusBadRequest}
	ErrMalformedAlphabet = &AppError{Code: ErrCodeMalformedAlphabet, Message: "malformed substitution alphabet", HTTPStatus: http.StatusBadRequest}
	ErrUnknownCipher     = &AppError{Code: ErrCodeUnknownCipher, Message: "unknown cipher", HTTPStatus: http.StatusNotFound}
)

// AppError represents a structured application error
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError carrying the same code
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// As extracts the first AppError in err's chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is is errors.Is, re-exported so callers need not import both packages
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// NewBadRequest creates a bad request error
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewBadRequestWithCause creates a bad request error with cause
func NewBadRequestWithCause(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUnauthorized creates an unauthorized error
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       ErrCodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewNotFound creates a not found error
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:       ErrCodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInternal creates an internal server error
func NewInternal(message string) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewInternalWithCause creates an internal server error with cause
func NewInternalWithCause(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewInvalidKey reports an empty or unusable key
func NewInvalidKey(message string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidKey,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInvalidKeyShape reports a key whose length cannot form the required matrix
func NewInvalidKeyShape(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidKeyShape,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNonInvertibleKey reports a key with no inverse mod 26
func NewNonInvertibleKey(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeNonInvertibleKey,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewMalformedAlphabet reports a substitution alphabet that is not 26 letters
func NewMalformedAlphabet(message string) *AppError {
	return &AppError{
		Code:       ErrCodeMalformedAlphabet,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnknownCipher reports a cipher name missing from the registry
func NewUnknownCipher(name string) *AppError {
	return &AppError{
		Code:       ErrCodeUnknownCipher,
		Message:    fmt.Sprintf("unknown cipher: %s", name),
		HTTPStatus: http.StatusNotFound,
	}
}

// ToHTTPStatus converts an error to HTTP status code
func ToHTTPStatus(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// ToJSON converts an error to JSON bytes
func ToJSON(err error) []byte {
	if appErr, ok := As(err); ok {
		data, _ := json.Marshal(map[string]interface{}{
			"code": appErr.Code,
			"msg":  appErr.Message,
		})
		return data
	}
	data, _ := json.Marshal(map[string]interface{}{
		"code": ErrCodeInternal,
		"msg":  err.Error(),
	})
	return data
}
