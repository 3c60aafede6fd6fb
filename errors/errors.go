package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Validation ---

// InvalidInput creates an AppError for an argument rejected before any network call.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates an AppError for struct validation failures.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// NullKey is the validation error raised for operations that require a key.
func NullKey(operation string) *AppError {
	return InvalidInput("key", "key cannot be null").WithDetail("operation", operation)
}

// NotFound creates an AppError for a key that holds no value.
func NotFound(key string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: "The requested key was not found.",
		Details: map[string]any{"key": key},
	}
}

// --- Transport ---

// ConnectionFailed creates an AppError for a store that could not be reached.
func ConnectionFailed(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: "Unable to reach the redis server.",
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": operation},
	}
}

// Timeout creates an AppError for a command that exceeded its deadline.
func Timeout(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The redis command did not complete in time.",
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": operation},
	}
}

// CommandFailed creates an AppError for an error reply from the store.
func CommandFailed(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeCommandFailed, Message: fmt.Sprintf("The redis server rejected %s.", operation),
		Cause:   cause,
		Details: map[string]any{"operation": operation},
	}
}

// TransactionAborted creates an AppError for a MULTI/EXEC block that was not applied.
func TransactionAborted(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransactionAborted, Message: "The redis transaction was not applied.",
		Retryable: true, Cause: cause,
		Details: map[string]any{"operation": operation},
	}
}

// --- Codec ---

// EncodeFailed creates an AppError for a value the named codec could not serialize.
func EncodeFailed(codec string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeEncodeFailed, Message: fmt.Sprintf("Failed to encode value as %s.", codec),
		Cause:   cause,
		Details: map[string]any{"codec": codec},
	}
}

// DecodeFailed creates an AppError for a payload the named codec could not deserialize.
func DecodeFailed(codec string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDecodeFailed, Message: fmt.Sprintf("Failed to decode %s payload.", codec),
		Cause:   cause,
		Details: map[string]any{"codec": codec},
	}
}

// Internal creates an AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether err's chain contains an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
