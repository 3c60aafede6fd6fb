package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors, raised before any command reaches the store.
const (
	// ErrCodeInvalidInput indicates an argument was rejected locally (null key, bad TTL, ...).
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the key holds no value.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Transport errors (retryable unless the server rejected the command)
const (
	// ErrCodeConnectionFailed indicates the store could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the round trip exceeded the caller's deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeCommandFailed indicates the store answered with an error reply.
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"
	// ErrCodeTransactionAborted indicates a MULTI/EXEC block was not applied.
	ErrCodeTransactionAborted ErrorCode = "TRANSACTION_ABORTED"
)

// Codec errors
const (
	// ErrCodeEncodeFailed indicates a value could not be serialized.
	ErrCodeEncodeFailed ErrorCode = "ENCODE_FAILED"
	// ErrCodeDecodeFailed indicates a stored payload could not be deserialized.
	ErrCodeDecodeFailed ErrorCode = "DECODE_FAILED"
)

// ErrCodeInternal indicates an unexpected failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeTransactionAborted: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// IsTransportCode reports whether code describes a failure between the
// caller and the store, as opposed to a local validation or codec failure.
func IsTransportCode(code ErrorCode) bool {
	switch code {
	case ErrCodeConnectionFailed, ErrCodeTimeout, ErrCodeCommandFailed, ErrCodeTransactionAborted:
		return true
	}
	return false
}
