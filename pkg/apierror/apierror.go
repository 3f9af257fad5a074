package apierror

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failed API interaction. Every error produced by the
// client subsystem carries exactly one Kind; callers branch on it to decide
// how to present the failure to the user.
type Kind int

const (
	// KindInvalidAssertion indicates the sign-in identity assertion was rejected.
	KindInvalidAssertion Kind = iota

	// KindUnauthorized indicates the request lacked a usable credential, or the
	// server rejected the credential even after a refresh attempt.
	KindUnauthorized

	// KindBadRequest indicates the server rejected the request as malformed (400).
	KindBadRequest

	// KindNotFound indicates the requested resource does not exist (404).
	KindNotFound

	// KindRateLimited indicates the server is throttling this client (429).
	KindRateLimited

	// KindServerError indicates a server-side failure (500-599).
	KindServerError

	// KindServiceUnavailable indicates the known "service temporarily
	// unavailable" condition reported by the backend.
	KindServiceUnavailable

	// KindTransport indicates a transient transport-level failure
	// (timeout, DNS failure, connection refused, offline).
	KindTransport

	// KindNetworkError indicates a non-transient transport failure,
	// including caller-initiated cancellation.
	KindNetworkError

	// KindDecodingError indicates a successful response whose body could not
	// be decoded into the caller-declared shape.
	KindDecodingError

	// KindNoConnection indicates the connectivity monitor reported the
	// network as unreachable before any dispatch was attempted.
	KindNoConnection

	// KindUnexpectedStatus indicates a status code outside the classified set.
	KindUnexpectedStatus

	// KindStorageFault indicates the credential store rejected a read or write.
	KindStorageFault

	// KindNoBackendConfigured indicates no transport is wired for the
	// requested exchange.
	KindNoBackendConfigured
)

// String makes Kind satisfy the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindInvalidAssertion:
		return "InvalidAssertion"
	case KindUnauthorized:
		return "Unauthorized"
	case KindBadRequest:
		return "BadRequest"
	case KindNotFound:
		return "NotFound"
	case KindRateLimited:
		return "RateLimited"
	case KindServerError:
		return "ServerError"
	case KindServiceUnavailable:
		return "ServiceUnavailable"
	case KindTransport:
		return "Transport"
	case KindNetworkError:
		return "NetworkError"
	case KindDecodingError:
		return "DecodingError"
	case KindNoConnection:
		return "NoConnection"
	case KindUnexpectedStatus:
		return "UnexpectedStatus"
	case KindStorageFault:
		return "StorageFault"
	case KindNoBackendConfigured:
		return "NoBackendConfigured"
	default:
		return "Unknown"
	}
}

// FieldError describes a single field rejected by server-side validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the classified outcome of a failed API interaction.
// It preserves the Kind precisely enough for a UI layer to map each terminal
// kind to a short human message.
type Error struct {
	// Kind is the classification of this failure.
	Kind Kind

	// Message is a human-readable description.
	Message string

	// StatusCode is the HTTP status that produced this error, if any.
	StatusCode int

	// RetryAfter is a server-supplied backoff hint (zero when absent).
	RetryAfter time.Duration

	// Validation carries structured validation detail for BadRequest errors.
	Validation []FieldError

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Recoverable reports whether this error's fault class is eligible for
// internal retry. The recoverable set is closed: rate limits, server-side
// failures, and transient transport faults. Everything else must surface to
// the caller.
//
// This classifies the fault for the request executor's retry loop. An error a
// caller receives has already had the retry budget applied, so a true result
// on a surfaced error is not an invitation to retry again; branch on Kind for
// presentation instead.
func (e *Error) Recoverable() bool {
	switch e.Kind {
	case KindRateLimited, KindServerError, KindServiceUnavailable, KindTransport:
		return true
	default:
		return false
	}
}

// New creates a classified error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a classified error around an underlying cause.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// FromStatus creates a classified error carrying the originating status code.
func FromStatus(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, StatusCode: status, Message: message}
}

// As extracts an *Error from an error chain.
// Returns nil if the chain contains no classified error.
func As(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsKind reports whether the error chain contains a classified error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	apiErr := As(err)
	return apiErr != nil && apiErr.Kind == kind
}
