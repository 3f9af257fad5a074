package client

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"lumen/pkg/apierror"
)

// serviceUnavailableMarker is the known backend message for the "service
// temporarily unavailable" condition. Responses carrying it are classified
// KindServiceUnavailable but stay in the recoverable set like any other 5xx.
const serviceUnavailableMarker = "service temporarily unavailable"

// errorEnvelope is the generic error shape returned by the backend.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// validationEnvelope is the structured shape of a 400 validation failure.
type validationEnvelope struct {
	Message          string                `json:"message"`
	ValidationErrors []apierror.FieldError `json:"validationErrors"`
}

// classifyStatus turns a non-2xx response into exactly one classified error.
// Every dispatch produces exactly one outcome; no status is left ambiguous.
func classifyStatus(status int, body []byte, header http.Header) *apierror.Error {
	switch {
	case status == http.StatusBadRequest:
		return classifyBadRequest(body)

	case status == http.StatusUnauthorized:
		e := apierror.FromStatus(apierror.KindUnauthorized, status, errorMessage(body, "authorization rejected"))
		return e

	case status == http.StatusNotFound:
		return apierror.FromStatus(apierror.KindNotFound, status, errorMessage(body, "resource not found"))

	case status == http.StatusTooManyRequests:
		e := apierror.FromStatus(apierror.KindRateLimited, status, errorMessage(body, "rate limited"))
		e.RetryAfter = parseRetryAfter(header.Get("Retry-After"))
		return e

	case status >= 500 && status <= 599:
		msg := errorMessage(body, http.StatusText(status))
		kind := apierror.KindServerError
		if strings.Contains(strings.ToLower(msg), serviceUnavailableMarker) ||
			strings.Contains(strings.ToLower(string(body)), serviceUnavailableMarker) {
			kind = apierror.KindServiceUnavailable
		}
		return apierror.FromStatus(kind, status, msg)

	default:
		return apierror.FromStatus(apierror.KindUnexpectedStatus, status,
			"unexpected status "+strconv.Itoa(status))
	}
}

// classifyBadRequest distinguishes a structured validation failure from a
// generic 400 message.
func classifyBadRequest(body []byte) *apierror.Error {
	e := apierror.FromStatus(apierror.KindBadRequest, http.StatusBadRequest, "")

	// Candidate decoders in fixed priority: the validation envelope wins if
	// it parses with detail, then the generic envelope, then raw text.
	var vEnv validationEnvelope
	if err := json.Unmarshal(body, &vEnv); err == nil && len(vEnv.ValidationErrors) > 0 {
		e.Validation = vEnv.ValidationErrors
		e.Message = vEnv.Message
		if e.Message == "" {
			e.Message = "request validation failed"
		}
		return e
	}

	e.Message = errorMessage(body, "bad request")
	return e
}

// errorMessage extracts a human-readable message from an error response
// body. Candidate decoders are tried in fixed priority with the first
// success winning: the generic error envelope, then raw text, then the
// supplied fallback. A genuine decode ambiguity is never swallowed silently;
// the raw text is preserved.
func errorMessage(body []byte, fallback string) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 512 {
		return text
	}
	return fallback
}

// classifyTransportError maps a failed dispatch (no HTTP response at all)
// onto the fault taxonomy. Timeouts, DNS failures, refused connections and
// unreachable networks are transient and recoverable; everything else,
// including caller-initiated cancellation, is terminal.
func classifyTransportError(ctx context.Context, err error) *apierror.Error {
	// Caller cancellation aborts the logical call outright; it must not be
	// confused with a transient fault and retried.
	if ctx.Err() == context.Canceled || errors.Is(err, context.Canceled) {
		return apierror.Wrap(apierror.KindNetworkError, err, "request canceled")
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apierror.Wrap(apierror.KindTransport, err, "request timed out")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apierror.Wrap(apierror.KindTransport, err, "request timed out")
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apierror.Wrap(apierror.KindTransport, err, "DNS lookup failed")
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) {
		return apierror.Wrap(apierror.KindTransport, err, "connection failed")
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return apierror.Wrap(apierror.KindTransport, err, "network operation failed")
	}

	return apierror.Wrap(apierror.KindNetworkError, err, "transport failure")
}

// parseRetryAfter parses a Retry-After header value: either delay seconds or
// an HTTP date. Returns zero when absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
