package apierror

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRecoverableSetIsClosed(t *testing.T) {
	recoverable := map[Kind]bool{
		KindRateLimited:        true,
		KindServerError:        true,
		KindServiceUnavailable: true,
		KindTransport:          true,
	}

	all := []Kind{
		KindInvalidAssertion, KindUnauthorized, KindBadRequest, KindNotFound,
		KindRateLimited, KindServerError, KindServiceUnavailable, KindTransport,
		KindNetworkError, KindDecodingError, KindNoConnection,
		KindUnexpectedStatus, KindStorageFault, KindNoBackendConfigured,
	}
	for _, kind := range all {
		e := New(kind, "x")
		if got, want := e.Recoverable(), recoverable[kind]; got != want {
			t.Errorf("%s: Recoverable() = %v, want %v", kind, got, want)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := KindRateLimited.String(); got != "RateLimited" {
		t.Errorf("String() = %q", got)
	}
	if got := Kind(999).String(); got != "Unknown" {
		t.Errorf("String() = %q for out-of-range kind", got)
	}
}

func TestErrorFormatting(t *testing.T) {
	e := New(KindNotFound, "enhancement %s not found", "enh-1")
	if got := e.Error(); got != "NotFound: enhancement enh-1 not found" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("dial tcp: connection refused")
	wrapped := &Error{Kind: KindTransport, Err: cause}
	if got := wrapped.Error(); got != "Transport: dial tcp: connection refused" {
		t.Errorf("Error() = %q", got)
	}

	bare := &Error{Kind: KindUnauthorized}
	if got := bare.Error(); got != "Unauthorized" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapPreservesChain(t *testing.T) {
	cause := errors.New("root cause")
	e := Wrap(KindStorageFault, cause, "write failed")

	if !errors.Is(e, cause) {
		t.Error("errors.Is must see through the classified error")
	}

	// A further fmt.Errorf layer must not hide the classification.
	outer := fmt.Errorf("saving credential: %w", e)
	if !IsKind(outer, KindStorageFault) {
		t.Error("IsKind must see through outer wrapping")
	}
	if As(outer) == nil {
		t.Error("As must extract the classified error from a chain")
	}
}

func TestAsAndIsKind_UnclassifiedError(t *testing.T) {
	plain := errors.New("plain")
	if As(plain) != nil {
		t.Error("As on an unclassified error must return nil")
	}
	if IsKind(plain, KindTransport) {
		t.Error("IsKind on an unclassified error must be false")
	}
	if IsKind(nil, KindTransport) {
		t.Error("IsKind(nil) must be false")
	}
}

func TestFromStatus(t *testing.T) {
	e := FromStatus(KindRateLimited, 429, "slow down")
	if e.StatusCode != 429 || e.Kind != KindRateLimited || e.Message != "slow down" {
		t.Errorf("FromStatus() = %+v", e)
	}
	e.RetryAfter = 30 * time.Second
	if !e.Recoverable() {
		t.Error("rate limited must stay recoverable with a RetryAfter hint")
	}
}
