package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"lumen/internal/config"
	"lumen/internal/credstore"
	"lumen/internal/netcheck"
	"lumen/pkg/apierror"
	"lumen/pkg/logging"
)

// Backoff base delays per fault class. Attempt n (1-indexed) waits
// n x base before attempt n+1; rate-limit backoff is steeper than generic
// transport backoff, and a server-supplied Retry-After may extend it.
const (
	transportBaseDelay = 1 * time.Second
	rateLimitBaseDelay = 2 * time.Second
)

// CredentialSource supplies bearer credentials for authenticated requests.
// Implemented by the token authority.
type CredentialSource interface {
	CurrentCredential() *credstore.Credential
	EnsureFresh(ctx context.Context) bool
}

// ConnectivityChecker exposes the advisory reachability signal.
// Implemented by the netcheck monitor.
type ConnectivityChecker interface {
	Current() netcheck.Status
}

// Executor executes one logical API call end-to-end: credential injection,
// dispatch, outcome classification, and the retry/backoff state machine.
type Executor struct {
	baseURL        string
	httpClient     *http.Client
	creds          CredentialSource
	connectivity   ConnectivityChecker
	attempts       int
	defaultTimeout time.Duration

	// sleep waits between attempts; injectable so tests do not wait out
	// real backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) ExecutorOption {
	return func(e *Executor) { e.httpClient = c }
}

// WithConnectivity wires the advisory reachability signal.
func WithConnectivity(c ConnectivityChecker) ExecutorOption {
	return func(e *Executor) { e.connectivity = c }
}

// WithSleeper overrides the inter-attempt wait. Used by tests.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) ExecutorOption {
	return func(e *Executor) { e.sleep = sleep }
}

// NewExecutor creates an Executor for the configured backend.
func NewExecutor(cfg *config.Config, opts ...ExecutorOption) *Executor {
	e := &Executor{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:     &http.Client{},
		attempts:       cfg.RetryAttempts,
		defaultTimeout: cfg.RequestTimeout,
		sleep:          sleepWithContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BindCredentialSource wires the token authority. The executor is usable for
// unauthenticated requests (sign-in, health) before this is called; the
// sign-in exchange itself runs through this executor, which is why the
// source is bound after construction.
func (e *Executor) BindCredentialSource(src CredentialSource) {
	e.creds = src
}

// Execute runs one logical call described by desc and returns the successful
// response body, or exactly one classified error.
//
// Recoverable faults (rate limits, 5xx, transient transport errors) are
// retried up to the budget with linear per-class backoff. A first 401 on an
// authenticated call triggers exactly one refresh-then-retry; a second 401
// is terminal. Retries are strictly sequential, and each attempt dispatches
// a freshly built request with a freshly injected credential.
func (e *Executor) Execute(ctx context.Context, desc Descriptor) ([]byte, error) {
	if desc.RequiresAuth {
		if e.credential(ctx) == nil {
			// Zero network side effects on early Unauthorized.
			return nil, apierror.New(apierror.KindUnauthorized, "no usable credential; sign in required")
		}
	}

	if e.connectivity != nil && !e.connectivity.Current().Reachable {
		return nil, apierror.New(apierror.KindNoConnection, "network unreachable")
	}

	refreshed := false

	for attempt := 1; attempt <= e.attempts; attempt++ {
		body, apiErr := e.dispatch(ctx, desc)
		if apiErr == nil {
			return body, nil
		}

		// One-shot refresh-then-retry on the first 401 of this logical
		// call. The retry does not consume recoverable-fault budget.
		if apiErr.Kind == apierror.KindUnauthorized && desc.RequiresAuth && !refreshed {
			refreshed = true
			if e.creds != nil && e.creds.EnsureFresh(ctx) {
				logging.Debug("Executor", "Credential refreshed after 401, retrying %s %s",
					desc.Method, desc.Path)
				attempt--
				continue
			}
			return nil, apierror.FromStatus(apierror.KindUnauthorized, apiErr.StatusCode,
				"authorization rejected and credential refresh failed")
		}

		if !apiErr.Recoverable() || attempt == e.attempts {
			return nil, apiErr
		}

		delay := backoffDelay(attempt, apiErr)
		logging.Debug("Executor", "Attempt %d/%d for %s %s failed (%s), retrying in %s",
			attempt, e.attempts, desc.Method, desc.Path, apiErr.Kind, delay)
		if err := e.sleep(ctx, delay); err != nil {
			// Cancellation during backoff aborts without consuming budget.
			return nil, apierror.Wrap(apierror.KindNetworkError, err, "request canceled")
		}
	}

	// Unreachable: the final attempt always returns above.
	return nil, apierror.New(apierror.KindNetworkError, "retry budget exhausted")
}

// ExecuteJSON runs Execute and decodes the successful body into out.
// A malformed successful response is a terminal decoding error; it is never
// retried because it will not fix itself.
func (e *Executor) ExecuteJSON(ctx context.Context, desc Descriptor, out interface{}) error {
	body, err := e.Execute(ctx, desc)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apierror.Wrap(apierror.KindDecodingError, err, "failed to decode response body")
	}
	return nil
}

// dispatch performs a single attempt: build, send, classify.
func (e *Executor) dispatch(ctx context.Context, desc Descriptor) ([]byte, *apierror.Error) {
	timeout := desc.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, apiErr := e.buildRequest(attemptCtx, desc)
	if apiErr != nil {
		return nil, apiErr
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, classifyStatus(resp.StatusCode, body, resp.Header)
}

// buildRequest materializes a fresh wire request from the descriptor.
// Called once per attempt so no header carries a now-stale credential.
func (e *Executor) buildRequest(ctx context.Context, desc Descriptor) (*http.Request, *apierror.Error) {
	var body io.Reader
	if desc.Body != nil {
		body = bytes.NewReader(desc.Body)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, e.baseURL+desc.Path, body)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindNetworkError, err, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if desc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if desc.RequiresAuth {
		cred := e.credential(ctx)
		if cred == nil {
			return nil, apierror.New(apierror.KindUnauthorized, "credential expired mid-call")
		}
		req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	}
	return req, nil
}

// credential fetches a usable credential, asking the authority to refresh
// once when none is immediately available.
func (e *Executor) credential(ctx context.Context) *credstore.Credential {
	if e.creds == nil {
		return nil
	}
	if cred := e.creds.CurrentCredential(); cred != nil {
		return cred
	}
	if !e.creds.EnsureFresh(ctx) {
		return nil
	}
	return e.creds.CurrentCredential()
}

// backoffDelay computes the wait after attempt n (1-indexed): n x base for
// the fault class, extended by the server's Retry-After hint when larger.
func backoffDelay(attempt int, apiErr *apierror.Error) time.Duration {
	base := transportBaseDelay
	if apiErr.Kind == apierror.KindRateLimited {
		base = rateLimitBaseDelay
	}
	delay := time.Duration(attempt) * base
	if apiErr.RetryAfter > delay {
		delay = apiErr.RetryAfter
	}
	return delay
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
