package client

import (
	"context"
	"net/http"
	"time"

	"lumen/internal/credstore"
	"lumen/pkg/apierror"
	"lumen/pkg/logging"
)

// API endpoint paths. Protected endpoints live under the versioned prefix;
// the health endpoint does not and requires no credential.
const (
	apiPrefix        = "/api/v1"
	signInPath       = apiPrefix + "/auth/signin"
	enhancementsPath = apiPrefix + "/enhancements"
	healthPath       = "/health"
)

// signInRequest is the body of the sign-in exchange.
type signInRequest struct {
	IdentityAssertion string `json:"identityAssertion"`
}

// signInResponse is the backend's answer to a successful sign-in exchange.
type signInResponse struct {
	AccessToken      string         `json:"accessToken"`
	ExpiresInSeconds int            `json:"expiresInSeconds"`
	User             credstore.User `json:"user"`
}

// Insight is one piece of analysis the backend derived from a capture.
type Insight struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Enhancement is a processed capture: the transcript and insights the
// backend produced from an uploaded photo/audio payload.
type Enhancement struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	Transcript string    `json:"transcript,omitempty"`
	Insights   []Insight `json:"insights,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateEnhancementRequest carries a captured payload to the backend.
// The payload bytes come from external capture subsystems; this client only
// transports them.
type CreateEnhancementRequest struct {
	// Kind is the capture kind: "photo" or "audio".
	Kind string `json:"kind"`

	// Payload is the captured bytes; encoded as base64 on the wire.
	Payload []byte `json:"payload"`

	// MimeType describes the payload encoding, e.g. "image/jpeg".
	MimeType string `json:"mimeType"`

	// Notes is optional free-form context from the user.
	Notes string `json:"notes,omitempty"`
}

// HealthStatus is the liveness report of the backend.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// API exposes the typed Lumen operations over the request executor.
type API struct {
	exec *Executor

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewAPI creates the typed API surface over the given executor.
func NewAPI(exec *Executor) *API {
	return &API{exec: exec, now: time.Now}
}

// ExchangeAssertion performs the sign-in exchange: an external identity
// token in, a full Credential out. Satisfies the token authority's Exchanger
// interface. The exchange itself is unauthenticated and runs through the
// regular executor, so it gets the same retry and classification behavior as
// every other call.
func (a *API) ExchangeAssertion(ctx context.Context, assertion string) (*credstore.Credential, error) {
	desc, err := NewJSONDescriptor(http.MethodPost, signInPath, signInRequest{IdentityAssertion: assertion}, false)
	if err != nil {
		return nil, err
	}

	var resp signInResponse
	if err := a.exec.ExecuteJSON(ctx, desc, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.ExpiresInSeconds <= 0 {
		return nil, apierror.New(apierror.KindDecodingError, "sign-in response missing token or expiry")
	}

	cred := &credstore.Credential{
		User:        resp.User,
		AccessToken: resp.AccessToken,
		ExpiresAt:   a.now().Add(time.Duration(resp.ExpiresInSeconds) * time.Second),
	}
	logging.Debug("Executor", "Sign-in exchange succeeded for %s (expires in %ds)",
		resp.User.Email, resp.ExpiresInSeconds)
	return cred, nil
}

// CreateEnhancement uploads a captured payload for processing.
func (a *API) CreateEnhancement(ctx context.Context, req CreateEnhancementRequest) (*Enhancement, error) {
	desc, err := NewJSONDescriptor(http.MethodPost, enhancementsPath, req, true)
	if err != nil {
		return nil, err
	}

	var enh Enhancement
	if err := a.exec.ExecuteJSON(ctx, desc, &enh); err != nil {
		return nil, err
	}
	return &enh, nil
}

// GetEnhancement fetches a single enhancement by ID.
func (a *API) GetEnhancement(ctx context.Context, id string) (*Enhancement, error) {
	desc := NewDescriptor(http.MethodGet, enhancementsPath+"/"+id, true)

	var enh Enhancement
	if err := a.exec.ExecuteJSON(ctx, desc, &enh); err != nil {
		return nil, err
	}
	return &enh, nil
}

// ListEnhancements fetches all enhancements for the authenticated user.
func (a *API) ListEnhancements(ctx context.Context) ([]Enhancement, error) {
	desc := NewDescriptor(http.MethodGet, enhancementsPath, true)

	var enhancements []Enhancement
	if err := a.exec.ExecuteJSON(ctx, desc, &enhancements); err != nil {
		return nil, err
	}
	return enhancements, nil
}

// Health checks backend liveness. No credential is required.
func (a *API) Health(ctx context.Context) (*HealthStatus, error) {
	desc := NewDescriptor(http.MethodGet, healthPath, false)

	var status HealthStatus
	if err := a.exec.ExecuteJSON(ctx, desc, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
