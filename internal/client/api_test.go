package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/config"
	"lumen/internal/credstore"
	"lumen/pkg/apierror"
)

func newTestAPI(t *testing.T, handler http.Handler) (*API, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
		RetryAttempts:  1,
	}
	return NewAPI(NewExecutor(cfg)), server
}

func TestExchangeAssertion(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/signin", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "the sign-in exchange is unauthenticated")

		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "identity-token-abc", req.IdentityAssertion)

		json.NewEncoder(w).Encode(signInResponse{
			AccessToken:      "session-token-xyz",
			ExpiresInSeconds: 3600,
			User:             credstore.User{ID: "u-42", Email: "pat@example.com", Name: "Pat"},
		})
	}))

	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	api.now = func() time.Time { return base }

	cred, err := api.ExchangeAssertion(context.Background(), "identity-token-abc")
	require.NoError(t, err)
	assert.Equal(t, "session-token-xyz", cred.AccessToken)
	assert.Equal(t, "u-42", cred.User.ID)
	assert.Equal(t, "pat@example.com", cred.User.Email)
	assert.Equal(t, base.Add(time.Hour), cred.ExpiresAt)
	assert.True(t, cred.Complete())
}

func TestExchangeAssertion_MissingTokenIsDecodingError(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"expiresInSeconds": 3600,
			"user":             map[string]string{"id": "u-1", "email": "x@example.com"},
		})
	}))

	_, err := api.ExchangeAssertion(context.Background(), "assertion")
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindDecodingError))
}

func TestExchangeAssertion_RejectedAssertion(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "assertion expired"})
	}))

	_, err := api.ExchangeAssertion(context.Background(), "stale-assertion")
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindUnauthorized))
	assert.Contains(t, err.Error(), "assertion expired")
}

func TestCreateEnhancement(t *testing.T) {
	created := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/enhancements", r.URL.Path)
		require.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		var req CreateEnhancementRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "photo", req.Kind)
		assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, req.Payload)

		json.NewEncoder(w).Encode(Enhancement{
			ID: "enh-1", Kind: "photo", Status: "processing", CreatedAt: created,
		})
	}))

	src := &fakeCredentialSource{}
	src.setCredential("session-token")
	api.exec.BindCredentialSource(src)

	enh, err := api.CreateEnhancement(context.Background(), CreateEnhancementRequest{
		Kind:     "photo",
		Payload:  []byte{0xFF, 0xD8, 0xFF},
		MimeType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "enh-1", enh.ID)
	assert.Equal(t, "processing", enh.Status)
	assert.True(t, enh.CreatedAt.Equal(created))
}

func TestGetEnhancement(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/enhancements/enh-7", r.URL.Path)
		json.NewEncoder(w).Encode(Enhancement{
			ID: "enh-7", Kind: "audio", Status: "done",
			Transcript: "hello world",
			Insights:   []Insight{{Title: "Summary", Body: "a greeting"}},
		})
	}))

	src := &fakeCredentialSource{}
	src.setCredential("session-token")
	api.exec.BindCredentialSource(src)

	enh, err := api.GetEnhancement(context.Background(), "enh-7")
	require.NoError(t, err)
	assert.Equal(t, "hello world", enh.Transcript)
	require.Len(t, enh.Insights, 1)
	assert.Equal(t, "Summary", enh.Insights[0].Title)
}

func TestListEnhancements(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/enhancements", r.URL.Path)
		json.NewEncoder(w).Encode([]Enhancement{
			{ID: "enh-1", Kind: "photo", Status: "done"},
			{ID: "enh-2", Kind: "audio", Status: "processing"},
		})
	}))

	src := &fakeCredentialSource{}
	src.setCredential("session-token")
	api.exec.BindCredentialSource(src)

	enhancements, err := api.ListEnhancements(context.Background())
	require.NoError(t, err)
	require.Len(t, enhancements, 2)
	assert.Equal(t, "enh-2", enhancements[1].ID)
}

func TestHealth_NoCredentialRequired(t *testing.T) {
	api, _ := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(HealthStatus{Status: "ok", Version: "1.4.2"})
	}))

	status, err := api.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.4.2", status.Version)
}
