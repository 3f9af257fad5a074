package client

import (
	"encoding/json"
	"time"

	"lumen/pkg/apierror"
)

// Descriptor describes one wire request. It is immutable once built: a retry
// materializes a fresh http.Request (with a freshly injected credential)
// from the same Descriptor rather than mutating a prior request.
//
// Descriptors are assumed idempotent for retry purposes.
type Descriptor struct {
	// Path is the target path relative to the configured base URL.
	Path string

	// Method is the HTTP method.
	Method string

	// Body is the request body, already encoded. Nil means no body.
	Body []byte

	// RequiresAuth marks the request as needing a bearer credential.
	RequiresAuth bool

	// Timeout bounds a single dispatch attempt. Zero selects the
	// executor's configured default.
	Timeout time.Duration
}

// NewDescriptor builds a body-less request descriptor.
func NewDescriptor(method, path string, requiresAuth bool) Descriptor {
	return Descriptor{Method: method, Path: path, RequiresAuth: requiresAuth}
}

// NewJSONDescriptor builds a request descriptor carrying a JSON-encoded body.
func NewJSONDescriptor(method, path string, body interface{}, requiresAuth bool) (Descriptor, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return Descriptor{}, apierror.Wrap(apierror.KindDecodingError, err, "failed to encode request body")
	}
	return Descriptor{Method: method, Path: path, Body: data, RequiresAuth: requiresAuth}, nil
}
