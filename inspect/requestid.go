package inspect

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/signalis/junction/mux"
)

// RequestIDConfig configures the request ID inspector behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the current request, allowing ID generation based on
	// request context. Defaults to GenerateUUIDv4.
	GenerateFunc func(r *http.Request) string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestID returns an inspector that generates or propagates a request ID
// header. The request hook sets the ID on the request header for downstream
// inspectors and handlers; the response hook copies it onto the response for
// the caller.
func RequestID[T any](cfg RequestIDConfig) mux.Inspector[T] {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return mux.Inspector[T]{
		Request: func(r *http.Request, _ *mux.Context[T]) mux.Outcome {
			id := ""
			if trustIncoming {
				id = r.Header.Get(headerName)
			}

			if id == "" {
				id = generate(r)
			}

			if id != "" {
				r.Header.Set(headerName, id)
			}

			return mux.Proceed()
		},
		Response: func(r *http.Request, resp *mux.Response, _ *mux.Context[T]) {
			if id := r.Header.Get(headerName); id != "" {
				resp.Header().Set(headerName, id)
			}
		},
	}
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4(_ *http.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7(_ *http.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
