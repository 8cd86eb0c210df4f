package inspect

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/signalis/junction/mux"
)

// ErrNoAllowedTypes is returned when ContentTypeConfig.AllowedTypes is empty.
var ErrNoAllowedTypes = errors.New("content type: at least one allowed content type is required")

// ContentTypeConfig configures the Content-Type inspector behaviour.
type ContentTypeConfig struct {
	// AllowedTypes is the set of acceptable Content-Type values.
	// Matching is case-insensitive and ignores parameters
	// (e.g. "application/json" matches "application/json; charset=utf-8").
	// Required; at least one must be provided.
	AllowedTypes []string

	// Methods is the set of HTTP methods that require Content-Type
	// validation. When nil, defaults to POST, PUT, PATCH.
	Methods []string
}

// defaultCheckedMethods is the set of HTTP methods that require Content-Type
// validation when Methods is nil.
var defaultCheckedMethods = []string{
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
}

// ContentType returns an inspector that validates the Content-Type header on
// requests with matching methods. It halts dispatch with 415 Unsupported
// Media Type when the Content-Type is missing or does not match any of the
// allowed types.
//
// It returns ErrNoAllowedTypes if AllowedTypes is empty.
func ContentType[T any](cfg ContentTypeConfig) (mux.Inspector[T], error) {
	if len(cfg.AllowedTypes) == 0 {
		return mux.Inspector[T]{}, ErrNoAllowedTypes
	}

	methods := cfg.Methods
	if methods == nil {
		methods = defaultCheckedMethods
	}

	methodSet := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		methodSet[m] = struct{}{}
	}

	allowedSet := make(map[string]struct{}, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		allowedSet[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	unsupported := func() mux.Outcome {
		return mux.Halt(mux.Text(http.StatusUnsupportedMediaType, http.StatusText(http.StatusUnsupportedMediaType)))
	}

	return mux.Inspector[T]{
		Request: func(r *http.Request, _ *mux.Context[T]) mux.Outcome {
			if _, check := methodSet[r.Method]; !check {
				return mux.Proceed()
			}

			ct := r.Header.Get("Content-Type")
			if ct == "" {
				return unsupported()
			}

			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil {
				return unsupported()
			}

			if _, ok := allowedSet[strings.ToLower(mediaType)]; !ok {
				return unsupported()
			}

			return mux.Proceed()
		},
	}, nil
}
