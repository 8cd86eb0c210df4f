package inspect

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/signalis/junction/mux"
)

// ErrWildcardCredentials is returned when AllowedOrigins contains "*" and
// AllowCredentials is true. Use AllowOriginFunc for dynamic origin checks
// with credentials.
var ErrWildcardCredentials = errors.New("wildcard origin \"*\" cannot be used with AllowCredentials; use AllowOriginFunc instead")

// CORSConfig configures the CORS inspector behaviour.
//
// Spec references:
//   - CORS protocol: https://fetch.spec.whatwg.org/#http-cors-protocol
//   - Web Origin:    https://www.rfc-editor.org/rfc/rfc6454
type CORSConfig struct {
	// AllowedOrigins is a list of exact origin strings, "*" for wildcard,
	// or subdomain wildcard patterns like "https://*.example.com".
	AllowedOrigins []string

	// AllowOriginFunc is an optional dynamic callback invoked when the
	// origin does not match any entry in AllowedOrigins. Return true to allow.
	AllowOriginFunc func(origin string) bool

	// AllowedMethods is the set of methods advertised in preflight
	// responses. Defaults to GET, HEAD, POST when empty.
	AllowedMethods []string

	// AllowedHeaders lists the headers the client may send in the actual
	// request. When empty the inspector reflects the
	// Access-Control-Request-Headers value from the preflight request.
	// Use "*" to reflect all requested headers.
	AllowedHeaders []string

	// ExposeHeaders lists the headers the browser may expose to client code.
	ExposeHeaders []string

	// AllowCredentials sets Access-Control-Allow-Credentials: true.
	// Per the Fetch Standard, "*" cannot be used as Allow-Origin when
	// credentials are enabled; the factory returns ErrWildcardCredentials.
	AllowCredentials bool

	// MaxAge is the duration in seconds a preflight result may be cached.
	// Positive values are sent as-is, negative values emit "0", zero omits
	// the header.
	MaxAge int
}

// wildcardPattern represents a subdomain wildcard pattern split at the "*".
type wildcardPattern struct {
	prefix string
	suffix string
}

// parseOrigins normalizes AllowedOrigins to lowercase and splits them into
// exact matches and wildcard patterns. Returns an error if a pattern contains
// multiple wildcards.
func parseOrigins(origins []string) ([]string, []wildcardPattern, error) {
	var exact []string
	var patterns []wildcardPattern

	for _, o := range origins {
		if o == "*" {
			exact = append(exact, o)
			continue
		}

		lower := strings.ToLower(o)

		if strings.Contains(lower, "*") {
			parts := strings.SplitN(lower, "*", 2)
			if strings.Contains(parts[1], "*") {
				return nil, nil, errors.New("origin pattern contains multiple wildcards: " + o)
			}

			patterns = append(patterns, wildcardPattern{
				prefix: parts[0],
				suffix: parts[1],
			})
		} else {
			exact = append(exact, lower)
		}
	}

	return exact, patterns, nil
}

// matchOrigin reports whether originLower matches any exact origin or
// wildcard pattern.
func matchOrigin(originLower string, exactOrigins []string, patterns []wildcardPattern) bool {
	for _, o := range exactOrigins {
		if o == "*" || o == originLower {
			return true
		}
	}

	for _, wp := range patterns {
		if len(originLower) >= len(wp.prefix)+len(wp.suffix) &&
			strings.HasPrefix(originLower, wp.prefix) &&
			strings.HasSuffix(originLower, wp.suffix) {
			return true
		}
	}

	return false
}

// defaultCORSMethods is the method set advertised when AllowedMethods is empty.
var defaultCORSMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost}

// CORS returns an inspector that implements the CORS protocol per the Fetch
// Standard. The request hook halts preflight OPTIONS requests with a 204
// response carrying the preflight headers; the response hook sets the origin
// and expose headers on actual responses.
//
// It returns an error if the configuration is invalid (e.g. wildcard origin
// combined with AllowCredentials).
func CORS[T any](cfg CORSConfig) (mux.Inspector[T], error) {
	wildcardOrigin := slices.Contains(cfg.AllowedOrigins, "*")

	if wildcardOrigin && cfg.AllowCredentials {
		return mux.Inspector[T]{}, ErrWildcardCredentials
	}

	exactOrigins, wildcardPatterns, err := parseOrigins(cfg.AllowedOrigins)
	if err != nil {
		return mux.Inspector[T]{}, err
	}

	isAllowed := func(rawOrigin string) bool {
		if matchOrigin(strings.ToLower(rawOrigin), exactOrigins, wildcardPatterns) {
			return true
		}

		if cfg.AllowOriginFunc != nil {
			return cfg.AllowOriginFunc(rawOrigin)
		}

		return false
	}

	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = defaultCORSMethods
	}

	headersWildcard := slices.Contains(cfg.AllowedHeaders, "*")

	setOriginHeaders := func(h http.Header, origin string) {
		if wildcardOrigin && !cfg.AllowCredentials {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		}

		if cfg.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
	}

	return mux.Inspector[T]{
		Request: func(r *http.Request, _ *mux.Context[T]) mux.Outcome {
			origin := r.Header.Get("Origin")
			if origin == "" || !isAllowed(origin) {
				return mux.Proceed()
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				return mux.Proceed()
			}

			resp := mux.NoContent()
			h := resp.Header()
			setOriginHeaders(h, origin)
			h.Set("Access-Control-Allow-Methods", strings.Join(methods, ","))

			if headersWildcard {
				if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					h.Set("Access-Control-Allow-Headers", reqHeaders)
				}
			} else if len(cfg.AllowedHeaders) > 0 {
				h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ","))
			} else if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				h.Set("Access-Control-Allow-Headers", reqHeaders)
			}

			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			} else if cfg.MaxAge < 0 {
				h.Set("Access-Control-Max-Age", "0")
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")

			return mux.Halt(resp)
		},
		Response: func(r *http.Request, resp *mux.Response, _ *mux.Context[T]) {
			origin := r.Header.Get("Origin")
			if origin == "" || !isAllowed(origin) {
				return
			}

			setOriginHeaders(resp.Header(), origin)

			if len(cfg.ExposeHeaders) > 0 {
				resp.Header().Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ","))
			}
		},
	}, nil
}
