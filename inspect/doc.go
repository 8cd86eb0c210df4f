// Package inspect provides ready-made inspectors for the mux router.
//
// Inspectors attach to router path nodes with Router.Inspect and observe
// every request passing through their node. The factories here follow one
// shape: a Config struct with documented defaults and a constructor that
// validates it, returning an error for unusable configurations.
//
// # Request ID
//
// RequestID generates or propagates a request ID header on both the request
// and the response:
//
//	rt.Inspect(http.MethodGet, "/", inspect.RequestID[Meta](inspect.RequestIDConfig{
//	    TrustIncoming: true,
//	}))
//
// # Basic Auth
//
// BasicAuth implements HTTP Basic Authentication per RFC 7617 and halts
// unauthorized requests with 401. Static credential comparison is
// constant-time:
//
//	ins, err := inspect.BasicAuth[Meta](inspect.BasicAuthConfig{
//	    Realm:       "Admin",
//	    Credentials: map[string]string{"admin": "secret"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rt.Inspect(http.MethodGet, "/admin", ins)
//
// # CORS
//
// CORS validates the Origin header, answers preflight OPTIONS requests by
// halting with a 204 carrying the preflight headers, and decorates actual
// responses with the allow-origin headers.
//
// # Response Decoration
//
// SecurityHeaders and CacheControl run as response hooks, adjusting headers
// on whatever response the dispatch produced, including 404s when attached
// at the root. ContentType halts requests whose body media type is not in
// the allowed set. Logging emits one structured slog record per request.
package inspect
