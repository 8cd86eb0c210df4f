// Package mux implements a trie-based request router whose handlers return
// response values instead of writing to the wire, and whose middleware units,
// called inspectors, attach to individual path nodes.
//
// Routing semantics follow:
//   - RFC 9110 (HTTP Semantics)
//   - RFC 9112 (HTTP/1.1)
//   - RFC 3986 (URIs)
//
// # Router
//
// The router keeps one path trie per HTTP method. Create one and register
// handlers:
//
//	rt := mux.New[MyMeta]()
//	rt.Get("/users/:id", userHandler)
//	rt.Post("/users", createHandler)
//	rt.Handle(http.MethodDelete, "/users/:id", deleteHandler)
//	http.ListenAndServe(":8080", rt)
//
// The type parameter is the per-request metadata payload; see Context below.
// Registration is a startup-phase operation and must finish before the
// router starts serving.
//
// # Paths
//
// Registered paths are split on "/" with no further normalization: no dot
// segment cleaning, no trailing-slash redirects, and "/users" and "/users/"
// are distinct routes. A segment starting with ":" captures a path variable:
//
//	rt.Get("/articles/:category/:id", handler)
//
// A terminal "*" segment matches any remaining path, including none:
//
//	rt.Get("/static/*", fileHandler)
//
// A catch-all also acts as a fallback: when a request descends past its node
// along literal segments and then dead-ends, the nearest enclosing catch-all
// with a handler serves the request.
//
// # Handlers
//
// A handler receives the request and its Context and returns a *Response.
// Responses are built with the Text, HTML, JSON, NoContent, Redirect, and
// Raw constructors:
//
//	func userHandler(r *http.Request, c *mux.Context[MyMeta]) *mux.Response {
//		return mux.JSON(http.StatusOK, lookup(c.PathValue("id")))
//	}
//
// The response stays in memory until dispatch completes, so response
// inspectors can adjust its status, headers, and body before it is written.
//
// # Context
//
// Each request gets a fresh Context carrying the request URL, the captured
// path variables, and the Meta payload. Meta is produced by the factory given
// to WithMetadata and is the channel through which inspectors hand
// information to handlers:
//
//	rt := mux.New(mux.WithMetadata(func(r *http.Request) *MyMeta {
//		return &MyMeta{Start: time.Now()}
//	}))
//
// # Inspectors
//
// An Inspector attaches to a path node and observes every request whose
// dispatch walk passes through that node. Its Request hook runs before the
// handler and returns an Outcome: Proceed() to continue, or Halt(resp) to
// end dispatch with resp. Its Response hook runs after the handler against
// the final response. Hooks from nested paths run outermost first:
//
//	rt.Inspect(http.MethodGet, "/admin", mux.Inspector[MyMeta]{
//		Request: func(r *http.Request, c *mux.Context[MyMeta]) mux.Outcome {
//			if !authorized(r) {
//				return mux.Halt(mux.Text(http.StatusForbidden, "forbidden"))
//			}
//			return mux.Proceed()
//		},
//	})
//
// Set ExactOnly to restrict an inspector to requests terminating exactly at
// its node rather than continuing into descendants.
//
// # Error Handling
//
// WithNotFound and WithServerError replace the default 404 and 500
// responses. Panics from handlers, inspectors, and the metadata factory are
// caught at the top of dispatch and converted to the server-error response;
// nothing escapes ServeHTTP.
//
// # Introspection
//
// Routes returns the registered (method, pattern) table, sorted, for
// documentation generators and startup logging:
//
//	for _, route := range rt.Routes() {
//		log.Printf("%s %s", route.Method, route.Pattern)
//	}
package mux
