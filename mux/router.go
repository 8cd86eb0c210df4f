package mux

import (
	"log/slog"
	"net/http"
	"sort"
)

// Handler produces the response for a matched request. Returning nil is
// treated as a server fault.
type Handler[T any] func(r *http.Request, c *Context[T]) *Response

// Route is one (method, pattern) entry of the registration table, with the
// pattern rebuilt from the raw registered segment text.
type Route struct {
	Method  string
	Pattern string
}

// Router dispatches HTTP requests against one path trie per method. The type
// parameter T is the caller-defined metadata payload carried by each request's
// Context.
//
// Registration is a startup-phase operation: the tries must not be modified
// once the router is serving. No locking is provided.
type Router[T any] struct {
	trees map[string]*node[T]

	notFound    Handler[T]
	serverError Handler[T]
	metadata    func(*http.Request) T
	log         *slog.Logger
}

// Option configures a Router during construction.
type Option[T any] func(*Router[T])

// WithMetadata sets the factory that produces the Context metadata payload
// for each request. Without it, Meta starts as the zero value of T.
func WithMetadata[T any](factory func(*http.Request) T) Option[T] {
	return func(rt *Router[T]) {
		rt.metadata = factory
	}
}

// WithNotFound replaces the handler used when no route matches a request.
func WithNotFound[T any](h Handler[T]) Option[T] {
	return func(rt *Router[T]) {
		rt.notFound = h
	}
}

// WithServerError replaces the handler used when dispatch faults: a panic, a
// malformed inspector outcome, or a handler returning nil.
func WithServerError[T any](h Handler[T]) Option[T] {
	return func(rt *Router[T]) {
		rt.serverError = h
	}
}

// WithLogger sets the logger used for registration warnings and dispatch
// faults. Defaults to slog.Default.
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(rt *Router[T]) {
		rt.log = log
	}
}

// New returns a router configured by the given options.
func New[T any](opts ...Option[T]) *Router[T] {
	rt := &Router[T]{
		trees:       make(map[string]*node[T]),
		notFound:    defaultNotFound[T],
		serverError: defaultServerError[T],
		log:         slog.Default(),
	}

	for _, opt := range opts {
		opt(rt)
	}

	return rt
}

func defaultNotFound[T any](_ *http.Request, _ *Context[T]) *Response {
	return HTML(http.StatusNotFound, "<h1>Not Found</h1>")
}

func defaultServerError[T any](_ *http.Request, _ *Context[T]) *Response {
	return Text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// tree returns the trie root for a method, creating it on first use.
func (rt *Router[T]) tree(method string) *node[T] {
	root, ok := rt.trees[method]
	if !ok {
		root = &node[T]{}
		rt.trees[method] = root
	}
	return root
}

// Handle registers a handler for the given method and path. Path segments
// starting with ":" capture a path variable; a terminal "*" segment matches
// any remaining path. Registering a second handler for the same path is
// logged and discarded.
func (rt *Router[T]) Handle(method, path string, h Handler[T]) {
	rt.tree(method).descend(splitPath(path), path, rt.log).setHandler(h, path, rt.log)
}

// HandlePaths registers the same handler for every path in the list.
func (rt *Router[T]) HandlePaths(method string, paths []string, h Handler[T]) {
	for _, path := range paths {
		rt.Handle(method, path, h)
	}
}

// Get registers a handler for GET requests on the given path.
func (rt *Router[T]) Get(path string, h Handler[T]) {
	rt.Handle(http.MethodGet, path, h)
}

// Head registers a handler for HEAD requests on the given path.
func (rt *Router[T]) Head(path string, h Handler[T]) {
	rt.Handle(http.MethodHead, path, h)
}

// Post registers a handler for POST requests on the given path.
func (rt *Router[T]) Post(path string, h Handler[T]) {
	rt.Handle(http.MethodPost, path, h)
}

// Inspect attaches an inspector to the node for the given method and path.
// Inspectors fire in registration order for every request whose dispatch walk
// passes through the node; set ExactOnly to restrict an inspector to requests
// terminating exactly at the path.
func (rt *Router[T]) Inspect(method, path string, ins Inspector[T]) {
	rt.tree(method).descend(splitPath(path), path, rt.log).addInspector(ins)
}

// InspectPaths attaches the same inspector at every path in the list.
func (rt *Router[T]) InspectPaths(method string, paths []string, ins Inspector[T]) {
	for _, path := range paths {
		rt.Inspect(method, path, ins)
	}
}

// Routes returns every registered (method, pattern) pair, sorted by method
// and then by pattern.
func (rt *Router[T]) Routes() []Route {
	var out []Route
	for method, root := range rt.trees {
		var patterns []string
		root.routes("", &patterns)
		for _, p := range patterns {
			out = append(out, Route{Method: method, Pattern: p})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Method != out[j].Method {
			return out[i].Method < out[j].Method
		}
		return out[i].Pattern < out[j].Pattern
	})

	return out
}

// ServeHTTP dispatches the request and writes the resulting response. No
// panic from handlers or inspectors escapes it.
func (rt *Router[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := rt.dispatch(r)
	if resp == nil {
		resp = Text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
	resp.write(w)
}

// dispatch walks the method's trie for the request path and produces the
// response. The deferred recover is the fault barrier: any panic, including
// one from the metadata factory or a custom handler, becomes the server-error
// response with no response inspectors applied.
func (rt *Router[T]) dispatch(r *http.Request) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			rt.log.Error("panic during dispatch", "method", r.Method, "path", r.URL.Path, "panic", rec)
			resp = rt.recoverResponse(r)
		}
	}()

	c := newContext[T](r.URL)
	if rt.metadata != nil {
		c.Meta = rt.metadata(r)
	}

	root, ok := rt.trees[r.Method]
	if !ok {
		return rt.notFound(r, c)
	}

	// Response hooks collected along the walk, applied root to leaf against
	// whatever response the dispatch ends with.
	var queue []ResponseInspectorFunc[T]

	finish := func(resp *Response) *Response {
		for _, fn := range queue {
			fn(r, resp, c)
		}
		return resp
	}

	fault := func() *Response {
		return finish(rt.serverError(r, c))
	}

	n := root
	remaining := splitPath(r.URL.Path)

	var fallback Handler[T]

	for {
		for _, ins := range n.inspectors {
			if ins.ExactOnly && len(remaining) > 0 {
				continue
			}

			if ins.Request != nil {
				out := ins.Request(r, c)
				switch {
				case out.halt != nil:
					return finish(out.halt)
				case !out.proceed:
					// Zero Outcome or Halt(nil).
					rt.log.Error("malformed inspector outcome", "method", r.Method, "path", r.URL.Path)
					return fault()
				}
			}

			if ins.Response != nil {
				queue = append(queue, ins.Response)
			}
		}

		if len(remaining) == 0 {
			if n.handler == nil {
				return finish(rt.notFound(r, c))
			}
			resp := n.handler(r, c)
			if resp == nil {
				rt.log.Error("handler returned nil response", "method", r.Method, "path", r.URL.Path)
				return fault()
			}
			return finish(resp)
		}

		if n.wild != nil && n.wild.isSplat() && n.wild.handler != nil {
			// Deepest catch-all with a handler seen so far.
			fallback = n.wild.handler
		}

		seg := remaining[0]
		if child, ok := n.children[seg]; ok {
			n = child
			remaining = remaining[1:]
			continue
		}

		if n.wild != nil {
			if n.wild.isSplat() {
				// A catch-all consumes the rest of the path.
				n = n.wild
				remaining = nil
				continue
			}
			c.addPathValue(n.wild.varName, seg)
			n = n.wild
			remaining = remaining[1:]
			continue
		}

		if fallback != nil {
			resp := fallback(r, c)
			if resp == nil {
				rt.log.Error("handler returned nil response", "method", r.Method, "path", r.URL.Path)
				return fault()
			}
			return finish(resp)
		}

		return finish(rt.notFound(r, c))
	}
}

// recoverResponse produces the server-error response after a panic. A second
// panic from a custom server-error handler falls back to the built-in one.
func (rt *Router[T]) recoverResponse(r *http.Request) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			resp = defaultServerError[T](r, nil)
		}
	}()
	return rt.serverError(r, newContext[T](r.URL))
}
