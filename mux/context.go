package mux

import (
	"net/url"
	"strings"
)

// Context is the per-request record threaded through a dispatch. It carries
// the request URL, the path variables captured during the trie walk, and the
// caller-defined metadata payload produced by the router's metadata factory.
//
// Meta is the communication channel between inspectors and handlers for one
// request: an inspector may, for example, resolve authentication and store a
// user ID that the handler later reads. A Context belongs to exactly one
// request and is discarded once the response is produced.
type Context[T any] struct {
	// Meta is the caller-defined payload, created once per request.
	Meta T

	url   *url.URL
	vars  map[string]string
	parts []string
	split bool
}

func newContext[T any](u *url.URL) *Context[T] {
	return &Context[T]{url: u}
}

// URL returns the request URL.
func (c *Context[T]) URL() *url.URL {
	return c.url
}

// PathValue returns the captured value of a named path variable, or the
// empty string if the variable was not captured.
func (c *Context[T]) PathValue(name string) string {
	return c.vars[name]
}

// PathValues returns the captured path variables. The map is nil until the
// first variable is captured.
func (c *Context[T]) PathValues() map[string]string {
	return c.vars
}

// PathParts returns the request path split on "/", memoized after the first
// call. The first element is always empty because paths start with "/";
// callers drop it before descending the trie.
func (c *Context[T]) PathParts() []string {
	if !c.split {
		c.parts = strings.Split(c.url.Path, "/")
		c.split = true
	}
	return c.parts
}

// addPathValue records a captured path variable, lazily allocating the map.
// Name collisions are not checked here; trie construction owns that concern.
func (c *Context[T]) addPathValue(name, value string) {
	if c.vars == nil {
		c.vars = make(map[string]string)
	}
	c.vars[name] = value
}
