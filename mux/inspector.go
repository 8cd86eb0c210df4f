package mux

import "net/http"

// RequestInspectorFunc observes a request before its handler runs. The
// returned Outcome either lets dispatch proceed or halts it with a response.
type RequestInspectorFunc[T any] func(r *http.Request, c *Context[T]) Outcome

// ResponseInspectorFunc observes the final response of a dispatch. It may
// mutate the response's status, headers, and body, but cannot substitute a
// different response.
type ResponseInspectorFunc[T any] func(r *http.Request, resp *Response, c *Context[T])

// Inspector is a scoped middleware unit attached to a trie node. Either hook
// may be nil. By default an inspector fires both for requests terminating at
// its node and for requests continuing into descendant paths; ExactOnly
// restricts it to the former.
type Inspector[T any] struct {
	Request  RequestInspectorFunc[T]
	Response ResponseInspectorFunc[T]

	// ExactOnly limits the inspector to requests whose path terminates
	// exactly at the node it is registered on.
	ExactOnly bool
}

// Outcome is the result of a request inspector: either proceed with dispatch
// or halt it with a response. Values are built with Proceed or Halt; the zero
// Outcome is malformed and converts the request into a server fault.
type Outcome struct {
	halt    *Response
	proceed bool
}

// Proceed returns an outcome that lets dispatch continue.
func Proceed() Outcome {
	return Outcome{proceed: true}
}

// Halt returns an outcome that ends dispatch immediately with resp. Response
// inspectors collected before the halting inspector still run against resp.
func Halt(resp *Response) Outcome {
	return Outcome{halt: resp}
}
