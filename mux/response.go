package mux

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Response is the in-memory result of a dispatch: a status code, headers, and
// a body, held as mutable state until the router writes it to the wire once
// at the end of dispatch. Response inspectors receive the same *Response the
// handler produced and may change any part of it, but cannot substitute a
// different response.
type Response struct {
	status int
	header http.Header
	body   []byte
}

// NewResponse returns a response with the given status code and body and no
// headers set.
func NewResponse(code int, body []byte) *Response {
	return &Response{status: code, body: body}
}

// StatusCode returns the response status code.
func (r *Response) StatusCode() int {
	return r.status
}

// SetStatusCode replaces the response status code.
func (r *Response) SetStatusCode(code int) {
	r.status = code
}

// Header returns the response header map, allocating it on first use.
func (r *Response) Header() http.Header {
	if r.header == nil {
		r.header = make(http.Header)
	}
	return r.header
}

// Body returns the response body bytes.
func (r *Response) Body() []byte {
	return r.body
}

// SetBody replaces the response body.
func (r *Response) SetBody(body []byte) {
	r.body = body
}

// write flushes the response to the wire. Headers are written first, then the
// status, then the body.
func (r *Response) write(w http.ResponseWriter) {
	for key, values := range r.header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}

	code := r.status
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	w.Write(r.body)
}

// Text returns a response with the given status code, a text/plain content
// type, and body as its payload.
func Text(code int, body string) *Response {
	resp := NewResponse(code, []byte(body))
	resp.Header().Set("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// HTML returns a response with the given status code, a text/html content
// type, and body as its payload.
func HTML(code int, body string) *Response {
	resp := NewResponse(code, []byte(body))
	resp.Header().Set("Content-Type", "text/html; charset=utf-8")
	return resp
}

// JSON encodes v as JSON into a response with the given status code. The
// Content-Type header is set to "application/json". If encoding fails, a
// plain HTTP 500 Internal Server Error response is returned instead.
func JSON(code int, v any) *Response {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return Text(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	resp := NewResponse(code, buf.Bytes())
	resp.Header().Set("Content-Type", "application/json")
	return resp
}

// NoContent returns an HTTP 204 response with an empty body.
func NoContent() *Response {
	return NewResponse(http.StatusNoContent, nil)
}

// Redirect returns a response with the given 3xx status code and the Location
// header set to url.
func Redirect(code int, url string) *Response {
	resp := NewResponse(code, nil)
	resp.Header().Set("Location", url)
	return resp
}

// Raw returns a response with the given status code, content type, and body.
func Raw(code int, contentType string, body []byte) *Response {
	resp := NewResponse(code, body)
	resp.Header().Set("Content-Type", contentType)
	return resp
}
