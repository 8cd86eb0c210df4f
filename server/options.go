package server

import (
	"context"
	"log/slog"
	"time"
)

// Option configures server behavior.
type Option func(*Server)

// WithLogger sets a custom logger for server operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithShutdownTimeout sets the maximum time to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.shutdown = timeout
	}
}

// WithReadTimeout sets the timeout for reading the request.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets the timeout for writing the response.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.writeTimeout = timeout
	}
}

// WithIdleTimeout sets the timeout for idle connections.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.idleTimeout = timeout
	}
}

// WithMaxHeaderBytes sets the maximum size of request headers.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		s.maxHeaderBytes = n
	}
}

// WithMaxConnections caps the number of simultaneous connections the
// listener accepts. Zero or negative means unlimited.
func WithMaxConnections(n int) Option {
	return func(s *Server) {
		s.maxConns = n
	}
}

// WithShutdownCallback registers a function invoked during graceful
// shutdown, after the listener stops accepting but within the shutdown
// timeout. Callbacks run in registration order.
func WithShutdownCallback(fn func(ctx context.Context)) Option {
	return func(s *Server) {
		s.onShutdown = append(s.onShutdown, fn)
	}
}
