package server

import "errors"

var (
	// ErrServerAlreadyRunning is returned by Start when the server is
	// already serving.
	ErrServerAlreadyRunning = errors.New("server is already running")
)
