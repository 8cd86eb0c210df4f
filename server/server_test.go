package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helloHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "hello")
	})
}

func startServer(t *testing.T, s *Server) context.CancelFunc {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		_ = s.Start(ctx, helloHandler())
	}()

	require.Eventually(t, func() bool {
		return s.Addr() != ""
	}, 2*time.Second, 10*time.Millisecond)

	return cancel
}

func TestServerStart(t *testing.T) {
	t.Run("serves requests on an ephemeral port", func(t *testing.T) {
		s := New("127.0.0.1:0")
		cancel := startServer(t, s)
		defer func() {
			cancel()
			_ = s.Stop()
		}()

		resp, err := http.Get("http://" + s.Addr() + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("rejects a second start", func(t *testing.T) {
		s := New("127.0.0.1:0")
		cancel := startServer(t, s)
		defer func() {
			cancel()
			_ = s.Stop()
		}()

		err := s.Start(context.Background(), helloHandler())
		assert.ErrorIs(t, err, ErrServerAlreadyRunning)
	})

	t.Run("returns context error on cancellation", func(t *testing.T) {
		s := New("127.0.0.1:0")

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx, helloHandler())
		}()

		require.Eventually(t, func() bool {
			return s.Addr() != ""
		}, 2*time.Second, 10*time.Millisecond)

		cancel()
		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("Start did not return after cancellation")
		}

		_ = s.Stop()
	})

	t.Run("fails on unbindable address", func(t *testing.T) {
		s := New("256.256.256.256:0")
		err := s.Start(context.Background(), helloHandler())
		assert.Error(t, err)
	})
}

func TestServerStop(t *testing.T) {
	t.Run("is a no-op when not running", func(t *testing.T) {
		s := New("127.0.0.1:0")
		assert.NoError(t, s.Stop())
	})

	t.Run("runs shutdown callbacks in order", func(t *testing.T) {
		var order []string
		s := New("127.0.0.1:0",
			WithShutdownTimeout(time.Second),
			WithShutdownCallback(func(_ context.Context) { order = append(order, "first") }),
			WithShutdownCallback(func(_ context.Context) { order = append(order, "second") }),
		)
		cancel := startServer(t, s)
		defer cancel()

		require.NoError(t, s.Stop())
		assert.Equal(t, []string{"first", "second"}, order)
	})
}

func TestServerMaxConnections(t *testing.T) {
	t.Run("still serves sequential requests", func(t *testing.T) {
		s := New("127.0.0.1:0", WithMaxConnections(1))
		cancel := startServer(t, s)
		defer func() {
			cancel()
			_ = s.Stop()
		}()

		for i := 0; i < 3; i++ {
			resp, err := http.Get("http://" + s.Addr() + "/")
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}
	})
}

func TestServerRun(t *testing.T) {
	t.Run("shuts down cleanly on context cancellation", func(t *testing.T) {
		s := New("127.0.0.1:0", WithShutdownTimeout(time.Second))

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Run(ctx, helloHandler())
		}()

		require.Eventually(t, func() bool {
			return s.Addr() != ""
		}, 2*time.Second, 10*time.Millisecond)

		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("Run did not return after cancellation")
		}
	})
}
