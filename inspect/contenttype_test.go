package inspect

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentType(t *testing.T) {
	t.Run("requires allowed types", func(t *testing.T) {
		_, err := ContentType[struct{}](ContentTypeConfig{})
		assert.ErrorIs(t, err, ErrNoAllowedTypes)
	})

	newRig := func(t *testing.T, cfg ContentTypeConfig) http.Handler {
		t.Helper()
		ins, err := ContentType[struct{}](cfg)
		require.NoError(t, err)

		rt := newRouter()
		rt.Inspect(http.MethodPost, "/api", ins)
		rt.Inspect(http.MethodGet, "/api", ins)
		rt.Post("/api", okHandler)
		rt.Get("/api", okHandler)
		return rt
	}

	t.Run("halts missing content type", func(t *testing.T) {
		rt := newRig(t, ContentTypeConfig{AllowedTypes: []string{"application/json"}})
		req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader("{}"))
		assert.Equal(t, http.StatusUnsupportedMediaType, do(rt, req).Code)
	})

	t.Run("halts disallowed content type", func(t *testing.T) {
		rt := newRig(t, ContentTypeConfig{AllowedTypes: []string{"application/json"}})
		req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader("x"))
		req.Header.Set("Content-Type", "text/plain")
		assert.Equal(t, http.StatusUnsupportedMediaType, do(rt, req).Code)
	})

	t.Run("ignores media type parameters", func(t *testing.T) {
		rt := newRig(t, ContentTypeConfig{AllowedTypes: []string{"application/json"}})
		req := httptest.NewRequest(http.MethodPost, "/api", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		assert.Equal(t, http.StatusOK, do(rt, req).Code)
	})

	t.Run("skips unchecked methods", func(t *testing.T) {
		rt := newRig(t, ContentTypeConfig{AllowedTypes: []string{"application/json"}})
		req := httptest.NewRequest(http.MethodGet, "/api", nil)
		assert.Equal(t, http.StatusOK, do(rt, req).Code)
	})
}
