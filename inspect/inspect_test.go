package inspect

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/signalis/junction/mux"
)

func newRouter() *mux.Router[struct{}] {
	return mux.New(mux.WithLogger[struct{}](slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func okHandler(_ *http.Request, _ *mux.Context[struct{}]) *mux.Response {
	return mux.Text(http.StatusOK, "ok")
}

func do(rt http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	rt.ServeHTTP(w, req)
	return w
}
