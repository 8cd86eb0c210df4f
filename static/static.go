// Package static serves files from an fs.FS through mux handlers, memoizing
// file contents, content types, and ETags so repeated requests are answered
// from memory with If-None-Match revalidation.
package static

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/signalis/junction/mux"
)

// ErrNoFS is returned when Config.FS is nil.
var ErrNoFS = errors.New("static: file system must not be nil")

// Config configures a mounted file tree.
type Config struct {
	// FS is the file system to serve files from. Required.
	// Works with os.DirFS, embed.FS, and any fs.FS implementation.
	FS fs.FS

	// Index is the file served when the request path names the mount root
	// or ends with a slash. Defaults to "index.html".
	Index string
}

// entry is one memoized file: its bytes, detected content type, and strong
// ETag. Entries are immutable once stored.
type entry struct {
	body        []byte
	contentType string
	etag        string
}

// cache memoizes files by name for the lifetime of the handler. The backing
// file system is assumed immutable while serving, matching embed.FS and
// deploy-time asset directories.
type cache struct {
	fsys fs.FS

	mu      sync.RWMutex
	entries map[string]*entry
}

func newCache(fsys fs.FS) *cache {
	return &cache{fsys: fsys, entries: make(map[string]*entry)}
}

func (c *cache) load(name string) (*entry, error) {
	c.mu.RLock()
	e, ok := c.entries[name]
	c.mu.RUnlock()
	if ok {
		return e, nil
	}

	body, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	sum := sha256.Sum256(body)
	e = &entry{
		body:        body,
		contentType: contentType,
		etag:        `"` + hex.EncodeToString(sum[:16]) + `"`,
	}

	c.mu.Lock()
	c.entries[name] = e
	c.mu.Unlock()

	return e, nil
}

// serve builds the response for a memoized entry, answering 304 Not Modified
// when the client's If-None-Match matches the entry's ETag. HEAD responses
// carry the same headers with no body.
func (e *entry) serve(r *http.Request) *mux.Response {
	if matchesETag(r.Header.Get("If-None-Match"), e.etag) {
		resp := mux.NewResponse(http.StatusNotModified, nil)
		resp.Header().Set("ETag", e.etag)
		return resp
	}

	body := e.body
	if r.Method == http.MethodHead {
		body = nil
	}

	resp := mux.NewResponse(http.StatusOK, body)
	resp.Header().Set("Content-Type", e.contentType)
	resp.Header().Set("ETag", e.etag)
	return resp
}

// matchesETag reports whether an If-None-Match header value matches etag.
// Weak comparison per RFC 9110 section 8.8.3.2: a "W/" prefix on either side
// is ignored.
func matchesETag(header, etag string) bool {
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}

	return false
}

func notFound() *mux.Response {
	return mux.HTML(http.StatusNotFound, "<h1>Not Found</h1>")
}

// File returns a handler serving a single file from fsys. The file is read
// and memoized on first request. Construction fails if the file does not
// exist, so misconfigured routes surface at startup.
func File[T any](fsys fs.FS, name string) (mux.Handler[T], error) {
	if fsys == nil {
		return nil, ErrNoFS
	}

	if _, err := fs.Stat(fsys, name); err != nil {
		return nil, err
	}

	c := newCache(fsys)

	return func(r *http.Request, _ *mux.Context[T]) *mux.Response {
		e, err := c.load(name)
		if err != nil {
			return notFound()
		}
		return e.serve(r)
	}, nil
}

// Dir returns a handler serving the file tree under prefix. The file name is
// the request path with the mount prefix stripped; an empty or slash-ending
// remainder serves the index file. Paths that do not clean to a valid fs.FS
// name, such as dot-dot escapes, get a 404.
func Dir[T any](prefix string, cfg Config) (mux.Handler[T], error) {
	if cfg.FS == nil {
		return nil, ErrNoFS
	}

	index := cfg.Index
	if index == "" {
		index = "index.html"
	}

	prefix = strings.TrimSuffix(prefix, "/")
	c := newCache(cfg.FS)

	return func(r *http.Request, _ *mux.Context[T]) *mux.Response {
		name := strings.TrimPrefix(r.URL.Path, prefix)
		name = strings.TrimPrefix(name, "/")
		if name == "" || strings.HasSuffix(name, "/") {
			name += index
		}

		name = path.Clean(name)
		if !fs.ValidPath(name) {
			return notFound()
		}

		e, err := c.load(name)
		if err != nil {
			return notFound()
		}
		return e.serve(r)
	}, nil
}

// Mount registers GET and HEAD catch-all routes under prefix serving the
// configured file tree.
func Mount[T any](rt *mux.Router[T], prefix string, cfg Config) error {
	h, err := Dir[T](prefix, cfg)
	if err != nil {
		return err
	}

	pattern := strings.TrimSuffix(prefix, "/") + "/*"
	rt.Get(pattern, h)
	rt.Head(pattern, h)

	return nil
}
