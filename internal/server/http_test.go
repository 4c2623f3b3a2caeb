package server

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/blogloom/internal/site"
	"github.com/KaramelBytes/blogloom/internal/source"
	"github.com/KaramelBytes/blogloom/internal/view"
)

func newTestServer(t *testing.T, files map[string]string) (*Server, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	s := site.New(source.NewDir(dir), site.Options{})
	var logs bytes.Buffer
	factory := func() (*view.Controller, error) {
		return view.NewController(s, view.Options{SiteTitle: "Test", AboutFile: "about.md"})
	}
	return New(factory, log.New(&logs, "", 0)), &logs
}

var files = map[string]string{
	"index.json": `{"posts":[{"file":"a.md"}]}`,
	"a.md":       "---\ntitle: Post A\n---\n**hello**",
	"about.md":   "# About",
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestRoutes(t *testing.T) {
	srv, logs := newTestServer(t, files)
	h := srv.Router()

	rr := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	rr = get(t, h, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<h2>Post A</h2>")
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = get(t, h, "/about")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<h1>About</h1>")

	rr = get(t, h, "/posts/a.md")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<strong>hello</strong>")

	assert.Contains(t, logs.String(), "GET /posts/a.md status=200")
}

func TestMissingPost(t *testing.T) {
	srv, logs := newTestServer(t, files)
	rr := get(t, srv.Router(), "/posts/nope.md")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), view.NoticePostFailed)
	assert.Contains(t, logs.String(), `load post "nope.md"`)
}

func TestMissingIndex(t *testing.T) {
	srv, _ := newTestServer(t, map[string]string{})
	rr := get(t, srv.Router(), "/")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), view.NoticeListFailed)
}

func TestRequestIDIsPropagated(t *testing.T) {
	srv, _ := newTestServer(t, files)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}

func TestControllerFactoryFailure(t *testing.T) {
	var logs bytes.Buffer
	srv := New(func() (*view.Controller, error) { return nil, errors.New("boom") }, log.New(&logs, "", 0))
	rr := get(t, srv.Router(), "/")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.True(t, strings.Contains(logs.String(), "boom"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(source.ErrInvalidName))
	assert.Equal(t, http.StatusNotFound, statusFor(&source.StatusError{StatusCode: 404}))
	assert.Equal(t, http.StatusBadGateway, statusFor(&source.StatusError{StatusCode: 503}))
}
