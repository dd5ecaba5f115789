package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/render"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	dir  string
	svc  *core.Service
	srv  *Server
	logs *bytes.Buffer
}

func newFixture(t *testing.T, cache bool) *fixture {
	t.Helper()
	dir := t.TempDir()
	writePost(t, dir, "first", "2024-01-01")
	writePost(t, dir, "second", "2024-06-01")
	writePost(t, dir, "third", "2025-01-01")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.mdx"), []byte("no header"), 0644))

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	svc := core.NewService(fs.NewRepository(fs.Config{Path: dir}), logger)
	srv := New(svc, Config{
		Site:   render.Site{BaseURL: "https://example.com", PostsPath: "/blog", Title: "Example"},
		Cache:  cache,
		Logger: logger,
	})
	return &fixture{dir: dir, svc: svc, srv: srv, logs: logs}
}

func writePost(t *testing.T, dir, slug, date string) {
	t.Helper()
	content := "---\ntitle: Post " + slug + "\npublishedAt: " + date + "\nsummary: About " + slug + "\n---\n\n# " + slug + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".mdx"), []byte(content), 0644))
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	f.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	f := newFixture(t, false)
	rec := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListPosts_SortedAndSkipsBroken(t *testing.T) {
	f := newFixture(t, false)
	rec := f.get(t, "/api/posts")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total int       `json:"total"`
		Items []Summary `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 3, body.Total)
	assert.Equal(t, "third", body.Items[0].Slug)
	assert.Equal(t, "second", body.Items[1].Slug)
	assert.Equal(t, "first", body.Items[2].Slug)
	assert.Contains(t, body.Items[0].Date, "January 1, 2025 (")

	assert.Contains(t, f.logs.String(), "broken.mdx")
}

func TestGetPost_WithNeighbors(t *testing.T) {
	f := newFixture(t, false)
	rec := f.get(t, "/api/posts/second")
	require.Equal(t, http.StatusOK, rec.Code)

	var body PostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "second", body.Post.Slug)
	assert.Equal(t, "# second", body.Post.Content)
	require.NotNil(t, body.Previous)
	require.NotNil(t, body.Next)
	assert.Equal(t, "first", body.Previous.Slug)
	assert.Equal(t, "third", body.Next.Slug)
	assert.Equal(t, "https://example.com/blog/second", body.Meta.Canonical)
	assert.Equal(t, "BlogPosting", body.JSONLD.Type)
}

func TestGetPost_NotFound(t *testing.T) {
	f := newFixture(t, false)
	for _, path := range []string{"/api/posts/missing", "/api/posts/broken", "/blog/Second"} {
		rec := f.get(t, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"title":"Not Found"`, path)
	}
}

func TestPostPage(t *testing.T) {
	f := newFixture(t, false)
	rec := f.get(t, "/blog/first")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	out := rec.Body.String()
	assert.Contains(t, out, `<h1 id="first">first</h1>`)
	assert.Contains(t, out, `<a rel="next" href="/blog/second">Post second</a>`)
	assert.NotContains(t, out, `rel="prev"`)
}

func TestSitemapAndFeed(t *testing.T) {
	f := newFixture(t, false)

	rec := f.get(t, "/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>https://example.com/blog/third</loc>")
	assert.Contains(t, rec.Body.String(), "<lastmod>2025-01-01</lastmod>")

	rec = f.get(t, "/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Post third</title>")
}

func TestFreshCycleSeesNewPosts(t *testing.T) {
	f := newFixture(t, false)
	writePost(t, f.dir, "fourth", "2026-01-01")

	assert.Equal(t, http.StatusOK, f.get(t, "/api/posts/fourth").Code)
}

func TestCachedCycleNeedsInvalidate(t *testing.T) {
	f := newFixture(t, true)
	require.Equal(t, http.StatusNotFound, f.get(t, "/api/posts/fourth").Code)

	writePost(t, f.dir, "fourth", "2026-01-01")
	assert.Equal(t, http.StatusNotFound, f.get(t, "/api/posts/fourth").Code)

	f.svc.Invalidate()
	assert.Equal(t, http.StatusOK, f.get(t, "/api/posts/fourth").Code)
}

func TestWatchInvalidatesCache(t *testing.T) {
	f := newFixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.Equal(t, http.StatusNotFound, f.get(t, "/api/posts/fifth").Code)
	require.NoError(t, f.srv.Watch(ctx))

	writePost(t, f.dir, "fifth", "2026-02-01")
	assert.Eventually(t, func() bool {
		return f.get(t, "/api/posts/fifth").Code == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)
}

func TestRequestID(t *testing.T) {
	f := newFixture(t, false)

	rec := f.get(t, "/healthz")
	generated := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	require.NoError(t, err)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))

	assert.Contains(t, f.logs.String(), "request_id="+incoming)
	assert.Contains(t, f.logs.String(), "path=/healthz")
}
