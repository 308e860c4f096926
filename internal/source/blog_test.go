package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feedrank/feedrank/internal/feed"
)

const blogIndexHTML = `<!DOCTYPE html>
<html><body>
<ul class="posts">
  <li><a href="/2026/tokio-internals">Tokio internals</a></li>
  <li><a href="/2026/tokio-internals">Tokio internals (duplicate)</a></li>
  <li><a href="https://other.example.com/abs">Absolute link</a></li>
  <li><a href="/2026/empty-title"></a></li>
</ul>
</body></html>`

func newBlogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, blogIndexHTML)
	})
	mux.HandleFunc("/2026/tokio-internals", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><meta name="description" content="Deep dive into async runtimes"></head><body>post</body></html>`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestBlog_ListTargets(t *testing.T) {
	t.Parallel()

	srv := newBlogServer(t)
	src := NewBlog(newWebClient(), "rustblog", srv.URL+"/", ".posts a")

	targets, err := src.ListTargets(context.Background())
	require.NoError(t, err)
	// Duplicate URL and empty-title anchors are skipped.
	require.Len(t, targets, 2)
	require.Equal(t, srv.URL+"/2026/tokio-internals", targets[0].Ref)
	require.Equal(t, "Tokio internals", targets[0].Title)
	require.Equal(t, "https://other.example.com/abs", targets[1].Ref)
}

func TestBlog_FetchTarget_AttachesMetaDescription(t *testing.T) {
	t.Parallel()

	srv := newBlogServer(t)
	src := NewBlog(newWebClient(), "rustblog", srv.URL+"/", ".posts a")

	item, err := src.FetchTarget(context.Background(), feed.Target{
		Ref:   srv.URL + "/2026/tokio-internals",
		Title: "Tokio internals",
	})
	require.NoError(t, err)
	require.Equal(t, "rustblog", item.Source)
	require.Equal(t, "Deep dive into async runtimes", item.Description)
	require.Equal(t, "Tokio internals Deep dive into async runtimes", item.SearchableText())
}

func TestBlog_EmptyIndexYieldsNoTargets(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>nothing here</body></html>")
	}))
	t.Cleanup(srv.Close)

	src := NewBlog(newWebClient(), "emptyblog", srv.URL, "")
	targets, err := src.ListTargets(context.Background())
	require.NoError(t, err)
	require.Empty(t, targets)
}
