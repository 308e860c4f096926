package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/feedrank/feedrank/internal/feed"
	"github.com/feedrank/feedrank/internal/fetch/web"
)

func newHNServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[101,102,103]`)
	})
	mux.HandleFunc("/item/101.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":101,"title":"Rust async performance","url":"https://example.com/rust"}`)
	})
	mux.HandleFunc("/item/102.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":102,"title":"Ask HN: something","text":"body text"}`)
	})
	mux.HandleFunc("/item/103.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":103}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newWebClient() *web.Client {
	return web.NewClient(web.Config{UserAgent: "feedrank-test/1.0", Timeout: 5 * time.Second})
}

func TestHackerNews_ListTargets(t *testing.T) {
	t.Parallel()

	srv := newHNServer(t)
	src := NewHackerNews(newWebClient(), srv.URL)

	targets, err := src.ListTargets(context.Background())
	require.NoError(t, err)
	require.Equal(t, []feed.Target{{Ref: "101"}, {Ref: "102"}, {Ref: "103"}}, targets)
}

func TestHackerNews_FetchTarget(t *testing.T) {
	t.Parallel()

	srv := newHNServer(t)
	src := NewHackerNews(newWebClient(), srv.URL)
	ctx := context.Background()

	item, err := src.FetchTarget(ctx, feed.Target{Ref: "101"})
	require.NoError(t, err)
	require.Equal(t, "Rust async performance", item.Title)
	require.Equal(t, "https://example.com/rust", item.URL)
	require.Equal(t, "hackernews", item.Source)
	require.Empty(t, item.Description)
}

func TestHackerNews_FetchTarget_FallbackURLAndDescription(t *testing.T) {
	t.Parallel()

	srv := newHNServer(t)
	src := NewHackerNews(newWebClient(), srv.URL)

	item, err := src.FetchTarget(context.Background(), feed.Target{Ref: "102"})
	require.NoError(t, err)
	require.Equal(t, "https://news.ycombinator.com/item?id=102", item.URL)
	require.Equal(t, "body text", item.Description)
	require.Equal(t, "Ask HN: something body text", item.SearchableText())
}

func TestHackerNews_FetchTarget_MissingTitleIsExtractionError(t *testing.T) {
	t.Parallel()

	srv := newHNServer(t)
	src := NewHackerNews(newWebClient(), srv.URL)

	_, err := src.FetchTarget(context.Background(), feed.Target{Ref: "103"})
	require.Error(t, err)
	var extractErr *feed.ExtractionError
	require.True(t, errors.As(err, &extractErr))
	require.Equal(t, "hackernews", extractErr.Source)
}
