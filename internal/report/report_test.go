package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feedrank/feedrank/internal/feed"
)

func TestWrite_RendersTopN(t *testing.T) {
	t.Parallel()

	ranked := []feed.ScoredItem{
		{
			Item:            feed.NewItem("Rust async performance", "https://example.com/a", "hackernews"),
			Score:           2.0,
			MatchedKeywords: []string{"rust", "async"},
		},
		{
			Item:  feed.NewItem("Python tutorial", "https://example.com/b", "blog"),
			Score: 0,
		},
	}

	var sb strings.Builder
	require.NoError(t, Write(&sb, ranked, 1))
	out := sb.String()

	require.Contains(t, out, "TOP 1 ITEMS")
	require.Contains(t, out, "1. Rust async performance [Score: 2.00]")
	require.Contains(t, out, "Matched: rust, async")
	require.NotContains(t, out, "Python tutorial")
}

func TestWrite_TopNLargerThanList(t *testing.T) {
	t.Parallel()

	ranked := []feed.ScoredItem{
		{Item: feed.NewItem("only one", "https://example.com", "src"), Score: 1.0},
	}

	var sb strings.Builder
	require.NoError(t, Write(&sb, ranked, 10))
	require.Contains(t, sb.String(), "only one")
}
