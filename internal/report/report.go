// Package report renders ranked results for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/feedrank/feedrank/internal/feed"
)

const lineWidth = 80

// Write renders the top items of a ranked list to w, most relevant first.
func Write(w io.Writer, ranked []feed.ScoredItem, topN int) error {
	if topN <= 0 || topN > len(ranked) {
		topN = len(ranked)
	}

	header := fmt.Sprintf("TOP %d ITEMS", topN)
	if _, err := fmt.Fprintf(w, "\n%s\n%s\n%s\n",
		strings.Repeat("=", lineWidth),
		centered(header, lineWidth),
		strings.Repeat("=", lineWidth),
	); err != nil {
		return err
	}

	for i, item := range ranked[:topN] {
		if _, err := fmt.Fprintf(w, "\n%d. %s [Score: %.2f]\n", i+1, item.Item.Title, item.Score); err != nil {
			return err
		}
		fmt.Fprintf(w, "   Source: %s\n", item.Item.Source)
		fmt.Fprintf(w, "   URL: %s\n", item.Item.URL)
		if len(item.MatchedKeywords) > 0 {
			fmt.Fprintf(w, "   Matched: %s\n", strings.Join(item.MatchedKeywords, ", "))
		}
		fmt.Fprintln(w, strings.Repeat("-", lineWidth))
	}
	return nil
}

func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
