package source

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/feedrank/feedrank/internal/feed"
	"github.com/feedrank/feedrank/internal/fetch/web"
)

// DefaultHackerNewsURL is the public Firebase API base.
const DefaultHackerNewsURL = "https://hacker-news.firebaseio.com/v0"

const hackerNewsName = "hackernews"

// HackerNews lists top-story IDs and fetches one story per target.
type HackerNews struct {
	client  *web.Client
	baseURL string
}

// NewHackerNews builds the source. An empty baseURL selects the public API.
func NewHackerNews(client *web.Client, baseURL string) *HackerNews {
	if baseURL == "" {
		baseURL = DefaultHackerNewsURL
	}
	return &HackerNews{
		client:  client,
		baseURL: baseURL,
	}
}

// Name implements feed.Source.
func (s *HackerNews) Name() string {
	return hackerNewsName
}

// ListTargets fetches the top-story ID list.
func (s *HackerNews) ListTargets(ctx context.Context) ([]feed.Target, error) {
	body, err := s.client.Get(ctx, s.baseURL+"/topstories.json")
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, &feed.ExtractionError{Source: hackerNewsName, Err: fmt.Errorf("decode top stories: %w", err)}
	}
	targets := make([]feed.Target, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, feed.Target{Ref: strconv.FormatInt(id, 10)})
	}
	return targets, nil
}

type hackerNewsItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

// FetchTarget fetches one story and converts it to an Item. Stories without
// an external URL link back to their discussion page.
func (s *HackerNews) FetchTarget(ctx context.Context, target feed.Target) (feed.Item, error) {
	body, err := s.client.Get(ctx, fmt.Sprintf("%s/item/%s.json", s.baseURL, target.Ref))
	if err != nil {
		return feed.Item{}, err
	}
	var story hackerNewsItem
	if err := json.Unmarshal(body, &story); err != nil {
		return feed.Item{}, &feed.ExtractionError{Source: hackerNewsName, Err: fmt.Errorf("decode item %s: %w", target.Ref, err)}
	}
	if story.Title == "" {
		return feed.Item{}, &feed.ExtractionError{Source: hackerNewsName, Err: fmt.Errorf("item %s has no title", target.Ref)}
	}
	url := story.URL
	if url == "" {
		url = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", story.ID)
	}
	item := feed.NewItem(story.Title, url, hackerNewsName)
	if story.Text != "" {
		item = item.WithDescription(story.Text)
	}
	return item, nil
}
