package source

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/feedrank/feedrank/internal/feed"
	"github.com/feedrank/feedrank/internal/fetch/web"
)

const defaultLinkSelector = "a"

// Blog lists article links from an index page and fetches each article for
// its meta description.
type Blog struct {
	client       *web.Client
	name         string
	indexURL     string
	linkSelector string
}

// NewBlog builds a blog-index source. An empty selector matches all anchors.
func NewBlog(client *web.Client, name, indexURL, linkSelector string) *Blog {
	if linkSelector == "" {
		linkSelector = defaultLinkSelector
	}
	return &Blog{
		client:       client,
		name:         name,
		indexURL:     indexURL,
		linkSelector: linkSelector,
	}
}

// Name implements feed.Source.
func (s *Blog) Name() string {
	return s.name
}

// ListTargets fetches the index page and extracts article links. Relative
// hrefs are resolved against the index URL; duplicates and empty titles are
// skipped.
func (s *Blog) ListTargets(ctx context.Context) ([]feed.Target, error) {
	body, err := s.client.Get(ctx, s.indexURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &feed.ExtractionError{Source: s.name, Err: fmt.Errorf("parse index: %w", err)}
	}
	base, err := url.Parse(s.indexURL)
	if err != nil {
		return nil, &feed.ExtractionError{Source: s.name, Err: fmt.Errorf("parse index url: %w", err)}
	}

	var targets []feed.Target
	seen := make(map[string]struct{})
	doc.Find(s.linkSelector).Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			return
		}
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := base.Parse(href)
		if err != nil {
			return
		}
		abs := ref.String()
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		targets = append(targets, feed.Target{Ref: abs, Title: title})
	})
	return targets, nil
}

// FetchTarget fetches the article page and attaches its meta description
// when one is present.
func (s *Blog) FetchTarget(ctx context.Context, target feed.Target) (feed.Item, error) {
	item := feed.NewItem(target.Title, target.Ref, s.name)

	body, err := s.client.Get(ctx, target.Ref)
	if err != nil {
		return feed.Item{}, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return feed.Item{}, &feed.ExtractionError{Source: s.name, Err: fmt.Errorf("parse article %s: %w", target.Ref, err)}
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			item = item.WithDescription(desc)
		}
	}
	return item, nil
}
