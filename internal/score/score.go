// Package score assigns keyword relevance to items using a shared
// multi-pattern matcher.
package score

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/feedrank/feedrank/internal/feed"
	"github.com/feedrank/feedrank/internal/match"
)

// Config bounds the scorer.
type Config struct {
	// MaxKeywords is a deliberate resource ceiling on matcher size: scoring
	// uses at most the first MaxKeywords configured keywords.
	MaxKeywords int
	// Workers sizes the scoring pool; 0 means one per available CPU.
	Workers int
}

// DefaultMaxKeywords caps the matcher when no ceiling is configured.
const DefaultMaxKeywords = 20

// Scorer scores batches of items against a keyword set. The matcher is built
// once per Score call and shared read-only by all workers, so its
// construction cost is amortized across the whole batch.
type Scorer struct {
	cfg    Config
	logger *zap.Logger
}

// New constructs a Scorer.
func New(cfg Config, logger *zap.Logger) *Scorer {
	if cfg.MaxKeywords <= 0 {
		cfg.MaxKeywords = DefaultMaxKeywords
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{
		cfg:    cfg,
		logger: logger,
	}
}

// Score computes a ScoredItem for every input item, preserving input order.
// Scoring an empty keyword set is a configuration error, not a zero score.
//
// Per item: each keyword contributes 1 + ln(count) when it occurs at least
// once. The logarithm gives diminishing returns per keyword so repetition
// cannot dominate an item that matches more distinct keywords. Matching is
// ASCII-case-insensitive over the item's searchable text.
func (s *Scorer) Score(items []feed.Item, keywords []string) ([]feed.ScoredItem, error) {
	if len(keywords) == 0 {
		return nil, &feed.InvalidConfigError{Detail: "no keywords configured"}
	}
	if len(keywords) > s.cfg.MaxKeywords {
		s.logger.Warn("keyword set exceeds matcher ceiling, truncating",
			zap.Int("configured", len(keywords)),
			zap.Int("max", s.cfg.MaxKeywords),
		)
		keywords = keywords[:s.cfg.MaxKeywords]
	}

	matcher, err := match.New(keywords)
	if err != nil {
		return nil, &feed.InvalidConfigError{Detail: fmt.Sprintf("build matcher: %v", err)}
	}

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(items) {
		workers = len(items)
	}

	scored := make([]feed.ScoredItem, len(items))
	if len(items) == 0 {
		return scored, nil
	}

	// Data-parallel map over independent items; the matcher is the only
	// shared state and it is immutable.
	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				scored[i] = scoreItem(items[i], matcher, keywords)
			}
		}()
	}
	for i := range items {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return scored, nil
}

// scoreItem matches one item against the shared automaton. The matched
// keyword list preserves configured keyword order, not discovery order.
func scoreItem(item feed.Item, matcher *match.Matcher, keywords []string) feed.ScoredItem {
	counts := matcher.Counts(item.SearchableText())

	var (
		score   float64
		matched []string
	)
	for id, count := range counts {
		if count == 0 {
			continue
		}
		score += 1 + math.Log(float64(count))
		matched = append(matched, keywords[id])
	}
	// Scores are always finite and non-negative; clamp instead of exposing a
	// non-finite intermediate.
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		score = 0
	}

	return feed.ScoredItem{
		Item:            item,
		Score:           score,
		MatchedKeywords: matched,
	}
}
