// Package feed defines the domain types and collaborator contracts shared
// across the aggregation pipeline.
package feed

// Item is one ingested content record. It is immutable once built except for
// the WithDescription builder step, and is passed by value through the
// pipeline stages.
type Item struct {
	Title       string
	URL         string
	Source      string
	Description string
}

// NewItem builds an Item without a description.
func NewItem(title, url, source string) Item {
	return Item{
		Title:  title,
		URL:    url,
		Source: source,
	}
}

// WithDescription returns a copy of the item carrying the given description.
func (it Item) WithDescription(description string) Item {
	it.Description = description
	return it
}

// SearchableText is the text the relevance scorer matches against: the title,
// joined with the description by a single space when a description is present.
func (it Item) SearchableText() string {
	if it.Description == "" {
		return it.Title
	}
	return it.Title + " " + it.Description
}

// ScoredItem is an Item annotated with its relevance score and the keywords
// that matched, in configured keyword order. Created once by the scorer and
// never mutated afterward.
type ScoredItem struct {
	Item            Item
	Score           float64
	MatchedKeywords []string
}

// Target references one unit of fetch work within a source: an item ID, a
// page link, or whatever the source hands out. Title is optional metadata a
// listing step may already know.
type Target struct {
	Ref   string
	Title string
}
