// Package match implements multi-pattern substring search with an
// Aho-Corasick automaton. The automaton is built once per pattern set and is
// immutable afterward, so a single instance is safely shared by any number of
// concurrent searches; scanning is O(len(text)) regardless of pattern count.
package match

import "errors"

// Build errors.
var (
	ErrNoPatterns   = errors.New("match: at least one pattern is required")
	ErrEmptyPattern = errors.New("match: patterns must be non-empty")
)

type node struct {
	next map[byte]int32
	fail int32
	// outputs holds the ids of every pattern ending at this state, with
	// fail-chain outputs merged in at build time.
	outputs []int
}

// Matcher is an immutable Aho-Corasick automaton over ASCII-case-folded
// patterns. Pattern ids are the positions in the slice passed to New.
type Matcher struct {
	nodes       []node
	numPatterns int
}

// New builds a Matcher. Matching is case-insensitive over ASCII.
func New(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	m := &Matcher{
		nodes:       []node{{next: make(map[byte]int32)}},
		numPatterns: len(patterns),
	}

	for id, pattern := range patterns {
		if pattern == "" {
			return nil, ErrEmptyPattern
		}
		state := int32(0)
		for i := 0; i < len(pattern); i++ {
			b := asciiLower(pattern[i])
			child, ok := m.nodes[state].next[b]
			if !ok {
				child = int32(len(m.nodes))
				m.nodes = append(m.nodes, node{next: make(map[byte]int32)})
				m.nodes[state].next[b] = child
			}
			state = child
		}
		m.nodes[state].outputs = append(m.nodes[state].outputs, id)
	}

	m.buildFailLinks()
	return m, nil
}

// buildFailLinks computes suffix links breadth-first and merges each state's
// outputs with its fail state's outputs, so scanning never has to walk the
// fail chain to report matches.
func (m *Matcher) buildFailLinks() {
	queue := make([]int32, 0, len(m.nodes))
	for _, child := range m.nodes[0].next {
		m.nodes[child].fail = 0
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		for b, child := range m.nodes[state].next {
			fail := m.nodes[state].fail
			for {
				if next, ok := m.nodes[fail].next[b]; ok && next != child {
					m.nodes[child].fail = next
					break
				}
				if fail == 0 {
					m.nodes[child].fail = 0
					break
				}
				fail = m.nodes[fail].fail
			}
			m.nodes[child].outputs = append(m.nodes[child].outputs, m.nodes[m.nodes[child].fail].outputs...)
			queue = append(queue, child)
		}
	}
}

// NumPatterns returns the size of the pattern id space.
func (m *Matcher) NumPatterns() int {
	return m.numPatterns
}

// Counts scans text once and returns the occurrence count per pattern id.
// Overlapping occurrences are all counted.
func (m *Matcher) Counts(text string) []int {
	counts := make([]int, m.numPatterns)
	state := int32(0)
	for i := 0; i < len(text); i++ {
		state = m.step(state, asciiLower(text[i]))
		for _, id := range m.nodes[state].outputs {
			counts[id]++
		}
	}
	return counts
}

func (m *Matcher) step(state int32, b byte) int32 {
	for {
		if next, ok := m.nodes[state].next[b]; ok {
			return next
		}
		if state == 0 {
			return 0
		}
		state = m.nodes[state].fail
	}
}

func asciiLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
