package match

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, ErrNoPatterns)

	_, err = New([]string{"rust", ""})
	require.ErrorIs(t, err, ErrEmptyPattern)
}

func TestCounts_SinglePattern(t *testing.T) {
	t.Parallel()

	m, err := New([]string{"rust"})
	require.NoError(t, err)
	require.Equal(t, []int{2}, m.Counts("rust loves rust"))
	require.Equal(t, []int{0}, m.Counts("python tutorial"))
}

func TestCounts_CaseInsensitiveASCII(t *testing.T) {
	t.Parallel()

	m, err := New([]string{"Rust", "ASYNC"})
	require.NoError(t, err)
	require.Equal(t, []int{1, 1}, m.Counts("rUSt and AsYnC"))
}

func TestCounts_PatternIDsMatchPositions(t *testing.T) {
	t.Parallel()

	keywords := []string{"tokio", "rust", "async"}
	m, err := New(keywords)
	require.NoError(t, err)
	require.Equal(t, 3, m.NumPatterns())

	counts := m.Counts("async rust")
	require.Equal(t, []int{0, 1, 1}, counts)
}

func TestCounts_OverlappingOccurrences(t *testing.T) {
	t.Parallel()

	m, err := New([]string{"aa"})
	require.NoError(t, err)
	require.Equal(t, []int{2}, m.Counts("aaa"))
}

func TestCounts_PatternsSharingPrefixesAndSuffixes(t *testing.T) {
	t.Parallel()

	// "he", "she", "his", "hers" is the classic Aho-Corasick fixture; "she"
	// contains "he" as a suffix, exercising merged fail-chain outputs.
	m, err := New([]string{"he", "she", "his", "hers"})
	require.NoError(t, err)

	counts := m.Counts("ushers")
	require.Equal(t, []int{1, 1, 0, 1}, counts)
}

func TestCounts_SubstringMatching(t *testing.T) {
	t.Parallel()

	m, err := New([]string{"go"})
	require.NoError(t, err)
	// Substring semantics: "go" occurs inside "golang" and "cargo".
	require.Equal(t, []int{2}, m.Counts("golang cargo"))
}

func TestCounts_ConcurrentUse(t *testing.T) {
	t.Parallel()

	m, err := New([]string{"rust", "async", "tokio"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				counts := m.Counts("rust async rust tokio")
				require.Equal(t, []int{2, 1, 1}, counts)
			}
		}()
	}
	wg.Wait()
}
