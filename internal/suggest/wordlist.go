package suggest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultWordlistPath is the system word list present on most Unix systems.
const DefaultWordlistPath = "/usr/share/dict/words"

// DefaultMaxDistance is the largest edit distance Wordlist accepts.
const DefaultMaxDistance = 2

// ErrNoWords is returned by a Wordlist with nothing to compare against.
var ErrNoWords = errors.New("suggest: word list is empty")

// Wordlist suggests corrections offline from a list of known words.
type Wordlist struct {
	words       []string
	known       map[string]struct{}
	maxDistance int
}

// NewWordlist builds a speller over words. Blank entries and duplicates are
// dropped; order is preserved and breaks ties between equal candidates.
func NewWordlist(words []string, maxDistance int) *Wordlist {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	w := &Wordlist{
		known:       make(map[string]struct{}, len(words)),
		maxDistance: maxDistance,
	}
	for _, word := range words {
		trimmed := strings.TrimSpace(word)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, dup := w.known[key]; dup {
			continue
		}
		w.known[key] = struct{}{}
		w.words = append(w.words, trimmed)
	}
	return w
}

// LoadWordlist reads one word per line from path.
func LoadWordlist(path string, maxDistance int) (*Wordlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return NewWordlist(words, maxDistance), nil
}

// Len returns the number of known words.
func (w *Wordlist) Len() int {
	return len(w.words)
}

// Suggest returns the closest known word to word, or "" when word is already
// known or nothing is close enough.
func (w *Wordlist) Suggest(ctx context.Context, word string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(w.words) == 0 {
		return "", ErrNoWords
	}
	query := strings.ToLower(strings.TrimSpace(word))
	if query == "" {
		return "", nil
	}
	if _, ok := w.known[query]; ok {
		return "", nil
	}
	if best := w.closestByEditDistance(query); best != "" {
		return best, nil
	}
	return w.closestByFuzzyRank(query), nil
}

func (w *Wordlist) closestByEditDistance(query string) string {
	best := ""
	bestDistance := w.maxDistance + 1
	queryLen := len([]rune(query))
	for _, candidate := range w.words {
		lower := strings.ToLower(candidate)
		diff := len([]rune(lower)) - queryLen
		if diff < 0 {
			diff = -diff
		}
		if diff >= bestDistance {
			continue
		}
		d := fuzzy.LevenshteinDistance(query, lower)
		if d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}

// closestByFuzzyRank handles truncated input ("diction" → "dictionary") that
// is too far away by edit distance but matches as a subsequence.
func (w *Wordlist) closestByFuzzyRank(query string) string {
	ranks := fuzzy.RankFindNormalizedFold(query, w.words)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	return best.Target
}
