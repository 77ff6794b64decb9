package dictionary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls   map[string]int
	entries []Entry
	err     error
}

func (f *countingFetcher) Fetch(_ context.Context, word string) ([]Entry, error) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[word]++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func TestCached_ReusesSuccessfulFetch(t *testing.T) {
	src := &countingFetcher{entries: []Entry{{Word: "cat", Meanings: []Meaning{}}}}
	cached, err := NewCached(src, 8)
	require.NoError(t, err)

	first, err := cached.Fetch(context.Background(), "cat")
	require.NoError(t, err)
	second, err := cached.Fetch(context.Background(), " CAT ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls["cat"])
	assert.Equal(t, 1, cached.Len())
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	src := &countingFetcher{err: errors.New("boom")}
	cached, err := NewCached(src, 8)
	require.NoError(t, err)

	_, err = cached.Fetch(context.Background(), "cat")
	require.Error(t, err)
	_, err = cached.Fetch(context.Background(), "cat")
	require.Error(t, err)

	assert.Equal(t, 2, src.calls["cat"])
	assert.Zero(t, cached.Len())
}

func TestCached_EvictsOldest(t *testing.T) {
	src := &countingFetcher{entries: []Entry{{Word: "x", Meanings: []Meaning{}}}}
	cached, err := NewCached(src, 1)
	require.NoError(t, err)

	_, _ = cached.Fetch(context.Background(), "a")
	_, _ = cached.Fetch(context.Background(), "b")
	_, _ = cached.Fetch(context.Background(), "a")

	assert.Equal(t, 2, src.calls["a"])
	assert.Equal(t, 1, cached.Len())
}

func TestNewCached_RejectsInvalidInput(t *testing.T) {
	_, err := NewCached(nil, 8)
	assert.Error(t, err)

	_, err = NewCached(&countingFetcher{}, 0)
	assert.Error(t, err)
}

func TestEntryHelpers(t *testing.T) {
	msg := MessageEntry("Search error")
	assert.True(t, msg.IsMessage())
	assert.Equal(t, "Search error", msg.Message)

	entry := Entry{Meanings: []Meaning{{PartOfSpeech: "noun", Definitions: []Definition{{Text: "a"}}}}}
	meaning, ok := entry.MeaningAt(0)
	require.True(t, ok)
	_, ok = entry.MeaningAt(1)
	assert.False(t, ok)

	def, ok := meaning.DefinitionAt(0)
	require.True(t, ok)
	assert.Equal(t, "a", def.Text)
	_, ok = meaning.DefinitionAt(-1)
	assert.False(t, ok)
}
