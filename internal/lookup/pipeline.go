// Package lookup turns a word into a LookupResult, falling back to a spelling
// suggestion when the dictionary has nothing. Failures never escape: every
// outcome is a list of entries, with failures carried as message entries.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/thesaurus/internal/dictionary"
	"github.com/atomicstack/thesaurus/internal/logging"
	"github.com/atomicstack/thesaurus/internal/logging/events"
)

const (
	// MessageCheckSpelling is shown when the dictionary fails and no
	// suggestion was attempted.
	MessageCheckSpelling = "Please double-check your spelling."
	// MessageSearchError is shown when both the dictionary and the speller fail.
	MessageSearchError = "Search error"
)

// Dictionary fetches entries for a word.
type Dictionary interface {
	Fetch(ctx context.Context, word string) ([]dictionary.Entry, error)
}

// Speller returns a corrected spelling for a word. An empty string with a nil
// error means the speller had no correction.
type Speller interface {
	Suggest(ctx context.Context, word string) (string, error)
}

// Result is the outcome of one lookup.
type Result struct {
	Query          string
	Entries        []dictionary.Entry
	UsedSuggestion bool
}

// Suggestion returns the suggested word when the result came from the speller.
func (r Result) Suggestion() (string, bool) {
	if !r.UsedSuggestion || len(r.Entries) == 0 {
		return "", false
	}
	return r.Entries[0].Message, true
}

// Message returns the synthetic message text when the result is a single
// message entry.
func (r Result) Message() (string, bool) {
	if len(r.Entries) != 1 || !r.Entries[0].IsMessage() {
		return "", false
	}
	return r.Entries[0].Message, true
}

// Pipeline runs a dictionary lookup with spelling-suggestion fallback.
type Pipeline struct {
	dict    Dictionary
	speller Speller
	timeout time.Duration
	newID   func() string
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithTimeout bounds each lookup, both stages included.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

// New builds a pipeline. A nil speller disables spelling suggestions.
func New(dict Dictionary, speller Speller, opts ...Option) *Pipeline {
	p := &Pipeline{
		dict:    dict,
		speller: speller,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Lookup queries the dictionary for word. When that fails and spellingFix is
// set, the speller is asked for a correction which is returned as a message
// entry with UsedSuggestion set.
func (p *Pipeline) Lookup(ctx context.Context, word string, spellingFix bool) Result {
	id := p.newID()
	started := time.Now()
	events.Lookup.Start(id, word, spellingFix)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	res := p.lookup(ctx, id, word, spellingFix)
	events.Lookup.Done(id, len(res.Entries), res.UsedSuggestion, time.Since(started))
	return res
}

func (p *Pipeline) lookup(ctx context.Context, id, word string, spellingFix bool) Result {
	entries, err := p.fetch(ctx, word)
	if err == nil && len(entries) == 0 {
		err = dictionary.ErrNotFound
	}
	if err == nil {
		return Result{Query: word, Entries: entries}
	}
	events.Lookup.DictionaryFailed(id, word, err)
	if !errors.Is(err, dictionary.ErrNotFound) {
		logging.Error(fmt.Errorf("lookup %q: %w", word, err))
	}

	if !spellingFix || p.speller == nil {
		return messageResult(word, MessageCheckSpelling, false)
	}

	fix, err := p.suggest(ctx, word)
	if err != nil {
		events.Lookup.SuggestFailed(id, word, err)
		logging.Error(fmt.Errorf("suggest %q: %w", word, err))
		return messageResult(word, MessageSearchError, false)
	}
	events.Lookup.Suggested(id, word, fix)
	return messageResult(word, fix, true)
}

func (p *Pipeline) fetch(ctx context.Context, word string) (entries []dictionary.Entry, err error) {
	if p.dict == nil {
		return nil, errors.New("no dictionary configured")
	}
	defer func() {
		if r := recover(); r != nil {
			entries = nil
			err = fmt.Errorf("dictionary panic: %v", r)
		}
	}()
	return p.dict.Fetch(ctx, word)
}

func (p *Pipeline) suggest(ctx context.Context, word string) (fix string, err error) {
	defer func() {
		if r := recover(); r != nil {
			fix = ""
			err = fmt.Errorf("speller panic: %v", r)
		}
	}()
	return p.speller.Suggest(ctx, word)
}

func messageResult(word, msg string, usedSuggestion bool) Result {
	return Result{
		Query:          word,
		Entries:        []dictionary.Entry{dictionary.MessageEntry(msg)},
		UsedSuggestion: usedSuggestion,
	}
}
