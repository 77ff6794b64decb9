package command

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/thesaurus/internal/dictionary"
	"github.com/atomicstack/thesaurus/internal/logging/events"
	"github.com/atomicstack/thesaurus/internal/lookup"
)

// Looker resolves a committed query.
type Looker interface {
	Lookup(ctx context.Context, word string, spellingFix bool) lookup.Result
}

// Request encapsulates one lookup invocation.
type Request struct {
	ID          string
	Label       string
	Word        string
	SpellingFix bool
}

// ResultMsg carries a finished lookup back into the Bubble Tea loop.
type ResultMsg struct {
	ID     string
	Result lookup.Result
}

// Bus runs lookups off the update loop.
type Bus struct {
	ctx    context.Context
	looker Looker
}

// New initialises a command bus instance. A nil ctx is treated as
// context.Background.
func New(ctx context.Context, looker Looker) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, looker: looker}
}

// Execute wraps a lookup into a Bubble Tea command while emitting trace logs.
// The command always yields a ResultMsg so the caller is never left waiting.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		var msg ResultMsg
		if b.looker == nil {
			events.Command.Skip(req.ID, req.Label)
			msg = ResultMsg{
				ID: req.ID,
				Result: lookup.Result{
					Query:   req.Word,
					Entries: []dictionary.Entry{dictionary.MessageEntry(lookup.MessageCheckSpelling)},
				},
			}
			return msg
		}
		msg = ResultMsg{ID: req.ID, Result: b.looker.Lookup(b.ctx, req.Word, req.SpellingFix)}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
