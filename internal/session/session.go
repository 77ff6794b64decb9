// Package session implements the interactive state machine of the dictionary
// browser: input modes, the query buffer, and the cascading selection lists
// derived from the most recent lookup result.
package session

import (
	"context"

	"charm.land/bubbles/v2/key"

	"github.com/atomicstack/thesaurus/internal/lookup"
	"github.com/atomicstack/thesaurus/internal/logging/events"
	"github.com/atomicstack/thesaurus/internal/state"
)

// Looker runs a lookup to completion. *lookup.Pipeline satisfies it.
type Looker interface {
	Lookup(ctx context.Context, word string, spellingFix bool) lookup.Result
}

// Request is a committed query the host must resolve and hand back through
// Complete.
type Request struct {
	Word        string
	SpellingFix bool
}

// Session owns all interactive state. It is not safe for concurrent use; the
// host serialises calls.
type Session struct {
	mode    Mode
	query   state.QueryBuffer
	saved   string
	result  *lookup.Result
	pending *Request

	partsOfSpeech state.SelectionList[string]
	definitions   state.SelectionList[string]
	synonyms      state.SelectionList[string]
	antonyms      state.SelectionList[string]

	shouldQuit  bool
	spellingFix bool
	keys        KeyMap
	looker      Looker
}

// Option customises a Session.
type Option func(*Session)

// WithSpellingFix toggles the spelling-suggestion fallback on commit.
func WithSpellingFix(enabled bool) Option {
	return func(s *Session) {
		s.spellingFix = enabled
	}
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(km KeyMap) Option {
	return func(s *Session) {
		s.keys = km
	}
}

// WithLooker sets the collaborator used by Dispatch.
func WithLooker(l Looker) Option {
	return func(s *Session) {
		s.looker = l
	}
}

// New returns a Session in Normal mode with no result and empty lists.
func New(opts ...Option) *Session {
	s := &Session{
		mode:          Normal,
		query:         state.NewQueryBuffer(""),
		spellingFix:   true,
		keys:          DefaultKeyMap(),
		partsOfSpeech: state.NewSelectionList[string](state.KindPartOfSpeech, nil),
		definitions:   state.NewSelectionList[string](state.KindDefinition, nil),
		synonyms:      state.NewSelectionList[string](state.KindSynonym, nil),
		antonyms:      state.NewSelectionList[string](state.KindAntonym, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Mode() Mode { return s.mode }
func (s *Session) Query() state.QueryBuffer { return s.query }
func (s *Session) PartsOfSpeech() state.SelectionList[string] { return s.partsOfSpeech }
func (s *Session) Definitions() state.SelectionList[string] { return s.definitions }
func (s *Session) Synonyms() state.SelectionList[string] { return s.synonyms }
func (s *Session) Antonyms() state.SelectionList[string] { return s.antonyms }
func (s *Session) ShouldQuit() bool { return s.shouldQuit }
func (s *Session) Pending() bool { return s.pending != nil }
func (s *Session) KeyMap() KeyMap { return s.keys }

// Result returns the most recent lookup result.
func (s *Session) Result() (lookup.Result, bool) {
	if s.result == nil {
		return lookup.Result{}, false
	}
	return *s.result, true
}

// Submit starts a lookup for word without going through the editor, as when
// a word is given on the command line.
func (s *Session) Submit(word string) (Request, bool) {
	if s.pending != nil {
		return Request{}, false
	}
	s.query.Set(word)
	if s.query.Trimmed() == "" {
		events.Query.Empty()
		return Request{}, false
	}
	return s.commit(), true
}

// HandleKey applies one key press. When the key commits a query it returns
// the Request to run; the Session stays pending until Complete is called.
// Keys are ignored while a request is pending.
func (s *Session) HandleKey(k Key) (Request, bool) {
	if s.pending != nil {
		return Request{}, false
	}
	switch s.mode {
	case Normal:
		s.handleNormal(k)
	case Editing:
		return s.handleEditing(k)
	case SelectPartOfSpeech:
		s.handleSelectPartOfSpeech(k)
	case SelectDefinition:
		s.handleSelectDefinition(k)
	case Suggesting:
		s.handleSuggesting(k)
	}
	return Request{}, false
}

// Complete stores res as the current result, rebuilds every list and leaves
// the editor: Suggesting when the result is a spelling suggestion, Normal
// otherwise.
func (s *Session) Complete(res lookup.Result) {
	s.pending = nil
	s.result = &res
	s.recompute()
	if res.UsedSuggestion {
		s.setMode(Suggesting)
		return
	}
	s.setMode(Normal)
}

// Dispatch handles k and, when it commits, runs the lookup synchronously
// through the configured Looker. It reports whether a lookup ran.
func (s *Session) Dispatch(ctx context.Context, k Key) bool {
	req, ok := s.HandleKey(k)
	if !ok {
		return false
	}
	if s.looker == nil {
		s.pending = nil
		return false
	}
	s.Complete(s.looker.Lookup(ctx, req.Word, req.SpellingFix))
	return true
}

func (s *Session) handleNormal(k Key) {
	switch {
	case key.Matches(k, s.keys.Quit):
		s.shouldQuit = true
		events.UI.Quit(s.mode.String())
	case key.Matches(k, s.keys.Edit):
		s.beginEditing("")
	case key.Matches(k, s.keys.Down, s.keys.Up):
		if s.partsOfSpeech.Len() > 0 {
			s.setMode(SelectPartOfSpeech)
			s.handleSelectPartOfSpeech(k)
		}
	case key.Matches(k, s.keys.Left, s.keys.Right):
		if s.partsOfSpeech.Len() == 1 {
			s.setMode(SelectDefinition)
		}
	}
}

func (s *Session) handleEditing(k Key) (Request, bool) {
	switch {
	case key.Matches(k, s.keys.Commit):
		if s.query.Trimmed() == "" {
			events.Query.Empty()
			return Request{}, false
		}
		return s.commit(), true
	case key.Matches(k, s.keys.Cancel):
		s.query.Set(s.saved)
		events.Query.Cancel(s.saved)
		s.setMode(Normal)
		return Request{}, false
	}
	s.editQuery(k)
	return Request{}, false
}

func (s *Session) handleSelectPartOfSpeech(k Key) {
	switch {
	case key.Matches(k, s.keys.Down):
		if s.partsOfSpeech.Down() {
			events.UI.Selection(state.KindPartOfSpeech.String(), s.partsOfSpeech.Selected())
		}
		s.recomputeDefinitions()
	case key.Matches(k, s.keys.Up):
		if s.partsOfSpeech.Up() {
			events.UI.Selection(state.KindPartOfSpeech.String(), s.partsOfSpeech.Selected())
		}
		s.recomputeDefinitions()
	case key.Matches(k, s.keys.Commit):
		s.recomputeDefinitions()
		s.setMode(SelectDefinition)
	case key.Matches(k, s.keys.Quit):
		s.setMode(Normal)
	}
}

func (s *Session) handleSelectDefinition(k Key) {
	switch {
	case key.Matches(k, s.keys.Right):
		if s.definitions.Down() {
			events.UI.Selection(state.KindDefinition.String(), s.definitions.Selected())
		}
		s.recomputeRelated()
	case key.Matches(k, s.keys.Left):
		if s.definitions.Up() {
			events.UI.Selection(state.KindDefinition.String(), s.definitions.Selected())
		}
		s.recomputeRelated()
	case key.Matches(k, s.keys.Quit):
		s.definitions.Reset()
		s.recomputeRelated()
		s.setMode(Normal)
	case key.Matches(k, s.keys.Edit):
		s.beginEditing("")
	}
}

func (s *Session) handleSuggesting(k Key) {
	switch {
	case key.Matches(k, s.keys.Commit):
		fix := ""
		if s.result != nil {
			fix, _ = s.result.Suggestion()
		}
		s.beginEditing(fix)
	case key.Matches(k, s.keys.Edit):
		s.beginEditing("")
	default:
		s.setMode(Normal)
	}
}

// beginEditing remembers the current query for cancel and replaces it with
// text.
func (s *Session) beginEditing(text string) {
	s.saved = s.query.String()
	s.query.Set(text)
	events.Query.Edit(s.saved)
	s.setMode(Editing)
}

func (s *Session) commit() Request {
	req := Request{Word: s.query.Trimmed(), SpellingFix: s.spellingFix}
	s.pending = &req
	events.Query.Commit(req.Word)
	return req
}

func (s *Session) editQuery(k Key) {
	q := &s.query
	switch k.Name {
	case "backspace", "ctrl+h":
		if q.DeleteRuneBackward() {
			events.Query.Backspace(q.String())
		}
		return
	case "ctrl+w", "alt+backspace":
		if q.DeleteWordBackward() {
			events.Query.WordBackspace(q.String())
		}
		return
	case "ctrl+u":
		if q.Clear() {
			events.Query.Cleared()
		}
		return
	case "ctrl+a", "home":
		s.noteCursor(q.MoveStart())
		return
	case "ctrl+e", "end":
		s.noteCursor(q.MoveEnd())
		return
	case "left", "ctrl+b":
		s.noteCursor(q.MoveRuneBackward())
		return
	case "right", "ctrl+f":
		s.noteCursor(q.MoveRuneForward())
		return
	case "alt+b", "alt+left", "ctrl+left":
		s.noteCursor(q.MoveWordBackward())
		return
	case "alt+f", "alt+right", "ctrl+right":
		s.noteCursor(q.MoveWordForward())
		return
	}
	if !k.printable() {
		return
	}
	if q.Insert(string(k.Runes)) {
		events.Query.Append(q.String())
	}
}

func (s *Session) noteCursor(moved bool) {
	if moved {
		events.Query.Cursor(s.query.Cursor())
	}
}

func (s *Session) setMode(m Mode) {
	if s.mode == m {
		return
	}
	events.UI.Mode(s.mode.String(), m.String())
	s.mode = m
}
