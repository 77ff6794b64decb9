package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/thesaurus/internal/dictionary"
	"github.com/atomicstack/thesaurus/internal/lookup"
)

type fakeLooker struct {
	results map[string]lookup.Result
	calls   []string
}

func (f *fakeLooker) Lookup(_ context.Context, word string, spellingFix bool) lookup.Result {
	f.calls = append(f.calls, word)
	if res, ok := f.results[word]; ok {
		return res
	}
	return lookup.Result{
		Query:   word,
		Entries: []dictionary.Entry{dictionary.MessageEntry(lookup.MessageCheckSpelling)},
	}
}

func catResult() lookup.Result {
	return lookup.Result{
		Query: "cat",
		Entries: []dictionary.Entry{{
			Word: "cat",
			Meanings: []dictionary.Meaning{
				{
					PartOfSpeech: "noun",
					Definitions: []dictionary.Definition{
						{Text: "A small domesticated carnivorous mammal.", Synonyms: []string{"feline", "puss"}},
						{Text: "A wild animal of the cat family."},
					},
					Synonyms: []string{"kitty", "feline"},
				},
				{
					PartOfSpeech: "verb",
					Definitions: []dictionary.Definition{
						{Text: "Raise (an anchor) from the surface of the water.", Antonyms: []string{"drop"}},
					},
				},
				{
					PartOfSpeech: "noun",
					Definitions: []dictionary.Definition{
						{Text: "A catamaran."},
					},
				},
			},
		}},
	}
}

func singleMeaningResult() lookup.Result {
	return lookup.Result{
		Query: "hello",
		Entries: []dictionary.Entry{{
			Word: "hello",
			Meanings: []dictionary.Meaning{{
				PartOfSpeech: "exclamation",
				Definitions: []dictionary.Definition{
					{Text: "Used as a greeting."},
					{Text: "Used to attract attention."},
					{Text: "Used to express surprise."},
				},
			}},
		}},
	}
}

func typeWord(s *Session, word string) {
	for _, r := range word {
		s.HandleKey(Text(string(r)))
	}
}

func newTestSession(results map[string]lookup.Result) (*Session, *fakeLooker) {
	looker := &fakeLooker{results: results}
	return New(WithLooker(looker)), looker
}

func search(t *testing.T, s *Session, word string) {
	t.Helper()
	s.Dispatch(context.Background(), Text("/"))
	require.Equal(t, Editing, s.Mode())
	typeWord(s, word)
	s.Dispatch(context.Background(), Named("enter"))
}

func TestNewSessionIsEmpty(t *testing.T) {
	s := New()
	assert.Equal(t, Normal, s.Mode())
	assert.False(t, s.ShouldQuit())
	assert.False(t, s.Pending())
	_, ok := s.Result()
	assert.False(t, ok)
	assert.Zero(t, s.PartsOfSpeech().Len())
	assert.Equal(t, -1, s.Definitions().Selected())
}

func TestQuitInNormal(t *testing.T) {
	s := New()
	s.HandleKey(Text("q"))
	assert.True(t, s.ShouldQuit())
	assert.Equal(t, Normal, s.Mode())

	s = New()
	s.HandleKey(Named("esc"))
	assert.True(t, s.ShouldQuit())
}

func TestEmptyCommitIsNoOp(t *testing.T) {
	s, looker := newTestSession(nil)
	s.HandleKey(Text("/"))
	typeWord(s, "   ")

	ran := s.Dispatch(context.Background(), Named("enter"))
	assert.False(t, ran)
	assert.Equal(t, Editing, s.Mode())
	assert.Empty(t, looker.calls)
	assert.False(t, s.Pending())
}

func TestCommitBuildsCascade(t *testing.T) {
	s, looker := newTestSession(map[string]lookup.Result{"cat": catResult()})
	search(t, s, "cat")

	assert.Equal(t, []string{"cat"}, looker.calls)
	assert.Equal(t, Normal, s.Mode())
	assert.Equal(t, "cat", s.Query().String())

	pos := s.PartsOfSpeech()
	assert.Equal(t, []string{"noun", "verb", "noun"}, pos.Items())
	assert.Equal(t, 0, pos.Selected())
	assert.Equal(t, []string{"A small domesticated carnivorous mammal.", "A wild animal of the cat family."}, s.Definitions().Items())
	assert.Equal(t, []string{"feline", "puss", "kitty"}, s.Synonyms().Items())
	assert.Zero(t, s.Antonyms().Len())
}

func TestPartOfSpeechNavigationRecomputesDefinitions(t *testing.T) {
	s, _ := newTestSession(map[string]lookup.Result{"cat": catResult()})
	search(t, s, "cat")

	s.HandleKey(Named("down"))
	require.Equal(t, SelectPartOfSpeech, s.Mode())
	assert.Equal(t, 1, s.PartsOfSpeech().Selected())
	assert.Equal(t, []string{"Raise (an anchor) from the surface of the water."}, s.Definitions().Items())
	assert.Equal(t, 0, s.Definitions().Selected())
	assert.Equal(t, []string{"drop"}, s.Antonyms().Items())
	assert.Zero(t, s.Synonyms().Len())

	s.HandleKey(Named("down"))
	s.HandleKey(Named("down"))
	assert.Equal(t, 0, s.PartsOfSpeech().Selected(), "wraps around")

	s.HandleKey(Named("up"))
	assert.Equal(t, 2, s.PartsOfSpeech().Selected())
	assert.Equal(t, []string{"A catamaran."}, s.Definitions().Items())

	s.HandleKey(Named("enter"))
	assert.Equal(t, SelectDefinition, s.Mode())
	assert.Equal(t, 2, s.PartsOfSpeech().Selected())

	s.HandleKey(Text("q"))
	assert.Equal(t, Normal, s.Mode())
	assert.False(t, s.ShouldQuit())
}

func TestFirstDownFromNormalMovesSelection(t *testing.T) {
	s, _ := newTestSession(map[string]lookup.Result{"cat": catResult()})
	search(t, s, "cat")
	require.Equal(t, Normal, s.Mode())

	_, committed := s.HandleKey(Named("down"))
	assert.False(t, committed)
	assert.Equal(t, SelectPartOfSpeech, s.Mode())
	assert.Equal(t, 1, s.PartsOfSpeech().Selected())
	assert.Equal(t, []string{"Raise (an anchor) from the surface of the water."}, s.Definitions().Items())
}

func TestPartOfSpeechQuitReturnsToNormal(t *testing.T) {
	s, _ := newTestSession(map[string]lookup.Result{"cat": catResult()})
	search(t, s, "cat")

	s.HandleKey(Named("up"))
	require.Equal(t, SelectPartOfSpeech, s.Mode())
	assert.Equal(t, 2, s.PartsOfSpeech().Selected())
	assert.Equal(t, []string{"A catamaran."}, s.Definitions().Items())
	s.HandleKey(Named("esc"))
	assert.Equal(t, Normal, s.Mode())
	assert.False(t, s.ShouldQuit())
}

func TestSingleMeaningDefinitionNavigation(t *testing.T) {
	s, _ := newTestSession(map[string]lookup.Result{"hello": singleMeaningResult()})
	search(t, s, "hello")

	s.HandleKey(Text("l"))
	require.Equal(t, SelectDefinition, s.Mode())
	assert.Equal(t, 0, s.Definitions().Selected())

	s.HandleKey(Text("l"))
	assert.Equal(t, 1, s.Definitions().Selected())
	def, ok := s.SelectedDefinition()
	require.True(t, ok)
	assert.Equal(t, "Used to attract attention.", def.Text)

	s.HandleKey(Named("left"))
	s.HandleKey(Named("left"))
	assert.Equal(t, 2, s.Definitions().Selected(), "wraps backwards")

	s.HandleKey(Named("esc"))
	assert.Equal(t, Normal, s.Mode())
	assert.Equal(t, 0, s.Definitions().Selected())
}

func TestLeftRightIgnoredWithSeveralPartsOfSpeech(t *testing.T) {
	s, _ := newTestSession(map[string]lookup.Result{"cat": catResult()})
	search(t, s, "cat")

	s.HandleKey(Text("l"))
	assert.Equal(t, Normal, s.Mode())
}

func TestNavigationIgnoredWithoutResult(t *testing.T) {
	s := New()
	for _, k := range []Key{Text("j"), Text("k"), Text("h"), Text("l"), Named("enter")} {
		s.HandleKey(k)
		assert.Equal(t, Normal, s.Mode(), k.Name)
	}
}

func TestEditingCancelRestoresQuery(t *testing.T) {
	s, looker := newTestSession(map[string]lookup.Result{"cat": catResult()})
	search(t, s, "cat")

	s.HandleKey(Text("/"))
	assert.Empty(t, s.Query().String())
	typeWord(s, "dog")
	s.HandleKey(Named("esc"))

	assert.Equal(t, Normal, s.Mode())
	assert.Equal(t, "cat", s.Query().String())
	assert.Len(t, looker.calls, 1)
	assert.Equal(t, 3, s.PartsOfSpeech().Len())
}

func TestEditingTreatsBindingsAsText(t *testing.T) {
	s := New()
	s.HandleKey(Text("/"))
	typeWord(s, "q/jk")
	assert.Equal(t, Editing, s.Mode())
	assert.Equal(t, "q/jk", s.Query().String())
	assert.False(t, s.ShouldQuit())
}

func TestEditingKeys(t *testing.T) {
	s := New()
	s.HandleKey(Text("/"))
	typeWord(s, "ice cream")

	s.HandleKey(Named("ctrl+w"))
	assert.Equal(t, "ice ", s.Query().String())

	s.HandleKey(Named("backspace"))
	assert.Equal(t, "ice", s.Query().String())

	s.HandleKey(Named("ctrl+a"))
	s.HandleKey(Text("n"))
	assert.Equal(t, "nice", s.Query().String())
	assert.Equal(t, 1, s.Query().Cursor())

	s.HandleKey(Named("ctrl+e"))
	assert.Equal(t, 4, s.Query().Cursor())

	s.HandleKey(Named("alt+b"))
	assert.Equal(t, 0, s.Query().Cursor())

	s.HandleKey(Named("ctrl+u"))
	assert.True(t, s.Query().Empty())

	s.HandleKey(Key{Name: "ctrl+x"})
	assert.True(t, s.Query().Empty())
}

func TestSuggestionFlow(t *testing.T) {
	suggestion := lookup.Result{
		Query:          "helllo",
		Entries:        []dictionary.Entry{dictionary.MessageEntry("hello")},
		UsedSuggestion: true,
	}
	s, looker := newTestSession(map[string]lookup.Result{
		"helllo": suggestion,
		"hello":  singleMeaningResult(),
	})
	search(t, s, "helllo")

	require.Equal(t, Suggesting, s.Mode())
	res, ok := s.Result()
	require.True(t, ok)
	assert.True(t, res.UsedSuggestion)
	assert.Equal(t, "hello", res.Entries[0].Message)
	assert.Zero(t, s.PartsOfSpeech().Len())
	assert.Zero(t, s.Definitions().Len())

	s.HandleKey(Named("enter"))
	require.Equal(t, Editing, s.Mode())
	assert.Equal(t, "hello", s.Query().String())

	s.Dispatch(context.Background(), Named("enter"))
	assert.Equal(t, []string{"helllo", "hello"}, looker.calls)
	assert.Equal(t, Normal, s.Mode())
	assert.Equal(t, []string{"exclamation"}, s.PartsOfSpeech().Items())
}

func TestSuggestionDismissAndNewSearch(t *testing.T) {
	suggestion := lookup.Result{Entries: []dictionary.Entry{dictionary.MessageEntry("hello")}, UsedSuggestion: true}

	s := New()
	s.Complete(suggestion)
	require.Equal(t, Suggesting, s.Mode())
	s.HandleKey(Text("x"))
	assert.Equal(t, Normal, s.Mode())

	s.Complete(suggestion)
	s.HandleKey(Text("/"))
	assert.Equal(t, Editing, s.Mode())
	assert.True(t, s.Query().Empty())

	s.Complete(suggestion)
	s.HandleKey(Text("q"))
	assert.Equal(t, Normal, s.Mode())
	assert.False(t, s.ShouldQuit())
}

func TestMessageResultEmptiesLists(t *testing.T) {
	s, _ := newTestSession(map[string]lookup.Result{"cat": catResult()})
	search(t, s, "cat")
	require.Equal(t, 3, s.PartsOfSpeech().Len())

	search(t, s, "zzzxq")
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, lookup.MessageCheckSpelling, res.Entries[0].Message)
	assert.Equal(t, Normal, s.Mode())
	assert.Zero(t, s.PartsOfSpeech().Len())
	assert.Zero(t, s.Definitions().Len())
	assert.Zero(t, s.Synonyms().Len())
	assert.Zero(t, s.Antonyms().Len())
	_, ok = s.Entry()
	assert.False(t, ok)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	s := New()
	s.Complete(catResult())
	s.HandleKey(Text("j"))
	s.HandleKey(Text("j"))

	pos, defs, syn, ant := s.PartsOfSpeech(), s.Definitions(), s.Synonyms(), s.Antonyms()
	s.recomputeDefinitions()
	assert.Equal(t, pos, s.PartsOfSpeech())
	assert.Equal(t, defs, s.Definitions())
	assert.Equal(t, syn, s.Synonyms())
	assert.Equal(t, ant, s.Antonyms())

	s.Complete(catResult())
	first := s.Definitions()
	s.Complete(catResult())
	assert.Equal(t, first, s.Definitions())
}

func TestPendingRequestBlocksKeys(t *testing.T) {
	s := New()
	s.HandleKey(Text("/"))
	typeWord(s, "cat")
	req, ok := s.HandleKey(Named("enter"))
	require.True(t, ok)
	assert.Equal(t, Request{Word: "cat", SpellingFix: true}, req)
	assert.True(t, s.Pending())

	_, ok = s.HandleKey(Named("enter"))
	assert.False(t, ok)
	s.HandleKey(Text("x"))
	assert.Equal(t, "cat", s.Query().String())

	s.Complete(catResult())
	assert.False(t, s.Pending())
	assert.Equal(t, Normal, s.Mode())
}

func TestSubmitAndSpellingFixOption(t *testing.T) {
	s := New(WithSpellingFix(false))
	req, ok := s.Submit("  cat ")
	require.True(t, ok)
	assert.Equal(t, Request{Word: "cat", SpellingFix: false}, req)

	_, ok = New().Submit("   ")
	assert.False(t, ok)
}

func TestDispatchWithoutLooker(t *testing.T) {
	s := New()
	s.HandleKey(Text("/"))
	typeWord(s, "cat")
	assert.False(t, s.Dispatch(context.Background(), Named("enter")))
	assert.False(t, s.Pending())
	assert.Equal(t, Editing, s.Mode())
}

func TestHelpFollowsMode(t *testing.T) {
	helpKeys := func(s *Session) []string {
		var out []string
		for _, b := range s.Help() {
			out = append(out, b.Help().Desc)
		}
		return out
	}

	s := New()
	assert.Equal(t, []string{"insert", "quit"}, helpKeys(s))

	s.Complete(catResult())
	assert.Equal(t, []string{"change part of speech", "insert", "quit"}, helpKeys(s))

	s.Complete(singleMeaningResult())
	assert.Equal(t, []string{"change definition", "insert", "quit"}, helpKeys(s))

	s.Complete(lookup.Result{Query: "qwzx", Entries: []dictionary.Entry{dictionary.MessageEntry(lookup.MessageCheckSpelling)}})
	assert.Equal(t, []string{"insert", "quit"}, helpKeys(s), "message results offer no list navigation")
	s.Complete(singleMeaningResult())

	s.HandleKey(Text("/"))
	assert.Equal(t, []string{"search", "cancel"}, helpKeys(s))

	s.HandleKey(Named("esc"))
	s.HandleKey(Text("j"))
	assert.Equal(t, []string{"change part of speech", "select", "back"}, helpKeys(s))

	s.HandleKey(Named("enter"))
	assert.Equal(t, []string{"change definition", "insert", "back"}, helpKeys(s))

	// The default map must be untouched by per-mode relabelling.
	assert.Equal(t, "search", DefaultKeyMap().Commit.Help().Desc)
	assert.Equal(t, "search", s.KeyMap().Commit.Help().Desc)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "normal", Normal.String())
	assert.Equal(t, "suggesting", Suggesting.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
