package session

import (
	"github.com/atomicstack/thesaurus/internal/dictionary"
	"github.com/atomicstack/thesaurus/internal/state"
)

// recompute rebuilds every list from the current result.
func (s *Session) recompute() {
	s.recomputePartsOfSpeech()
	s.recomputeDefinitions()
}

func (s *Session) recomputePartsOfSpeech() {
	entry, ok := s.Entry()
	if !ok {
		s.partsOfSpeech = state.NewSelectionList[string](state.KindPartOfSpeech, nil)
		return
	}
	items := make([]string, 0, len(entry.Meanings))
	for _, m := range entry.Meanings {
		items = append(items, m.PartOfSpeech)
	}
	s.partsOfSpeech = state.NewSelectionList(state.KindPartOfSpeech, items)
}

// recomputeDefinitions rebuilds the definition list for the selected part of
// speech, then the synonym and antonym lists below it.
func (s *Session) recomputeDefinitions() {
	var items []string
	if meaning, ok := s.SelectedMeaning(); ok {
		items = make([]string, 0, len(meaning.Definitions))
		for _, d := range meaning.Definitions {
			items = append(items, d.Text)
		}
	}
	s.definitions = state.NewSelectionList(state.KindDefinition, items)
	s.recomputeRelated()
}

// recomputeRelated rebuilds synonyms and antonyms for the selected
// definition. Definition-level words come first, followed by the words the
// whole meaning carries.
func (s *Session) recomputeRelated() {
	var syn, ant []string
	if meaning, ok := s.SelectedMeaning(); ok {
		if def, ok := meaning.DefinitionAt(s.definitions.Selected()); ok {
			syn = mergeUnique(def.Synonyms, meaning.Synonyms)
			ant = mergeUnique(def.Antonyms, meaning.Antonyms)
		}
	}
	s.synonyms = state.NewSelectionList(state.KindSynonym, syn)
	s.antonyms = state.NewSelectionList(state.KindAntonym, ant)
}

// Entry returns the first entry of the current result that carries meanings.
// Message entries never do.
func (s *Session) Entry() (dictionary.Entry, bool) {
	if s.result == nil {
		return dictionary.Entry{}, false
	}
	for _, e := range s.result.Entries {
		if !e.IsMessage() {
			return e, true
		}
	}
	return dictionary.Entry{}, false
}

// SelectedMeaning returns the meaning behind the selected part of speech.
func (s *Session) SelectedMeaning() (dictionary.Meaning, bool) {
	entry, ok := s.Entry()
	if !ok {
		return dictionary.Meaning{}, false
	}
	return entry.MeaningAt(s.partsOfSpeech.Selected())
}

// SelectedDefinition returns the definition behind the selected definition
// row.
func (s *Session) SelectedDefinition() (dictionary.Definition, bool) {
	meaning, ok := s.SelectedMeaning()
	if !ok {
		return dictionary.Definition{}, false
	}
	return meaning.DefinitionAt(s.definitions.Selected())
}

func mergeUnique(first, second []string) []string {
	if len(first) == 0 && len(second) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(first)+len(second))
	out := make([]string, 0, len(first)+len(second))
	for _, group := range [][]string{first, second} {
		for _, w := range group {
			if w == "" {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
