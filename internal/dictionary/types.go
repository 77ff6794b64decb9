// Package dictionary holds the word entry model and the clients that fetch it
// from the Free Dictionary API (dictionaryapi.dev).
package dictionary

// Entry is one dictionary record for a word. An entry with nil Meanings and a
// Message is a synthetic stand-in that carries a status line instead of
// definitions.
type Entry struct {
	Word     string    `json:"word,omitempty"`
	Phonetic string    `json:"phonetic,omitempty"`
	Origin   string    `json:"origin,omitempty"`
	Meanings []Meaning `json:"meanings"`
	Message  string    `json:"-"`
}

// Meaning groups the definitions sharing a part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech,omitempty"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms,omitempty"`
	Antonyms     []string     `json:"antonyms,omitempty"`
}

// Definition is a single sense with an optional usage example.
type Definition struct {
	Text     string   `json:"definition,omitempty"`
	Example  string   `json:"example,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
	Antonyms []string `json:"antonyms,omitempty"`
}

// MessageEntry builds the synthetic entry used for errors, suggestions and
// empty states.
func MessageEntry(message string) Entry {
	return Entry{Message: message}
}

// IsMessage reports whether the entry is a synthetic status entry.
func (e Entry) IsMessage() bool {
	return e.Meanings == nil
}

// MeaningAt returns the meaning at idx, if present.
func (e Entry) MeaningAt(idx int) (Meaning, bool) {
	if idx < 0 || idx >= len(e.Meanings) {
		return Meaning{}, false
	}
	return e.Meanings[idx], true
}

// DefinitionAt returns the definition at idx, if present.
func (m Meaning) DefinitionAt(idx int) (Definition, bool) {
	if idx < 0 || idx >= len(m.Definitions) {
		return Definition{}, false
	}
	return m.Definitions[idx], true
}
