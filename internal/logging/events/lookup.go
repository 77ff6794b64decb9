package events

import (
	"time"

	"github.com/atomicstack/thesaurus/internal/logging"
)

type LookupTracer struct{}

var Lookup = LookupTracer{}

func (LookupTracer) Start(id, word string, spellingFix bool) {
	logging.Trace("lookup.start", map[string]interface{}{"id": id, "word": word, "spelling_fix": spellingFix})
}

func (LookupTracer) DictionaryFailed(id, word string, err error) {
	logging.Trace("lookup.dictionary.error", map[string]interface{}{"id": id, "word": word, "error": errString(err)})
}

func (LookupTracer) Suggested(id, word, suggestion string) {
	logging.Trace("lookup.suggest", map[string]interface{}{"id": id, "word": word, "suggestion": suggestion})
}

func (LookupTracer) SuggestFailed(id, word string, err error) {
	logging.Trace("lookup.suggest.error", map[string]interface{}{"id": id, "word": word, "error": errString(err)})
}

func (LookupTracer) Done(id string, entries int, usedSuggestion bool, elapsed time.Duration) {
	logging.Trace("lookup.done", map[string]interface{}{
		"id":              id,
		"entries":         entries,
		"used_suggestion": usedSuggestion,
		"elapsed_ms":      elapsed.Milliseconds(),
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
