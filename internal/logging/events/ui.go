package events

import "github.com/atomicstack/thesaurus/internal/logging"

type UITracer struct{}

type QueryTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Query   = QueryTracer{}
	Command = CommandTracer{}
)

func (UITracer) Mode(from, to string) {
	logging.Trace("mode.change", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Selection(list string, index int) {
	logging.Trace("selection.move", map[string]interface{}{"list": list, "index": index})
}

func (UITracer) Quit(mode string) {
	logging.Trace("ui.quit", map[string]interface{}{"mode": mode})
}

func (QueryTracer) Edit(previous string) {
	logging.Trace("query.edit", map[string]interface{}{"previous": previous})
}

func (QueryTracer) Cancel(restored string) {
	logging.Trace("query.cancel", map[string]interface{}{"restored": restored})
}

func (QueryTracer) Commit(word string) {
	logging.Trace("query.commit", map[string]interface{}{"word": word})
}

func (QueryTracer) Empty() {
	logging.Trace("query.empty", nil)
}

func (QueryTracer) Append(query string) {
	logging.Trace("query.append", map[string]interface{}{"query": query})
}

func (QueryTracer) Backspace(query string) {
	logging.Trace("query.backspace", map[string]interface{}{"query": query})
}

func (QueryTracer) WordBackspace(query string) {
	logging.Trace("query.word-backspace", map[string]interface{}{"query": query})
}

func (QueryTracer) Cleared() {
	logging.Trace("query.clear", nil)
}

func (QueryTracer) Cursor(pos int) {
	logging.Trace("query.cursor", map[string]interface{}{"cursor": pos})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
