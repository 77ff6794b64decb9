package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/atomicstack/thesaurus/internal/dictionary"
	"github.com/atomicstack/thesaurus/internal/lookup"
	"github.com/atomicstack/thesaurus/internal/session"
	"github.com/atomicstack/thesaurus/internal/state"
)

const (
	itemIndicator       = "  "
	selectedIndicator   = "› "
	partOfSpeechDivider = "  "
	relatedSeparator    = ", "
	minDefinitionRows   = 3
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text already carries ANSI escapes
}

// View implements tea.Model. The browser always runs in the alternate
// screen.
func (m *Model) View() tea.View {
	v := tea.NewView(m.content())
	v.AltScreen = true
	return v
}

func (m *Model) content() string {
	top := make([]styledLine, 0, 4)
	if header := m.headerLine(); header.text != "" {
		top = append(top, header)
	}
	top = append(top, styledLine{text: m.searchPrompt(), raw: true}, styledLine{})

	var bottom []styledLine
	if m.showFooter {
		bottom = append(bottom, styledLine{}, styledLine{text: m.footer(), raw: true})
	}

	body := m.bodyLines()
	if m.height > 0 {
		body = limitHeight(body, m.height-len(top)-len(bottom), m.width)
	}

	lines := make([]styledLine, 0, len(top)+len(body)+len(bottom))
	lines = append(lines, top...)
	lines = append(lines, body...)
	lines = append(lines, bottom...)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) headerLine() styledLine {
	entry, ok := m.session.Entry()
	if !ok || entry.Word == "" {
		return styledLine{}
	}
	text := render(styles.Header, entry.Word)
	if entry.Phonetic != "" {
		text += "  " + render(styles.Phonetic, entry.Phonetic)
	}
	return styledLine{text: text, raw: true}
}

func (m *Model) footer() string {
	m.help.SetWidth(m.width)
	return m.help.ShortHelpView(m.session.Help())
}

func (m *Model) bodyLines() []styledLine {
	if m.session.Pending() {
		word := m.session.Query().Trimmed()
		return []styledLine{{text: fmt.Sprintf("Looking up %q…", word), style: styles.Loading}}
	}
	res, ok := m.session.Result()
	if !ok {
		return []styledLine{{text: "Nothing looked up yet.", style: styles.Info}}
	}
	if res.UsedSuggestion {
		msg, _ := res.Suggestion()
		return m.suggestionLines(msg)
	}
	return m.entryLines(displayEntry(res))
}

// displayEntry picks the entry the body describes: the first real entry, or
// the result's message entry when it has none.
func displayEntry(res lookup.Result) dictionary.Entry {
	for _, e := range res.Entries {
		if !e.IsMessage() {
			return e
		}
	}
	if len(res.Entries) > 0 {
		return res.Entries[0]
	}
	return dictionary.MessageEntry(lookup.MessageCheckSpelling)
}

func (m *Model) suggestionLines(msg string) []styledLine {
	text := "No suggestions found."
	if msg != "" {
		text = "Did you mean " + render(styles.Suggestion, msg) + "?"
	}
	if m.session.Mode() != session.Suggesting {
		return []styledLine{{text: text, raw: true}}
	}
	hint := render(styles.Footer, "enter: edit suggestion  /: new search  any key: dismiss")
	box := text + "\n" + hint
	if styles.SuggestionBox != nil {
		box = styles.SuggestionBox.Render(box)
	}
	var lines []styledLine
	for _, line := range strings.Split(box, "\n") {
		lines = append(lines, styledLine{text: line, raw: true})
	}
	return lines
}

// entryLines lays out an entry as its part-of-speech row, the definition
// list and the detail block. An entry without meanings shows its message in
// place of the definitions.
func (m *Model) entryLines(entry dictionary.Entry) []styledLine {
	lines := make([]styledLine, 0, 16)
	mode := m.session.Mode()

	if pos := m.session.PartsOfSpeech(); pos.Len() > 0 {
		lines = append(lines, styledLine{text: "Part of speech", style: styles.Section})
		lines = append(lines, styledLine{text: partOfSpeechRow(pos, mode == session.SelectPartOfSpeech), raw: true})
		lines = append(lines, styledLine{})
	}

	defs := m.session.Definitions()
	title := "Definitions"
	if defs.Len() > 0 {
		title = fmt.Sprintf("Definitions (%d/%d)", defs.Selected()+1, defs.Len())
	}
	lines = append(lines, styledLine{text: title, style: styles.Section})
	if defs.Len() == 0 {
		if entry.Message != "" {
			for _, line := range m.wrapped(entry.Message, styles.Message) {
				line.text = itemIndicator + line.text
				lines = append(lines, line)
			}
		} else {
			lines = append(lines, styledLine{text: itemIndicator + "(no definitions)", style: styles.Info})
		}
	}
	start, end := visibleWindow(defs.Len(), defs.Selected(), m.maxDefinitionRows())
	items := defs.Items()
	for i := start; i < end; i++ {
		lines = append(lines, definitionRow(i, items[i], i == defs.Selected(), mode == session.SelectDefinition))
	}

	if detail := m.detailLines(); len(detail) > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, detail...)
	}
	return lines
}

func partOfSpeechRow(list state.SelectionList[string], focused bool) string {
	items := list.Items()
	parts := make([]string, len(items))
	for i, item := range items {
		if item == "" {
			item = "?"
		}
		style := styles.Item
		if i == list.Selected() {
			style = styles.ActiveItem
			if focused {
				style = styles.SelectedItem
			}
		}
		parts[i] = render(style, item)
	}
	return itemIndicator + strings.Join(parts, partOfSpeechDivider)
}

func definitionRow(idx int, text string, selected, focused bool) styledLine {
	label := fmt.Sprintf("%d. %s", idx+1, text)
	if !selected {
		return styledLine{text: render(styles.ItemIndicator, itemIndicator) + render(styles.Item, label), raw: true}
	}
	indicator := render(styles.ItemIndicator, selectedIndicator)
	style := styles.ActiveItem
	if focused {
		indicator = render(styles.SelectedItemIndicator, selectedIndicator)
		style = styles.SelectedItem
	}
	return styledLine{text: indicator + render(style, label), raw: true}
}

// detailLines describes the selected definition: its full text, example,
// synonyms, antonyms, and the entry's origin.
func (m *Model) detailLines() []styledLine {
	var lines []styledLine
	def, ok := m.session.SelectedDefinition()
	if ok {
		lines = append(lines, m.wrapped(def.Text, styles.Info)...)
		if def.Example != "" {
			lines = append(lines, m.wrapped(fmt.Sprintf("“%s”", def.Example), styles.Example)...)
		}
	}
	if syn := m.session.Synonyms(); syn.Len() > 0 {
		lines = append(lines, m.related("Synonyms: ", syn, styles.Synonym)...)
	}
	if ant := m.session.Antonyms(); ant.Len() > 0 {
		lines = append(lines, m.related("Antonyms: ", ant, styles.Antonym)...)
	}
	if entry, ok := m.session.Entry(); ok && entry.Origin != "" {
		lines = append(lines, m.wrapped("Origin: "+entry.Origin, styles.Origin)...)
	}
	return lines
}

func (m *Model) related(label string, list state.SelectionList[string], style *lipgloss.Style) []styledLine {
	return m.wrapped(label+strings.Join(list.Items(), relatedSeparator), style)
}

func (m *Model) wrapped(text string, style *lipgloss.Style) []styledLine {
	if m.width > 0 {
		text = wordwrap.String(text, m.width)
	}
	parts := strings.Split(text, "\n")
	lines := make([]styledLine, 0, len(parts))
	for _, part := range parts {
		lines = append(lines, styledLine{text: part, style: style})
	}
	return lines
}

// maxDefinitionRows keeps the definition list from pushing the detail block
// off screen. Returns -1 when the height is unknown.
func (m *Model) maxDefinitionRows() int {
	if m.height <= 0 {
		return -1
	}
	rows := m.height / 3
	if rows < minDefinitionRows {
		rows = minDefinitionRows
	}
	return rows
}

// visibleWindow returns the [start, end) slice of a list of n items that
// keeps selected in view with at most limit rows. A negative limit means
// unbounded.
func visibleWindow(n, selected, limit int) (int, int) {
	if limit < 0 || n <= limit {
		return 0, n
	}
	start := selected - limit/2
	if start < 0 {
		start = 0
	}
	if start+limit > n {
		start = n - limit
	}
	return start, start + limit
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw {
			out[i] = line.text
			continue
		}
		out[i] = render(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
