package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/atomicstack/thesaurus/internal/session"
)

const (
	searchPromptText   = "Search: "
	searchPlaceholder  = "press / to search"
	editingPlaceholder = "type a word"
)

// toSessionKey translates a Bubble Tea key press. Alt and ctrl chords keep
// their keystroke name but insert no text.
func toSessionKey(msg tea.KeyPressMsg) session.Key {
	k := session.Key{Name: msg.String()}
	if msg.Mod.Contains(tea.ModAlt) || msg.Mod.Contains(tea.ModCtrl) {
		return k
	}
	if msg.Text != "" {
		k.Runes = []rune(msg.Text)
	}
	return k
}

func (m *Model) updateCaret(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return cmd
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

// searchPrompt renders the search bar. The caret is only drawn while editing.
func (m *Model) searchPrompt() string {
	query := m.session.Query()
	if m.session.Mode() != session.Editing {
		prompt := render(styles.SearchPrompt, searchPromptText)
		if query.Empty() {
			return prompt + render(styles.SearchPlaceholder, searchPlaceholder)
		}
		return prompt + render(styles.Search, query.String())
	}

	prompt := render(styles.SearchPromptEditing, searchPromptText)
	if styles.Cursor != nil {
		m.caret.Style = *styles.Cursor
	}
	if styles.SearchEditing != nil {
		m.caret.TextStyle = *styles.SearchEditing
	} else {
		m.caret.TextStyle = lipgloss.Style{}
	}

	runes := []rune(query.String())
	if len(runes) == 0 {
		placeholder := []rune(editingPlaceholder)
		if styles.SearchPlaceholder != nil {
			m.caret.TextStyle = *styles.SearchPlaceholder
		}
		caret := m.renderCaret(string(placeholder[:1]))
		return prompt + caret + render(styles.SearchPlaceholder, string(placeholder[1:]))
	}

	pos := query.Cursor()
	before := render(styles.SearchEditing, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.SearchEditing, string(runes[pos+1:]))
	}
	return prompt + before + m.renderCaret(caretRune) + after
}

func (m *Model) renderCaret(char string) string {
	if char == "" {
		char = " "
	}
	m.caret.SetChar(char)

	base := m.caret.TextStyle.Inline(true)
	if m.caret.IsBlinked {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}
	return base.Reverse(true).Render(char)
}
