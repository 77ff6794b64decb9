package session

import (
	"unicode"

	"charm.land/bubbles/v2/key"
)

// Key is a single key press as seen by the Session. Name follows Bubble Tea's
// key naming ("enter", "ctrl+w", "alt+b", "a"); Runes holds the text the key
// would insert, and is empty for control and modified keys.
type Key struct {
	Name  string
	Runes []rune
}

// String implements fmt.Stringer so Key works with key.Matches.
func (k Key) String() string {
	return k.Name
}

// Named builds a non-text key such as "enter" or "ctrl+u".
func Named(name string) Key {
	return Key{Name: name}
}

// Text builds a key that inserts text.
func Text(text string) Key {
	return Key{Name: text, Runes: []rune(text)}
}

func (k Key) printable() bool {
	if len(k.Runes) == 0 {
		return false
	}
	for _, r := range k.Runes {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// KeyMap holds the bindings the Session reacts to.
type KeyMap struct {
	Quit   key.Binding
	Edit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Commit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the standard vi-flavoured bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("q/esc", "quit"),
		),
		Edit: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "insert"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// relabel returns a copy of b with a different help description.
func relabel(b key.Binding, helpKey, desc string) key.Binding {
	out := b
	out.SetHelp(helpKey, desc)
	return out
}

// Help returns the bindings worth showing in the footer for the current mode.
func (s *Session) Help() []key.Binding {
	k := s.keys
	switch s.mode {
	case Editing:
		return []key.Binding{
			relabel(k.Commit, "enter", "search"),
			relabel(k.Cancel, "esc", "cancel"),
		}
	case SelectPartOfSpeech:
		return []key.Binding{
			relabel(k.Down, "j/k", "change part of speech"),
			relabel(k.Commit, "enter", "select"),
			relabel(k.Quit, "q/esc", "back"),
		}
	case SelectDefinition:
		return []key.Binding{
			relabel(k.Right, "l/h", "change definition"),
			k.Edit,
			relabel(k.Quit, "q/esc", "back"),
		}
	case Suggesting:
		return []key.Binding{
			relabel(k.Commit, "enter", "use suggestion"),
			relabel(k.Edit, "/", "new search"),
			relabel(k.Quit, "any key", "dismiss"),
		}
	}
	switch {
	case s.partsOfSpeech.Len() == 1:
		return []key.Binding{relabel(k.Right, "l/h", "change definition"), k.Edit, k.Quit}
	case s.partsOfSpeech.Len() > 1:
		return []key.Binding{relabel(k.Down, "j/k", "change part of speech"), k.Edit, k.Quit}
	}
	return []key.Binding{k.Edit, k.Quit}
}
