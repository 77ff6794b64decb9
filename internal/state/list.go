package state

// Kind identifies the role a selection list plays in the cascade.
type Kind int

const (
	KindNone Kind = iota
	KindPartOfSpeech
	KindDefinition
	KindSynonym
	KindAntonym
)

func (k Kind) String() string {
	switch k {
	case KindPartOfSpeech:
		return "part-of-speech"
	case KindDefinition:
		return "definition"
	case KindSynonym:
		return "synonym"
	case KindAntonym:
		return "antonym"
	default:
		return "none"
	}
}

// SelectionList is an ordered list with a single active index. The index is
// -1 exactly when the list is empty.
type SelectionList[T any] struct {
	items    []T
	selected int
	kind     Kind
}

// NewSelectionList copies items into a new list with the first item selected.
func NewSelectionList[T any](kind Kind, items []T) SelectionList[T] {
	l := SelectionList[T]{kind: kind, selected: -1}
	if len(items) > 0 {
		l.items = make([]T, len(items))
		copy(l.items, items)
		l.selected = 0
	}
	return l
}

// Kind reports the cascade role of the list.
func (l SelectionList[T]) Kind() Kind {
	return l.kind
}

// Len returns the number of items.
func (l SelectionList[T]) Len() int {
	return len(l.items)
}

// Items returns a copy of the list items.
func (l SelectionList[T]) Items() []T {
	if len(l.items) == 0 {
		return nil
	}
	dup := make([]T, len(l.items))
	copy(dup, l.items)
	return dup
}

// Selected returns the active index, or -1 for an empty list.
func (l SelectionList[T]) Selected() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.selected
}

// SelectedItem returns the active item.
func (l SelectionList[T]) SelectedItem() (T, bool) {
	var zero T
	if len(l.items) == 0 || l.selected < 0 || l.selected >= len(l.items) {
		return zero, false
	}
	return l.items[l.selected], true
}

// Down moves to the next item, wrapping to the first.
func (l *SelectionList[T]) Down() bool {
	n := len(l.items)
	if n == 0 {
		return false
	}
	old := l.selected
	if l.selected < n-1 {
		l.selected++
	} else {
		l.selected = 0
	}
	return old != l.selected
}

// Up moves to the previous item, wrapping to the last.
func (l *SelectionList[T]) Up() bool {
	n := len(l.items)
	if n == 0 {
		return false
	}
	old := l.selected
	if l.selected > 0 {
		l.selected--
	} else {
		l.selected = n - 1
	}
	return old != l.selected
}

// Select moves to index i when it is in range.
func (l *SelectionList[T]) Select(i int) bool {
	if i < 0 || i >= len(l.items) || i == l.selected {
		return false
	}
	l.selected = i
	return true
}

// Reset selects the first item again.
func (l *SelectionList[T]) Reset() bool {
	if len(l.items) == 0 {
		return false
	}
	return l.Select(0)
}
