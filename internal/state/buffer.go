package state

import (
	"strings"
	"unicode"
)

// QueryBuffer is a single-line text buffer with a rune cursor.
type QueryBuffer struct {
	text   []rune
	cursor int
}

// NewQueryBuffer returns a buffer holding text with the cursor at the end.
func NewQueryBuffer(text string) QueryBuffer {
	b := QueryBuffer{}
	b.Set(text)
	return b
}

// String returns the buffer contents.
func (b QueryBuffer) String() string {
	return string(b.text)
}

// Trimmed returns the contents without surrounding whitespace.
func (b QueryBuffer) Trimmed() string {
	return strings.TrimSpace(string(b.text))
}

// Empty reports whether the buffer has no non-space text.
func (b QueryBuffer) Empty() bool {
	return b.Trimmed() == ""
}

// Cursor returns the rune offset of the cursor.
func (b QueryBuffer) Cursor() int {
	if b.cursor < 0 {
		return 0
	}
	if b.cursor > len(b.text) {
		return len(b.text)
	}
	return b.cursor
}

// Set replaces the contents and moves the cursor to the end.
func (b *QueryBuffer) Set(text string) {
	b.text = []rune(text)
	b.cursor = len(b.text)
}

// Clear empties the buffer.
func (b *QueryBuffer) Clear() bool {
	if len(b.text) == 0 && b.cursor == 0 {
		return false
	}
	b.text = nil
	b.cursor = 0
	return true
}

// Insert adds text at the cursor.
func (b *QueryBuffer) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	pos := b.Cursor()
	updated := make([]rune, 0, len(b.text)+len(insert))
	updated = append(updated, b.text[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, b.text[pos:]...)
	b.text = updated
	b.cursor = pos + len(insert)
	return true
}

// DeleteRuneBackward removes the rune before the cursor.
func (b *QueryBuffer) DeleteRuneBackward() bool {
	pos := b.Cursor()
	if pos == 0 {
		return false
	}
	b.text = splice(b.text, pos-1, pos)
	b.cursor = pos - 1
	return true
}

// DeleteWordBackward removes the word preceding the cursor.
func (b *QueryBuffer) DeleteWordBackward() bool {
	pos := b.Cursor()
	if pos == 0 {
		return false
	}
	i := wordStartBefore(b.text, pos)
	b.text = splice(b.text, i, pos)
	b.cursor = i
	return true
}

// splice returns a new slice holding text without the runes in [from, to).
func splice(text []rune, from, to int) []rune {
	out := make([]rune, 0, len(text)-(to-from))
	out = append(out, text[:from]...)
	return append(out, text[to:]...)
}

// MoveStart moves the cursor to the start.
func (b *QueryBuffer) MoveStart() bool {
	if b.Cursor() == 0 {
		return false
	}
	b.cursor = 0
	return true
}

// MoveEnd moves the cursor to the end.
func (b *QueryBuffer) MoveEnd() bool {
	if b.Cursor() == len(b.text) {
		return false
	}
	b.cursor = len(b.text)
	return true
}

// MoveRuneBackward moves the cursor one rune left.
func (b *QueryBuffer) MoveRuneBackward() bool {
	pos := b.Cursor()
	if pos == 0 {
		return false
	}
	b.cursor = pos - 1
	return true
}

// MoveRuneForward moves the cursor one rune right.
func (b *QueryBuffer) MoveRuneForward() bool {
	pos := b.Cursor()
	if pos >= len(b.text) {
		return false
	}
	b.cursor = pos + 1
	return true
}

// MoveWordBackward moves the cursor to the start of the previous word.
func (b *QueryBuffer) MoveWordBackward() bool {
	pos := b.Cursor()
	i := wordStartBefore(b.text, pos)
	if i == pos {
		return false
	}
	b.cursor = i
	return true
}

// MoveWordForward moves the cursor past the next word.
func (b *QueryBuffer) MoveWordForward() bool {
	pos := b.Cursor()
	i := pos
	for i < len(b.text) && !unicode.IsSpace(b.text[i]) {
		i++
	}
	for i < len(b.text) && unicode.IsSpace(b.text[i]) {
		i++
	}
	if i == pos {
		return false
	}
	b.cursor = i
	return true
}

func wordStartBefore(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
