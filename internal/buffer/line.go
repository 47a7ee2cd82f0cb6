package buffer

import "unicode/utf8"

// Line is one line of the buffer: its editable text, the edit cursor and,
// for lines read from disk, the raw text they were loaded from.
type Line struct {
	text        string
	cursor      int // rune offset into text
	pristine    string
	hasPristine bool
}

// newLoadedLine builds a line from raw on-disk text.
func newLoadedLine(raw string, tabSize int) *Line {
	return &Line{
		text:        ExpandTabs(raw, tabSize),
		pristine:    raw,
		hasPristine: true,
	}
}

// newDerivedLine builds a line produced by an edit operation.
func newDerivedLine(text string) *Line {
	return &Line{text: text}
}

// Text returns the edited (tab-expanded) text.
func (l *Line) Text() string { return l.text }

// Len returns the text length in runes.
func (l *Line) Len() int { return utf8.RuneCountInString(l.text) }

// Cursor returns the rune offset of the edit cursor.
func (l *Line) Cursor() int { return l.cursor }

// Pristine returns the on-disk text and whether the line has one.
func (l *Line) Pristine() (string, bool) { return l.pristine, l.hasPristine }

// setText replaces the text and clamps the cursor. Callers in this package
// are responsible for bumping the buffer generation.
func (l *Line) setText(text string) {
	l.text = text
	l.setCursor(l.cursor)
}

// setCursor moves the cursor, clamped to [0, Len].
func (l *Line) setCursor(col int) {
	if col < 0 {
		col = 0
	}
	if n := l.Len(); col > n {
		col = n
	}
	l.cursor = col
}

// clone returns a derived copy carrying only the text.
func (l *Line) clone() *Line {
	return newDerivedLine(l.text)
}

// splitRunes splits s at rune offset i.
func splitRunes(s string, i int) (string, string) {
	if i <= 0 {
		return "", s
	}
	n := 0
	for off := range s {
		if n == i {
			return s[:off], s[off:]
		}
		n++
	}
	return s, ""
}
