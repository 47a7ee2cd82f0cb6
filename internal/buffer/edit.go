package buffer

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	reWord    = regexp2.MustCompile(`\w+`, regexp2.None)
	reNotWord = regexp2.MustCompile(`\W+`, regexp2.None)
)

// Insert types s at the focus cursor. Embedded newlines split the line.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			b.SplitFocus()
			b.focus++
		}
		if part == "" {
			continue
		}
		l := b.lines[b.focus]
		head, tail := splitRunes(l.text, l.cursor)
		part = expandTabsAt(part, l.cursor, b.policy.Size)
		l.text = head + part + tail
		l.cursor += len([]rune(part))
	}
	b.touch()
}

// InsertTab inserts spaces up to the next tab stop.
func (b *Buffer) InsertTab() {
	l := b.lines[b.focus]
	b.Insert(strings.Repeat(" ", nextTabStop(l.cursor, b.policy.Size)))
}

// Backspace deletes the rune before the cursor, joining with the previous
// line at column zero.
func (b *Buffer) Backspace() {
	l := b.lines[b.focus]
	if l.cursor == 0 {
		b.JoinFocusWithPrev()
		return
	}
	r := []rune(l.text)
	l.text = string(r[:l.cursor-1]) + string(r[l.cursor:])
	l.cursor--
	b.touch()
}

// DeleteForward deletes the rune under the cursor, joining with the next
// line at end of line.
func (b *Buffer) DeleteForward() {
	l := b.lines[b.focus]
	r := []rune(l.text)
	if l.cursor >= len(r) {
		b.JoinFocusWithNext()
		return
	}
	l.text = string(r[:l.cursor]) + string(r[l.cursor+1:])
	b.touch()
}

// MoveLeft moves the cursor one rune left, wrapping to the end of the
// previous line.
func (b *Buffer) MoveLeft() {
	l := b.lines[b.focus]
	if l.cursor > 0 {
		l.cursor--
		return
	}
	if above, pos, ok := b.Prev(b.focus); ok {
		b.SetFocus(pos)
		above.setCursor(above.Len())
	}
}

// MoveRight moves the cursor one rune right, wrapping to the start of the
// next line.
func (b *Buffer) MoveRight() {
	l := b.lines[b.focus]
	if l.cursor < l.Len() {
		l.cursor++
		return
	}
	if below, pos, ok := b.Next(b.focus); ok {
		b.SetFocus(pos)
		below.setCursor(0)
	}
}

// MoveUp moves focus up one line keeping the column where possible.
func (b *Buffer) MoveUp() {
	col := b.lines[b.focus].cursor
	if above, pos, ok := b.Prev(b.focus); ok {
		b.SetFocus(pos)
		above.setCursor(col)
	}
}

// MoveDown moves focus down one line keeping the column where possible.
func (b *Buffer) MoveDown() {
	col := b.lines[b.focus].cursor
	if below, pos, ok := b.Next(b.focus); ok {
		b.SetFocus(pos)
		below.setCursor(col)
	}
}

// Home moves to the first non-space rune, or to column zero when already
// there.
func (b *Buffer) Home() {
	l := b.lines[b.focus]
	indent := 0
	for _, r := range l.text {
		if r != ' ' && r != '\t' {
			break
		}
		indent++
	}
	if indent == l.Len() || indent == l.cursor {
		indent = 0
	}
	l.cursor = indent
}

// End moves to the end of the focus line.
func (b *Buffer) End() {
	l := b.lines[b.focus]
	l.cursor = l.Len()
}

// WordLeft moves to the start of the last word before the cursor. With
// nonWord set it moves over runs of non-word runes instead.
func (b *Buffer) WordLeft(nonWord bool) {
	re := reWord
	if nonWord {
		re = reNotWord
	}
	l := b.lines[b.focus]
	head, _ := splitRunes(l.text, l.cursor)

	last := -1
	m, _ := re.FindStringMatch(head)
	for m != nil {
		last = m.Index
		m, _ = re.FindNextMatch(m)
	}
	if last >= 0 {
		l.cursor = last
	}
}

// WordRight moves to the end of the next word at or after the cursor. With
// nonWord set it moves over runs of non-word runes instead.
func (b *Buffer) WordRight(nonWord bool) {
	re := reWord
	if nonWord {
		re = reNotWord
	}
	l := b.lines[b.focus]
	m, _ := re.FindRunesMatchStartingAt([]rune(l.text), l.cursor)
	if m != nil {
		l.cursor = m.Index + m.Length
	}
}
