package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/willibrandon/exo/internal/buffer"
	"github.com/willibrandon/exo/internal/highlight"
	"github.com/willibrandon/exo/internal/ui/styles"
)

// Editor renders a window of buffer lines with their tokens.
type Editor struct {
	width  int
	height int
	top    int // first visible line
	left   int // first visible display column
}

// NewEditor creates an editor view
func NewEditor() *Editor {
	return &Editor{width: 80, height: 22}
}

// SetSize sets the text area size
func (e *Editor) SetSize(width, height int) {
	e.width = max(width, 1)
	e.height = max(height, 1)
}

// Height returns the number of text rows
func (e *Editor) Height() int {
	return e.height
}

// Top returns the first visible line index
func (e *Editor) Top() int {
	return e.top
}

// Follow scrolls so the focus line and its cursor are visible.
func (e *Editor) Follow(b *buffer.Buffer) {
	l, focus := b.Focus()
	if focus < e.top {
		e.top = focus
	}
	if focus >= e.top+e.height {
		e.top = focus - e.height + 1
	}

	col := DisplayWidth([]rune(l.Text())[:l.Cursor()])
	if col < e.left {
		e.left = col
	}
	if col >= e.left+e.width {
		e.left = col - e.width + 1
	}
}

// View renders the visible lines. Lines on screen are materialized; tokens
// come from cache and are coloured with pal.
func (e *Editor) View(b *buffer.Buffer, cache *highlight.Cache, pal *styles.Palette) string {
	_, focus := b.Focus()
	// read every visible line before the first window is tokenized
	b.Get(e.top + e.height - 1)

	rows := make([]string, 0, e.height)
	for pos := e.top; pos < e.top+e.height; pos++ {
		l, ok := b.Get(pos)
		if !ok {
			rows = append(rows, styles.FillerStyle.Render("~"))
			continue
		}
		cursor := -1
		if pos == focus {
			cursor = l.Cursor()
		}
		rows = append(rows, e.renderLine(cache.TokensFor(pos), cursor, pal))
	}
	return strings.Join(rows, "\n")
}

// renderLine draws tokens clipped to the horizontal window. cursor is the
// rune index of the cursor, or -1.
func (e *Editor) renderLine(tokens []highlight.Token, cursor int, pal *styles.Palette) string {
	var sb strings.Builder
	col, idx := 0, 0
	right := e.left + e.width

	for _, tok := range tokens {
		var seg strings.Builder
		flush := func() {
			if seg.Len() > 0 {
				sb.WriteString(pal.Style(tok.Category).Render(seg.String()))
				seg.Reset()
			}
		}
		for _, r := range tok.Text {
			cell, w := displayRune(r)
			if col >= e.left && col+w <= right {
				if idx == cursor {
					flush()
					sb.WriteString(styles.CursorStyle.Render(cell))
				} else {
					seg.WriteString(cell)
				}
			}
			col += w
			idx++
		}
		flush()
	}

	if idx == cursor && col >= e.left && col < right {
		sb.WriteString(styles.CursorStyle.Render(" "))
	}
	return sb.String()
}

// displayRune returns how a rune is drawn and its width in cells. Control
// characters are shown in caret notation.
func displayRune(r rune) (string, int) {
	switch {
	case r < 0x20:
		return "^" + string(r+'@'), 2
	case r == 0x7f:
		return "^?", 2
	}
	return string(r), runewidth.RuneWidth(r)
}

// DisplayWidth returns the on-screen width of runes.
func DisplayWidth(runes []rune) int {
	n := 0
	for _, r := range runes {
		_, w := displayRune(r)
		n += w
	}
	return n
}
