package buffer

import (
	"slices"
	"strings"

	"github.com/willibrandon/exo/internal/logger"
)

// ClipboardMirror receives the clipboard text after every cut, e.g. to copy
// it to the system clipboard.
type ClipboardMirror interface {
	Mirror(text string) error
}

// Clipboard holds cut lines. Repeated cuts at the same position with no
// other mutation or focus movement in between accumulate in cut order.
type Clipboard struct {
	lines  []*Line
	anchor int    // position of the last cut, -1 when none
	gen    uint64 // buffer generation right after the last cut
	sealed bool   // focus moved since the last cut
}

// Len returns the number of lines held.
func (c *Clipboard) Len() int { return len(c.lines) }

// Lines returns the held texts in order.
func (c *Clipboard) Lines() []string {
	out := make([]string, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.text
	}
	return out
}

// String joins the held lines with newlines.
func (c *Clipboard) String() string {
	return strings.Join(c.Lines(), "\n")
}

func (c *Clipboard) contiguous(pos int, gen uint64) bool {
	return len(c.lines) > 0 && !c.sealed && c.anchor == pos && c.gen == gen
}

// Clipboard returns the buffer's clipboard.
func (b *Buffer) Clipboard() *Clipboard { return &b.clip }

// SetClipboardMirror installs m, or removes the mirror when m is nil.
func (b *Buffer) SetClipboardMirror(m ClipboardMirror) { b.mirror = m }

// Cut removes the line at pos into the clipboard. The last line of the
// buffer is never cut. Focus stays at pos.
func (b *Buffer) Cut(pos int) bool {
	if _, ok := b.Get(pos); !ok {
		return false
	}
	if _, ok := b.Get(pos + 1); !ok {
		return false
	}

	if !b.clip.contiguous(pos, b.gen) {
		b.clip.lines = nil
	}
	b.clip.lines = append(b.clip.lines, b.lines[pos])
	b.lines = slices.Delete(b.lines, pos, pos+1)
	b.touch()

	b.clip.anchor = pos
	b.clip.gen = b.gen
	b.clip.sealed = false
	b.focus = min(pos, len(b.lines)-1)

	if b.mirror != nil {
		if err := b.mirror.Mirror(b.clip.String()); err != nil {
			logger.Warn("clipboard mirror failed", "error", err)
		}
	}
	return true
}

// CutFocus cuts the focus line.
func (b *Buffer) CutFocus() bool { return b.Cut(b.focus) }

// Paste inserts copies of the clipboard lines before pos. Pasted lines are
// derived. Focus moves to the line that was at pos.
func (b *Buffer) Paste(pos int) bool {
	if len(b.clip.lines) == 0 || pos < 0 {
		return false
	}
	b.ensure(pos)
	if pos > len(b.lines) {
		pos = len(b.lines)
	}

	added := make([]*Line, len(b.clip.lines))
	for i, l := range b.clip.lines {
		added[i] = l.clone()
	}
	b.lines = slices.Insert(b.lines, pos, added...)
	b.touch()
	b.SetFocus(min(pos+len(added), len(b.lines)-1))
	return true
}

// PasteAtFocus pastes before the focus line.
func (b *Buffer) PasteAtFocus() bool { return b.Paste(b.focus) }

// ClearClipboard drops the clipboard contents.
func (b *Buffer) ClearClipboard() {
	b.clip = Clipboard{anchor: -1}
}
