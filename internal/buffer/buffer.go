// Package buffer implements the lazily loaded line buffer at the heart of
// exo: lines are read from the backing file only as far as navigation
// requires, edited in place, and written back byte-for-byte when unchanged.
package buffer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/willibrandon/exo/internal/config"
	"github.com/willibrandon/exo/internal/logger"
)

// ErrIsDirectory is returned when a directory is opened as a file.
var ErrIsDirectory = errors.New("is a directory")

// Buffer is an ordered, mutable sequence of lines backed by a Source.
//
// Every mutation increments the generation counter; readers that cache
// derived data (tokens) compare generations to detect staleness.
type Buffer struct {
	name   string
	lines  []*Line
	focus  int
	src    *Source
	policy config.TabPolicy
	gen    uint64

	clip   Clipboard
	mirror ClipboardMirror

	readErrLogged bool
}

// Open opens path and returns a buffer over it. Only the first line is read.
func Open(path string, snap *config.Snapshot) (*Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to open %s: %w", path, ErrIsDirectory)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	policy := snap.TabPolicyFor(path)
	logger.Debug("opening buffer", "path", path, "tab_size", policy.Size, "retab", policy.Retab)
	return New(path, f, policy), nil
}

// New builds a buffer named name reading from rc, which may be nil for a
// buffer without backing content. The buffer takes ownership of rc.
func New(name string, rc io.ReadCloser, policy config.TabPolicy) *Buffer {
	if policy.Size < 1 {
		policy.Size = 1
	}
	b := &Buffer{
		name:   name,
		src:    NewSource(rc),
		policy: policy,
	}
	b.clip.anchor = -1
	if !b.ensure(0) {
		b.lines = append(b.lines, newLoadedLine("", policy.Size))
	}
	return b
}

// Name returns the name the buffer was opened with.
func (b *Buffer) Name() string { return b.name }

// Policy returns the tab policy in effect.
func (b *Buffer) Policy() config.TabPolicy { return b.policy }

// Generation returns the mutation counter.
func (b *Buffer) Generation() uint64 { return b.gen }

// Len returns the number of materialized lines.
func (b *Buffer) Len() int { return len(b.lines) }

// Exhausted reports whether every line of the source has been read.
func (b *Buffer) Exhausted() bool { return b.src.Exhausted() }

// Source exposes the backing stream for inspection.
func (b *Buffer) Source() *Source { return b.src }

// Close releases the backing file handle.
func (b *Buffer) Close() error { return b.src.Close() }

// ensure materializes lines through pos. It reports whether pos exists.
func (b *Buffer) ensure(pos int) bool {
	for pos >= len(b.lines) {
		raw, ok := b.src.ReadLine()
		if !ok {
			b.logReadError()
			return false
		}
		b.lines = append(b.lines, newLoadedLine(raw, b.policy.Size))
	}
	b.logReadError()
	return true
}

func (b *Buffer) logReadError() {
	if err := b.src.Err(); err != nil && !b.readErrLogged {
		b.readErrLogged = true
		logger.Warn("read failed, treating as end of file", "path", b.name, "lines", len(b.lines), "error", err)
	}
}

// MaterializeAll reads the rest of the source.
func (b *Buffer) MaterializeAll() {
	for !b.src.Exhausted() {
		b.ensure(len(b.lines))
	}
}

// Get returns the line at pos, reading it from the source if needed.
// ok is false when no such line exists.
func (b *Buffer) Get(pos int) (*Line, bool) {
	if pos < 0 || !b.ensure(pos) {
		return nil, false
	}
	return b.lines[pos], true
}

// Peek returns the text of an already materialized line without reading.
func (b *Buffer) Peek(pos int) (string, bool) {
	if pos < 0 || pos >= len(b.lines) {
		return "", false
	}
	return b.lines[pos].text, true
}

// LineText returns the text at pos, reading it if needed.
func (b *Buffer) LineText(pos int) (string, bool) {
	l, ok := b.Get(pos)
	if !ok {
		return "", false
	}
	return l.text, true
}

// Next returns the line after pos and its index.
func (b *Buffer) Next(pos int) (*Line, int, bool) {
	l, ok := b.Get(pos + 1)
	if !ok {
		return nil, -1, false
	}
	return l, pos + 1, true
}

// Prev returns the line before pos and its index.
func (b *Buffer) Prev(pos int) (*Line, int, bool) {
	l, ok := b.Get(pos - 1)
	if !ok {
		return nil, -1, false
	}
	return l, pos - 1, true
}

// Focus returns the focus line and its index.
func (b *Buffer) Focus() (*Line, int) {
	return b.lines[b.focus], b.focus
}

// FocusPos returns the focus index.
func (b *Buffer) FocusPos() int { return b.focus }

// SetFocus moves focus to pos, materializing it. Moving focus ends any run
// of contiguous cuts.
func (b *Buffer) SetFocus(pos int) bool {
	if _, ok := b.Get(pos); !ok {
		return false
	}
	if pos != b.focus {
		b.clip.sealed = true
	}
	b.focus = pos
	return true
}

// Cursor returns the cursor of the line at pos, or 0 when it does not exist.
func (b *Buffer) Cursor(pos int) int {
	if pos < 0 || pos >= len(b.lines) {
		return 0
	}
	return b.lines[pos].cursor
}

// SetCursor moves the focus line's cursor, clamped to the line.
func (b *Buffer) SetCursor(col int) {
	b.lines[b.focus].setCursor(col)
}

// Coords returns the 1-indexed line and column of the focus.
func (b *Buffer) Coords() (line, col int) {
	return b.focus + 1, b.lines[b.focus].cursor + 1
}

// Goto moves to a 1-indexed line and column. Lines past the end of the file
// clamp to the last line; columns clamp to the line.
func (b *Buffer) Goto(line, col int) {
	if line < 1 {
		line = 1
	}
	b.ensure(line - 1)
	pos := min(line, len(b.lines)) - 1
	b.lines[pos].setCursor(col - 1)
	b.SetFocus(pos)
}

// SetText replaces the text of the line at pos.
func (b *Buffer) SetText(pos int, text string) bool {
	l, ok := b.Get(pos)
	if !ok {
		return false
	}
	l.setText(text)
	b.touch()
	return true
}

// SplitFocus divides the focus line at its cursor. The suffix moves to a new
// derived line inserted after the focus.
func (b *Buffer) SplitFocus() {
	focus := b.lines[b.focus]
	head, tail := splitRunes(focus.text, focus.cursor)
	focus.setText(head)
	b.lines = slices.Insert(b.lines, b.focus+1, newDerivedLine(tail))
	b.touch()
}

// JoinFocusWithPrev appends the focus line to the previous line, removes
// it, and moves focus up with the cursor at the join point.
func (b *Buffer) JoinFocusWithPrev() {
	above, pos, ok := b.Prev(b.focus)
	if !ok {
		return
	}
	focus := b.lines[b.focus]
	above.cursor = above.Len()
	above.setText(above.text + focus.text)
	b.lines = slices.Delete(b.lines, b.focus, b.focus+1)
	b.focus = pos
	b.touch()
}

// JoinFocusWithNext appends the next line to the focus line and removes it.
func (b *Buffer) JoinFocusWithNext() {
	below, pos, ok := b.Next(b.focus)
	if !ok {
		return
	}
	focus := b.lines[b.focus]
	focus.setText(focus.text + below.text)
	b.lines = slices.Delete(b.lines, pos, pos+1)
	b.touch()
}

// InsertLines inserts raw on-disk lines before the focus. They keep their
// raw text as pristine text.
func (b *Buffer) InsertLines(raw []string) {
	if len(raw) == 0 {
		return
	}
	added := make([]*Line, len(raw))
	for i, r := range raw {
		added[i] = newLoadedLine(r, b.policy.Size)
	}
	b.lines = slices.Insert(b.lines, b.focus, added...)
	b.touch()
}

// InsertFile reads path completely and inserts its lines before the focus.
func (b *Buffer) InsertFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("failed to read %s: %w", path, ErrIsDirectory)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	src := NewSource(f)
	defer src.Close()
	var raw []string
	for {
		line, ok := src.ReadLine()
		if !ok {
			break
		}
		raw = append(raw, line)
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if src.Produced() == 1 && raw[0] == "" && !src.TrailingNewline() {
		// empty file
		return nil
	}
	b.InsertLines(raw)
	return nil
}

func (b *Buffer) touch() {
	b.gen++
}
