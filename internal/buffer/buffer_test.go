package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/exo/internal/config"
)

var plainPolicy = config.TabPolicy{Size: 4}

func newTestBuffer(t *testing.T, content string) (*Buffer, *trackingReader) {
	t.Helper()
	tr := &trackingReader{r: strings.NewReader(content)}
	return New("test.txt", tr, plainPolicy), tr
}

func texts(b *Buffer) []string {
	out := make([]string, b.Len())
	for i := range out {
		out[i], _ = b.Peek(i)
	}
	return out
}

func TestNewReadsOnlyFirstLine(t *testing.T) {
	b, _ := newTestBuffer(t, "a\nb\nc\nd\n")

	assert.Equal(t, 1, b.Len())
	assert.False(t, b.Exhausted())

	l, ok := b.Get(2)
	require.True(t, ok)
	assert.Equal(t, "c", l.Text())
	assert.Equal(t, 3, b.Len(), "materializes only through the requested line")
}

func TestGetPastEnd(t *testing.T) {
	b, tr := newTestBuffer(t, "a\nb")

	_, ok := b.Get(5)
	assert.False(t, ok)
	assert.True(t, b.Exhausted())
	assert.Equal(t, 1, tr.closed)

	_, ok = b.Get(-1)
	assert.False(t, ok)

	l, ok := b.Get(1)
	require.True(t, ok)
	assert.Equal(t, "b", l.Text())
}

func TestMaterializedLinesAreNotRefetched(t *testing.T) {
	b, _ := newTestBuffer(t, "a\nb\nc")
	first, _ := b.Get(0)
	b.Get(2)
	again, _ := b.Get(0)
	assert.Same(t, first, again)
}

func TestNextPrev(t *testing.T) {
	b, _ := newTestBuffer(t, "a\nb")

	l, pos, ok := b.Next(0)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
	assert.Equal(t, "b", l.Text())

	_, _, ok = b.Next(1)
	assert.False(t, ok)

	_, _, ok = b.Prev(0)
	assert.False(t, ok)

	l, pos, ok = b.Prev(1)
	require.True(t, ok)
	assert.Equal(t, 0, pos)
	assert.Equal(t, "a", l.Text())
}

func TestEmptySourceHasOneLine(t *testing.T) {
	b := New("new.txt", nil, plainPolicy)
	assert.Equal(t, 1, b.Len())
	assert.True(t, b.Exhausted())
	l, _ := b.Focus()
	assert.Equal(t, "", l.Text())
}

func TestSplitFocus(t *testing.T) {
	b, _ := newTestBuffer(t, "hello world\nnext")
	b.SetCursor(5)

	b.SplitFocus()

	assert.Equal(t, []string{"hello", " world"}, texts(b)[:2])
	l, _ := b.Get(1)
	assert.Equal(t, 0, l.Cursor())
	_, ok := l.Pristine()
	assert.False(t, ok, "split line is derived")

	head, _ := b.Get(0)
	_, ok = head.Pristine()
	assert.True(t, ok, "original line keeps its pristine text")
}

func TestSplitThenJoinRoundTrip(t *testing.T) {
	for _, text := range []string{"", "x", "hello world", "日本語テキスト", "tab\there"} {
		for col := 0; col <= len([]rune(ExpandTabs(text, 4))); col++ {
			b, _ := newTestBuffer(t, text+"\nafter")
			original, _ := b.Peek(0)
			b.SetCursor(col)

			b.SplitFocus()
			b.JoinFocusWithNext()

			got, _ := b.Peek(0)
			assert.Equal(t, original, got, "text %q col %d", text, col)
			after, _ := b.LineText(1)
			assert.Equal(t, "after", after)
		}
	}
}

func TestJoinFocusWithPrev(t *testing.T) {
	b, _ := newTestBuffer(t, "foo\nbar\nbaz")
	b.MaterializeAll()
	b.Goto(2, 2)

	b.JoinFocusWithPrev()

	assert.Equal(t, []string{"foobar", "baz"}, texts(b))
	l, pos := b.Focus()
	assert.Equal(t, 0, pos)
	assert.Equal(t, 3, l.Cursor(), "cursor sits at the join point")

	gen := b.Generation()
	b.JoinFocusWithPrev()
	assert.Equal(t, gen, b.Generation(), "no-op at the top")
}

func TestJoinFocusWithNextAtBottom(t *testing.T) {
	b, _ := newTestBuffer(t, "foo\nbar")
	b.Goto(2, 1)
	gen := b.Generation()

	b.JoinFocusWithNext()

	assert.Equal(t, gen, b.Generation())
	assert.Equal(t, []string{"foo", "bar"}, texts(b))
}

func TestGoto(t *testing.T) {
	tests := []struct {
		name      string
		line, col int
		wantLine  int
		wantCol   int
	}{
		{"first line", 1, 1, 1, 1},
		{"middle", 2, 3, 2, 3},
		{"column clamped", 2, 99, 2, 4},
		{"line clamped past eof", 50, 2, 3, 2},
		{"zero line", 0, 1, 1, 1},
		{"zero column", 1, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBuffer(t, "foo\nbar\nbaz")
			b.Goto(tt.line, tt.col)
			line, col := b.Coords()
			if line != tt.wantLine || col != tt.wantCol {
				t.Errorf("Coords() = %d:%d, want %d:%d", line, col, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestTabsExpandedOnLoad(t *testing.T) {
	b := New("x.go", &trackingReader{r: strings.NewReader("\tx\ta\n")}, config.TabPolicy{Size: 4})
	l, _ := b.Get(0)
	assert.Equal(t, "    x   a", l.Text())
	raw, ok := l.Pristine()
	require.True(t, ok)
	assert.Equal(t, "\tx\ta", raw)
}

func TestGenerationBumpsOnMutation(t *testing.T) {
	b, _ := newTestBuffer(t, "foo\nbar\nbaz\n")

	mutations := []struct {
		name   string
		mutate func()
	}{
		{"split", func() { b.SplitFocus() }},
		{"join next", func() { b.JoinFocusWithNext() }},
		{"insert", func() { b.Insert("x") }},
		{"backspace", func() { b.Backspace() }},
		{"set text", func() { b.SetText(0, "new") }},
		{"cut", func() { b.CutFocus() }},
		{"paste", func() { b.PasteAtFocus() }},
		{"insert raw", func() { b.InsertLines([]string{"raw"}) }},
	}
	for _, m := range mutations {
		gen := b.Generation()
		m.mutate()
		assert.Greater(t, b.Generation(), gen, m.name)
	}

	gen := b.Generation()
	b.Get(10)
	b.MoveDown()
	b.Goto(1, 2)
	b.Coords()
	assert.Equal(t, gen, b.Generation(), "navigation is not a mutation")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	snap := config.Default().Freeze()

	_, err := Open(dir, snap)
	assert.True(t, errors.Is(err, ErrIsDirectory))

	_, err = Open(filepath.Join(dir, "missing.txt"), snap)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := filepath.Join(dir, "main.c")
	require.NoError(t, os.WriteFile(path, []byte("\tint x;\n"), 0o644))
	b, err := Open(path, snap)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, config.TabPolicy{Size: 2}, b.Policy())
	l, _ := b.Get(0)
	assert.Equal(t, "  int x;", l.Text())
}

func TestInsertFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	b, _ := newTestBuffer(t, "a\nb")
	b.Goto(2, 1)
	require.NoError(t, b.InsertFile(path))

	b.MaterializeAll()
	assert.Equal(t, []string{"a", "one", "two", "b"}, texts(b))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	require.NoError(t, b.InsertFile(empty))
	assert.Equal(t, 4, b.Len())

	assert.Error(t, b.InsertFile(filepath.Join(dir, "nope")))
}
