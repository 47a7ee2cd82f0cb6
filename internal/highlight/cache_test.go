package highlight

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/exo/internal/buffer"
	"github.com/willibrandon/exo/internal/config"
)

type stubLines struct {
	lines []string
	gen   uint64
}

func (s *stubLines) Len() int           { return len(s.lines) }
func (s *stubLines) Generation() uint64 { return s.gen }
func (s *stubLines) Peek(pos int) (string, bool) {
	if pos < 0 || pos >= len(s.lines) {
		return "", false
	}
	return s.lines[pos], true
}

func (s *stubLines) set(pos int, text string) {
	s.lines[pos] = text
	s.gen++
}

// wordLexer marks runs of letters as Name and everything else as Text.
type wordLexer struct {
	calls  []string
	failOn string
}

func (w *wordLexer) Tokenize(text string) ([]Token, error) {
	w.calls = append(w.calls, text)
	if w.failOn != "" && strings.Contains(text, w.failOn) {
		return nil, errors.New("boom")
	}
	var out []Token
	for _, r := range text {
		cat := FallbackCategory
		if r >= 'a' && r <= 'z' {
			cat = "Name"
		}
		out = append(out, Token{Category: cat, Text: string(r)})
	}
	return Normalize(out), nil
}

func newTestCache(lines []string, ws, mw int) (*Cache, *stubLines, *wordLexer) {
	src := &stubLines{lines: lines}
	lx := &wordLexer{}
	return NewCache(src, lx, config.HighlightConfig{WindowSize: ws, MaxWindows: mw}), src, lx
}

func TestTokensConcatenateToLine(t *testing.T) {
	lines := []string{"foo = bar", "", "  baz(1)", "x"}
	c, _, _ := newTestCache(lines, 750, 32)

	for i, want := range lines {
		got := c.TokensFor(i)
		assert.Equal(t, want, Join(got), "line %d", i)
		for _, tok := range got {
			assert.NotEmpty(t, tok.Text)
		}
	}
	assert.Equal(t, []Token{
		{Category: "Name", Text: "foo"},
		{Category: FallbackCategory, Text: " = "},
		{Category: "Name", Text: "bar"},
	}, c.TokensFor(0))
}

func TestWindowTokenizedOnce(t *testing.T) {
	c, _, lx := newTestCache([]string{"a", "b", "c", "d", "e"}, 2, 32)

	c.TokensFor(0)
	c.TokensFor(1)
	require.Len(t, lx.calls, 1)
	assert.Equal(t, "a\nb", lx.calls[0])

	c.TokensFor(4)
	require.Len(t, lx.calls, 2)
	assert.Equal(t, "e", lx.calls[1], "last window is short")

	c.TokensFor(3)
	require.Len(t, lx.calls, 3)
	assert.Equal(t, "c\nd", lx.calls[2], "windows are aligned")
	assert.Equal(t, 3, c.Stats().Windows)
}

func TestGenerationInvalidates(t *testing.T) {
	c, src, lx := newTestCache([]string{"one", "two"}, 750, 32)

	c.TokensFor(0)
	src.set(1, "deux")
	got := c.TokensFor(0)
	assert.Equal(t, "one", Join(got))
	assert.Len(t, lx.calls, 2, "mutation elsewhere makes the slot stale")
	assert.Equal(t, "deux", Join(c.TokensFor(1)))
	assert.Len(t, lx.calls, 2)
}

func TestBypassLargeBuffers(t *testing.T) {
	c, _, lx := newTestCache([]string{"a", "b", "c", "d", "e"}, 2, 2)

	assert.Equal(t, "c", Join(c.TokensFor(2)))
	assert.Equal(t, []string{"c"}, lx.calls)
	assert.Equal(t, 1, c.Stats().Bypassed)
}

func TestUnmaterializedLine(t *testing.T) {
	c, _, lx := newTestCache([]string{"a"}, 750, 32)
	assert.Nil(t, c.TokensFor(5))
	assert.Empty(t, lx.calls)
}

func TestLexerFailureFallsBack(t *testing.T) {
	c, _, lx := newTestCache([]string{"ok", "bad!", "fine"}, 750, 32)
	lx.failOn = "!"

	assert.Equal(t, []Token{{Category: FallbackCategory, Text: "bad!"}}, c.TokensFor(1))
	assert.Equal(t, "ok", Join(c.TokensFor(0)))
	assert.Equal(t, []Token{{Category: "Name", Text: "fine"}}, c.TokensFor(2))
	assert.Equal(t, 3, c.Stats().Fallbacks)
}

// driftLexer drops characters so the window does not reassemble.
type driftLexer struct{}

func (driftLexer) Tokenize(text string) ([]Token, error) {
	return []Token{{Category: "Name", Text: strings.ReplaceAll(text, "x", "")}}, nil
}

func TestMismatchedTokensFallBack(t *testing.T) {
	src := &stubLines{lines: []string{"axb", "ab"}}
	c := NewCache(src, driftLexer{}, config.HighlightConfig{WindowSize: 10, MaxWindows: 1})

	assert.Equal(t, []Token{{Category: FallbackCategory, Text: "axb"}}, c.TokensFor(0))
	assert.Equal(t, []Token{{Category: "Name", Text: "ab"}}, c.TokensFor(1))
}

func TestSetLexerDropsSlots(t *testing.T) {
	c, _, lx := newTestCache([]string{"a"}, 750, 32)
	c.TokensFor(0)

	other := &wordLexer{}
	c.SetLexer(other)
	c.TokensFor(0)
	assert.Len(t, lx.calls, 1)
	assert.Len(t, other.calls, 1)
}

func TestNormalize(t *testing.T) {
	got := Normalize([]Token{
		{Category: "A", Text: "x"},
		{Category: "A", Text: ""},
		{Category: "A", Text: "y"},
		{Category: "B", Text: "z"},
	})
	assert.Equal(t, []Token{{Category: "A", Text: "xy"}, {Category: "B", Text: "z"}}, got)
}

func TestCacheFollowsBufferEdits(t *testing.T) {
	buf := buffer.New("x.txt", io.NopCloser(strings.NewReader("alpha\nbeta\ngamma\ndelta")), config.TabPolicy{Size: 4})
	defer buf.Close()
	c := NewCache(buf, &wordLexer{}, config.HighlightConfig{WindowSize: 2, MaxWindows: 32})

	check := func(want ...string) {
		t.Helper()
		require.Equal(t, len(want), buf.Len())
		for i, w := range want {
			assert.Equal(t, w, Join(c.TokensFor(i)), "line %d", i)
		}
	}

	buf.MaterializeAll()
	check("alpha", "beta", "gamma", "delta")

	require.True(t, buf.SetText(1, "be ta"))
	check("alpha", "be ta", "gamma", "delta")

	require.True(t, buf.SetFocus(0))
	buf.SetCursor(2)
	buf.SplitFocus()
	check("al", "pha", "be ta", "gamma", "delta")

	require.True(t, buf.Cut(0))
	check("pha", "be ta", "gamma", "delta")

	require.True(t, buf.Paste(3))
	check("pha", "be ta", "gamma", "al", "delta")
}
