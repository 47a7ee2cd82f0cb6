package highlight

import (
	"strings"
	"time"

	"github.com/VividCortex/ewma"

	"github.com/willibrandon/exo/internal/config"
	"github.com/willibrandon/exo/internal/logger"
)

// Lines is the view of a buffer the cache reads from. Peek must not read
// beyond what is already materialized.
type Lines interface {
	Len() int
	Peek(pos int) (string, bool)
	Generation() uint64
}

// Stats reports cache activity.
type Stats struct {
	Windows    int     // windows tokenized
	Bypassed   int     // lines tokenized alone because the buffer is too large
	Fallbacks  int     // lines re-tokenized after a failed window split
	AvgLatency float64 // moving average of window tokenization, milliseconds
}

type slot struct {
	tokens []Token
	gen    uint64
	valid  bool
}

// Cache holds tokens per buffer line, computed a window at a time.
type Cache struct {
	lines      Lines
	lexer      Lexer
	windowSize int
	maxWindows int

	slots   []slot
	latency ewma.MovingAverage
	stats   Stats
}

// NewCache builds an empty cache over lines.
func NewCache(lines Lines, lexer Lexer, cfg config.HighlightConfig) *Cache {
	ws := cfg.WindowSize
	if ws < 1 {
		ws = 1
	}
	mw := cfg.MaxWindows
	if mw < 1 {
		mw = 1
	}
	return &Cache{
		lines:      lines,
		lexer:      lexer,
		windowSize: ws,
		maxWindows: mw,
		latency:    ewma.NewMovingAverage(),
	}
}

// SetLexer swaps the lexer and drops every slot.
func (c *Cache) SetLexer(l Lexer) {
	c.lexer = l
	c.slots = nil
}

// Stats returns a copy of the counters.
func (c *Cache) Stats() Stats {
	s := c.stats
	s.AvgLatency = c.latency.Value()
	return s
}

// TokensFor returns the tokens of the materialized line at pos. The token
// texts concatenate to the line text. It returns nil for positions that
// are not materialized.
func (c *Cache) TokensFor(pos int) []Token {
	text, ok := c.lines.Peek(pos)
	if !ok {
		return nil
	}
	n := c.lines.Len()
	if n > c.windowSize*c.maxWindows {
		c.stats.Bypassed++
		return c.tokenizeLine(text)
	}

	gen := c.lines.Generation()
	if len(c.slots) < n {
		c.slots = append(c.slots, make([]slot, n-len(c.slots))...)
	}
	if s := c.slots[pos]; s.valid && s.gen == gen {
		return s.tokens
	}
	c.fill(pos, gen)
	return c.slots[pos].tokens
}

// fill tokenizes the aligned window containing pos in one lexer call.
func (c *Cache) fill(pos int, gen uint64) {
	start := pos / c.windowSize * c.windowSize
	end := min(start+c.windowSize, c.lines.Len())

	texts := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		t, _ := c.lines.Peek(i)
		texts = append(texts, t)
	}

	began := time.Now()
	tokens, err := c.lexer.Tokenize(strings.Join(texts, "\n"))
	elapsed := time.Since(began)
	c.latency.Add(float64(elapsed.Microseconds()) / 1000)
	c.stats.Windows++
	logger.Debug("tokenized window", "start", start, "lines", len(texts), "elapsed", elapsed)

	var split [][]Token
	if err != nil {
		logger.Warn("lexer failed on window", "start", start, "error", err)
	} else {
		split = splitLines(tokens, len(texts))
	}

	for i, text := range texts {
		var line []Token
		ok := false
		if split != nil {
			line, ok = fit(split[i], text)
		}
		if !ok {
			c.stats.Fallbacks++
			line = c.tokenizeLine(text)
		}
		c.slots[start+i] = slot{tokens: line, gen: gen, valid: true}
	}
}

// tokenizeLine lexes a single line, degrading to one plain token.
func (c *Cache) tokenizeLine(text string) []Token {
	tokens, err := c.lexer.Tokenize(text)
	if err != nil {
		logger.Warn("lexer failed on line", "error", err)
		return plain(text)
	}
	if out, ok := fit(tokens, text); ok {
		return out
	}
	return plain(text)
}
