package search

import (
	"time"

	"github.com/dlclark/regexp2"

	"github.com/willibrandon/exo/internal/logger"
)

// Document is the buffer surface the engine navigates and edits.
// *buffer.Buffer satisfies it.
type Document interface {
	FocusPos() int
	Cursor(pos int) int
	LineText(pos int) (string, bool)
	Goto(line, col int)
	SetText(pos int, text string) bool
}

// MatchTimeout bounds a single match attempt on one line.
var MatchTimeout = 2 * time.Second

// Compile compiles a query with the engine's regex options.
func Compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// Engine holds the active query and replacement for one editing session.
type Engine struct {
	doc Document

	query       *regexp2.Regexp
	template    string
	hasTemplate bool

	queries      *History
	replacements *History
}

// NewEngine returns an engine over doc recording into the given histories.
func NewEngine(doc Document, queries, replacements *History) *Engine {
	return &Engine{doc: doc, queries: queries, replacements: replacements}
}

// Queries returns the query history.
func (e *Engine) Queries() *History { return e.queries }

// Replacements returns the replacement history.
func (e *Engine) Replacements() *History { return e.replacements }

// Query returns the active pattern, or "" when none is set.
func (e *Engine) Query() string {
	if e.query == nil {
		return ""
	}
	return e.query.String()
}

// Seek moves to the next match of re after the focus cursor. The scan runs
// to the end of the buffer, then wraps and rescans lines up to and
// including the focus line from column 0.
func (e *Engine) Seek(re *regexp2.Regexp) Status {
	focus := e.doc.FocusPos()

	if text, ok := e.doc.LineText(focus); ok {
		col, ok, err := match(re, text, e.doc.Cursor(focus)+1)
		if err != nil {
			return StatusTimeout
		}
		if ok {
			e.doc.Goto(focus+1, col+1)
			return StatusOK
		}
	}
	for pos := focus + 1; ; pos++ {
		text, ok := e.doc.LineText(pos)
		if !ok {
			break
		}
		col, ok, err := match(re, text, 0)
		if err != nil {
			return StatusTimeout
		}
		if ok {
			e.doc.Goto(pos+1, col+1)
			return StatusOK
		}
	}
	for pos := 0; pos <= focus; pos++ {
		text, _ := e.doc.LineText(pos)
		col, ok, err := match(re, text, 0)
		if err != nil {
			return StatusTimeout
		}
		if ok {
			e.doc.Goto(pos+1, col+1)
			return StatusOK
		}
	}
	return StatusNoResults
}

// Replace seeks to the next match and substitutes the first occurrence of
// re in the focus line from the cursor onward. The cursor stays at the
// substitution point.
func (e *Engine) Replace(re *regexp2.Regexp, template string) Status {
	if st := e.Seek(re); !st.OK() {
		return st
	}
	pos := e.doc.FocusPos()
	text, _ := e.doc.LineText(pos)
	cursor := e.doc.Cursor(pos)
	runes := []rune(text)
	head, tail := string(runes[:cursor]), string(runes[cursor:])

	replaced, err := re.Replace(tail, template, -1, 1)
	if err != nil {
		logger.Debug("replacement failed", "template", template, "error", err)
		return StatusBadTemplate
	}
	e.doc.SetText(pos, head+replaced)
	e.doc.Goto(pos+1, cursor+1)
	return StatusOK
}

// SubmitQuery compiles pattern, makes it the active query, records it and
// seeks. A pattern that does not compile changes nothing.
func (e *Engine) SubmitQuery(pattern string) Status {
	re, err := Compile(pattern)
	if err != nil {
		logger.Debug("bad query", "pattern", pattern, "error", err)
		return StatusBadPattern
	}
	e.query = re
	if e.queries != nil {
		e.queries.Push(pattern)
	}
	return e.Seek(re)
}

// SubmitReplacement makes text the active replacement, records it and
// replaces the next match of the active query.
func (e *Engine) SubmitReplacement(text string) Status {
	if e.query == nil {
		return StatusNoQuery
	}
	e.template = TranslateTemplate(text)
	e.hasTemplate = true
	if e.replacements != nil {
		e.replacements.Push(text)
	}
	return e.Replace(e.query, e.template)
}

// Next seeks with the active query.
func (e *Engine) Next() Status {
	if e.query == nil {
		return StatusNoQuery
	}
	return e.Seek(e.query)
}

// ReplaceNext replaces with the active query and replacement.
func (e *Engine) ReplaceNext() Status {
	if e.query == nil {
		return StatusNoQuery
	}
	if !e.hasTemplate {
		return StatusNoReplacement
	}
	return e.Replace(e.query, e.template)
}

// match returns the rune column of the first match of re in text at or
// after start. The only error regexp2 reports here is a match timeout.
func match(re *regexp2.Regexp, text string, start int) (int, bool, error) {
	runes := []rune(text)
	if start > len(runes) {
		return 0, false, nil
	}
	m, err := re.FindRunesMatchStartingAt(runes, start)
	if err != nil {
		logger.Warn("match abandoned", "pattern", re.String(), "error", err)
		return 0, false, err
	}
	if m == nil {
		return 0, false, nil
	}
	return m.Index, true, nil
}
