// Package app is the Bubble Tea model hosting one exo editing session.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/willibrandon/exo/internal/buffer"
	"github.com/willibrandon/exo/internal/config"
	"github.com/willibrandon/exo/internal/highlight"
	"github.com/willibrandon/exo/internal/logger"
	"github.com/willibrandon/exo/internal/search"
	"github.com/willibrandon/exo/internal/ui"
	"github.com/willibrandon/exo/internal/ui/components"
	"github.com/willibrandon/exo/internal/ui/styles"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptQuery
	promptReplacement
	promptGoto
	promptInsertFile
	promptStyle
)

// Options carries per-session settings from the command line.
type Options struct {
	// Line and Col position the cursor on start; zero leaves it at the top.
	Line, Col int

	// Queries and Replacements are the search histories. Nil means an
	// in-memory history sized from the configuration.
	Queries      *search.History
	Replacements *search.History
}

// Model represents the main Bubbletea application model
type Model struct {
	snap *config.Snapshot

	// Editing state
	buf     *buffer.Buffer
	lexer   *highlight.ChromaLexer
	cache   *highlight.Cache
	palette *styles.Palette
	engine  *search.Engine

	// Keyboard bindings
	keys ui.KeyMap

	// UI components
	editor     *components.Editor
	statusBar  *components.StatusBar
	help       *components.HelpText
	prompt     *components.Prompt
	promptKind promptKind

	// UI state
	width  int
	height int

	helpVisible bool
	quitting    bool
	ready       bool

	savedGen    uint64
	statusSince time.Time
	logSeen     int
}

// New creates the model for buf. The model takes ownership of buf and
// closes it in Cleanup.
func New(snap *config.Snapshot, buf *buffer.Buffer, opts Options) *Model {
	head, _ := buf.Peek(0)
	lexer := highlight.DetectLexer(buf.Name(), head)

	palette, ok := styles.NewPalette(snap.Highlight().Style)
	if !ok {
		logger.Warn("unknown colour style, using fallback", "style", snap.Highlight().Style)
	}

	hist := snap.History()
	queries := opts.Queries
	if queries == nil {
		queries = search.NewHistory(search.KindQuery, hist.MaxQueries)
	}
	replacements := opts.Replacements
	if replacements == nil {
		replacements = search.NewHistory(search.KindReplacement, hist.MaxReplacements)
	}

	if snap.Clipboard().System {
		if cw := ui.NewSystemClipboard(); cw.IsAvailable() {
			buf.SetClipboardMirror(cw)
		}
	}

	keys := ui.DefaultKeyMap()
	m := &Model{
		snap:      snap,
		buf:       buf,
		lexer:     lexer,
		cache:     highlight.NewCache(buf, lexer, snap.Highlight()),
		palette:   palette,
		engine:    search.NewEngine(buf, queries, replacements),
		keys:      keys,
		editor:    components.NewEditor(),
		statusBar: components.NewStatusBar(),
		help:      components.NewHelp(keys),
		prompt:    components.NewPrompt(),
		savedGen:  buf.Generation(),
	}
	m.logSeen = m.logCount()

	if opts.Line > 0 {
		buf.Goto(opts.Line, max(opts.Col, 1))
	}

	m.statusBar.SetFile(buf.Name(), fileSize(buf.Name()), lexer.Name())
	m.statusBar.SetDebug(snap.Debug())
	m.refresh()
	return m
}

// Buffer returns the buffer being edited
func (m *Model) Buffer() *buffer.Buffer { return m.buf }

// Engine returns the search engine
func (m *Model) Engine() *search.Engine { return m.engine }

// Init initializes the application
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case ui.StatusMsg:
		cmd = m.setStatus(msg)

	case ui.ClearStatusMsg:
		if msg.Since.Equal(m.statusSince) {
			m.statusBar.SetMessage("", ui.StatusInfo)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case m.prompt.Visible():
			cmd = m.handlePromptKey(msg)
		case m.helpVisible:
			m.helpVisible = false
		default:
			cmd = m.handleKeyPress(msg)
		}
	}

	m.refresh()
	if warn := m.checkLog(); warn != nil {
		cmd = tea.Batch(cmd, warn)
	}
	return m, cmd
}

// handleKeyPress processes keyboard input in the editor body
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	b := m.buf

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Save):
		return m.setStatus(savedStatus(m.save()))

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = true

	// Clipboard
	case key.Matches(msg, m.keys.Cut):
		if !b.CutFocus() {
			return m.setStatus(ui.StatusMsg{Text: "can't cut the last line", Level: ui.StatusWarning})
		}
	case key.Matches(msg, m.keys.Paste):
		if !b.PasteAtFocus() {
			return m.setStatus(ui.StatusMsg{Text: "clipboard empty", Level: ui.StatusWarning})
		}
	case key.Matches(msg, m.keys.ClearClipboard):
		b.ClearClipboard()
		return m.setStatus(ui.StatusMsg{Text: "clipboard cleared"})

	// Search
	case key.Matches(msg, m.keys.Query):
		return m.openPrompt(promptQuery, "search", "", m.engine.Queries().Recall())
	case key.Matches(msg, m.keys.NextMatch):
		return m.setStatus(statusFor(m.engine.Next()))
	case key.Matches(msg, m.keys.Replacement):
		return m.openPrompt(promptReplacement, "replace", "", m.engine.Replacements().Recall())
	case key.Matches(msg, m.keys.ReplaceNext):
		return m.setStatus(statusFor(m.engine.ReplaceNext()))
	case key.Matches(msg, m.keys.Goto):
		return m.openPrompt(promptGoto, "line[,col]", "", nil)
	case key.Matches(msg, m.keys.InsertFile):
		return m.openPrompt(promptInsertFile, "insert file", "", nil)
	case key.Matches(msg, m.keys.Style):
		return m.openPrompt(promptStyle, "style", m.palette.Name(), nil)

	// Editing
	case key.Matches(msg, m.keys.Split):
		b.SplitFocus()
		line, _ := b.Coords()
		b.Goto(line+1, 1)
	case key.Matches(msg, m.keys.Backspace):
		b.Backspace()
	case key.Matches(msg, m.keys.Delete):
		b.DeleteForward()
	case key.Matches(msg, m.keys.Tab):
		b.InsertTab()

	// Motion
	case key.Matches(msg, m.keys.Up):
		b.MoveUp()
	case key.Matches(msg, m.keys.Down):
		b.MoveDown()
	case key.Matches(msg, m.keys.Left):
		b.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		b.MoveRight()
	case key.Matches(msg, m.keys.PageUp):
		line, col := b.Coords()
		b.Goto(line-m.editor.Height(), col)
	case key.Matches(msg, m.keys.PageDown):
		line, col := b.Coords()
		b.Goto(line+m.editor.Height(), col)
	case key.Matches(msg, m.keys.Home):
		b.Home()
	case key.Matches(msg, m.keys.End):
		b.End()
	case key.Matches(msg, m.keys.WordLeft):
		b.WordLeft(false)
	case key.Matches(msg, m.keys.WordRight):
		b.WordRight(false)
	case key.Matches(msg, m.keys.NonWordLeft):
		b.WordLeft(true)
	case key.Matches(msg, m.keys.NonWordRight):
		b.WordRight(true)

	default:
		switch {
		case msg.Type == tea.KeySpace:
			b.Insert(" ")
		case msg.Type == tea.KeyRunes && !msg.Alt:
			b.Insert(string(msg.Runes))
		}
	}
	return nil
}

// openPrompt shows the prompt for kind
func (m *Model) openPrompt(kind promptKind, label, initial string, recall *search.Recall) tea.Cmd {
	m.promptKind = kind
	cmd := m.prompt.Open(label, initial, recall)
	m.prompt.SetWidth(m.width)
	return cmd
}

// handlePromptKey processes keyboard input while a prompt is open
func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt.Close()
		m.promptKind = promptNone
		return nil
	case tea.KeyEnter:
		value := m.prompt.Value()
		kind := m.promptKind
		m.prompt.Close()
		m.promptKind = promptNone
		return m.submit(kind, value)
	}
	return m.prompt.Update(msg)
}

// submit runs the command behind a prompt
func (m *Model) submit(kind promptKind, value string) tea.Cmd {
	b := m.buf

	switch kind {
	case promptQuery:
		return m.setStatus(statusFor(m.engine.SubmitQuery(value)))

	case promptReplacement:
		return m.setStatus(statusFor(m.engine.SubmitReplacement(value)))

	case promptGoto:
		line, col, err := ParseGoto(value)
		if err != nil {
			return m.setStatus(ui.StatusMsg{Text: err.Error(), Level: ui.StatusWarning})
		}
		b.Goto(line, col)

	case promptInsertFile:
		path := expandHome(strings.TrimSpace(value))
		if path == "" {
			return nil
		}
		before := b.Len()
		if err := b.InsertFile(path); err != nil {
			return m.setStatus(ui.StatusMsg{Text: FormatFileError("insert", path, err), Level: ui.StatusError})
		}
		return m.setStatus(ui.StatusMsg{Text: "inserted " + pluralLines(b.Len()-before)})

	case promptStyle:
		p, ok := styles.NewPalette(strings.TrimSpace(value))
		if !ok {
			logger.Debug("unknown style", "style", value, "available", styles.StyleNames())
			return m.setStatus(ui.StatusMsg{Text: "no style " + value, Level: ui.StatusWarning})
		}
		m.palette = p
	}
	return nil
}

// save writes the buffer back to the file it was opened from
func (m *Model) save() ui.SavedMsg {
	path := m.buf.Name()
	if err := m.buf.Save(path); err != nil {
		logger.Error("save failed", "path", path, "error", err)
		return ui.SavedMsg{Path: path, Err: err}
	}
	m.savedGen = m.buf.Generation()
	size := fileSize(path)
	m.statusBar.SetSizeOnDisk(size)
	return ui.SavedMsg{Path: path, Lines: m.buf.Len(), Bytes: size}
}

// setStatus shows msg and schedules it to be cleared
func (m *Model) setStatus(msg ui.StatusMsg) tea.Cmd {
	m.statusBar.SetMessage(msg.Text, msg.Level)
	if msg.Text == "" {
		return nil
	}
	m.statusSince = time.Now()
	return clearStatusAfter(m.statusSince)
}

// checkLog surfaces warnings logged since the last update
func (m *Model) checkLog() tea.Cmd {
	n := m.logCount()
	if n <= m.logSeen {
		return nil
	}
	m.logSeen = n
	recent := logger.Recent()
	if len(recent) == 0 {
		return nil
	}
	return m.setStatus(ui.StatusMsg{Text: recent[len(recent)-1].Message, Level: ui.StatusWarning})
}

func (m *Model) logCount() int {
	w, e := logger.Counts()
	return w + e
}

// refresh syncs scroll position and status bar with the buffer
func (m *Model) refresh() {
	m.editor.Follow(m.buf)
	line, col := m.buf.Coords()
	m.statusBar.SetPosition(line, col, m.buf.Len(), m.buf.Exhausted())
	m.statusBar.SetModified(m.buf.Generation() != m.savedGen)
}

// layout sizes components for the window
func (m *Model) layout() {
	m.help.SetSize(m.width, m.height)
	m.statusBar.SetSize(m.width)
	m.prompt.SetWidth(m.width)
	m.editor.SetSize(m.width, m.height-1-m.footerHeight())
}

func (m *Model) footerHeight() int {
	return max(lipgloss.Height(m.help.ShortHelp()), 1)
}

// View renders the application UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Initializing..."
	}

	if m.helpVisible {
		return m.help.View()
	}

	footer := m.help.ShortHelp()
	if m.prompt.Visible() {
		footer = m.prompt.View() + strings.Repeat("\n", m.footerHeight()-1)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.editor.View(m.buf, m.cache, m.palette),
		m.statusBar.View(),
		footer,
	)
}

// Cleanup performs cleanup operations before the application exits
func (m *Model) Cleanup() {
	if err := m.buf.Close(); err != nil {
		logger.Warn("failed to close buffer", "path", m.buf.Name(), "error", err)
	}
	logger.Debug("session closed", "path", m.buf.Name(), "highlight", m.cache.Stats())
}

func pluralLines(n int) string {
	if n == 1 {
		return "1 line"
	}
	return fmt.Sprintf("%d lines", n)
}
