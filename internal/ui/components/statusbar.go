package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/willibrandon/exo/internal/logger"
	"github.com/willibrandon/exo/internal/ui"
	"github.com/willibrandon/exo/internal/ui/styles"
)

// StatusBar represents the status bar component
type StatusBar struct {
	width int

	// File state
	name      string
	size      int64
	lexer     string
	modified  bool
	line, col int
	lines     int
	exhausted bool

	// Transient message
	message string
	level   ui.StatusLevel

	debug bool
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the width of the status bar
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetFile sets the file name, its size on disk and the lexer in use
func (s *StatusBar) SetFile(name string, size int64, lexer string) {
	s.name = name
	s.size = size
	s.lexer = lexer
}

// SetSizeOnDisk updates the file size after a save
func (s *StatusBar) SetSizeOnDisk(size int64) {
	s.size = size
}

// SetLexer updates the lexer name
func (s *StatusBar) SetLexer(name string) {
	s.lexer = name
}

// SetModified marks unsaved changes
func (s *StatusBar) SetModified(modified bool) {
	s.modified = modified
}

// SetPosition sets the 1-indexed cursor position and how many lines are
// loaded. exhausted is false while the file is still being read lazily.
func (s *StatusBar) SetPosition(line, col, lines int, exhausted bool) {
	s.line = line
	s.col = col
	s.lines = lines
	s.exhausted = exhausted
}

// SetMessage sets the transient message
func (s *StatusBar) SetMessage(text string, level ui.StatusLevel) {
	s.message = text
	s.level = level
}

// Message returns the current transient message
func (s *StatusBar) Message() string {
	return s.message
}

// SetDebug shows warning and error counters from the logger
func (s *StatusBar) SetDebug(debug bool) {
	s.debug = debug
}

// View renders the status bar
func (s *StatusBar) View() string {
	name := filepath.Base(s.name)
	if name == "." || name == "" {
		name = "[new]"
	}
	title := styles.StatusTitleStyle.Render(" " + name + " ")
	if s.modified {
		title += styles.StatusDirtyStyle.Render("+ ")
	}

	total := fmt.Sprintf("%d", s.lines)
	if !s.exhausted {
		total += "+"
	}
	parts := []string{
		fmt.Sprintf("%d:%d/%s", s.line, s.col, total),
		s.lexer,
		humanize.IBytes(uint64(max(s.size, 0))),
	}

	if s.debug {
		warnCount, errCount := logger.Counts()
		if warnCount > 0 {
			parts = append(parts, fmt.Sprintf("⚠ %d", warnCount))
		}
		if errCount > 0 {
			parts = append(parts, fmt.Sprintf("✕ %d", errCount))
		}
	}

	right := styles.StatusBarStyle.Render(" " + strings.Join(parts, " | ") + " ")

	msg := ""
	if s.message != "" {
		msg = " " + s.message
	}

	if s.width <= 0 {
		return title + s.renderMessage(msg) + right
	}

	used := lipgloss.Width(title) + lipgloss.Width(right)
	room := s.width - used
	if room < 0 {
		return title
	}
	msg = runewidth.Truncate(msg, room, "…")
	pad := strings.Repeat(" ", room-runewidth.StringWidth(msg))
	return title + s.renderMessage(msg) + styles.StatusBarStyle.Render(pad) + right
}

func (s *StatusBar) renderMessage(msg string) string {
	if msg == "" {
		return ""
	}
	st := styles.StatusBarStyle
	switch s.level {
	case ui.StatusSuccess:
		st = st.Bold(true)
	case ui.StatusWarning, ui.StatusError:
		st = st.Foreground(styles.ColorError).Bold(true)
	}
	return st.Render(msg)
}
