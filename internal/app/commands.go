package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/willibrandon/exo/internal/search"
	"github.com/willibrandon/exo/internal/ui"
)

// statusTimeout is how long a transient message stays in the status bar
const statusTimeout = 4 * time.Second

// clearStatusAfter creates a command that clears the message set at since
func clearStatusAfter(since time.Time) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ui.ClearStatusMsg{Since: since}
	})
}

// statusFor maps a search outcome to a status message
func statusFor(st search.Status) ui.StatusMsg {
	if st.OK() {
		return ui.StatusMsg{}
	}
	return ui.StatusMsg{Text: st.String(), Level: ui.StatusWarning}
}

// savedStatus describes a completed save
func savedStatus(msg ui.SavedMsg) ui.StatusMsg {
	if msg.Err != nil {
		return ui.StatusMsg{Text: FormatFileError("save", msg.Path, msg.Err), Level: ui.StatusError}
	}
	return ui.StatusMsg{
		Text:  fmt.Sprintf("wrote %s, %s", pluralLines(msg.Lines), humanize.IBytes(uint64(msg.Bytes))),
		Level: ui.StatusSuccess,
	}
}

// ParseGoto parses "line", "line,col" or "line:col". Values are 1-indexed;
// a missing column means column 1.
func ParseGoto(s string) (line, col int, err error) {
	s = strings.TrimSpace(s)
	lineStr, colStr, found := strings.Cut(s, ",")
	if !found {
		lineStr, colStr, found = strings.Cut(s, ":")
	}
	line, err = strconv.Atoi(strings.TrimSpace(lineStr))
	if err != nil {
		return 0, 0, fmt.Errorf("bad line %q", lineStr)
	}
	col = 1
	if found && strings.TrimSpace(colStr) != "" {
		col, err = strconv.Atoi(strings.TrimSpace(colStr))
		if err != nil {
			return 0, 0, fmt.Errorf("bad column %q", colStr)
		}
	}
	return line, col, nil
}

// expandHome resolves a leading ~ to the home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// fileSize returns the size of path, or 0 when it cannot be read
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
