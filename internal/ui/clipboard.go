package ui

import (
	"fmt"

	"golang.design/x/clipboard"

	"github.com/willibrandon/exo/internal/logger"
)

// SystemClipboard mirrors cut lines to the desktop clipboard.
type SystemClipboard struct {
	available bool
	errMsg    string
}

// NewSystemClipboard initializes the platform clipboard. When no clipboard
// is reachable (no display, missing libraries) the writer stays usable but
// every Mirror call reports the reason.
func NewSystemClipboard() *SystemClipboard {
	cw := &SystemClipboard{}
	if err := clipboard.Init(); err != nil {
		cw.errMsg = err.Error()
		logger.Warn("system clipboard unavailable", "error", err)
		return cw
	}
	cw.available = true
	return cw
}

// IsAvailable returns whether clipboard operations are supported.
func (cw *SystemClipboard) IsAvailable() bool {
	return cw.available
}

// Error returns the reason clipboard is unavailable.
func (cw *SystemClipboard) Error() string {
	return cw.errMsg
}

// Mirror implements buffer.ClipboardMirror.
func (cw *SystemClipboard) Mirror(text string) error {
	if !cw.available {
		return fmt.Errorf("clipboard unavailable: %s", cw.errMsg)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
