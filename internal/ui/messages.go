// Package ui provides the keymap, messages and system clipboard glue for
// the exo editor host.
package ui

import "time"

// StatusLevel classifies a status bar message.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// StatusMsg sets the transient status bar message.
type StatusMsg struct {
	Text  string
	Level StatusLevel
}

// ClearStatusMsg clears the status message set at Since, unless a newer
// one replaced it.
type ClearStatusMsg struct {
	Since time.Time
}

// SavedMsg reports a completed save.
type SavedMsg struct {
	Path  string
	Lines int
	Bytes int64
	Err   error
}
