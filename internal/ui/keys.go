package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keyboard bindings for the editor
type KeyMap struct {
	// File
	Save       key.Binding
	Quit       key.Binding
	InsertFile key.Binding

	// Clipboard
	Cut            key.Binding
	Paste          key.Binding
	ClearClipboard key.Binding

	// Search
	Query       key.Binding
	NextMatch   key.Binding
	Replacement key.Binding
	ReplaceNext key.Binding
	Goto        key.Binding

	// Display
	Style key.Binding
	Help  key.Binding

	// Editing
	Split     key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Tab       key.Binding

	// Motion
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Home         key.Binding
	End          key.Binding
	WordLeft     key.Binding
	WordRight    key.Binding
	NonWordLeft  key.Binding
	NonWordRight key.Binding
}

// DefaultKeyMap returns the default keyboard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("^O", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+x", "ctrl+c"),
			key.WithHelp("^X", "exit"),
		),
		InsertFile: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("^F", "insert file"),
		),

		Cut: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("^K", "cut line"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("^U", "paste"),
		),
		ClearClipboard: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("^T", "clear clipboard"),
		),

		Query: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("^W", "search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("alt+w"),
			key.WithHelp("M-W", "next match"),
		),
		Replacement: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("^R", "replace"),
		),
		ReplaceNext: key.NewBinding(
			key.WithKeys("alt+r"),
			key.WithHelp("M-R", "replace next"),
		),
		Goto: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("^Y", "go to line"),
		),

		Style: key.NewBinding(
			key.WithKeys("alt+s"),
			key.WithHelp("M-S", "colour style"),
		),
		Help: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "help"),
		),

		Split: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "split line"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("bksp", "delete back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("del", "delete"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "indent"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		WordLeft: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("^←", "word left"),
		),
		WordRight: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("^→", "word right"),
		),
		NonWordLeft: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("M-←", "punctuation left"),
		),
		NonWordRight: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("M-→", "punctuation right"),
		),
	}
}

// ShortHelp returns a quick help view for the key bindings
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit, k.Cut, k.Paste, k.Query, k.Replacement, k.Goto, k.Help}
}

// FullHelp returns the full help view for all key bindings
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Quit, k.InsertFile},
		{k.Cut, k.Paste, k.ClearClipboard},
		{k.Query, k.NextMatch, k.Replacement, k.ReplaceNext, k.Goto},
		{k.Style, k.Help},
		{k.Split, k.Backspace, k.Delete, k.Tab},
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown},
		{k.Home, k.End, k.WordLeft, k.WordRight, k.NonWordLeft, k.NonWordRight},
	}
}
