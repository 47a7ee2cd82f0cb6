package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mitchellh/go-wordwrap"

	"github.com/willibrandon/exo/internal/ui"
	"github.com/willibrandon/exo/internal/ui/styles"
)

var helpSections = []string{"File", "Clipboard", "Search", "Display", "Editing", "Motion", "Words"}

// HelpText represents the help component
type HelpText struct {
	width  int
	height int
	keys   ui.KeyMap
}

// NewHelp creates a new help component
func NewHelp(keys ui.KeyMap) *HelpText {
	return &HelpText{keys: keys}
}

// SetSize sets the size of the help component
func (h *HelpText) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help screen
func (h *HelpText) View() string {
	var b strings.Builder

	b.WriteString(styles.HelpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for i, group := range h.keys.FullHelp() {
		if i < len(helpSections) {
			b.WriteString(styles.HeaderStyle.Render(helpSections[i]))
			b.WriteString("\n")
		}
		for _, binding := range group {
			b.WriteString(h.formatShortcut(binding))
		}
	}

	dialog := styles.HelpDialogStyle.Render(strings.TrimRight(b.String(), "\n"))

	if h.width > 0 {
		dialog = lipgloss.Place(
			h.width,
			h.height,
			lipgloss.Center,
			lipgloss.Center,
			dialog,
		)
	}

	return dialog
}

// formatShortcut formats a keyboard shortcut with its description
func (h *HelpText) formatShortcut(b key.Binding) string {
	hk := b.Help()
	return styles.HelpKeyStyle.Render(hk.Key) + styles.HelpDescStyle.Render(hk.Desc) + "\n"
}

// ShortHelp returns the hint lines shown under the editor, wrapped to the
// screen width
func (h *HelpText) ShortHelp() string {
	var parts []string
	for _, b := range h.keys.ShortHelp() {
		hk := b.Help()
		parts = append(parts, hk.Key+" "+hk.Desc)
	}
	text := strings.Join(parts, "  ")
	if h.width > 0 {
		text = wordwrap.WrapString(text, uint(h.width))
	}
	return styles.HelpFooterStyle.Render(text)
}
