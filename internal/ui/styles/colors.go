// Package styles provides centralized Lipgloss styling for the exo editor.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the editor chrome
var (
	// UI element colors
	ColorBorder = lipgloss.Color("240") // Gray - separators
	ColorAccent = lipgloss.Color("6")   // Cyan - titles, highlights
	ColorMuted  = lipgloss.Color("8")   // Dark gray - secondary text
	ColorText   = lipgloss.Color("7")   // Default text
	ColorError  = lipgloss.Color("9")   // Red - errors and unsaved marker

	// Status bar colors
	ColorStatusFg = lipgloss.Color("0")
	ColorStatusBg = lipgloss.Color("6")
)
