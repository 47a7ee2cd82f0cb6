package styles

import "github.com/charmbracelet/lipgloss"

// Status bar styles
var (
	// StatusBarStyle is the inverted bar at the bottom of the screen
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorStatusFg).
			Background(ColorStatusBg)

	// StatusTitleStyle is for the file name
	StatusTitleStyle = StatusBarStyle.
				Bold(true)

	// StatusDirtyStyle marks unsaved changes
	StatusDirtyStyle = StatusBarStyle.
				Foreground(ColorError).
				Bold(true)
)

// Prompt styles
var (
	// PromptLabelStyle is for the prompt label
	PromptLabelStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	// PromptTextStyle is for typed prompt text
	PromptTextStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// Help overlay styles
var (
	// HelpDialogStyle is for the help dialog box
	HelpDialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	// HelpTitleStyle is for the help title
	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// HeaderStyle is for section headers
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			MarginTop(1)

	// HelpKeyStyle is for keyboard shortcuts
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Width(10)

	// HelpDescStyle is for shortcut descriptions
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// HelpFooterStyle is for the wrapped hint line under the editor
	HelpFooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Editor styles
var (
	// CursorStyle marks the cursor cell
	CursorStyle = lipgloss.NewStyle().
			Reverse(true)

	// FillerStyle is for rows past the end of the buffer
	FillerStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)
