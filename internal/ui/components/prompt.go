package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/willibrandon/exo/internal/search"
	"github.com/willibrandon/exo/internal/ui/styles"
)

// Prompt is the one-line input shown in place of the hint footer. When a
// recall cursor is attached, up and down browse its history.
type Prompt struct {
	input   textinput.Model
	recall  *search.Recall
	visible bool
}

// NewPrompt creates a hidden prompt
func NewPrompt() *Prompt {
	ti := textinput.New()
	ti.PromptStyle = styles.PromptLabelStyle
	ti.TextStyle = styles.PromptTextStyle
	return &Prompt{input: ti}
}

// Open shows the prompt with label and an initial value. recall may be nil.
func (p *Prompt) Open(label, initial string, recall *search.Recall) tea.Cmd {
	p.input.Prompt = label + ": "
	p.input.SetValue(initial)
	p.input.CursorEnd()
	p.recall = recall
	p.visible = true
	return p.input.Focus()
}

// Close hides the prompt
func (p *Prompt) Close() {
	p.input.Blur()
	p.recall = nil
	p.visible = false
}

// Visible reports whether the prompt is open
func (p *Prompt) Visible() bool {
	return p.visible
}

// Value returns the typed text
func (p *Prompt) Value() string {
	return p.input.Value()
}

// SetWidth limits the visible input width
func (p *Prompt) SetWidth(width int) {
	p.input.Width = max(width-len(p.input.Prompt)-1, 1)
}

// Update handles a key while the prompt is open
func (p *Prompt) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		if p.recall != nil {
			p.setValue(p.recall.Up(p.input.Value()))
		}
		return nil
	case tea.KeyDown:
		if p.recall != nil {
			p.setValue(p.recall.Down())
		}
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *Prompt) setValue(v string) {
	p.input.SetValue(v)
	p.input.CursorEnd()
}

// View renders the prompt
func (p *Prompt) View() string {
	if !p.visible {
		return ""
	}
	return p.input.View()
}
