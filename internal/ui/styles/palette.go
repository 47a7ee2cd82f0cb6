package styles

import (
	"github.com/alecthomas/chroma/v2"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// tokenTypes maps category names back to chroma token types.
var tokenTypes = func() map[string]chroma.TokenType {
	m := make(map[string]chroma.TokenType, len(chroma.StandardTypes))
	for tt := range chroma.StandardTypes {
		m[tt.String()] = tt
	}
	return m
}()

// Palette renders token categories with a chroma style.
type Palette struct {
	name   string
	style  *chroma.Style
	styles map[string]lipgloss.Style
	base   lipgloss.Style
}

// NewPalette builds a palette from the named chroma style. ok is false
// when no such style is registered; the palette then uses chroma's
// fallback style.
func NewPalette(name string) (p *Palette, ok bool) {
	_, ok = chromastyles.Registry[name]
	s := chromastyles.Get(name)
	p = &Palette{
		name:   s.Name,
		style:  s,
		styles: make(map[string]lipgloss.Style),
	}
	p.base = toLipgloss(s.Get(chroma.Text))
	return p, ok
}

// StyleNames lists registered chroma styles.
func StyleNames() []string {
	return chromastyles.Names()
}

// Name returns the chroma style name.
func (p *Palette) Name() string { return p.name }

// Style returns the lipgloss style for a token category.
func (p *Palette) Style(category string) lipgloss.Style {
	if st, ok := p.styles[category]; ok {
		return st
	}
	st := p.base
	if tt, ok := tokenTypes[category]; ok {
		st = toLipgloss(p.style.Get(tt))
	}
	p.styles[category] = st
	return st
}

func toLipgloss(e chroma.StyleEntry) lipgloss.Style {
	st := lipgloss.NewStyle()
	if e.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(e.Colour.String()))
	}
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if e.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}
