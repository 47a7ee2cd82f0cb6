package highlight

import (
	"fmt"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	enry "github.com/go-enry/go-enry/v2"
)

// tokeniseOptions keeps carriage returns intact so tokens reassemble into
// the exact line text.
var tokeniseOptions = &chroma.TokeniseOptions{State: "root", EnsureLF: false}

// ChromaLexer adapts a chroma lexer to the Lexer interface.
type ChromaLexer struct {
	lexer chroma.Lexer
	name  string
}

// NewChromaLexer wraps l. Adjacent tokens of the same type are coalesced.
func NewChromaLexer(l chroma.Lexer) *ChromaLexer {
	return &ChromaLexer{lexer: chroma.Coalesce(l), name: l.Config().Name}
}

// LexerByName looks up a chroma lexer by name or alias.
func LexerByName(name string) (*ChromaLexer, bool) {
	l := lexers.Get(name)
	if l == nil {
		return nil, false
	}
	return NewChromaLexer(l), true
}

// DetectLexer picks a lexer for filename. It tries chroma's filename
// patterns, then go-enry's detection over the name and head of the file,
// then chroma's content analysers, and finally plain text.
func DetectLexer(filename string, head string) *ChromaLexer {
	base := filepath.Base(filename)
	if l := lexers.Match(base); l != nil {
		return NewChromaLexer(l)
	}
	if lang := enry.GetLanguage(base, []byte(head)); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return NewChromaLexer(l)
		}
	}
	if head != "" {
		if l := lexers.Analyse(head); l != nil {
			return NewChromaLexer(l)
		}
	}
	return NewChromaLexer(lexers.Fallback)
}

// Name returns the chroma lexer name.
func (c *ChromaLexer) Name() string { return c.name }

// Tokenize implements Lexer. Categories are chroma token type names.
func (c *ChromaLexer) Tokenize(text string) ([]Token, error) {
	it, err := c.lexer.Tokenise(tokeniseOptions, text)
	if err != nil {
		return nil, fmt.Errorf("%s lexer: %w", c.name, err)
	}
	var out []Token
	for t := it(); t != chroma.EOF; t = it() {
		out = append(out, Token{Category: t.Type.String(), Text: t.Value})
	}
	return Normalize(out), nil
}
