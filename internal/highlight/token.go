// Package highlight turns buffer lines into lexical tokens for rendering.
//
// Tokens are produced by a Lexer over whole windows of lines and cached per
// line. The cache is keyed on the buffer generation, so a mutation anywhere
// makes every cached slot stale.
package highlight

import "strings"

// FallbackCategory is used for text the lexer could not account for.
const FallbackCategory = "Text"

// Token is a run of text with one lexical category.
type Token struct {
	Category string
	Text     string
}

// Lexer is the lexing service: it splits text into categorized tokens.
type Lexer interface {
	Tokenize(text string) ([]Token, error)
}

// Normalize drops empty tokens and merges neighbours of equal category.
func Normalize(tokens []Token) []Token {
	out := tokens[:0:0]
	for _, t := range tokens {
		if t.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Category == t.Category {
			out[n-1].Text += t.Text
			continue
		}
		out = append(out, t)
	}
	return out
}

// Join concatenates token texts.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// plain returns text as a single fallback token.
func plain(text string) []Token {
	if text == "" {
		return nil
	}
	return []Token{{Category: FallbackCategory, Text: text}}
}

// fit trims tokens that run past the end of text, as lexers that append a
// final newline produce, and reports whether the rest reproduces text.
func fit(tokens []Token, text string) ([]Token, bool) {
	out := make([]Token, 0, len(tokens))
	rest := text
	for _, t := range tokens {
		if rest == "" {
			break
		}
		v := t.Text
		if len(v) > len(rest) {
			v = v[:len(rest)]
		}
		if !strings.HasPrefix(rest, v) {
			return nil, false
		}
		out = append(out, Token{Category: t.Category, Text: v})
		rest = rest[len(v):]
	}
	return Normalize(out), rest == ""
}

// splitLines cuts a token stream over n newline-joined lines into one token
// list per line. Text beyond the n-th line is dropped.
func splitLines(tokens []Token, n int) [][]Token {
	out := make([][]Token, n)
	line := 0
	for _, t := range tokens {
		parts := strings.Split(t.Text, "\n")
		for i, p := range parts {
			if i > 0 {
				line++
			}
			if line >= n {
				return out
			}
			if p != "" {
				out[line] = append(out[line], Token{Category: t.Category, Text: p})
			}
		}
	}
	return out
}
