package search

import "strings"

var controlEscapes = map[rune]rune{'n': '\n', 'r': '\r', 't': '\t'}

// TranslateTemplate rewrites Python style group references into the
// regexp2 form: \1 becomes ${1} and \g<name> becomes ${name}. A doubled
// backslash is a literal backslash and \n, \r and \t are control
// characters. Native $1 and ${name} references pass through unchanged.
func TranslateTemplate(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		if r[i] != '\\' || i+1 == len(r) {
			b.WriteRune(r[i])
			continue
		}
		next := r[i+1]
		switch {
		case next == '\\':
			b.WriteRune('\\')
			i++
		case next == 'n' || next == 'r' || next == 't':
			b.WriteRune(controlEscapes[next])
			i++
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(r) && r[j] >= '0' && r[j] <= '9' {
				j++
			}
			b.WriteString("${" + string(r[i+1:j]) + "}")
			i = j - 1
		case next == 'g' && i+2 < len(r) && r[i+2] == '<':
			end := -1
			for j := i + 3; j < len(r); j++ {
				if r[j] == '>' {
					end = j
					break
				}
			}
			if end < 0 {
				b.WriteRune(r[i])
				continue
			}
			b.WriteString("${" + string(r[i+3:end]) + "}")
			i = end
		default:
			b.WriteRune(r[i])
		}
	}
	return b.String()
}
