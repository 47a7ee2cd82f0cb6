package buffer

import "strings"

// ExpandTabs replaces each tab with enough spaces to reach the next multiple
// of size columns. Columns count runes and restart after '\r' or '\n'.
func ExpandTabs(s string, size int) string {
	return expandTabsAt(s, 0, size)
}

// expandTabsAt expands tabs in s as if s started at column col.
func expandTabsAt(s string, col, size int) string {
	if size < 1 || !strings.ContainsRune(s, '\t') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + size)
	for _, r := range s {
		switch r {
		case '\t':
			n := size - col%size
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// Retab collapses every run of n spaces into n/size tabs followed by n%size
// spaces. Runs are measured on their own, not against column stops.
func Retab(s string, size int) string {
	if size < 1 || !strings.Contains(s, " ") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	run := 0
	flush := func() {
		b.WriteString(strings.Repeat("\t", run/size))
		b.WriteString(strings.Repeat(" ", run%size))
		run = 0
	}
	for _, r := range s {
		if r == ' ' {
			run++
			continue
		}
		if run > 0 {
			flush()
		}
		b.WriteRune(r)
	}
	if run > 0 {
		flush()
	}
	return b.String()
}

// nextTabStop returns how many spaces take column col to the next stop.
func nextTabStop(col, size int) int {
	if size < 1 {
		size = 1
	}
	return size - col%size
}
