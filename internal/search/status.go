// Package search implements regex seek and replace over a line buffer,
// along with the bounded histories that feed the query and replacement
// prompts.
package search

// Status is the outcome of a search command. Failures are reported as a
// status, never as an error, and leave the buffer untouched.
type Status int

const (
	StatusOK Status = iota
	StatusNoResults
	StatusBadPattern
	StatusBadTemplate
	StatusNoQuery
	StatusNoReplacement
	StatusTimeout
)

// String returns the short message shown in the status bar.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return ""
	case StatusNoResults:
		return "0 res."
	case StatusBadPattern:
		return "re fail"
	case StatusBadTemplate:
		return "sub fail"
	case StatusNoQuery:
		return "no re"
	case StatusNoReplacement:
		return "no sub"
	case StatusTimeout:
		return "re slow"
	default:
		return "unknown"
	}
}

// OK reports whether the command succeeded.
func (s Status) OK() bool { return s == StatusOK }
