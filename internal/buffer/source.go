package buffer

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// SourceState is the lifecycle state of a Source.
type SourceState int

const (
	// SourceOpen means more lines may follow.
	SourceOpen SourceState = iota
	// SourceExhausted means the handle is closed and no more lines exist.
	SourceExhausted
)

// String returns the name of the state
func (s SourceState) String() string {
	return [...]string{"open", "exhausted"}[s]
}

// Source reads raw lines from a backing file one at a time. Lines are
// returned without their terminator. The handle is closed as soon as the
// stream is exhausted.
type Source struct {
	rc       io.ReadCloser
	r        *bufio.Reader
	state    SourceState
	produced int
	trailing bool // last produced line ended with '\n'
	err      error
}

// NewSource wraps rc. A nil rc yields an exhausted source with no lines,
// used for buffers that have no backing file.
func NewSource(rc io.ReadCloser) *Source {
	if rc == nil {
		return &Source{state: SourceExhausted}
	}
	return &Source{rc: rc, r: bufio.NewReader(rc)}
}

// State returns the current state.
func (s *Source) State() SourceState { return s.state }

// Exhausted reports whether no more lines can be read.
func (s *Source) Exhausted() bool { return s.state == SourceExhausted }

// TrailingNewline reports whether the last line produced so far was
// terminated by a newline. Once exhausted, this is the file's final newline.
func (s *Source) TrailingNewline() bool { return s.trailing }

// Produced returns how many lines have been read.
func (s *Source) Produced() int { return s.produced }

// Err returns the read error that exhausted the stream, if any.
func (s *Source) Err() error { return s.err }

// ReadLine returns the next raw line. ok is false once the stream is
// exhausted. An empty input produces exactly one empty line.
func (s *Source) ReadLine() (line string, ok bool) {
	if s.state == SourceExhausted {
		return "", false
	}

	raw, err := s.r.ReadString('\n')
	switch {
	case err == nil:
		s.produced++
		s.trailing = true
		return strings.TrimSuffix(raw, "\n"), true
	case errors.Is(err, io.EOF):
		s.exhaust(nil)
		if raw == "" && s.produced > 0 {
			return "", false
		}
		s.produced++
		s.trailing = false
		return raw, true
	default:
		s.exhaust(err)
		if raw == "" {
			return "", false
		}
		s.produced++
		s.trailing = false
		return raw, true
	}
}

// Close releases the handle. It is safe to call more than once.
func (s *Source) Close() error {
	if s.state == SourceExhausted {
		return nil
	}
	s.state = SourceExhausted
	if s.rc != nil {
		return s.rc.Close()
	}
	return nil
}

func (s *Source) exhaust(err error) {
	s.err = err
	s.state = SourceExhausted
	if s.rc != nil {
		s.rc.Close()
	}
}
