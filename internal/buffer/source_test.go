package buffer

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// trackingReader counts closes and optionally fails after its content.
type trackingReader struct {
	r      io.Reader
	closed int
	fail   error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err == io.EOF && t.fail != nil {
		return n, t.fail
	}
	return n, err
}

func (t *trackingReader) Close() error {
	t.closed++
	return nil
}

func readAll(s *Source) []string {
	var out []string
	for {
		line, ok := s.ReadLine()
		if !ok {
			return out
		}
		out = append(out, line)
	}
}

func TestSourceReadLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		lines    []string
		trailing bool
	}{
		{"empty input", "", []string{""}, false},
		{"single newline", "\n", []string{""}, true},
		{"no trailing newline", "foo\nbar\nbaz", []string{"foo", "bar", "baz"}, false},
		{"trailing newline", "foo\nbar\n", []string{"foo", "bar"}, true},
		{"blank last line", "foo\n\n", []string{"foo", ""}, true},
		{"carriage returns kept", "a\r\nb\r\n", []string{"a\r", "b\r"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &trackingReader{r: strings.NewReader(tt.input)}
			s := NewSource(tr)

			got := readAll(s)
			if strings.Join(got, "|") != strings.Join(tt.lines, "|") || len(got) != len(tt.lines) {
				t.Errorf("lines = %q, want %q", got, tt.lines)
			}
			if s.TrailingNewline() != tt.trailing {
				t.Errorf("TrailingNewline() = %v, want %v", s.TrailingNewline(), tt.trailing)
			}
			if s.State() != SourceExhausted {
				t.Errorf("State() = %v, want exhausted", s.State())
			}
			if tr.closed != 1 {
				t.Errorf("handle closed %d times, want 1", tr.closed)
			}
		})
	}
}

func TestSourceIsIncremental(t *testing.T) {
	tr := &trackingReader{r: strings.NewReader("one\ntwo\nthree\n")}
	s := NewSource(tr)

	line, ok := s.ReadLine()
	if !ok || line != "one" {
		t.Fatalf("ReadLine() = %q, %v", line, ok)
	}
	if s.Exhausted() {
		t.Fatal("source exhausted after first line")
	}
	if s.Produced() != 1 {
		t.Errorf("Produced() = %d, want 1", s.Produced())
	}
}

func TestSourceReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	tr := &trackingReader{r: strings.NewReader("a\nb"), fail: boom}
	s := NewSource(tr)

	got := readAll(s)
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("lines = %q", got)
	}
	if !errors.Is(s.Err(), boom) {
		t.Errorf("Err() = %v, want %v", s.Err(), boom)
	}
	if tr.closed != 1 {
		t.Errorf("handle closed %d times, want 1", tr.closed)
	}
}

func TestSourceCloseIsIdempotent(t *testing.T) {
	tr := &trackingReader{r: strings.NewReader("a\nb\n")}
	s := NewSource(tr)
	s.ReadLine()

	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	s.Close()
	if tr.closed != 1 {
		t.Errorf("handle closed %d times, want 1", tr.closed)
	}
	if _, ok := s.ReadLine(); ok {
		t.Error("ReadLine() after Close returned a line")
	}
}
