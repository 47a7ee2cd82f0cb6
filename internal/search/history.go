package search

import (
	"fmt"

	"github.com/willibrandon/exo/internal/logger"
)

// History kinds used when persisting entries.
const (
	KindQuery       = "query"
	KindReplacement = "replacement"
)

// Store persists history entries by kind.
type Store interface {
	Add(kind, entry string) error
	Recent(kind string, limit int) ([]string, error)
}

// History is a bounded FIFO of accepted entries, oldest first.
type History struct {
	kind     string
	entries  []string
	capacity int
	store    Store
}

// NewHistory returns an empty in-memory history.
func NewHistory(kind string, capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{kind: kind, capacity: capacity}
}

// LoadHistory returns a history bound to store, seeded with its most
// recent entries.
func LoadHistory(kind string, capacity int, store Store) (*History, error) {
	h := NewHistory(kind, capacity)
	if store == nil {
		return h, nil
	}
	entries, err := store.Recent(kind, h.capacity)
	if err != nil {
		return h, fmt.Errorf("failed to load %s history: %w", kind, err)
	}
	h.entries = entries
	h.store = store
	return h, nil
}

// Kind returns the history kind.
func (h *History) Kind() string { return h.kind }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Push appends entry, evicting the oldest entries beyond capacity.
func (h *History) Push(entry string) {
	h.entries = append(h.entries, entry)
	if over := len(h.entries) - h.capacity; over > 0 {
		h.entries = h.entries[over:]
	}
	if h.store != nil {
		if err := h.store.Add(h.kind, entry); err != nil {
			logger.Warn("failed to persist history", "kind", h.kind, "error", err)
		}
	}
}

// Recall starts browsing the history from the composing slot.
func (h *History) Recall() *Recall {
	return &Recall{h: h, idx: len(h.entries)}
}

// Recall is a cursor over a History. Index Len() is the composing slot,
// which holds whatever was typed before browsing began.
type Recall struct {
	h         *History
	idx       int
	composing string
}

// Up moves toward older entries and returns the entry's text. current is
// the text being edited; it is saved when leaving the composing slot.
func (r *Recall) Up(current string) string {
	n := len(r.h.entries)
	if r.idx >= n {
		r.idx = n
		r.composing = current
	}
	if n == 0 {
		return current
	}
	if r.idx > 0 {
		r.idx--
	}
	return r.h.entries[r.idx]
}

// Down moves toward newer entries. Reaching the composing slot restores
// the saved text.
func (r *Recall) Down() string {
	n := len(r.h.entries)
	if r.idx < n {
		r.idx++
	}
	if r.idx >= n {
		return r.composing
	}
	return r.h.entries[r.idx]
}

// Composing reports whether the cursor is on the composing slot.
func (r *Recall) Composing() bool { return r.idx >= len(r.h.entries) }
