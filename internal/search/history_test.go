package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	rows   map[string][]string
	addErr error
}

func (m *memStore) Add(kind, entry string) error {
	if m.addErr != nil {
		return m.addErr
	}
	if m.rows == nil {
		m.rows = map[string][]string{}
	}
	m.rows[kind] = append(m.rows[kind], entry)
	return nil
}

func (m *memStore) Recent(kind string, limit int) ([]string, error) {
	rows := m.rows[kind]
	if len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	return append([]string(nil), rows...), nil
}

func TestRecallRestoresComposing(t *testing.T) {
	h := NewHistory(KindQuery, 8)
	h.Push("a")
	h.Push("b")

	r := h.Recall()
	assert.Equal(t, "b", r.Up(""))
	assert.Equal(t, "a", r.Up("b"))
	assert.Equal(t, "b", r.Down())
	assert.Equal(t, "", r.Down())
	assert.True(t, r.Composing())
}

func TestRecallBounds(t *testing.T) {
	h := NewHistory(KindQuery, 8)
	h.Push("only")

	r := h.Recall()
	assert.Equal(t, "only", r.Up("typed"))
	assert.Equal(t, "only", r.Up("only"), "floored at the oldest entry")
	assert.Equal(t, "typed", r.Down())
	assert.Equal(t, "typed", r.Down(), "capped at the composing slot")
}

func TestRecallEmptyHistory(t *testing.T) {
	r := NewHistory(KindQuery, 8).Recall()
	assert.Equal(t, "draft", r.Up("draft"))
	assert.Equal(t, "draft", r.Down())
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(KindReplacement, 3)
	for _, e := range []string{"1", "2", "3", "4", "5"} {
		h.Push(e)
	}
	assert.Equal(t, []string{"3", "4", "5"}, h.Entries())
}

func TestLoadHistory(t *testing.T) {
	store := &memStore{}
	for _, e := range []string{"x", "y", "z"} {
		require.NoError(t, store.Add(KindQuery, e))
	}
	require.NoError(t, store.Add(KindReplacement, "r"))

	h, err := LoadHistory(KindQuery, 2, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z"}, h.Entries())

	h.Push("w")
	assert.Equal(t, []string{"x", "y", "z", "w"}, store.rows[KindQuery])
	assert.Equal(t, []string{"z", "w"}, h.Entries())
}

func TestPushKeepsEntryWhenStoreFails(t *testing.T) {
	h, err := LoadHistory(KindQuery, 4, &memStore{addErr: errors.New("disk full")})
	require.NoError(t, err)

	h.Push("kept")
	assert.Equal(t, []string{"kept"}, h.Entries())
}
