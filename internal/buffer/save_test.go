package buffer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/exo/internal/config"
)

func openFile(t *testing.T, name string, content string, snap *config.Snapshot) (*Buffer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	b, err := Open(path, snap)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b, path
}

func TestSaveUneditedIsByteExact(t *testing.T) {
	snap := config.Default().Freeze()
	inputs := map[string]string{
		"empty":                 "",
		"single newline":        "\n",
		"no trailing newline":   "foo\nbar\nbaz",
		"trailing newline":      "foo\nbar\n",
		"blank lines at end":    "foo\n\n\n",
		"tabs preserved":        "\tindented\n\t\tdeeper\tmixed  \n",
		"crlf":                  "a\r\nb\r\n",
		"unicode":               "héllo\n世界",
		"retab file, untouched": "a       b\n",
	}

	for name, content := range inputs {
		t.Run(name, func(t *testing.T) {
			file := "file.txt"
			if name == "retab file, untouched" {
				file = "data.tsv"
			}
			b, path := openFile(t, file, content, snap)

			require.NoError(t, b.Save(path))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, content, string(got))
		})
	}
}

func TestSaveAfterPartialMaterialization(t *testing.T) {
	snap := config.Default().Freeze()
	b, path := openFile(t, "big.txt", "1\n2\n3\n4\n5", snap)
	require.Equal(t, 1, b.Len())

	b.SetText(0, "one")
	require.NoError(t, b.Save(path))

	got, _ := os.ReadFile(path)
	assert.Equal(t, "one\n2\n3\n4\n5", string(got))
}

func TestSaveEditedLines(t *testing.T) {
	snap := config.Default().Freeze()

	t.Run("edited line written expanded", func(t *testing.T) {
		b, path := openFile(t, "x.txt", "\tkeep\n\tedit\n", snap)
		b.Goto(2, 9)
		b.Insert("ed")
		require.NoError(t, b.Save(path))

		got, _ := os.ReadFile(path)
		assert.Equal(t, "\tkeep\n    edited\n", string(got))
	})

	t.Run("retab policy collapses spaces", func(t *testing.T) {
		b, path := openFile(t, "Makefile", "all:\n\tcc x.c\n", snap)
		b.Goto(2, 1)
		b.End()
		b.Insert(" -o x")
		b.SplitFocus()
		require.NoError(t, b.Save(path))

		got, _ := os.ReadFile(path)
		assert.Equal(t, "all:\n\tcc x.c -o x\n\n", string(got))
	})

	t.Run("derived lines written as text", func(t *testing.T) {
		b, path := openFile(t, "x.txt", "ab", snap)
		b.SetCursor(1)
		b.SplitFocus()
		require.NoError(t, b.Save(path))

		got, _ := os.ReadFile(path)
		assert.Equal(t, "a\nb", string(got))
	})
}

func TestSaveKeepsMode(t *testing.T) {
	snap := config.Default().Freeze()
	b, path := openFile(t, "x.txt", "a\n", snap)
	b.Insert("b")
	require.NoError(t, b.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestSaveToOtherPath(t *testing.T) {
	snap := config.Default().Freeze()
	b, _ := openFile(t, "x.txt", "a\nb", snap)
	out := filepath.Join(t.TempDir(), "copy.txt")

	require.NoError(t, b.Save(out))
	got, _ := os.ReadFile(out)
	assert.Equal(t, "a\nb", string(got))
}

func TestFailedSaveLeavesBufferEditable(t *testing.T) {
	snap := config.Default().Freeze()
	b, _ := openFile(t, "x.txt", "\tline\n", snap)
	b.Insert("x")
	gen := b.Generation()

	err := b.Save(filepath.Join(t.TempDir(), "missing", "dir", "x.txt"))
	require.Error(t, err)

	assert.Equal(t, gen, b.Generation())
	l, _ := b.Focus()
	assert.Equal(t, "x    line", l.Text())
	raw, ok := l.Pristine()
	assert.True(t, ok)
	assert.Equal(t, "\tline", raw, "pristine text only changes after a successful save")

	b.Insert("y")
	assert.Equal(t, "xy    line", l.Text())
}

func TestSaveRefreshesPristine(t *testing.T) {
	snap := config.Default().Freeze()
	b, path := openFile(t, "x.txt", "a\n", snap)
	b.SetCursor(1)
	b.SplitFocus()
	require.NoError(t, b.Save(path))

	l, _ := b.Get(1)
	raw, ok := l.Pristine()
	assert.True(t, ok)
	assert.Equal(t, "", raw)
}

// failingReader returns content up to left bytes, then an error.
type failingReader struct {
	content string
	left    int
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.left == 0 {
		return 0, errors.New("device went away")
	}
	n := copy(p, r.content[:min(r.left, len(r.content))])
	r.content = r.content[n:]
	r.left -= n
	return n, nil
}

func TestSaveRefusesAfterReadError(t *testing.T) {
	const original = "one\ntwo\nthree\nfour\n"
	path := filepath.Join(t.TempDir(), "x.txt")
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	b := New(path, io.NopCloser(&failingReader{content: original, left: 6}), config.TabPolicy{Size: 4})
	defer b.Close()

	err := b.Save(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device went away")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(got), "the file on disk is left alone")
}
