package buffer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/willibrandon/exo/internal/logger"
)

// Save writes every line to path. Unedited lines are written exactly as
// they were read; edited and derived lines are written as edited, retabbed
// when the tab policy asks for it. The final newline mirrors the source.
//
// The rest of the source is read first. On failure the buffer is unchanged.
func (b *Buffer) Save(path string) error {
	b.MaterializeAll()
	if err := b.src.Err(); err != nil {
		return fmt.Errorf("failed to save %s: source unreadable: %w", path, err)
	}

	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = b.serialize(l)
	}

	var buf bytes.Buffer
	for i, s := range out {
		buf.WriteString(s)
		if i < len(out)-1 || b.src.TrailingNewline() {
			buf.WriteByte('\n')
		}
	}

	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	for i, l := range b.lines {
		l.pristine = out[i]
		l.hasPristine = true
	}
	logger.Info("saved buffer", "path", path, "lines", len(b.lines), "bytes", buf.Len())
	return nil
}

func (b *Buffer) serialize(l *Line) string {
	if l.hasPristine && ExpandTabs(l.pristine, b.policy.Size) == l.text {
		return l.pristine
	}
	if b.policy.Retab {
		return Retab(l.text, b.policy.Size)
	}
	return l.text
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, keeping the mode of an existing file.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return ErrIsDirectory
		}
		mode = info.Mode().Perm()
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".exo-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	cleanup := func() { os.Remove(name) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(name, mode); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(name, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
