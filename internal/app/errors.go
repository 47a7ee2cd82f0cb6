package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/willibrandon/exo/internal/buffer"
)

// FormatFileError turns an open, save or insert failure into a one-line
// status message.
func FormatFileError(action, path string, err error) string {
	switch {
	case errors.Is(err, buffer.ErrIsDirectory):
		return fmt.Sprintf("%s %s: is a directory", action, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("%s %s: permission denied", action, path)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("%s %s: no such file or directory", action, path)
	case strings.Contains(err.Error(), "no space left"):
		return fmt.Sprintf("%s %s: disk full", action, path)
	}
	cause := errors.Unwrap(err)
	if cause == nil {
		cause = err
	}
	return fmt.Sprintf("%s %s: %v", action, path, cause)
}
