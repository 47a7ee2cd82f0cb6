package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/willibrandon/exo/internal/app"
	"github.com/willibrandon/exo/internal/buffer"
	"github.com/willibrandon/exo/internal/config"
	"github.com/willibrandon/exo/internal/highlight"
	"github.com/willibrandon/exo/internal/logger"
	"github.com/willibrandon/exo/internal/ui/styles"
)

// newCatCmd creates the cat subcommand for headless rendering
func newCatCmd() *cobra.Command {
	var plain, stats bool
	var lexerName string

	cmd := &cobra.Command{
		Use:   "cat PATH",
		Short: "Print a file through the highlighter",
		Long: `Print a file line by line with the same lexer, token cache and colour
style the editor uses. Colour is only emitted when stdout is a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			initLogging(snap)
			defer logger.Close()

			path := args[0]
			buf, err := buffer.Open(path, snap)
			if err != nil {
				return errors.New(app.FormatFileError("open", path, err))
			}
			defer buf.Close()

			colour := !plain && term.IsTerminal(int(os.Stdout.Fd()))
			pal, ok := styles.NewPalette(snap.Highlight().Style)
			if !ok {
				logger.Warn("unknown colour style, using fallback", "style", snap.Highlight().Style)
			}

			var lexer *highlight.ChromaLexer
			if lexerName != "" {
				if lexer, ok = highlight.LexerByName(lexerName); !ok {
					return fmt.Errorf("unknown lexer %q", lexerName)
				}
			} else {
				head, _ := buf.Peek(0)
				lexer = highlight.DetectLexer(buf.Name(), head)
			}

			start := time.Now()
			out := bufio.NewWriter(os.Stdout)
			cache, err := renderBuffer(out, buf, lexer, pal, colour, snap.Highlight())
			if err != nil {
				return err
			}
			if err := out.Flush(); err != nil {
				return err
			}

			if stats {
				printCatStats(os.Stderr, buf, lexer.Name(), cache, time.Since(start))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "never emit colour")
	cmd.Flags().StringVarP(&lexerName, "lexer", "l", "", "lexer name or alias (default: detect from the file)")
	cmd.Flags().BoolVar(&stats, "stats", false, "print lexer and cache statistics to stderr")
	return cmd
}

// renderBuffer writes every line of buf to w, coloured with pal when colour
// is set. It returns the cache used so callers can report its statistics.
func renderBuffer(w io.Writer, buf *buffer.Buffer, lexer highlight.Lexer, pal *styles.Palette, colour bool, hl config.HighlightConfig) (*highlight.Cache, error) {
	cache := highlight.NewCache(buf, lexer, hl)

	buf.MaterializeAll()
	if err := buf.Source().Err(); err != nil {
		return cache, fmt.Errorf("failed to read %s: %w", buf.Name(), err)
	}
	for pos := 0; pos < buf.Len(); pos++ {
		for _, tok := range cache.TokensFor(pos) {
			text := tok.Text
			if colour {
				text = pal.Style(tok.Category).Render(text)
			}
			if _, err := io.WriteString(w, text); err != nil {
				return cache, err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return cache, err
		}
	}
	return cache, nil
}

func printCatStats(w io.Writer, buf *buffer.Buffer, lexer string, cache *highlight.Cache, elapsed time.Duration) {
	st := cache.Stats()
	var size int64
	if info, err := os.Stat(buf.Name()); err == nil {
		size = info.Size()
	}
	fmt.Fprintf(w, "lexer:      %s\n", lexer)
	fmt.Fprintf(w, "lines:      %s\n", humanize.Comma(int64(buf.Len())))
	fmt.Fprintf(w, "size:       %s\n", humanize.IBytes(uint64(size)))
	fmt.Fprintf(w, "windows:    %d (avg %.2fms)\n", st.Windows, st.AvgLatency)
	fmt.Fprintf(w, "bypassed:   %d\n", st.Bypassed)
	fmt.Fprintf(w, "fallbacks:  %d\n", st.Fallbacks)
	fmt.Fprintf(w, "elapsed:    %s\n", elapsed.Round(time.Millisecond))
}
