package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/willibrandon/exo/internal/app"
	"github.com/willibrandon/exo/internal/buffer"
	"github.com/willibrandon/exo/internal/config"
	"github.com/willibrandon/exo/internal/logger"
	"github.com/willibrandon/exo/internal/search"
	"github.com/willibrandon/exo/internal/storage/sqlite"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool
)

var errorFormat = color.New(color.FgHiRed, color.Bold).SprintFunc()

func main() {
	rootCmd := &cobra.Command{
		Use:   "exo PATH[:LINE[:COL]]",
		Short: "A small terminal text editor",
		Long: `exo edits one file at a time. Lines are read from disk as they are
needed, so large files open instantly.

Press esc inside the editor for the key map.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(args[0])
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/exo/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newCatCmd(),
		newHistoryCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorFormat("exo:"), err)
		os.Exit(1)
	}
}

// loadSnapshot reads the configuration named by --config, or the default
// location, and freezes it.
func loadSnapshot() (*config.Snapshot, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfigFromPath(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg.Freeze(), nil
}

// initLogging starts the file logger. The caller must call logger.Close.
func initLogging(snap *config.Snapshot) {
	level := logger.LevelInfo
	if debug || snap.Debug() {
		level = logger.LevelDebug
	}
	logger.InitLogger(level, snap.LogFile())
}

// openHistories loads both search histories from the history database.
// On failure the editor runs with in-memory histories.
func openHistories(snap *config.Snapshot) (*sqlite.DB, *search.History, *search.History) {
	hist := snap.History()
	db, err := sqlite.Open(hist.Path)
	if err != nil {
		logger.Warn("history database unavailable", "path", hist.Path, "error", err)
		return nil, nil, nil
	}

	store := sqlite.NewHistoryStore(db)
	store.SetCapacity(search.KindQuery, hist.MaxQueries)
	store.SetCapacity(search.KindReplacement, hist.MaxReplacements)

	queries, err := search.LoadHistory(search.KindQuery, hist.MaxQueries, store)
	if err != nil {
		logger.Warn("failed to load query history", "error", err)
	}
	replacements, err := search.LoadHistory(search.KindReplacement, hist.MaxReplacements, store)
	if err != nil {
		logger.Warn("failed to load replacement history", "error", err)
	}
	return db, queries, replacements
}

// runEditor opens arg in the editor and blocks until the user exits.
func runEditor(arg string) error {
	path, line, col := parsePathArg(arg)

	snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	initLogging(snap)
	defer logger.Close()
	logger.Debug("exo starting", "version", version, "path", path, "line", line, "col", col)

	if err := touch(path); err != nil {
		return errors.New(app.FormatFileError("open", path, err))
	}
	buf, err := buffer.Open(path, snap)
	if err != nil {
		return errors.New(app.FormatFileError("open", path, err))
	}

	db, queries, replacements := openHistories(snap)
	if db != nil {
		defer db.Close()
	}

	model := app.New(snap, buf, app.Options{
		Line:         line,
		Col:          col,
		Queries:      queries,
		Replacements: replacements,
	})
	defer model.Cleanup()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}
	return nil
}

// touch creates path if it does not exist. Existing files are left alone.
func touch(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("failed to open %s: %w", path, buffer.ErrIsDirectory)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}
