package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/willibrandon/exo/internal/logger"
	"github.com/willibrandon/exo/internal/search"
	"github.com/willibrandon/exo/internal/storage/sqlite"
)

var (
	kindFormat  = color.New(color.FgHiMagenta, color.Bold).SprintFunc()
	entryFormat = color.New(color.FgCyan).SprintFunc()
	mutedFormat = color.New(color.FgHiBlack).SprintFunc()
)

// historyKinds maps the subcommand arguments to stored kinds
var historyKinds = map[string]string{
	"queries":      search.KindQuery,
	"replacements": search.KindReplacement,
}

// newHistoryCmd creates the history subcommand
func newHistoryCmd() *cobra.Command {
	var limit int
	var clearHistory bool

	cmd := &cobra.Command{
		Use:       "history [queries|replacements]",
		Short:     "Show persisted search history",
		Long:      `Print the saved search queries and replacement templates, newest first.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"queries", "replacements"},
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot()
			if err != nil {
				return err
			}
			initLogging(snap)
			defer logger.Close()

			db, err := sqlite.Open(snap.History().Path)
			if err != nil {
				return err
			}
			defer db.Close()
			store := sqlite.NewHistoryStore(db)

			names := []string{"queries", "replacements"}
			if len(args) == 1 {
				names = args
			}

			if clearHistory {
				for _, name := range names {
					if err := store.Clear(historyKinds[name]); err != nil {
						return err
					}
				}
				return nil
			}

			tree, err := historyTree(store, db.Path(), names, limit)
			if err != nil {
				return err
			}
			fmt.Print(tree)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "entries per kind")
	cmd.Flags().BoolVar(&clearHistory, "clear", false, "delete the listed history instead of printing it")
	return cmd
}

// historyTree renders the named history kinds as a tree.
func historyTree(store *sqlite.HistoryStore, root string, names []string, limit int) (string, error) {
	tree := treeprint.NewWithRoot(mutedFormat(root))
	for _, name := range names {
		kind := historyKinds[name]
		entries, err := store.List(kind, limit)
		if err != nil {
			return "", err
		}
		count, err := store.Count(kind)
		if err != nil {
			return "", err
		}

		branch := tree.AddMetaBranch(count, kindFormat(name))
		for _, e := range entries {
			branch.AddMetaNode(mutedFormat(humanize.Time(e.CreatedAt)), entryFormat(fmt.Sprintf("%q", e.Entry)))
		}
	}
	return tree.String(), nil
}
