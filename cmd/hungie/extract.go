package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/extract"
	"github.com/yeschef/hungie/internal/home"
	"github.com/yeschef/hungie/internal/ruleset"
	"github.com/yeschef/hungie/internal/store"
)

var (
	extractRuleset   string
	extractBookTitle string
	extractDryRun    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf-path>",
	Short: "Extract recipes from a cookbook PDF",
	Long: `Extract recipes from a cookbook PDF into the local database.

This runs the full pipeline in-process without a server: page
classification, recipe splitting, and table-of-contents mapping.
Results are written to the database in the home directory.

The path may also be a directory holding a multi-part book
(book-1.pdf, book-2.pdf, ...), read as one continuous page space.

Examples:
  hungie extract cookbook.pdf
  hungie extract cookbook.pdf --book-title "Joy of Cooking"
  hungie extract cookbook.pdf --ruleset my-rules --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		h, err := getHome()
		if err != nil {
			return err
		}
		cm, err := getConfig(h)
		if err != nil {
			return err
		}
		conf := cm.Get()
		logger := newLogger(conf)

		rules, err := loadRuleset(h, extractRuleset, conf.Extract.DefaultRuleset)
		if err != nil {
			return err
		}

		var st *store.Store
		if !extractDryRun {
			dbPath := conf.Extract.DatabasePath
			if dbPath == "" {
				dbPath = h.DatabasePath()
			}
			st, err = store.Open(dbPath, logger)
			if err != nil {
				return err
			}
			defer st.Close()
		}

		stats, err := extract.New(st, rules, logger).Run(ctx, args[0], extract.Options{
			BookTitle: extractBookTitle,
			DryRun:    extractDryRun,
		})
		if err != nil {
			return err
		}

		fmt.Println(stats.Summary())
		return nil
	},
}

// loadRuleset loads home-directory rulesets and resolves the requested
// name, falling back to the configured default.
func loadRuleset(h *home.Dir, name, fallback string) (*ruleset.Ruleset, error) {
	rs := ruleset.NewStore()
	if err := rs.LoadDir(h.RulesetsPath()); err != nil {
		return nil, err
	}
	if name == "" {
		name = fallback
	}
	r, ok := rs.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown ruleset %q (known: %v)", name, rs.Names())
	}
	return r, nil
}

func init() {
	extractCmd.Flags().StringVar(&extractRuleset, "ruleset", "", "Ruleset to use (default from config)")
	extractCmd.Flags().StringVar(&extractBookTitle, "book-title", "", "Book title (default: derived from filename)")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "Run extraction without writing to the database")

	rootCmd.AddCommand(extractCmd)
}
