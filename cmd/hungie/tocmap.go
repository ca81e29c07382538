package main

import (
	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/api"
	"github.com/yeschef/hungie/internal/extract"
)

var tocmapRuleset string

var tocmapCmd = &cobra.Command{
	Use:   "tocmap <pdf-path>",
	Short: "Report table-of-contents mapping for a PDF",
	Long: `Map a cookbook's table of contents against its body pages and
report where each entry landed, without writing anything.

Useful for tuning a ruleset against a new cookbook: unmapped entries
usually mean the TOC page range or the recipe markers need adjusting.

Examples:
  hungie tocmap cookbook.pdf
  hungie tocmap cookbook.pdf --ruleset my-rules -o json`,
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

		rules, err := loadRuleset(h, tocmapRuleset, conf.Extract.DefaultRuleset)
		if err != nil {
			return err
		}

		report, err := extract.New(nil, rules, newLogger(conf)).TOCReport(ctx, args[0])
		if err != nil {
			return err
		}
		return api.Output(report)
	},
}

func init() {
	tocmapCmd.Flags().StringVar(&tocmapRuleset, "ruleset", "", "Ruleset to use (default from config)")

	rootCmd.AddCommand(tocmapCmd)
}
