package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/api"
	"github.com/yeschef/hungie/internal/ruleset"
)

var rulesetsCmd = &cobra.Command{
	Use:   "rulesets",
	Short: "Manage extraction rulesets",
	Long: `Manage extraction rulesets.

Rulesets are YAML files in {home}/rulesets/ that control page
classification thresholds, recipe section markers, and text cleanup.
The built-in "default" ruleset is always available.`,
}

var rulesetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known rulesets",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHome()
		if err != nil {
			return err
		}
		rs := ruleset.NewStore()
		if err := rs.LoadDir(h.RulesetsPath()); err != nil {
			return err
		}
		return api.Output(rs.Names())
	},
}

var rulesetsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a ruleset file",
	Long: `Validate a ruleset YAML file against the schema and compile its
regular expressions. Reports the first problem found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		r, err := ruleset.Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Printf("%s: ok (ruleset %q)\n", args[0], r.Name)
		return nil
	},
}

func init() {
	rulesetsCmd.AddCommand(rulesetsListCmd)
	rulesetsCmd.AddCommand(rulesetsValidateCmd)

	rootCmd.AddCommand(rulesetsCmd)
}
