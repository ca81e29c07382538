package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the hungie home directory",
	Long: `Initialize the hungie home directory.

Creates the home directory layout (rulesets/, inbox/) and writes a
default config.yaml if one doesn't already exist.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHome()
		if err != nil {
			return err
		}

		if h.ConfigExists() {
			fmt.Printf("Config already exists at %s\n", h.ConfigPath())
			return nil
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Initialized %s\n", h.Path())
		fmt.Printf("Wrote default config to %s\n", h.ConfigPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
