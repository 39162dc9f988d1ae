/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	line   int
	column int
)

var openCmd = &cobra.Command{
	Use:   "open [file]",
	Short: "Opens a file in Antigravity",
	Long: `Opens a file in the discovered Antigravity installation, optionally at a
line and column. Without a file the working directory is opened.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := newEditor(cfg)
		if err != nil {
			return err
		}
		if ed == nil {
			return fmt.Errorf("batch mode is set, not opening the editor")
		}

		var file string
		if len(args) == 1 {
			if file, err = filepath.Abs(args[0]); err != nil {
				return fmt.Errorf("failed to resolve %s: %w", args[0], err)
			}
		}
		if !ed.OpenProject(cmd.Context(), file, line, column) {
			return fmt.Errorf("could not open %s in Antigravity", displayTarget(file))
		}
		return nil
	},
}

func displayTarget(file string) string {
	if file == "" {
		return "the working directory"
	}
	return file
}

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().IntVar(&line, "line", -1, "Line to jump to")
	openCmd.Flags().IntVar(&column, "column", -1, "Column to jump to, used with --line")
}
