/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Shows where Antigravity is installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		installs := newLocator(cfg).Installations()
		out := cmd.OutOrStdout()
		if len(installs) == 0 {
			fmt.Fprintln(out, WarningStyle.Render("Antigravity installation not detected."))
			return fmt.Errorf("antigravity is not installed or cannot be found")
		}
		for _, install := range installs {
			fmt.Fprintf(out, "%s detected at: %s\n", TitleStyle.Render(install.Name), install.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
