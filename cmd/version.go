/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/antigravity/core/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Display the version of Antigravity",
	Long:              `Displays the version of the Antigravity project sync tool.`,
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "antigravity %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
