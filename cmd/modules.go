/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/antigravity/core/host"
	"github.com/tristendillon/antigravity/core/identifier"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Lists the modules the project files are generated from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := moduleSource(cfg)
		if err != nil {
			return err
		}
		snap, err := host.TakeSnapshot(src)
		if err != nil {
			return err
		}

		deriver := identifier.NewDeriver(cfg.Sync.Salt)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, TitleStyle.Render(snap.Name))
		for _, m := range snap.Modules {
			fmt.Fprintf(out, "%s %s\n", m.Name, VerboseStyle.Render(deriver.Derive(m.Name).Braced()))
			fmt.Fprintf(out, "  sources: %d\n", len(m.SourceFiles))
			for _, ref := range m.References {
				fmt.Fprintf(out, "  ref: %s\n", filepath.Base(ref))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}
