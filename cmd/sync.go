/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/antigravity/core/writer"
)

var dryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Regenerates the solution and project files",
	Long: `Regenerates the .sln file and one .csproj file per module in the project
root. Files that cannot be written keep their previous content.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, err := newGenerator(cfg, writer.NewCachedSink(writer.NewFileWriter()))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if dryRun {
			docs, err := gen.Render()
			if err != nil {
				return err
			}
			for _, doc := range docs {
				fmt.Fprintf(out, "%s %s (%d bytes)\n", VerboseStyle.Render("would write"), doc.TargetPath, len(doc.Content))
			}
			return nil
		}

		report, err := gen.SyncWithReport()
		if err != nil {
			return err
		}
		for _, doc := range report.Documents {
			if doc.Err != nil {
				fmt.Fprintf(out, "%s %s: %v\n", ErrorStyle.Render("✗"), doc.TargetPath, doc.Err)
				continue
			}
			fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("✓"), doc.TargetPath)
		}
		if !report.OK() {
			return fmt.Errorf("%d of %d project files could not be written", len(report.Failed()), len(report.Documents))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files that would be written without writing them")
}
