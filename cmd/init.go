/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tristendillon/antigravity/core/config"
	"github.com/tristendillon/antigravity/core/host"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/template_engine"
	"github.com/tristendillon/antigravity/core/writer"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:               "init [dir]",
	Short:             "Writes a default antigravity.yaml",
	Long:              `Writes an antigravity.yaml with the default settings into a game project.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setupLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := rootDir
		if len(args) == 1 {
			dir = args[0]
		}
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			dir = wd
		}

		target := filepath.Join(dir, config.FileName+".yaml")
		sink := writer.NewFileWriter()
		if exists, _ := afero.Exists(sink.Fs(), target); exists && !force {
			return fmt.Errorf("%s already exists. Use --force to overwrite", target)
		}
		if !host.IsGameProject(dir) {
			logger.Warn("%s has no Assets folder, set project.manifest before syncing", dir)
		}

		defaults := config.Default()
		content, err := template_engine.NewTemplateEngine().Render(template_engine.TEMPLATES.CONFIG_YAML, map[string]any{
			"Name":       "",
			"Extensions": defaults.Sync.Extensions,
			"Salt":       defaults.Sync.Salt,
			"EditorPath": "",
			"Debounce":   defaults.Watch.Debounce,
		})
		if err != nil {
			return err
		}
		if err := sink.Write(target, content); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", SuccessStyle.Render("Created"), target)
		fmt.Fprintf(out, "Next Steps:\n")
		fmt.Fprintf(out, "  - antigravity sync\n")
		fmt.Fprintf(out, "  - antigravity watch\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing antigravity.yaml")
}
