/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/models"
	"github.com/tristendillon/antigravity/core/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerates project files whenever scripts change",
	Long: `Generates the project files once, then watches the project root and
regenerates them after scripts are added, deleted or moved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := newEditor(cfg)
		if err != nil {
			return err
		}
		if ed == nil {
			logger.Warn("Batch mode is set, not watching %s", cfg.Project.Root)
			return nil
		}

		w, err := watcher.New(watcher.Config{
			Root:     cfg.Project.Root,
			Ignore:   cfg.Watch.Ignore,
			Debounce: cfg.Watch.Debounce,
			OnStart: func() error {
				ed.SyncAll()
				logger.Info("Watching %s for changes", cfg.Project.Root)
				return nil
			},
			OnChange: func(_ context.Context, req models.SyncRequest) error {
				ed.SyncIfNeeded(req.Added, req.Deleted, req.Moved, req.MovedFrom, req.Imported)
				return nil
			},
			OnClose: func() error {
				logger.Info("Stopped watching")
				return nil
			},
		})
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		return w.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
