/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/tristendillon/antigravity/core/config"
	"github.com/tristendillon/antigravity/core/logger"
	"github.com/tristendillon/antigravity/core/version"
)

var rootCmd = &cobra.Command{
	Use:   "antigravity",
	Short: "Keeps Antigravity project files in sync with a game project.",
	Long: `Antigravity generates the .sln and .csproj files the Antigravity editor
needs for code intelligence, regenerates them when scripts change and opens
files in the editor at a given line and column.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	logfile   string
	verbose   bool
	cfgFile   string
	rootDir   string
	cfg       *config.Config
	logCloser func() error
)

func Execute() {
	os.Exit(Main())
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	defer closeLogfile()
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.String()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is antigravity.yaml in the project root)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Game project root (default is the working directory)")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := setupLogging(cmd, args); err != nil {
		return err
	}
	loaded, err := config.LoadWithOptions(config.LoadOptions{Root: rootDir, ConfigFile: cfgFile})
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(verbose)
	if logfile != "" && logCloser == nil {
		f, err := os.OpenFile(logfile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logger.AddWriterForAll(f)
		logCloser = f.Close
	}
	logger.Debug("%s called", cmd.Name())
	return nil
}

func closeLogfile() {
	if logCloser != nil {
		logCloser()
		logCloser = nil
	}
}
