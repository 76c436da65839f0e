package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"unused-image-finder/internal/config"
	"unused-image-finder/internal/logger"
)

const (
	AppName    = "Unused Image Finder"
	AppID      = "io.github.docs-tools.unused-image-finder"
	AppVersion = "1.0.0"
)

// errUnusedFound makes `scan --fail-on-unused` exit non-zero without printing a usage error
var errUnusedFound = errors.New("unused images found")

// cliState carries config and logger from the persistent pre-run to subcommands
type cliState struct {
	cfg config.Config
	log logger.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errUnusedFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:           "unused-image-finder",
		Short:         "Find images in a book's image folder that no FrameMaker reference uses",
		Long:          "Without a subcommand the desktop window opens. Use `scan` for headless runs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       AppVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			state.cfg = cfg
			state.log = logger.New(cfg.Log.Format, logger.ParseLevel(cfg.Log.Level))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := NewApplication(state.cfg, state.log)
			if err != nil {
				return fmt.Errorf("application initialization failed: %w", err)
			}
			return application.Run()
		},
	}

	root.AddCommand(newScanCommand(state))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", AppName, AppVersion)
		},
	})
	return root
}
