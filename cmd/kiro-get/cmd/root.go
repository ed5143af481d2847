package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/kiro-get/internal/config"
	"github.com/oshokin/kiro-get/internal/logger"
	"github.com/oshokin/kiro-get/internal/service/installer"
	"github.com/oshokin/kiro-get/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// checkOnly reports the available version without installing.
	checkOnly bool
	// logLevel overrides the default logging verbosity.
	logLevel string

	// rootCmd represents the base command for installing and updating Kiro.
	rootCmd = &cobra.Command{
		Use:   "kiro-get",
		Short: "Install or update the Kiro IDE.",
		Long: `Downloads the latest Kiro IDE build for Linux x64 and installs it in place.

Fetches release metadata from the official endpoint and compares the published
version against the locally recorded one. When they differ, downloads the
tar.gz archive, extracts it over the install directory and wires in the
desktop integration: a launcher script, a menu entry and a command symlink.

Settings are loaded from the configuration file; every field has a default
matching the stock Kiro distribution, so the file is optional.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &installer.Options{
				ConfigPath: configPath,
				CheckOnly:  checkOnly,
			}

			return installer.Run(ctx, options)
		},
	}
)

// Execute runs the kiro-get CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVar(&checkOnly, "check", false, "check for updates without installing")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "logging verbosity (debug, info, warn, error, fatal)")
}
