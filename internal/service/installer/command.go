package installer

import (
	"context"

	"github.com/oshokin/kiro-get/internal/config"
	"github.com/oshokin/kiro-get/internal/logger"
)

// Options are inputs accepted by the installer entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// CheckOnly reports the available version without installing anything.
	CheckOnly bool
}

// Run executes the installer lifecycle and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "kiro-get")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	service, err := New(cfg)
	if err != nil {
		return err
	}

	if opts.CheckOnly {
		if err = service.Check(ctx); err != nil {
			logger.ErrorKV(ctx, "Version check failed", "error", err)
			return err
		}

		return nil
	}

	if err = service.Install(ctx); err != nil {
		logger.ErrorKV(ctx, "Install failed", "error", err)
		return err
	}

	return nil
}
