package install

import (
	"context"

	"github.com/oshokin/kiro-get/internal/config"
	"github.com/oshokin/kiro-get/internal/logger"
)

// DirectIntegrator points the system symlink straight at the application
// binary. The IDE then stays attached to the invoking terminal, which is why
// the launcher variant is the default.
type DirectIntegrator struct {
	cfg *config.Config
	run commandRunner
}

// NewDirectIntegrator creates the direct-link integrator.
func NewDirectIntegrator(cfg *config.Config) *DirectIntegrator {
	return &DirectIntegrator{
		cfg: cfg,
		run: runCommand,
	}
}

// Name implements Integrator.
func (i *DirectIntegrator) Name() string {
	return config.IntegrationDirect
}

// Install implements Integrator.
func (i *DirectIntegrator) Install(ctx context.Context, target Target) error {
	if err := replaceSymlink(ctx, i.run, i.cfg.SymlinkPath, target.BinaryPath); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Created command symlink",
		"link", i.cfg.SymlinkPath, "target", target.BinaryPath)

	return nil
}
