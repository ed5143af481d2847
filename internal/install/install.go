package install

import (
	"context"

	"github.com/oshokin/kiro-get/internal/config"
)

// Target describes an installed build handed to an integrator.
type Target struct {
	// Version is the build version being wired in.
	Version string
	// InstallDir is the root of the extracted tree.
	InstallDir string
	// BinaryPath is the absolute path of the located application executable.
	BinaryPath string
}

// Integrator wires an installed build into the system so the user can start it.
type Integrator interface {
	// Name identifies the variant in logs and settings.
	Name() string
	// Install performs the integration. Failures come back as a single,
	// possibly aggregated error; callers treat them as non-fatal.
	Install(ctx context.Context, target Target) error
}

// ForConfig returns the integrator selected by the settings.
//
//nolint:ireturn,nolintlint // The variant is selected at runtime.
func ForConfig(cfg *config.Config) Integrator {
	if cfg.Integration == config.IntegrationDirect {
		return NewDirectIntegrator(cfg)
	}

	return NewLauncherIntegrator(cfg)
}
