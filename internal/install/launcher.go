package install

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"
	"github.com/hashicorp/go-multierror"

	"github.com/oshokin/kiro-get/internal/config"
	"github.com/oshokin/kiro-get/internal/logger"
)

const (
	// LauncherFilename is the wrapper script generated in the install directory.
	LauncherFilename = "kiro-launcher.sh"

	// launcherFileMode makes the wrapper executable for everyone.
	launcherFileMode os.FileMode = 0o755
)

// LauncherIntegrator ships the default integration: a launcher wrapper
// script, desktop entries and a system symlink pointing at the wrapper.
type LauncherIntegrator struct {
	cfg *config.Config
	run commandRunner
}

// NewLauncherIntegrator creates the launcher-wrapper integrator.
func NewLauncherIntegrator(cfg *config.Config) *LauncherIntegrator {
	return &LauncherIntegrator{
		cfg: cfg,
		run: runCommand,
	}
}

// Name implements Integrator.
func (i *LauncherIntegrator) Name() string {
	return config.IntegrationLauncher
}

// Install implements Integrator. The wrapper script is required by every
// other step, so its failure aborts the integration; desktop entries and the
// symlink are independent and their failures are aggregated so one does not
// hide the other.
func (i *LauncherIntegrator) Install(ctx context.Context, target Target) error {
	launcherPath, err := i.writeLauncher(target)
	if err != nil {
		return fmt.Errorf("create launcher wrapper: %w", err)
	}

	logger.InfoKV(ctx, "Created launcher wrapper", "path", launcherPath)

	var errs *multierror.Error

	if err = i.writeDesktopEntries(ctx, launcherPath); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("create desktop entry: %w", err))
	}

	if err = replaceSymlink(ctx, i.run, i.cfg.SymlinkPath, launcherPath); err != nil {
		errs = multierror.Append(errs, err)
	} else {
		logger.InfoKV(ctx, "Created command symlink",
			"link", i.cfg.SymlinkPath, "target", launcherPath)
	}

	return errs.ErrorOrNil()
}

// writeLauncher renders the wrapper script and applies it atomically with
// the executable mode set.
func (i *LauncherIntegrator) writeLauncher(target Target) (string, error) {
	binaryRelPath, err := filepath.Rel(target.InstallDir, target.BinaryPath)
	if err != nil {
		return "", fmt.Errorf("relativize binary path: %w", err)
	}

	launcherPath := filepath.Join(target.InstallDir, LauncherFilename)

	// goupdate replaces an existing target, so seed an empty one on first install.
	if _, err = os.Stat(launcherPath); err != nil && os.IsNotExist(err) {
		if _, err = os.Create(launcherPath); err != nil {
			return "", err
		}
	}

	options := goupdate.Options{
		TargetPath: launcherPath,
		TargetMode: launcherFileMode,
	}

	content := launcherScript(binaryRelPath)
	if err = goupdate.Apply(bytes.NewReader([]byte(content)), options); err != nil {
		return "", err
	}

	oldPath := launcherPath + ".old"
	if _, err = os.Stat(oldPath); err == nil {
		_ = os.Remove(oldPath)
	}

	return launcherPath, nil
}

// launcherScript renders the wrapper starting the binary detached from the
// terminal. binaryRelPath is relative to the script's own directory so the
// whole tree stays relocatable.
func launcherScript(binaryRelPath string) string {
	return fmt.Sprintf(`#!/bin/bash
# Kiro launcher wrapper - runs Kiro detached from the terminal

# Resolve the real path of this script (follows symlinks)
SCRIPT_PATH="$(readlink -f "${BASH_SOURCE[0]}")"
SCRIPT_DIR="$(dirname "$SCRIPT_PATH")"
KIRO_BINARY="$SCRIPT_DIR/%s"

if [ ! -f "$KIRO_BINARY" ]; then
    echo "Error: Kiro binary not found at $KIRO_BINARY"
    echo "Run kiro-get first to install Kiro"
    exit 1
fi

# Shell integration queries must answer on stdout, so no detaching here
if [[ "$*" == *"--locate-shell-integration-path"* ]]; then
    exec "$KIRO_BINARY" "$@"
fi

# Launch in the background, detached from the terminal
nohup "$KIRO_BINARY" "$@" > /dev/null 2>&1 &

# Survive the terminal closing
disown

exit 0
`, binaryRelPath)
}
