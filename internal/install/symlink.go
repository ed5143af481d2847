package install

import (
	"context"
	"fmt"
	"os"
)

// replaceSymlink points linkPath at targetPath, removing any previous link
// first. System paths are owned by root, so both steps go through sudo. The
// returned error carries the manual command for when privilege escalation is
// unavailable.
func replaceSymlink(ctx context.Context, run commandRunner, linkPath, targetPath string) error {
	if _, err := os.Lstat(linkPath); err == nil {
		if err = run(ctx, "sudo", "rm", "-f", linkPath); err != nil {
			return remediationError(err, targetPath, linkPath)
		}
	}

	if err := run(ctx, "sudo", "ln", "-s", targetPath, linkPath); err != nil {
		return remediationError(err, targetPath, linkPath)
	}

	return nil
}

// remediationError wraps a symlink failure with the command to run by hand.
func remediationError(err error, targetPath, linkPath string) error {
	return fmt.Errorf("create command symlink (run manually: sudo ln -s %s %s): %w", targetPath, linkPath, err)
}
