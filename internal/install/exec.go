package install

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// commandRunner executes an external command and waits for it to finish.
// Integrators hold one so tests can record invocations instead of spawning
// processes.
type commandRunner func(ctx context.Context, name string, args ...string) error

// runCommand is the default runner backed by os/exec. Command output is
// folded into the error to keep sudo and desktop tooling diagnostics visible.
func runCommand(ctx context.Context, name string, args ...string) error {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if trimmed := strings.TrimSpace(string(output)); trimmed != "" {
			return fmt.Errorf("%s: %w: %s", name, err, trimmed)
		}

		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}
