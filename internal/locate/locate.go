package locate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no matching executable exists under the root.
var ErrNotFound = errors.New("application binary not found")

// executableBits covers user, group and other execute permissions.
const executableBits = 0o111

// Find returns the path of the application binary under root.
// Conventional locations are probed first and any regular file there wins,
// executable or not. Otherwise the tree is walked and the first regular
// file named exactly name that carries an execute bit is returned.
func Find(root, name string) (string, error) {
	for _, candidate := range conventionalPaths(root, name) {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}

	found, err := walkForExecutable(root, name)
	if err != nil {
		return "", err
	}

	if found == "" {
		return "", ErrNotFound
	}

	return found, nil
}

// conventionalPaths lists the locations distributions usually place the binary.
func conventionalPaths(root, name string) []string {
	return []string{
		filepath.Join(root, name),
		filepath.Join(root, "bin", name),
		filepath.Join(root, capitalize(name), name),
	}
}

// walkForExecutable scans the tree for an executable regular file named name.
func walkForExecutable(root, name string) (string, error) {
	var found string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !entry.Type().IsRegular() || entry.Name() != name {
			return nil
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			return infoErr
		}

		if info.Mode().Perm()&executableBits == 0 {
			return nil
		}

		found = path

		return fs.SkipAll
	})
	if err != nil {
		return "", fmt.Errorf("walk %s: %w", root, err)
	}

	return found, nil
}

// capitalize upper-cases the first character, mirroring distribution folder naming.
func capitalize(name string) string {
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}
