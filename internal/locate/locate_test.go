package locate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates a file with the given mode, creating parents as needed.
func writeFile(t *testing.T, path string, mode os.FileMode) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), mode))
}

// TestFind_PrefersConventionalOrder returns the first conventional location that exists.
func TestFind_PrefersConventionalOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "kiro"), 0o755)
	writeFile(t, filepath.Join(root, "Kiro", "kiro"), 0o755)

	found, err := Find(root, "kiro")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "kiro"), found)

	// Without the top-level file, the next candidates win in order.
	require.NoError(t, os.Remove(filepath.Join(root, "kiro")))
	writeFile(t, filepath.Join(root, "bin", "kiro"), 0o755)

	found, err = Find(root, "kiro")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "bin", "kiro"), found)
}

// TestFind_ConventionalMatchDoesNotRequireExecBit accepts plain files at
// conventional locations; the installer fixes permissions afterwards.
func TestFind_ConventionalMatchDoesNotRequireExecBit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Kiro", "kiro"), 0o644)

	found, err := Find(root, "kiro")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "Kiro", "kiro"), found)
}

// TestFind_WalkRequiresExecBit verifies the recursive fallback only accepts executables.
func TestFind_WalkRequiresExecBit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "opt", "nested", "kiro"), 0o644)

	_, err := Find(root, "kiro")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.Chmod(filepath.Join(root, "opt", "nested", "kiro"), 0o755))

	found, err := Find(root, "kiro")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "opt", "nested", "kiro"), found)
}

// TestFind_IgnoresDirectoriesNamedLikeBinary skips directories during the walk.
func TestFind_IgnoresDirectoriesNamedLikeBinary(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "kiro"), 0o755))
	writeFile(t, filepath.Join(root, "b", "deep", "kiro"), 0o755)

	found, err := Find(root, "kiro")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "b", "deep", "kiro"), found)
}

// TestFind_NothingMatches yields ErrNotFound on an unrelated tree.
func TestFind_NothingMatches(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "other", "tool"), 0o755)

	_, err := Find(root, "kiro")
	require.ErrorIs(t, err, ErrNotFound)
}
