package marker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Repository defines persistence operations for the installed-version marker.
type Repository interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, version string) error
}

// FileRepository persists the installed version as a small text file.
type FileRepository struct {
	// path is the filesystem location of the marker file.
	path string
}

// markerFilePermissions keeps the marker world-readable; it is not sensitive.
const markerFilePermissions = 0o644

// NewFileRepository creates a repository that reads/writes the marker at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Read returns the recorded version, or an empty string when no build has
// been recorded yet. A missing marker file is not an error.
func (r *FileRepository) Read(_ context.Context) (string, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}

		return "", fmt.Errorf("read version marker: %w", err)
	}

	return strings.TrimSpace(string(contents)), nil
}

// Write records the version, replacing any previous marker.
func (r *FileRepository) Write(_ context.Context, version string) error {
	if err := os.WriteFile(r.path, []byte(version+"\n"), markerFilePermissions); err != nil {
		return fmt.Errorf("write version marker: %w", err)
	}

	return nil
}
