package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// defaultDirectoryMode is used for parent directories the archive does not
// list explicitly.
const defaultDirectoryMode = 0o755

// ExtractTarGz unpacks the archive at archivePath into targetDir.
// Existing files are overwritten and existing symlinks replaced, so
// re-extracting over a previous install is fine.
func ExtractTarGz(archivePath, targetDir string) error {
	archiveFile, err := os.Open(filepath.Clean(archivePath))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	defer func() {
		_ = archiveFile.Close()
	}()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}

	defer func() {
		_ = gzipReader.Close()
	}()

	tarReader := tar.NewReader(gzipReader)

	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read archive entry: %w", err)
		}

		if err = writeEntry(tarReader, header, targetDir); err != nil {
			return err
		}
	}
}

// writeEntry materializes a single archive entry under targetDir.
func writeEntry(tarReader *tar.Reader, header *tar.Header, targetDir string) error {
	entryPath := filepath.Join(targetDir, header.Name)

	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(entryPath, header.FileInfo().Mode().Perm()); err != nil {
			return fmt.Errorf("create directory %s: %w", header.Name, err)
		}
	case tar.TypeReg:
		return writeFile(tarReader, header, entryPath)
	case tar.TypeSymlink:
		return writeSymlink(header, entryPath)
	default:
		// Hard links, devices and the like do not appear in release archives.
	}

	return nil
}

// writeFile writes a regular file entry, creating parents as needed.
func writeFile(tarReader *tar.Reader, header *tar.Header, entryPath string) error {
	if err := os.MkdirAll(filepath.Dir(entryPath), defaultDirectoryMode); err != nil {
		return fmt.Errorf("create parent directory for %s: %w", header.Name, err)
	}

	outputFile, err := os.OpenFile(
		filepath.Clean(entryPath),
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		header.FileInfo().Mode().Perm(),
	)
	if err != nil {
		return fmt.Errorf("create file %s: %w", header.Name, err)
	}

	_, err = io.Copy(outputFile, tarReader)

	if closeErr := outputFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("write file %s: %w", header.Name, err)
	}

	return nil
}

// writeSymlink replaces any previous link so repeated installs stay idempotent.
func writeSymlink(header *tar.Header, entryPath string) error {
	if err := os.MkdirAll(filepath.Dir(entryPath), defaultDirectoryMode); err != nil {
		return fmt.Errorf("create parent directory for %s: %w", header.Name, err)
	}

	if err := os.Remove(entryPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("replace symlink %s: %w", header.Name, err)
	}

	if err := os.Symlink(header.Linkname, entryPath); err != nil {
		return fmt.Errorf("create symlink %s: %w", header.Name, err)
	}

	return nil
}
