package archive

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestArchive produces a small tar.gz with a directory, an executable,
// a nested resource and a symlink.
func writeTestArchive(t *testing.T, path string) {
	t.Helper()

	archiveFile, err := os.Create(path)
	require.NoError(t, err)

	gzipWriter := gzip.NewWriter(archiveFile)
	tarWriter := tar.NewWriter(gzipWriter)

	require.NoError(t, tarWriter.WriteHeader(&tar.Header{
		Name:     "Kiro/",
		Typeflag: tar.TypeDir,
		Mode:     0o755,
	}))

	binary := []byte("#!/bin/sh\necho kiro")
	require.NoError(t, tarWriter.WriteHeader(&tar.Header{
		Name: "Kiro/kiro",
		Mode: 0o755,
		Size: int64(len(binary)),
	}))

	_, err = tarWriter.Write(binary)
	require.NoError(t, err)

	resource := []byte("{\"name\":\"kiro\"}")
	require.NoError(t, tarWriter.WriteHeader(&tar.Header{
		Name: "Kiro/resources/app/package.json",
		Mode: 0o644,
		Size: int64(len(resource)),
	}))

	_, err = tarWriter.Write(resource)
	require.NoError(t, err)

	require.NoError(t, tarWriter.WriteHeader(&tar.Header{
		Name:     "Kiro/latest",
		Typeflag: tar.TypeSymlink,
		Linkname: "kiro",
		Mode:     0o777,
	}))

	require.NoError(t, tarWriter.Close())
	require.NoError(t, gzipWriter.Close())
	require.NoError(t, archiveFile.Close())
}

// TestExtractTarGz unpacks directories, files and symlinks with modes preserved.
func TestExtractTarGz(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "kiro.tar.gz")
	writeTestArchive(t, archivePath)

	target := filepath.Join(dir, "install")
	require.NoError(t, ExtractTarGz(archivePath, target))

	binary, err := os.Stat(filepath.Join(target, "Kiro", "kiro"))
	require.NoError(t, err)
	require.NotZero(t, binary.Mode()&0o111)

	contents, err := os.ReadFile(filepath.Join(target, "Kiro", "kiro"))
	require.NoError(t, err)
	require.Equal(t, "#!/bin/sh\necho kiro", string(contents))

	_, err = os.Stat(filepath.Join(target, "Kiro", "resources", "app", "package.json"))
	require.NoError(t, err)

	linkTarget, err := os.Readlink(filepath.Join(target, "Kiro", "latest"))
	require.NoError(t, err)
	require.Equal(t, "kiro", linkTarget)
}

// TestExtractTarGz_Reextract verifies that unpacking over a previous install succeeds.
func TestExtractTarGz_Reextract(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "kiro.tar.gz")
	writeTestArchive(t, archivePath)

	target := filepath.Join(dir, "install")
	require.NoError(t, ExtractTarGz(archivePath, target))
	require.NoError(t, ExtractTarGz(archivePath, target))

	contents, err := os.ReadFile(filepath.Join(target, "Kiro", "kiro"))
	require.NoError(t, err)
	require.Equal(t, "#!/bin/sh\necho kiro", string(contents))
}

// TestExtractTarGz_NotAnArchive rejects files that are not gzip streams.
func TestExtractTarGz_NotAnArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archivePath := filepath.Join(dir, "kiro.tar.gz")
	require.NoError(t, os.WriteFile(archivePath, []byte("not an archive"), 0o644))

	err := ExtractTarGz(archivePath, filepath.Join(dir, "install"))
	require.Error(t, err)
}

// TestExtractTarGz_MissingArchive rejects paths that do not exist.
func TestExtractTarGz_MissingArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	err := ExtractTarGz(filepath.Join(dir, "absent.tar.gz"), filepath.Join(dir, "install"))
	require.Error(t, err)
}
