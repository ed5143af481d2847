package release

import (
	"errors"
	"strings"
)

// ArchiveSuffix identifies downloadable build archives among release artifacts.
const ArchiveSuffix = ".tar.gz"

var (
	// ErrNoRelease is returned when the metadata names no current release.
	ErrNoRelease = errors.New("no current release in metadata")
	// ErrNoArchive is returned when no release links an archive artifact.
	ErrNoArchive = errors.New("no archive artifact in metadata")
)

// SelectArchive picks the version and archive URL to install from the
// metadata document. Releases are scanned in document order and the first
// archive artifact wins; the version is always CurrentRelease.
func SelectArchive(metadata *Metadata) (version, archiveURL string, err error) {
	if metadata == nil || metadata.CurrentRelease == "" {
		return "", "", ErrNoRelease
	}

	for _, published := range metadata.Releases {
		if strings.HasSuffix(published.UpdateTo.URL, ArchiveSuffix) {
			return metadata.CurrentRelease, published.UpdateTo.URL, nil
		}
	}

	return "", "", ErrNoArchive
}
