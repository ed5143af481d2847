package release

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSelectArchive picks the first archive artifact and the current version.
func TestSelectArchive(t *testing.T) {
	t.Parallel()

	metadata := &Metadata{
		CurrentRelease: "1.2.3",
		Releases: []Release{
			{UpdateTo: UpdateTo{URL: "https://cdn.local/kiro-1.2.3.AppImage"}},
			{UpdateTo: UpdateTo{URL: "https://cdn.local/kiro-1.2.3.tar.gz"}},
			{UpdateTo: UpdateTo{URL: "https://cdn.local/kiro-1.2.2.tar.gz"}},
		},
	}

	version, archiveURL, err := SelectArchive(metadata)
	require.NoError(t, err)
	require.Equal(t, "1.2.3", version)
	require.Equal(t, "https://cdn.local/kiro-1.2.3.tar.gz", archiveURL)
}

// TestSelectArchive_NoCurrentRelease fails before any artifact is considered.
func TestSelectArchive_NoCurrentRelease(t *testing.T) {
	t.Parallel()

	_, _, err := SelectArchive(nil)
	require.ErrorIs(t, err, ErrNoRelease)

	metadata := &Metadata{
		Releases: []Release{
			{UpdateTo: UpdateTo{URL: "https://cdn.local/kiro.tar.gz"}},
		},
	}

	_, _, err = SelectArchive(metadata)
	require.ErrorIs(t, err, ErrNoRelease)
}

// TestSelectArchive_NoArchive fails when no release links a tar.gz artifact.
func TestSelectArchive_NoArchive(t *testing.T) {
	t.Parallel()

	metadata := &Metadata{
		CurrentRelease: "1.2.3",
		Releases: []Release{
			{UpdateTo: UpdateTo{URL: "https://cdn.local/kiro-1.2.3.AppImage"}},
			{UpdateTo: UpdateTo{URL: "https://cdn.local/kiro-1.2.3.zip"}},
		},
	}

	_, _, err := SelectArchive(metadata)
	require.ErrorIs(t, err, ErrNoArchive)
}
