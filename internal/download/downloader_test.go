package download

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingProgress captures observer notifications for assertions.
type recordingProgress struct {
	started    bool
	startTotal int64
	updates    []int64
	finished   bool
}

func (r *recordingProgress) Start(total int64) {
	r.started = true
	r.startTotal = total
}

func (r *recordingProgress) Update(transferred, _ int64) {
	r.updates = append(r.updates, transferred)
}

func (r *recordingProgress) Finish() {
	r.finished = true
}

// TestDownloader_StreamsToFile downloads a multi-chunk payload and reports progress.
func TestDownloader_StreamsToFile(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("kiro-archive-bytes-"), 8*1024)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write(payload)
	}))
	defer ts.Close()

	progress := new(recordingProgress)
	destination := filepath.Join(t.TempDir(), "kiro.tar.gz")

	err := NewDownloader(WithProgress(progress)).Download(context.Background(), ts.URL, destination)
	require.NoError(t, err)

	written, err := os.ReadFile(destination)
	require.NoError(t, err)
	require.Equal(t, payload, written)

	require.True(t, progress.started)
	require.Equal(t, int64(len(payload)), progress.startTotal)
	require.True(t, progress.finished)
	require.NotEmpty(t, progress.updates)
	require.Equal(t, int64(len(payload)), progress.updates[len(progress.updates)-1])

	for i := 1; i < len(progress.updates); i++ {
		require.Greater(t, progress.updates[i], progress.updates[i-1])
	}
}

// TestDownloader_BadStatus verifies that a non-OK response fails before any file is created.
func TestDownloader_BadStatus(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	destination := filepath.Join(t.TempDir(), "kiro.tar.gz")

	err := NewDownloader().Download(context.Background(), ts.URL, destination)
	require.ErrorIs(t, err, errBadHTTPStatus)

	_, err = os.Stat(destination)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestDownloader_TruncatedBody verifies that an interrupted transfer fails
// and leaves the partial file on disk.
func TestDownloader_TruncatedBody(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "4096")
		_, _ = w.Write(bytes.Repeat([]byte("x"), 1024))
	}))
	defer ts.Close()

	destination := filepath.Join(t.TempDir(), "kiro.tar.gz")

	err := NewDownloader().Download(context.Background(), ts.URL, destination)
	require.Error(t, err)

	partial, statErr := os.Stat(destination)
	require.NoError(t, statErr)
	require.Equal(t, int64(1024), partial.Size())
}
