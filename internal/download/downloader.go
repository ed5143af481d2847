package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// errBadHTTPStatus is returned when the artifact host answers with a non-OK status.
var errBadHTTPStatus = errors.New("unexpected http status")

// defaultChunkSize is the copy buffer size; progress is reported per chunk.
const defaultChunkSize = 32 * 1024

// Downloader streams remote artifacts to disk.
type Downloader struct {
	// httpClient performs the download requests. It carries no timeout:
	// archives are large and the request context cancels stalled transfers.
	httpClient *http.Client
	// progress observes every transfer made by the downloader.
	progress Progress
}

// Option configures downloader behaviour.
type Option func(*Downloader)

// WithHTTPClient replaces the HTTP client used for downloads.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(d *Downloader) {
		if httpClient != nil {
			d.httpClient = httpClient
		}
	}
}

// WithProgress sets the observer notified as transfers advance.
func WithProgress(progress Progress) Option {
	return func(d *Downloader) {
		if progress != nil {
			d.progress = progress
		}
	}
}

// NewDownloader creates a downloader reporting to the provided observer.
func NewDownloader(opts ...Option) *Downloader {
	downloader := &Downloader{
		httpClient: &http.Client{},
		progress:   NopProgress{},
	}

	for _, opt := range opts {
		opt(downloader)
	}

	return downloader
}

// Download streams the resource at url into destination, reporting progress
// per chunk. There is no retry and no resume; a failed transfer leaves the
// partial file on disk.
func (d *Downloader) Download(ctx context.Context, url, destination string) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}

	response, err := d.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("%s, %s: %w", url, response.Status, errBadHTTPStatus)
	}

	if err = os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	outputFile, err := os.Create(filepath.Clean(destination))
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}

	total := response.ContentLength

	d.progress.Start(total)
	_, err = d.copyChunks(outputFile, response.Body, total)
	d.progress.Finish()

	if closeErr := outputFile.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("close destination file: %w", closeErr)
	}

	return err
}

// copyChunks copies src to dst in fixed-size chunks, reporting cumulative
// progress after each written chunk.
func (d *Downloader) copyChunks(dst io.Writer, src io.Reader, total int64) (int64, error) {
	var transferred int64

	buffer := make([]byte, defaultChunkSize)

	for {
		read, readErr := src.Read(buffer)
		if read > 0 {
			written, writeErr := dst.Write(buffer[:read])
			transferred += int64(written)

			if writeErr != nil {
				return transferred, fmt.Errorf("write archive chunk: %w", writeErr)
			}

			d.progress.Update(transferred, total)
		}

		if errors.Is(readErr, io.EOF) {
			return transferred, nil
		}

		if readErr != nil {
			return transferred, fmt.Errorf("read archive chunk: %w", readErr)
		}
	}
}
