package installer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/kiro-get/internal/archive"
	"github.com/oshokin/kiro-get/internal/config"
	"github.com/oshokin/kiro-get/internal/download"
	"github.com/oshokin/kiro-get/internal/install"
	"github.com/oshokin/kiro-get/internal/locate"
	"github.com/oshokin/kiro-get/internal/logger"
	"github.com/oshokin/kiro-get/internal/release"
	"github.com/oshokin/kiro-get/internal/repository/marker"
)

const (
	// archiveNameTemplate derives the local archive filename from a version.
	archiveNameTemplate = "kiro-ide-%s-stable-linux-x64.tar.gz"

	// binaryFileMode is enforced on the located binary before integration.
	binaryFileMode os.FileMode = 0o755

	// bytesPerMegabyte converts byte counters for the summary.
	bytesPerMegabyte = 1024 * 1024
)

// Installer coordinates a single install or check execution.
type Installer struct {
	cfg        *config.Config
	releases   *release.Client
	store      marker.Repository
	downloader *download.Downloader
	integrator install.Integrator
}

// Option overrides a collaborator, primarily for tests.
type Option func(*Installer)

// WithReleaseClient replaces the metadata client.
func WithReleaseClient(client *release.Client) Option {
	return func(s *Installer) {
		if client != nil {
			s.releases = client
		}
	}
}

// WithStore replaces the installed-version store.
func WithStore(store marker.Repository) Option {
	return func(s *Installer) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDownloader replaces the archive downloader.
func WithDownloader(downloader *download.Downloader) Option {
	return func(s *Installer) {
		if downloader != nil {
			s.downloader = downloader
		}
	}
}

// WithIntegrator replaces the system integrator.
func WithIntegrator(integrator install.Integrator) Option {
	return func(s *Installer) {
		if integrator != nil {
			s.integrator = integrator
		}
	}
}

// New assembles an installer from validated settings.
func New(cfg *config.Config, opts ...Option) (*Installer, error) {
	releases, err := release.NewClient(cfg.MetadataURL, release.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return nil, err
	}

	service := &Installer{
		cfg:        cfg,
		releases:   releases,
		store:      marker.NewFileRepository(cfg.VersionFilePath()),
		downloader: download.NewDownloader(download.WithProgress(download.NewTerminalProgress())),
		integrator: install.ForConfig(cfg),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Install runs the full workflow:
// 1) Resolve the latest release and its archive.
// 2) Compare against the recorded version; stop when equal.
// 3) Download and extract the archive into the install directory.
// 4) Locate the binary and wire in the desktop integration.
// 5) Record the version, drop the archive, report a summary.
func (s *Installer) Install(ctx context.Context) error {
	latest, archiveURL, err := s.resolveLatest(ctx)
	if err != nil {
		return err
	}

	installed, err := s.store.Read(ctx)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Latest version", "version", latest)

	if installed != "" {
		logger.InfoKV(ctx, "Installed version", "version", installed)
	}

	if installed == latest {
		logger.Infof(ctx, "You already have the latest version (%s)", latest)
		return nil
	}

	archivePath := filepath.Join(s.cfg.InstallDir, fmt.Sprintf(archiveNameTemplate, latest))

	if err = s.downloadArchive(ctx, archiveURL, archivePath); err != nil {
		return err
	}

	if err = s.extractArchive(ctx, archivePath); err != nil {
		return err
	}

	binaryPath := s.locateAndIntegrate(ctx, latest)

	if err = s.store.Write(ctx, latest); err != nil {
		return fmt.Errorf("record installed version: %w", err)
	}

	s.removeArchive(ctx, archivePath)
	s.logSummary(ctx, latest, binaryPath)

	return nil
}

// resolveLatest fetches the metadata and picks the artifact to install.
func (s *Installer) resolveLatest(ctx context.Context) (version, archiveURL string, err error) {
	logger.InfoKV(ctx, "Fetching release metadata", "url", s.cfg.MetadataURL)

	metadata, err := s.releases.Fetch(ctx)
	if err != nil {
		return "", "", err
	}

	return release.SelectArchive(metadata)
}

// downloadArchive streams the artifact into the install directory.
func (s *Installer) downloadArchive(ctx context.Context, archiveURL, archivePath string) error {
	logger.InfoKV(ctx, "Downloading archive", "url", archiveURL, "destination", archivePath)

	if err := s.downloader.Download(ctx, archiveURL, archivePath); err != nil {
		return err
	}

	logger.Info(ctx, "Download complete")

	return nil
}

// extractArchive unpacks the artifact over the install directory.
func (s *Installer) extractArchive(ctx context.Context, archivePath string) error {
	logger.InfoKV(ctx, "Extracting archive", "path", archivePath)

	if err := archive.ExtractTarGz(archivePath, s.cfg.InstallDir); err != nil {
		return err
	}

	logger.Info(ctx, "Extraction complete")

	return nil
}

// locateAndIntegrate finds the binary and wires in the system integration.
// Both steps degrade to warnings: a valid tree on disk counts as installed,
// so the caller records the version either way.
func (s *Installer) locateAndIntegrate(ctx context.Context, version string) string {
	logger.Info(ctx, "Locating application binary")

	binaryPath, err := locate.Find(s.cfg.InstallDir, s.cfg.BinaryName)
	if err != nil {
		logger.Warnf(ctx, "Could not find %s binary in %s, skipping desktop integration",
			s.cfg.BinaryName, s.cfg.InstallDir)

		return ""
	}

	logger.InfoKV(ctx, "Found binary", "path", binaryPath)

	if err = os.Chmod(binaryPath, binaryFileMode); err != nil {
		logger.Warnf(ctx, "Could not mark binary executable: %v", err)
	}

	s.warnIfRunning(ctx)

	logger.InfoKV(ctx, "Setting up desktop integration",
		"variant", s.integrator.Name(), "version", version)

	target := install.Target{
		Version:    version,
		InstallDir: s.cfg.InstallDir,
		BinaryPath: binaryPath,
	}

	if err = s.integrator.Install(ctx, target); err != nil {
		logger.Warnf(ctx, "Desktop integration incomplete: %v", err)
	}

	return binaryPath
}

// warnIfRunning reports running IDE processes; open windows keep the old
// build until restarted.
func (s *Installer) warnIfRunning(ctx context.Context) {
	processes, err := ps.Processes()
	if err != nil {
		logger.Debugf(ctx, "Process scan skipped: %v", err)
		return
	}

	running := 0

	for _, process := range processes {
		if process.Executable() == s.cfg.BinaryName {
			running++
		}
	}

	if running > 0 {
		logger.Warnf(ctx, "%s is running (%d processes), restart it to pick up the new version",
			s.cfg.BinaryName, running)
	}
}

// removeArchive drops the downloaded artifact after a successful install.
func (s *Installer) removeArchive(ctx context.Context, archivePath string) {
	if err := os.Remove(archivePath); err != nil {
		logger.Warnf(ctx, "Could not remove archive %s: %v", archivePath, err)
		return
	}

	logger.Info(ctx, "Archive removed")
}

// logSummary reports what landed on disk.
func (s *Installer) logSummary(ctx context.Context, version, binaryPath string) {
	totalMB := float64(treeSize(s.cfg.InstallDir)) / bytesPerMegabyte

	logger.Infof(ctx, "Successfully installed Kiro v%s", version)
	logger.InfoKV(ctx, "Install summary",
		"location", s.cfg.InstallDir,
		"binary", binaryPath,
		"total_size_mb", fmt.Sprintf("%.2f", totalMB))
}

// treeSize sums regular file sizes under root.
func treeSize(root string) int64 {
	var total int64

	_ = filepath.WalkDir(root, func(_ string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		if info, infoErr := entry.Info(); infoErr == nil {
			total += info.Size()
		}

		return nil
	})

	return total
}
