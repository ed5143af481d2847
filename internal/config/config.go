package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds installer parameters for the kiro-get binary.
type Config struct {
	// MetadataURL is the endpoint publishing release metadata as JSON.
	MetadataURL string `yaml:"metadata_url"`
	// InstallDir is the directory the archive is downloaded to and extracted into.
	InstallDir string `yaml:"install_dir"`
	// BinaryName is the file name of the application executable inside the
	// extracted tree.
	BinaryName string `yaml:"binary_name"`
	// SymlinkPath is the system-wide command symlink maintained by the installer.
	SymlinkPath string `yaml:"symlink_path"`
	// ApplicationsDir is the directory desktop entries are installed into.
	ApplicationsDir string `yaml:"applications_dir"`
	// IconPath is the desktop entry icon, relative to InstallDir unless absolute.
	IconPath string `yaml:"icon_path"`
	// VersionFile is the installed-version marker, relative to InstallDir
	// unless absolute.
	VersionFile string `yaml:"version_file"`
	// Integration selects how the installed build is wired into the system,
	// either IntegrationLauncher or IntegrationDirect.
	Integration string `yaml:"integration"`
	// Timeout is the duration for metadata requests. Archive downloads are
	// not bounded by it.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for installer settings.
	DefaultConfigFilename = "kiro-get-settings.yaml"

	// DefaultMetadataURL is the stable Linux x64 release metadata endpoint.
	DefaultMetadataURL = "https://prod.download.desktop.kiro.dev/stable/metadata-linux-x64-stable.json"

	// DefaultBinaryName is the executable name looked up in the extracted tree.
	DefaultBinaryName = "kiro"

	// DefaultSymlinkPath is the system-wide command symlink location.
	DefaultSymlinkPath = "/usr/local/bin/kiro"

	// DefaultIconFile is the icon shipped inside the extracted tree,
	// relative to the install directory.
	DefaultIconFile = "Kiro/resources/app/extensions/theme-seti/icons/seti-circular-128x128.png"

	// DefaultVersionFilename is the installed-version marker file,
	// relative to the install directory.
	DefaultVersionFilename = ".kiro_version"

	// IntegrationLauncher wires the system through a generated launcher script
	// plus a desktop entry.
	IntegrationLauncher = "launcher"

	// IntegrationDirect points the system symlink straight at the application
	// binary.
	IntegrationDirect = "direct"

	// DefaultTimeout is the default duration for metadata requests.
	DefaultTimeout = 30 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownIntegration is returned when the integration variant is not recognized.
	errUnknownIntegration = errors.New("unknown integration variant")
)

// Load reads configuration from the provided path and validates it.
// A missing settings file is not an error: every field has a default
// matching the stock Kiro distribution.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	var cfg Config

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read settings: %w", err)
	default:
		if err = yaml.Unmarshal(contents, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for empty fields and checks formats.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.MetadataURL == "" {
		settings.MetadataURL = DefaultMetadataURL
	}

	if _, err := url.ParseRequestURI(settings.MetadataURL); err != nil {
		return fmt.Errorf("invalid metadata URL: %w", err)
	}

	if settings.InstallDir == "" {
		executable, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolve install directory: %w", err)
		}

		settings.InstallDir = filepath.Dir(executable)
	}

	if settings.BinaryName == "" {
		settings.BinaryName = DefaultBinaryName
	}

	if settings.SymlinkPath == "" {
		settings.SymlinkPath = DefaultSymlinkPath
	}

	if settings.ApplicationsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve applications directory: %w", err)
		}

		settings.ApplicationsDir = filepath.Join(home, ".local", "share", "applications")
	}

	if settings.IconPath == "" {
		settings.IconPath = DefaultIconFile
	}

	if settings.VersionFile == "" {
		settings.VersionFile = DefaultVersionFilename
	}

	switch settings.Integration {
	case "":
		settings.Integration = IntegrationLauncher
	case IntegrationLauncher, IntegrationDirect:
	default:
		return fmt.Errorf("%w: %q", errUnknownIntegration, settings.Integration)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	return nil
}

// VersionFilePath returns the absolute location of the installed-version marker.
func (c *Config) VersionFilePath() string {
	if filepath.IsAbs(c.VersionFile) {
		return c.VersionFile
	}

	return filepath.Join(c.InstallDir, c.VersionFile)
}

// IconFilePath returns the absolute location of the desktop entry icon.
func (c *Config) IconFilePath() string {
	if filepath.IsAbs(c.IconPath) {
		return c.IconPath
	}

	return filepath.Join(c.InstallDir, c.IconPath)
}
