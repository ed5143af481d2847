package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/kiro-get/internal/logger"
)

const (
	// DesktopFilename is the freedesktop entry installed for menu launchers.
	DesktopFilename = "kiro.desktop"

	// applicationsDirMode is used when the user applications directory is missing.
	applicationsDirMode os.FileMode = 0o755

	// desktopFileMode keeps the entry world-readable, as menus expect.
	desktopFileMode os.FileMode = 0o644
)

// desktopEntry renders the freedesktop entry pointing at the launcher.
func desktopEntry(launcherPath, iconPath string) string {
	return fmt.Sprintf(`[Desktop Entry]
Version=1.0
Type=Application
Name=Kiro
Comment=Kiro IDE - AI-powered code editor
Exec=%s
Icon=%s
Terminal=false
Categories=Development;IDE;TextEditor;
StartupNotify=true
StartupWMClass=Kiro
`, launcherPath, iconPath)
}

// writeDesktopEntries writes the entry next to the launcher and into the
// user applications directory, then refreshes the desktop database.
func (i *LauncherIntegrator) writeDesktopEntries(ctx context.Context, launcherPath string) error {
	content := []byte(desktopEntry(launcherPath, i.cfg.IconFilePath()))

	localPath := filepath.Join(i.cfg.InstallDir, DesktopFilename)
	if err := os.WriteFile(localPath, content, desktopFileMode); err != nil {
		return fmt.Errorf("write %s: %w", localPath, err)
	}

	if err := os.MkdirAll(i.cfg.ApplicationsDir, applicationsDirMode); err != nil {
		return fmt.Errorf("create applications directory: %w", err)
	}

	installedPath := filepath.Join(i.cfg.ApplicationsDir, DesktopFilename)
	if err := os.WriteFile(installedPath, content, desktopFileMode); err != nil {
		return fmt.Errorf("write %s: %w", installedPath, err)
	}

	// Menus rescan on their own eventually, so a failed refresh is not an error.
	if err := i.run(ctx, "update-desktop-database", i.cfg.ApplicationsDir); err != nil {
		logger.Debugf(ctx, "Desktop database refresh skipped: %v", err)
	}

	logger.InfoKV(ctx, "Created desktop entry", "path", installedPath)

	return nil
}
