package installer

import (
	"context"

	goversion "github.com/hashicorp/go-version"

	"github.com/oshokin/kiro-get/internal/logger"
)

// Check reports whether an update is available without installing anything.
func (s *Installer) Check(ctx context.Context) error {
	latest, _, err := s.resolveLatest(ctx)
	if err != nil {
		return err
	}

	installed, err := s.store.Read(ctx)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Latest version", "version", latest)

	switch {
	case installed == "":
		logger.Info(ctx, "Installed version: Not installed")
		logger.Info(ctx, "Kiro is not installed yet")
	case installed == latest:
		logger.InfoKV(ctx, "Installed version", "version", installed)
		logger.Info(ctx, "You have the latest version")
	default:
		logger.InfoKV(ctx, "Installed version", "version", installed)
		logger.Infof(ctx, "Update available: %s → %s%s",
			installed, latest, changeDirectionHint(installed, latest))
	}

	return nil
}

// changeDirectionHint flags the rare case where the published version is
// older than the recorded one. Version strings that do not parse produce
// no hint.
func changeDirectionHint(installed, latest string) string {
	installedVersion, err := goversion.NewVersion(installed)
	if err != nil {
		return ""
	}

	latestVersion, err := goversion.NewVersion(latest)
	if err != nil {
		return ""
	}

	if latestVersion.LessThan(installedVersion) {
		return " (rollback)"
	}

	return ""
}
