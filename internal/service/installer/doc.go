// Package installer coordinates the whole download-and-install workflow:
// resolve the latest release, compare against the installed-version marker,
// download and extract the archive, locate the binary, wire in the desktop
// integration and record the new version.
//
// Metadata, download and extraction failures abort the run; a missing binary
// and integration failures degrade to warnings, with the version still
// recorded. Check mode reports the pending change without touching disk.
package installer
