// Package marker implements persistence for the installed-version marker.
//
// The FileRepository stores the version as a single line of text on disk and
// exposes a Repository interface that the installer service depends on.
package marker
