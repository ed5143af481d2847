// Package release fetches and interprets the Kiro release metadata document.
//
// The metadata endpoint publishes a JSON document naming the current release
// version and the downloadable artifacts of every published build. The
// package provides a small HTTP client with timeouts and the selection rule
// picking the archive to install.
package release
