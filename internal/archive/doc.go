// Package archive unpacks gzip-compressed tar archives.
//
// Extraction preserves relative paths and file modes and materializes
// directories, regular files and symlinks. Entries are trusted to come from
// the configured release endpoint, so no path sanitization is applied beyond
// what the tar reader enforces.
package archive
