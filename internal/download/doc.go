// Package download streams release archives to disk.
//
// The Downloader reports transfer progress through the Progress interface;
// TerminalProgress renders the classic single-line bar, NopProgress discards
// notifications. A failed transfer leaves the partial file on disk for
// inspection.
package download
