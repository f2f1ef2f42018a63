// Package fsutil bundles small file system helpers used throughout pdict:
// making sure directories exist before a write, atomic whole-file writes,
// line and JSON file I/O, listing sub paths with name filters and turning
// arbitrary text into a safe file name.
//
// All writers go through AtomicWrite, so a crash never leaves a half-written
// file behind, only a hidden temp file that CleanTemp removes.
package fsutil
