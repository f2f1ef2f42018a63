// Package common provides the shared plumbing of the pdict command line tool.
//
// It installs a custom formatter for the dragonboat logger facade that all
// library packages log through (see InitLoggers) and defines the StoreConfig
// the commands are configured with.
//
// Log lines have the form:
//
//	2025/01/01 12:00:00 WARN  | store    | key "a" already exists, use Rewrite to overwrite it
package common
