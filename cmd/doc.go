// Package cmd implements the command-line interface of pdict. It provides a
// hierarchical command structure to work with store files from the shell.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value store operations (add, rewrite, get, rm, etc.)
//   - tools: File and path helpers (sanitize, dedup, ls, wait)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Every flag can also be set through an environment variable with the PDICT_
// prefix (e.g. PDICT_FILE, PDICT_LOG_LEVEL) or in a .env / .env.local file.
//
// See pdict -help for a list of all commands.
package cmd
