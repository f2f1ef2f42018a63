package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// --------------------------------------------------------------------------
// Path Setup
// --------------------------------------------------------------------------

// SetupPath makes sure the directory a path needs exists and returns the cleaned path.
// If isDir is false the parent directory of path is created, otherwise path itself.
func SetupPath(path string, isDir bool) (string, error) {
	path = filepath.Clean(path)
	target := path
	if !isDir {
		target = filepath.Dir(path)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", target, err)
	}
	return path, nil
}

// SamePath reports whether two paths point to the same location.
// Symlinks are resolved where the path exists.
func SamePath(a, b string) (bool, error) {
	ra, err := resolve(a)
	if err != nil {
		return false, err
	}
	rb, err := resolve(b)
	if err != nil {
		return false, err
	}
	return ra == rb, nil
}

// resolve returns the absolute path with symlinks evaluated if possible.
func resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// EnsureRelative converts an absolute path into one relative to base.
// Relative paths are returned unchanged (cleaned).
// Absolute paths outside of base yield ErrOutsideBase.
func EnsureRelative(path, base string) (string, error) {
	if !filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	absBase, err := resolve(base)
	if err != nil {
		return "", err
	}
	absPath, err := resolve(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrOutsideBase, path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideBase, path)
	}
	return rel, nil
}

// --------------------------------------------------------------------------
// Sub Paths
// --------------------------------------------------------------------------

// SubPathOptions filters the result of SubPaths.
// Name patterns use filepath.Match syntax and are matched against base names.
type SubPathOptions struct {
	Recursive    bool     // descend into sub directories
	IncludeExts  []string // shortcut for IncludeNames, ".txt", "txt" and "*.txt" are equivalent
	IncludeNames []string // keep only names matching one of these patterns
	ExcludeNames []string // drop names matching one of these patterns (applied after includes)
	OnlyFiles    bool     // keep only regular files
	OnlyDirs     bool     // keep only directories
}

// SubPaths lists the paths below root that pass the filters in opts, in lexical order.
// root itself is never part of the result.
func SubPaths(root string, opts SubPathOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	include := append([]string{}, opts.IncludeNames...)
	for _, ext := range opts.IncludeExts {
		ext = strings.TrimPrefix(strings.TrimPrefix(ext, "*"), ".")
		include = append(include, "*."+ext)
	}

	var res []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		keep, err := keepPath(d, include, opts)
		if err != nil {
			return err
		}
		if keep {
			res = append(res, path)
		}

		if d.IsDir() && !opts.Recursive {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// keepPath applies the type and name filters to a single entry.
func keepPath(d fs.DirEntry, include []string, opts SubPathOptions) (bool, error) {
	if opts.OnlyFiles && !d.Type().IsRegular() {
		return false, nil
	}
	if opts.OnlyDirs && !d.IsDir() {
		return false, nil
	}

	name := d.Name()
	if len(include) > 0 {
		ok, err := matchAny(name, include)
		if err != nil || !ok {
			return false, err
		}
	}
	if len(opts.ExcludeNames) > 0 {
		ok, err := matchAny(name, opts.ExcludeNames)
		if err != nil || ok {
			return false, err
		}
	}
	return true, nil
}

func matchAny(name string, patterns []string) (bool, error) {
	for _, p := range patterns {
		ok, err := filepath.Match(p, name)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// --------------------------------------------------------------------------
// Names
// --------------------------------------------------------------------------

// systemNameReplacer maps characters that are not allowed in file names on
// common file systems to visually similar safe ones.
var systemNameReplacer = strings.NewReplacer(
	`\`, "-",
	"/", "-",
	":", "：",
	"*", "・",
	"?", "？",
	`"`, "'",
	"<", "＜",
	">", "＞",
	"|", "｜",
)

// SystemName converts arbitrary text into a string usable as a file name.
func SystemName(name string) string {
	return systemNameReplacer.Replace(name)
}
