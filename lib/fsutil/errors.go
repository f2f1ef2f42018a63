package fsutil

import "errors"

var (
	// ErrNotAFile is returned when a path does not exist or is not a regular file.
	ErrNotAFile = errors.New("fsutil: path does not exist or is not a file")
	// ErrNotADirectory is returned when a path does not exist or is not a directory.
	ErrNotADirectory = errors.New("fsutil: path does not exist or is not a directory")
	// ErrOutsideBase is returned by EnsureRelative for absolute paths outside the base directory.
	ErrOutsideBase = errors.New("fsutil: path is not inside the base directory")
)
