package fsutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const tempSuffix = ".tmp"

// tempPrefix returns the prefix of temp files written next to path.
func tempPrefix(path string) string {
	return "." + filepath.Base(path) + "."
}

// AtomicWrite writes data to path via a temporary file in the same directory and a rename.
// Readers either see the old content or the new one, never a partial write.
// The parent directory must exist (see SetupPath).
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, tempPrefix(path)+uuid.NewString()+tempSuffix)

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best effort cleanup
		return err
	}
	return nil
}

// CleanTemp removes temp files that interrupted AtomicWrite calls left next to path.
// It returns the number of removed files. A missing directory is not an error.
func CleanTemp(path string) (int, error) {
	dir := filepath.Dir(path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	prefix := tempPrefix(path)
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, tempSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
