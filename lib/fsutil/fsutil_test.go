package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupPath(t *testing.T) {
	dir := t.TempDir()

	p, err := SetupPath(filepath.Join(dir, "a", "b", "file.txt"), false)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "a", "b"))
	assert.NoFileExists(t, p)

	_, err = SetupPath(filepath.Join(dir, "c", "d"), true)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(dir, "c", "d"))
}

func TestSamePathAndEnsureRelative(t *testing.T) {
	dir := t.TempDir()

	same, err := SamePath(filepath.Join(dir, "x", "..", "y"), filepath.Join(dir, "y"))
	require.NoError(t, err)
	assert.True(t, same)

	file := filepath.Join(dir, "sub", "f.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	rel, err := EnsureRelative(file, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("sub", "f.txt"), rel)

	rel, err = EnsureRelative("already/rel", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("already", "rel"), rel)

	_, err = EnsureRelative(filepath.Dir(dir), dir)
	assert.ErrorIs(t, err, ErrOutsideBase)
}

func TestSubPaths(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"a.txt", "b.go", "skip.txt", "sub/c.txt", "sub/d.md"} {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	all, err := SubPaths(root, SubPathOptions{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	top, err := SubPaths(root, SubPathOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.go"),
		filepath.Join(root, "skip.txt"),
		filepath.Join(root, "sub"),
	}, top)

	txt, err := SubPaths(root, SubPathOptions{
		Recursive:    true,
		IncludeExts:  []string{".txt", "md"},
		ExcludeNames: []string{"skip*"},
		OnlyFiles:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "sub", "c.txt"),
		filepath.Join(root, "sub", "d.md"),
	}, txt)

	dirs, err := SubPaths(root, SubPathOptions{Recursive: true, OnlyDirs: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "sub")}, dirs)

	_, err = SubPaths(filepath.Join(root, "a.txt"), SubPathOptions{})
	assert.ErrorIs(t, err, ErrNotADirectory)

	_, err = SubPaths(root, SubPathOptions{IncludeNames: []string{"["}})
	assert.Error(t, err)
}

func TestSystemName(t *testing.T) {
	assert.Equal(t, "a-b-c：d・e？f'g＜h＞i｜j", SystemName(`a\b/c:d*e?f"g<h>i|j`))
	assert.Equal(t, "plain name", SystemName("plain name"))
}

func TestLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lines.txt")

	require.NoError(t, WriteLines(path, []any{"one", 2, "", "four"}, false))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\n2\n\nfour", string(raw))

	lines, err := CollectLines(path, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "2", "", "four"}, lines)

	lines, err = CollectLines(path, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "2", "four"}, lines)

	require.NoError(t, WriteLines(path, []string{"x"}, true))
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(raw))

	// early break stops reading
	for line, err := range ReadLines(path, false) {
		require.NoError(t, err)
		assert.Equal(t, "x", line)
		break
	}

	_, err = CollectLines(filepath.Join(t.TempDir(), "missing"), false)
	assert.ErrorIs(t, err, ErrNotAFile)
}

func TestWriteSetLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.txt")

	require.NoError(t, WriteSetLines(path, []string{"b", "a", "b"}))
	require.NoError(t, WriteSetLines(path, []string{"c", "a"}))
	require.NoError(t, WriteSetLines(path, nil))

	lines, err := CollectLines(path, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, lines)
}

func TestJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d", "data.json")
	in := map[string]any{"z": 1, "a": "日本語 <tag>"}

	require.NoError(t, SaveJSON(path, in, 4))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": \"日本語 <tag>\",\n    \"z\": 1\n}\n", string(raw))

	var out map[string]any
	require.NoError(t, LoadJSON(path, &out))
	assert.Equal(t, "日本語 <tag>", out["a"])
	assert.Equal(t, float64(1), out["z"])

	assert.ErrorIs(t, LoadJSON(filepath.Dir(path), &out), ErrNotAFile)
}

func TestAtomicWriteAndCleanTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.db")

	require.NoError(t, AtomicWrite(path, []byte("v1"), 0o644))
	require.NoError(t, AtomicWrite(path, []byte("v2"), 0o644))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(raw))

	// simulate leftovers of interrupted writes
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".store.db.dead.tmp"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".other.db.dead.tmp"), nil, 0o644))

	n, err := CleanTemp(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, ".other.db.dead.tmp"))

	n, err = CleanTemp(filepath.Join(dir, "missing", "x.db"))
	require.NoError(t, err)
	assert.Zero(t, n)
}
