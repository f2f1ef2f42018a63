package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/pdict/lib/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns everything it printed
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pdict "+Version.String()+"\n", out)
}

func TestKeyValueCommands(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cli.pdict")
	kv := func(args ...string) (string, error) {
		return run(t, append([]string{"kv", "--file", file, "--codec", "json"}, args...)...)
	}

	out, err := kv("add", "x=1", "y=2")
	require.NoError(t, err)
	assert.Contains(t, out, "added 2 entries")

	out, err = kv("add", "x=5", "z=3")
	require.NoError(t, err)
	assert.Contains(t, out, "added 1 entries")
	assert.Contains(t, out, "skipped existing keys: x")

	_, err = kv("add", "novalue")
	assert.Error(t, err)

	_, err = kv("rewrite", "missing", "5")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)

	_, err = kv("rewrite", "x", "10")
	require.NoError(t, err)

	_, err = kv("rm", "y", "--yes")
	require.NoError(t, err)
	_, err = kv("rm", "y", "--yes")
	require.NoError(t, err, "removing a missing key is not an error")

	out, err = kv("show")
	require.NoError(t, err)
	assert.Equal(t, "x: 10\nz: 3\n", out)

	out, err = kv("keys")
	require.NoError(t, err)
	assert.Equal(t, "x\nz\n", out)

	out, err = kv("len")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, err = kv("has", "z")
	require.NoError(t, err)
	assert.Equal(t, "key=z, found=true\n", out)

	out, err = kv("get", "x")
	require.NoError(t, err)
	assert.Equal(t, "key=x, found=true, value=10\n", out)

	_, err = kv("set", "w", "new")
	require.NoError(t, err)

	out, err = kv("info")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries   : 3")
	assert.Contains(t, out, "Codec     : json")

	_, err = kv("get", "missing", "--strict")
	assert.ErrorIs(t, err, store.ErrKeyNotFound)

	_, err = kv("reset", "--yes")
	require.NoError(t, err)
	assert.NoFileExists(t, file)

	out, err = kv("len")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestToolCommands(t *testing.T) {
	out, err := run(t, "tools", "sanitize", "a/b:c")
	require.NoError(t, err)
	assert.Equal(t, "a-b：c\n", out)

	dir := t.TempDir()
	in := filepath.Join(dir, "lines.txt")
	require.NoError(t, os.WriteFile(in, []byte("b\na\nb\na\nc\n"), 0o644))
	dedup := filepath.Join(dir, "sub", "dedup.txt")

	_, err = run(t, "tools", "dedup", in, "--out", dedup)
	require.NoError(t, err)
	raw, err := os.ReadFile(dedup)
	require.NoError(t, err)
	assert.Equal(t, "b\na\nc\n", string(raw))

	out, err = run(t, "tools", "ls", dir, "--recursive", "--files", "--relative")
	require.NoError(t, err)
	assert.Equal(t, []string{"lines.txt", filepath.Join("sub", "dedup.txt")}, strings.Fields(out))

	out, err = run(t, "tools", "wait", "30ms", "--every", "10ms")
	require.NoError(t, err)
	assert.Contains(t, out, "started timer of 0.03s")
	assert.True(t, strings.HasSuffix(out, "done\n"))
}

func TestPerfCommand(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "perf.csv")
	out, err := run(t, "kv", "perf", "--keys", "20", "--threads", "2", "--value-size", "64B", "--skip", "rewrite", "--csv", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "rewrite   skipped")
	assert.Contains(t, out, "add")

	raw, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Len(t, lines, 4, "header plus add, get and remove")

	_, err = run(t, "kv", "perf", "--value-size", "10EB")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value size")
}
