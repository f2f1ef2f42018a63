package prompt

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	var out bytes.Buffer

	ok, err := Confirm(strings.NewReader("maybe\nYES\n"), &out, "delete?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, strings.Count(out.String(), "delete? [y/n]: "))

	ok, err = Confirm(strings.NewReader("n"), &out, "delete?")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Confirm(strings.NewReader(""), &out, "delete?")
	assert.Error(t, err)
}

func TestInput(t *testing.T) {
	var out bytes.Buffer

	v, err := Input(strings.NewReader("abc\n 12\n42\n"), &out, "number: ", strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Contains(t, out.String(), `invalid input "abc"`)

	// several questions share one reader
	in := bufio.NewReader(strings.NewReader("1\n2\n"))
	a, err := Input(in, &out, "a: ", strconv.Atoi)
	require.NoError(t, err)
	b, err := Input(in, &out, "b: ", strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, []int{a, b})
}

func TestSelectPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	var out bytes.Buffer

	got, err := SelectPath(strings.NewReader(file+"\n"), &out, SelectOptions{Kind: KindFile, MustExist: true})
	require.NoError(t, err)
	assert.Equal(t, []string{file}, got)

	// a directory is rejected for a file selection, then the file is accepted
	got, err = SelectPath(strings.NewReader(dir+"\n"+file+"\n"), &out, SelectOptions{Kind: KindFile, MustExist: true})
	require.NoError(t, err)
	assert.Equal(t, []string{file}, got)
	assert.Contains(t, out.String(), "is not a file")

	got, err = SelectPath(strings.NewReader(dir+"\n"), &out, SelectOptions{Kind: KindDir, MustExist: true})
	require.NoError(t, err)
	assert.Equal(t, []string{dir}, got)

	got, err = SelectPath(strings.NewReader(file+"\n"+file+"\n\n"), &out, SelectOptions{Kind: KindFiles})
	require.NoError(t, err)
	assert.Equal(t, []string{file, file}, got)
}

func TestSelectPathNothingSelected(t *testing.T) {
	var out bytes.Buffer

	got, err := SelectPath(strings.NewReader("\n"), &out, SelectOptions{Kind: KindFile})
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = SelectPath(strings.NewReader(""), &out, SelectOptions{Kind: KindDir, Strict: true})
	assert.ErrorIs(t, err, ErrNotSelected)
}

func TestIsInteractive(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsInteractive(f))
	assert.False(t, IsInteractive(nil))
}
