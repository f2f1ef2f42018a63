package fsutil

import (
	"bufio"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/ValentinKolb/pdict/lib/collections"
)

// maxLineSize is the longest line ReadLines accepts.
const maxLineSize = 16 * 1024 * 1024

// ReadLines returns an iterator over the lines of a UTF-8 text file with line endings stripped.
// If ignoreBlank is set, lines that are empty after trimming white space are skipped.
// Errors (including ErrNotAFile) are yielded once as the last element.
func ReadLines(path string, ignoreBlank bool) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if !isFile(path) {
			yield("", fmt.Errorf("%w: %s", ErrNotAFile, path))
			return
		}

		f, err := os.Open(path)
		if err != nil {
			yield("", err)
			return
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 64*1024), maxLineSize)
		for sc.Scan() {
			line := sc.Text()
			if ignoreBlank && strings.TrimSpace(line) == "" {
				continue
			}
			if !yield(line, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield("", err)
		}
	}
}

// CollectLines reads all lines of a file into a slice (see ReadLines).
func CollectLines(path string, ignoreBlank bool) ([]string, error) {
	var lines []string
	for line, err := range ReadLines(path, ignoreBlank) {
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines writes one element per line, formatted with fmt.Sprint.
// Lines are separated by "\n" without a trailing newline, unless addBlankLine is set
// and the last line is not blank. Parent directories are created.
func WriteLines[T any](path string, lines []T, addBlankLine bool) error {
	if _, err := SetupPath(path, false); err != nil {
		return err
	}

	var sb strings.Builder
	last := ""
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		last = fmt.Sprint(l)
		sb.WriteString(last)
	}
	if addBlankLine && strings.TrimSpace(last) != "" {
		sb.WriteByte('\n')
	}

	return AtomicWrite(path, []byte(sb.String()), 0o644)
}

// WriteSetLines merges lines into the file at path without duplicates.
// Existing lines come first, the order of first appearance is kept.
// An empty lines slice leaves the file untouched.
func WriteSetLines(path string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	var merged []string
	if isFile(path) {
		existing, err := CollectLines(path, false)
		if err != nil {
			return err
		}
		for _, l := range existing {
			merged = append(merged, strings.TrimSpace(l))
		}
	}
	merged = append(merged, lines...)

	return WriteLines(path, collections.Deduplicate(merged), false)
}

// isFile reports whether path exists and is a regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
