package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind is the type of path a selection asks for.
type Kind int

const (
	KindFile  Kind = iota // a single file
	KindFiles             // one or more files, one per line, finished by an empty line
	KindDir               // a single directory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFiles:
		return "files"
	case KindDir:
		return "directory"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SelectOptions configures SelectPath.
type SelectOptions struct {
	Kind      Kind
	Title     string // prompt text, a default is derived from Kind
	Strict    bool   // return ErrNotSelected instead of a nil slice on empty input
	MustExist bool   // ask again until the path exists and has the right type
}

// SelectPath asks for one or more paths on r and returns them as absolute paths.
//
// Empty input (or end of input) means nothing was selected: in strict mode
// ErrNotSelected is returned, otherwise a nil slice.
func SelectPath(r io.Reader, w io.Writer, opts SelectOptions) ([]string, error) {
	br := lineReader(r)
	title := opts.Title
	if title == "" {
		title = "select " + opts.Kind.String()
		if opts.Kind == KindFiles {
			title += " (one per line, empty line to finish)"
		}
	}
	fmt.Fprintln(w, title)

	var res []string
	for {
		line, err := ask(br, w, "> ")
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		path, err := filepath.Abs(line)
		if err != nil {
			fmt.Fprintf(w, "invalid path %q: %v\n", line, err)
			continue
		}
		if opts.MustExist {
			if err := checkKind(path, opts.Kind); err != nil {
				fmt.Fprintln(w, err)
				continue
			}
		}

		res = append(res, path)
		if opts.Kind != KindFiles {
			break
		}
	}

	if len(res) == 0 {
		if opts.Strict {
			return nil, fmt.Errorf("%w: no %s", ErrNotSelected, opts.Kind)
		}
		return nil, nil
	}
	return res, nil
}

// checkKind verifies that path exists and matches kind.
func checkKind(path string, kind Kind) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s does not exist", path)
	}
	if kind == KindDir && !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	if kind != KindDir && info.IsDir() {
		return fmt.Errorf("%s is not a file", path)
	}
	return nil
}
