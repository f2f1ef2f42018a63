package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotSelected is returned by strict selections when nothing was entered.
var ErrNotSelected = errors.New("nothing selected")

// IsInteractive reports whether f is connected to a terminal.
func IsInteractive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// lineReader wraps r in a bufio.Reader unless it already is one.
// Callers asking several questions on the same input should pass a
// *bufio.Reader so no buffered input is lost between prompts.
func lineReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// readLine reads one line without the line ending.
// A final line without newline is returned with a nil error, io.EOF is only
// returned if nothing could be read.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask writes msg to w and reads the answer.
func ask(r *bufio.Reader, w io.Writer, msg string) (string, error) {
	if _, err := fmt.Fprint(w, msg); err != nil {
		return "", err
	}
	return readLine(r)
}

// --------------------------------------------------------------------------
// Questions
// --------------------------------------------------------------------------

// Confirm asks a yes/no question until the answer is one of y, yes, n or no (case insensitive).
func Confirm(r io.Reader, w io.Writer, msg string) (bool, error) {
	br := lineReader(r)
	for {
		answer, err := ask(br, w, msg+" [y/n]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(w, "please answer y or n")
	}
}

// Input asks for a value until convert accepts the answer.
// The conversion error is shown before asking again.
func Input[T any](r io.Reader, w io.Writer, msg string, convert func(string) (T, error)) (T, error) {
	br := lineReader(r)
	for {
		answer, err := ask(br, w, msg)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := convert(answer)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(w, "invalid input %q: %v\n", answer, err)
	}
}
