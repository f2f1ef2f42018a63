package fsutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadJSON decodes the JSON file at path into v.
func LoadJSON(path string, v any) error {
	if !isFile(path) {
		return fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// SaveJSON writes v as JSON to path, creating parent directories.
// Non-ASCII text and HTML characters are written as is, map keys are sorted.
// indent is the number of spaces per level, values <= 0 produce compact output.
func SaveJSON(path string, v any, indent int) error {
	if _, err := SetupPath(path, false); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return AtomicWrite(path, buf.Bytes(), 0o644)
}
