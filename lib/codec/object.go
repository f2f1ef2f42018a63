package codec

import (
	"encoding/base64"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ValentinKolb/pdict/lib/fsutil"
)

// --------------------------------------------------------------------------
// Single Object Helpers
// --------------------------------------------------------------------------

// SaveObject serializes v with c and writes it to path as base64 text.
// Pass a pointer if the value has an interface type and is read back with gob.
// Missing parent directories are created and the write is atomic.
func SaveObject(path string, v any, c ICodec) error {
	s, err := DumpString(v, c)
	if err != nil {
		return err
	}
	if _, err := fsutil.SetupPath(path, false); err != nil {
		return err
	}
	return fsutil.AtomicWrite(path, []byte(s), 0o644)
}

// LoadObject reads an object written by SaveObject into v.
// A missing file yields an error wrapping fs.ErrNotExist.
func LoadObject(path string, v any, c ICodec) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("loading object %s: %w", path, fs.ErrNotExist)
		}
		return err
	}
	if err := LoadString(string(raw), v, c); err != nil {
		return fmt.Errorf("loading object %s: %w", path, err)
	}
	return nil
}

// DumpString serializes v with c and returns it as a base64 string.
func DumpString(v any, c ICodec) (string, error) {
	b, err := c.Serialize(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.Name(), err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// LoadString decodes a string produced by DumpString into v.
func LoadString(s string, v any, c ICodec) error {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("base64: %w", err)
	}
	if err := c.Deserialize(b, v); err != nil {
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	return nil
}
