package pstore

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ValentinKolb/pdict/lib/codec"
	"github.com/ValentinKolb/pdict/lib/store"
	"github.com/ValentinKolb/pdict/lib/store/internal"
	"github.com/cespare/xxhash/v2"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// Constants for the backing file format
const (
	magicNum     = "PDICT\x00\x00\x00" // File format identifier
	fileVersion  = 1                   // File format version
	checksumSize = 8                   // xxhash64 trailer
	headerSize   = len(magicNum) + 1 + 8
)

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// encodeFile serializes the whole mapping into the backing file format:
//
//	magic | version uint8 | count uint64 | count * (keyLen uint32 | key | valueLen uint32 | value) | xxhash64
//
// All integers are little endian. Values are encoded with c.
func encodeFile[V any](data *internal.OrderedMap[V], c codec.ICodec) ([]byte, error) {
	var buf bytes.Buffer
	digest := xxhash.New()
	w := io.MultiWriter(&buf, digest)

	// Write file header
	if _, err := io.WriteString(w, magicNum); err != nil {
		return nil, err
	}

	// Write file version
	if err := binary.Write(w, binary.LittleEndian, uint8(fileVersion)); err != nil {
		return nil, err
	}

	// Write total entries count
	if err := binary.Write(w, binary.LittleEndian, uint64(data.Len())); err != nil {
		return nil, err
	}

	// Write entries in iteration order
	var encErr error
	// Values are passed by pointer so interface-typed values round trip with gob
	data.Range(func(key string, value V) bool {
		raw, err := c.Serialize(&value)
		if err != nil {
			encErr = store.WrapError(store.RetCSerialization, fmt.Sprintf("failed to serialize value of key %q", key), err)
			return false
		}
		if uint64(len(key)) > math.MaxUint32 || uint64(len(raw)) > math.MaxUint32 {
			encErr = store.NewError(store.RetCSerialization, fmt.Sprintf("entry %q is too large", key))
			return false
		}
		if encErr = writeField(w, []byte(key)); encErr != nil {
			return false
		}
		encErr = writeField(w, raw)
		return encErr == nil
	})
	if encErr != nil {
		return nil, encErr
	}

	// Write checksum of everything before
	if err := binary.Write(&buf, binary.LittleEndian, digest.Sum64()); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writeField writes a length prefixed byte field.
func writeField(w io.Writer, b []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// decodeFile parses a backing file produced by encodeFile.
// An empty input yields an empty mapping. Every format violation is returned
// as a store error with RetCDeserialization.
func decodeFile[V any](raw []byte, c codec.ICodec) (*internal.OrderedMap[V], error) {
	data := internal.NewOrderedMap[V]()
	if len(raw) == 0 {
		return data, nil
	}

	if len(raw) < headerSize+checksumSize {
		return nil, decodeError("file is truncated", nil)
	}

	// Read and verify magic number
	if string(raw[:len(magicNum)]) != magicNum {
		return nil, decodeError("invalid file format: magic number mismatch", nil)
	}

	// Verify checksum before parsing anything else
	body := raw[:len(raw)-checksumSize]
	want := binary.LittleEndian.Uint64(raw[len(raw)-checksumSize:])
	if got := xxhash.Sum64(body); got != want {
		return nil, decodeError(fmt.Sprintf("checksum mismatch (expected %x, got %x)", want, got), nil)
	}

	r := bytes.NewReader(body[len(magicNum):])

	// Read and verify version
	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, decodeError("reading version", err)
	}
	if version != fileVersion {
		return nil, decodeError(fmt.Sprintf("unsupported version: %d (expected %d)", version, fileVersion), nil)
	}

	// Read entries count
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, decodeError("reading entry count", err)
	}
	// every entry needs at least two length prefixes
	if count > uint64(r.Len())/8 {
		return nil, decodeError(fmt.Sprintf("entry count %d exceeds file size", count), nil)
	}

	// Read entries
	for i := uint64(0); i < count; i++ {
		key, err := readField(r)
		if err != nil {
			return nil, decodeError(fmt.Sprintf("reading key of entry %d", i), err)
		}
		raw, err := readField(r)
		if err != nil {
			return nil, decodeError(fmt.Sprintf("reading value of entry %d", i), err)
		}

		var value V
		if err := c.Deserialize(raw, &value); err != nil {
			return nil, decodeError(fmt.Sprintf("decoding value of key %q with %s", key, c.Name()), err)
		}
		if _, existed := data.Put(string(key), value); existed {
			return nil, decodeError(fmt.Sprintf("duplicate key %q", key), nil)
		}
	}

	if r.Len() != 0 {
		return nil, decodeError(fmt.Sprintf("%d trailing bytes after last entry", r.Len()), nil)
	}

	return data, nil
}

// readField reads a length prefixed byte field.
func readField(r *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	if int64(n) > int64(r.Len()) {
		return nil, io.ErrUnexpectedEOF
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func decodeError(msg string, cause error) *store.Error {
	return store.WrapError(store.RetCDeserialization, msg, cause)
}
