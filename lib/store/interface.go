package store

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Entry is a single key-value pair passed to IStore.Add.
type Entry[V any] struct {
	Key   string
	Value V
}

// E is a shorthand constructor for an Entry.
func E[V any](key string, value V) Entry[V] {
	return Entry[V]{Key: key, Value: value}
}

// Info holds metadata about a store and its backing file.
// It is not guaranteed that all fields are filled in (e.g. a memory-only store has no path).
type Info struct {
	Path       string `json:"path"`
	Entries    int    `json:"entries"`
	SizeBytes  int64  `json:"size_bytes"`
	Codec      string `json:"codec"`
	FileExists bool   `json:"file_exists"`
	Closed     bool   `json:"closed"`
}

// IStore is the generic interface for a dictionary-like key-value store.
// Write operations return a *Error (nil on success). Read operations work on
// the in-memory state only and never touch the backing file.
// Every slice or iterator handed out is an owned snapshot, mutating the store
// while holding one is safe.
type IStore[V any] interface {
	// Add inserts every entry whose key is not yet present, in argument order.
	// Keys that already exist are skipped (a warning is logged) and returned in skipped.
	// The store is persisted once if at least one key was inserted.
	Add(entries ...Entry[V]) (skipped []string, err error)
	// Rewrite replaces the value of exactly one key. A missing key is inserted
	// when allowAdd is set, otherwise an error with RetCKeyNotFound is returned.
	Rewrite(key string, value V, allowAdd bool) (err error)
	// Set is Rewrite(key, value, true).
	Set(key string, value V) (err error)
	// Remove deletes a key. Removing a missing key is a no-op.
	Remove(key string) (err error)
	// Delete is Remove(key).
	Delete(key string) (err error)

	// Get returns the value for a key. The boolean return value indicates whether the key was found.
	Get(key string) (value V, loaded bool)
	// Load returns the value for a key. In strict mode a missing key is an error,
	// otherwise the zero value is returned and a warning is logged.
	Load(key string, strict bool) (value V, err error)
	// LoadMany returns the values for keys in the order of keys.
	// keys must be non-empty and free of duplicates.
	LoadMany(keys []string, strict bool) (values []V, err error)
	// Has reports whether a key exists.
	Has(key string) (loaded bool)
	// Len returns the number of entries.
	Len() int
	// Keys returns a snapshot of all keys in iteration order.
	Keys() []string
	// Values returns a snapshot of all values in iteration order. This is O(n) in memory.
	Values() []V
	// Iter yields the keys of a snapshot taken when iteration starts.
	Iter() iter.Seq[string]
	// All yields key-value pairs of a snapshot taken when iteration starts.
	All() iter.Seq2[string, V]
	// ShowAll writes one "key: value" line per entry in iteration order.
	ShowAll(w io.Writer) (err error)
	// ShowKeys writes the keys in sorted order, one per line.
	ShowKeys(w io.Writer) (err error)
	// GetInfo returns metadata about the store.
	GetInfo() (info Info)

	// Close performs final housekeeping and releases the store.
	// Calling Close more than once is a no-op.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and an optional cause.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
	Err  error   // The underlying cause (may be nil).
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("StoreError (code %s): %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same code.
// This allows errors.Is(err, store.ErrKeyNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new store error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// WrapError creates a new store error with the given code, message and cause.
func WrapError(code RetCode, msg string, cause error) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
		Err:  cause,
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrInternal         = NewError(RetCInternalError, "internal error")
	ErrInvalidOperation = NewError(RetCInvalidOperation, "invalid operation")
	ErrKeyNotFound      = NewError(RetCKeyNotFound, "key not found")
	ErrClosed           = NewError(RetCClosed, "store is closed")
	ErrSerialization    = NewError(RetCSerialization, "serialization failed")
	ErrDeserialization  = NewError(RetCDeserialization, "deserialization failed")
	ErrInvalidPath      = NewError(RetCInvalidPath, "invalid path")
	ErrPathInUse        = NewError(RetCPathInUse, "path in use")
)

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error (e.g. I/O).
	RetCInvalidOperation                // 2: Invalid operation or arguments.
	RetCKeyNotFound                     // 3: The key does not exist.
	RetCClosed                          // 4: The store is closed.
	RetCSerialization                   // 5: A value could not be serialized.
	RetCDeserialization                 // 6: The backing file could not be decoded.
	RetCInvalidPath                     // 7: The backing path can not be used.
	RetCPathInUse                       // 8: The backing path is claimed by another open store.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidOperation:
		return "InvalidOperation"
	case RetCKeyNotFound:
		return "KeyNotFound"
	case RetCClosed:
		return "Closed"
	case RetCSerialization:
		return "Serialization"
	case RetCDeserialization:
		return "Deserialization"
	case RetCInvalidPath:
		return "InvalidPath"
	case RetCPathInUse:
		return "PathInUse"
	default:
		return "Unknown"
	}
}
