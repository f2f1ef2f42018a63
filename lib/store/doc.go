// Package store provides the interface for dictionary-like key-value stores
// and the error type shared by all implementations.
//
// Key Components:
//
//   - IStore Interface: The core abstraction. Keys are strings, values are of
//     the type parameter V. Writes follow three rules: Add inserts and skips
//     (with a warning) keys that already exist, Rewrite replaces exactly one
//     key and fails with RetCKeyNotFound unless allowAdd is set, Remove deletes
//     and is a no-op for missing keys. Set and Delete are shorthands for
//     Rewrite(key, value, true) and Remove(key).
//
//   - Snapshots: Keys, Values, Iter and All never expose internal state.
//     Mutating a store while iterating over it is safe and does not change
//     what the running iteration yields.
//
//   - Error System: Every failed write returns an *Error carrying a RetCode.
//     errors.Is compares by code, so callers can test for ErrKeyNotFound,
//     ErrSerialization and friends regardless of the message.
//
// Implementations:
//
//   - Local Store (lstore): memory only. It is also the in-memory core the
//     persistent store builds on.
//     Available in the "github.com/ValentinKolb/pdict/lib/store/lstore" package.
//
//   - Persistent Store (pstore): mirrors every successful write to a single
//     backing file and rolls back the in-memory change if the write fails.
//     Available in the "github.com/ValentinKolb/pdict/lib/store/pstore" package.
//
// The conformance suite in "github.com/ValentinKolb/pdict/lib/store/testing"
// checks both implementations against the same expectations.
package store
