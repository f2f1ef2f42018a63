// Package pstore implements a persistent store that satisfies the store.IStore interface.
//
// A persistent store keeps its whole mapping in memory and mirrors it to a
// single backing file. Every successful mutation rewrites the file, so the
// file always reflects the last successful operation. Writes go to a temporary
// file in the same directory which is renamed over the target, a crash leaves
// either the old or the new state behind, never a partial file.
//
// # File format
//
// The backing file starts with an 8 byte magic number followed by a format
// version and the entry count. Each entry is stored as a length prefixed key
// and a length prefixed value, the value being encoded with the configured
// codec.ICodec (gob by default). An xxhash64 checksum of all preceding bytes
// closes the file. Loading a file with a wrong magic number, version or
// checksum fails with RetCDeserialization. An empty file is an empty store.
//
// # Failure semantics
//
// If encoding or writing fails the mutation is rolled back in memory and the
// error is returned, the caller observes either the full effect of an
// operation or none of it.
//
// # Usage
//
//	err := pstore.With[string]("data/users.pdict", nil, func(s store.IStore[string]) error {
//		if _, err := s.Add(store.E("alice", "admin")); err != nil {
//			return err
//		}
//		return s.Rewrite("bob", "viewer", true)
//	})
//
// A path is claimed by the opening store until Close. Opening it twice in one
// process fails with RetCPathInUse. Coordination between processes is not provided.
//
// Write activity is exported as VictoriaMetrics counters, see WriteMetrics.
package pstore
