// Package lstore implements a local, in-memory key-value store based on the
// store.IStore interface. Data is kept in an insertion-ordered map and is not
// persisted between process restarts.
//
// Besides being usable on its own, the local store is the core the persisted
// store (pstore) is built on: New accepts a CommitFunc that is called after
// every mutation with the prospective mapping. When the hook fails, the
// mutation is rolled back, so callers only ever observe the previous state or
// the committed new one.
//
// Key Features:
//   - Insertion-ordered iteration (rewriting a key keeps its position)
//   - Warn-and-skip semantics for Add on existing keys
//   - Owned snapshots for Keys, Values, Iter and All
//   - Rollback of in-memory changes when the commit hook fails
//
// Thread Safety:
//
//	All operations are guarded by a read-write mutex. Iterators work on a
//	snapshot taken when iteration starts, so the store can be mutated from
//	inside a range loop.
//
// Usage Example:
//
//	s := lstore.NewLocalStore[int]()
//	_, _ = s.Add(store.E("a", 1), store.E("b", 2))
//	_ = s.Rewrite("a", 10, false)
//	for key := range s.Iter() {
//		fmt.Println(key)
//	}
package lstore
