// Package testing provides a standardised test suite for store
// implementations that satisfy the store.IStore interface.
//
// The suite checks the dictionary semantics every implementation shares:
// warn-and-skip on Add, strict and upserting Rewrite, idempotent Remove,
// owned snapshots, iteration order and the closed state.
//
// Example usage:
//
//	factory := func(t testing.TB) store.IStore[int] {
//		return lstore.NewLocalStore[int]()
//	}
//
//	storetesting.RunStoreTests(t, "LocalStore", factory)
package testing
