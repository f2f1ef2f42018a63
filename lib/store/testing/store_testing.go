package testing

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/ValentinKolb/pdict/lib/store"
)

// StoreFactory is a function that creates a new, empty instance of an IStore implementation.
// Implementations that need cleanup should register it with t.Cleanup.
type StoreFactory func(t testing.TB) store.IStore[int]

// RunStoreTests runs a comprehensive test suite for an IStore implementation.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Add&Get", func(t *testing.T) {
			testAddGet(t, factory(t))
		})

		t.Run("AddSkipsExisting", func(t *testing.T) {
			testAddSkipsExisting(t, factory(t))
		})

		t.Run("Rewrite", func(t *testing.T) {
			testRewrite(t, factory(t))
		})

		t.Run("Set", func(t *testing.T) {
			testSet(t, factory(t))
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory(t))
		})

		t.Run("Load", func(t *testing.T) {
			testLoad(t, factory(t))
		})

		t.Run("LoadMany", func(t *testing.T) {
			testLoadMany(t, factory(t))
		})

		t.Run("Snapshots", func(t *testing.T) {
			testSnapshots(t, factory(t))
		})

		t.Run("MutateWhileIterating", func(t *testing.T) {
			testMutateWhileIterating(t, factory(t))
		})

		t.Run("ShowAll", func(t *testing.T) {
			testShowAll(t, factory(t))
		})

		t.Run("Closed", func(t *testing.T) {
			testClosed(t, factory(t))
		})

		t.Run("EndToEnd", func(t *testing.T) {
			testEndToEnd(t, factory(t))
		})

		t.Run("RandomOperations", func(t *testing.T) {
			testRandomOperations(t, factory(t))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// requireCode fails the test if err is not a store error with the given code.
func requireCode(t testing.TB, err error, code store.RetCode) {
	t.Helper()
	var serr *store.Error
	if !errors.As(err, &serr) {
		t.Fatalf("Expected store error with code %s, got %v", code, err)
	}
	if serr.Code != code {
		t.Fatalf("Expected code %s, got %s (%v)", code, serr.Code, err)
	}
}

// requireState checks that the store holds exactly the expected mapping in the expected order.
func requireState(t testing.TB, s store.IStore[int], order []string, expected map[string]int) {
	t.Helper()
	if s.Len() != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), s.Len())
	}
	if order != nil && !slices.Equal(s.Keys(), order) {
		t.Fatalf("Expected keys %v, got %v", order, s.Keys())
	}
	for k, want := range expected {
		if !s.Has(k) {
			t.Fatalf("Expected key %s to exist", k)
		}
		got, ok := s.Get(k)
		if !ok || got != want {
			t.Fatalf("Expected %s=%d, got %d (found=%v)", k, want, got, ok)
		}
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testAddGet(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	skipped, err := s.Add(store.E("a", 1), store.E("b", 2), store.E("c", 3))
	if err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("Expected no skipped keys, got %v", skipped)
	}

	requireState(t, s, []string{"a", "b", "c"}, map[string]int{"a": 1, "b": 2, "c": 3})

	if _, ok := s.Get("nonexistent-key"); ok {
		t.Errorf("Expected nonexistent key to return loaded=false")
	}
	if s.Has("nonexistent-key") {
		t.Errorf("Expected Has to return false for nonexistent key")
	}
}

func testAddSkipsExisting(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	if _, err := s.Add(store.E("a", 1)); err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}

	skipped, err := s.Add(store.E("a", 2), store.E("b", 3), store.E("b", 4))
	if err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}
	if !slices.Equal(skipped, []string{"a", "b"}) {
		t.Errorf("Expected skipped [a b], got %v", skipped)
	}

	requireState(t, s, []string{"a", "b"}, map[string]int{"a": 1, "b": 3})

	// a call that inserts nothing is fine as well
	skipped, err = s.Add(store.E("a", 5))
	if err != nil || !slices.Equal(skipped, []string{"a"}) {
		t.Errorf("Expected skipped [a] and no error, got %v, %v", skipped, err)
	}

	if skipped, err = s.Add(); err != nil || len(skipped) != 0 {
		t.Errorf("Expected empty Add to be a no-op, got %v, %v", skipped, err)
	}
}

func testRewrite(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	if _, err := s.Add(store.E("a", 1), store.E("b", 2)); err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}

	if err := s.Rewrite("a", 10, false); err != nil {
		t.Fatalf("Unexpected error during Rewrite: %v", err)
	}
	requireState(t, s, []string{"a", "b"}, map[string]int{"a": 10, "b": 2})

	err := s.Rewrite("missing", 5, false)
	requireCode(t, err, store.RetCKeyNotFound)
	if !errors.Is(err, store.ErrKeyNotFound) {
		t.Errorf("Expected errors.Is(err, ErrKeyNotFound)")
	}
	requireState(t, s, []string{"a", "b"}, map[string]int{"a": 10, "b": 2})

	if err := s.Rewrite("missing", 5, true); err != nil {
		t.Fatalf("Unexpected error during Rewrite with allowAdd: %v", err)
	}
	requireState(t, s, []string{"a", "b", "missing"}, map[string]int{"a": 10, "b": 2, "missing": 5})
}

func testSet(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	if err := s.Set("a", 1); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if err := s.Set("a", 2); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	requireState(t, s, []string{"a"}, map[string]int{"a": 2})
}

func testRemove(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	if _, err := s.Add(store.E("a", 1), store.E("b", 2), store.E("c", 3)); err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}

	if err := s.Remove("b"); err != nil {
		t.Fatalf("Unexpected error during Remove: %v", err)
	}
	requireState(t, s, []string{"a", "c"}, map[string]int{"a": 1, "c": 3})

	// removing an absent key is idempotent
	for i := 0; i < 2; i++ {
		if err := s.Remove("b"); err != nil {
			t.Errorf("Expected Remove of absent key to be a no-op, got %v", err)
		}
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Unexpected error during Delete: %v", err)
	}
	requireState(t, s, []string{"c"}, map[string]int{"c": 3})
}

func testLoad(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	if err := s.Set("a", 1); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}

	v, err := s.Load("a", true)
	if err != nil || v != 1 {
		t.Errorf("Expected 1, got %d (%v)", v, err)
	}

	_, err = s.Load("missing", true)
	requireCode(t, err, store.RetCKeyNotFound)

	v, err = s.Load("missing", false)
	if err != nil || v != 0 {
		t.Errorf("Expected zero value and no error in relaxed mode, got %d (%v)", v, err)
	}
}

func testLoadMany(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	if _, err := s.Add(store.E("a", 1), store.E("b", 2)); err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}

	values, err := s.LoadMany([]string{"b", "a"}, true)
	if err != nil || !slices.Equal(values, []int{2, 1}) {
		t.Errorf("Expected [2 1], got %v (%v)", values, err)
	}

	_, err = s.LoadMany(nil, true)
	requireCode(t, err, store.RetCInvalidOperation)

	_, err = s.LoadMany([]string{"a", "a"}, false)
	requireCode(t, err, store.RetCInvalidOperation)

	_, err = s.LoadMany([]string{"a", "missing"}, true)
	requireCode(t, err, store.RetCKeyNotFound)

	values, err = s.LoadMany([]string{"missing", "a"}, false)
	if err != nil || !slices.Equal(values, []int{0, 1}) {
		t.Errorf("Expected [0 1], got %v (%v)", values, err)
	}
}

func testSnapshots(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	if _, err := s.Add(store.E("a", 1), store.E("b", 2)); err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}

	keys := s.Keys()
	values := s.Values()

	if err := s.Remove("a"); err != nil {
		t.Fatalf("Unexpected error during Remove: %v", err)
	}
	if err := s.Set("b", 20); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}

	if !slices.Equal(keys, []string{"a", "b"}) {
		t.Errorf("Key snapshot changed after mutation: %v", keys)
	}
	if !slices.Equal(values, []int{1, 2}) {
		t.Errorf("Value snapshot changed after mutation: %v", values)
	}

	// mutating the snapshot must not touch the store
	keys[1] = "mutated"
	if !s.Has("b") || s.Has("mutated") {
		t.Errorf("Store changed after mutating a snapshot")
	}
}

func testMutateWhileIterating(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	for i := 0; i < 10; i++ {
		if err := s.Set(fmt.Sprintf("key-%d", i), i); err != nil {
			t.Fatalf("Unexpected error during Set: %v", err)
		}
	}

	var seen []string
	for key := range s.Iter() {
		seen = append(seen, key)
		if err := s.Remove(key); err != nil {
			t.Fatalf("Unexpected error during Remove inside loop: %v", err)
		}
	}
	if len(seen) != 10 {
		t.Errorf("Expected to iterate 10 keys, got %d", len(seen))
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty store, got %d entries", s.Len())
	}

	if err := s.Set("x", 1); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	for key, value := range s.All() {
		if err := s.Set(key, value+1); err != nil {
			t.Fatalf("Unexpected error during Set inside loop: %v", err)
		}
	}
	if v, _ := s.Get("x"); v != 2 {
		t.Errorf("Expected x=2, got %d", v)
	}
}

func testShowAll(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	if _, err := s.Add(store.E("b", 2), store.E("a", 1)); err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}

	var buf bytes.Buffer
	if err := s.ShowAll(&buf); err != nil {
		t.Fatalf("Unexpected error during ShowAll: %v", err)
	}
	if buf.String() != "b: 2\na: 1\n" {
		t.Errorf("Unexpected ShowAll output %q", buf.String())
	}

	buf.Reset()
	if err := s.ShowKeys(&buf); err != nil {
		t.Fatalf("Unexpected error during ShowKeys: %v", err)
	}
	if buf.String() != "a\nb\n" {
		t.Errorf("Unexpected ShowKeys output %q", buf.String())
	}
}

func testClosed(t *testing.T, s store.IStore[int]) {
	if err := s.Set("a", 1); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Unexpected error during Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Expected second Close to be a no-op, got %v", err)
	}

	requireCode(t, s.Set("b", 2), store.RetCClosed)
	requireCode(t, s.Remove("a"), store.RetCClosed)
	_, err := s.Add(store.E("c", 3))
	requireCode(t, err, store.RetCClosed)

	// reads keep serving the last state
	if v, ok := s.Get("a"); !ok || v != 1 {
		t.Errorf("Expected a=1 after close, got %d (%v)", v, ok)
	}
	if !s.GetInfo().Closed {
		t.Errorf("Expected info to report a closed store")
	}
}

func testEndToEnd(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	if _, err := s.Add(store.E("x", 1), store.E("y", 2)); err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}
	if err := s.Rewrite("x", 10, false); err != nil {
		t.Fatalf("Unexpected error during Rewrite: %v", err)
	}
	if err := s.Remove("y"); err != nil {
		t.Fatalf("Unexpected error during Remove: %v", err)
	}

	requireState(t, s, []string{"x"}, map[string]int{"x": 10})

	var iterated []string
	for key := range s.Iter() {
		iterated = append(iterated, key)
	}
	if !slices.Equal(iterated, []string{"x"}) {
		t.Errorf("Expected iteration to yield [x], got %v", iterated)
	}
}

// testRandomOperations applies a random sequence of operations and compares the store
// against a plain map after every single step.
func testRandomOperations(t *testing.T, s store.IStore[int]) {
	defer s.Close()

	rng := rand.New(rand.NewPCG(42, 1024))
	model := make(map[string]int)

	for i := 0; i < 300; i++ {
		key := fmt.Sprintf("k%d", rng.IntN(20))
		value := rng.IntN(1000)

		switch rng.IntN(4) {
		case 0:
			if _, err := s.Add(store.E(key, value)); err != nil {
				t.Fatalf("step %d: Add: %v", i, err)
			}
			if _, ok := model[key]; !ok {
				model[key] = value
			}
		case 1:
			err := s.Rewrite(key, value, false)
			if _, ok := model[key]; ok {
				if err != nil {
					t.Fatalf("step %d: Rewrite: %v", i, err)
				}
				model[key] = value
			} else if !errors.Is(err, store.ErrKeyNotFound) {
				t.Fatalf("step %d: expected ErrKeyNotFound, got %v", i, err)
			}
		case 2:
			if err := s.Set(key, value); err != nil {
				t.Fatalf("step %d: Set: %v", i, err)
			}
			model[key] = value
		case 3:
			if err := s.Remove(key); err != nil {
				t.Fatalf("step %d: Remove: %v", i, err)
			}
			delete(model, key)
		}

		requireState(t, s, nil, model)
	}
}
