package lstore

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"sync"

	"github.com/ValentinKolb/pdict/lib/store"
	"github.com/ValentinKolb/pdict/lib/store/internal"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("store")

// CommitFunc is called after every mutation with the prospective mapping.
// If it returns an error the mutation is rolled back and the error is returned to the caller.
// The mapping must not be retained or modified by the CommitFunc.
type CommitFunc[V any] func(data *internal.OrderedMap[V]) error

// Store is the in-memory core of all store implementations.
// It implements store.IStore on an insertion-ordered map and delegates persistence to an optional CommitFunc.
//
// Thread-safety: All methods are thread-safe. The commit hook runs while the write lock is held.
type Store[V any] struct {
	mu     sync.RWMutex
	data   *internal.OrderedMap[V]
	commit CommitFunc[V]
	closed bool
}

// NewLocalStore creates a new local store instance.
// This store is memory only, its contents are lost when the process exits.
func NewLocalStore[V any]() store.IStore[V] {
	return New[V](nil, nil)
}

// New creates the store core with initial data (may be nil) and a commit hook (may be nil).
// It is used by persisting implementations that build on the local store.
func New[V any](data *internal.OrderedMap[V], commit CommitFunc[V]) *Store[V] {
	if data == nil {
		data = internal.NewOrderedMap[V]()
	}
	return &Store[V]{
		data:   data,
		commit: commit,
	}
}

// runCommit calls the commit hook if one is set.
//
// Thread-safety: The caller must hold the write lock.
func (s *Store[V]) runCommit() error {
	if s.commit == nil {
		return nil
	}
	return s.commit(s.data)
}

// checkOpen returns an error if the store is closed.
//
// Thread-safety: The caller must hold a lock.
func (s *Store[V]) checkOpen(op string) error {
	if s.closed {
		return store.NewError(store.RetCClosed, fmt.Sprintf("%s on closed store", op))
	}
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods - Write Operations (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *Store[V]) Add(entries ...store.Entry[V]) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("add"); err != nil {
		return nil, err
	}

	var skipped, inserted []string
	for _, e := range entries {
		if s.data.Has(e.Key) {
			log.Warningf("failed to add key %q: the key already exists, use Rewrite to overwrite it", e.Key)
			skipped = append(skipped, e.Key)
			continue
		}
		s.data.Put(e.Key, e.Value)
		inserted = append(inserted, e.Key)
	}

	if len(inserted) == 0 {
		return skipped, nil
	}

	if err := s.runCommit(); err != nil {
		for _, k := range inserted {
			s.data.Remove(k)
		}
		return skipped, err
	}

	log.Debugf("added %d key(s), skipped %d", len(inserted), len(skipped))
	return skipped, nil
}

func (s *Store[V]) Rewrite(key string, value V, allowAdd bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("rewrite"); err != nil {
		return err
	}

	if !allowAdd && !s.data.Has(key) {
		return store.NewError(store.RetCKeyNotFound, fmt.Sprintf("key %q does not exist", key))
	}

	prev, existed := s.data.Put(key, value)
	if err := s.runCommit(); err != nil {
		if existed {
			s.data.Put(key, prev)
		} else {
			s.data.Remove(key)
		}
		return err
	}
	return nil
}

func (s *Store[V]) Set(key string, value V) error {
	return s.Rewrite(key, value, true)
}

func (s *Store[V]) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("remove"); err != nil {
		return err
	}

	prev, pos, existed := s.data.Remove(key)
	if !existed {
		return nil
	}

	if err := s.runCommit(); err != nil {
		s.data.InsertAt(pos, key, prev)
		return err
	}
	return nil
}

func (s *Store[V]) Delete(key string) error {
	return s.Remove(key)
}

// --------------------------------------------------------------------------
// Interface Methods - Query Operations (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Get(key)
}

func (s *Store[V]) Load(key string, strict bool) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data.Get(key)
	if ok {
		return v, nil
	}
	if strict {
		return v, store.NewError(store.RetCKeyNotFound, fmt.Sprintf("failed to load key %q", key))
	}
	log.Warningf("failed to load key %q: the key does not exist", key)
	return v, nil
}

func (s *Store[V]) LoadMany(keys []string, strict bool) ([]V, error) {
	if len(keys) == 0 {
		return nil, store.NewError(store.RetCInvalidOperation, "at least one key is required")
	}
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			return nil, store.NewError(store.RetCInvalidOperation, fmt.Sprintf("key %q is given more than once", k))
		}
		seen[k] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]V, len(keys))
	for i, k := range keys {
		v, ok := s.data.Get(k)
		if !ok && strict {
			return nil, store.NewError(store.RetCKeyNotFound, fmt.Sprintf("key %q does not exist", k))
		}
		values[i] = v
	}
	return values, nil
}

func (s *Store[V]) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Has(key)
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Len()
}

func (s *Store[V]) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Keys()
}

func (s *Store[V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Values()
}

func (s *Store[V]) Iter() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, k := range s.Keys() {
			if !yield(k) {
				return
			}
		}
	}
}

func (s *Store[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		s.mu.RLock()
		snapshot := s.data.Clone()
		s.mu.RUnlock()

		snapshot.Range(yield)
	}
}

func (s *Store[V]) ShowAll(w io.Writer) error {
	for k, v := range s.All() {
		if _, err := fmt.Fprintf(w, "%s: %v\n", k, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store[V]) ShowKeys(w io.Writer) error {
	keys := s.Keys()
	slices.Sort(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store[V]) GetInfo() store.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return store.Info{
		Entries: s.data.Len(),
		Closed:  s.closed,
	}
}

// --------------------------------------------------------------------------
// Lifecycle
// --------------------------------------------------------------------------

func (s *Store[V]) Close() error {
	return s.CloseWith(nil)
}

// CloseWith marks the store as closed after running fn with the final mapping.
// fn runs under the write lock and is skipped if the store is already closed.
// The store is closed even if fn fails.
func (s *Store[V]) CloseWith(fn func(data *internal.OrderedMap[V]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if fn == nil {
		return nil
	}
	return fn(s.data)
}
