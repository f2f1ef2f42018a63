package pstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ValentinKolb/pdict/lib/codec"
	"github.com/ValentinKolb/pdict/lib/fsutil"
	"github.com/ValentinKolb/pdict/lib/store"
	"github.com/ValentinKolb/pdict/lib/store/internal"
	"github.com/ValentinKolb/pdict/lib/store/lstore"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("pstore")

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures how a persistent store is opened.
type Options struct {
	// Reset discards the contents of an existing backing file
	Reset bool
	// Codec encodes the individual values (default: gob)
	Codec codec.ICodec
	// FileMode is used when the backing file is created (default: 0644)
	FileMode os.FileMode
}

// DefaultOptions returns the default options for opening a store.
func DefaultOptions() *Options {
	return &Options{
		Codec:    codec.NewGOBCodec(),
		FileMode: 0o644,
	}
}

// withDefaults fills in unset fields without modifying o.
func (o *Options) withDefaults() Options {
	res := *DefaultOptions()
	if o == nil {
		return res
	}
	res.Reset = o.Reset
	if o.Codec != nil {
		res.Codec = o.Codec
	}
	if o.FileMode != 0 {
		res.FileMode = o.FileMode
	}
	return res
}

// --------------------------------------------------------------------------
// Store
// --------------------------------------------------------------------------

// persistentStore is a store.IStore whose mapping is mirrored to a backing file.
// All reads and writes go through the embedded local store, every successful
// mutation rewrites the backing file atomically.
type persistentStore[V any] struct {
	*lstore.Store[V]

	path     string
	codec    codec.ICodec
	fileMode os.FileMode

	// persisted is true if the backing file existed on open or was written since.
	// It is only accessed while the local store holds its write lock.
	persisted bool

	release sync.Once
}

// Open opens the persistent store backed by the file at path.
//
// A missing file is not an error, it is created lazily by the first successful
// mutation. An existing file is loaded unless opts.Reset is set, in which case
// it is removed. A path can only be opened by one store per process at a time,
// a second Open returns an error with RetCPathInUse until the first store is closed.
// If opts is nil DefaultOptions are used.
func Open[V any](path string, opts *Options) (store.IStore[V], error) {
	o := opts.withDefaults()

	if path == "" {
		return nil, store.NewError(store.RetCInvalidPath, "path must not be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, store.WrapError(store.RetCInvalidPath, fmt.Sprintf("invalid path %s", path), err)
	}

	info, statErr := os.Stat(abs)
	switch {
	case statErr == nil && !info.Mode().IsRegular():
		return nil, store.NewError(store.RetCInvalidPath, fmt.Sprintf("%s is not a regular file", abs))
	case statErr != nil && !errors.Is(statErr, fs.ErrNotExist):
		return nil, store.WrapError(store.RetCInvalidPath, fmt.Sprintf("cannot access %s", abs), statErr)
	}
	exists := statErr == nil

	if !claimPath(abs) {
		return nil, store.NewError(store.RetCPathInUse, fmt.Sprintf("%s is already opened by another store", abs))
	}

	s := &persistentStore[V]{
		path:     abs,
		codec:    o.Codec,
		fileMode: o.FileMode,
	}

	data, err := s.load(exists, o.Reset)
	if err != nil {
		releasePath(abs)
		return nil, err
	}
	s.persisted = exists && !o.Reset

	s.Store = lstore.New[V](data, s.commit)
	openStores.Inc()

	log.Debugf("opened store %s with %d entries (codec %s)", abs, data.Len(), o.Codec.Name())
	return s, nil
}

// With opens the store at path, calls fn with it and closes it afterwards.
// The store is closed even if fn fails or panics. Errors of fn and Close are joined.
func With[V any](path string, opts *Options, fn func(s store.IStore[V]) error) (err error) {
	s, err := Open[V](path, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn(s)
}

// load reads the backing file or removes it on reset.
func (s *persistentStore[V]) load(exists, reset bool) (*internal.OrderedMap[V], error) {
	if !exists {
		return internal.NewOrderedMap[V](), nil
	}

	if reset {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, store.WrapError(store.RetCInternalError, fmt.Sprintf("failed to reset %s", s.path), err)
		}
		log.Infof("reset store %s", s.path)
		return internal.NewOrderedMap[V](), nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		observeLoad(err)
		return nil, store.WrapError(store.RetCInternalError, fmt.Sprintf("failed to read %s", s.path), err)
	}
	data, err := decodeFile[V](raw, s.codec)
	observeLoad(err)
	if err != nil {
		log.Errorf("failed to load %s: %v", s.path, err)
		return nil, err
	}
	return data, nil
}

// commit writes the prospective mapping to the backing file.
// It is called by the local store under its write lock.
func (s *persistentStore[V]) commit(data *internal.OrderedMap[V]) error {
	start := time.Now()

	raw, err := encodeFile(data, s.codec)
	if err != nil {
		observeWrite(start, 0, err)
		log.Errorf("failed to encode %s: %v", s.path, err)
		return err
	}

	if _, err := fsutil.SetupPath(s.path, false); err != nil {
		observeWrite(start, 0, err)
		return store.WrapError(store.RetCInternalError, "failed to create parent directory", err)
	}

	if err := fsutil.AtomicWrite(s.path, raw, s.fileMode); err != nil {
		observeWrite(start, 0, err)
		log.Errorf("failed to write %s: %v", s.path, err)
		return store.WrapError(store.RetCInternalError, fmt.Sprintf("failed to write %s", s.path), err)
	}

	observeWrite(start, len(raw), nil)
	s.persisted = true
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *persistentStore[V]) GetInfo() store.Info {
	info := s.Store.GetInfo()
	info.Path = s.path
	info.Codec = s.codec.Name()
	if st, err := os.Stat(s.path); err == nil {
		info.FileExists = true
		info.SizeBytes = st.Size()
	}
	return info
}

// Close rewrites the backing file one last time (if it exists), removes
// leftovers of interrupted writes and releases the path.
func (s *persistentStore[V]) Close() error {
	err := s.Store.CloseWith(func(data *internal.OrderedMap[V]) error {
		var errs []error
		if s.persisted {
			errs = append(errs, s.commit(data))
		}
		if n, err := fsutil.CleanTemp(s.path); err != nil {
			log.Warningf("failed to clean temp files of %s: %v", s.path, err)
		} else if n > 0 {
			log.Infof("removed %d stale temp files of %s", n, s.path)
		}
		return errors.Join(errs...)
	})

	s.release.Do(func() {
		releasePath(s.path)
		openStores.Dec()
		log.Debugf("closed store %s", s.path)
	})
	return err
}
