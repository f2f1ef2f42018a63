package objstore

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/ValentinKolb/pdict/lib/codec"
	"github.com/ValentinKolb/pdict/lib/fsutil"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("objstore")

// ObjectStore keeps a single value of type V in a file.
// The file holds the codec output as base64 text (see codec.SaveObject).
//
// Thread-safety: All methods are thread-safe.
type ObjectStore[V any] struct {
	mu    sync.Mutex
	path  string
	codec codec.ICodec
	obj   V
}

// New creates an object store for path. If the file exists its object is
// loaded, otherwise Obj returns the zero value until the first Save.
// The parent directory of path is created if missing.
func New[V any](path string, c codec.ICodec) (*ObjectStore[V], error) {
	path, err := fsutil.SetupPath(path, false)
	if err != nil {
		return nil, err
	}
	s := &ObjectStore[V]{
		path:  path,
		codec: c,
	}

	err = codec.LoadObject(path, &s.obj, c)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return s, nil
}

// Path returns the path of the backing file.
func (s *ObjectStore[V]) Path() string {
	return s.path
}

// Obj returns the last saved or loaded object.
func (s *ObjectStore[V]) Obj() V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.obj
}

// Save writes v to the file. Obj is updated only if the write succeeds.
func (s *ObjectStore[V]) Save(v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(v)
}

func (s *ObjectStore[V]) save(v V) error {
	if err := codec.SaveObject(s.path, &v, s.codec); err != nil {
		log.Errorf("failed to save object to %s: %v", s.path, err)
		return err
	}
	s.obj = v
	return nil
}

// Load reads the object from the file and returns it.
// If the file is missing the zero value is saved and returned.
func (s *ObjectStore[V]) Load() (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v V
	err := codec.LoadObject(s.path, &v, s.codec)
	switch {
	case err == nil:
		s.obj = v
		return v, nil
	case errors.Is(err, fs.ErrNotExist):
		log.Infof("object file %s does not exist, creating it", s.path)
		var zero V
		return zero, s.save(zero)
	default:
		var zero V
		return zero, err
	}
}

// Remove deletes the backing file and resets Obj to the zero value.
// A missing file is not an error.
func (s *ObjectStore[V]) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	var zero V
	s.obj = zero
	return nil
}
