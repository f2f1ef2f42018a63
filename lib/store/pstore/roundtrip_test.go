package pstore

import (
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/ValentinKolb/pdict/lib/codec"
	"github.com/ValentinKolb/pdict/lib/store"
	"github.com/ValentinKolb/pdict/lib/store/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gob.Register(user{})
}

func TestInterfaceValuesSurviveReopen(t *testing.T) {
	for _, name := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c, err := codec.ByName(name)
			require.NoError(t, err)
			path := tempPath(t)

			s, err := Open[any](path, &Options{Codec: c})
			require.NoError(t, err)
			require.NoError(t, s.Set("n", 1))
			require.NoError(t, s.Set("zero", 0))
			require.NoError(t, s.Set("s", "hello"))
			require.NoError(t, s.Close())

			s, err = Open[any](path, &Options{Codec: c})
			require.NoError(t, err)
			defer s.Close()

			assert.Equal(t, []string{"n", "zero", "s"}, s.Keys())
			v, _ := s.Get("n")
			assert.EqualValues(t, 1, v)
			v, _ = s.Get("zero")
			assert.EqualValues(t, 0, v)
			v, _ = s.Get("s")
			assert.Equal(t, "hello", v)
		})
	}
}

func TestStructInInterfaceSurvivesReopen(t *testing.T) {
	path := tempPath(t)
	want := user{Name: "Zoe", Roles: []string{"admin"}, Age: 31}

	err := With[any](path, nil, func(s store.IStore[any]) error {
		return s.Set("zoe", want)
	})
	require.NoError(t, err)

	s, err := Open[any](path, nil)
	require.NoError(t, err)
	defer s.Close()

	v, ok := s.Get("zoe")
	require.True(t, ok)
	assert.Equal(t, want, v)
}

func TestBinaryInterfaceValuesSurviveReopen(t *testing.T) {
	path := tempPath(t)
	opts := &Options{Codec: codec.NewBinaryCodec()}

	err := With[any](path, opts, func(s store.IStore[any]) error {
		return s.Set("raw", []byte("payload"))
	})
	require.NoError(t, err)

	s, err := Open[any](path, opts)
	require.NoError(t, err)
	defer s.Close()

	v, _ := s.Get("raw")
	assert.Equal(t, []byte("payload"), v)
}

// TestFileMatchesModelAfterEveryStep applies random operations and decodes
// the backing file after each one.
func TestFileMatchesModelAfterEveryStep(t *testing.T) {
	for _, name := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c, err := codec.ByName(name)
			require.NoError(t, err)
			path := tempPath(t)

			s, err := Open[int](path, &Options{Codec: c})
			require.NoError(t, err)
			defer s.Close()

			rng := rand.New(rand.NewPCG(7, 99))
			model := internal.NewOrderedMap[int]()
			require.NoError(t, s.Set("k0", 0))
			model.Put("k0", 0)

			for i := 0; i < 150; i++ {
				key := fmt.Sprintf("k%d", rng.IntN(10))
				value := rng.IntN(1000)

				switch rng.IntN(4) {
				case 0:
					_, err := s.Add(store.E(key, value))
					require.NoError(t, err, "step %d", i)
					if !model.Has(key) {
						model.Put(key, value)
					}
				case 1:
					err := s.Rewrite(key, value, false)
					if model.Has(key) {
						require.NoError(t, err, "step %d", i)
						model.Put(key, value)
					} else {
						require.True(t, errors.Is(err, store.ErrKeyNotFound), "step %d: %v", i, err)
					}
				case 2:
					require.NoError(t, s.Set(key, value), "step %d", i)
					model.Put(key, value)
				case 3:
					require.NoError(t, s.Remove(key), "step %d", i)
					model.Remove(key)
				}

				raw, err := os.ReadFile(path)
				require.NoError(t, err, "step %d", i)
				onDisk, err := decodeFile[int](raw, c)
				require.NoError(t, err, "step %d", i)
				require.Equal(t, model.Keys(), onDisk.Keys(), "step %d", i)
				require.Equal(t, model.Values(), onDisk.Values(), "step %d", i)
			}
		})
	}
}
