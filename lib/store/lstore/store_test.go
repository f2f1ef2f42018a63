package lstore

import (
	"errors"
	"testing"

	"github.com/ValentinKolb/pdict/lib/store"
	"github.com/ValentinKolb/pdict/lib/store/internal"
	storetesting "github.com/ValentinKolb/pdict/lib/store/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreInterface(t *testing.T) {
	storetesting.RunStoreTests(t, "LocalStore", func(t testing.TB) store.IStore[int] {
		return NewLocalStore[int]()
	})
}

func TestCommitHookRunsOncePerMutation(t *testing.T) {
	var commits []int
	s := New[int](nil, func(data *internal.OrderedMap[int]) error {
		commits = append(commits, data.Len())
		return nil
	})

	_, err := s.Add(store.E("a", 1), store.E("b", 2))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, commits, "add persists once per call")

	_, err = s.Add(store.E("a", 3))
	require.NoError(t, err)
	assert.Len(t, commits, 1, "add without insertions does not persist")

	require.NoError(t, s.Remove("missing"))
	assert.Len(t, commits, 1, "removing a missing key does not persist")

	require.NoError(t, s.Rewrite("a", 5, false))
	require.NoError(t, s.Remove("b"))
	assert.Equal(t, []int{2, 2, 1}, commits)
}

func TestCommitFailureRollsBack(t *testing.T) {
	fail := false
	boom := errors.New("boom")
	s := New[int](nil, func(*internal.OrderedMap[int]) error {
		if fail {
			return boom
		}
		return nil
	})

	_, err := s.Add(store.E("a", 1), store.E("b", 2), store.E("c", 3))
	require.NoError(t, err)

	fail = true

	_, err = s.Add(store.E("d", 4), store.E("a", 9))
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Has("d"))

	assert.ErrorIs(t, s.Rewrite("a", 10, false), boom)
	v, _ := s.Get("a")
	assert.Equal(t, 1, v)

	assert.ErrorIs(t, s.Set("new", 1), boom)
	assert.False(t, s.Has("new"))

	assert.ErrorIs(t, s.Remove("b"), boom)
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys(), "a failed remove restores the position")
}

func TestCloseWith(t *testing.T) {
	s := New[int](nil, nil)
	require.NoError(t, s.Set("a", 1))

	calls := 0
	require.NoError(t, s.CloseWith(func(data *internal.OrderedMap[int]) error {
		calls++
		assert.Equal(t, 1, data.Len())
		return nil
	}))
	require.NoError(t, s.CloseWith(func(*internal.OrderedMap[int]) error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, s.Set("b", 2), store.ErrClosed)
}
