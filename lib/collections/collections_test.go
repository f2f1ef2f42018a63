package collections

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type names []string

func TestDeduplicate(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, Deduplicate([]int{3, 1, 3, 2, 1}))
	assert.Nil(t, Deduplicate[[]int](nil))
	assert.Equal(t, []string{}, Deduplicate([]string{}))

	// the named slice type is kept
	res := Deduplicate(names{"b", "a", "b"})
	assert.IsType(t, names{}, res)
	assert.Equal(t, names{"b", "a"}, res)

	in := []int{1, 1}
	_ = Deduplicate(in)
	assert.Equal(t, []int{1, 1}, in, "input is not modified")
}

func TestGetValue(t *testing.T) {
	data := map[string]any{"count": 3, "name": "x"}

	v, ok, err := GetValue[int](data, "count", nil, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	list, ok, err := GetValue(data, "items", func() []string { return []string{"a"} }, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, list)
	assert.Equal(t, []string{"a"}, data["items"], "created values are stored")

	zero, ok, err := GetValue[int](data, "fresh", nil, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, zero)

	_, ok, err = GetValue[int](data, "name", nil, false)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.False(t, ok)
	assert.Equal(t, "x", data["name"])

	_, ok, err = GetValue[int](data, "name", nil, true)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data["name"])
}

func TestLockableMapConcurrentUse(t *testing.T) {
	m := NewLockableMap[string, int]()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Set(fmt.Sprintf("%d-%d", i, j), j)
				m.Locked(func(data map[string]int) {
					data["counter"]++
				})
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 801, m.Len())
	v, ok := m.Get("counter")
	assert.True(t, ok)
	assert.Equal(t, 800, v)

	snap := m.Snapshot()
	snap["counter"] = 0
	v, _ = m.Get("counter")
	assert.Equal(t, 800, v, "snapshots are copies")

	assert.Equal(t, 800, m.SetDefault("counter", 1))
	v, ok = m.Pop("counter")
	assert.True(t, ok)
	assert.Equal(t, 800, v)
	assert.False(t, m.Has("counter"))

	m.Clear()
	assert.Empty(t, m.Keys())
}

func TestLockableList(t *testing.T) {
	l := NewLockableList(1, 2, 3)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Append(j)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 203, l.Len())

	v, ok := l.Get(0)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = l.Get(1000)
	assert.False(t, ok)

	assert.True(t, l.Set(1, 20))
	assert.False(t, l.Set(-1, 0))

	v, ok = l.RemoveAt(0)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	first, _ := l.Get(0)
	assert.Equal(t, 20, first)

	l.Locked(func(items []int) []int { return items[:2] })
	assert.Equal(t, []int{20, 3}, l.Snapshot())

	v, ok = l.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	l.Clear()
	_, ok = l.Pop()
	assert.False(t, ok)
}
