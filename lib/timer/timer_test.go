package timer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(-time.Second)
	assert.ErrorIs(t, err, ErrNegativeDuration)

	_, err = FromHMS(0, 1, -61)
	assert.ErrorIs(t, err, ErrNegativeDuration)

	tm, err := FromHMS(1, -30, 0)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, tm.Delta())
	assert.True(t, tm.Active())
	assert.Equal(t, tm.Start().Add(tm.Delta()), tm.Target())

	zero, err := New(0)
	require.NoError(t, err)
	assert.False(t, zero.Active())
	assert.Zero(t, zero.Remaining())
}

func TestCalcHMS(t *testing.T) {
	assert.Equal(t, HMS{Hours: 1, Minutes: 1, Seconds: 1.5}, CalcHMS(3661.5))
	assert.Equal(t, HMS{Minutes: 2}, CalcHMS(120))
	assert.Equal(t, HMS{}, CalcHMS(0))
	assert.Equal(t, 3661500*time.Millisecond, CalcHMS(3661.5).Duration())
}

func TestString(t *testing.T) {
	assert.Equal(t, "1h 1m 1.5s", CalcHMS(3661.5).String())
	assert.Equal(t, "2h", CalcHMS(7200).String())
	assert.Equal(t, "0s", HMS{}.String())

	tm, err := New(90 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "timer of 1m 30s", tm.String())
}

func TestJoinAndBegin(t *testing.T) {
	tm, err := New(30 * time.Millisecond)
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, tm.Join(context.Background(), 5*time.Millisecond))
	assert.False(t, tm.Active())
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)

	// join on an expired timer returns immediately
	require.NoError(t, tm.Join(context.Background(), 0))

	require.NoError(t, tm.Begin(context.Background(), 0))
	assert.False(t, tm.Active())
}

func TestJoinHonoursContext(t *testing.T) {
	tm, err := New(time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = tm.Join(ctx, time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, tm.Active())
}

func TestTicks(t *testing.T) {
	tm, err := New(50 * time.Millisecond)
	require.NoError(t, err)

	n := 0
	for left := range tm.Ticks(10 * time.Millisecond) {
		assert.Less(t, left.Duration(), 51*time.Millisecond)
		n++
	}
	assert.Positive(t, n)
	assert.False(t, tm.Active())

	// stop early
	tm.Reset()
	n = 0
	for range tm.Ticks(0) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestTicksWithoutSpanWaitsForExpiry(t *testing.T) {
	tm, err := New(40 * time.Millisecond)
	require.NoError(t, err)

	n := 0
	for range tm.Ticks(0) {
		n++
	}
	assert.Equal(t, 1, n)
	assert.False(t, tm.Active())
	assert.GreaterOrEqual(t, time.Since(tm.Start()), 40*time.Millisecond)
}

func TestReset(t *testing.T) {
	tm, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	first := tm.Start()

	time.Sleep(30 * time.Millisecond)
	assert.False(t, tm.Active())

	tm.Reset()
	assert.True(t, tm.Active())
	assert.True(t, tm.Start().After(first))
}
