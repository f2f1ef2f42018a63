package timer

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"strings"
	"sync"
	"time"
)

// ErrNegativeDuration is returned when a timer is created with a negative duration.
var ErrNegativeDuration = errors.New("timer duration must not be negative")

// --------------------------------------------------------------------------
// HMS
// --------------------------------------------------------------------------

// HMS is a duration split into hours, minutes and (fractional) seconds.
type HMS struct {
	Hours   int
	Minutes int
	Seconds float64
}

// CalcHMS splits seconds into hours, minutes and seconds.
func CalcHMS(seconds float64) HMS {
	m, s := math.Floor(seconds/60), math.Mod(seconds, 60)
	if s < 0 {
		s += 60
	}
	h, m := math.Floor(m/60), math.Mod(m, 60)
	if m < 0 {
		m += 60
	}
	return HMS{Hours: int(h), Minutes: int(m), Seconds: s}
}

// Duration converts the HMS back into a time.Duration.
func (h HMS) Duration() time.Duration {
	return time.Duration(h.Hours)*time.Hour +
		time.Duration(h.Minutes)*time.Minute +
		time.Duration(h.Seconds*float64(time.Second))
}

// String formats the non-zero parts, e.g. "1h 30s".
func (h HMS) String() string {
	var parts []string
	if h.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h.Hours))
	}
	if h.Minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", h.Minutes))
	}
	if h.Seconds > 0 || len(parts) == 0 {
		parts = append(parts, strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", h.Seconds), "0"), ".")+"s")
	}
	return strings.Join(parts, " ")
}

// --------------------------------------------------------------------------
// Timer
// --------------------------------------------------------------------------

// Timer measures a fixed duration from its start time.
// A timer is active until the duration has elapsed since creation or the last Reset.
//
// Thread-safety: All methods are thread-safe.
type Timer struct {
	mu     sync.RWMutex
	delta  time.Duration
	start  time.Time
	target time.Time
}

// New creates a timer of duration d that starts immediately.
func New(d time.Duration) (*Timer, error) {
	if d < 0 {
		return nil, fmt.Errorf("%w (%.2fs)", ErrNegativeDuration, d.Seconds())
	}
	t := &Timer{delta: d}
	t.Reset()
	return t, nil
}

// FromHMS creates a timer of h hours, m minutes and s seconds.
// Parts may be negative as long as the sum is not.
func FromHMS(h, m int, s float64) (*Timer, error) {
	return New(HMS{Hours: h, Minutes: m, Seconds: s}.Duration())
}

// Reset restarts the timer at the current time.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start = time.Now()
	t.target = t.start.Add(t.delta)
}

// Delta returns the duration of the timer.
func (t *Timer) Delta() time.Duration {
	return t.delta
}

// Start returns the time the timer was started at.
func (t *Timer) Start() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.start
}

// Target returns the time the timer expires at.
func (t *Timer) Target() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.target
}

// Remaining returns the time left until the timer expires, never less than zero.
func (t *Timer) Remaining() time.Duration {
	return max(time.Until(t.Target()), 0)
}

// Active reports whether the timer has not yet expired.
func (t *Timer) Active() bool {
	return t.Remaining() > 0
}

// Join blocks until the timer expires or ctx is done.
// The expiry is checked every span, a span <= 0 waits for the exact remaining time.
// Unlike Begin, Join does not restart the timer.
func (t *Timer) Join(ctx context.Context, span time.Duration) error {
	for {
		remaining := t.Remaining()
		if remaining <= 0 {
			return nil
		}
		wait := remaining
		if span > 0 && span < wait {
			wait = span
		}

		sleep := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			sleep.Stop()
			return ctx.Err()
		case <-sleep.C:
		}
	}
}

// Begin restarts the timer and blocks until it expires (see Join).
func (t *Timer) Begin(ctx context.Context, span time.Duration) error {
	t.Reset()
	return t.Join(ctx, span)
}

// Ticks yields the remaining time every span until the timer expires.
// It allows work between checks, e.g. printing a countdown:
//
//	for left := range t.Ticks(time.Second) {
//		fmt.Println(left)
//	}
//
// A span <= 0 yields once and then waits for the timer to expire.
// The timer is not restarted.
func (t *Timer) Ticks(span time.Duration) iter.Seq[HMS] {
	return func(yield func(HMS) bool) {
		for {
			remaining := t.Remaining()
			if remaining <= 0 {
				return
			}
			if !yield(CalcHMS(remaining.Seconds())) {
				return
			}
			wait := t.Remaining()
			if span > 0 {
				wait = min(span, wait)
			}
			time.Sleep(wait)
		}
	}
}

// String describes the timer, e.g. "timer of 1h 30s".
func (t *Timer) String() string {
	return "timer of " + CalcHMS(t.delta.Seconds()).String()
}
