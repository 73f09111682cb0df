// Package timer provides a time-boxed iterator: a sequence of elapsed-time
// values that keeps going for a fixed wall-clock window rather than over a
// collection.
//
// The same Timer can be consumed from several loops. The start time is fixed
// on the first call to Next and is never reset, so a loop that resumes a
// Timer after idling observes the time that passed in between:
//
//	t := timer.New(60*time.Second, timer.WithInterval(time.Second))
//	for elapsed := range t.All() {
//	    if elapsed > 30*time.Second {
//	        break
//	    }
//	}
//	time.Sleep(5 * time.Second)
//	for range t.All() {
//	    // resumes at roughly 35s and runs about 25 more times
//	}
package timer

import (
	"iter"
	"time"
)

// Timer yields the time elapsed since its first use, pausing Interval between
// values, until Timeout is reached. A Timer is not safe for concurrent use.
type Timer struct {
	timeout  time.Duration
	interval time.Duration
	clock    Clock

	start   time.Time
	elapsed time.Duration
	started bool
	done    bool
}

// Option configures a Timer.
type Option func(*Timer)

// WithInterval sets the pause between consecutive values. Negative values
// are treated as zero.
func WithInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(t *Timer) {
		if c != nil {
			t.clock = c
		}
	}
}

// New creates a timer over a window of timeout. With no interval the timer
// yields back to back without pausing.
func New(timeout time.Duration, opts ...Option) *Timer {
	t := &Timer{
		timeout: timeout,
		clock:   SystemClock,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Next returns the next elapsed value and true, or false once the window is
// exhausted. The first call starts the clock and returns 0 without pausing.
// When the next pause would overrun the window the timer stops immediately
// instead of sleeping.
func (t *Timer) Next() (time.Duration, bool) {
	if t.done {
		return 0, false
	}

	if !t.started {
		t.started = true
		t.start = t.clock.Now()
		t.elapsed = 0
		return t.yield()
	}

	if t.elapsed+t.interval > t.timeout {
		t.done = true
		return 0, false
	}

	t.clock.Sleep(t.interval)
	t.elapsed = t.clock.Now().Sub(t.start)
	return t.yield()
}

func (t *Timer) yield() (time.Duration, bool) {
	if t.elapsed >= t.timeout {
		t.done = true
		return 0, false
	}
	return t.elapsed, true
}

// All returns the remaining values as a range-over-func sequence. Breaking
// out of the loop leaves the timer where it was; ranging again resumes it.
func (t *Timer) All() iter.Seq[time.Duration] {
	return func(yield func(time.Duration) bool) {
		for {
			elapsed, ok := t.Next()
			if !ok || !yield(elapsed) {
				return
			}
		}
	}
}

// Elapsed returns the elapsed time measured by the latest call to Next.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Done reports whether the window has been exhausted.
func (t *Timer) Done() bool {
	return t.done
}

// Timeout returns the length of the window.
func (t *Timer) Timeout() time.Duration {
	return t.timeout
}
