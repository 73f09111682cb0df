package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to, or when Sleep is called.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func collect(t *Timer) []time.Duration {
	var out []time.Duration
	for elapsed := range t.All() {
		out = append(out, elapsed)
	}
	return out
}

func TestTimer_IntervalSequence(t *testing.T) {
	clock := newFakeClock()
	tm := New(10*time.Second, WithInterval(3*time.Second), WithClock(clock))

	got := collect(tm)

	assert.Equal(t, []time.Duration{0, 3 * time.Second, 6 * time.Second, 9 * time.Second}, got)
	// 9s + 3s overruns the window, so no final sleep happens.
	assert.Equal(t, []time.Duration{3 * time.Second, 3 * time.Second, 3 * time.Second}, clock.sleeps)
	assert.True(t, tm.Done())
}

func TestTimer_NoSleepBeforeFirstValue(t *testing.T) {
	clock := newFakeClock()
	tm := New(time.Second, WithInterval(100*time.Millisecond), WithClock(clock))

	elapsed, ok := tm.Next()
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), elapsed)
	assert.Empty(t, clock.sleeps)
}

func TestTimer_ExactFitStillStopsAtTimeout(t *testing.T) {
	clock := newFakeClock()
	tm := New(4*time.Second, WithInterval(2*time.Second), WithClock(clock))

	got := collect(tm)

	// elapsed reaches 4s, which equals the timeout and is not yielded
	assert.Equal(t, []time.Duration{0, 2 * time.Second}, got)
	assert.Len(t, clock.sleeps, 2)
}

func TestTimer_ZeroOrNegativeTimeoutYieldsNothing(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		clock := newFakeClock()
		tm := New(timeout, WithClock(clock))
		assert.Empty(t, collect(tm))
		assert.Empty(t, clock.sleeps)
	}
}

func TestTimer_Properties(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		interval time.Duration
		step     time.Duration
	}{
		{name: "no interval", timeout: time.Second, interval: 0, step: 7 * time.Millisecond},
		{name: "small interval", timeout: time.Second, interval: 10 * time.Millisecond, step: time.Millisecond},
		{name: "interval larger than window", timeout: time.Second, interval: 5 * time.Second, step: 0},
		{name: "uneven", timeout: 950 * time.Millisecond, interval: 100 * time.Millisecond, step: 3 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			tm := New(tt.timeout, WithInterval(tt.interval), WithClock(clock))

			var got []time.Duration
			for elapsed := range tm.All() {
				got = append(got, elapsed)
				clock.Advance(tt.step)
			}

			require.NotEmpty(t, got)
			assert.Equal(t, time.Duration(0), got[0])
			for i, v := range got {
				assert.LessOrEqual(t, v, tt.timeout)
				if i > 0 {
					assert.GreaterOrEqual(t, v, got[i-1])
				}
			}
		})
	}
}

func TestTimer_ResumeKeepsBaseline(t *testing.T) {
	clock := newFakeClock()
	tm := New(60*time.Second, WithInterval(time.Second), WithClock(clock))

	var paused time.Duration
	for elapsed := range tm.All() {
		if elapsed > 30*time.Second {
			paused = elapsed
			break
		}
	}
	require.Equal(t, 31*time.Second, paused)
	assert.False(t, tm.Done())

	idle := 5 * time.Second
	clock.Advance(idle)

	var resumed []time.Duration
	for elapsed := range tm.All() {
		resumed = append(resumed, elapsed)
	}

	require.NotEmpty(t, resumed)
	assert.GreaterOrEqual(t, resumed[0], paused+idle)
	assert.Equal(t, 37*time.Second, resumed[0])
	assert.Len(t, resumed, 23)
}

func TestTimer_ExhaustedStaysExhausted(t *testing.T) {
	clock := newFakeClock()
	tm := New(2*time.Second, WithInterval(time.Second), WithClock(clock))

	assert.Len(t, collect(tm), 2)
	assert.Empty(t, collect(tm))

	_, ok := tm.Next()
	assert.False(t, ok)
}

func TestTimer_RealClockBurst(t *testing.T) {
	timeout := 50 * time.Millisecond
	tm := New(timeout)

	start := time.Now()
	got := collect(tm)
	took := time.Since(start)

	require.Greater(t, len(got), 1, "expected a burst of values with no interval")
	assert.Equal(t, time.Duration(0), got[0])
	for i, v := range got {
		assert.Less(t, v, timeout)
		if i > 0 {
			assert.GreaterOrEqual(t, v, got[i-1])
		}
	}
	assert.GreaterOrEqual(t, took, timeout)
	assert.True(t, tm.Done())
}

func TestTimer_RealClockResumeAfterIdle(t *testing.T) {
	tm := New(time.Second, WithInterval(5*time.Millisecond))

	first, ok := tm.Next()
	require.True(t, ok)

	idle := 30 * time.Millisecond
	time.Sleep(idle)

	second, ok := tm.Next()
	require.True(t, ok)
	assert.GreaterOrEqual(t, second, first+idle)
}
