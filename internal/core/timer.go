package core

import (
	"sync"
	"time"
)

// Timer is a pending callback scheduled by a Clock.
type Timer interface {
	// Stop cancels the callback and reports whether it was still pending.
	Stop() bool
}

// Clock schedules callbacks. SystemClock uses real time; ManualClock lets
// tests drive time explicitly.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock schedules callbacks with time.AfterFunc.
type SystemClock struct{}

// AfterFunc implements Clock.
func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Ticker calls a tick function at a fixed interval until stopped. Every tick
// is scheduled only after the previous one returned, so ticks never overlap.
//
// A tick fired by a timer that was cancelled, or that belongs to an earlier
// Start, is dropped. The tick function is never called with the ticker's
// lock held, so it may call back into Stop or SetInterval. It receives the
// epoch it was scheduled under; callers that serialize ticks behind their own
// lock use Current to discard a tick that lost a race with Stop.
type Ticker struct {
	clock Clock
	tick  func(epoch uint64) bool

	mu       sync.Mutex
	interval time.Duration
	running  bool
	epoch    uint64
	timer    Timer
}

// NewTicker creates a stopped ticker. tick returns false to stop ticking.
func NewTicker(clock Clock, interval time.Duration, tick func(epoch uint64) bool) *Ticker {
	if clock == nil {
		clock = SystemClock{}
	}
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Ticker{clock: clock, tick: tick, interval: interval}
}

// Start begins ticking. It returns false when already running.
func (t *Ticker) Start() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return false
	}
	t.running = true
	t.scheduleLocked()
	return true
}

// Stop cancels the pending tick. It returns false when already stopped.
func (t *Ticker) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return false
	}
	t.running = false
	t.epoch++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	return true
}

// Running reports whether ticks are being scheduled.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Current reports whether a tick scheduled under epoch is still wanted.
func (t *Ticker) Current(epoch uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running && t.epoch == epoch
}

// Interval returns the current tick interval.
func (t *Ticker) Interval() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.interval
}

// SetInterval changes the tick interval. A running ticker cancels its pending
// tick and reschedules with the new interval.
func (t *Ticker) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interval = d
	if !t.running {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	t.scheduleLocked()
}

func (t *Ticker) scheduleLocked() {
	t.epoch++
	epoch := t.epoch
	t.timer = t.clock.AfterFunc(t.interval, func() { t.fire(epoch) })
}

func (t *Ticker) fire(epoch uint64) {
	t.mu.Lock()
	if !t.running || t.epoch != epoch {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	more := t.tick(epoch)

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running || t.epoch != epoch {
		return
	}
	if !more {
		t.running = false
		t.epoch++
		return
	}
	t.scheduleLocked()
}

// ManualClock is a Clock whose time only moves when Advance is called.
// Callbacks run synchronously on the goroutine calling Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	at    time.Duration
	f     func()
	done  bool
}

// Stop implements Timer.
func (m *manualTimer) Stop() bool {
	m.clock.mu.Lock()
	defer m.clock.mu.Unlock()
	pending := !m.done
	m.done = true
	return pending
}

// AfterFunc implements Clock.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, m)
	return m
}

// Advance moves time forward by d, running every callback that falls due in
// order. Callbacks scheduled while advancing run too when they fall inside
// the window. It returns the number of callbacks run.
func (c *ManualClock) Advance(d time.Duration) int {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	fired := 0
	for {
		c.mu.Lock()
		var next *manualTimer
		live := c.timers[:0]
		for _, m := range c.timers {
			if m.done {
				continue
			}
			live = append(live, m)
			if m.at <= target && (next == nil || m.at < next.at) {
				next = m
			}
		}
		c.timers = live
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return fired
		}
		next.done = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
		fired++
	}
}

// Now returns the elapsed manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of scheduled callbacks.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range c.timers {
		if !m.done {
			n++
		}
	}
	return n
}
