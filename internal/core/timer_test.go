package core

import (
	"testing"
	"time"
)

func TestTickerFiresAtInterval(t *testing.T) {
	clock := &ManualClock{}
	ticks := 0
	tk := NewTicker(clock, 10*time.Millisecond, func(uint64) bool {
		ticks++
		return true
	})
	if !tk.Start() {
		t.Fatal("Start on stopped ticker should succeed")
	}
	if tk.Start() {
		t.Fatal("second Start should report already running")
	}
	clock.Advance(35 * time.Millisecond)
	if ticks != 3 {
		t.Fatalf("ticks = %d, want 3", ticks)
	}
	if clock.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", clock.Pending())
	}
}

func TestTickerStopCancelsPending(t *testing.T) {
	clock := &ManualClock{}
	ticks := 0
	tk := NewTicker(clock, 10*time.Millisecond, func(uint64) bool {
		ticks++
		return true
	})
	tk.Start()
	clock.Advance(10 * time.Millisecond)
	if !tk.Stop() {
		t.Fatal("Stop on running ticker should succeed")
	}
	if tk.Stop() {
		t.Fatal("second Stop should report already stopped")
	}
	clock.Advance(time.Second)
	if ticks != 1 {
		t.Fatalf("ticks after stop = %d, want 1", ticks)
	}
	if tk.Running() {
		t.Fatal("ticker still running")
	}
}

func TestTickerStopFromTick(t *testing.T) {
	clock := &ManualClock{}
	var tk *Ticker
	ticks := 0
	tk = NewTicker(clock, time.Millisecond, func(uint64) bool {
		ticks++
		if ticks == 2 {
			tk.Stop()
		}
		return true
	})
	tk.Start()
	clock.Advance(10 * time.Millisecond)
	if ticks != 2 {
		t.Fatalf("ticks = %d, want 2", ticks)
	}
}

func TestTickerFalseStops(t *testing.T) {
	clock := &ManualClock{}
	ticks := 0
	tk := NewTicker(clock, time.Millisecond, func(uint64) bool {
		ticks++
		return ticks < 4
	})
	tk.Start()
	clock.Advance(time.Second)
	if ticks != 4 || tk.Running() {
		t.Fatalf("ticks = %d running = %v, want 4 false", ticks, tk.Running())
	}
}

func TestTickerSetIntervalReschedules(t *testing.T) {
	clock := &ManualClock{}
	ticks := 0
	tk := NewTicker(clock, 100*time.Millisecond, func(uint64) bool {
		ticks++
		return true
	})
	tk.Start()
	clock.Advance(50 * time.Millisecond)
	tk.SetInterval(10 * time.Millisecond)
	clock.Advance(25 * time.Millisecond)
	if ticks != 2 {
		t.Fatalf("ticks = %d, want 2", ticks)
	}
	if tk.Interval() != 10*time.Millisecond {
		t.Fatalf("interval = %v", tk.Interval())
	}
	if clock.Pending() != 1 {
		t.Fatalf("stale timer left pending: %d", clock.Pending())
	}
}

func TestTickerCurrent(t *testing.T) {
	clock := &ManualClock{}
	var tk *Ticker
	var seen []bool
	tk = NewTicker(clock, time.Millisecond, func(epoch uint64) bool {
		seen = append(seen, tk.Current(epoch))
		return true
	})
	tk.Start()
	clock.Advance(time.Millisecond)
	if len(seen) != 1 || !seen[0] {
		t.Fatalf("tick should be current: %v", seen)
	}
	if tk.Current(0) {
		t.Fatal("epoch 0 is never current")
	}
}

func TestTickerRestartDropsStaleFire(t *testing.T) {
	clock := &ManualClock{}
	ticks := 0
	tk := NewTicker(clock, 10*time.Millisecond, func(uint64) bool {
		ticks++
		return true
	})
	tk.Start()
	tk.Stop()
	tk.Start()
	clock.Advance(10 * time.Millisecond)
	if ticks != 1 {
		t.Fatalf("ticks = %d, want 1", ticks)
	}
}
