package countdown

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDefaultStart(t *testing.T) {
	c := New(nil)
	if got := c.Remaining().String(); got != "12:34:56" {
		t.Errorf("Expected 12:34:56, got %s", got)
	}

	if got := c.Tick().String(); got != "12:34:55" {
		t.Errorf("Expected 12:34:55 after one tick, got %s", got)
	}
}

func TestTickWraps(t *testing.T) {
	c := New(&Config{Start: 2 * time.Second})

	want := []string{"00:00:01", "00:00:00", "00:00:02", "00:00:01"}
	for i, w := range want {
		if got := c.Tick().String(); got != w {
			t.Fatalf("Tick %d: expected %s, got %s", i, w, got)
		}
	}

	stats := c.GetStats()
	if stats["wrap_count"].(uint64) != 1 {
		t.Errorf("Expected 1 wrap, got %v", stats["wrap_count"])
	}
	if stats["tick_count"].(uint64) != 4 {
		t.Errorf("Expected 4 ticks, got %v", stats["tick_count"])
	}
}

func TestReset(t *testing.T) {
	c := New(&Config{Start: time.Minute})
	c.Tick()
	c.Tick()
	c.Reset()
	if got := c.Remaining(); got != (Remaining{Minutes: 1}) {
		t.Errorf("Expected 00:01:00 after reset, got %s", got)
	}
}

func TestStartAndClose(t *testing.T) {
	var ticks int64
	c := New(&Config{
		Interval: 5 * time.Millisecond,
		OnTick:   func(Remaining) { atomic.AddInt64(&ticks, 1) },
	})
	c.Start()
	c.Start()

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt64(&ticks) < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	c.Close()
	c.Close()

	n := atomic.LoadInt64(&ticks)
	if n < 3 {
		t.Fatalf("Expected at least 3 ticks, got %d", n)
	}

	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt64(&ticks) != n {
		t.Errorf("Ticks continued after Close")
	}
}

func TestCloseWithoutStart(t *testing.T) {
	c := New(nil)
	c.Close()
}
