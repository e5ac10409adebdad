package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestScheduler_CoalescesBurst(t *testing.T) {
	s := New()
	var calls atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 10; i++ {
		s.Schedule("doc", 50*time.Millisecond, func() {
			calls.Add(1)
			last.Store(int32(i))
		})
	}

	time.Sleep(150 * time.Millisecond)

	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
	if last.Load() != 10 {
		t.Errorf("last = %d, want 10 (arguments of the final call)", last.Load())
	}
	if s.Pending("doc") {
		t.Error("Pending after fire = true, want false")
	}
}

func TestScheduler_KeysIndependent(t *testing.T) {
	s := New()
	var a, b atomic.Int32

	s.Schedule("a", 30*time.Millisecond, func() { a.Add(1) })
	for range 5 {
		s.Schedule("b", 30*time.Millisecond, func() { b.Add(1) })
	}

	time.Sleep(120 * time.Millisecond)

	if a.Load() != 1 || b.Load() != 1 {
		t.Errorf("a = %d, b = %d, want 1 each", a.Load(), b.Load())
	}
}

func TestScheduler_TrailingOnly(t *testing.T) {
	s := New()
	var calls atomic.Int32

	s.Schedule("doc", 80*time.Millisecond, func() { calls.Add(1) })
	time.Sleep(20 * time.Millisecond)

	if calls.Load() != 0 {
		t.Fatalf("calls = %d before quiet interval, want 0", calls.Load())
	}
	if !s.Pending("doc") {
		t.Fatal("Pending = false, want true")
	}

	time.Sleep(150 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestScheduler_Cancel(t *testing.T) {
	s := New()
	var calls atomic.Int32

	s.Schedule("doc", 30*time.Millisecond, func() { calls.Add(1) })
	if !s.Cancel("doc") {
		t.Fatal("Cancel = false, want true")
	}
	if s.Cancel("doc") {
		t.Error("second Cancel = true, want false")
	}

	time.Sleep(80 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("calls = %d, want 0 (canceled)", calls.Load())
	}
}

func TestScheduler_Stop(t *testing.T) {
	s := New()
	var calls atomic.Int32

	s.Schedule("a", 30*time.Millisecond, func() { calls.Add(1) })
	s.Schedule("b", 30*time.Millisecond, func() { calls.Add(1) })
	s.Stop()
	s.Schedule("c", 10*time.Millisecond, func() { calls.Add(1) })

	time.Sleep(80 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("calls = %d, want 0 after Stop", calls.Load())
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestScheduler_WithExecutor(t *testing.T) {
	queue := make(chan func(), 4)
	s := New(WithExecutor(func(action func()) { queue <- action }))

	ran := false
	s.Schedule("doc", 10*time.Millisecond, func() { ran = true })

	select {
	case action := <-queue:
		action()
	case <-time.After(time.Second):
		t.Fatal("action was never posted to the executor")
	}
	if !ran {
		t.Error("posted action did not run")
	}
}

func TestScheduler_BurstProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c"}), 1, 20).Draw(rt, "keys")

		s := New()
		var mu sync.Mutex
		got := make(map[string]int)
		runs := make(map[string]int)
		want := make(map[string]int)

		for i, key := range keys {
			want[key] = i
			s.Schedule(key, 15*time.Millisecond, func() {
				mu.Lock()
				got[key] = i
				runs[key]++
				mu.Unlock()
			})
		}

		time.Sleep(60 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		for key, idx := range want {
			if runs[key] != 1 {
				rt.Fatalf("key %s ran %d times, want 1", key, runs[key])
			}
			if got[key] != idx {
				rt.Fatalf("key %s ran call %d, want last call %d", key, got[key], idx)
			}
		}
		if len(runs) != len(want) {
			rt.Fatalf("ran keys %v, want %v", runs, want)
		}
	})
}
