package search

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesToLastCall(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var ran atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func() {
			ran.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if got := ran.Load(); got != 1 {
		t.Fatalf("callbacks ran = %d, want 1", got)
	}
	if got := last.Load(); got != 5 {
		t.Fatalf("last callback = %d, want 5", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var ran atomic.Int32
	d.Trigger(func() { ran.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)

	if got := ran.Load(); got != 0 {
		t.Fatalf("callbacks ran after Stop = %d, want 0", got)
	}
}

func TestDebouncerZeroWindowRunsSynchronously(t *testing.T) {
	d := NewDebouncer(0)

	ran := false
	d.Trigger(func() { ran = true })

	if !ran {
		t.Fatal("zero window must run the callback before Trigger returns")
	}
}

func TestDebouncerRunsAgainAfterWindow(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	var ran atomic.Int32
	d.Trigger(func() { ran.Add(1) })
	time.Sleep(50 * time.Millisecond)
	d.Trigger(func() { ran.Add(1) })
	time.Sleep(50 * time.Millisecond)

	if got := ran.Load(); got != 2 {
		t.Fatalf("callbacks ran = %d, want 2", got)
	}
}
