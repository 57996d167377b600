package stickfigure

import (
	"testing"
	"time"
)

func TestFrameQueueRunsInOrder(t *testing.T) {
	q := NewFrameQueue()
	var got []int
	for i := 0; i < 3; i++ {
		q.Schedule(func(time.Time) { got = append(got, i) })
	}
	if n := q.RunFrame(t0); n != 3 {
		t.Errorf("ran %d, want 3", n)
	}
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("order = %v", got)
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d after run", q.Len())
	}
}

func TestFrameQueueDefersNestedSchedule(t *testing.T) {
	q := NewFrameQueue()
	calls := 0
	var fn FrameFunc
	fn = func(time.Time) {
		calls++
		q.Schedule(fn)
	}
	q.Schedule(fn)
	q.RunFrame(t0)
	q.RunFrame(t0)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if q.Frames() != 2 {
		t.Errorf("Frames = %d", q.Frames())
	}
}

func TestFrameHandleCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	h := q.Schedule(func(time.Time) { ran = true })
	h.Cancel()
	h.Cancel()
	q.RunFrame(t0)
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestFrameHandleCancelWithinFrame(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	var second FrameHandle
	q.Schedule(func(time.Time) { second.Cancel() })
	second = q.Schedule(func(time.Time) { ran = true })
	if n := q.RunFrame(t0); n != 1 {
		t.Errorf("ran %d, want 1", n)
	}
	if ran {
		t.Error("callback cancelled earlier in the frame still ran")
	}
}

func TestZeroFrameHandle(t *testing.T) {
	var h FrameHandle
	if h.Valid() {
		t.Error("zero handle valid")
	}
	h.Cancel()
}
