package stickfigure

import "time"

// FrameFunc is called once on a display refresh with the frame timestamp.
type FrameFunc func(now time.Time)

// Scheduler runs a callback on the next display refresh.
type Scheduler interface {
	Schedule(fn FrameFunc) FrameHandle
}

// FrameHandle identifies one scheduled callback. The zero value is an
// invalid handle whose Cancel is a no-op.
type FrameHandle struct {
	id     uint64
	cancel func(id uint64)
}

// Cancel prevents the callback from running. Safe to call more than once,
// after the callback ran, and from inside another callback of the same frame.
func (h FrameHandle) Cancel() {
	if h.cancel != nil {
		h.cancel(h.id)
	}
}

// Valid reports whether the handle was returned by a scheduler.
func (h FrameHandle) Valid() bool { return h.cancel != nil }

type pendingFrame struct {
	id uint64
	fn FrameFunc
}

// FrameQueue is a Scheduler driven by the host: callbacks scheduled before
// RunFrame run during it, callbacks scheduled while it runs wait for the
// next RunFrame. The ebiten Update loop, the server's ticker goroutine and
// tests all drive one.
//
// FrameQueue is single-threaded; it must only be used from the goroutine
// that calls RunFrame.
type FrameQueue struct {
	pending []pendingFrame
	running []pendingFrame
	spare   []pendingFrame
	nextID  uint64
	frames  uint64
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Schedule queues fn for the next RunFrame.
func (q *FrameQueue) Schedule(fn FrameFunc) FrameHandle {
	q.nextID++
	q.pending = append(q.pending, pendingFrame{id: q.nextID, fn: fn})
	return FrameHandle{id: q.nextID, cancel: q.cancel}
}

func (q *FrameQueue) cancel(id uint64) {
	for i := range q.pending {
		if q.pending[i].id == id {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = pendingFrame{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
	// Callbacks of the frame in progress are nilled so later entries of the
	// same batch can still be cancelled by earlier ones.
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// RunFrame runs every callback scheduled before this call, in scheduling
// order, and returns how many ran.
func (q *FrameQueue) RunFrame(now time.Time) int {
	q.frames++
	if len(q.pending) == 0 {
		return 0
	}
	q.running, q.pending = q.pending, q.spare[:0]
	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn(now)
		ran++
	}
	for i := range q.running {
		q.running[i] = pendingFrame{}
	}
	q.spare, q.running = q.running[:0], nil
	return ran
}

// Len returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Len() int { return len(q.pending) }

// Frames returns how many times RunFrame has been called.
func (q *FrameQueue) Frames() uint64 { return q.frames }
