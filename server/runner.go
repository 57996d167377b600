package server

import (
	"context"
	"errors"
	"time"

	"github.com/phanxgames/stickfigure"
)

// ErrStopped is returned by Runner.Do once the runner's loop has exited.
var ErrStopped = errors.New("runner stopped")

// Figure is the animation state a Runner owns. It is only touched from the
// runner goroutine, inside Do callbacks.
type Figure struct {
	Animator  *stickfigure.Animator
	Sequencer *stickfigure.Sequencer
	Presets   *stickfigure.PresetLibrary
}

// Runner is the single goroutine that owns a Figure. It runs the frame
// queue on a ticker and executes submitted commands between frames, so the
// animator never sees concurrent access.
type Runner struct {
	fig      *Figure
	queue    *stickfigure.FrameQueue
	hub      *Broadcaster
	interval time.Duration
	cmds     chan func()
	done     chan struct{}
}

// NewRunner builds a runner for sk resting at initial. Frames are published
// to hub.
func NewRunner(sk *stickfigure.Skeleton, lib *stickfigure.PresetLibrary, initial stickfigure.Pose, hub *Broadcaster, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second / 60
	}
	q := stickfigure.NewFrameQueue()
	anim := stickfigure.NewAnimator(sk, q, initial)
	r := &Runner{
		fig: &Figure{
			Animator:  anim,
			Sequencer: stickfigure.NewSequencer(anim, q, lib),
			Presets:   lib,
		},
		queue:    q,
		hub:      hub,
		interval: interval,
		cmds:     make(chan func()),
		done:     make(chan struct{}),
	}
	anim.OnFrame = func(f stickfigure.Frame) {
		hub.Publish(r.snapshot(f.Done))
	}
	return r
}

// Run ticks frames until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.hub.Publish(r.snapshot(true))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			r.queue.RunFrame(now)
		case cmd := <-r.cmds:
			cmd()
		}
	}
}

// Do runs fn on the runner goroutine and returns its error.
func (r *Runner) Do(ctx context.Context, fn func(*Figure) error) error {
	errc := make(chan error, 1)
	select {
	case r.cmds <- func() { errc <- fn(r.fig) }:
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current state, read on the runner goroutine.
func (r *Runner) Snapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	err := r.Do(ctx, func(*Figure) error {
		s = r.snapshot(r.fig.Animator.State() == stickfigure.Idle)
		return nil
	})
	return s, err
}

// Transforms returns a copy of the last rendered transforms.
func (r *Runner) Transforms(ctx context.Context) ([]stickfigure.SegmentTransform, error) {
	var out []stickfigure.SegmentTransform
	err := r.Do(ctx, func(f *Figure) error {
		out = append(out, f.Animator.Transforms()...)
		return nil
	})
	return out, err
}

func (r *Runner) snapshot(done bool) Snapshot {
	a := r.fig.Animator
	step := -1
	if r.fig.Sequencer.Running() {
		step = r.fig.Sequencer.Index()
	}
	return Snapshot{
		Frame:  a.Frames(),
		Live:   a.Pose().Clone(),
		Target: a.Target().Clone(),
		State:  a.State().String(),
		Done:   done,
		Step:   step,
	}
}
