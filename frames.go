package stickfigure

import (
	"errors"
	"image"
	"time"

	"github.com/tanema/gween/ease"
)

// ErrFrameLimit is returned by ExportFrames when the animation is still
// running after MaxFrames frames, as a looping sequence always is.
var ErrFrameLimit = errors.New("frame limit reached")

// ExportOptions configures ExportFrames.
type ExportOptions struct {
	FPS       int // default 30
	MaxFrames int // default 600
	Duration  time.Duration
	Easing    ease.TweenFunc
	Raster    RasterOptions
}

// ExportFrames plays seq on a fresh animator for sk against a simulated
// clock and hands every rendered frame to emit, in order. The first frame
// shows initial. It returns the number of frames emitted.
func ExportFrames(sk *Skeleton, lib *PresetLibrary, initial Pose, seq *Sequence, opts ExportOptions, emit func(i int, img *image.RGBA) error) (int, error) {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = 600
	}
	interval := time.Second / time.Duration(opts.FPS)

	q := NewFrameQueue()
	anim := NewAnimator(sk, q, initial)
	if opts.Duration > 0 {
		anim.SetDefaultDuration(opts.Duration)
	}
	if opts.Easing != nil {
		anim.Interpolator().Easing = opts.Easing
	}
	seqr := NewSequencer(anim, q, lib)

	now := time.Unix(0, 0)
	if err := emit(0, Rasterize(anim.Transforms(), opts.Raster)); err != nil {
		return 0, err
	}
	if err := seqr.Play(seq); err != nil {
		return 1, err
	}

	n := 1
	for seqr.Running() || anim.State() != Idle {
		if n >= opts.MaxFrames {
			return n, ErrFrameLimit
		}
		now = now.Add(interval)
		q.RunFrame(now)
		if err := emit(n, Rasterize(anim.Transforms(), opts.Raster)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
