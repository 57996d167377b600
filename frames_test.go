package stickfigure

import (
	"errors"
	"image"
	"testing"
)

func TestExportFramesDemo(t *testing.T) {
	var got []int
	n, err := ExportFrames(NewHumanSkeleton(1), HumanPresets(), Pose{JointX: 100, JointY: 150}, DemoSequence(),
		ExportOptions{FPS: 30, Raster: RasterOptions{Width: 200, Height: 200}},
		func(i int, img *image.RGBA) error {
			if img.Bounds().Dx() != 200 {
				t.Errorf("frame %d width = %d", i, img.Bounds().Dx())
			}
			got = append(got, i)
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if n != len(got) {
		t.Fatalf("returned %d, emitted %d", n, len(got))
	}
	// 300ms of motion and holds at 30 fps, plus settling frames.
	if n < 8 || n > 20 {
		t.Errorf("frames = %d", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("frame order %v", got)
		}
	}
}

func TestExportFramesLoopHitsLimit(t *testing.T) {
	seq := DemoSequence()
	seq.Loop = true
	n, err := ExportFrames(NewHumanSkeleton(1), HumanPresets(), nil, seq,
		ExportOptions{MaxFrames: 25, Raster: RasterOptions{Width: 50, Height: 50}},
		func(int, *image.RGBA) error { return nil })
	if !errors.Is(err, ErrFrameLimit) {
		t.Fatalf("err = %v", err)
	}
	if n != 25 {
		t.Errorf("frames = %d, want 25", n)
	}
}

func TestExportFramesStopsOnEmitError(t *testing.T) {
	boom := errors.New("disk full")
	n, err := ExportFrames(NewHumanSkeleton(1), HumanPresets(), nil, DemoSequence(), ExportOptions{},
		func(i int, _ *image.RGBA) error {
			if i == 2 {
				return boom
			}
			return nil
		})
	if !errors.Is(err, boom) || n != 2 {
		t.Errorf("n = %d, err = %v", n, err)
	}
}

func TestExportFramesRejectsUnknownPreset(t *testing.T) {
	seq := &Sequence{Steps: []Step{{Preset: "moonwalk"}}}
	_, err := ExportFrames(NewHumanSkeleton(1), HumanPresets(), nil, seq, ExportOptions{},
		func(int, *image.RGBA) error { return nil })
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("err = %v", err)
	}
}
