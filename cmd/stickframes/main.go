// Command stickframes renders a sequence to numbered PNG frames without a
// window, for turning into a GIF or video with an external tool.
package main

import (
	"flag"
	"image"
	"log"
	"os"

	"github.com/phanxgames/stickfigure"
	"github.com/phanxgames/stickfigure/config"
)

func main() {
	fs := flag.NewFlagSet("stickframes", flag.ExitOnError)
	out := fs.String("out", "frames", "output directory")
	label := fs.String("label", "", "frame file prefix (defaults to the sequence name)")
	maxFrames := fs.Int("max", 600, "stop after this many frames")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sk, lib, err := cfg.Figure.Build()
	if err != nil {
		log.Fatal(err)
	}
	seq := stickfigure.DemoSequence()
	if cfg.Animation.Sequence != "" {
		data, err := os.ReadFile(cfg.Animation.Sequence)
		if err != nil {
			log.Fatalf("read sequence: %v", err)
		}
		if seq, err = stickfigure.LoadSequence(data); err != nil {
			log.Fatal(err)
		}
	}
	if *label == "" {
		*label = seq.Name
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal(err)
	}

	easing, _ := stickfigure.EasingByName(cfg.Animation.Easing)
	n, err := stickfigure.ExportFrames(sk, lib, cfg.Figure.Origin(), seq, stickfigure.ExportOptions{
		FPS:       cfg.Animation.FPS,
		MaxFrames: *maxFrames,
		Duration:  cfg.Animation.Duration(),
		Easing:    easing,
		Raster: stickfigure.RasterOptions{
			Width:       cfg.View.Width,
			Height:      cfg.View.Height,
			Palette:     stickfigure.PaletteFor(cfg.View.DarkMode),
			Decorations: true,
			Debug:       cfg.View.Debug,
		},
	}, func(i int, img *image.RGBA) error {
		return stickfigure.WritePNG(stickfigure.FrameFileName(*out, *label, i), img)
	})
	if err != nil {
		log.Fatalf("after %d frames: %v", n, err)
	}
	log.Printf("wrote %d frames to %s", n, *out)
}
