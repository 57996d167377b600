// Command stickd serves a stick figure animator over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phanxgames/stickfigure"
	"github.com/phanxgames/stickfigure/config"
	"github.com/phanxgames/stickfigure/server"
)

func main() {
	fs := flag.NewFlagSet("stickd", flag.ExitOnError)
	release := fs.Bool("release", false, "run gin in release mode")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *release {
		gin.SetMode(gin.ReleaseMode)
	}

	sk, lib, err := cfg.Figure.Build()
	if err != nil {
		log.Fatal(err)
	}
	srv := server.New(server.Options{
		Skeleton:    sk,
		Presets:     lib,
		Initial:     cfg.Figure.Origin(),
		Interval:    cfg.Animation.FrameInterval(),
		Duration:    cfg.Animation.Duration(),
		Easing:      cfg.Animation.Easing,
		FrameWidth:  cfg.Server.FrameWidth,
		FrameHeight: cfg.Server.FrameHeight,
		Palette:     stickfigure.PaletteFor(cfg.View.DarkMode),
		Debug:       cfg.View.Debug,
		EnableCORS:  cfg.Server.EnableCORS,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Runner().Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("runner: %v", err)
		}
	}()

	if cfg.Animation.Sequence != "" {
		if err := playFile(ctx, srv.Runner(), cfg.Animation.Sequence); err != nil {
			log.Printf("startup sequence: %v", err)
		}
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("stickd listening on http://%s (%s figure, %d fps)", httpSrv.Addr, sk.Name, cfg.Animation.FPS)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func playFile(ctx context.Context, r *server.Runner, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	seq, err := stickfigure.LoadSequence(data)
	if err != nil {
		return err
	}
	return r.Do(ctx, func(f *server.Figure) error {
		return f.Sequencer.Play(seq)
	})
}
