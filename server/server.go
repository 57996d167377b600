// Package server exposes a stick figure animator over HTTP: clients post
// target poses, presets and sequences, read the live pose, stream it as
// server-sent events, or fetch a rendered PNG frame.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/phanxgames/stickfigure"
)

// Options configures a Server.
type Options struct {
	Skeleton    *stickfigure.Skeleton
	Presets     *stickfigure.PresetLibrary
	Initial     stickfigure.Pose // resting pose, usually just the root offset
	Interval    time.Duration    // frame period of the runner
	Duration    time.Duration    // default transition, 0 keeps the animator default
	Easing      string
	FrameWidth  int
	FrameHeight int
	Palette     stickfigure.Palette
	Debug       bool

	EnableCORS  bool
	CORSOrigins []string // empty allows all origins
}

// Server wires a Runner to HTTP handlers.
type Server struct {
	opts      Options
	runner    *Runner
	hub       *Broadcaster
	startedAt time.Time
}

// New creates a server. Call Runner().Run in its own goroutine before
// serving requests.
func New(opts Options) *Server {
	if opts.Skeleton == nil {
		opts.Skeleton = stickfigure.NewHumanSkeleton(1)
	}
	if opts.Presets == nil {
		opts.Presets = stickfigure.HumanPresets()
	}
	if opts.FrameWidth <= 0 || opts.FrameHeight <= 0 {
		opts.FrameWidth, opts.FrameHeight = 640, 480
	}
	if opts.Palette == (stickfigure.Palette{}) {
		opts.Palette = stickfigure.LightPalette
	}

	hub := NewBroadcaster()
	r := NewRunner(opts.Skeleton, opts.Presets, opts.Initial, hub, opts.Interval)
	r.fig.Animator.SetDefaultDuration(opts.Duration)
	r.fig.Animator.SetDebug(opts.Debug)
	if fn, ok := stickfigure.EasingByName(opts.Easing); ok {
		r.fig.Animator.Interpolator().Easing = fn
	}
	return &Server{opts: opts, runner: r, hub: hub, startedAt: time.Now()}
}

// Runner returns the goroutine-owned animation loop.
func (s *Server) Runner() *Runner { return s.runner }

// Broadcaster returns the snapshot hub.
func (s *Server) Broadcaster() *Broadcaster { return s.hub }

// Engine builds a gin engine with the API routes.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if s.opts.EnableCORS {
		r.Use(cors.New(s.corsConfig()))
	}
	s.SetupRoutes(r)
	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.opts.CORSOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.opts.CORSOrigins
	}
	return cfg
}

// SetupRoutes registers the API on r.
func (s *Server) SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/joints", s.handleJoints)

		// Pose control
		api.GET("/pose", s.handleGetPose)
		api.POST("/pose", s.handleSetPose)
		api.POST("/offset", s.handleSetOffset)

		// Presets and sequences
		api.GET("/presets", s.handlePresets)
		api.POST("/preset/:name", s.handlePreset)
		api.POST("/sequence", s.handlePlaySequence)
		api.DELETE("/sequence", s.handleStopSequence)

		// Output
		api.GET("/frame.png", s.handleFrame)
		api.GET("/stream", s.handleStream)
	}
}
