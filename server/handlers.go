package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phanxgames/stickfigure"
)

func errorJSON(c *gin.Context, code int, msg string) {
	c.JSON(code, APIResponse{Status: "error", Error: msg})
}

// duration resolves an optional request duration against the default.
func duration(ms *int, def time.Duration) time.Duration {
	if ms == nil {
		return def
	}
	if *ms <= 0 {
		return 0
	}
	return time.Duration(*ms) * time.Millisecond
}

// handleHealth reports liveness and uptime.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Message: "stickfigure server is running",
		Data: map[string]any{
			"figure":      s.opts.Skeleton.Name,
			"uptime":      time.Since(s.startedAt).String(),
			"subscribers": s.hub.Subscribers(),
		},
	})
}

// handleJoints lists the joints of the served skeleton.
func (s *Server) handleJoints(c *gin.Context) {
	specs := s.opts.Skeleton.Joints().Specs()
	out := make([]JointInfo, len(specs))
	for i, sp := range specs {
		out[i] = JointInfo{
			Name:    string(sp.Name),
			Kind:    sp.Kind.String(),
			Min:     sp.Min,
			Max:     sp.Max,
			Neutral: sp.Neutral,
		}
	}
	c.JSON(http.StatusOK, APIResponse{Status: "success", Data: out})
}

func (s *Server) handleGetPose(c *gin.Context) {
	snap, err := s.runner.Snapshot(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	c.JSON(http.StatusOK, APIResponse{Status: "success", Data: snap})
}

// handleSetPose retargets the figure. A running sequence is stopped first so
// the posted pose is not immediately overridden. Keys outside the skeleton's
// joint set are ignored and listed under "ignored".
func (s *Server) handleSetPose(c *gin.Context) {
	var req PoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid pose: "+err.Error())
		return
	}
	// Unknown joints are dropped by the animator; report them so clients
	// can spot typos.
	ignored := []stickfigure.Joint{}
	for k := range req.Pose {
		if !s.opts.Skeleton.Joints().Contains(k) {
			ignored = append(ignored, k)
		}
	}
	slices.Sort(ignored)

	var changed bool
	err := s.runner.Do(c.Request.Context(), func(f *Figure) error {
		f.Sequencer.Stop()
		changed = f.Animator.SetTarget(req.Pose, duration(req.DurationMs, f.Animator.DefaultDuration()))
		return nil
	})
	if err != nil {
		errorJSON(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Message: "target pose set",
		Data:    map[string]any{"changed": changed, "pose": req.Pose, "ignored": ignored},
	})
}

func (s *Server) handleSetOffset(c *gin.Context) {
	var req OffsetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid offset: "+err.Error())
		return
	}
	err := s.runner.Do(c.Request.Context(), func(f *Figure) error {
		f.Animator.SetOffset(req.X, req.Y, duration(req.DurationMs, f.Animator.DefaultDuration()))
		return nil
	})
	if err != nil {
		errorJSON(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Message: "offset set",
		Data:    map[string]any{"x": req.X, "y": req.Y},
	})
}

func (s *Server) handlePresets(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{Status: "success", Data: s.opts.Presets.Names()})
}

// handlePreset animates to a named preset. The body is optional.
func (s *Server) handlePreset(c *gin.Context) {
	name := c.Param("name")
	var req PresetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorJSON(c, http.StatusBadRequest, "invalid preset request: "+err.Error())
			return
		}
	}
	err := s.runner.Do(c.Request.Context(), func(f *Figure) error {
		p, err := f.Presets.Get(name)
		if err != nil {
			return err
		}
		f.Sequencer.Stop()
		f.Animator.SetTarget(p, duration(req.DurationMs, f.Animator.DefaultDuration()))
		return nil
	})
	switch {
	case errors.Is(err, stickfigure.ErrUnknownPreset):
		errorJSON(c, http.StatusNotFound, err.Error())
		return
	case err != nil:
		errorJSON(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Message: fmt.Sprintf("preset %s applied", name),
		Data:    map[string]any{"preset": name},
	})
}

// handlePlaySequence accepts a sequence as JSON or YAML.
func (s *Server) handlePlaySequence(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	seq, err := stickfigure.LoadSequence(body)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	var playErr error
	err = s.runner.Do(c.Request.Context(), func(f *Figure) error {
		playErr = f.Sequencer.Play(seq)
		return nil
	})
	if err != nil {
		errorJSON(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	if playErr != nil {
		errorJSON(c, http.StatusBadRequest, playErr.Error())
		return
	}
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Message: "sequence started",
		Data:    map[string]any{"name": seq.Name, "steps": len(seq.Steps), "loop": seq.Loop},
	})
}

func (s *Server) handleStopSequence(c *gin.Context) {
	err := s.runner.Do(c.Request.Context(), func(f *Figure) error {
		f.Sequencer.Stop()
		return nil
	})
	if err != nil {
		errorJSON(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	c.JSON(http.StatusOK, APIResponse{Status: "success", Message: "sequence stopped"})
}

// handleFrame renders the current pose to PNG. Query "debug=1" draws pivots
// and labels.
func (s *Server) handleFrame(c *gin.Context) {
	transforms, err := s.runner.Transforms(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	opts := stickfigure.DefaultRasterOptions()
	opts.Width, opts.Height = s.opts.FrameWidth, s.opts.FrameHeight
	opts.Palette = s.opts.Palette
	opts.Debug = s.opts.Debug || c.Query("debug") == "1"

	var buf bytes.Buffer
	if err := stickfigure.EncodePNG(&buf, stickfigure.Rasterize(transforms, opts)); err != nil {
		errorJSON(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// handleStream sends a "pose" event for every published snapshot until the
// client disconnects.
func (s *Server) handleStream(c *gin.Context) {
	ch, cancel := s.hub.Subscribe()
	defer cancel()
	ctx := c.Request.Context()

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("pose", snap)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
