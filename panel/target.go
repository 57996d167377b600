package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phanxgames/stickfigure"
	"github.com/phanxgames/stickfigure/server"
)

// Target receives the poses edited in the panel.
type Target interface {
	SetPose(ctx context.Context, pose stickfigure.Pose, d time.Duration) error
	ApplyPreset(ctx context.Context, name string, d time.Duration) error
}

// LocalTarget drives an in-process animator. Its frame queue is advanced by
// the panel's own tick messages, so the animator stays on the bubbletea
// update goroutine.
type LocalTarget struct {
	Animator *stickfigure.Animator
	Queue    *stickfigure.FrameQueue
	Presets  *stickfigure.PresetLibrary
}

// NewLocalTarget creates an animator for sk with its own frame queue.
func NewLocalTarget(sk *stickfigure.Skeleton, lib *stickfigure.PresetLibrary) *LocalTarget {
	q := stickfigure.NewFrameQueue()
	return &LocalTarget{
		Animator: stickfigure.NewAnimator(sk, q, nil),
		Queue:    q,
		Presets:  lib,
	}
}

// SetPose retargets the animator.
func (t *LocalTarget) SetPose(_ context.Context, pose stickfigure.Pose, d time.Duration) error {
	t.Animator.SetTarget(pose, d)
	return nil
}

// ApplyPreset retargets the animator to a named preset.
func (t *LocalTarget) ApplyPreset(_ context.Context, name string, d time.Duration) error {
	p, err := t.Presets.Get(name)
	if err != nil {
		return err
	}
	t.Animator.SetTarget(p, d)
	return nil
}

// Tick runs one frame of the local animator.
func (t *LocalTarget) Tick(now time.Time) {
	t.Queue.RunFrame(now)
}

// Live returns the animator's current pose.
func (t *LocalTarget) Live() stickfigure.Pose { return t.Animator.Pose() }

// HTTPTarget posts poses to a stickfigure server.
type HTTPTarget struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPTarget creates a target for the server at baseURL.
func NewHTTPTarget(baseURL string) *HTTPTarget {
	return &HTTPTarget{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// SetPose posts to /api/pose.
func (t *HTTPTarget) SetPose(ctx context.Context, pose stickfigure.Pose, d time.Duration) error {
	ms := int(d / time.Millisecond)
	return t.post(ctx, "/api/pose", server.PoseRequest{Pose: pose, DurationMs: &ms})
}

// ApplyPreset posts to /api/preset/:name.
func (t *HTTPTarget) ApplyPreset(ctx context.Context, name string, d time.Duration) error {
	ms := int(d / time.Millisecond)
	return t.post(ctx, "/api/preset/"+url.PathEscape(name), server.PresetRequest{DurationMs: &ms})
}

func (t *HTTPTarget) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	var apiResp server.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK || apiResp.Status != "success" {
		return fmt.Errorf("post %s: %s (%d)", path, apiResp.Error, resp.StatusCode)
	}
	return nil
}
