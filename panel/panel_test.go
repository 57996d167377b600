package panel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/phanxgames/stickfigure"
	"github.com/phanxgames/stickfigure/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTarget struct {
	poses   []stickfigure.Pose
	presets []string
	err     error
}

func (r *recordingTarget) SetPose(_ context.Context, p stickfigure.Pose, _ time.Duration) error {
	r.poses = append(r.poses, p)
	return r.err
}

func (r *recordingTarget) ApplyPreset(_ context.Context, name string, _ time.Duration) error {
	r.presets = append(r.presets, name)
	return r.err
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

func newPanel(target Target) Model {
	return New(stickfigure.NewHumanSkeleton(1), stickfigure.HumanPresets(), target, 100*time.Millisecond)
}

// TestPanel_Navigation tests cursor movement and bounds
func TestPanel_Navigation(t *testing.T) {
	m := newPanel(&recordingTarget{})
	assert.Equal(t, stickfigure.JointX, m.Selected())

	m, _ = press(t, m, "up")
	assert.Equal(t, stickfigure.JointX, m.Selected())

	m, _ = press(t, m, "down", "j", "j", "k")
	assert.Equal(t, stickfigure.HumanRotation, m.Selected())
}

// TestPanel_AdjustWrapsAngular tests value editing
func TestPanel_AdjustWrapsAngular(t *testing.T) {
	m := newPanel(&recordingTarget{})
	m, _ = press(t, m, "down", "down", "down") // headRotation
	require.Equal(t, stickfigure.HeadRotation, m.Selected())

	m, _ = press(t, m, "left")
	assert.Equal(t, 355.0, m.Pose()[stickfigure.HeadRotation])

	m, _ = press(t, m, "]", "right", "l")
	assert.Equal(t, 15.0, m.Step())
	assert.Equal(t, 25.0, m.Pose()[stickfigure.HeadRotation])

	m, _ = press(t, m, "[", "[", "[", "[")
	assert.Equal(t, 1.0, m.Step())
}

// TestPanel_AdjustClampsLinear tests linear joints are not wrapped
func TestPanel_AdjustClampsLinear(t *testing.T) {
	m := newPanel(&recordingTarget{})
	m, _ = press(t, m, "h")
	assert.Equal(t, -5.0, m.Pose()[stickfigure.JointX])
}

// TestPanel_EnterSendsPose tests that enter sends the edited pose
func TestPanel_EnterSendsPose(t *testing.T) {
	rec := &recordingTarget{}
	m := newPanel(rec)
	m, _ = press(t, m, "down", "down", "down", "right")
	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)

	msg := cmd()
	require.Len(t, rec.poses, 1)
	assert.Equal(t, 5.0, rec.poses[0][stickfigure.HeadRotation])

	next, _ := m.Update(msg)
	assert.Equal(t, "sent pose", next.(Model).Status())
}

// TestPanel_SendFailure tests error reporting
func TestPanel_SendFailure(t *testing.T) {
	rec := &recordingTarget{err: errors.New("boom")}
	m := newPanel(rec)
	m, cmd := press(t, m, "enter")
	next, _ := m.Update(cmd())
	assert.Equal(t, "send failed", next.(Model).Status())
	assert.Contains(t, next.(Model).View(), "boom")
}

// TestPanel_PresetCycle tests preset selection
func TestPanel_PresetCycle(t *testing.T) {
	rec := &recordingTarget{}
	m := newPanel(rec)
	m, cmd := press(t, m, "p", "p")
	cmd()
	assert.Equal(t, []string{stickfigure.PresetRun}, rec.presets)
	assert.Equal(t, 320.0, m.Pose()[stickfigure.HumanRotation])
}

// TestPanel_Reset tests returning to neutral while keeping the offset
func TestPanel_Reset(t *testing.T) {
	rec := &recordingTarget{}
	m := newPanel(rec)
	m, _ = press(t, m, "l", "p", "p")
	m, cmd := press(t, m, "r")
	cmd()
	assert.Equal(t, 0.0, m.Pose()[stickfigure.HumanRotation])
	assert.Equal(t, 5.0, m.Pose()[stickfigure.JointX])
	require.NotEmpty(t, rec.poses)
}

// TestPanel_Quit tests quitting
func TestPanel_Quit(t *testing.T) {
	m := newPanel(&recordingTarget{})
	m, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

// TestPanel_LocalTargetTicks tests that tick messages animate a local target
func TestPanel_LocalTargetTicks(t *testing.T) {
	sk := stickfigure.NewHumanSkeleton(1)
	local := NewLocalTarget(sk, stickfigure.HumanPresets())
	m := New(sk, stickfigure.HumanPresets(), local, 0)
	require.NotNil(t, m.Init())

	require.NoError(t, local.ApplyPreset(context.Background(), stickfigure.PresetRun, 0))
	next, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.Equal(t, 320.0, local.Live()[stickfigure.HumanRotation])
	assert.NotEmpty(t, next.(Model).View())

	assert.Error(t, local.ApplyPreset(context.Background(), "moonwalk", 0))
}

// TestHTTPTarget tests posting to a server
func TestHTTPTarget(t *testing.T) {
	var got server.PoseRequest
	var presetPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/pose":
			_ = json.NewDecoder(r.Body).Decode(&got)
			_ = json.NewEncoder(w).Encode(server.APIResponse{Status: "success"})
		case strings.HasPrefix(r.URL.Path, "/api/preset/"):
			presetPath = r.URL.Path
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(server.APIResponse{Status: "error", Error: "unknown preset"})
		}
	}))
	defer ts.Close()

	target := NewHTTPTarget(ts.URL + "/")
	err := target.SetPose(context.Background(), stickfigure.Pose{stickfigure.HeadRotation: 12}, 250*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.Pose[stickfigure.HeadRotation])
	require.NotNil(t, got.DurationMs)
	assert.Equal(t, 250, *got.DurationMs)

	err = target.ApplyPreset(context.Background(), "wave", 0)
	assert.ErrorContains(t, err, "unknown preset")
	assert.Equal(t, "/api/preset/wave", presetPath)
}

// TestRenderASCII tests the preview drawing
func TestRenderASCII(t *testing.T) {
	art := RenderASCII(stickfigure.NewHumanSkeleton(1).Render(nil), 30, 15)
	lines := strings.Split(art, "\n")
	assert.Len(t, lines, 15)
	assert.Contains(t, art, "o")
	assert.Contains(t, art, "*")
	assert.Empty(t, RenderASCII(nil, 0, 0))
}
