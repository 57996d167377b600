package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phanxgames/stickfigure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	s := New(Options{Interval: time.Millisecond, Duration: 20 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = s.Runner().Run(ctx) }()
	return s, s.Engine()
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp APIResponse
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func getSnapshot(t *testing.T, r *gin.Engine) Snapshot {
	t.Helper()
	w, _ := do(t, r, http.MethodGet, "/api/pose", "")
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

// TestHealth tests the liveness endpoint
func TestHealth(t *testing.T) {
	_, r := newTestServer(t)
	w, resp := do(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", resp.Status)
}

// TestJoints tests the joint listing
func TestJoints(t *testing.T) {
	_, r := newTestServer(t)
	w, _ := do(t, r, http.MethodGet, "/api/joints", "")
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data []JointInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Len(t, env.Data, stickfigure.HumanJoints.Len())
	assert.Equal(t, "x", env.Data[0].Name)
	assert.Equal(t, "linear", env.Data[0].Kind)
}

// TestSetPose_PartialMerge tests that a partial pose only changes its keys
func TestSetPose_PartialMerge(t *testing.T) {
	_, r := newTestServer(t)
	before := getSnapshot(t, r)

	w, resp := do(t, r, http.MethodPost, "/api/pose", `{"pose":{"headRotation":10},"durationMs":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "success", resp.Status)

	after := getSnapshot(t, r)
	assert.InDelta(t, 10, after.Target[stickfigure.HeadRotation], 1e-9)
	for k, v := range before.Target {
		if k == stickfigure.HeadRotation {
			continue
		}
		assert.InDelta(t, v, after.Target[k], 1e-9, "joint %s", k)
	}

	assert.Eventually(t, func() bool {
		s := getSnapshot(t, r)
		return s.State == "idle" && s.Live[stickfigure.HeadRotation] == 10
	}, time.Second, 5*time.Millisecond)
}

// TestSetPose_IgnoresUnknownJoints tests that extra keys are reported, not
// rejected
func TestSetPose_IgnoresUnknownJoints(t *testing.T) {
	_, r := newTestServer(t)
	w, resp := do(t, r, http.MethodPost, "/api/pose", `{"pose":{"headRotation":10,"tail":5},"durationMs":0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "success", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data = %#v", resp.Data)
	assert.Equal(t, []any{"tail"}, data["ignored"])

	assert.Eventually(t, func() bool {
		s := getSnapshot(t, r)
		_, hasTail := s.Target["tail"]
		return s.State == "idle" && s.Live[stickfigure.HeadRotation] == 10 && !hasTail
	}, time.Second, 5*time.Millisecond)
}

// TestSetPose_Errors tests request validation
func TestSetPose_Errors(t *testing.T) {
	_, r := newTestServer(t)
	w, _ := do(t, r, http.MethodPost, "/api/pose", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/pose", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestSetOffset tests moving the root
func TestSetOffset(t *testing.T) {
	_, r := newTestServer(t)
	w, _ := do(t, r, http.MethodPost, "/api/offset", `{"x":12,"y":-4,"durationMs":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	s := getSnapshot(t, r)
	assert.Equal(t, 12.0, s.Target[stickfigure.JointX])
	assert.Equal(t, -4.0, s.Target[stickfigure.JointY])
}

// TestPreset tests named presets
func TestPreset(t *testing.T) {
	_, r := newTestServer(t)
	w, _ := do(t, r, http.MethodPost, "/api/preset/run", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 320, getSnapshot(t, r).Target[stickfigure.HumanRotation], 1e-9)

	w, resp := do(t, r, http.MethodPost, "/api/preset/moonwalk", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", resp.Status)

	w, _ = do(t, r, http.MethodGet, "/api/presets", "")
	assert.Contains(t, w.Body.String(), "straight")
}

// TestSequence tests starting and stopping a sequence
func TestSequence(t *testing.T) {
	_, r := newTestServer(t)
	body := `{"name":"loop","loop":true,"steps":[{"preset":"run","durationMs":10},{"preset":"straight","durationMs":10}]}`
	w, _ := do(t, r, http.MethodPost, "/api/sequence", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.GreaterOrEqual(t, getSnapshot(t, r).Step, 0)

	w, _ = do(t, r, http.MethodDelete, "/api/sequence", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -1, getSnapshot(t, r).Step)

	w, _ = do(t, r, http.MethodPost, "/api/sequence", `{"steps":[{"preset":"moonwalk"}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/sequence", `{"name":"empty"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestFramePNG tests the rendered frame endpoint
func TestFramePNG(t *testing.T) {
	_, r := newTestServer(t)
	w, _ := do(t, r, http.MethodGet, "/api/frame.png?debug=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))
}

// TestRunner_DoAfterStop tests that commands fail once the loop exits
func TestRunner_DoAfterStop(t *testing.T) {
	s := New(Options{Interval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan error, 1)
	go func() { exited <- s.Runner().Run(ctx) }()
	cancel()
	assert.ErrorIs(t, <-exited, context.Canceled)

	err := s.Runner().Do(context.Background(), func(*Figure) error { return nil })
	assert.ErrorIs(t, err, ErrStopped)
}
