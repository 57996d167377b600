package server

import "github.com/phanxgames/stickfigure"

// APIResponse is the envelope of every JSON reply.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// PoseRequest sets a (possibly partial) target pose. DurationMs is optional;
// when absent the animator's default is used, 0 snaps.
type PoseRequest struct {
	Pose       stickfigure.Pose `json:"pose" binding:"required"`
	DurationMs *int             `json:"durationMs,omitempty"`
}

// OffsetRequest moves the figure's root.
type OffsetRequest struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	DurationMs *int    `json:"durationMs,omitempty"`
}

// PresetRequest is the optional body of POST /api/preset/:name.
type PresetRequest struct {
	DurationMs *int `json:"durationMs,omitempty"`
}

// JointInfo describes one joint for clients building controls.
type JointInfo struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Neutral float64 `json:"neutral"`
}

// Snapshot is the state published after every rendered frame and returned
// by GET /api/pose.
type Snapshot struct {
	Frame  uint64           `json:"frame"`
	Live   stickfigure.Pose `json:"live"`
	Target stickfigure.Pose `json:"target"`
	State  string           `json:"state"`
	Done   bool             `json:"done"`
	Step   int              `json:"step"` // current sequence step, -1 when none plays
}
