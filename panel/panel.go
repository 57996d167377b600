// Package panel is a terminal control panel for a stick figure. It lists the
// joints of a skeleton, lets the user nudge their values and sends the edited
// pose to a Target: an in-process animator or a stickfigure server.
package panel

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/phanxgames/stickfigure"
)

// stepSizes are the increments cycled with '[' and ']'.
var stepSizes = []float64{1, 5, 15, 45}

const (
	previewWidth  = 36
	previewHeight = 18
	frameInterval = time.Second / 30
	sendTimeout   = 3 * time.Second
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	previewStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// sentMsg reports the outcome of a send command.
type sentMsg struct {
	what string
	err  error
}

// tickMsg advances a local target.
type tickMsg time.Time

// ticker is implemented by targets that need frames from the panel.
type ticker interface {
	Tick(now time.Time)
}

// Model is the bubbletea model of the panel.
type Model struct {
	skeleton *stickfigure.Skeleton
	presets  *stickfigure.PresetLibrary
	target   Target
	duration time.Duration

	joints    []stickfigure.JointSpec
	pose      stickfigure.Pose
	cursor    int
	stepIdx   int
	presetIdx int

	status   string
	err      error
	quitting bool
}

// New creates a panel editing sk's joints. Edited poses go to target with
// transition d.
func New(sk *stickfigure.Skeleton, lib *stickfigure.PresetLibrary, target Target, d time.Duration) Model {
	return Model{
		skeleton:  sk,
		presets:   lib,
		target:    target,
		duration:  d,
		joints:    sk.Joints().Specs(),
		pose:      sk.Neutral(),
		stepIdx:   1,
		presetIdx: -1,
		status:    "ready",
	}
}

// Pose returns the pose being edited.
func (m Model) Pose() stickfigure.Pose { return m.pose }

// Selected returns the joint under the cursor.
func (m Model) Selected() stickfigure.Joint { return m.joints[m.cursor].Name }

// Step returns the current increment.
func (m Model) Step() float64 { return stepSizes[m.stepIdx] }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if _, ok := m.target.(ticker); ok {
		return tick()
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if t, ok := m.target.(ticker); ok {
			t.Tick(time.Time(msg))
			return m, tick()
		}
	case sentMsg:
		m.err = msg.err
		if msg.err != nil {
			m.status = "send failed"
		} else {
			m.status = "sent " + msg.what
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.joints)-1 {
			m.cursor++
		}
	case "left", "h":
		m.adjust(-m.Step())
	case "right", "l":
		m.adjust(m.Step())
	case "[":
		if m.stepIdx > 0 {
			m.stepIdx--
		}
	case "]":
		if m.stepIdx < len(stepSizes)-1 {
			m.stepIdx++
		}
	case "enter":
		m.status = "sending pose"
		return m, m.sendPose("pose")
	case "r":
		m.pose = m.skeleton.Neutral().Merge(stickfigure.Pose{
			stickfigure.JointX: m.pose[stickfigure.JointX],
			stickfigure.JointY: m.pose[stickfigure.JointY],
		})
		m.presetIdx = -1
		m.status = "reset"
		return m, m.sendPose("reset")
	case "p":
		names := m.presets.Names()
		if len(names) == 0 {
			return m, nil
		}
		m.presetIdx = (m.presetIdx + 1) % len(names)
		name := names[m.presetIdx]
		if p, err := m.presets.Get(name); err == nil {
			m.pose = m.pose.Merge(p)
		}
		m.status = "preset " + name
		return m, m.sendPreset(name)
	}
	return m, nil
}

// adjust changes the selected joint by delta, wrapping angular joints and
// clamping linear ones.
func (m *Model) adjust(delta float64) {
	spec := m.joints[m.cursor]
	v := m.pose[spec.Name] + delta
	if spec.Kind == stickfigure.Angular {
		v = stickfigure.NormalizeDegrees(v)
	} else {
		v = spec.Clamp(v)
	}
	pose := m.pose.Clone()
	pose[spec.Name] = v
	m.pose = pose
}

func (m Model) sendPose(what string) tea.Cmd {
	target, pose, d := m.target, m.pose.Clone(), m.duration
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		return sentMsg{what: what, err: target.SetPose(ctx, pose, d)}
	}
}

func (m Model) sendPreset(name string) tea.Cmd {
	target, d := m.target, m.duration
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		return sentMsg{what: name, err: target.ApplyPreset(ctx, name, d)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("stickfigure panel: %s", m.skeleton.Name)))
	b.WriteString("\n\n")

	for i, spec := range m.joints {
		line := fmt.Sprintf("%-22s %9.2f", spec.Name, m.pose[spec.Name])
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}

	preview := m.pose
	if l, ok := m.target.(interface{ Live() stickfigure.Pose }); ok {
		preview = l.Live()
	}
	// Root offsets would only shift the fitted preview; drop them.
	preview = preview.Merge(stickfigure.Pose{stickfigure.JointX: 0, stickfigure.JointY: 0})
	art := previewStyle.Render(RenderASCII(m.skeleton.Render(preview), previewWidth, previewHeight))

	left := b.String()
	out := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", art)

	status := fmt.Sprintf("step %g | %s", m.Step(), m.status)
	if m.err != nil {
		status += " " + errorStyle.Render(m.err.Error())
	}
	help := dimStyle.Render("↑/↓ select  ←/→ adjust  [/] step  p preset  enter send  r reset  q quit")
	return out + "\n" + status + "\n" + help + "\n"
}
