// Package tui implements the interactive shrub explorer.
//
// Every parameter of the pipeline is an editable field; the run trigger
// recomputes asynchronously and redraws. Runs carry a sequence number so a
// completion from a superseded trigger is discarded instead of clobbering
// the current picture.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/collatzlab/shrub/internal/collatz"
	"github.com/collatzlab/shrub/internal/config"
	"github.com/collatzlab/shrub/internal/shrub"
	"github.com/collatzlab/shrub/internal/turtle"
	"github.com/collatzlab/shrub/internal/viz"
)

const (
	canvasWidth  = 80
	canvasHeight = 30
)

var (
	cyan      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white     = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim       = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	selected  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	runStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type field struct {
	name  string
	get   func(*config.Config) string
	set   func(*config.Config, string) error
	cycle func(*config.Config) // non-nil for enum fields
}

func numField(name string, get func(*config.Config) string, set func(*config.Config, string) error) field {
	return field{name: name, get: get, set: set}
}

var fields = []field{
	numField("trajectories",
		func(c *config.Config) string { return strconv.Itoa(c.Count) },
		func(c *config.Config, s string) error { return scanInt(s, &c.Count) }),
	numField("max start",
		func(c *config.Config) string { return strconv.FormatInt(c.MaxStart, 10) },
		func(c *config.Config, s string) error { return scanInt64(s, &c.MaxStart) }),
	{name: "rule",
		get: func(c *config.Config) string { return c.Rule },
		cycle: func(c *config.Config) {
			if c.Rule == string(collatz.RuleBinary) {
				c.Rule = string(collatz.RuleTernary)
			} else {
				c.Rule = string(collatz.RuleBinary)
			}
		}},
	numField("left turn (deg)",
		func(c *config.Config) string { return formatFloat(c.LeftDeg) },
		func(c *config.Config, s string) error { return scanFloat(s, &c.LeftDeg) }),
	numField("right turn (deg)",
		func(c *config.Config) string { return formatFloat(c.RightDeg) },
		func(c *config.Config, s string) error { return scanFloat(s, &c.RightDeg) }),
	numField("heading (deg)",
		func(c *config.Config) string { return formatFloat(c.HeadingDeg) },
		func(c *config.Config, s string) error { return scanFloat(s, &c.HeadingDeg) }),
	numField("vertical step",
		func(c *config.Config) string { return formatFloat(c.VerticalStep) },
		func(c *config.Config, s string) error { return scanFloat(s, &c.VerticalStep) }),
	{name: "vertical policy",
		get: func(c *config.Config) string { return c.VerticalPolicy },
		cycle: func(c *config.Config) {
			if c.VerticalPolicy == string(turtle.VerticalFixed) {
				c.VerticalPolicy = string(turtle.VerticalProportional)
			} else {
				c.VerticalPolicy = string(turtle.VerticalFixed)
			}
		}},
	numField("seed",
		func(c *config.Config) string { return strconv.FormatInt(c.Seed, 10) },
		func(c *config.Config, s string) error { return scanInt64(s, &c.Seed) }),
}

type resultMsg struct {
	seq int
	res *shrub.Result
	err error
}

// Model is the explorer's bubbletea model.
type Model struct {
	cfg     *config.Config
	cursor  int
	editing bool
	editBuf string

	camera *viz.Camera
	canvas *viz.Canvas
	lines  []viz.PlotLine

	runSeq  int
	running bool
	cancel  context.CancelFunc
	errMsg  string
	stats   string
}

// NewModel builds an explorer seeded with cfg. The first run is triggered
// by the user, not on startup, so huge defaults don't block the UI.
func NewModel(cfg *config.Config) Model {
	return Model{
		cfg:    cfg,
		camera: viz.NewCamera(),
		canvas: viz.NewCanvas(canvasWidth, canvasHeight),
	}
}

// Run launches the explorer.
func Run(cfg *config.Config) error {
	m := NewModel(cfg)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case resultMsg:
		if msg.seq != m.runSeq {
			// Stale completion from a superseded trigger.
			return m, nil
		}
		m.running = false
		if msg.err != nil {
			// Keep the previous picture; just surface the failure.
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.lines = viz.FromResult(msg.res)
		m.stats = fmt.Sprintf("%d trajectories, rule %s", len(msg.res.Lines), msg.res.Rule)
		m.redraw()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(fields)-1 {
			m.cursor++
		}
	case "enter", " ":
		f := fields[m.cursor]
		if f.cycle != nil {
			f.cycle(m.cfg)
		} else {
			m.editing = true
			m.editBuf = f.get(m.cfg)
		}
	case "r":
		return m.startRun()
	case "h", "left":
		m.camera.RotateZ(-0.15)
		m.redraw()
	case "l", "right":
		m.camera.RotateZ(0.15)
		m.redraw()
	case "K":
		m.camera.RotateX(-0.15)
		m.redraw()
	case "J":
		m.camera.RotateX(0.15)
		m.redraw()
	case "+", "=":
		m.camera.ZoomIn()
		m.redraw()
	case "-":
		m.camera.ZoomOut()
		m.redraw()
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := fields[m.cursor].set(m.cfg, m.editBuf); err != nil {
			m.errMsg = err.Error()
		} else {
			m.errMsg = ""
		}
		m.editing, m.editBuf = false, ""
	case "escape":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(msg.String()) == 1 {
			c := msg.String()[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				m.editBuf += string(c)
			}
		}
	}
	return m, nil
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	runCfg, err := m.cfg.ToRun()
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	// Supersede any in-flight run rather than letting two race.
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.runSeq++
	m.running = true
	seq := m.runSeq

	return m, func() tea.Msg {
		res, err := shrub.Grow(ctx, runCfg)
		return resultMsg{seq: seq, res: res, err: err}
	}
}

func (m *Model) redraw() {
	if m.lines == nil {
		return
	}
	m.canvas.Clear()
	viz.RenderShrub(m.canvas, m.lines, m.camera)
}

func (m Model) View() string {
	var panel strings.Builder
	panel.WriteString(cyan.Render("collatz shrub explorer") + "\n\n")

	for i, f := range fields {
		val := f.get(m.cfg)
		if m.editing && i == m.cursor {
			val = m.editBuf + "_"
		}
		line := fmt.Sprintf("%-16s %s", f.name, val)
		if i == m.cursor {
			panel.WriteString(selected.Render("> "+line) + "\n")
		} else {
			panel.WriteString(dim.Render("  ") + white.Render(line) + "\n")
		}
	}

	panel.WriteString("\n")
	switch {
	case m.running:
		panel.WriteString(runStyle.Render("growing...") + "\n")
	case m.errMsg != "":
		panel.WriteString(errStyle.Render(m.errMsg) + "\n")
	case m.stats != "":
		panel.WriteString(dim.Render(m.stats) + "\n")
	}
	panel.WriteString(helpStyle.Render("r run  enter edit/toggle  h/l J/K rotate  +/- zoom  q quit"))

	view := m.canvas.Render()
	if m.lines == nil {
		view = dim.Render("\n\n   press r to grow the shrub\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(36).Padding(1, 2).Render(panel.String()),
		lipgloss.NewStyle().Padding(1, 0).Render(view),
	)
}

func scanInt(s string, out *int) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	*out = v
	return nil
}

func scanInt64(s string, out *int64) error {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	*out = v
	return nil
}

func scanFloat(s string, out *float64) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*out = v
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
