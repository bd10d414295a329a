package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/physx-binding/layout"
	"github.com/wippyai/physx-binding/px"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	ballStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	groundStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	viewRows  = 16
	frameTime = time.Second / 30
	kickSpeed = 6
)

type modelState int

const (
	stateRunning modelState = iota
	statePaused
	stateEditGravity
	stateDone
)

type interactiveModel struct {
	err      error
	b        *px.Binding
	sc       *scenario
	cfg      simConfig
	last     sample
	bar      progress.Model
	input    textinput.Model
	state    modelState
	resume   modelState
	top      float32
	gravity  float32
	statusln string
	chain    int
}

// tickMsg carries the chain it belongs to; ticks from a superseded chain
// are dropped.
type tickMsg struct{ chain int }

func newInteractiveModel(b *px.Binding, cfg simConfig) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "gravity y: "
	ti.Placeholder = strconv.FormatFloat(float64(cfg.gravity), 'f', 2, 32)
	ti.Width = 12

	return &interactiveModel{
		b:       b,
		cfg:     cfg,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		input:   ti,
		top:     max(cfg.height, cfg.radius*2, 1),
		gravity: cfg.gravity,
		state:   stateRunning,
	}
}

func (m *interactiveModel) tick() tea.Cmd {
	m.chain++
	chain := m.chain
	return tea.Tick(frameTime, func(time.Time) tea.Msg { return tickMsg{chain: chain} })
}

func (m *interactiveModel) Init() tea.Cmd {
	sc, err := newScenario(m.b, m.cfg)
	if err != nil {
		m.err = err
		return nil
	}
	m.sc = sc
	m.last, m.err = sc.sample()
	return m.tick()
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateEditGravity {
			return m.updateGravityInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case " ":
			switch m.state {
			case stateRunning:
				m.state = statePaused
			case statePaused:
				m.state = stateRunning
				return m, m.tick()
			}

		case "k":
			if m.sc != nil && m.state != stateDone {
				m.kick()
			}

		case "g":
			if m.sc != nil && m.state != stateDone {
				m.resume = m.state
				m.state = stateEditGravity
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}
		}

	case tickMsg:
		if msg.chain != m.chain || m.state != stateRunning || m.err != nil {
			return m, nil
		}
		s, err := m.sc.advance()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.last = s
		m.top = max(m.top, s.y+m.cfg.radius)
		if m.sc.finished() {
			m.state = stateDone
			return m, nil
		}
		return m, m.tick()
	}

	if m.state == stateEditGravity {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) updateGravityInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.input.Blur()
		m.state = m.resume
		if m.state == stateRunning {
			return m, m.tick()
		}
		return m, nil

	case "enter":
		m.input.Blur()
		m.state = m.resume
		if err := m.setGravity(m.input.Value()); err != nil {
			m.statusln = errorStyle.Render(err.Error())
		}
		if m.state == stateRunning {
			return m, m.tick()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) setGravity(value string) error {
	g, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
	if err != nil {
		return fmt.Errorf("gravity: %w", err)
	}
	if err := m.b.SetSceneGravity(m.sc.scene, layout.Vec3f{Y: float32(g)}); err != nil {
		return err
	}
	m.gravity = float32(g)
	m.statusln = resultStyle.Render(fmt.Sprintf("gravity set to %.2f", g))
	return nil
}

func (m *interactiveModel) kick() {
	v, err := m.b.LinearVelocity(m.sc.ball)
	if err == nil {
		v.Y += kickSpeed
		err = m.b.SetLinearVelocity(m.sc.ball, v)
	}
	if err != nil {
		m.statusln = errorStyle.Render(err.Error())
		return
	}
	m.statusln = resultStyle.Render("kick")
}

// ballRow maps a height onto a view row, 0 being the ground line.
func ballRow(y, top float32, rows int) int {
	if top <= 0 || rows <= 1 {
		return 0
	}
	r := int(math.Round(float64(y / top * float32(rows-1))))
	return min(max(r, 0), rows-1)
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.sc == nil {
		return "Building scene..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("PhysX Free Fall"))
	b.WriteString(" ")
	b.WriteString(m.b.Backend())
	b.WriteString("\n\n")

	row := ballRow(m.last.y, m.top, viewRows)
	for r := viewRows - 1; r >= 1; r-- {
		if r == row {
			b.WriteString("   " + ballStyle.Render("●"))
		}
		b.WriteString("\n")
	}
	if row == 0 {
		b.WriteString(groundStyle.Render("───" + ballStyle.Render("●") + "───────"))
	} else {
		b.WriteString(groundStyle.Render("───────────"))
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "step %d/%d  t=%.2fs\n", m.last.step, m.cfg.steps, m.last.t)
	fmt.Fprintf(&b, "height %8.4f  velocity %8.4f  gravity %.2f\n\n", m.last.y, m.last.vy, m.gravity)
	b.WriteString(m.bar.ViewAs(m.sc.progress()))
	b.WriteString("\n\n")

	switch m.state {
	case stateEditGravity:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
	case stateDone:
		b.WriteString(resultStyle.Render(fmt.Sprintf("Done. Lowest height %.4f", m.sc.lowest)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
	default:
		if m.statusln != "" {
			b.WriteString(m.statusln)
			b.WriteString("\n")
		}
		pause := "pause"
		if m.state == statePaused {
			pause = "resume"
		}
		b.WriteString(helpStyle.Render("space " + pause + " • k kick • g gravity • q quit"))
	}

	return b.String()
}

func runInteractive(b *px.Binding, cfg simConfig) error {
	model := newInteractiveModel(b, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return model.err
}
