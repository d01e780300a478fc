package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coopsim/coopsim/internal/config"
	"github.com/coopsim/coopsim/internal/driver"
	"github.com/coopsim/coopsim/internal/sim"
	"github.com/coopsim/coopsim/internal/world"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	blue   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

// Key presses don't come with release events, so a held direction expires
// after this long without a repeat.
const holdTimeout = 180 * time.Millisecond

type playState int

const (
	stateMenu playState = iota
	statePlay
)

type playModel struct {
	state     playState
	cursor    int
	scenarios []string

	cfg    *config.Config
	runner *sim.Runner

	paused    bool
	direction string
	lastInput time.Time

	width  int
	height int
}

// NewPlayApp creates the interactive app. The human agent is keyboard
// driven; the AI agent shepherds pieces toward zones it can score in.
func NewPlayApp(cfg *config.Config) *playModel {
	return &playModel{
		state:     stateMenu,
		scenarios: config.ScenarioNames(),
		cfg:       cfg,
		width:     80,
		height:    24,
	}
}

func (m *playModel) Init() tea.Cmd { return nil }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != statePlay {
			return m, nil
		}
		if !m.paused {
			m.applyInput()
			m.retargetAI()
			m.runner.Step(m.cfg.Dt)
		}
		return m, tick()
	}
	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateMenu {
		return m.menuKey(msg)
	}
	return m.playKey(msg)
}

func (m *playModel) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}
	case "enter", " ":
		if err := m.start(m.scenarios[m.cursor]); err != nil {
			return m, nil
		}
		m.state = statePlay
		return m, tea.Batch(tea.ClearScreen, tick())
	}
	return m, nil
}

func (m *playModel) playKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateMenu
		m.runner = nil
		return m, tea.ClearScreen
	case "p", " ":
		m.paused = !m.paused
	case "r":
		if err := m.start(m.cfg.Scenario); err != nil {
			m.state = stateMenu
			m.runner = nil
		}
		return m, nil
	case "w", "up":
		m.hold("up")
	case "s", "down":
		m.hold("down")
	case "a", "left":
		m.hold("left")
	case "d", "right":
		m.hold("right")
	}
	return m, nil
}

func (m *playModel) hold(direction string) {
	m.direction = direction
	m.lastInput = time.Now()
}

func (m *playModel) applyInput() {
	human := m.runner.World().Human()
	if human == nil {
		return
	}
	if m.direction == "" || time.Since(m.lastInput) > holdTimeout {
		m.direction = ""
		human.Stop()
		return
	}
	human.MoveDirection(m.direction, 1.0)
}

func (m *playModel) start(scenario string) error {
	m.cfg.Scenario = scenario
	w, err := m.cfg.Build()
	if err != nil {
		return err
	}
	m.runner = sim.New(w)
	m.paused = false
	m.direction = ""
	m.retargetAI()
	return nil
}

// retargetAI points the shepherd at the nearest unscored piece the AI can
// still deliver; with nothing left it idles.
func (m *playModel) retargetAI() {
	w := m.runner.World()
	snap := w.Snapshot()

	bestDist := math.Inf(1)
	var bestObj, bestGoal string
	for _, o := range snap.Objects {
		if o.Goal != "" {
			continue
		}
		for _, gs := range snap.Goals {
			g := w.GoalByName(gs.Name)
			if g == nil || g.Owner == world.OwnedByHuman || !g.Accepts(o.Kind) {
				continue
			}
			if d := world.Dist(w.AI(), w.ObjectByName(o.Name)); d < bestDist {
				bestDist = d
				bestObj, bestGoal = o.Name, gs.Name
			}
			break
		}
	}

	if bestObj == "" {
		m.runner.SetDriver(world.AI, driver.NewIdle())
		return
	}
	m.runner.SetDriver(world.AI, driver.NewShepherd(bestObj, bestGoal))
}

func (m *playModel) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewPlay()
}

func (m *playModel) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("c o o p s i m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.scenarios {
		desc := ""
		if sc, ok := config.Scenarios[name]; ok {
			desc = sc.Summary
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter play   q quit") + "\n")

	return b.String()
}

func (m *playModel) viewPlay() string {
	cw := m.width - 6
	ch := m.height - 8
	if cw < 60 {
		cw = 60
	}
	if ch < 16 {
		ch = 16
	}

	snap := m.runner.World().Snapshot()
	c := newCanvas(cw, ch)
	c.drawSnapshot(snap)

	var b strings.Builder

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.paused {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		statusIcon, cyan.Render(m.cfg.Scenario), statusText,
		dim.Render(fmt.Sprintf("t=%.1fs", snap.Elapsed))))

	b.WriteString(fmt.Sprintf("   %s %s   %s %s\n",
		blue.Render("human"), white.Render(fmt.Sprintf("%d", snap.HumanScore)),
		green.Render("ai"), white.Render(fmt.Sprintf("%d", snap.AIScore))))

	for _, row := range c.rows() {
		b.WriteString("   " + row + "\n")
	}

	var pieces []string
	for _, o := range snap.Objects {
		if o.Goal != "" {
			pieces = append(pieces, green.Render(o.Name+"✓"))
		} else {
			pieces = append(pieces, dim.Render(o.Name))
		}
	}
	b.WriteString("   " + strings.Join(pieces, "  ") + "\n")

	b.WriteString("\n" + dim.Render("   wasd move  space pause  r reset  esc menu  q quit") + "\n")

	return b.String()
}

// RunPlay starts the interactive app in the alternate screen.
func RunPlay(cfg *config.Config) error {
	p := tea.NewProgram(NewPlayApp(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
