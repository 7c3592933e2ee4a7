package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/device"
	sessiondto "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/dto"
	sessionin "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/in"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/ui/theme"
)

// ─── weight simulation ────────────────────────────────────────────────────────
// The TUI doubles as the bench rig: it stands in for both the front panel
// and the load cell, so the platter weight is adjustable from the keyboard.

type WeightRig interface {
	AdjustWeight(delta float64)
	SetReady(ready bool)
}

const weightStepGrams = 10.0

// ─── async messages ───────────────────────────────────────────────────────────

type frameMsg struct {
	snap    device.Snapshot
	history []sessiondto.RecordOutput
}

type pressedMsg struct{}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	ButtonA key.Binding
	ButtonB key.Binding
	ButtonC key.Binding
	HoldC   key.Binding
	Heavier key.Binding
	Lighter key.Binding
	Sensor  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		ButtonA: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "button A (tare/back)")),
		ButtonB: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "button B (unit/next)")),
		ButtonC: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "button C (live)")),
		HoldC:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "hold C (start/end)")),
		Heavier: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "adjust weight")),
		Lighter: key.NewBinding(key.WithKeys("-")),
		Sensor:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "toggle sensor")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ButtonA, k.ButtonB, k.HoldC, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ButtonA, k.ButtonB, k.ButtonC, k.HoldC},
		{k.Heavier, k.Sensor},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It renders the device loop's
// snapshot on a fixed cadence, exactly like the physical display would,
// and injects button presses back into the loop.
type Model struct {
	loop     *device.Loop
	rig      WeightRig
	sessions sessionin.Usecase

	keys        keyMap
	help        help.Model
	showHelp    bool
	sensorReady bool

	snap    device.Snapshot
	history []sessiondto.RecordOutput
	width   int
	height  int
}

func NewModel(loop *device.Loop, rig WeightRig, sessions sessionin.Usecase) Model {
	return Model{
		loop:        loop,
		rig:         rig,
		sessions:    sessions,
		keys:        defaultKeys(),
		help:        help.New(),
		sensorReady: true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width

	case frameMsg:
		m.snap = msg.snap
		m.history = msg.history
		return m, tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
			return m.frame()
		})

	case pressedMsg:
		return m, m.frameCmd()

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		case key.Matches(msg, m.keys.ButtonA):
			return m, m.pressCmd("A", false)
		case key.Matches(msg, m.keys.ButtonB):
			return m, m.pressCmd("B", false)
		case key.Matches(msg, m.keys.ButtonC):
			return m, m.pressCmd("C", false)
		case key.Matches(msg, m.keys.HoldC):
			return m, m.pressCmd("C", true)
		case key.Matches(msg, m.keys.Heavier):
			m.rig.AdjustWeight(weightStepGrams)
		case key.Matches(msg, m.keys.Lighter):
			m.rig.AdjustWeight(-weightStepGrams)
		case key.Matches(msg, m.keys.Sensor):
			m.sensorReady = !m.sensorReady
			m.rig.SetReady(m.sensorReady)
		}
	}
	return m, nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) frame() frameMsg {
	ctx := context.Background()
	snap := m.loop.Snapshot(ctx)
	var history []sessiondto.RecordOutput
	if snap.Nav.View == "history" {
		history, _ = m.sessions.History(ctx)
	}
	return frameMsg{snap: snap, history: history}
}

func (m Model) frameCmd() tea.Cmd {
	return func() tea.Msg { return m.frame() }
}

func (m Model) pressCmd(button string, hold bool) tea.Cmd {
	return func() tea.Msg {
		m.loop.Press(context.Background(), button, hold)
		return pressedMsg{}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.showHelp {
		return theme.Screen.Render(m.help.View(m.keys))
	}

	var screen string
	if m.snap.Nav.Mode == "drying" {
		switch m.snap.Nav.View {
		case "stats":
			screen = m.statsScreen()
		case "history":
			screen = m.historyScreen()
		default:
			screen = m.liveScreen()
		}
	} else {
		screen = m.weighScreen()
	}

	lines := []string{theme.Screen.Render(screen)}
	if m.snap.Message != "" {
		lines = append(lines, theme.Message.Render(" "+m.snap.Message+" "))
	}
	lines = append(lines, m.statusBar())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) weighScreen() string {
	return strings.Join([]string{
		theme.Title.Render("SCALE"),
		"",
		theme.Weight.Render(m.displayWeight()),
		"",
		theme.Label.Render("hold C with the food loaded to start drying"),
	}, "\n")
}

func (m Model) liveScreen() string {
	s := m.snap.Status
	loss := fmt.Sprintf("%.1f%% of %.1f%%", s.CurrentLossPercent, s.TargetLossPercent)
	if s.Ready {
		loss = theme.Ready.Render(loss + "  READY")
	}
	return strings.Join([]string{
		theme.Title.Render(fmt.Sprintf("DRYING  day %d", s.CurrentDay)),
		"",
		theme.Label.Render("now    ") + theme.Weight.Render(m.displayWeight()),
		theme.Label.Render("start  ") + fmt.Sprintf("%.1f g", s.InitialWeight),
		theme.Label.Render("loss   ") + loss,
	}, "\n")
}

func (m Model) statsScreen() string {
	s := m.snap.Status
	estimate := "N/A"
	if s.DaysRemaining >= 0 {
		estimate = fmt.Sprintf("~%d days", s.DaysRemaining)
	}
	return strings.Join([]string{
		theme.Title.Render("STATISTICS"),
		"",
		theme.Label.Render("initial    ") + fmt.Sprintf("%.1f g", s.InitialWeight),
		theme.Label.Render("target     ") + fmt.Sprintf("-%.1f%%", s.TargetLossPercent),
		theme.Label.Render("status     ") + fmt.Sprintf("-%.1f%%", s.CurrentLossPercent),
		theme.Label.Render("records    ") + fmt.Sprintf("%d", s.RecordCount),
		theme.Label.Render("remaining  ") + estimate,
	}, "\n")
}

func (m Model) historyScreen() string {
	cursor := m.snap.Nav.HistoryCursor
	if cursor < 0 || cursor >= len(m.history) {
		return theme.Title.Render("HISTORY") + "\n\n" + theme.Muted.Render("loading...")
	}
	rec := m.history[cursor]
	return strings.Join([]string{
		theme.Title.Render(fmt.Sprintf("HISTORY  %d/%d", cursor+1, len(m.history))),
		"",
		theme.Label.Render("day     ") + fmt.Sprintf("%d", rec.Day),
		theme.Label.Render("weight  ") + fmt.Sprintf("%.1f g", rec.Weight),
		theme.Label.Render("loss    ") + fmt.Sprintf("%.1f%%", rec.LossPercent),
		theme.Label.Render("change  ") + fmt.Sprintf("%.1f g", rec.DayChange),
	}, "\n")
}

func (m Model) displayWeight() string {
	r := m.snap.Reading
	if math.IsNaN(r.Display) {
		return "---- " + r.Unit
	}
	return fmt.Sprintf("%.*f %s", r.Precision, r.Display, r.Unit)
}

func (m Model) statusBar() string {
	left := theme.Muted.Render(fmt.Sprintf("mode:%s view:%s", m.snap.Nav.Mode, m.snap.Nav.View))
	right := theme.Muted.Render("a/b/c:buttons  C:hold  +/-:weight  ?:help  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
