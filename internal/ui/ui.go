// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/config"
	"github.com/litescript/ls-zodiac/internal/ephem"
	"github.com/litescript/ls-zodiac/internal/logging"
	"github.com/litescript/ls-zodiac/internal/state"
	"github.com/litescript/ls-zodiac/internal/version"
	"github.com/litescript/ls-zodiac/internal/zodiac"
)

// Frame and refresh intervals.
const (
	animInterval  = 16 * time.Millisecond
	clockInterval = 30 * time.Second
)

// Date layouts accepted by the date prompt.
var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02T15:04"}

// Msg types for Bubble Tea
type (
	// TickMsg follows the clock while the chart shows "now".
	TickMsg time.Time

	// AnimTickMsg drives one frame of the transition tagged Run. Frames
	// from a discarded run are dropped.
	AnimTickMsg struct {
		Run  uuid.UUID
		Time time.Time
	}

	// PositionsMsg carries a position sample taken off the update loop.
	PositionsMsg struct {
		Reference time.Time
		Oracle    string
		Positions []ephem.Position
		Err       error
	}

	// ConfigReloadMsg signals the config file changed on disk.
	ConfigReloadMsg config.Reload
)

// Options configure New.
type Options struct {
	State      *state.Manager
	Oracle     ephem.Oracle
	Bodies     []ephem.Body  // empty means all
	Transition time.Duration // convention change animation length
	Start      time.Time     // zero follows the clock
	Logger     *logging.Logger

	// ConfigChanges, if set, delivers live config reloads. Config is the
	// file contents they are compared against; zero means defaults.
	ConfigChanges <-chan config.Reload
	Config        config.Config

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	oracle ephem.Oracle
	bodies []ephem.Body
	anim   *zodiac.Animator
	log    *logging.Logger
	now    func() time.Time

	configChanges <-chan config.Reload
	config        config.Config

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
	keys      KeyMap
	help      help.Model

	reference time.Time
	followNow bool

	dateInput   textinput.Model
	editingDate bool

	// Sub-models
	wheel WheelModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	bodies := opts.Bodies
	if len(bodies) == 0 {
		bodies = ephem.AllBodies()
	}
	stateMgr := opts.State
	if stateMgr == nil {
		stateMgr = state.NewManager(state.DefaultConfig())
	}

	cfg := opts.Config
	if cfg.Convention == "" {
		cfg = config.Default()
	}

	ti := textinput.New()
	ti.Prompt = "date ▸ "
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 16

	m := Model{
		state:         stateMgr,
		oracle:        opts.Oracle,
		bodies:        bodies,
		anim:          zodiac.NewAnimator(opts.Transition, stateMgr.SetTable),
		log:           log,
		now:           now,
		configChanges: opts.ConfigChanges,
		config:        cfg,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		dateInput:     ti,
		wheel:         NewWheelModel(),
		followNow:     opts.Start.IsZero(),
		reference:     opts.Start,
	}
	if m.followNow {
		m.reference = now()
	}
	m.snapshot = stateMgr.Snapshot()
	m.wheel = m.wheel.UpdateData(m.snapshot)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.sampleCmd(),
		clockTickCmd(),
		waitForConfigCmd(m.configChanges),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editingDate {
			cmds = append(cmds, m.updateDateInput(msg))
			break
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width

		// Header 2 lines, footer 3 lines
		m.wheel = m.wheel.SetSize(msg.Width, msg.Height-5)

	case TickMsg:
		cmds = append(cmds, clockTickCmd())
		if m.followNow && !m.anim.Active() {
			m.reference = time.Time(msg)
			cmds = append(cmds, m.sampleCmd())
		}

	case AnimTickMsg:
		if msg.Run != m.anim.Run() {
			// Frame from a discarded or finished run
			break
		}
		m.anim.Tick(msg.Time)
		if m.anim.Active() {
			cmds = append(cmds, animTickCmd(msg.Run))
		}

	case PositionsMsg:
		if !msg.Reference.Equal(m.reference) {
			// Superseded by a newer date
			break
		}
		m.state.SetPositions(msg.Reference, msg.Oracle, msg.Positions, msg.Err)
		if msg.Err != nil {
			m.statusMsg = "positions: " + msg.Err.Error()
		}

	case ConfigReloadMsg:
		cmds = append(cmds, m.applyConfig(config.Reload(msg)), waitForConfigCmd(m.configChanges))
	}

	m.snapshot = m.state.Snapshot()
	m.wheel = m.wheel.UpdateData(m.snapshot)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		return m.startTransition(m.state.Convention().Toggle())

	case key.Matches(msg, m.keys.PrevDay):
		return m.shiftDate(-24 * time.Hour)
	case key.Matches(msg, m.keys.NextDay):
		return m.shiftDate(24 * time.Hour)
	case key.Matches(msg, m.keys.PrevWeek):
		return m.shiftDate(-7 * 24 * time.Hour)
	case key.Matches(msg, m.keys.NextWeek):
		return m.shiftDate(7 * 24 * time.Hour)

	case key.Matches(msg, m.keys.Now):
		m.followNow = true
		return m.setReference(m.now())

	case key.Matches(msg, m.keys.Date):
		m.editingDate = true
		m.dateInput.SetValue("")
		return m.dateInput.Focus()

	case key.Matches(msg, m.keys.Stars):
		m.wheel = m.wheel.ToggleStars()
	case key.Matches(msg, m.keys.Arc):
		m.wheel = m.wheel.ToggleArc()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// startTransition animates the active table toward target. An in-flight
// run is discarded and the new one starts from the table it left behind.
func (m *Model) startTransition(target zodiac.Convention) tea.Cmd {
	if m.anim.Duration() <= 0 {
		if m.anim.Active() {
			m.anim.Cancel()
			m.state.CancelTransition()
		}
		m.state.SetConvention(target)
		return nil
	}

	run, discarded := m.anim.Start(target, m.state.Table(), m.now())
	m.state.BeginTransition(run, discarded, target)
	return animTickCmd(run)
}

func (m *Model) shiftDate(d time.Duration) tea.Cmd {
	m.followNow = false
	return m.setReference(m.reference.Add(d))
}

func (m *Model) setReference(t time.Time) tea.Cmd {
	m.reference = t
	m.statusMsg = ""
	return m.sampleCmd()
}

func (m *Model) updateDateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editingDate = false
		m.dateInput.Blur()
		return nil

	case key.Matches(msg, m.keys.Accept):
		m.editingDate = false
		m.dateInput.Blur()
		t, err := ParseDate(m.dateInput.Value())
		if err != nil {
			m.statusMsg = err.Error()
			return nil
		}
		m.followNow = false
		return m.setReference(t)
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return cmd
}

// ParseDate reads a local date, or date and time, as typed at the prompt.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

// applyConfig takes a reloaded config live: the transition length, the
// fixed stars, and the convention. The convention only animates when the
// file's value changed, so a reload never undoes a toggle from the keyboard.
func (m *Model) applyConfig(r config.Reload) tea.Cmd {
	if r.Err != nil {
		m.statusMsg = "config: " + r.Err.Error()
		m.log.Warn("ignoring config reload: %v", r.Err)
		return nil
	}

	cfg := r.Config
	prev := m.config
	m.config = cfg
	m.anim.SetDuration(cfg.TransitionDuration())

	if stars, err := astro.DefaultStarCatalog().Select(cfg.FixedStars); err == nil {
		m.state.SetStars(stars)
	}

	m.statusMsg = "config reloaded"
	m.log.Info("config reloaded")

	target := cfg.ZodiacConvention()
	if target != prev.ZodiacConvention() && target != m.state.Convention() {
		return m.startTransition(target)
	}
	return nil
}

// Reference returns the instant being charted.
func (m Model) Reference() time.Time {
	return m.reference
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return m.renderHeader() + "\n" + m.wheel.View() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	when := m.reference.Format("Mon 2006-01-02 15:04 MST")
	if m.followNow {
		when += " (now)"
	}

	return "  " + titleStyle.Render("☉ ls-zodiac") +
		dimStyle.Render(fmt.Sprintf(" v%s", version.Version)) +
		"  " + valueStyle.Render(when) + "\n"
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	if m.editingDate {
		keys := dateInputKeys{accept: m.keys.Accept, cancel: m.keys.Cancel}
		return "  " + m.dateInput.View() + "\n  " + m.help.View(keys)
	}

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.statusMsg != "":
		status = accentStyle.Render(m.statusMsg)
	default:
		if events := m.state.RecentEvents(1); len(events) > 0 {
			status = dimStyle.Render(events[0].Describe())
		}
	}

	return "  " + status + "\n  " + m.help.View(m.keys)
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd(run uuid.UUID) tea.Cmd {
	return tea.Tick(animInterval, func(t time.Time) tea.Msg {
		return AnimTickMsg{Run: run, Time: t}
	})
}

// sampleCmd computes positions for the current reference off the update
// loop.
func (m Model) sampleCmd() tea.Cmd {
	if m.oracle == nil {
		return nil
	}
	oracle, bodies, t := m.oracle, m.bodies, m.reference
	return func() tea.Msg {
		positions, err := ephem.Sample(oracle, bodies, t)
		return PositionsMsg{Reference: t, Oracle: oracle.Name(), Positions: positions, Err: err}
	}
}

func waitForConfigCmd(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadMsg(r)
	}
}
