package main

import (
	"errors"
	"fmt"

	"mylauncher/internal/launcher"
	"mylauncher/internal/models"
	"mylauncher/internal/runner"
	"mylauncher/internal/ui"
	"mylauncher/internal/ui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// launchDoneMsg reports the outcome of a launch started from the list
type launchDoneMsg struct {
	name   string
	result runner.Result
	err    error
}

// toggleMsg is sent when another activation request arrives
type toggleMsg struct{}

// Model is the launcher session model
type Model struct {
	launcher *launcher.Launcher

	// UI Components
	input textinput.Model
	list  *components.ResultList
	bar   *components.CommandBar
	help  help.Model
	keys  ui.KeyMap

	// State
	moved     bool // Cursor was moved since the last keystroke
	launching bool // A launch is in flight
	showHelp  bool
	width     int
	height    int
}

// NewModel creates a visible session on l
func NewModel(l *launcher.Launcher) *Model {
	ti := textinput.New()
	ti.Prompt = ui.PromptStyle.Render("❯ ")
	ti.Placeholder = "Type to search applications..."
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	h := help.New()
	h.Styles.ShortKey = ui.HelpKeyStyle
	h.Styles.ShortDesc = ui.HelpDescStyle
	h.Styles.FullKey = ui.HelpKeyStyle
	h.Styles.FullDesc = ui.HelpDescStyle

	l.Show()

	m := &Model{
		launcher: l,
		input:    ti,
		list:     components.NewResultList(nil),
		bar:      components.NewCommandBar(),
		help:     h,
		keys:     ui.DefaultKeyMap(),
		width:    80,
		height:   24,
	}
	m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case toggleMsg:
		if m.launcher.Signal() == launcher.Hidden {
			debugLog("Session hidden by activation signal")
			return m, tea.Quit
		}
		return m, nil

	case launchDoneMsg:
		return m.handleLaunchDone(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Escape):
		m.launcher.Hide()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.list.MoveUp()
		m.moved = true
		m.updateCommand()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.list.MoveDown()
		m.moved = true
		m.updateCommand()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.list.PageUp()
		m.moved = true
		m.updateCommand()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.list.PageDown()
		m.moved = true
		m.updateCommand()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if sc := m.list.Current(); sc != nil {
			m.input.SetValue(sc.Name)
			m.input.CursorEnd()
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.input.SetValue("")
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m.activate()
	}

	// Everything else edits the query
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

// activate launches the typed query's target, or the highlighted entry once
// the user has moved the cursor or the query is empty. A query whose name
// matches nothing is a no-op even when descriptions match.
func (m *Model) activate() (tea.Model, tea.Cmd) {
	if m.launching {
		debugLog("Ignoring activation while a launch is pending")
		return m, nil
	}

	query := m.input.Value()

	var target *models.Shortcut
	if query == "" || m.moved {
		target = m.list.Current()
	} else {
		target, _, _ = m.launcher.Activate(query)
	}
	if target == nil {
		debugLog("Nothing to activate for %q", query)
		return m, nil
	}

	m.launching = true
	m.setStatus(components.StatusInfo, "Launching "+target.Name+"...")
	return m, m.launch(target)
}

// launch runs the launch off the update loop
func (m *Model) launch(sc *models.Shortcut) tea.Cmd {
	return func() tea.Msg {
		res, err := m.launcher.Launch(sc)
		return launchDoneMsg{name: sc.Name, result: res, err: err}
	}
}

func (m *Model) handleLaunchDone(msg launchDoneMsg) (tea.Model, tea.Cmd) {
	m.launching = false

	switch {
	case errors.Is(msg.err, launcher.ErrNothingToLaunch):
		m.setStatus(components.StatusWarning, fmt.Sprintf("%s has nothing to launch", msg.name))
		return m, nil
	case msg.err != nil:
		m.setStatus(components.StatusError, msg.err.Error())
		return m, nil
	}

	debugLog("Launched %s via %s: %s", msg.name, msg.result.Strategy, msg.result.Command)
	m.launcher.Hide()
	return m, tea.Quit
}

// refresh re-ranks the catalog for the current query
func (m *Model) refresh() {
	m.list.SetItems(m.launcher.Rank(m.input.Value()))
	m.list.SetRecent(m.launcher.History())
	m.moved = false
	m.bar.ClearStatus()
	m.updateCommand()
}

// setStatus shows a status line; the list shrinks to keep the view in bounds
func (m *Model) setStatus(kind components.StatusType, message string) {
	m.bar.SetStatus(kind, message)
	m.updateSizes()
}

// updateCommand shows the resolved command of the highlighted entry
func (m *Model) updateCommand() {
	defer m.updateSizes()

	sc := m.list.Current()
	if sc == nil {
		m.bar.SetCommand("")
		return
	}
	cmd, ok := m.launcher.ActivateRecord(sc)
	if !ok {
		m.bar.SetCommand("")
		return
	}
	m.bar.SetCommand(cmd.String())
}

func (m *Model) updateSizes() {
	m.input.Width = max(10, m.width-10)
	m.list.Width = max(20, m.width-4)
	m.bar.SetWidth(m.width - 2)
	m.help.Width = m.width

	// Input box (3) + help (1) + command bar + padding
	m.list.Height = max(3, m.height-8-m.bar.Height())
}

func (m *Model) View() string {
	if m.launcher.Visibility() == launcher.Hidden {
		return ""
	}

	sections := []string{
		ui.InputStyle.Width(max(20, m.width-4)).Render(m.input.View()),
		m.list.View(),
	}
	if bar := m.bar.View(); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections, m.help.View(m.keys))

	return ui.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
