package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/motionsim/internal/config"
)

// ScenarioSelectedMsg is emitted when the user picks a scenario. Built-in
// scenarios arrive resolved; files arrive as a Path still to be loaded.
type ScenarioSelectedMsg struct {
	Scenario config.Scenario
	Path     string
}

// PickerCancelledMsg is emitted when the user leaves the picker.
type PickerCancelledMsg struct{}

type scenarioItem struct {
	scenario config.Scenario
}

func (i scenarioItem) Title() string { return i.scenario.Name }
func (i scenarioItem) Description() string {
	if i.scenario.Tuning != "classic" {
		return i.scenario.Description + " · " + i.scenario.Tuning + " tuning"
	}
	return i.scenario.Description
}
func (i scenarioItem) FilterValue() string { return i.scenario.Name }

type fileItem struct {
	name string
	path string
}

func (i fileItem) Title() string       { return i.name }
func (i fileItem) Description() string { return i.path }
func (i fileItem) FilterValue() string { return i.name }

type openItem struct{}

func (i openItem) Title() string       { return "Open scenario file..." }
func (i openItem) Description() string { return "enter a path to a " + config.ScenarioExt + " file" }
func (i openItem) FilterValue() string { return "open" }

// PickerModel lists built-in scenarios and scenario files in the
// working directory.
type PickerModel struct {
	list     list.Model
	input    textinput.Model
	pathMode bool
	err      error
}

// NewPicker builds the picker. current is the scenario resolved from
// .env, the environment and flags; it is listed first and supplies the
// unit mode for the built-ins.
func NewPicker(current config.Scenario) PickerModel {
	items := []list.Item{scenarioItem{scenario: current}}
	for _, sc := range config.Builtins(current.Params) {
		items = append(items, scenarioItem{scenario: sc})
	}

	files, err := config.ScanScenarios(".")
	if err != nil {
		err = fmt.Errorf("cannot read directory: %w", err)
	}
	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		items = append(items, fileItem{name: name, path: f})
	}
	items = append(items, openItem{})

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#FF8C00"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "motionsim"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "race" + config.ScenarioExt
	ti.CharLimit = 1024
	ti.Width = 60

	return PickerModel{list: l, input: ti, err: err}
}

// Err returns a directory scan error, if any. Built-ins are still listed.
func (m PickerModel) Err() error {
	return m.err
}

func (m PickerModel) Init() tea.Cmd {
	return tea.SetWindowTitle("motionsim")
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.pathMode {
		return m.updatePathInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case openItem:
				m.pathMode = true
				m.input.Focus()
				return m, tea.Batch(textinput.Blink, tea.SetWindowTitle("motionsim · open scenario"))
			case scenarioItem:
				return m, selectCmd(ScenarioSelectedMsg{Scenario: item.scenario})
			case fileItem:
				return m, selectCmd(ScenarioSelectedMsg{Path: item.path})
			}
		case "q", "esc", "ctrl+c":
			return m, func() tea.Msg { return PickerCancelledMsg{} }
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) updatePathInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path != "" {
				return m, selectCmd(ScenarioSelectedMsg{Path: path})
			}
		case "esc":
			m.pathMode = false
			m.input.Reset()
			m.input.Blur()
			return m, tea.SetWindowTitle("motionsim")
		case "ctrl+c":
			return m, func() tea.Msg { return PickerCancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func selectCmd(msg ScenarioSelectedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m PickerModel) View() string {
	if m.pathMode {
		s := "\n"
		s += "  " + headerStyle.Render("motionsim") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Scenario file:") + "\n"
		s += "  " + m.input.View() + "\n"
		s += "\n"
		s += "  " + helpStyle.Render("enter open  esc back  ctrl+c quit") + "\n"
		return s
	}
	return m.list.View()
}
