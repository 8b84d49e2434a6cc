package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/motionsim/internal/ui"
)

type startupPhase uint8

const (
	phasePick startupPhase = iota
	phaseOpening
)

type startupResolvedMsg struct {
	model ui.Model
	err   error
}

// startupModel shows the scenario picker and swaps itself for the
// simulator screen once a scenario resolves.
type startupModel struct {
	picker  ui.PickerModel
	session session
	phase   startupPhase
	errMsg  string
	width   int
	height  int
	spinner spinner.Model
}

func newStartupModel(s session) startupModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	return startupModel{
		picker:  ui.NewPicker(s.cfg.Current()),
		session: s,
		phase:   phasePick,
		spinner: sp,
	}
}

func (m startupModel) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), m.spinner.Tick)
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.phase == phasePick {
			return m.updatePicker(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.phase == phaseOpening {
			return m, cmd
		}
		return m, nil

	case ui.PickerCancelledMsg:
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case ui.ScenarioSelectedMsg:
		m.phase = phaseOpening
		m.errMsg = ""
		return m, tea.Batch(m.spinner.Tick, openSelectionCmd(msg, m.session))

	case startupResolvedMsg:
		if msg.err != nil {
			m.phase = phasePick
			m.errMsg = msg.err.Error()
			return m, nil
		}

		cmds := []tea.Cmd{msg.model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return msg.model, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.phase == phaseOpening && startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}

	if m.phase == phasePick {
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m startupModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.picker.Update(msg)
	if picker, ok := model.(ui.PickerModel); ok {
		m.picker = picker
	}
	return m, cmd
}

func (m startupModel) View() string {
	if m.phase == phaseOpening {
		var b strings.Builder
		b.WriteString("\n  ")
		b.WriteString(startupHeaderStyle.Render("motionsim"))
		b.WriteString("\n\n  ")
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(startupStatusStyle.Render("Loading scenario..."))
		b.WriteString("\n\n  ")
		b.WriteString(startupHelpStyle.Render("q quit"))
		b.WriteString("\n")
		return b.String()
	}

	errText := m.errMsg
	if errText == "" && m.picker.Err() != nil {
		errText = m.picker.Err().Error()
	}
	if errText == "" {
		return m.picker.View()
	}
	return "\n  " + startupErrorStyle.Render(errText) + "\n\n" + indentBlock(m.picker.View(), "  ")
}

func openSelectionCmd(sel ui.ScenarioSelectedMsg, s session) tea.Cmd {
	return func() tea.Msg {
		model, err := buildSimModel(sel, s)
		return startupResolvedMsg{model: model, err: err}
	}
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	startupErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)
