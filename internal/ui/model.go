package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/motionsim/internal/chart"
	"github.com/olivier-w/motionsim/internal/sim"
	"github.com/olivier-w/motionsim/internal/track"
	"github.com/olivier-w/motionsim/internal/util"
)

// Notifier is told when an object crosses the finish line.
type Notifier interface {
	Play()
}

// Options switches optional parts of the screen.
type Options struct {
	Charts bool
	Trails bool
	FPS    int
	OutDir string
}

const (
	defaultFPS   = 30
	chartHeight  = 8
	sliderWidth  = 24
	minViewWidth = 40
)

// Model is the interactive simulator screen.
type Model struct {
	state    *sim.State
	name     string
	opts     Options
	notifier Notifier

	renderer *track.Renderer
	gauge    gauge
	slider   progress.Model
	keys     keyMap
	help     help.Model
	input    textinput.Model

	selected   int
	editing    bool
	showCharts bool
	exporting  bool
	status     string
	statusErr  bool
	lastPhase  sim.Phase

	width    int
	height   int
	quitting bool
}

// New creates the simulator screen around state. n may be nil.
func New(state *sim.State, name string, opts Options, n Notifier) Model {
	if opts.FPS < 1 {
		opts.FPS = defaultFPS
	}
	slider := progress.New(progress.WithGradient("#FF8C00", "#1E90FF"), progress.WithoutPercentage())
	slider.Width = sliderWidth

	ti := textinput.New()
	ti.CharLimit = 16
	ti.Width = 12

	m := Model{
		state:      state,
		name:       name,
		opts:       opts,
		notifier:   n,
		renderer:   track.New(minViewWidth),
		gauge:      newGauge(opts.FPS),
		slider:     slider,
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      ti,
		showCharts: opts.Charts,
		lastPhase:  state.Phase(),
	}
	m.state.SetTrackLength(m.renderer.Length())
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.opts.FPS), tea.SetWindowTitle(windowTitle(m.name, m.state.Phase())))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEdit(msg)
		}
		return m.updateKeys(msg)

	case frameMsg:
		return m.onFrame(time.Time(msg))

	case exportedMsg:
		m.exporting = false
		if msg.err != nil {
			log.Printf("export failed: %v", msg.err)
			m.setError(fmt.Sprintf("export failed: %v", msg.err))
		} else {
			m.setStatus("exported to " + msg.dir)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.renderer.Resize(m.trackCols())
		m.state.SetTrackLength(m.renderer.Length())
		return m, nil
	}

	return m, nil
}

func (m Model) onFrame(now time.Time) (tea.Model, tea.Cmd) {
	res := m.state.Frame(now)
	if len(res.Arrived) > 0 {
		for _, id := range res.Arrived {
			log.Printf("object %s arrived at %.2fs", id, m.state.Object(id).ArrivedAt)
		}
		if m.notifier != nil {
			m.notifier.Play()
		}
	}
	for _, id := range sim.ObjectIDs {
		m.gauge.step(int(id), m.state.Object(id).Speed)
	}

	cmds := []tea.Cmd{frameCmd(m.opts.FPS)}
	if phase := m.state.Phase(); phase != m.lastPhase {
		m.lastPhase = phase
		cmds = append(cmds, tea.SetWindowTitle(windowTitle(m.name, phase)))
		if phase == sim.PhaseFinished {
			m.setStatus(fmt.Sprintf("finished at %s", util.FormatSeconds(m.state.Elapsed())))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case key.Matches(msg, m.keys.Toggle):
		if m.state.Phase() == sim.PhaseFinished {
			m.setStatus("run finished, press r to reset")
			return m, nil
		}
		m.state.Toggle()
		m.setStatus("")

	case key.Matches(msg, m.keys.Stop):
		m.state.Stop()

	case key.Matches(msg, m.keys.Reset):
		m.state.Reset()
		m.gauge.reset()
		m.setStatus("")

	case key.Matches(msg, m.keys.Next):
		m.selected = (m.selected + 1) % len(sim.Fields)

	case key.Matches(msg, m.keys.Prev):
		m.selected = (m.selected - 1 + len(sim.Fields)) % len(sim.Fields)

	case key.Matches(msg, m.keys.IncCoarse):
		m.adjust(sim.Fields[m.selected].Coarse)

	case key.Matches(msg, m.keys.DecCoarse):
		m.adjust(-sim.Fields[m.selected].Coarse)

	case key.Matches(msg, m.keys.Inc):
		m.adjust(sim.Fields[m.selected].Step)

	case key.Matches(msg, m.keys.Dec):
		m.adjust(-sim.Fields[m.selected].Step)

	case key.Matches(msg, m.keys.Edit):
		f := sim.Fields[m.selected]
		v, _ := m.state.Params().Get(f.Name)
		m.editing = true
		m.input.Prompt = f.Label + ": "
		m.input.SetValue(fmt.Sprintf("%g", v))
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Units):
		p := m.state.Params()
		p.Units = p.Units.Next()
		m.state.SetParams(p)

	case key.Matches(msg, m.keys.Charts):
		m.showCharts = !m.showCharts

	case key.Matches(msg, m.keys.Export):
		if m.exporting {
			return m, nil
		}
		if m.state.Series().Len() == 0 {
			m.setError("nothing to export yet")
			return m, nil
		}
		m.exporting = true
		m.setStatus("exporting...")
		return m, exportCmd(m.state.Series().Clone(), m.state.Params().Distance, m.opts.OutDir)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isForceQuit(msg):
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case key.Matches(msg, m.keys.EditCancel):
		m.stopEditing()
		return m, nil

	case key.Matches(msg, m.keys.EditAccept):
		f := sim.Fields[m.selected]
		p := m.state.Params()
		if err := p.SetField(f.Name, m.input.Value()); err != nil {
			m.setError(err.Error())
		} else {
			m.state.SetParams(p)
			m.setStatus("")
		}
		m.stopEditing()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) adjust(delta float64) {
	p := m.state.Params()
	if err := p.Adjust(sim.Fields[m.selected].Name, delta); err != nil {
		m.setError(err.Error())
		return
	}
	m.state.SetParams(p)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func exportCmd(series *sim.Series, totalDistance float64, dir string) tea.Cmd {
	return func() tea.Msg {
		out, err := chart.Export(series, totalDistance, dir)
		return exportedMsg{dir: out, err: err}
	}
}

func (m Model) trackCols() int {
	w := m.width - 6
	if w < minViewWidth {
		w = minViewWidth
	}
	return w
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < minViewWidth {
		w = minViewWidth + 6
	}

	var r sim.Renderer = m.renderer
	if !m.opts.Trails {
		r = noTrails{m.renderer}
	}
	sim.Render(m.state, r)

	snap := m.state.Snapshot()
	p := snap.Params

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + headerStyle.Render("motionsim") + "  " + titleStyle.Render(m.name) + "\n")
	b.WriteString("\n")

	if tv := m.renderer.View(); tv != "" {
		for _, line := range strings.Split(tv, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}

	for _, obj := range snap.Objects {
		b.WriteString("  " + renderObjectLine(obj, m.gauge.value(int(obj.ID)), p.Distance, p.Units) + "\n")
	}
	b.WriteString("\n")

	timeout := m.state.Tuning().Timeout(p.Time)
	elapsed := util.FormatSeconds(snap.Elapsed)
	barWidth := w - len(elapsed) - 14
	bar := renderProgressBar(snap.Elapsed, p.Time, barWidth)
	b.WriteString(fmt.Sprintf("  %s %s %s\n", statusStyle.Render(elapsed), bar, statusStyle.Render(util.FormatSeconds(p.Time))))
	b.WriteString("  " + statusStyle.Render(fmt.Sprintf("%s %s  ·  %s tuning  ·  timeout %s",
		phaseIcon(snap.Phase), snap.Phase, m.state.Tuning().Name, util.FormatSeconds(timeout))) + "\n")
	b.WriteString("\n")

	for i, f := range sim.Fields {
		v, _ := p.Get(f.Name)
		if m.editing && i == m.selected {
			b.WriteString("  " + selectedStyle.Render("▸ ") + m.input.View() + "\n")
			continue
		}
		b.WriteString("  " + renderParamRow(f, v, i == m.selected, m.slider) + "\n")
	}

	if m.showCharts {
		cw := w - 14
		if s := chart.Distance(m.state.Series(), p.Distance, cw, chartHeight); s != "" {
			b.WriteString("\n" + chartStyle.Render(s) + "\n")
		}
		if s := chart.Speed(m.state.Series(), p.Units, cw, chartHeight); s != "" {
			b.WriteString("\n" + chartStyle.Render(s) + "\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString("  " + errorStyle.Render(m.status) + "\n")
		} else {
			b.WriteString("  " + helpStyle.Render(m.status) + "\n")
		}
	}
	if m.editing {
		b.WriteString("  " + m.help.View(editKeyMap{m.keys}) + "\n")
	} else {
		b.WriteString("  " + m.help.View(m.keys) + "\n")
	}
	return b.String()
}

func phaseIcon(p sim.Phase) string {
	switch p {
	case sim.PhaseRunning:
		return "▶"
	case sim.PhasePaused:
		return "❚❚"
	case sim.PhaseFinished:
		return "■"
	}
	return "○"
}

func windowTitle(name string, phase sim.Phase) string {
	if phase == sim.PhaseIdle {
		return "motionsim · " + name
	}
	return fmt.Sprintf("%s %s · motionsim", phaseIcon(phase), name)
}

// noTrails drops trail drawing.
type noTrails struct {
	sim.Renderer
}

func (noTrails) DrawTrail(sim.ObjectView, []sim.TrailSample) {}
