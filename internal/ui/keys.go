package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Toggle     key.Binding
	Reset      key.Binding
	Stop       key.Binding
	Next       key.Binding
	Prev       key.Binding
	Inc        key.Binding
	Dec        key.Binding
	IncCoarse  key.Binding
	DecCoarse  key.Binding
	Edit       key.Binding
	Units      key.Binding
	Charts     key.Binding
	Export     key.Binding
	Help       key.Binding
	Quit       key.Binding
	EditAccept key.Binding
	EditCancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Stop:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Next:       key.NewBinding(key.WithKeys("tab", "down", "j"), key.WithHelp("tab", "next param")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab", "up", "k"), key.WithHelp("shift+tab", "prev param")),
		Inc:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
		Dec:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
		IncCoarse:  key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "increase more")),
		DecCoarse:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "decrease more")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit value")),
		Units:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "units")),
		Charts:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "charts")),
		Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		EditAccept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		EditCancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Next, k.Inc, k.Dec, k.Edit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stop, k.Reset},
		{k.Next, k.Prev, k.Inc, k.Dec, k.IncCoarse, k.DecCoarse, k.Edit},
		{k.Units, k.Charts, k.Export, k.Help, k.Quit},
	}
}

type editKeyMap struct{ k keyMap }

func (e editKeyMap) ShortHelp() []key.Binding { return []key.Binding{e.k.EditAccept, e.k.EditCancel} }
func (e editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{e.ShortHelp()}
}

func isForceQuit(msg tea.KeyMsg) bool {
	return msg.String() == "ctrl+c"
}
