package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/motionsim/internal/config"
	"github.com/olivier-w/motionsim/internal/sim"
	"github.com/olivier-w/motionsim/internal/ui"
)

// session carries what every simulator screen shares regardless of the
// scenario it was opened with.
type session struct {
	cfg      config.Config
	notifier ui.Notifier
}

func (s session) options() ui.Options {
	return ui.Options{
		Charts: s.cfg.Charts,
		Trails: s.cfg.Trails,
		FPS:    s.cfg.FPS,
		OutDir: s.cfg.OutDir,
	}
}

// resolveScenario turns a picker selection or command-line argument into
// a scenario, reading the file when one is named.
func resolveScenario(sel ui.ScenarioSelectedMsg, base sim.Params) (config.Scenario, error) {
	if sel.Path == "" {
		return sel.Scenario, nil
	}

	info, err := os.Stat(sel.Path)
	if err != nil {
		return config.Scenario{}, err
	}
	if info.IsDir() {
		return config.Scenario{}, fmt.Errorf("%s is a directory", sel.Path)
	}
	if ext := strings.ToLower(filepath.Ext(sel.Path)); ext != config.ScenarioExt {
		return config.Scenario{}, fmt.Errorf("unsupported scenario file %s (want %s)", sel.Path, config.ScenarioExt)
	}
	return config.LoadScenario(sel.Path, base)
}

func newState(sc config.Scenario) (*sim.State, error) {
	tuning, err := sim.TuningByName(sc.Tuning)
	if err != nil {
		return nil, err
	}
	return sim.New(sc.Params, tuning), nil
}

func buildSimModel(sel ui.ScenarioSelectedMsg, s session) (ui.Model, error) {
	sc, err := resolveScenario(sel, s.cfg.Params)
	if err != nil {
		return ui.Model{}, err
	}
	state, err := newState(sc)
	if err != nil {
		return ui.Model{}, err
	}
	return ui.New(state, sc.Name, s.options(), s.notifier), nil
}
