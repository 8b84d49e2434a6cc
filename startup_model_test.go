package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/olivier-w/motionsim/internal/config"
	"github.com/olivier-w/motionsim/internal/sim"
	"github.com/olivier-w/motionsim/internal/ui"
)

func testSession() session {
	return session{cfg: config.Default()}
}

func TestStartupModelSelectionEntersOpeningPhase(t *testing.T) {
	model, cmd := newStartupModel(testSession()).Update(ui.ScenarioSelectedMsg{Path: "race.env"})
	if cmd == nil {
		t.Fatal("expected opening command")
	}

	startup, ok := model.(startupModel)
	if !ok {
		t.Fatalf("expected startupModel, got %T", model)
	}
	if startup.phase != phaseOpening {
		t.Fatalf("expected phaseOpening, got %v", startup.phase)
	}
}

func TestStartupModelErrorReturnsToPickPhase(t *testing.T) {
	m := newStartupModel(testSession())
	m.phase = phaseOpening

	model, cmd := m.Update(startupResolvedMsg{err: errBoom{}})
	if cmd != nil {
		t.Fatal("expected no command on error return")
	}

	startup := model.(startupModel)
	if startup.phase != phasePick {
		t.Fatalf("expected phasePick, got %v", startup.phase)
	}
	if startup.errMsg == "" {
		t.Fatal("expected error message")
	}
}

func TestStartupModelResolvedSwapsToSimulator(t *testing.T) {
	m := newStartupModel(testSession())
	m.width, m.height = 100, 40

	simModel, err := buildSimModel(ui.ScenarioSelectedMsg{Scenario: config.Default().Current()}, testSession())
	if err != nil {
		t.Fatalf("buildSimModel: %v", err)
	}
	model, cmd := m.Update(startupResolvedMsg{model: simModel})
	if _, ok := model.(ui.Model); !ok {
		t.Fatalf("expected ui.Model, got %T", model)
	}
	if cmd == nil {
		t.Fatal("expected init and resize commands")
	}
}

func TestResolveScenarioReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprint.env")
	body := "MOTIONSIM_NAME=Sprint\nMOTIONSIM_DISTANCE=60\nMOTIONSIM_TIME=7\nMOTIONSIM_TUNING=alt\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := resolveScenario(ui.ScenarioSelectedMsg{Path: path}, sim.DefaultParams())
	if err != nil {
		t.Fatalf("resolveScenario: %v", err)
	}
	if sc.Name != "Sprint" || sc.Params.Distance != 60 || sc.Params.Time != 7 || sc.Tuning != "alt" {
		t.Fatalf("unexpected scenario %+v", sc)
	}
}

func TestResolveScenarioRejectsBadPaths(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{dir, txt, filepath.Join(dir, "missing.env")} {
		if _, err := resolveScenario(ui.ScenarioSelectedMsg{Path: path}, sim.DefaultParams()); err == nil {
			t.Errorf("%s: expected error", path)
		}
	}
}

func TestBuildSimModelRejectsUnknownTuning(t *testing.T) {
	sc := config.Default().Current()
	sc.Tuning = "warp"
	if _, err := buildSimModel(ui.ScenarioSelectedMsg{Scenario: sc}, testSession()); err == nil {
		t.Fatal("expected tuning error")
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
