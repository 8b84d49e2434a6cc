package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivier-w/motionsim/internal/chart"
	"github.com/olivier-w/motionsim/internal/config"
	"github.com/olivier-w/motionsim/internal/sim"
)

func zeroFriction() config.Scenario {
	p := sim.DefaultParams()
	p.Mass = [2]float64{10, 10}
	p.Friction = [2]float64{0, 0}
	return config.Scenario{Name: "flat", Params: p, Tuning: "classic"}
}

func TestRunHeadlessBothArrive(t *testing.T) {
	sum, err := runHeadless(zeroFriction(), 1.0/60, "")
	if err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if sum.TimedOut {
		t.Fatal("expected both objects to arrive")
	}
	for _, obj := range sum.Objects {
		if obj.Distance != 100 {
			t.Fatalf("object %s: expected distance clamped to 100, got %v", obj.ID, obj.Distance)
		}
		if obj.ArrivedAt < 8 || obj.ArrivedAt > 15 {
			t.Fatalf("object %s: arrival %v outside [8,15]", obj.ID, obj.ArrivedAt)
		}
	}
	if sum.ExportDir != "" {
		t.Fatal("expected no export without an output dir")
	}
}

func TestRunHeadlessIsDeterministic(t *testing.T) {
	a, err := runHeadless(zeroFriction(), 0.01, "")
	if err != nil {
		t.Fatal(err)
	}
	b, err := runHeadless(zeroFriction(), 0.01, "")
	if err != nil {
		t.Fatal(err)
	}
	if a.Steps != b.Steps || a.Elapsed != b.Elapsed || a.Objects[1].ArrivedAt != b.Objects[1].ArrivedAt {
		t.Fatalf("runs differ: %+v vs %+v", a, b)
	}
}

func TestRunHeadlessTimesOutWithFullFriction(t *testing.T) {
	sc := zeroFriction()
	sc.Params.Friction[sim.ObjectB] = 100
	sum, err := runHeadless(sc, 0.05, "")
	if err != nil {
		t.Fatal(err)
	}
	if !sum.TimedOut {
		t.Fatal("expected timeout")
	}
	if sum.Objects[sim.ObjectB].Arrived {
		t.Fatal("expected B still on the track")
	}
	if sum.Elapsed <= sim.Classic().Timeout(sc.Params.Time) {
		t.Fatalf("expected elapsed past the timeout, got %v", sum.Elapsed)
	}
}

func TestRunHeadlessExports(t *testing.T) {
	out := t.TempDir()
	sum, err := runHeadless(zeroFriction(), 0.05, out)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(sum.ExportDir) != out {
		t.Fatalf("expected run dir under %s, got %s", out, sum.ExportDir)
	}
	for _, name := range []string{chart.SamplesFile, chart.DistanceFile, chart.SpeedFile} {
		if _, err := os.Stat(filepath.Join(sum.ExportDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	sum, err := runHeadless(zeroFriction(), 0.05, "")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeSummary(&buf, sum); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"flat", "classic tuning", "both arrived", "top speed", "100.00 m"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected summary to contain %q:\n%s", want, out)
		}
	}
}
