package main

import (
	"fmt"
	"io"
	"log"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/olivier-w/motionsim/internal/chart"
	"github.com/olivier-w/motionsim/internal/config"
	"github.com/olivier-w/motionsim/internal/sim"
	"github.com/olivier-w/motionsim/internal/util"
)

type runSummary struct {
	Scenario  string
	Tuning    string
	Params    sim.Params
	Elapsed   float64
	Steps     int
	TimedOut  bool
	Objects   [2]sim.ObjectView
	TopSpeed  [2]float64 // m/s, over the retained samples
	ExportDir string
}

// runHeadless drives a scenario to completion with a fixed step. The
// track is laid out one unit per metre. Charts and samples are exported
// when outDir is set.
func runHeadless(sc config.Scenario, step float64, outDir string) (runSummary, error) {
	state, err := newState(sc)
	if err != nil {
		return runSummary{}, err
	}
	p := state.Params()
	state.SetTrackLength(p.Distance)
	state.Start()

	sum := runSummary{Scenario: sc.Name, Tuning: state.Tuning().Name, Params: p}
	for {
		res := state.Tick(step)
		sum.Steps++
		for _, id := range res.Arrived {
			log.Printf("object %s arrived at %.3fs", id, state.Object(id).ArrivedAt)
		}
		if res.Finished {
			break
		}
	}

	sum.Elapsed = state.Elapsed()
	for _, id := range sim.ObjectIDs {
		sum.Objects[id] = state.Object(id)
		for _, v := range state.Series().Speed(id) {
			sum.TopSpeed[id] = max(sum.TopSpeed[id], v)
		}
		if !sum.Objects[id].Arrived {
			sum.TimedOut = true
		}
	}
	if sum.TimedOut {
		log.Printf("run timed out after %.3fs", sum.Elapsed)
	}

	if outDir != "" {
		dir, err := chart.Export(state.Series(), p.Distance, outDir)
		if err != nil {
			return sum, err
		}
		sum.ExportDir = dir
	}
	return sum, nil
}

func writeSummary(w io.Writer, sum runSummary) error {
	units := sum.Params.Units
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("object", "mass", "friction", "arrived", "distance", "top speed")
	for _, obj := range sum.Objects {
		arrived := "-"
		if obj.Arrived {
			arrived = util.FormatSeconds(obj.ArrivedAt)
		}
		t.Row(
			obj.ID.String(),
			fmt.Sprintf("%g kg", sum.Params.Mass[obj.ID]),
			fmt.Sprintf("%g%%", sum.Params.Friction[obj.ID]),
			arrived,
			fmt.Sprintf("%.2f m", obj.Distance),
			fmt.Sprintf("%.2f %s", units.Convert(sum.TopSpeed[obj.ID]), units),
		)
	}

	status := "both arrived"
	if sum.TimedOut {
		status = "timed out"
	}
	if _, err := fmt.Fprintf(w, "%s · %s tuning · %g m in %g s\n",
		sum.Scenario, sum.Tuning, sum.Params.Distance, sum.Params.Time); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s after %s (%d steps)\n", status, util.FormatSeconds(sum.Elapsed), sum.Steps); err != nil {
		return err
	}
	if sum.ExportDir != "" {
		if _, err := fmt.Fprintf(w, "exported to %s\n", sum.ExportDir); err != nil {
			return err
		}
	}
	return nil
}
