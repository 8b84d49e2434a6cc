package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/olivier-w/motionsim/internal/sim"
	"github.com/olivier-w/motionsim/internal/util"
)

func fieldRatio(f sim.Field, v float64) float64 {
	if f.Max <= f.Min {
		return 0
	}
	r := (v - f.Min) / (f.Max - f.Min)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

func formatValue(f sim.Field, v float64) string {
	return fmt.Sprintf("%g %s", v, f.Unit)
}

func renderParamRow(f sim.Field, v float64, selected bool, bar progress.Model) string {
	cursor := "  "
	label := labelStyle.Render(f.Label)
	value := valueStyle.Render(formatValue(f, v))
	if selected {
		cursor = selectedStyle.Render("▸ ")
		value = selectedStyle.Render(formatValue(f, v))
	}
	return cursor + label + " " + bar.ViewAs(fieldRatio(f, v)) + "  " + value
}

func renderProgressBar(elapsed, total float64, width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 2

	var ratio float64
	if total > 0 {
		ratio = elapsed / total
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(barWidth))
	return strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
}

func renderSpeed(speed float64, units sim.UnitMode) string {
	return fmt.Sprintf("%6.2f %s", units.Convert(speed), units)
}

// renderObjectLine shows one object's speed against its target, its
// zone, and how far it has travelled.
func renderObjectLine(obj sim.ObjectView, shownSpeed float64, total float64, units sim.UnitMode) string {
	name := objectStyles[obj.ID].Render(obj.ID.String())
	speed := fmt.Sprintf("%s → %.2f", renderSpeed(shownSpeed, units), units.Convert(obj.Target))
	zone := zoneStyles[obj.Zone.String()].Render(fmt.Sprintf("%-6s", obj.Zone))
	dist := fmt.Sprintf("%6.1f m", obj.Distance)
	var done string
	if obj.Arrived {
		done = "arrived " + util.FormatSeconds(obj.ArrivedAt)
	} else {
		done = fmt.Sprintf("%5.1f%%", 100*obj.Distance/max(total, 1e-9))
	}
	return fmt.Sprintf("%s  %s  %s  %s  %s", name, valueStyle.Render(speed), zone, valueStyle.Render(dist), statusStyle.Render(done))
}
