// Package chart draws the telemetry series: live terminal charts with
// asciigraph, and PNG/CSV exports with gonum/plot.
package chart

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/olivier-w/motionsim/internal/sim"
)

var seriesColors = []asciigraph.AnsiColor{asciigraph.DarkOrange, asciigraph.DodgerBlue}

const minHeight = 3

// Distance plots distance vs time for both objects. The vertical axis
// runs to the larger of the observed maximum and the total distance.
func Distance(s *sim.Series, totalDistance float64, width, height int) string {
	if s.Len() < 2 {
		return ""
	}
	upper := max(s.MaxDistance(), totalDistance)
	caption := fmt.Sprintf("distance (m)  0–%.1fs  A/B", s.Time[s.Len()-1])
	return plot(s.DistanceA, s.DistanceB, upper, caption, width, height)
}

// Speed plots speed vs time for both objects in the selected units.
func Speed(s *sim.Series, units sim.UnitMode, width, height int) string {
	if s.Len() < 2 {
		return ""
	}
	a := convert(s.SpeedA, units)
	b := convert(s.SpeedB, units)
	upper := max(units.Convert(s.MaxSpeed()), 1)
	caption := fmt.Sprintf("speed (%s)  0–%.1fs  A/B", units, s.Time[s.Len()-1])
	return plot(a, b, upper, caption, width, height)
}

func plot(a, b []float64, upper float64, caption string, width, height int) string {
	if width < 10 {
		width = 10
	}
	if height < minHeight {
		height = minHeight
	}
	return asciigraph.PlotMany(
		[][]float64{a, b},
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(upper),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(seriesColors...),
		asciigraph.Caption(caption),
	)
}

func convert(xs []float64, units sim.UnitMode) []float64 {
	if units == sim.UnitsMetric {
		return xs
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = units.Convert(x)
	}
	return out
}
