package chart

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olivier-w/motionsim/internal/sim"
	"github.com/segmentio/ksuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Exported file names inside a run directory.
const (
	DistanceFile = "distance.png"
	SpeedFile    = "speed.png"
	SamplesFile  = "samples.csv"
)

var lineColors = [2]color.RGBA{
	{R: 0xFF, G: 0x8C, B: 0x00, A: 0xFF},
	{R: 0x1E, G: 0x90, B: 0xFF, A: 0xFF},
}

// Export writes both charts and the raw samples into a new run directory
// under dir and returns its path.
func Export(s *sim.Series, totalDistance float64, dir string) (string, error) {
	if s.Len() == 0 {
		return "", fmt.Errorf("no samples to export")
	}
	runDir := filepath.Join(dir, "run-"+ksuid.New().String())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	if err := WriteCSV(s, filepath.Join(runDir, SamplesFile)); err != nil {
		return "", err
	}

	dist := newPlot("Distance vs time", "distance (m)")
	dist.Y.Max = math.Max(s.MaxDistance(), totalDistance)
	if err := addLines(dist, s.Time, s.DistanceA, s.DistanceB); err != nil {
		return "", err
	}
	if err := savePlotPNG(dist, 8, 5, filepath.Join(runDir, DistanceFile)); err != nil {
		return "", err
	}

	speed := newPlot("Speed vs time", "speed (m/s)")
	speed.Y.Max = math.Max(s.MaxSpeed(), 1)
	if err := addLines(speed, s.Time, s.SpeedA, s.SpeedB); err != nil {
		return "", err
	}
	if err := savePlotPNG(speed, 8, 5, filepath.Join(runDir, SpeedFile)); err != nil {
		return "", err
	}
	return runDir, nil
}

// WriteCSV writes the series with a header row.
func WriteCSV(s *sim.Series, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time_s", "distance_a_m", "distance_b_m", "speed_a_mps", "speed_b_mps"}); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	for i := range s.Len() {
		row := s.Row(i)
		rec := []string{
			formatFloat(row.Time),
			formatFloat(row.DistanceA),
			formatFloat(row.DistanceB),
			formatFloat(row.SpeedA),
			formatFloat(row.SpeedB),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func newPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())
	stylePlot(p)
	return p
}

func addLines(p *plot.Plot, ts, a, b []float64) error {
	for i, ys := range [][]float64{a, b} {
		pts := make(plotter.XYs, len(ts))
		for j := range ts {
			pts[j].X = ts[j]
			pts[j].Y = ys[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("building %s line: %w", sim.ObjectIDs[i], err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = lineColors[i]
		p.Add(line)
		p.Legend.Add(sim.ObjectIDs[i].String(), line)
	}
	return nil
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.Y.Tick.Label.Font.Size = vg.Points(10)
	p.X.Tick.Marker = limitedTicker(8, "%.1f")
	p.Y.Tick.Marker = limitedTicker(8, "%.0f")
}

func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := range maxLabels {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func savePlotPNG(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}
