// Package track draws the race lanes as Braille text. It implements
// sim.Renderer: each lane is one row of cells, each cell a 2x4 dot grid,
// so a lane of n cells has 2n dot columns of horizontal resolution.
package track

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/olivier-w/motionsim/internal/sim"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

var zoneColors = map[sim.ZoneKind]colorful.Color{
	sim.ZoneNormal: hexOr("#6E6E6E", colorful.Color{}),
	sim.ZoneBoost:  hexOr("#14FFA1", colorful.Color{}),
	sim.ZoneSlow:   hexOr("#FF503C", colorful.Color{}),
}

const minCols = 8

type lane struct {
	id      sim.ObjectID
	color   colorful.Color
	dots    []uint8
	heat    []float64
	marker  int
	arrived bool
}

// Renderer accumulates one frame of drawing calls and renders it with View.
type Renderer struct {
	cols    int
	profile termenv.Profile
	length  float64
	zones   []sim.ZoneKind
	lanes   [2]lane
	drawn   bool
}

// New creates a renderer whose lanes are cols cells wide.
func New(cols int) *Renderer {
	r := &Renderer{profile: terminalProfile()}
	r.Resize(cols)
	return r
}

// Resize changes the lane width in cells.
func (r *Renderer) Resize(cols int) {
	if cols < minCols {
		cols = minCols
	}
	r.cols = cols
	r.zones = make([]sim.ZoneKind, cols)
	for i := range r.lanes {
		r.lanes[i] = lane{
			id:     sim.ObjectID(i),
			dots:   make([]uint8, cols),
			heat:   make([]float64, cols),
			marker: -1,
		}
	}
	r.drawn = false
}

// Cols returns the lane width in cells.
func (r *Renderer) Cols() int { return r.cols }

// Length returns the track length in dot columns, the unit object
// positions are expressed in.
func (r *Renderer) Length() float64 { return float64(r.cols * 2) }

// DrawTrack starts a new frame and paints the zone backdrop.
func (r *Renderer) DrawTrack(zones sim.Zones, length float64) {
	r.length = length
	for c := range r.cols {
		frac := (float64(c) + 0.5) / float64(r.cols)
		r.zones[c] = zones.Lookup(frac).Kind
	}
	for i := range r.lanes {
		l := &r.lanes[i]
		clear(l.dots)
		clear(l.heat)
		l.marker = -1
		l.arrived = false
	}
	r.drawn = true
}

// DrawTrail plots trail samples; newer samples burn brighter.
func (r *Renderer) DrawTrail(obj sim.ObjectView, trail []sim.TrailSample) {
	if !r.drawn || r.length <= 0 || len(trail) == 0 {
		return
	}
	l := &r.lanes[obj.ID]
	l.color = hexOr(obj.Color, labelColor)

	dotCols := r.cols * 2
	n := float64(len(trail))
	for i, s := range trail {
		dc := int(s.Position / r.length * float64(dotCols))
		if dc < 0 {
			dc = 0
		}
		if dc >= dotCols {
			dc = dotCols - 1
		}
		cell, dx := dc/2, dc%2
		l.dots[cell] |= 1<<brailleBits[dx][1] | 1<<brailleBits[dx][2]
		if heat := float64(i+1) / n; heat > l.heat[cell] {
			l.heat[cell] = heat
		}
	}
}

// DrawObject places the object's marker.
func (r *Renderer) DrawObject(obj sim.ObjectView) {
	if !r.drawn || r.length <= 0 {
		return
	}
	l := &r.lanes[obj.ID]
	l.color = hexOr(obj.Color, labelColor)
	cell := int(obj.Position / r.length * float64(r.cols))
	if cell >= r.cols {
		cell = r.cols - 1
	}
	if cell < 0 {
		cell = 0
	}
	l.marker = cell
	l.arrived = obj.Arrived
}

// View renders the last frame: lane A, the zone strip, lane B.
func (r *Renderer) View() string {
	if !r.drawn {
		return ""
	}
	rows := []string{
		r.renderLane(&r.lanes[sim.ObjectA]),
		r.renderZones(),
		r.renderLane(&r.lanes[sim.ObjectB]),
	}
	return strings.Join(rows, "\n")
}

func (r *Renderer) renderLane(l *lane) string {
	var sb strings.Builder
	st := newPen(r.profile)

	st.set(&sb, l.color)
	sb.WriteString(l.id.String())
	sb.WriteByte(' ')

	for c := range r.cols {
		switch {
		case c == l.marker:
			st.set(&sb, l.color)
			if l.arrived {
				sb.WriteRune('◆')
			} else {
				sb.WriteRune('●')
			}
		case l.dots[c] != 0:
			st.set(&sb, fade(l.color, l.heat[c]))
			sb.WriteRune(rune(0x2800 + int(l.dots[c])))
		default:
			sb.WriteByte(' ')
		}
	}
	st.set(&sb, finishColor)
	sb.WriteRune('┃')
	st.reset(&sb)
	return sb.String()
}

func (r *Renderer) renderZones() string {
	var sb strings.Builder
	st := newPen(r.profile)
	sb.WriteString("  ")
	for c := range r.cols {
		st.set(&sb, zoneColors[r.zones[c]])
		sb.WriteRune('━')
	}
	st.set(&sb, finishColor)
	sb.WriteRune('┫')
	st.reset(&sb)
	return sb.String()
}
