package ui

import "github.com/charmbracelet/harmonica"

// gauge eases displayed speeds toward the simulated ones so the readouts
// don't flicker between frames.
type gauge struct {
	spring harmonica.Spring
	pos    [2]float64
	vel    [2]float64
}

func newGauge(fps int) gauge {
	if fps < 1 {
		fps = 1
	}
	return gauge{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
}

func (g *gauge) step(i int, target float64) float64 {
	p, v := g.spring.Update(g.pos[i], g.vel[i], target)
	if p < 0 {
		p = 0
	}
	g.pos[i] = p
	g.vel[i] = v
	return p
}

func (g *gauge) value(i int) float64 {
	return g.pos[i]
}

func (g *gauge) reset() {
	g.pos = [2]float64{}
	g.vel = [2]float64{}
}
