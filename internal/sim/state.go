// Package sim implements the two-object motion simulator: a discrete
// Euler integrator that drives each object's speed toward a zone-adjusted
// target, records trails and telemetry, and finishes when both objects
// arrive or the run exceeds its safety timeout.
//
// State is owned by a single caller. Nothing here blocks, sleeps or
// reads the wall clock except Frame, which takes the timestamp as an
// argument.
package sim

import (
	"math"
	"time"
)

// Phase is the lifecycle state of a run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	default:
		return "idle"
	}
}

// StepResult reports the outcome of one Tick.
type StepResult struct {
	Running  bool
	Finished bool
	Skipped  bool       // no track geometry yet
	Arrived  []ObjectID // objects that crossed the finish this frame
}

// State is the complete simulation state.
type State struct {
	params      Params
	tuning      Tuning
	phase       Phase
	clock       Clock
	objects     [2]Object
	series      *Series
	trackPixels float64
}

// New creates an idle simulation.
func New(p Params, t Tuning) *State {
	s := &State{
		params: p.Clamped(),
		tuning: t,
		series: NewSeries(t.SeriesCapacity),
	}
	for _, id := range ObjectIDs {
		s.objects[id] = newObject(id, t.TrailCapacity)
	}
	return s
}

// Params returns the current parameters.
func (s *State) Params() Params { return s.params }

// SetParams replaces the parameters. Values are clamped into bounds and
// drive the next step. An arrived object stays on the finish line when
// the distance changes.
func (s *State) SetParams(p Params) {
	s.params = p.Clamped()
	for i := range s.objects {
		o := &s.objects[i]
		if o.Arrived {
			o.Distance = s.params.Distance
		}
	}
}

// Tuning returns the active tuning.
func (s *State) Tuning() Tuning { return s.tuning }

// Phase returns the lifecycle phase.
func (s *State) Phase() Phase { return s.phase }

// Elapsed returns simulated seconds since start.
func (s *State) Elapsed() float64 { return s.clock.Elapsed }

// Series returns the telemetry series. Callers must not modify it.
func (s *State) Series() *Series { return s.series }

// Object returns a read-only view of one object.
func (s *State) Object(id ObjectID) ObjectView {
	return s.objects[id].view(s.scale(), s.params.Distance)
}

// SetTrackLength establishes the rendering length of the track. Until it
// is positive every Tick is a no-op. Objects and trails are kept in
// metres, so a resize rescales everything already drawn.
func (s *State) SetTrackLength(pixels float64) {
	if pixels != pixels || pixels < 0 {
		pixels = 0
	}
	s.trackPixels = pixels
}

// TrackLength returns the rendering length of the track.
func (s *State) TrackLength() float64 { return s.trackPixels }

func (s *State) scale() float64 {
	return s.trackPixels / s.params.Distance
}

// Start moves Idle or Paused to Running. Finished runs must be reset.
func (s *State) Start() bool {
	switch s.phase {
	case PhaseIdle, PhasePaused:
		s.phase = PhaseRunning
		s.clock.Running = true
		s.clock.LastFrame = time.Time{}
		return true
	}
	return false
}

// Pause moves Running to Paused.
func (s *State) Pause() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.phase = PhasePaused
	s.clock.Running = false
	return true
}

// Toggle starts an idle or paused run and pauses a running one.
func (s *State) Toggle() bool {
	if s.phase == PhaseRunning {
		return s.Pause()
	}
	return s.Start()
}

// Stop ends a running or paused run.
func (s *State) Stop() bool {
	if s.phase != PhaseRunning && s.phase != PhasePaused {
		return false
	}
	s.finish()
	return true
}

// Reset returns to Idle and discards the clock, trails and samples.
// Parameters and track geometry are kept.
func (s *State) Reset() {
	s.phase = PhaseIdle
	s.clock.reset()
	s.series.Clear()
	for i := range s.objects {
		s.objects[i].reset()
	}
}

func (s *State) finish() {
	s.phase = PhaseFinished
	s.clock.Running = false
}

// Frame derives dt from the wall-clock timestamp and calls Tick.
func (s *State) Frame(now time.Time) StepResult {
	if s.phase != PhaseRunning {
		return s.Tick(0)
	}
	return s.Tick(s.clock.frameDelta(now))
}

// Tick advances a running simulation by dt seconds (clamped to the
// tuning's MaxStep) and finishes the run once ShouldFinish holds.
func (s *State) Tick(dt float64) StepResult {
	if s.phase != PhaseRunning {
		return StepResult{Finished: s.phase == PhaseFinished}
	}
	if s.trackPixels <= 0 {
		return StepResult{Running: true, Skipped: true}
	}

	arrived := s.step(dt)
	if s.ShouldFinish() {
		s.finish()
		return StepResult{Finished: true, Arrived: arrived}
	}
	return StepResult{Running: true, Arrived: arrived}
}

// ShouldFinish reports whether both objects have arrived or the run has
// exceeded the tuning's timeout for the configured total time.
func (s *State) ShouldFinish() bool {
	if s.objects[ObjectA].Arrived && s.objects[ObjectB].Arrived {
		return true
	}
	return s.clock.Elapsed > s.tuning.Timeout(s.params.Time)
}

// step integrates both objects, advances the clock and records a sample.
func (s *State) step(dt float64) []ObjectID {
	if dt != dt || dt < 0 {
		dt = 0
	}
	dt = math.Min(dt, s.tuning.MaxStep)

	p := s.params
	now := s.clock.Elapsed + dt
	base := BaseSpeed(p)

	var arrived []ObjectID
	for _, id := range ObjectIDs {
		if s.advanceObject(&s.objects[id], p, base, dt, now) {
			arrived = append(arrived, id)
		}
	}

	s.clock.Elapsed = now
	a, b := &s.objects[ObjectA], &s.objects[ObjectB]
	s.series.Append(Sample{
		Time:      now,
		DistanceA: a.Distance,
		DistanceB: b.Distance,
		SpeedA:    a.Speed,
		SpeedB:    b.Speed,
	})
	return arrived
}

// advanceObject runs one Euler step for o and reports a new arrival.
func (s *State) advanceObject(o *Object, p Params, base, dt, now float64) bool {
	if o.Arrived {
		o.Speed = 0
		o.Distance = p.Distance
		return false
	}

	t := s.tuning
	friction := p.Friction[o.ID]
	zone := t.Zones.Lookup(o.Distance / p.Distance)
	o.Zone = zone.Kind
	o.Target = t.TargetSpeed(base, o.Offset, friction) * zone.Multiplier

	accel := (o.Target - o.Speed) / t.MassFactor(p.Mass[o.ID])
	resistance := t.Resistance(friction, o.Speed)
	o.Speed = math.Max(0, o.Speed+(accel-resistance)*dt)
	o.Distance += o.Speed * dt

	done := o.Distance >= p.Distance
	if done {
		o.Distance = p.Distance
	}
	o.trail.Push(TrailSample{Distance: o.Distance, Time: now, Speed: o.Speed})

	if done {
		o.Speed = 0
		o.Arrived = true
		o.ArrivedAt = now
	}
	return done
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Phase       Phase
	Elapsed     float64
	Params      Params
	Zones       Zones
	TrackLength float64
	Objects     [2]ObjectView
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:       s.phase,
		Elapsed:     s.clock.Elapsed,
		Params:      s.params,
		Zones:       s.tuning.Zones,
		TrackLength: s.trackPixels,
	}
	scale := s.scale()
	for _, id := range ObjectIDs {
		snap.Objects[id] = s.objects[id].view(scale, s.params.Distance)
	}
	return snap
}
