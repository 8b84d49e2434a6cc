package sim

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func newRunning(t *testing.T, p Params) *State {
	t.Helper()
	s := New(p, Classic())
	s.SetTrackLength(500)
	if !s.Start() {
		t.Fatal("expected Start to succeed from idle")
	}
	return s
}

func runUntilDone(s *State, dt float64, maxSteps int) int {
	for i := range maxSteps {
		if r := s.Tick(dt); r.Finished {
			return i + 1
		}
	}
	return maxSteps
}

func TestTickSkipsWithoutGeometry(t *testing.T) {
	s := New(DefaultParams(), Classic())
	s.Start()

	r := s.Tick(0.05)
	if !r.Skipped || !r.Running {
		t.Fatalf("expected skipped running frame, got %+v", r)
	}
	if s.Elapsed() != 0 {
		t.Fatalf("expected clock untouched, got %v", s.Elapsed())
	}
	if s.Series().Len() != 0 {
		t.Fatalf("expected no samples, got %d", s.Series().Len())
	}
}

func TestTickIgnoredUnlessRunning(t *testing.T) {
	s := New(DefaultParams(), Classic())
	s.SetTrackLength(100)

	if r := s.Tick(0.05); r.Running || r.Finished {
		t.Fatalf("expected idle no-op, got %+v", r)
	}
	s.Start()
	s.Tick(0.05)
	s.Pause()
	before := s.Elapsed()
	s.Tick(0.05)
	if s.Elapsed() != before {
		t.Fatalf("paused tick advanced clock: %v -> %v", before, s.Elapsed())
	}
}

func TestTickClampsLongFrames(t *testing.T) {
	s := newRunning(t, DefaultParams())
	s.Tick(5)
	if got := s.Elapsed(); got != Classic().MaxStep {
		t.Fatalf("expected dt clamped to %v, got %v", Classic().MaxStep, got)
	}
	s.Tick(-1)
	if got := s.Elapsed(); got != Classic().MaxStep {
		t.Fatalf("expected negative dt ignored, got %v", got)
	}
}

func TestSpeedBoundedAndDistanceMonotonic(t *testing.T) {
	cases := []Params{
		DefaultParams(),
		{Distance: 100, Time: 10, Mass: [2]float64{1, 200}, Friction: [2]float64{0, 100}},
		{Distance: 10000, Time: 1, Mass: [2]float64{1, 1}, Friction: [2]float64{0, 0}},
		{Distance: 1, Time: 3600, Mass: [2]float64{200, 200}, Friction: [2]float64{100, 100}},
		{Distance: 500, Time: 30, Mass: [2]float64{5, 50}, Friction: [2]float64{50, 75}},
	}
	dts := []float64{0.001, 0.016, 0.1}

	for _, p := range cases {
		for _, dt := range dts {
			s := newRunning(t, p)
			ceiling := BaseSpeed(p) * (1 + objectOffsets[ObjectB]) * 1.5
			prev := [2]float64{}
			for i := 0; i < 20000 && s.Phase() == PhaseRunning; i++ {
				s.Tick(dt)
				for _, id := range ObjectIDs {
					o := &s.objects[id]
					if o.Speed < 0 {
						t.Fatalf("%+v dt=%v: negative speed %v", p, dt, o.Speed)
					}
					if o.Speed > ceiling+1e-9 {
						t.Fatalf("%+v dt=%v: speed %v above ceiling %v", p, dt, o.Speed, ceiling)
					}
					if o.Distance < prev[id] {
						t.Fatalf("%+v dt=%v: distance went backwards %v -> %v", p, dt, prev[id], o.Distance)
					}
					if o.Distance > p.Distance {
						t.Fatalf("%+v dt=%v: distance %v past finish %v", p, dt, o.Distance, p.Distance)
					}
					prev[id] = o.Distance
				}
			}
		}
	}
}

func TestZeroFrictionScenarioArrivesNearTotalTime(t *testing.T) {
	p := Params{Distance: 100, Time: 10, Mass: [2]float64{10, 10}}
	s := newRunning(t, p)

	if got := BaseSpeed(p); got != 10 {
		t.Fatalf("expected base speed 10, got %v", got)
	}
	if got := s.Tuning().MassFactor(10); got != 1 {
		t.Fatalf("expected mass factor 1, got %v", got)
	}

	// Cruise inside the normal zone until speed settles near the target.
	for s.Object(ObjectA).Distance < 40 {
		s.Tick(0.01)
	}
	if a := s.Object(ObjectA); math.Abs(a.Speed-10) > 0.5 {
		t.Fatalf("expected speed near 10 m/s in normal zone, got %v", a.Speed)
	}

	runUntilDone(s, 0.01, 100000)
	a := s.Object(ObjectA)
	if !a.Arrived {
		t.Fatal("expected A to arrive")
	}
	if a.ArrivedAt < 8 || a.ArrivedAt > 15 {
		t.Fatalf("expected arrival near t=10s, got %v", a.ArrivedAt)
	}
	if a.Distance != 100 || a.Speed != 0 {
		t.Fatalf("expected clamped at finish with zero speed, got d=%v v=%v", a.Distance, a.Speed)
	}
}

func TestFullFrictionStillProgresses(t *testing.T) {
	p := Params{Distance: 100, Time: 10, Mass: [2]float64{10, 10}, Friction: [2]float64{100, 100}}
	s := newRunning(t, p)
	tuning := s.Tuning()

	if got := tuning.FrictionDerate(100); got != 0.9 {
		t.Fatalf("expected derate clamp 0.9, got %v", got)
	}
	if got := tuning.TargetSpeed(BaseSpeed(p), 0, 100); math.Abs(got-1) > 1e-12 {
		t.Fatalf("expected target 10%% of base, got %v", got)
	}

	// The safety valve ends the run first.
	runUntilDone(s, 0.05, 100000)
	if s.Elapsed() <= tuning.Timeout(p.Time) {
		t.Fatalf("expected timeout finish after %v, got %v", tuning.Timeout(p.Time), s.Elapsed())
	}
	if a := s.Object(ObjectA); a.Arrived || a.Distance <= 0 {
		t.Fatalf("expected partial progress, got %+v", a)
	}

	// Without the valve the object keeps moving and arrives.
	for i := 0; i < 100000 && !s.objects[ObjectA].Arrived; i++ {
		s.step(0.05)
	}
	if !s.objects[ObjectA].Arrived {
		t.Fatalf("expected eventual arrival, stuck at %v", s.objects[ObjectA].Distance)
	}
}

func TestZoneMultiplierAppliedToTarget(t *testing.T) {
	s := newRunning(t, Params{Distance: 100, Time: 10, Mass: [2]float64{10, 10}})
	s.objects[ObjectA].Distance = 50
	s.Tick(0.01)

	a := s.Object(ObjectA)
	if a.Zone != ZoneBoost {
		t.Fatalf("expected boost zone, got %v", a.Zone)
	}
	if math.Abs(a.Target-15) > 1e-9 {
		t.Fatalf("expected target 15, got %v", a.Target)
	}
}

func TestFinishRequiresBothArrivals(t *testing.T) {
	s := newRunning(t, Params{Distance: 100, Time: 10, Mass: [2]float64{10, 10}})
	s.objects[ObjectA].Distance = 99.99
	s.objects[ObjectA].Speed = 10

	r := s.Tick(0.01)
	if !reflect.DeepEqual(r.Arrived, []ObjectID{ObjectA}) {
		t.Fatalf("expected A arrival reported, got %v", r.Arrived)
	}
	if r.Finished || s.Phase() != PhaseRunning {
		t.Fatalf("expected run to continue until B arrives, got %+v", r)
	}

	s.objects[ObjectB].Distance = 99.99
	s.objects[ObjectB].Speed = 10
	r = s.Tick(0.01)
	if !r.Finished || s.Phase() != PhaseFinished {
		t.Fatalf("expected finish, got %+v phase=%v", r, s.Phase())
	}
}

func TestShrinkingDistanceArrivesAtNewFinish(t *testing.T) {
	s := newRunning(t, Params{Distance: 100, Time: 10, Mass: [2]float64{10, 10}})
	for s.Object(ObjectA).Distance < 60 {
		s.Tick(0.05)
	}

	p := s.Params()
	p.Distance = 50
	s.SetParams(p)
	r := s.Tick(0.05)

	a := s.Object(ObjectA)
	if !a.Arrived || a.Distance != 50 {
		t.Fatalf("expected arrival at new finish 50, got %+v", a)
	}
	if a.Position != s.TrackLength() {
		t.Fatalf("expected position at track end %v, got %v", s.TrackLength(), a.Position)
	}
	if len(r.Arrived) == 0 {
		t.Fatal("expected arrivals reported")
	}
}

func TestDeterministicSeries(t *testing.T) {
	dts := []float64{0.016, 0.017, 0.033, 0.2, 0.001, 0.05}
	run := func() *Series {
		s := newRunning(t, DefaultParams())
		for i := range 3000 {
			if s.Tick(dts[i%len(dts)]).Finished {
				break
			}
		}
		return s.Series()
	}

	a, b := run(), run()
	if a.Len() == 0 {
		t.Fatal("expected samples")
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected identical series for identical inputs")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s := newRunning(t, DefaultParams())
	for range 200 {
		s.Tick(0.05)
	}

	s.Reset()
	once := s.Snapshot()
	onceLen := s.Series().Len()
	s.Reset()
	twice := s.Snapshot()

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected identical snapshots:\n%+v\n%+v", once, twice)
	}
	if once.Phase != PhaseIdle || once.Elapsed != 0 || onceLen != 0 {
		t.Fatalf("expected cleared idle state, got phase=%v elapsed=%v samples=%d", once.Phase, once.Elapsed, onceLen)
	}
	for _, obj := range once.Objects {
		if obj.Trail != nil || obj.Distance != 0 || obj.Speed != 0 || obj.Arrived {
			t.Fatalf("expected cleared object, got %+v", obj)
		}
	}
}

func TestPhaseTransitions(t *testing.T) {
	s := New(DefaultParams(), Classic())
	if s.Pause() || s.Stop() {
		t.Fatal("expected pause/stop to be rejected while idle")
	}
	if !s.Start() || s.Phase() != PhaseRunning {
		t.Fatal("expected idle -> running")
	}
	if !s.Pause() || s.Phase() != PhasePaused {
		t.Fatal("expected running -> paused")
	}
	if !s.Toggle() || s.Phase() != PhaseRunning {
		t.Fatal("expected paused -> running")
	}
	if !s.Stop() || s.Phase() != PhaseFinished {
		t.Fatal("expected running -> finished")
	}
	if s.Start() || s.Toggle() {
		t.Fatal("expected finished run to stay finished")
	}
	s.Reset()
	if s.Phase() != PhaseIdle {
		t.Fatalf("expected idle after reset, got %v", s.Phase())
	}
}

func TestFrameDerivesDeltaFromTimestamps(t *testing.T) {
	s := newRunning(t, DefaultParams())
	t0 := time.Unix(1000, 0)

	s.Frame(t0)
	if s.Elapsed() != 0 {
		t.Fatalf("expected first frame dt=0, got %v", s.Elapsed())
	}
	s.Frame(t0.Add(50 * time.Millisecond))
	if math.Abs(s.Elapsed()-0.05) > 1e-9 {
		t.Fatalf("expected 0.05s elapsed, got %v", s.Elapsed())
	}

	s.Pause()
	s.Start()
	s.Frame(t0.Add(time.Hour))
	if math.Abs(s.Elapsed()-0.05) > 1e-9 {
		t.Fatalf("expected resume frame dt=0, got %v", s.Elapsed())
	}
}

func TestSeriesRowsMatchObjects(t *testing.T) {
	s := newRunning(t, DefaultParams())
	for range 10 {
		s.Tick(0.02)
	}
	last, ok := s.Series().Last()
	if !ok {
		t.Fatal("expected a last row")
	}
	a, b := s.Object(ObjectA), s.Object(ObjectB)
	if last.DistanceA != a.Distance || last.DistanceB != b.Distance || last.SpeedA != a.Speed || last.SpeedB != b.Speed {
		t.Fatalf("row %+v does not match objects A=%+v B=%+v", last, a, b)
	}
	if math.Abs(last.Time-s.Elapsed()) > 1e-12 {
		t.Fatalf("row time %v != elapsed %v", last.Time, s.Elapsed())
	}
}

func TestTrailCappedAtTuningCapacity(t *testing.T) {
	tuning := Classic()
	tuning.TrailCapacity = 16
	s := New(Params{Distance: 10000, Time: 3600, Mass: [2]float64{10, 10}}, tuning)
	s.SetTrackLength(100)
	s.Start()
	for range 100 {
		s.Tick(0.01)
	}
	trail := s.Object(ObjectA).Trail
	if len(trail) != 16 {
		t.Fatalf("expected 16 trail samples, got %d", len(trail))
	}
	for i := 1; i < len(trail); i++ {
		if trail[i].Time <= trail[i-1].Time {
			t.Fatalf("expected oldest-first trail, got %v then %v", trail[i-1].Time, trail[i].Time)
		}
	}
}

func TestResizeRescalesTrail(t *testing.T) {
	s := newRunning(t, Params{Distance: 100, Time: 10, Mass: [2]float64{10, 10}})
	for s.Object(ObjectA).Distance < 50 {
		s.Tick(0.05)
	}

	s.SetTrackLength(100)
	a := s.Object(ObjectA)
	if math.Abs(a.Position-a.Distance) > 1e-9 {
		t.Fatalf("expected position %v on a 100-unit track, got %v", a.Distance, a.Position)
	}
	newest := a.Trail[len(a.Trail)-1]
	if newest.Position > s.TrackLength() || math.Abs(newest.Position-a.Position) > 1e-9 {
		t.Fatalf("expected newest trail sample at %v, got %v", a.Position, newest.Position)
	}
	for _, sample := range a.Trail {
		if sample.Position < 0 || sample.Position > s.TrackLength() {
			t.Fatalf("trail sample %v outside the track", sample.Position)
		}
	}
}

func TestSetParamsWhilePausedKeepsPositionsConsistent(t *testing.T) {
	s := newRunning(t, Params{Distance: 100, Time: 10, Mass: [2]float64{10, 10}})
	for s.Object(ObjectA).Distance < 40 {
		s.Tick(0.05)
	}
	s.Pause()

	p := s.Params()
	p.Distance = 200
	s.SetParams(p)

	a := s.Object(ObjectA)
	want := a.Distance * s.TrackLength() / 200
	if math.Abs(a.Position-want) > 1e-9 {
		t.Fatalf("expected position %v after distance change, got %v", want, a.Position)
	}
}

func TestSetParamsAfterFinishKeepsArrivalsAtFinish(t *testing.T) {
	s := newRunning(t, Params{Distance: 20, Time: 2, Mass: [2]float64{10, 10}})
	runUntilDone(s, 0.05, 10000)
	if s.Phase() != PhaseFinished {
		t.Fatalf("expected finished, got %v", s.Phase())
	}

	p := s.Params()
	p.Distance = 10
	s.SetParams(p)

	snap := s.Snapshot()
	for _, obj := range snap.Objects {
		if obj.Distance != 10 {
			t.Fatalf("object %s: expected distance 10, got %v", obj.ID, obj.Distance)
		}
		if math.Abs(obj.Position-snap.TrackLength) > 1e-9 {
			t.Fatalf("object %s: expected position at finish, got %v", obj.ID, obj.Position)
		}
		for _, sample := range obj.Trail {
			if sample.Position > snap.TrackLength+1e-9 {
				t.Fatalf("object %s: trail sample %v past the finish", obj.ID, sample.Position)
			}
		}
	}
}
