package sim

import (
	"fmt"
	"math"
	"strings"
)

// Tuning holds the constants of the physics step. Classic is canonical;
// Alternate keeps the same model with a narrower normal zone and
// stronger damping.
type Tuning struct {
	Name  string
	Zones Zones

	MaxFrictionDerate float64 // derate at 100% friction
	MassDivisor       float64 // mass / this = responsiveness factor
	MinMassFactor     float64
	MaxMassFactor     float64
	ResistanceCoeff   float64
	ResistanceScale   float64

	MaxStep        float64 // seconds
	TimeoutFactor  float64
	TimeoutGrace   float64 // seconds
	TrailCapacity  int
	SeriesCapacity int
}

const speedEpsilon = 1e-6

// Classic returns the canonical tuning.
func Classic() Tuning {
	return Tuning{
		Name: "classic",
		Zones: mustZones(
			Zone{Kind: ZoneNormal, Start: 0, End: 0.45, Multiplier: 1.0},
			Zone{Kind: ZoneBoost, Start: 0.45, End: 0.70, Multiplier: 1.5},
			Zone{Kind: ZoneSlow, Start: 0.70, End: 1.0, Multiplier: 0.6},
		),
		MaxFrictionDerate: 0.9,
		MassDivisor:       10,
		MinMassFactor:     0.5,
		MaxMassFactor:     50,
		ResistanceCoeff:   0.8,
		ResistanceScale:   0.01,
		MaxStep:           0.1,
		TimeoutFactor:     1.5,
		TimeoutGrace:      5,
		TrailCapacity:     400,
		SeriesCapacity:    6000,
	}
}

// Alternate returns the second tuning.
func Alternate() Tuning {
	t := Classic()
	t.Name = "alt"
	t.Zones = mustZones(
		Zone{Kind: ZoneNormal, Start: 0, End: 0.40, Multiplier: 1.0},
		Zone{Kind: ZoneBoost, Start: 0.40, End: 0.65, Multiplier: 1.5},
		Zone{Kind: ZoneSlow, Start: 0.65, End: 1.0, Multiplier: 0.6},
	)
	t.ResistanceScale = 0.02
	return t
}

// TuningNames lists the names accepted by TuningByName.
func TuningNames() []string { return []string{"classic", "alt"} }

// TuningByName returns a named tuning.
func TuningByName(name string) (Tuning, error) {
	var t Tuning
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "classic":
		t = Classic()
	case "alt", "alternate":
		t = Alternate()
	default:
		return Tuning{}, fmt.Errorf("unknown tuning %q (want %s)", name, strings.Join(TuningNames(), " or "))
	}
	if err := t.Zones.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning %s: %w", t.Name, err)
	}
	return t, nil
}

// mustZones is NewZones for built-in tables. It panics on a bad table.
func mustZones(zs ...Zone) Zones {
	z, err := NewZones(zs...)
	if err != nil {
		panic(err)
	}
	return z
}

// BaseSpeed is the average speed needed to cover the distance in the time.
func BaseSpeed(p Params) float64 {
	return p.Distance / math.Max(p.Time, speedEpsilon)
}

// FrictionDerate maps a friction percentage linearly onto
// [0, MaxFrictionDerate].
func (t Tuning) FrictionDerate(pct float64) float64 {
	return clamp(pct/100, 0, 1) * t.MaxFrictionDerate
}

// MassFactor maps mass onto the responsiveness divisor.
func (t Tuning) MassFactor(mass float64) float64 {
	return clamp(mass/t.MassDivisor, t.MinMassFactor, t.MaxMassFactor)
}

// TargetSpeed is the zone-free speed an object is driven toward.
func (t Tuning) TargetSpeed(base, offset, frictionPct float64) float64 {
	return base * (1 + offset) * (1 - t.FrictionDerate(frictionPct))
}

// Resistance is the speed-proportional damping term.
func (t Tuning) Resistance(frictionPct, speed float64) float64 {
	return frictionPct / 100 * t.ResistanceCoeff * speed * t.ResistanceScale
}

// Timeout is the elapsed time after which a run is finished regardless
// of arrivals.
func (t Tuning) Timeout(totalTime float64) float64 {
	return math.Max(totalTime*t.TimeoutFactor, totalTime+t.TimeoutGrace)
}
