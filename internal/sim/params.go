package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when a parameter name is not one of Fields.
var ErrUnknownField = errors.New("unknown parameter")

// Parameter bounds.
const (
	MinDistance = 1.0
	MaxDistance = 10000.0
	MinTime     = 1.0
	MaxTime     = 3600.0
	MinMass     = 1.0
	MaxMass     = 200.0
	MinFriction = 0.0
	MaxFriction = 100.0
)

// UnitMode selects how speeds are displayed. It never affects physics.
type UnitMode int

const (
	UnitsMetric UnitMode = iota // m/s
	UnitsKMH
)

// Next cycles to the next unit mode.
func (u UnitMode) Next() UnitMode {
	if u == UnitsMetric {
		return UnitsKMH
	}
	return UnitsMetric
}

func (u UnitMode) String() string {
	if u == UnitsKMH {
		return "km/h"
	}
	return "m/s"
}

// Convert converts a speed in m/s into the display unit.
func (u UnitMode) Convert(mps float64) float64 {
	if u == UnitsKMH {
		return mps * 3.6
	}
	return mps
}

// ParseUnitMode accepts "ms", "m/s", "metric", "kmh" or "km/h".
func ParseUnitMode(s string) (UnitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ms", "m/s", "metric", "":
		return UnitsMetric, nil
	case "kmh", "km/h", "kph":
		return UnitsKMH, nil
	}
	return UnitsMetric, fmt.Errorf("unit mode %q: want ms or kmh", s)
}

// Params is the parameter bag the simulator reads every frame.
// Mass and Friction are indexed by ObjectID.
type Params struct {
	Distance float64
	Time     float64
	Mass     [2]float64
	Friction [2]float64
	Units    UnitMode
}

// DefaultParams returns the startup parameter set.
func DefaultParams() Params {
	return Params{
		Distance: 100,
		Time:     10,
		Mass:     [2]float64{10, 25},
		Friction: [2]float64{0, 20},
		Units:    UnitsMetric,
	}
}

// Clamped returns a copy with every value forced into its bounds.
func (p Params) Clamped() Params {
	p.Distance = clamp(p.Distance, MinDistance, MaxDistance)
	p.Time = clamp(p.Time, MinTime, MaxTime)
	for i := range p.Mass {
		p.Mass[i] = clamp(p.Mass[i], MinMass, MaxMass)
		p.Friction[i] = clamp(p.Friction[i], MinFriction, MaxFriction)
	}
	return p
}

// Field describes one adjustable parameter.
type Field struct {
	Name   string
	Label  string
	Unit   string
	Min    float64
	Max    float64
	Step   float64
	Coarse float64
}

// Fields lists the adjustable parameters in display order.
var Fields = []Field{
	{Name: "distance", Label: "Distance", Unit: "m", Min: MinDistance, Max: MaxDistance, Step: 1, Coarse: 100},
	{Name: "time", Label: "Time", Unit: "s", Min: MinTime, Max: MaxTime, Step: 1, Coarse: 30},
	{Name: "massA", Label: "Mass A", Unit: "kg", Min: MinMass, Max: MaxMass, Step: 1, Coarse: 10},
	{Name: "frictionA", Label: "Friction A", Unit: "%", Min: MinFriction, Max: MaxFriction, Step: 1, Coarse: 10},
	{Name: "massB", Label: "Mass B", Unit: "kg", Min: MinMass, Max: MaxMass, Step: 1, Coarse: 10},
	{Name: "frictionB", Label: "Friction B", Unit: "%", Min: MinFriction, Max: MaxFriction, Step: 1, Coarse: 10},
}

// FieldByName looks up a field descriptor.
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (p *Params) ref(name string) (*float64, error) {
	switch name {
	case "distance":
		return &p.Distance, nil
	case "time":
		return &p.Time, nil
	case "massA":
		return &p.Mass[ObjectA], nil
	case "massB":
		return &p.Mass[ObjectB], nil
	case "frictionA":
		return &p.Friction[ObjectA], nil
	case "frictionB":
		return &p.Friction[ObjectB], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the current value of the named parameter.
func (p Params) Get(name string) (float64, error) {
	v, err := p.ref(name)
	if err != nil {
		return 0, err
	}
	return *v, nil
}

// Set assigns the named parameter, clamped into its bounds.
func (p *Params) Set(name string, value float64) error {
	v, err := p.ref(name)
	if err != nil {
		return err
	}
	f, _ := FieldByName(name)
	*v = clamp(value, f.Min, f.Max)
	return nil
}

// Adjust nudges the named parameter by delta, clamped into its bounds.
func (p *Params) Adjust(name string, delta float64) error {
	cur, err := p.Get(name)
	if err != nil {
		return err
	}
	return p.Set(name, cur+delta)
}

// SetField parses text and assigns it to the named parameter. On a parse
// failure the previous value is kept and an error is returned.
func (p *Params) SetField(name, text string) error {
	if _, err := p.ref(name); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", name, text)
	}
	if v != v { // NaN
		return fmt.Errorf("%s: %q is not a number", name, text)
	}
	return p.Set(name, v)
}

func clamp(v, lo, hi float64) float64 {
	if v != v {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
