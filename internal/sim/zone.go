package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidZones is returned when a zone list does not partition [0,1].
var ErrInvalidZones = errors.New("invalid zones")

// ZoneKind names the effect a zone has on target speed.
type ZoneKind int

const (
	ZoneNormal ZoneKind = iota
	ZoneBoost
	ZoneSlow
)

func (k ZoneKind) String() string {
	switch k {
	case ZoneBoost:
		return "boost"
	case ZoneSlow:
		return "slow"
	default:
		return "normal"
	}
}

// Zone is a half-open fractional interval [Start, End) of the track.
type Zone struct {
	Kind       ZoneKind
	Start      float64
	End        float64
	Multiplier float64
}

// Contains reports whether frac lies in [Start, End).
func (z Zone) Contains(frac float64) bool {
	return frac >= z.Start && frac < z.End
}

// Zones is an ordered partition of [0,1]. The last zone also owns 1.0.
type Zones []Zone

// NewZones copies zs and validates that they partition [0,1].
func NewZones(zs ...Zone) (Zones, error) {
	out := make(Zones, len(zs))
	copy(out, zs)
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks that the zones are contiguous, non-empty and cover [0,1].
func (z Zones) Validate() error {
	if len(z) == 0 {
		return fmt.Errorf("%w: no zones", ErrInvalidZones)
	}
	if z[0].Start != 0 {
		return fmt.Errorf("%w: first zone starts at %g", ErrInvalidZones, z[0].Start)
	}
	if last := z[len(z)-1]; last.End != 1 {
		return fmt.Errorf("%w: last zone ends at %g", ErrInvalidZones, last.End)
	}
	for i, zone := range z {
		if zone.Start >= zone.End {
			return fmt.Errorf("%w: zone %d is empty [%g,%g)", ErrInvalidZones, i, zone.Start, zone.End)
		}
		if zone.Multiplier <= 0 {
			return fmt.Errorf("%w: zone %d multiplier %g", ErrInvalidZones, i, zone.Multiplier)
		}
		if i > 0 && z[i-1].End != zone.Start {
			return fmt.Errorf("%w: gap or overlap at %g", ErrInvalidZones, zone.Start)
		}
	}
	return nil
}

// Index returns the index of the zone owning frac. Boundaries belong to
// the zone that starts there; values below 0 map to the first zone and
// values at or past 1 map to the last.
func (z Zones) Index(frac float64) int {
	if frac != frac || frac < 0 {
		return 0
	}
	for i, zone := range z {
		if zone.Contains(frac) {
			return i
		}
	}
	return len(z) - 1
}

// Lookup returns the zone owning frac. See Index.
func (z Zones) Lookup(frac float64) Zone {
	return z[z.Index(frac)]
}
