package sim

import "math"

// ObjectID identifies one of the two racing objects.
type ObjectID int

const (
	ObjectA ObjectID = iota
	ObjectB
)

// ObjectIDs lists both objects in step order.
var ObjectIDs = [...]ObjectID{ObjectA, ObjectB}

func (id ObjectID) String() string {
	if id == ObjectB {
		return "B"
	}
	return "A"
}

// Object colours and fixed speed biases.
var (
	objectColors  = [2]string{"#FF8C00", "#1E90FF"}
	objectOffsets = [2]float64{0, 0.08}
)

// Object is the kinematic state of one racer.
type Object struct {
	ID        ObjectID
	Color     string
	Offset    float64
	Speed     float64 // m/s
	Target    float64 // m/s, zone applied
	Distance  float64 // m
	Zone      ZoneKind
	Arrived   bool
	ArrivedAt float64 // seconds

	trail *Trail
}

func newObject(id ObjectID, trailCap int) Object {
	return Object{
		ID:     id,
		Color:  objectColors[id],
		Offset: objectOffsets[id],
		trail:  NewTrail(trailCap),
	}
}

func (o *Object) reset() {
	o.Speed = 0
	o.Target = 0
	o.Distance = 0
	o.Zone = ZoneNormal
	o.Arrived = false
	o.ArrivedAt = 0
	o.trail.Clear()
}

// ObjectView is a read-only copy of an object for renderers.
type ObjectView struct {
	ID        ObjectID
	Color     string
	Speed     float64
	Target    float64
	Distance  float64
	Position  float64
	Zone      ZoneKind
	Arrived   bool
	ArrivedAt float64
	Trail     []TrailSample
}

// view converts metres into rendering units with scale. Distances past
// total are drawn at the finish.
func (o *Object) view(scale, total float64) ObjectView {
	trail := o.trail.Samples()
	for i := range trail {
		trail[i].Position = math.Min(trail[i].Distance, total) * scale
	}
	return ObjectView{
		ID:        o.ID,
		Color:     o.Color,
		Speed:     o.Speed,
		Target:    o.Target,
		Distance:  o.Distance,
		Position:  math.Min(o.Distance, total) * scale,
		Zone:      o.Zone,
		Arrived:   o.Arrived,
		ArrivedAt: o.ArrivedAt,
		Trail:     trail,
	}
}
