package sim

// Sample is one row of telemetry.
type Sample struct {
	Time      float64
	DistanceA float64
	DistanceB float64
	SpeedA    float64
	SpeedB    float64
}

// Series holds telemetry as parallel columns of equal length. When a
// capacity is set, the oldest rows are evicted first.
type Series struct {
	Time      []float64
	DistanceA []float64
	DistanceB []float64
	SpeedA    []float64
	SpeedB    []float64

	capacity int
}

// NewSeries creates an empty series. A capacity <= 0 means unbounded.
func NewSeries(capacity int) *Series {
	return &Series{capacity: capacity}
}

// Append adds a row.
func (s *Series) Append(row Sample) {
	s.Time = append(s.Time, row.Time)
	s.DistanceA = append(s.DistanceA, row.DistanceA)
	s.DistanceB = append(s.DistanceB, row.DistanceB)
	s.SpeedA = append(s.SpeedA, row.SpeedA)
	s.SpeedB = append(s.SpeedB, row.SpeedB)
	if s.capacity > 0 && len(s.Time) > s.capacity {
		drop := len(s.Time) - s.capacity
		s.Time = s.Time[drop:]
		s.DistanceA = s.DistanceA[drop:]
		s.DistanceB = s.DistanceB[drop:]
		s.SpeedA = s.SpeedA[drop:]
		s.SpeedB = s.SpeedB[drop:]
	}
}

// Len returns the number of rows.
func (s *Series) Len() int { return len(s.Time) }

// Capacity returns the row cap (0 when unbounded).
func (s *Series) Capacity() int { return s.capacity }

// Row returns row i.
func (s *Series) Row(i int) Sample {
	return Sample{
		Time:      s.Time[i],
		DistanceA: s.DistanceA[i],
		DistanceB: s.DistanceB[i],
		SpeedA:    s.SpeedA[i],
		SpeedB:    s.SpeedB[i],
	}
}

// Last returns the newest row and false if the series is empty.
func (s *Series) Last() (Sample, bool) {
	if s.Len() == 0 {
		return Sample{}, false
	}
	return s.Row(s.Len() - 1), true
}

// Distance returns the distance column for an object.
func (s *Series) Distance(id ObjectID) []float64 {
	if id == ObjectB {
		return s.DistanceB
	}
	return s.DistanceA
}

// Speed returns the speed column for an object.
func (s *Series) Speed(id ObjectID) []float64 {
	if id == ObjectB {
		return s.SpeedB
	}
	return s.SpeedA
}

// MaxDistance returns the largest distance observed for either object.
func (s *Series) MaxDistance() float64 {
	return max(maxOf(s.DistanceA), maxOf(s.DistanceB))
}

// MaxSpeed returns the largest speed observed for either object.
func (s *Series) MaxSpeed() float64 {
	return max(maxOf(s.SpeedA), maxOf(s.SpeedB))
}

// Clear drops every row.
func (s *Series) Clear() {
	s.Time = nil
	s.DistanceA = nil
	s.DistanceB = nil
	s.SpeedA = nil
	s.SpeedB = nil
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s *Series) Clone() *Series {
	return &Series{
		Time:      cloneFloats(s.Time),
		DistanceA: cloneFloats(s.DistanceA),
		DistanceB: cloneFloats(s.DistanceB),
		SpeedA:    cloneFloats(s.SpeedA),
		SpeedB:    cloneFloats(s.SpeedB),
		capacity:  s.capacity,
	}
}

func cloneFloats(xs []float64) []float64 {
	if xs == nil {
		return nil
	}
	out := make([]float64, len(xs))
	copy(out, xs)
	return out
}

func maxOf(xs []float64) float64 {
	var m float64
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
