package sim

// TrailSample is one recorded point of an object's recent history.
type TrailSample struct {
	Distance float64 // m
	Position float64 // rendering units, filled in by views
	Time     float64 // seconds
	Speed    float64 // m/s
}

// Trail is a circular buffer of samples. Pushing into a full trail
// overwrites the oldest sample.
type Trail struct {
	buf  []TrailSample
	size int
	w    int // write position
	len  int // current fill level
}

// NewTrail creates a trail holding at most size samples.
func NewTrail(size int) *Trail {
	if size < 1 {
		size = 1
	}
	return &Trail{
		buf:  make([]TrailSample, size),
		size: size,
	}
}

// Push appends a sample, evicting the oldest if full.
func (t *Trail) Push(s TrailSample) {
	t.buf[t.w] = s
	t.w = (t.w + 1) % t.size
	if t.len < t.size {
		t.len++
	}
}

// Recent returns up to n most recent samples, oldest first.
func (t *Trail) Recent(n int) []TrailSample {
	if n > t.len {
		n = t.len
	}
	if n <= 0 {
		return nil
	}

	out := make([]TrailSample, n)
	start := (t.w - n + t.size) % t.size
	for i := range n {
		out[i] = t.buf[(start+i)%t.size]
	}
	return out
}

// Samples returns every held sample, oldest first.
func (t *Trail) Samples() []TrailSample { return t.Recent(t.len) }

// Len returns the number of held samples.
func (t *Trail) Len() int { return t.len }

// Cap returns the trail capacity.
func (t *Trail) Cap() int { return t.size }

// Clear empties the trail.
func (t *Trail) Clear() {
	t.w = 0
	t.len = 0
}
