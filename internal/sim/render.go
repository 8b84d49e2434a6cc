package sim

// Renderer draws a snapshot onto some surface. Calls arrive in the order
// DrawTrack, DrawTrail for each object, then DrawObject for each object.
type Renderer interface {
	DrawTrack(zones Zones, length float64)
	DrawTrail(obj ObjectView, trail []TrailSample)
	DrawObject(obj ObjectView)
}

// Render draws the current state. It does nothing until the track
// geometry is established.
func Render(s *State, r Renderer) {
	snap := s.Snapshot()
	if snap.TrackLength <= 0 {
		return
	}
	r.DrawTrack(snap.Zones, snap.TrackLength)
	for _, obj := range snap.Objects {
		r.DrawTrail(obj, obj.Trail)
	}
	for _, obj := range snap.Objects {
		r.DrawObject(obj)
	}
}
