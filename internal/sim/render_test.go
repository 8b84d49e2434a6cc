package sim

import (
	"reflect"
	"testing"
)

type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) DrawTrack(zones Zones, length float64) {
	r.calls = append(r.calls, "track")
}

func (r *recordingRenderer) DrawTrail(obj ObjectView, trail []TrailSample) {
	r.calls = append(r.calls, "trail "+obj.ID.String())
}

func (r *recordingRenderer) DrawObject(obj ObjectView) {
	r.calls = append(r.calls, "object "+obj.ID.String())
}

func TestRenderOrder(t *testing.T) {
	s := New(DefaultParams(), Classic())
	r := &recordingRenderer{}

	Render(s, r)
	if len(r.calls) != 0 {
		t.Fatalf("expected no drawing before geometry, got %v", r.calls)
	}

	s.SetTrackLength(80)
	Render(s, r)
	want := []string{"track", "trail A", "trail B", "object A", "object B"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("got %v, want %v", r.calls, want)
	}
}
