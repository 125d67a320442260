package main

import (
	"math"
	"testing"

	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/viewport"
)

func near(a, b backend.Interval) bool {
	return math.Abs(a[0]-b[0]) < 1e-9 && math.Abs(a[1]-b[1]) < 1e-9
}

func TestSurfaceListenUnlisten(t *testing.T) {
	s := newWindowSurface()
	var moved []float64
	unlisten := s.Listen(func(x float64) { moved = append(moved, x) }, func(float64) {})
	if n := len(s.listening()); n != 1 {
		t.Fatalf("expected 1 listener, got %d", n)
	}
	for _, l := range s.listening() {
		l.move(3)
	}
	if len(moved) != 1 || moved[0] != 3 {
		t.Errorf("expected move at 3, got %v", moved)
	}
	unlisten()
	unlisten()
	if n := len(s.listening()); n != 0 {
		t.Errorf("expected no listeners after unlisten, got %d", n)
	}
}

func TestSurfaceDrivesControllerDrag(t *testing.T) {
	s := newWindowSurface()
	vc := viewport.NewController(viewport.NewState(4), s)
	if err := vc.Dispatch(viewport.SetDomain{Domain: backend.Interval{0, 100}}); err != nil {
		t.Fatalf("failed setting domain: %v", err)
	}
	// The strip spans window pixels 100 to 300.
	vc.StartDrag(120, viewport.Extent{Min: 100, Max: 300})
	if n := len(s.listening()); n != 1 {
		t.Fatalf("expected the drag to listen on the surface, got %d listeners", n)
	}
	for _, l := range s.listening() {
		l.move(400)
	}
	if sel, ok := vc.Snapshot().Selection(); !ok || !near(sel, backend.Interval{10, 100}) {
		t.Errorf("expected live selection [10,100], got %v (ok=%v)", sel, ok)
	}
	for _, l := range s.listening() {
		l.release(200)
	}
	st := vc.Snapshot()
	if st.Drag.Dragging {
		t.Errorf("expected drag to end on release")
	}
	if !near(st.Interval, backend.Interval{10, 50}) {
		t.Errorf("expected committed interval [10,50], got %v", st.Interval)
	}
	if n := len(s.listening()); n != 0 {
		t.Errorf("expected listeners released after the drag, got %d", n)
	}
}
