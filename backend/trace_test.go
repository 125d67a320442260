package backend

import "testing"

func twoChunkTrace() Trace {
	return Trace{
		Type: TraceLine,
		Chunks: []*Chunk{
			NewChunk(Interval{0, 4}, []float64{1, 2, 3, 4}, 1, 0),
			NewChunk(Interval{4, 8}, []float64{-2, 10, 6, 0}, 1, 0),
		},
	}
}

func TestTraceDomainAndRange(t *testing.T) {
	tr := twoChunkTrace()
	if d := tr.Domain(); d != (Interval{0, 8}) {
		t.Errorf("expected domain [0,8], got %v", d)
	}
	lo, hi, ok := tr.ValueRange()
	if !ok || lo != -2 || hi != 10 {
		t.Errorf("expected range [-2,10], got [%v,%v] ok=%v", lo, hi, ok)
	}
	if _, _, ok := (Trace{}).ValueRange(); ok {
		t.Errorf("expected empty trace to have no range")
	}
}

func TestTraceChunkAt(t *testing.T) {
	tr := twoChunkTrace()
	type testcase struct {
		time  float64
		index int
	}
	for _, tc := range []testcase{
		{time: 0, index: 0},
		{time: 3.5, index: 0},
		{time: 4, index: 1},
		{time: 4.1, index: 1},
		{time: 8, index: 1},
		{time: 9, index: -1},
		{time: -0.1, index: -1},
	} {
		_, index, _ := tr.ChunkAt(tc.time)
		if index != tc.index {
			t.Errorf("expected time %v in chunk %d, got %d", tc.time, tc.index, index)
		}
	}
	if v, ok := tr.ValueAt(5); !ok || v != 10 {
		t.Errorf("expected 10 at t=5, got %v ok=%v", v, ok)
	}
	// The later chunk's first sample sits on the shared boundary.
	if v, ok := tr.ValueAt(4); !ok || v != -2 {
		t.Errorf("expected -2 at the boundary t=4, got %v ok=%v", v, ok)
	}
	if v, ok := tr.ValueAt(8); !ok || v != 0 {
		t.Errorf("expected the last sample at the trace end, got %v ok=%v", v, ok)
	}
}

func TestTraceStatsBetween(t *testing.T) {
	tr := twoChunkTrace()
	maximum, mean, minimum, ok := tr.StatsBetween(6, 2)
	if !ok {
		t.Fatalf("expected samples between 2 and 6")
	}
	// Samples at t=2,3,4,5 hold 3,4,-2,10.
	if maximum != 10 || minimum != -2 || mean != 3.75 {
		t.Errorf("expected max 10 mean 3.75 min -2, got %v %v %v", maximum, mean, minimum)
	}
	if _, _, _, ok := tr.StatsBetween(20, 30); ok {
		t.Errorf("expected no samples past the end")
	}
}
