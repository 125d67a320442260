// Package geometry turns chunks into drawable point lists and memoizes them.
package geometry

import (
	"sort"

	"gioui.org/f32"
	"git.sr.ht/~whereswaldon/seriesview/backend"
	"git.sr.ht/~whereswaldon/seriesview/scale"
)

// Key identifies a chunk's geometry. It holds every input that changes the
// output of Compute, so two equal keys always describe identical geometry.
type Key struct {
	// Interval is the viewport interval the points are laid out against.
	Interval backend.Interval
	// ChunkInterval and ChunkID pin the exact chunk, since a refiltered
	// chunk at the same position has a new ID.
	ChunkInterval  backend.Interval
	ChunkID        uint64
	SeriesRange    backend.Interval
	AmplitudeScale float64
	Channel        int
	Trace          int
	Chunk          int
}

// Geometry is a polyline in unit frame space: x runs from 0 at the start of
// the viewport interval to 1 at its end, and y runs from 0 at the top of the
// amplitude-scaled series range to 1 at its bottom.
type Geometry []f32.Point

// Compute lays out the samples of chunk within the viewport interval. Only the
// samples inside the interval are kept, plus one neighbour on each side so the
// line reaches the frame edges. It returns nil for an empty chunk, a chunk
// outside the interval, or a degenerate scale.
func Compute(chunk *backend.Chunk, interval, seriesRange backend.Interval, amplitude float64) Geometry {
	n := chunk.Len()
	if n == 0 || chunk.Interval[1] < interval[0] || chunk.Interval[0] > interval[1] {
		return nil
	}
	timeScale, err := scale.New(interval, [2]float64{0, 1})
	if err != nil {
		return nil
	}
	valueScale, err := scale.New([2]float64{seriesRange[0] * amplitude, seriesRange[1] * amplitude}, [2]float64{1, 0})
	if err != nil {
		return nil
	}
	first := sort.Search(n, func(i int) bool { return chunk.TimeAt(i) >= interval[0] })
	last := sort.Search(n, func(i int) bool { return chunk.TimeAt(i) > interval[1] })
	first = max(0, first-1)
	last = min(n, last+1)
	points := make(Geometry, 0, last-first)
	for i := first; i < last; i++ {
		points = append(points, f32.Pt(
			float32(timeScale.Apply(chunk.TimeAt(i))),
			float32(valueScale.Apply(chunk.Values[i])),
		))
	}
	return points
}
