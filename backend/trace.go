package backend

import (
	"math"
	"sort"
)

// Domain returns the span from the first chunk's start to the last chunk's
// end. It returns the zero interval for a trace without chunks.
func (t Trace) Domain() Interval {
	if len(t.Chunks) == 0 {
		return Interval{}
	}
	return Interval{t.Chunks[0].Interval[0], t.Chunks[len(t.Chunks)-1].Interval[1]}
}

// ValueRange returns the smallest and largest sample in the trace. ok is false
// if the trace holds no samples.
func (t Trace) ValueRange() (minimum, maximum float64, ok bool) {
	minimum, maximum = math.Inf(1), math.Inf(-1)
	for _, c := range t.Chunks {
		for _, v := range c.Values {
			minimum = min(minimum, v)
			maximum = max(maximum, v)
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return minimum, maximum, true
}

// ChunkAt returns the chunk whose interval contains time, and its index within
// the trace. When two chunks share a boundary, the later one wins: its first
// sample sits at the boundary, while the earlier chunk has no sample there.
func (t Trace) ChunkAt(time float64) (chunk *Chunk, index int, ok bool) {
	index = sort.Search(len(t.Chunks), func(i int) bool {
		return t.Chunks[i].Interval[1] >= time
	})
	if index == len(t.Chunks) || !t.Chunks[index].Interval.Contains(time) {
		return nil, -1, false
	}
	if next := index + 1; next < len(t.Chunks) && t.Chunks[index].Interval[1] == time && t.Chunks[next].Interval.Contains(time) {
		index = next
	}
	return t.Chunks[index], index, true
}

// ValueAt returns the value of the trace's sample at time, as ValueAt does for
// the containing chunk.
func (t Trace) ValueAt(time float64) (float64, bool) {
	chunk, _, ok := t.ChunkAt(time)
	if !ok {
		return 0, false
	}
	return ValueAt(chunk, time)
}

// StatsBetween returns statistics about the samples whose times fall in the
// half-open interval [timeA,timeB). If timeB is less than timeA the bounds are
// swapped. If no sample falls inside the interval, all values are zero and ok
// is false.
func (t Trace) StatsBetween(timeA, timeB float64) (maximum, mean, minimum float64, ok bool) {
	if timeB < timeA {
		timeA, timeB = timeB, timeA
	}
	first := sort.Search(len(t.Chunks), func(i int) bool {
		return t.Chunks[i].Interval[1] > timeA
	})
	var count int
	for _, c := range t.Chunks[first:] {
		if c.Interval[0] >= timeB {
			break
		}
		n := len(c.Values)
		lo := sort.Search(n, func(i int) bool { return c.TimeAt(i) >= timeA })
		hi := sort.Search(n, func(i int) bool { return c.TimeAt(i) >= timeB })
		for _, v := range c.Values[lo:hi] {
			if count == 0 {
				maximum, minimum = v, v
			} else {
				maximum = max(maximum, v)
				minimum = min(minimum, v)
			}
			mean += v
			count++
		}
	}
	if count == 0 {
		return 0, 0, 0, false
	}
	return maximum, mean / float64(count), minimum, true
}
