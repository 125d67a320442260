package backend

import "sort"

// ValueAt returns the sample of chunk nearest to time, choosing the leftmost
// sample whose time is at or after the query. The search bisects the chunk's
// implicit uniform time axis, so it costs O(log n) and allocates nothing.
//
// ok is false when the chunk is empty or time lies outside its interval;
// callers should show nothing rather than treat that as an error. A query at
// exactly the end of the interval has no sample at or after it and yields the
// final sample.
func ValueAt(chunk *Chunk, time float64) (value float64, ok bool) {
	if chunk == nil || len(chunk.Values) == 0 || !chunk.Interval.Contains(time) {
		return 0, false
	}
	n := len(chunk.Values)
	idx := sort.Search(n, func(i int) bool {
		return chunk.TimeAt(i) >= time
	})
	if idx == n {
		idx = n - 1
	}
	return chunk.Values[idx], true
}
