package viewport

import "git.sr.ht/~whereswaldon/seriesview/backend"

const (
	// DefaultEpochCap is the number of overlapping epochs at which the
	// overlay gives up and reports overflow instead.
	DefaultEpochCap = 100
	// MinEpochWidth is the narrowest an epoch is drawn, as a fraction of
	// the viewport width.
	MinEpochWidth = 1.0 / 200
)

// Overlaps reports whether the epoch shares a non-empty span with interval.
// An epoch that only touches an edge does not overlap.
func Overlaps(e backend.Epoch, interval backend.Interval) bool {
	return e.Onset+e.Duration > interval[0] && e.Onset < interval[1]
}

// VisibleEpochs returns the indices of the epochs overlapping interval. If
// limit or more overlap, it returns no indices and reports overflow instead of
// truncating.
func VisibleEpochs(epochs []backend.Epoch, interval backend.Interval, limit int) (indices []int, overflow bool) {
	for i, e := range epochs {
		if Overlaps(e, interval) {
			indices = append(indices, i)
		}
	}
	if len(indices) >= limit {
		return nil, true
	}
	return indices, false
}

// WithoutHidden removes the epochs the user toggled off.
func WithoutHidden(indices []int, hidden map[int]bool) []int {
	if len(hidden) == 0 {
		return indices
	}
	out := indices[:0:0]
	for _, i := range indices {
		if !hidden[i] {
			out = append(out, i)
		}
	}
	return out
}
