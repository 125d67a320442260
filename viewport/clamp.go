package viewport

import "golang.org/x/exp/constraints"

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// clampUnit clamps a normalized position to [0,1]. NaN clamps to 0.
func clampUnit[T constraints.Float](v T) T {
	if v != v {
		return 0
	}
	return clamp(v, 0, 1)
}
