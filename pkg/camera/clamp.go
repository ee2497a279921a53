package camera

import "golang.org/x/exp/constraints"

// Clamp limits v to the closed range [lo, hi]
func Clamp[T constraints.Float](v, lo, hi T) T {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}
