package util

import "math"

// EpsEqual reports whether x and y differ by less than eps.
func EpsEqual(x, y, eps float64) bool {
	return math.Abs(x-y) < eps
}

// ArrayEpsEquals reports whether x and y have the same length and agree
// elementwise within eps.
func ArrayEpsEquals(x, y []float64, eps float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !EpsEqual(x[i], y[i], eps) {
			return false
		}
	}
	return true
}
