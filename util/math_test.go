package util

import "testing"

func TestArrayEpsEquals(t *testing.T) {
	x := []float64{1.0, 2.0, 3.0}
	y := []float64{1.0, 2.0000001, 3.0}

	if !ArrayEpsEquals(x, y, 1e-3) {
		t.Error("arrays within eps reported unequal")
	}
	if ArrayEpsEquals(x, y, 1e-9) {
		t.Error("arrays outside eps reported equal")
	}
	if ArrayEpsEquals(x, y[:2], 1e-3) {
		t.Error("length mismatch reported equal")
	}
}
