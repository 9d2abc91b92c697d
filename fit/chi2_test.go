package fit

import (
	"errors"
	"math"
	"testing"
)

func TestChiSquared(t *testing.T) {
	values := []float64{10.0, 5.0, 2.0}
	sd := []float64{0.5, 0.5, 0.5}
	backCalc := []float64{10.5, 5.0, 1.5}

	// residuals -1, 0, 1
	chi2, err := ChiSquared(values, sd, backCalc)
	if err != nil {
		t.Fatal(err)
	}
	if chi2 != 2.0 {
		t.Errorf("chi2 = %v, want 2.0", chi2)
	}
}

func TestChiSquaredZeroIffEqual(t *testing.T) {
	values := []float64{1.0, 2.0, 3.0}
	sd := []float64{0.1, 0.2, 0.3}

	chi2, err := ChiSquared(values, sd, values)
	if err != nil {
		t.Fatal(err)
	}
	if chi2 != 0.0 {
		t.Errorf("chi2 of exact match is %v, want 0", chi2)
	}

	perturbed := []float64{1.0, 2.0, 3.0 + 1e-9}
	chi2, err = ChiSquared(values, sd, perturbed)
	if err != nil {
		t.Fatal(err)
	}
	if chi2 <= 0.0 {
		t.Errorf("chi2 of mismatch is %v, want > 0", chi2)
	}
}

func TestChiSquaredRejectsZeroSD(t *testing.T) {
	_, err := ChiSquared([]float64{1}, []float64{0}, []float64{2})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero sd gave %v, want ErrInvalidArgument", err)
	}
}

func TestChiSquaredRejectsMismatch(t *testing.T) {
	_, err := ChiSquared([]float64{1, 2}, []float64{1}, []float64{1, 2})
	if !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("length mismatch gave %v, want ErrInvalidDimension", err)
	}
}

func TestChiSquaredOverflow(t *testing.T) {
	_, err := ChiSquared([]float64{math.MaxFloat64}, []float64{1e-300}, []float64{-math.MaxFloat64})
	if !errors.Is(err, ErrNumericOverflow) {
		t.Errorf("overflowing reduction gave %v, want ErrNumericOverflow", err)
	}
}
