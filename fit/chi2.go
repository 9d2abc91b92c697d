package fit

import (
	"fmt"
	"math"
)

// ChiSquared reduces observed values, per-point standard deviations and
// back-calculated values to the scalar
//
//	sum_i ((values[i] - backCalc[i]) / sd[i])^2
//
// The reduction runs in index-ascending order so results are bit
// reproducible. Any sd of zero is rejected rather than propagated as
// Inf into the optimizer.
func ChiSquared(values, sd, backCalc []float64) (float64, error) {
	n := len(values)
	if len(sd) != n || len(backCalc) != n {
		return 0, fmt.Errorf("%w: values %d, sd %d, back_calc %d", ErrInvalidDimension, n, len(sd), len(backCalc))
	}

	chi2 := 0.0
	for i := 0; i < n; i++ {
		if sd[i] == 0 {
			return 0, fmt.Errorf("%w: sd[%d] is zero", ErrInvalidArgument, i)
		}
		r := (values[i] - backCalc[i]) / sd[i]
		chi2 += r * r
	}

	if math.IsInf(chi2, 0) || math.IsNaN(chi2) {
		return 0, fmt.Errorf("%w: chi-squared is %v", ErrNumericOverflow, chi2)
	}
	return chi2, nil
}

// weightedResiduals writes (backCalc[i] - values[i]) / sd[i] into dst.
// The squared Euclidean norm of dst equals the chi-squared value, which
// is the form least-squares optimizers such as Levenberg-Marquardt
// consume directly.
func weightedResiduals(values, sd, backCalc, dst []float64) {
	for i := range dst {
		dst[i] = (backCalc[i] - values[i]) / sd[i]
	}
}
