// Package testing holds the shared reference data and the model test
// harness run by the model implementation packages.
package testing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/rollingthunder/relaxfit/fit"
	"github.com/rollingthunder/relaxfit/util"
)

// ReferenceCurve is the worked two-parameter example: intensities close
// to I(t) = 10 * exp(-0.5*t) sampled at t = 0, 1, 2 with uniform
// uncertainty. Objective([10, 0.5]) on it is close to zero.
func ReferenceCurve() (times, values, sd, scaling []float64) {
	times = []float64{0.0, 1.0, 2.0}
	values = []float64{10.0, 6.07, 3.68}
	sd = []float64{0.1, 0.1, 0.1}
	scaling = []float64{1.0, 1.0}
	return
}

type ModelTest struct {
	Model fit.Model
	// Params is a plausible parameter set for synthetic data.
	Params []float64
	Times  []float64
}

func defaultTimes() []float64 {
	return []float64{0.0, 0.05, 0.1, 0.2, 0.4, 0.7, 1.0, 1.5}
}

// ModelTests pairs every decay model with reference parameters. The
// Model fields are filled in by the caller to avoid an import cycle
// with the implementation package.
func ModelTests(models []fit.Model) []ModelTest {
	paramsByName := map[string][]float64{
		"exp":   {10.0, 0.5},
		"sat":   {9.0, 1.2},
		"inv":   {18.0, 9.0, 0.8},
		"biexp": {7.0, 2.0, 3.0, 0.2},
	}

	var tests []ModelTest
	for _, m := range models {
		params, ok := paramsByName[m.Info().Name]
		if !ok {
			params = make([]float64, m.Info().NumParams)
			for j := range params {
				params[j] = 1.0
			}
		}
		tests = append(tests, ModelTest{Model: m, Params: params, Times: defaultTimes()})
	}
	return tests
}

// RunModelTests drives every model through the shared property checks:
// defined at t = 0, no overflow at extreme rates, EvalDeriv consistent
// with Eval, analytic Jacobian matching central differences, and a
// session round trip with zero residuals.
func RunModelTests(t *testing.T, tests []ModelTest) {
	var eps = 1e-6

	for _, v := range tests {
		info := v.Model.Info()
		n := len(v.Times)
		np := info.NumParams

		if len(v.Params) != np {
			t.Errorf("%s: test has %d parameters, model wants %d", info.Name, len(v.Params), np)
			continue
		}

		backCalc := make([]float64, n)
		v.Model.Eval(v.Params, v.Times, backCalc)
		for i, b := range backCalc {
			if math.IsNaN(b) || math.IsInf(b, 0) {
				t.Errorf("%s: back_calc[%d] = %v at t = %v", info.Name, i, b, v.Times[i])
			}
		}

		// extreme rate*t products must underflow, not overflow
		extreme := append([]float64(nil), v.Params...)
		for j := 1; j < np; j += 2 {
			extreme[j] = 1e6
		}
		v.Model.Eval(extreme, v.Times, backCalc)
		for i, b := range backCalc {
			if math.IsNaN(b) || math.IsInf(b, 0) {
				t.Errorf("%s: extreme rate gives back_calc[%d] = %v", info.Name, i, b)
			}
		}

		// EvalDeriv must agree with Eval on the curve itself
		fromEval := make([]float64, n)
		fromDeriv := make([]float64, n)
		jac := util.MakeRectangular(uint(n), uint(np))
		v.Model.Eval(v.Params, v.Times, fromEval)
		v.Model.EvalDeriv(v.Params, v.Times, fromDeriv, jac)
		if !util.ArrayEpsEquals(fromEval, fromDeriv, eps) {
			t.Errorf("%s: Eval and EvalDeriv disagree on back_calc", info.Name)
		}

		// analytic Jacobian against central differences
		numJac := mat.NewDense(n, np, nil)
		fd.Jacobian(numJac, func(y, x []float64) {
			v.Model.Eval(x, v.Times, y)
		}, v.Params, &fd.JacobianSettings{Formula: fd.Central})

		for i := 0; i < n; i++ {
			for j := 0; j < np; j++ {
				if !util.EpsEqual(jac[i][j], numJac.At(i, j), 1e-4*(1.0+math.Abs(jac[i][j]))) {
					t.Errorf("%s: jacobian[%d][%d] = %v, central difference %v",
						info.Name, i, j, jac[i][j], numJac.At(i, j))
				}
			}
		}

		// round trip: synthetic data refit at the true parameters
		values := make([]float64, n)
		v.Model.Eval(v.Params, v.Times, values)
		sd := make([]float64, n)
		scaling := make([]float64, np)
		for i := range sd {
			sd[i] = 1.0
		}
		for j := range scaling {
			scaling[j] = 1.0
		}

		s, err := fit.NewSession(v.Model, v.Times, values, sd, scaling)
		if err != nil {
			t.Errorf("%s: session setup failed: %s", info.Name, err.Error())
			continue
		}
		chi2, err := s.Objective(v.Params)
		if err != nil {
			t.Errorf("%s: objective failed: %s", info.Name, err.Error())
		} else if chi2 > 1e-20 {
			t.Errorf("%s: round trip chi-squared is %v, want 0", info.Name, chi2)
		}

		if testing.Verbose() {
			t.Logf("%s\tparams %v\tround trip chi2 %g", info.Name, v.Params, chi2)
		}
	}
}
