package drivers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/rollingthunder/relaxfit/fit"
)

// NelderMead minimises the session objective with the gradient-free
// downhill simplex, matching the classic curve-fitting workflow for
// this experiment type.
func NelderMead(s *fit.Session, init []float64) (Result, error) {
	return minimize(s, init, &optimize.NelderMead{}, false)
}

// BFGS minimises the session objective using the analytic gradient.
func BFGS(s *fit.Session, init []float64) (Result, error) {
	return minimize(s, init, &optimize.BFGS{}, true)
}

func minimize(s *fit.Session, init []float64, method optimize.Method, useGrad bool) (Result, error) {
	if err := checkInit(s, init); err != nil {
		return Result{}, err
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			chi2, err := s.Objective(x)
			if err != nil {
				// out-of-domain points are rejected by the line
				// search instead of aborting the run
				return math.Inf(1)
			}
			return chi2
		},
	}
	if useGrad {
		problem.Grad = func(grad, x []float64) {
			if err := s.Gradient(x, grad); err != nil {
				for j := range grad {
					grad[j] = math.NaN()
				}
			}
		}
	}

	result, err := optimize.Minimize(problem, append([]float64(nil), init...), nil, method)
	if err != nil {
		return Result{}, fmt.Errorf("minimize: %w", err)
	}
	if err = result.Status.Err(); err != nil {
		return Result{}, fmt.Errorf("minimize status: %w", err)
	}

	return finish(s, result.X)
}
