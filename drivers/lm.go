package drivers

import (
	"fmt"

	"github.com/maorshutman/lm"

	"github.com/rollingthunder/relaxfit/fit"
)

// LevenbergMarquardt minimises the session objective in weighted
// residual form. It is the fastest driver for well-conditioned decay
// fits and the usual choice when a gradient-free simplex is not needed.
func LevenbergMarquardt(s *fit.Session, init []float64) (Result, error) {
	if err := checkInit(s, init); err != nil {
		return Result{}, err
	}

	var evalErr error
	residuals := func(dst, x []float64) {
		if err := s.Residuals(x, dst); err != nil && evalErr == nil {
			evalErr = err
		}
	}

	numJac := lm.NumJac{Func: residuals}
	problem := lm.LMProblem{
		Dim:        s.NumParams(),
		Size:       s.NumTimes(),
		Func:       residuals,
		Jac:        numJac.Jac,
		InitParams: append([]float64(nil), init...),
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	results, err := lm.LM(problem, &lm.Settings{Iterations: 200, ObjectiveTol: 1e-16})
	if evalErr != nil {
		return Result{}, evalErr
	}
	if err != nil {
		return Result{}, fmt.Errorf("levenberg-marquardt: %w", err)
	}

	return finish(s, results.X)
}
