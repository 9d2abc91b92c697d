// Package drivers hands a fit.Session to external nonlinear optimizers.
// The adapters only marshal between the session's evaluate/gradient
// contract and each optimizer's API; no search strategy lives here.
package drivers

import (
	"errors"

	"github.com/rollingthunder/relaxfit/fit"
)

// Result is the outcome of one minimisation run.
type Result struct {
	// Params is the raw (unscaled) parameter vector at the minimum.
	Params []float64
	// ChiSquared is the objective value at Params.
	ChiSquared float64
	// Stats are the session counters accumulated during the run.
	Stats fit.Statistics
}

var errNoInit = errors.New("initial parameter vector required")

func checkInit(s *fit.Session, init []float64) error {
	if len(init) == 0 {
		return errNoInit
	}
	if len(init) != s.NumParams() {
		return fit.ErrInvalidDimension
	}
	return nil
}

func finish(s *fit.Session, params []float64) (Result, error) {
	chi2, err := s.Objective(params)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Params:     append([]float64(nil), params...),
		ChiSquared: chi2,
		Stats:      s.Stats(),
	}, nil
}
