package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/rollingthunder/relaxfit/util"
)

// Session owns the fixed data of one fitting problem: relaxation times,
// observed intensities, their standard deviations and the diagonal
// parameter scaling vector. All arrays are sized once at construction
// and reused by every evaluation; the hot paths perform no allocation.
//
// A session is not safe for concurrent use. Concurrent fits must each
// own an independent session; the package keeps no shared state.
type Session struct {
	model     Model
	numParams int
	numTimes  int

	relaxTimes []float64
	values     []float64
	sd         []float64
	scaling    []float64

	// invVar[i] = 1 / sd[i]^2, precalculated at construction.
	invVar []float64

	// scratch buffers overwritten on every evaluation
	backCalc []float64
	scaled   []float64
	jac      [][]float64

	evaluated bool
	destroyed bool
	stats     Statistics
}

// NewSession validates the problem data and allocates a session for it.
// The input slices are copied; the caller may reuse them afterwards.
func NewSession(model Model, relaxTimes, values, sd, scaling []float64) (*Session, error) {
	s := &Session{model: model}
	if err := s.setup(relaxTimes, values, sd, scaling); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset replaces the session's problem data in place, dropping all prior
// arrays and evaluation state. The model is retained.
func (s *Session) Reset(relaxTimes, values, sd, scaling []float64) error {
	if s.destroyed {
		return fmt.Errorf("%w: Reset", ErrUseAfterDestroy)
	}
	return s.setup(relaxTimes, values, sd, scaling)
}

func (s *Session) setup(relaxTimes, values, sd, scaling []float64) error {
	numParams := s.model.Info().NumParams
	numTimes := len(relaxTimes)

	if numParams < 1 || numTimes < 1 {
		return fmt.Errorf("%w: num_params %d, num_times %d", ErrInvalidDimension, numParams, numTimes)
	}
	if len(values) != numTimes || len(sd) != numTimes {
		return fmt.Errorf("%w: relax_times %d, values %d, sd %d", ErrInvalidDimension, numTimes, len(values), len(sd))
	}
	if len(scaling) != numParams {
		return fmt.Errorf("%w: scaling %d, num_params %d", ErrInvalidDimension, len(scaling), numParams)
	}

	for i := 0; i < numTimes; i++ {
		if !isFinite(relaxTimes[i]) || !isFinite(values[i]) || !isFinite(sd[i]) {
			return fmt.Errorf("%w: non-finite input at time point %d", ErrInvalidArgument, i)
		}
		if sd[i] <= 0 {
			return fmt.Errorf("%w: sd[%d] = %g, must be > 0", ErrInvalidArgument, i, sd[i])
		}
	}
	for j, sc := range scaling {
		if !isFinite(sc) || sc == 0 {
			return fmt.Errorf("%w: scaling[%d] = %g, must be finite and nonzero", ErrInvalidArgument, j, sc)
		}
	}

	// Replace all owned arrays. Prior allocations are released here so
	// a repeated setup does not accumulate.
	s.numParams = numParams
	s.numTimes = numTimes
	s.relaxTimes = append([]float64(nil), relaxTimes...)
	s.values = append([]float64(nil), values...)
	s.sd = append([]float64(nil), sd...)
	s.scaling = append([]float64(nil), scaling...)

	s.invVar = make([]float64, numTimes)
	for i, v := range s.sd {
		s.invVar[i] = 1.0 / (v * v)
	}

	s.backCalc = make([]float64, numTimes)
	s.scaled = make([]float64, numParams)
	s.jac = util.MakeRectangular(uint(numTimes), uint(numParams))

	s.evaluated = false
	s.stats = Statistics{}
	return nil
}

func (s *Session) Model() Model { return s.model }

func (s *Session) NumParams() int { return s.numParams }

func (s *Session) NumTimes() int { return s.numTimes }

// Stats reports the evaluation counters accumulated since setup.
func (s *Session) Stats() Statistics { return s.stats }

// checkParams guards every optimizer-facing entry point.
func (s *Session) checkParams(op string, params []float64) error {
	if s.destroyed {
		return fmt.Errorf("%w: %s", ErrUseAfterDestroy, op)
	}
	if len(params) != s.numParams {
		return fmt.Errorf("%w: %s called with %d parameters, want %d", ErrInvalidDimension, op, len(params), s.numParams)
	}
	for j, p := range params {
		if !isFinite(p) {
			return fmt.Errorf("%w: %s parameter %d is %g", ErrInvalidArgument, op, j, p)
		}
	}
	return nil
}

// Objective scales the raw parameter vector, back-calculates the model
// intensities into the session's scratch buffer and reduces to the
// chi-squared value.
func (s *Session) Objective(params []float64) (float64, error) {
	if err := s.checkParams("Objective", params); err != nil {
		return 0, err
	}

	floats.MulTo(s.scaled, params, s.scaling)
	s.model.Eval(s.scaled, s.relaxTimes, s.backCalc)

	chi2, err := ChiSquared(s.values, s.sd, s.backCalc)
	if err != nil {
		return 0, err
	}

	s.evaluated = true
	s.stats.EvaluationCount++
	s.stats.LastChiSquared = chi2
	return chi2, nil
}

// Residuals writes the weighted residual vector
// (backCalc[i] - values[i]) / sd[i] into dst, refreshing the
// back-calculated buffer first. Its squared norm is the objective, the
// form Levenberg-Marquardt style optimizers consume.
func (s *Session) Residuals(params, dst []float64) error {
	if err := s.checkParams("Residuals", params); err != nil {
		return err
	}
	if len(dst) != s.numTimes {
		return fmt.Errorf("%w: residual buffer %d, want %d", ErrInvalidDimension, len(dst), s.numTimes)
	}

	floats.MulTo(s.scaled, params, s.scaling)
	s.model.Eval(s.scaled, s.relaxTimes, s.backCalc)
	weightedResiduals(s.values, s.sd, s.backCalc, dst)

	for i, r := range dst {
		if !isFinite(r) {
			return fmt.Errorf("%w: residual %d is %g", ErrNumericOverflow, i, r)
		}
	}

	s.evaluated = true
	s.stats.EvaluationCount++
	return nil
}

// Gradient writes the analytic chi-squared gradient with respect to the
// raw (unscaled) parameters into grad:
//
//	grad[j] = -2 * scaling[j] * sum_i (values[i] - backCalc[i]) / sd[i]^2 * dI_i/dtheta_j
//
// where theta is the scaled parameter vector. The back-calculated
// buffer is refreshed as a side effect.
func (s *Session) Gradient(params, grad []float64) error {
	if err := s.checkParams("Gradient", params); err != nil {
		return err
	}
	if len(grad) != s.numParams {
		return fmt.Errorf("%w: gradient buffer %d, want %d", ErrInvalidDimension, len(grad), s.numParams)
	}

	floats.MulTo(s.scaled, params, s.scaling)
	s.model.EvalDeriv(s.scaled, s.relaxTimes, s.backCalc, s.jac)

	for j := 0; j < s.numParams; j++ {
		sum := 0.0
		for i := 0; i < s.numTimes; i++ {
			sum += (s.values[i] - s.backCalc[i]) * s.invVar[i] * s.jac[i][j]
		}
		grad[j] = -2.0 * s.scaling[j] * sum
		if !isFinite(grad[j]) {
			return fmt.Errorf("%w: gradient component %d is %g", ErrNumericOverflow, j, grad[j])
		}
	}

	s.evaluated = true
	s.stats.GradientCount++
	return nil
}

// Hessian returns the Gauss-Newton approximation of the chi-squared
// Hessian with respect to the raw parameters:
//
//	H[j][k] = 2 * scaling[j] * scaling[k] * sum_i J_ij * J_ik / sd[i]^2
//
// The dropped second-derivative term vanishes at the optimum of a
// least-squares problem, which makes this the standard curvature
// estimate for parameter error analysis.
func (s *Session) Hessian(params []float64) (*mat.SymDense, error) {
	if err := s.checkParams("Hessian", params); err != nil {
		return nil, err
	}

	floats.MulTo(s.scaled, params, s.scaling)
	s.model.EvalDeriv(s.scaled, s.relaxTimes, s.backCalc, s.jac)

	h := mat.NewSymDense(s.numParams, nil)
	for j := 0; j < s.numParams; j++ {
		for k := j; k < s.numParams; k++ {
			sum := 0.0
			for i := 0; i < s.numTimes; i++ {
				sum += s.jac[i][j] * s.jac[i][k] * s.invVar[i]
			}
			v := 2.0 * s.scaling[j] * s.scaling[k] * sum
			if !isFinite(v) {
				return nil, fmt.Errorf("%w: hessian element (%d,%d) is %g", ErrNumericOverflow, j, k, v)
			}
			h.SetSym(j, k, v)
		}
	}

	s.evaluated = true
	s.stats.HessianCount++
	return h, nil
}

// BackCalculated returns a snapshot of the intensities back-calculated
// by the most recent evaluation.
func (s *Session) BackCalculated() ([]float64, error) {
	if s.destroyed {
		return nil, fmt.Errorf("%w: BackCalculated", ErrUseAfterDestroy)
	}
	if !s.evaluated {
		return nil, fmt.Errorf("%w: BackCalculated before first objective call", ErrNotEvaluated)
	}
	return append([]float64(nil), s.backCalc...), nil
}

// Destroy releases the session's arrays. Every subsequent call fails
// with ErrUseAfterDestroy.
func (s *Session) Destroy() {
	s.destroyed = true
	s.relaxTimes, s.values, s.sd, s.scaling = nil, nil, nil, nil
	s.invVar, s.backCalc, s.scaled, s.jac = nil, nil, nil, nil
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
