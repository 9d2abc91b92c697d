// Package fit implements the numeric core of exponential relaxation
// curve fitting: decay models back-calculate peak intensities at a set
// of relaxation time points, and a chi-squared reducer collapses the
// observed/back-calculated/uncertainty triples into the scalar objective
// a nonlinear optimizer minimises.
//
// A Session owns all fixed data of one fitting problem. The external
// optimizer calls Objective, Gradient and Hessian repeatedly with
// candidate parameter vectors; no allocation happens on those paths.
package fit

// Model is a parametric decay curve evaluated over relaxation times.
//
// Eval writes the back-calculated intensity for each time point into
// backCalc, which the caller sizes to len(times). Implementations must
// be pure functions of their inputs, must not allocate, must be defined
// at t = 0 and must underflow toward zero for large rate*time products
// rather than producing NaN or Inf.
type Model interface {
	Info() ModelInfo
	Eval(params, times, backCalc []float64)

	// EvalDeriv behaves like Eval and additionally fills jac with the
	// parameter Jacobian: jac[i][j] = d backCalc[i] / d params[j].
	// jac must have len(times) rows of Info().NumParams columns.
	EvalDeriv(params, times, backCalc []float64, jac [][]float64)
}

type ModelInfo struct {
	Name      string
	NumParams int
}

func (m *ModelInfo) Info() ModelInfo {
	return *m
}

// Statistics counts the work a session has performed, mirroring what
// the driving optimizer sees.
type Statistics struct {
	// EvaluationCount is the number of completed objective (or
	// residual) evaluations.
	EvaluationCount uint
	// GradientCount is the number of completed gradient evaluations.
	GradientCount uint
	// HessianCount is the number of completed Hessian evaluations.
	HessianCount uint

	// LastChiSquared is the objective value of the most recent
	// evaluation.
	LastChiSquared float64
}
