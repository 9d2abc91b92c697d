package models

import (
	"math"

	"github.com/rollingthunder/relaxfit/fit"
)

// biExp is the two-component decay
//
//	I(t) = I0a * exp(-Ra*t) + I0b * exp(-Rb*t)
//
// with params = [I0a, Ra, I0b, Rb]. Used when a single exponential
// cannot describe the relaxation, e.g. chemical exchange on two
// timescales.
type biExp struct {
	fit.ModelInfo
}

func NewBiExp() fit.Model {
	return &biExp{fit.ModelInfo{Name: BiExp, NumParams: 4}}
}

func (m *biExp) Eval(params, times, backCalc []float64) {
	i0a, ra, i0b, rb := params[0], params[1], params[2], params[3]
	for i, t := range times {
		backCalc[i] = i0a*math.Exp(-ra*t) + i0b*math.Exp(-rb*t)
	}
}

func (m *biExp) EvalDeriv(params, times, backCalc []float64, jac [][]float64) {
	i0a, ra, i0b, rb := params[0], params[1], params[2], params[3]
	for i, t := range times {
		ea := math.Exp(-ra * t)
		eb := math.Exp(-rb * t)
		backCalc[i] = i0a*ea + i0b*eb
		jac[i][0] = ea
		jac[i][1] = -i0a * t * ea
		jac[i][2] = eb
		jac[i][3] = -i0b * t * eb
	}
}
