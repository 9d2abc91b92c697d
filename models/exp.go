package models

import (
	"math"

	"github.com/rollingthunder/relaxfit/fit"
)

// twoParamExp is the canonical relaxation decay
//
//	I(t) = I0 * exp(-R*t)
//
// with params = [I0, R].
type twoParamExp struct {
	fit.ModelInfo
}

func NewTwoParamExp() fit.Model {
	return &twoParamExp{fit.ModelInfo{Name: TwoParamExp, NumParams: 2}}
}

func (m *twoParamExp) Eval(params, times, backCalc []float64) {
	i0, rate := params[0], params[1]
	for i, t := range times {
		backCalc[i] = i0 * math.Exp(-rate*t)
	}
}

func (m *twoParamExp) EvalDeriv(params, times, backCalc []float64, jac [][]float64) {
	i0, rate := params[0], params[1]
	for i, t := range times {
		e := math.Exp(-rate * t)
		backCalc[i] = i0 * e
		jac[i][0] = e
		jac[i][1] = -i0 * t * e
	}
}

// satRec is the saturation recovery curve
//
//	I(t) = Iinf * (1 - exp(-R*t))
//
// with params = [Iinf, R].
type satRec struct {
	fit.ModelInfo
}

func NewSatRec() fit.Model {
	return &satRec{fit.ModelInfo{Name: SatRec, NumParams: 2}}
}

func (m *satRec) Eval(params, times, backCalc []float64) {
	iInf, rate := params[0], params[1]
	for i, t := range times {
		backCalc[i] = iInf * (1.0 - math.Exp(-rate*t))
	}
}

func (m *satRec) EvalDeriv(params, times, backCalc []float64, jac [][]float64) {
	iInf, rate := params[0], params[1]
	for i, t := range times {
		e := math.Exp(-rate * t)
		backCalc[i] = iInf * (1.0 - e)
		jac[i][0] = 1.0 - e
		jac[i][1] = iInf * t * e
	}
}

// invRec is the inversion recovery curve
//
//	I(t) = Iinf - I0 * exp(-R*t)
//
// with params = [I0, Iinf, R].
type invRec struct {
	fit.ModelInfo
}

func NewInvRec() fit.Model {
	return &invRec{fit.ModelInfo{Name: InvRec, NumParams: 3}}
}

func (m *invRec) Eval(params, times, backCalc []float64) {
	i0, iInf, rate := params[0], params[1], params[2]
	for i, t := range times {
		backCalc[i] = iInf - i0*math.Exp(-rate*t)
	}
}

func (m *invRec) EvalDeriv(params, times, backCalc []float64, jac [][]float64) {
	i0, iInf, rate := params[0], params[1], params[2]
	for i, t := range times {
		e := math.Exp(-rate * t)
		backCalc[i] = iInf - i0*e
		jac[i][0] = -e
		jac[i][1] = 1.0
		jac[i][2] = i0 * t * e
	}
}
