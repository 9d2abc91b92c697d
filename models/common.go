// Package models provides the exponential relaxation decay curves
// evaluated by the fit package. Each model back-calculates peak
// intensities in place and supplies its analytic parameter Jacobian.
package models

import (
	"fmt"

	"github.com/rollingthunder/relaxfit/fit"
)

// Model names as selected in experiment setups.
const (
	TwoParamExp = "exp"
	SatRec      = "sat"
	InvRec      = "inv"
	BiExp       = "biexp"
)

// New returns the decay model registered under the given name.
func New(name string) (fit.Model, error) {
	switch name {
	case TwoParamExp:
		return NewTwoParamExp(), nil
	case SatRec:
		return NewSatRec(), nil
	case InvRec:
		return NewInvRec(), nil
	case BiExp:
		return NewBiExp(), nil
	}
	return nil, fmt.Errorf("unknown relaxation model %q", name)
}

// All returns one instance of every registered model.
func All() []fit.Model {
	return []fit.Model{NewTwoParamExp(), NewSatRec(), NewInvRec(), NewBiExp()}
}
