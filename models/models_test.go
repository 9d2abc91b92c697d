package models

import (
	"math"
	"testing"

	. "github.com/rollingthunder/relaxfit/fit/testing"
)

func TestAllModels(t *testing.T) {
	RunModelTests(t, ModelTests(All()))
}

func TestNew(t *testing.T) {
	for _, name := range []string{TwoParamExp, SatRec, InvRec, BiExp} {
		m, err := New(name)
		if err != nil {
			t.Errorf("Couldn't create model %s: %s", name, err.Error())
			continue
		}
		if m.Info().Name != name {
			t.Errorf("model %s reports name %s", name, m.Info().Name)
		}
	}

	if _, err := New("stretched"); err == nil {
		t.Error("unknown model name accepted")
	}
}

func TestTwoParamExpCurve(t *testing.T) {
	m := NewTwoParamExp()
	times := []float64{0.0, 0.5, 1.0, 2.0}
	backCalc := make([]float64, len(times))

	m.Eval([]float64{10.0, 0.5}, times, backCalc)

	for i, tp := range times {
		want := 10.0 * math.Exp(-0.5*tp)
		if backCalc[i] != want {
			t.Errorf("back_calc[%d] = %v, want %v", i, backCalc[i], want)
		}
	}

	// t = 0 returns the amplitude exactly
	if backCalc[0] != 10.0 {
		t.Errorf("back_calc at t=0 is %v, want amplitude", backCalc[0])
	}
}

func TestBiExpReducesToMono(t *testing.T) {
	bi := NewBiExp()
	mono := NewTwoParamExp()
	times := []float64{0.0, 0.3, 0.9, 1.8}

	fromBi := make([]float64, len(times))
	fromMono := make([]float64, len(times))

	// zero second amplitude collapses to the mono-exponential
	bi.Eval([]float64{4.0, 1.1, 0.0, 5.0}, times, fromBi)
	mono.Eval([]float64{4.0, 1.1}, times, fromMono)

	for i := range times {
		if fromBi[i] != fromMono[i] {
			t.Errorf("bi-exponential with zero component differs at %d: %v vs %v", i, fromBi[i], fromMono[i])
		}
	}
}

func BenchmarkTwoParamExpEval(b *testing.B) {
	m := NewTwoParamExp()
	times := make([]float64, 512)
	for i := range times {
		times[i] = float64(i) * 0.01
	}
	backCalc := make([]float64, len(times))
	params := []float64{10.0, 0.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Eval(params, times, backCalc)
	}
}
