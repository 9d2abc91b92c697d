// Package montecarlo estimates parameter uncertainties for a finished
// fit by refitting simulated datasets. Each simulation perturbs the
// back-calculated curve with Gaussian noise of the measured per-point
// standard deviation and refits it in an independent session, so the
// simulations share no state and run in parallel.
package montecarlo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/rollingthunder/relaxfit/drivers"
	"github.com/rollingthunder/relaxfit/fit"
)

type Config struct {
	// Simulations is the number of synthetic datasets to refit.
	// Defaults to 500.
	Simulations int
	// Workers bounds the number of concurrent refits. Defaults to
	// GOMAXPROCS.
	Workers int
	// Seed makes the simulated noise reproducible.
	Seed uint64
}

type Result struct {
	// Mean is the per-parameter mean over all simulation fits.
	Mean []float64
	// StdErr is the per-parameter standard deviation over all
	// simulation fits, the Monte Carlo parameter error estimate.
	StdErr []float64
	// Simulations is the number of fits that converged.
	Simulations int
}

// Errors refits cfg.Simulations noisy copies of the curve described by
// the fitted raw parameters and reports the spread of the estimates.
// The model, times, sd and scaling describe the same problem the
// original session was built from.
func Errors(ctx context.Context, model fit.Model, times, sd, scaling, fitted []float64, cfg Config) (Result, error) {
	if cfg.Simulations <= 0 {
		cfg.Simulations = 500
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	numParams := model.Info().NumParams
	if len(fitted) != numParams {
		return Result{}, fmt.Errorf("%w: fitted %d parameters, model wants %d", fit.ErrInvalidDimension, len(fitted), numParams)
	}

	// base curve at the fitted parameters
	base, err := baseCurve(model, times, sd, scaling, fitted)
	if err != nil {
		return Result{}, err
	}

	estimates := make([][]float64, cfg.Simulations)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for sim := 0; sim < cfg.Simulations; sim++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			// one rng per simulation keeps the noise independent of
			// scheduling order
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(sim)))
			values := make([]float64, len(base))
			for i := range base {
				values[i] = base[i] + rng.NormFloat64()*sd[i]
			}

			s, err := fit.NewSession(model, times, values, sd, scaling)
			if err != nil {
				return err
			}
			defer s.Destroy()

			result, err := drivers.LevenbergMarquardt(s, fitted)
			if err != nil {
				return fmt.Errorf("simulation %d: %w", sim, err)
			}
			estimates[sim] = result.Params
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return summarize(estimates, numParams), nil
}

func baseCurve(model fit.Model, times, sd, scaling, fitted []float64) ([]float64, error) {
	s, err := fit.NewSession(model, times, make([]float64, len(times)), sd, scaling)
	if err != nil {
		return nil, err
	}
	defer s.Destroy()

	if _, err := s.Objective(fitted); err != nil {
		return nil, err
	}
	return s.BackCalculated()
}

func summarize(estimates [][]float64, numParams int) Result {
	r := Result{
		Mean:        make([]float64, numParams),
		StdErr:      make([]float64, numParams),
		Simulations: len(estimates),
	}

	samples := make([]float64, len(estimates))
	for j := 0; j < numParams; j++ {
		for sim, est := range estimates {
			samples[sim] = est[j]
		}
		r.Mean[j], r.StdErr[j] = stat.MeanStdDev(samples, nil)
	}
	return r
}
