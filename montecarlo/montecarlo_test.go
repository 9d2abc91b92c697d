package montecarlo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollingthunder/relaxfit/fit"
	"github.com/rollingthunder/relaxfit/models"
)

func runErrors(t *testing.T, sd []float64) Result {
	t.Helper()
	model := models.NewTwoParamExp()
	times := []float64{0.0, 0.1, 0.2, 0.4, 0.7, 1.0, 1.5, 2.0}
	fitted := []float64{10.0, 0.5}

	result, err := Errors(context.Background(), model, times, sd, []float64{1, 1}, fitted,
		Config{Simulations: 64, Seed: 7})
	require.NoError(t, err)
	return result
}

func TestErrors(t *testing.T) {
	if testing.Short() {
		t.Skipf("Skipping because we're running in short test mode.")
	}

	sd := []float64{0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05}
	result := runErrors(t, sd)

	require.Equal(t, 64, result.Simulations)
	require.Len(t, result.Mean, 2)
	require.Len(t, result.StdErr, 2)

	// estimates scatter around the generating parameters
	assert.InDelta(t, 10.0, result.Mean[0], 0.1)
	assert.InDelta(t, 0.5, result.Mean[1], 0.05)
	assert.Greater(t, result.StdErr[0], 0.0)
	assert.Greater(t, result.StdErr[1], 0.0)

	if testing.Verbose() {
		t.Logf("mean %v, stderr %v", result.Mean, result.StdErr)
	}
}

func TestErrorsGrowWithNoise(t *testing.T) {
	if testing.Short() {
		t.Skipf("Skipping because we're running in short test mode.")
	}

	small := runErrors(t, []float64{0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05})
	large := runErrors(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5})

	for j := range small.StdErr {
		assert.Greater(t, large.StdErr[j], small.StdErr[j],
			"parameter %d error must grow with measurement noise", j)
	}
}

func TestErrorsValidation(t *testing.T) {
	model := models.NewTwoParamExp()
	times := []float64{0.0, 1.0}
	sd := []float64{0.1, 0.1}

	_, err := Errors(context.Background(), model, times, sd, []float64{1, 1}, []float64{10.0},
		Config{Simulations: 2})
	assert.ErrorIs(t, err, fit.ErrInvalidDimension)
}

func TestErrorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := models.NewTwoParamExp()
	times := []float64{0.0, 1.0, 2.0}
	sd := []float64{0.1, 0.1, 0.1}

	_, err := Errors(ctx, model, times, sd, []float64{1, 1}, []float64{10.0, 0.5},
		Config{Simulations: 8})
	assert.ErrorIs(t, err, context.Canceled)
}
