// Command relaxfit fits an exponential relaxation decay curve from a
// dataset file and reports the fitted parameters, optionally with
// Monte Carlo error estimates and an HTML report.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rollingthunder/relaxfit/dataset"
	"github.com/rollingthunder/relaxfit/drivers"
	"github.com/rollingthunder/relaxfit/fit"
	"github.com/rollingthunder/relaxfit/montecarlo"
	"github.com/rollingthunder/relaxfit/util"
)

var flags struct {
	dataset     string
	driver      string
	simulations int
	report      string
	verbose     bool
}

var rootCmd = &cobra.Command{
	Use:   "relaxfit",
	Short: "Fit exponential relaxation decay curves",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&flags.dataset, "dataset", "d", "", "decay curve file (.yaml or .json)")
	rootCmd.Flags().StringVar(&flags.driver, "driver", "lm", "optimizer: lm, simplex or bfgs")
	rootCmd.Flags().IntVar(&flags.simulations, "mc", 0, "Monte Carlo simulations for parameter errors (0 disables)")
	rootCmd.Flags().StringVar(&flags.report, "report", "", "write an HTML report to this path")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	rootCmd.MarkFlagRequired("dataset")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	curve, err := dataset.Read(flags.dataset)
	if err != nil {
		return err
	}
	session, model, err := curve.Session()
	if err != nil {
		return err
	}
	defer session.Destroy()

	init, err := curve.Init()
	if err != nil {
		return err
	}

	info := model.Info()
	logger.Debug("session ready",
		"model", info.Name, "num_params", info.NumParams, "num_times", session.NumTimes(), "init", init)

	var driver func(*fit.Session, []float64) (drivers.Result, error)
	switch flags.driver {
	case "lm":
		driver = drivers.LevenbergMarquardt
	case "simplex":
		driver = drivers.NelderMead
	case "bfgs":
		driver = drivers.BFGS
	default:
		return fmt.Errorf("unknown driver %q", flags.driver)
	}

	result, err := driver(session, init)
	if err != nil {
		return err
	}
	logger.Info("fit converged",
		"model", info.Name,
		"params", result.Params,
		"chi2", result.ChiSquared,
		"evaluations", result.Stats.EvaluationCount)

	var mc montecarlo.Result
	if flags.simulations > 0 {
		mc, err = montecarlo.Errors(ctx, model, curve.RelaxTimes, curve.SD, scalingOf(curve, info.NumParams),
			result.Params, montecarlo.Config{Simulations: flags.simulations})
		if err != nil {
			return err
		}
		logger.Info("monte carlo errors",
			"simulations", mc.Simulations, "mean", mc.Mean, "stderr", mc.StdErr)
	}

	if flags.report != "" {
		if err := writeReport(session, result, mc); err != nil {
			return err
		}
		logger.Info("report written", "path", flags.report)
	}
	return nil
}

func scalingOf(curve *dataset.Curve, numParams int) []float64 {
	if len(curve.Scaling) == numParams {
		return curve.Scaling
	}
	scaling := make([]float64, numParams)
	for j := range scaling {
		scaling[j] = 1.0
	}
	return scaling
}

func writeReport(session *fit.Session, result drivers.Result, mc montecarlo.Result) error {
	paramTable := util.Table{
		Title:      "Fitted parameters",
		ColHeaders: []string{"value"},
	}
	if mc.Simulations > 0 {
		paramTable.ColHeaders = append(paramTable.ColHeaders, "error")
	}
	for j, p := range result.Params {
		row := []float64{p}
		if mc.Simulations > 0 {
			row = append(row, mc.StdErr[j])
		}
		paramTable.RowHeaders = append(paramTable.RowHeaders, fmt.Sprintf("p%d", j))
		paramTable.Data = append(paramTable.Data, row)
	}

	backCalc, err := session.BackCalculated()
	if err != nil {
		return err
	}
	curveTable := util.Table{
		Title:      fmt.Sprintf("Back-calculated curve (chi2 = %.6g)", result.ChiSquared),
		ColHeaders: []string{"back calculated"},
	}
	for i, b := range backCalc {
		curveTable.RowHeaders = append(curveTable.RowHeaders, fmt.Sprintf("point %d", i))
		curveTable.Data = append(curveTable.Data, []float64{b})
	}

	return util.WriteReportFile([]util.Table{paramTable, curveTable}, flags.report)
}
