package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/btracey/diffopt/multivariate"
	"github.com/btracey/diffopt/regression"
)

func regressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Fit log(cases) against log(population) for the bundled municipality data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.regress(cmd)
		},
	}
	cmd.Flags().String("method", "gd", "Optimizer: gd or newton")
	stepFlags(cmd.Flags(), 0.01, 0.99)
	iterationFlags(cmd.Flags(), 200)
	return cmd
}

func (a *app) regress(cmd *cobra.Command) (err error) {
	var method multivariate.Method
	switch a.cfg.Method {
	case "gd":
		method = &multivariate.GradientDescent{Step: a.cfg.Step, Decay: a.cfg.Decay}
	case "newton":
		method = &multivariate.Newton{}
	default:
		return errors.Errorf("unknown method %q, want gd or newton", a.cfg.Method)
	}
	oracle, err := a.cfg.oracle()
	if err != nil {
		return err
	}
	d, err := regression.New(regression.Municipalities())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	cs, done, err := a.cfg.settings(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := done(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing trace file")
		}
	}()

	a.log.Info("fitting", "method", a.cfg.Method, "observations", d.Len(), "iterations", a.cfg.Iterations)
	fit, err := d.Fit(&multivariate.Settings{Settings: cs, Oracle: oracle}, method)
	if err != nil {
		return err
	}
	a.log.Info("finished", "status", fit.Status, "evaluations", fit.Evaluations, "loss", fit.Loss)

	slope, intercept := d.LeastSquares()
	a.log.Debug("closed form", "slope", slope, "intercept", intercept)

	_, err = fmt.Fprintf(out,
		"log(c)=%.3f*log(p)%+.3f\nloss = %.6f\nR² = %.4f\nresidual sd = %.4f\n",
		fit.Slope, fit.Intercept, fit.Loss,
		d.RSquared(fit.Slope, fit.Intercept),
		stat.StdDev(d.Residuals(fit.Slope, fit.Intercept), nil),
	)
	return err
}
