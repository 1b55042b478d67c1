package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/btracey/diffopt/functions"
	"github.com/btracey/diffopt/univariate"
)

func gdCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gd",
		Short: "Minimize an example function with gradient descent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.minimize(cmd, &univariate.GradientDescent{Step: a.cfg.Step, Decay: a.cfg.Decay})
		},
	}
	startFlags(cmd.Flags())
	stepFlags(cmd.Flags(), 0.1, 0.995)
	iterationFlags(cmd.Flags(), 200)
	return cmd
}

func newtonCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newton",
		Short: "Find a critical point of an example function with Newton's method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.minimize(cmd, &univariate.Newton{})
		},
	}
	startFlags(cmd.Flags())
	iterationFlags(cmd.Flags(), 10)
	return cmd
}

// minimize runs method on the configured function and prints the result.
func (a *app) minimize(cmd *cobra.Command, method univariate.Method) (err error) {
	f, err := functions.ByName(a.cfg.Function)
	if err != nil {
		return err
	}
	oracle, err := a.cfg.oracle()
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

	x0 := a.cfg.startPoint()
	a.log.Info("starting", "method", cmd.Name(), "function", a.cfg.Function, "x0", x0, "iterations", a.cfg.Iterations)

	s := &univariate.Settings{Settings: cs, Oracle: oracle}
	result, err := univariate.Minimize(f, x0, s, method)
	if err != nil {
		return err
	}
	a.log.Info("finished", "status", result.Status, "evaluations", result.Evaluations, "runtime", result.Runtime)

	df, err := oracle.Derivative(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "x = %.12g\nf(x) = %.12g\nf'(x) = %.6e\n", result.Loc, f.Eval(result.Loc), df.Eval(result.Loc))
	return err
}
