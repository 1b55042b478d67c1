package cmd

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/btracey/diffopt/functions"
)

func tableCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print an example function and its first two derivatives as CSV",
		Long:  "Print an example function and its first two derivatives as CSV.\n\nFunctions: " + strings.Join(functions.Names(), ", "),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.table(cmd)
		},
	}
	cmd.Flags().String("function", "damped-sine", "Function to tabulate")
	cmd.Flags().Float64("from", -2, "First x")
	cmd.Flags().Float64("to", 2, "Last x")
	cmd.Flags().Int("n", 41, "Number of points")
	return cmd
}

func (a *app) table(cmd *cobra.Command) error {
	f, err := functions.ByName(a.cfg.Function)
	if err != nil {
		return err
	}
	oracle, err := a.cfg.oracle()
	if err != nil {
		return err
	}
	pts, err := functions.Tabulate(f, oracle, a.cfg.From, a.cfg.To, a.cfg.N)
	if err != nil {
		return err
	}

	w := csv.NewWriter(cmd.OutOrStdout())
	if err := w.Write([]string{"x", "f", "df", "ddf"}); err != nil {
		return errors.Wrap(err, "writing table")
	}
	for _, p := range pts {
		rec := make([]string, 0, 4)
		for _, v := range []float64{p.X, p.F, p.D1, p.D2} {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return errors.Wrap(err, "writing table")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "writing table")
}
