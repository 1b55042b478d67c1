package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// app is the state shared by the subcommands of one invocation.
type app struct {
	cfg *Config
	log *slog.Logger
}

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:          "diffopt",
		SilenceUsage: true,
		Short:        "diffopt minimizes functions with automatically computed derivatives.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("oracle", "forward", "Derivative oracle: forward (dual numbers) or fd (finite differences)")
	flags.Bool("trace", false, "Print every iteration to stdout")
	flags.String("trace-csv", "", "Write every iteration as CSV to this file")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("config", "", "YAML configuration file")

	cmd.AddCommand(
		gdCmd(a),
		newtonCmd(a),
		regressCmd(a),
		tableCmd(a),
		versionCmd(),
	)

	return cmd
}
