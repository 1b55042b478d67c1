package cmd

import (
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/btracey/diffopt/common"
	"github.com/btracey/diffopt/deriv"
	"github.com/btracey/diffopt/internal/logging"
	"github.com/btracey/diffopt/write"
)

const envPrefix = "DIFFOPT"

// Config holds the merged flag, environment and config file values of one
// invocation. Fields a command does not register stay at their zero value.
type Config struct {
	Oracle   string `mapstructure:"oracle"`
	Trace    bool   `mapstructure:"trace"`
	TraceCSV string `mapstructure:"trace-csv"`
	LogLevel string `mapstructure:"log-level"`

	Function   string  `mapstructure:"function"`
	X0         float64 `mapstructure:"x0"`
	Seed       int64   `mapstructure:"seed"`
	Step       float64 `mapstructure:"step"`
	Decay      float64 `mapstructure:"decay"`
	Iterations int     `mapstructure:"niter"`
	Method     string  `mapstructure:"method"`

	From float64 `mapstructure:"from"`
	To   float64 `mapstructure:"to"`
	N    int     `mapstructure:"n"`

	// x0Set records whether a start point was supplied at all.
	x0Set bool
}

// loadConfig merges the flags of cmd with DIFFOPT_* variables and the file
// named by --config. Precedence is command line, environment, file, flag
// default.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "binding flags")
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	cfg.x0Set = v.IsSet("x0")
	return cfg, nil
}

type derivOracle interface {
	deriv.Oracle
	deriv.VecOracle
}

func (c *Config) oracle() (derivOracle, error) {
	switch c.Oracle {
	case "", "forward":
		return deriv.Forward{}, nil
	case "fd", "finite-difference":
		return deriv.FiniteDifference{}, nil
	}
	return nil, errors.Errorf("unknown oracle %q, want forward or fd", c.Oracle)
}

// startPoint is --x0 when given, otherwise 0.1·(U−0.5) with U drawn from a
// source seeded by --seed.
func (c *Config) startPoint() float64 {
	if c.x0Set {
		return c.X0
	}
	rnd := rand.New(rand.NewSource(c.Seed))
	return 0.1 * (rnd.Float64() - 0.5)
}

// settings builds optimizer settings with the requested progress writers.
// The returned func closes any trace file and must be called once the run
// is over.
func (c *Config) settings(out io.Writer) (*common.Settings, func() error, error) {
	s := common.DefaultSettings()
	s.Iterations = c.Iterations
	done := func() error { return nil }

	if c.Trace {
		s.DisplayWriters = append(s.DisplayWriters, write.Writer{Writer: out, T: write.Displayer})
		s.DisplayInterval = 0
	}
	if c.TraceCSV != "" {
		f, err := os.Create(c.TraceCSV)
		if err != nil {
			return nil, nil, errors.Wrap(err, "creating trace file")
		}
		s.DisplayWriters = append(s.DisplayWriters, write.Writer{Writer: f, T: write.Logger})
		done = f.Close
	}
	return s, done, nil
}

// initParams loads the configuration and installs the logger. It runs
// before every subcommand.
func initParams(cmd *cobra.Command, a *app) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.Configure(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger
	logger.Debug("configuration loaded", "command", cmd.Name(), "oracle", cfg.Oracle)
	return nil
}

func iterationFlags(flags *pflag.FlagSet, niter int) {
	flags.Int("niter", niter, "Exact number of iterations to run")
}

func stepFlags(flags *pflag.FlagSet, step, decay float64) {
	flags.Float64("step", step, "Initial step size")
	flags.Float64("decay", decay, "Factor applied to the step after every iteration")
}

func startFlags(flags *pflag.FlagSet) {
	flags.String("function", "damped-sine", "Objective to minimize (see the table command)")
	flags.Float64("x0", 0, "Start point; drawn from --seed when not given")
	flags.Int64("seed", 1, "Seed for the random start point")
}
