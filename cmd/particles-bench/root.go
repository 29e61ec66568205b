package main

import (
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TheBitDrifter/particles"
	"github.com/TheBitDrifter/particles/internal/statsd"
	"github.com/TheBitDrifter/particles/internal/sweep"
)

type options struct {
	cfg     Config
	sweep   sweep.Sweep
	profile string

	stopProfile func()
}

func profileMode(name string) (func(*profile.Profile), error) {
	switch name {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "allocs":
		return profile.MemProfileAllocs, nil
	case "", "none":
		return nil, nil
	}
	return nil, eris.Errorf("unknown profile mode %q", name)
}

// NewRootCmd builds the command tree with cfg as the flag defaults.
func NewRootCmd(cfg Config) *cobra.Command {
	opts := &options{cfg: cfg, sweep: sweep.Default}

	rootCmd := &cobra.Command{
		Use:           "particles-bench",
		Short:         "Benchmark entity layouts and sorting algorithms over a size sweep",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.teardown()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&opts.sweep.From, "from", opts.sweep.From, "smallest input size")
	flags.IntVar(&opts.sweep.To, "to", opts.sweep.To, "largest input size")
	flags.IntVar(&opts.sweep.Step, "step", opts.sweep.Step, "size increment")
	flags.IntVar(&opts.cfg.Samples, "samples", cfg.Samples, "timed runs per size")
	flags.StringVar(&opts.profile, "profile", "none", "profile to write: cpu, mem, allocs or none")
	flags.StringVar(&opts.cfg.StatsdAddr, "statsd-addr", cfg.StatsdAddr, "statsd address for stage timings")
	flags.StringVar(&opts.cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level")

	rootCmd.AddCommand(
		newECSCmd(opts),
		newSortCmd(opts),
		newSimulateCmd(opts),
	)
	return rootCmd
}

func (o *options) setup(cmd *cobra.Command) error {
	level, err := o.cfg.Level()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	particles.Config.SetLogger(log.Logger)

	if err := o.sweep.Validate(); err != nil {
		return err
	}
	if o.cfg.Samples <= 0 {
		return eris.Errorf("samples must be positive, got %d", o.cfg.Samples)
	}

	if o.cfg.StatsdAddr != "" {
		if err := statsd.Init(o.cfg.StatsdAddr, []string{"cmd:" + cmd.Name()}); err != nil {
			return err
		}
	}

	mode, err := profileMode(o.profile)
	if err != nil {
		return err
	}
	if mode != nil {
		p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
		o.stopProfile = p.Stop
	}
	return nil
}

func (o *options) teardown() error {
	if o.stopProfile != nil {
		o.stopProfile()
		o.stopProfile = nil
	}
	return statsd.Close()
}
