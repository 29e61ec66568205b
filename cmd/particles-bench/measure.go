package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TheBitDrifter/particles/internal/sweep"
)

type timing struct {
	Mean time.Duration
	Best time.Duration
}

// measure times samples calls of run. prepare runs before each call and is
// not timed.
func measure(samples int, prepare func(), run func() error) (timing, error) {
	var total time.Duration
	best := time.Duration(-1)
	for i := 0; i < samples; i++ {
		if prepare != nil {
			prepare()
		}
		start := time.Now()
		if err := run(); err != nil {
			return timing{}, err
		}
		took := time.Since(start)
		total += took
		if best < 0 || took < best {
			best = took
		}
	}
	return timing{Mean: total / time.Duration(samples), Best: best}, nil
}

// group is one named series of the sweep, for example "components_loop".
type group struct {
	name string
	// bench returns the timing for input size n.
	bench func(n, samples int) (timing, error)
}

func runGroups(cmd *cobra.Command, opts *options, groups []group) error {
	for _, g := range groups {
		for _, n := range opts.sweep.Sizes() {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			t, err := g.bench(n, opts.cfg.Samples)
			if err != nil {
				return err
			}
			log.Info().
				Str("group", g.name).
				Str("size", sweep.Name(n)).
				Int("samples", opts.cfg.Samples).
				Dur("mean", t.Mean).
				Dur("best", t.Best).
				Msg("benchmark")
		}
	}
	return nil
}
