package main

import (
	"math/rand/v2"
	"slices"

	"github.com/spf13/cobra"

	"github.com/TheBitDrifter/particles/sorting"
)

func sortGroup(name string, sort sorting.Func, seed uint64) group {
	return group{
		name: name,
		bench: func(n, samples int) (timing, error) {
			rng := rand.New(rand.NewPCG(seed, uint64(n)))
			s := sorting.Sequence(n)
			return measure(samples,
				func() { sorting.Shuffle(rng, s) },
				func() error {
					sort(s)
					return nil
				})
		},
	}
}

func newSortCmd(opts *options) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Time bubble sort and merge sort on freshly shuffled input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := make([]string, 0, len(sorting.Algorithms))
			for name := range sorting.Algorithms {
				names = append(names, name)
			}
			slices.Sort(names)

			groups := make([]group, len(names))
			for i, name := range names {
				groups[i] = sortGroup(name+"_sort", sorting.Algorithms[name], seed)
			}
			return runGroups(cmd, opts, groups)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "shuffle seed")
	return cmd
}
