package main

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/TheBitDrifter/particles"
	"github.com/TheBitDrifter/particles/physics"
)

func initGroup(name string, init func(int) (*particles.World, error)) group {
	return group{
		name: name,
		bench: func(n, samples int) (timing, error) {
			return measure(samples, nil, func() error {
				_, err := init(n)
				return err
			})
		},
	}
}

func loopGroup(name string, prepare func(int) (*physics.Workload, error)) group {
	return group{
		name: name,
		bench: func(n, samples int) (timing, error) {
			workload, err := prepare(n)
			if err != nil {
				return timing{}, eris.Wrapf(err, "failed to prepare %s with %d particles", name, n)
			}
			return measure(samples, nil, func() error {
				workload.Tick()
				return nil
			})
		},
	}
}

func newECSCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ecs",
		Short: "Time world creation and pipeline ticks for both particle layouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGroups(cmd, opts, []group{
				initGroup("components_init", physics.InitComponents),
				initGroup("objects_init", physics.InitObjects),
				loopGroup("components_loop", physics.ComponentsLoop),
				loopGroup("objects_loop", physics.ObjectsLoop),
			})
		},
	}
}

func newSimulateCmd(opts *options) *cobra.Command {
	var (
		spawn   int
		ceiling float64
		dt      float64
		seed    uint64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the combined pipeline over both layouts until a simulated time ceiling",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sim, err := physics.NewSimulation(log.Logger)
			if err != nil {
				return err
			}
			spawner := physics.NewSpawner(seed)
			for _, ev := range []physics.SpawnEvent{
				{N: spawn},
				{N: spawn, Objects: true},
			} {
				if err := sim.HandleSpawn(spawner, ev); err != nil {
					return err
				}
			}

			t, err := measure(1, nil, func() error {
				sim.RunUntil(ceiling, dt)
				return nil
			})
			if err != nil {
				return err
			}
			log.Info().
				Int("particles", physics.Population(sim.World)).
				Int("component_circles", physics.ComponentCircles(sim.World).Count()).
				Int("object_circles", physics.ObjectCircles(sim.World).Count()).
				Float64("overall_time", sim.Time().OverallTime).
				Dur("took", t.Mean).
				Msg("simulation finished")
			return nil
		},
	}
	cmd.Flags().IntVar(&spawn, "spawn", 1000, "particles to spawn per layout")
	cmd.Flags().Float64Var(&ceiling, "ceiling", physics.DefaultCeiling, "simulated seconds to run")
	cmd.Flags().Float64Var(&dt, "dt", physics.DefaultTimestep, "simulated seconds per tick")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "spawner seed")
	return cmd
}
