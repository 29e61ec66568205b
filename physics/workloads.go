package physics

import (
	"github.com/rs/zerolog"

	"github.com/TheBitDrifter/particles"
)

// BatchSize is how many bundles a workload passes to a single Extend.
const BatchSize = 1000

const workloadSeed = 42

// Workload is a populated world with the pipeline for its layout.
type Workload struct {
	World     *particles.World
	Resources *particles.Resources
	Pipeline  *particles.Pipeline
}

// Tick runs the pipeline once with the fixed DefaultTimestep.
func (w *Workload) Tick() {
	w.Pipeline.Execute(w.World, w.Resources)
}

func populate(w *particles.World, n int, bundles func(int) []particles.Bundle) error {
	for done := 0; done < n; done += BatchSize {
		if _, err := w.Extend(bundles(min(BatchSize, n-done))...); err != nil {
			return err
		}
	}
	return nil
}

// InitComponents creates a world holding n component-layout particles.
func InitComponents(n int) (*particles.World, error) {
	w := particles.Factory.NewWorld(ParticleKinds()...)
	w.Register(CircleComponent)
	spawner := NewSpawner(workloadSeed)
	err := populate(w, n, func(count int) []particles.Bundle {
		return spawner.Particles(count, Vec2{})
	})
	return w, err
}

// InitObjects creates a world holding n object-layout particles.
func InitObjects(n int) (*particles.World, error) {
	w := particles.Factory.NewWorld(ObjectComponent, CircleComponent)
	spawner := NewSpawner(workloadSeed)
	err := populate(w, n, func(count int) []particles.Bundle {
		return spawner.ObjectParticles(count, Vec2{})
	})
	return w, err
}

func newWorkload(w *particles.World, pipeline *particles.Pipeline) *Workload {
	res := particles.Factory.NewResources()
	particles.InsertResource(res, Time{ElapsedSeconds: DefaultTimestep, OverallTime: DefaultTimestep})
	return &Workload{World: w, Resources: res, Pipeline: pipeline}
}

// ComponentsLoop prepares n component-layout particles under the component pipeline.
func ComponentsLoop(n int) (*Workload, error) {
	w, err := InitComponents(n)
	if err != nil {
		return nil, err
	}
	pipeline, err := NewComponentPipeline(zerolog.Nop())
	if err != nil {
		return nil, err
	}
	return newWorkload(w, pipeline), nil
}

// ObjectsLoop prepares n object-layout particles under the object pipeline.
func ObjectsLoop(n int) (*Workload, error) {
	w, err := InitObjects(n)
	if err != nil {
		return nil, err
	}
	pipeline, err := NewObjectPipeline(zerolog.Nop())
	if err != nil {
		return nil, err
	}
	return newWorkload(w, pipeline), nil
}
