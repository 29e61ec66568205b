package physics

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/TheBitDrifter/particles"
)

const (
	// DefaultCeiling is how much simulated time RunUntil covers by default.
	DefaultCeiling = 30.0
	// DefaultTimestep is one frame at 60 Hz.
	DefaultTimestep = 1.0 / 60.0
)

// Simulation ties a world to the combined pipeline and a clock. Between ticks
// the world may be read through ComponentCircles and ObjectCircles.
type Simulation struct {
	World     *particles.World
	Resources *particles.Resources
	Pipeline  *particles.Pipeline

	clock  Clock
	logger zerolog.Logger
}

func NewSimulation(logger zerolog.Logger) (*Simulation, error) {
	pipeline, err := NewPipeline(logger)
	if err != nil {
		return nil, eris.Wrap(err, "failed to build physics pipeline")
	}
	res := particles.Factory.NewResources()
	particles.InsertResource(res, Time{})
	return &Simulation{
		World:     particles.Factory.NewWorld(Kinds()...),
		Resources: res,
		Pipeline:  pipeline,
		logger:    logger,
	}, nil
}

// Step inserts the Time for now and runs one tick.
func (s *Simulation) Step(now float64) Time {
	t := s.clock.Tick(now)
	particles.InsertResource(s.Resources, t)
	s.Pipeline.Execute(s.World, s.Resources)
	return t
}

// Advance runs one tick dt seconds after the previous one.
func (s *Simulation) Advance(dt float64) Time {
	return s.Step(s.clock.Now() + dt)
}

// RunUntil advances by dt until the overall time reaches ceiling and returns
// the number of ticks run.
func (s *Simulation) RunUntil(ceiling, dt float64) int {
	ticks := 0
	for s.clock.Now() < ceiling {
		s.Advance(dt)
		ticks++
	}
	s.logger.Debug().
		Int("ticks", ticks).
		Int("population", Population(s.World)).
		Float64("overall_time", s.clock.Now()).
		Msg("simulation reached ceiling")
	return ticks
}

func (s *Simulation) Time() Time {
	return s.clock.Current()
}

// HandleSpawn inserts the event's particles, deferring the insert while a
// view over the world is open.
func (s *Simulation) HandleSpawn(spawner *Spawner, ev SpawnEvent) error {
	if ev.N <= 0 {
		return nil
	}
	if err := s.World.EnqueueExtend(ev.bundles(spawner)...); err != nil {
		return eris.Wrapf(err, "failed to spawn %d particles", ev.N)
	}
	return nil
}

// ComponentCircles is the per-frame draw view for the component layout.
func ComponentCircles(w *particles.World) particles.View2[Position, Circle] {
	return particles.NewView2(w, PositionComponent, CircleComponent)
}

// ObjectCircles is the per-frame draw view for the object layout.
func ObjectCircles(w *particles.World) particles.View2[Object, Circle] {
	return particles.NewView2(w, ObjectComponent, CircleComponent)
}

// Population counts particles in either layout.
func Population(w *particles.World) int {
	query := particles.Factory.NewQuery()
	return particles.Factory.NewCursor(query.Or(PositionComponent, ObjectComponent), w.Storage()).TotalMatched()
}
