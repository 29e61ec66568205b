package physics

import (
	"math"
	"math/rand/v2"

	"github.com/TheBitDrifter/particles"
)

const (
	MinMass         float32 = 1
	MaxMass         float32 = 5
	MaxAcceleration float32 = 400
)

// Spawner builds randomized particle bundles. It is not safe for concurrent use.
type Spawner struct {
	rng *rand.Rand
}

func NewSpawner(seed uint64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Radius is the draw radius of a particle of the given mass.
func Radius(mass float32) float32 {
	return float32(math.Sqrt(float64(mass) / math.Pi))
}

func (s *Spawner) uniform(lo, hi float32) float32 {
	return lo + (hi-lo)*s.rng.Float32()
}

func (s *Spawner) draw() (acc Vec2, mass float32) {
	acc = Vec2{
		X: s.uniform(-MaxAcceleration, MaxAcceleration),
		Y: s.uniform(-MaxAcceleration, MaxAcceleration),
	}
	return acc, s.uniform(MinMass, MaxMass)
}

// Particle returns a component-layout bundle resting at at.
func (s *Spawner) Particle(at Vec2) particles.Bundle {
	acc, mass := s.draw()
	return particles.Bundle{
		PositionComponent.Bind(Position{Pos: at}),
		VelocityComponent.Bind(Velocity{}),
		AccelerationComponent.Bind(Acceleration{Acc: acc}),
		MassComponent.Bind(Mass{Mass: mass}),
		CircleComponent.Bind(Circle{R: Radius(mass)}),
	}
}

// ObjectParticle returns an object-layout bundle resting at at.
func (s *Spawner) ObjectParticle(at Vec2) particles.Bundle {
	acc, mass := s.draw()
	return particles.Bundle{
		ObjectComponent.Bind(Object{Pos: at, Acc: acc, Mass: mass}),
		CircleComponent.Bind(Circle{R: Radius(mass)}),
	}
}

func (s *Spawner) Particles(n int, at Vec2) []particles.Bundle {
	bundles := make([]particles.Bundle, n)
	for i := range bundles {
		bundles[i] = s.Particle(at)
	}
	return bundles
}

func (s *Spawner) ObjectParticles(n int, at Vec2) []particles.Bundle {
	bundles := make([]particles.Bundle, n)
	for i := range bundles {
		bundles[i] = s.ObjectParticle(at)
	}
	return bundles
}

// Spawn inserts n component-layout particles at at with one Extend.
func (s *Spawner) Spawn(w *particles.World, n int, at Vec2) ([]particles.Entity, error) {
	return w.Extend(s.Particles(n, at)...)
}

// SpawnObjects inserts n object-layout particles at at with one Extend.
func (s *Spawner) SpawnObjects(w *particles.World, n int, at Vec2) ([]particles.Entity, error) {
	return w.Extend(s.ObjectParticles(n, at)...)
}

// SpawnEvent asks for N particles at At, in the object layout when Objects is set.
type SpawnEvent struct {
	N       int
	At      Vec2
	Objects bool
}

func (e SpawnEvent) bundles(s *Spawner) []particles.Bundle {
	if e.Objects {
		return s.ObjectParticles(e.N, e.At)
	}
	return s.Particles(e.N, e.At)
}
