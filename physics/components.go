// Package physics holds the particle component records, the stages that
// integrate them each tick, and the workloads the benchmarks drive.
//
// Two layouts carry the same physical state. The component layout splits a
// particle across Position, Velocity, Acceleration and Mass; the object layout
// keeps all four inline in Object. Their pipelines differ on purpose: the
// component layout applies drag and resets acceleration in dedicated stages,
// the object layout does both inside a single stage.
package physics

import (
	"github.com/TheBitDrifter/particles"
)

const (
	// Gravity is the y acceleration per unit of mass per second.
	Gravity float32 = -50.0
	// Drag scales velocity once per tick regardless of elapsed time.
	Drag float32 = 0.999
)

type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

type Position struct {
	Pos Vec2
}

type Velocity struct {
	Vel Vec2
}

type Acceleration struct {
	Acc Vec2
}

type Mass struct {
	Mass float32
}

// Object is the monolithic layout. Unlike the Mass component it defaults to
// a mass of zero.
type Object struct {
	Pos  Vec2
	Vel  Vec2
	Acc  Vec2
	Mass float32
}

// Circle is the draw radius paired with a particle.
type Circle struct {
	R float32
}

// Time is the per-tick resource. ElapsedSeconds is computed by the caller.
type Time struct {
	ElapsedSeconds float64
	OverallTime    float64
}

// Delta is ElapsedSeconds narrowed to the precision the stages integrate in.
func (t Time) Delta() float32 {
	return float32(t.ElapsedSeconds)
}

var (
	PositionComponent     = particles.FactoryNewComponent[Position]()
	VelocityComponent     = particles.FactoryNewComponent[Velocity]()
	AccelerationComponent = particles.FactoryNewComponent[Acceleration]()
	MassComponent         = particles.FactoryNewComponentWithDefault(Mass{Mass: 1.0})
	ObjectComponent       = particles.FactoryNewComponent[Object]()
	CircleComponent       = particles.FactoryNewComponent[Circle]()
)

// ParticleKinds is the component layout's kind set, without the draw circle.
func ParticleKinds() []particles.Component {
	return []particles.Component{
		PositionComponent,
		VelocityComponent,
		AccelerationComponent,
		MassComponent,
	}
}

// Kinds lists every component kind this package defines.
func Kinds() []particles.Component {
	return append(ParticleKinds(), ObjectComponent, CircleComponent)
}
