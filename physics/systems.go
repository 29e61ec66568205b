package physics

import (
	"reflect"

	"github.com/rs/zerolog"

	"github.com/TheBitDrifter/particles"
)

const (
	StageApplyGravity     = "apply_gravity"
	StageUpdateVelocity   = "update_velocity"
	StageApplyAirDrag     = "apply_air_drag"
	StageUpdatePosition   = "update_position"
	StageDropAcceleration = "drop_acceleration"
	StageUpdateObjects    = "update_objects"
)

// System is a physics stage body. Time is passed in explicitly.
type System func(w *particles.World, t *Time)

// ApplyGravity adds Gravity * mass * dt to the y acceleration.
func ApplyGravity(w *particles.World, t *Time) {
	dt := t.Delta()
	for acc, mass := range particles.NewView2(w, AccelerationComponent, MassComponent).IterMut() {
		acc.Acc.Y += Gravity * mass.Mass * dt
	}
}

func UpdateVelocity(w *particles.World, t *Time) {
	dt := t.Delta()
	for vel, acc := range particles.NewView2(w, VelocityComponent, AccelerationComponent).IterMut() {
		vel.Vel = vel.Vel.Add(acc.Acc.Scale(dt))
	}
}

func ApplyAirDrag(w *particles.World, _ *Time) {
	for vel := range particles.NewView1(w, VelocityComponent).IterMut() {
		vel.Vel = vel.Vel.Scale(Drag)
	}
}

func UpdatePosition(w *particles.World, t *Time) {
	dt := t.Delta()
	for pos, vel := range particles.NewView2(w, PositionComponent, VelocityComponent).IterMut() {
		pos.Pos = pos.Pos.Add(vel.Vel.Scale(dt))
	}
}

func DropAcceleration(w *particles.World, _ *Time) {
	for acc := range particles.NewView1(w, AccelerationComponent).IterMut() {
		acc.Acc = Vec2{}
	}
}

// UpdateObjects runs gravity, velocity integration, drag, position
// integration and the acceleration reset inline for each Object.
func UpdateObjects(w *particles.World, t *Time) {
	dt := t.Delta()
	for obj := range particles.NewView1(w, ObjectComponent).IterMut() {
		obj.Acc.Y += Gravity * obj.Mass * dt
		obj.Vel = obj.Vel.Add(obj.Acc.Scale(dt))
		obj.Vel = obj.Vel.Scale(Drag)
		obj.Pos = obj.Pos.Add(obj.Vel.Scale(dt))
		obj.Acc = Vec2{}
	}
}

// timed adapts a System to a pipeline stage that reads Time from the resource table.
func timed(system System) particles.StageFunc {
	return func(w *particles.World, res *particles.Resources) {
		system(w, particles.MustGetResource[Time](res))
	}
}

func stage(name string, system System, reads, writes []particles.Component) particles.Stage {
	return particles.Stage{
		Name:      name,
		Reads:     reads,
		Writes:    writes,
		Resources: []reflect.Type{particles.ResourceType[Time]()},
		Run:       timed(system),
	}
}

// ComponentStages are the component layout's stages in integration order.
func ComponentStages() []particles.Stage {
	return []particles.Stage{
		stage(StageApplyGravity, ApplyGravity,
			[]particles.Component{MassComponent},
			[]particles.Component{AccelerationComponent}),
		stage(StageUpdateVelocity, UpdateVelocity,
			[]particles.Component{AccelerationComponent},
			[]particles.Component{VelocityComponent}),
		stage(StageApplyAirDrag, ApplyAirDrag,
			nil,
			[]particles.Component{VelocityComponent}),
		stage(StageUpdatePosition, UpdatePosition,
			[]particles.Component{VelocityComponent},
			[]particles.Component{PositionComponent}),
		stage(StageDropAcceleration, DropAcceleration,
			nil,
			[]particles.Component{AccelerationComponent}),
	}
}

func ObjectStages() []particles.Stage {
	return []particles.Stage{
		stage(StageUpdateObjects, UpdateObjects, nil, []particles.Component{ObjectComponent}),
	}
}

func NewComponentPipeline(logger zerolog.Logger) (*particles.Pipeline, error) {
	return particles.Factory.NewPipelineBuilder().
		WithLogger(logger).
		Add(ComponentStages()...).
		Build()
}

func NewObjectPipeline(logger zerolog.Logger) (*particles.Pipeline, error) {
	return particles.Factory.NewPipelineBuilder().
		WithLogger(logger).
		Add(ObjectStages()...).
		Build()
}

// NewPipeline schedules both layouts, component stages first.
func NewPipeline(logger zerolog.Logger) (*particles.Pipeline, error) {
	return particles.Factory.NewPipelineBuilder().
		WithLogger(logger).
		Add(ComponentStages()...).
		Add(ObjectStages()...).
		Build()
}
