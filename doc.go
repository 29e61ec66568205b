/*
Package particles provides the entity-component runtime behind the particle simulation
and its layout benchmarks.

Entities are grouped by the exact set of component kinds they were created with. Each
group (archetype) owns one contiguous table, so iterating a kind touches memory in
insertion order.

Core Concepts:

  - Entity: An opaque handle correlating the component records that belong together.
  - Component: A kind of plain value data stored per entity.
  - Archetype: A contiguous group of entities sharing the same component kinds.
  - Query: A stateless description of which groups to visit.
  - Resources: A type-keyed table of singleton values read by stages.
  - Pipeline: An ordered, immutable list of stages executed once per tick.

Basic Usage:

	position := particles.FactoryNewComponent[Position]()
	velocity := particles.FactoryNewComponent[Velocity]()

	world := particles.Factory.NewWorld(position, velocity)
	world.Extend(
		particles.Bundle{position.Bind(Position{}), velocity.Bind(Velocity{X: 1})},
		particles.Bundle{position.Bind(Position{}), velocity.Bind(Velocity{Y: 1})},
	)

	for pos, vel := range particles.NewView2(world, position, velocity).IterMut() {
		pos.X += vel.X
		pos.Y += vel.Y
	}

Stages read singleton values such as the simulation clock through Resources, which the
caller passes explicitly to Pipeline.Execute every tick.
*/
package particles
