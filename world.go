package particles

import (
	"github.com/TheBitDrifter/mask"
)

// World is the facade entities are created through and queried against.
// It owns all component storage for its lifetime.
type World struct {
	storage *storage
}

func newWorld(sto *storage, components ...Component) *World {
	sto.Register(components...)
	return &World{storage: sto}
}

// Storage exposes the underlying component store.
func (w *World) Storage() Storage {
	return w.storage
}

// Register makes component kinds known to the world without creating entities.
func (w *World) Register(components ...Component) {
	w.storage.Register(components...)
}

func (w *World) Registered(c Component) bool {
	return w.storage.Registered(c)
}

// Len is the number of entities across every group.
func (w *World) Len() int {
	return w.storage.len()
}

// Extend creates one entity per bundle. Bundles are routed to the group matching
// their exact component-kind set; within a group they keep their relative order.
func (w *World) Extend(bundles ...Bundle) ([]Entity, error) {
	if w.storage.Locked() {
		return nil, LockedStorageError{}
	}
	batches, err := w.route(bundles)
	if err != nil {
		return nil, err
	}
	created := make([]Entity, 0, len(bundles))
	for _, b := range batches {
		entities, err := w.storage.InsertBatch(b.components, b.values)
		if err != nil {
			return created, err
		}
		created = append(created, entities...)
	}
	return created, nil
}

// EnqueueExtend behaves like Extend, deferring the inserts until no cursor is open.
func (w *World) EnqueueExtend(bundles ...Bundle) error {
	batches, err := w.route(bundles)
	if err != nil {
		return err
	}
	for _, b := range batches {
		if err := w.storage.EnqueueInsertBatch(b.components, b.values); err != nil {
			return err
		}
	}
	return nil
}

type batch struct {
	components []Component
	values     []Bundle
}

// route groups bundles by kind set in first-seen order. Every bundle is checked
// before anything is inserted, so a failing call leaves the world unchanged.
func (w *World) route(bundles []Bundle) ([]batch, error) {
	var batches []batch
	byMask := make(map[mask.Mask]int)
	for _, bundle := range bundles {
		components := make([]Component, len(bundle))
		for i, v := range bundle {
			components[i] = v.Kind()
		}
		bundleMask, err := w.storage.kindSet(components)
		if err != nil {
			return nil, err
		}
		if i, ok := byMask[bundleMask]; ok {
			batches[i].values = append(batches[i].values, bundle)
			continue
		}
		byMask[bundleMask] = len(batches)
		batches = append(batches, batch{components: components, values: []Bundle{bundle}})
	}
	return batches, nil
}
