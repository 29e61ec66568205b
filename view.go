package particles

import "iter"

// View1 is a typed query over a single component kind. It holds no results;
// every iteration re-evaluates the world's groups.
type View1[A any] struct {
	world *World
	a     AccessibleComponent[A]
	node  QueryNode
}

// View2 is a typed query over two component kinds.
type View2[A, B any] struct {
	world *World
	a     AccessibleComponent[A]
	b     AccessibleComponent[B]
	node  QueryNode
}

func NewView1[A any](w *World, a AccessibleComponent[A]) View1[A] {
	return View1[A]{
		world: w,
		a:     a,
		node:  newLeafNode([]Component{a}),
	}
}

func NewView2[A, B any](w *World, a AccessibleComponent[A], b AccessibleComponent[B]) View2[A, B] {
	return View2[A, B]{
		world: w,
		a:     a,
		b:     b,
		node:  newLeafNode([]Component{a, b}),
	}
}

// Iter yields shared references. The pointers must not be written through.
func (v View1[A]) Iter() iter.Seq[*A] {
	return v.each(false)
}

// IterMut yields exclusive references; it panics if another iteration over A is open.
func (v View1[A]) IterMut() iter.Seq[*A] {
	return v.each(true)
}

func (v View1[A]) Count() int {
	return v.Cursor().TotalMatched()
}

// Cursor opens a shared cursor over the view's groups.
func (v View1[A]) Cursor() *Cursor {
	return newCursor(v.node, v.world.storage, access{components: []Component{v.a}})
}

func (v View1[A]) each(exclusive bool) iter.Seq[*A] {
	return func(yield func(*A) bool) {
		cursor := newCursor(v.node, v.world.storage, access{components: []Component{v.a}, exclusive: exclusive})
		defer cursor.Reset()
		for cursor.Next() {
			if !yield(v.a.GetFromCursor(cursor)) {
				return
			}
		}
	}
}

// Iter yields shared references. The pointers must not be written through.
func (v View2[A, B]) Iter() iter.Seq2[*A, *B] {
	return v.each(false)
}

// IterMut yields exclusive references; it panics if another iteration over A or B is open.
func (v View2[A, B]) IterMut() iter.Seq2[*A, *B] {
	return v.each(true)
}

func (v View2[A, B]) Count() int {
	return v.Cursor().TotalMatched()
}

// Cursor opens a shared cursor over the view's groups.
func (v View2[A, B]) Cursor() *Cursor {
	return newCursor(v.node, v.world.storage, access{components: []Component{v.a, v.b}})
}

func (v View2[A, B]) each(exclusive bool) iter.Seq2[*A, *B] {
	return func(yield func(*A, *B) bool) {
		cursor := newCursor(v.node, v.world.storage, access{components: []Component{v.a, v.b}, exclusive: exclusive})
		defer cursor.Reset()
		for cursor.Next() {
			if !yield(v.a.GetFromCursor(cursor), v.b.GetFromCursor(cursor)) {
				return
			}
		}
	}
}
