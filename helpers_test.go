package particles

import "testing"

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

type Health struct {
	Value int
}

type testKinds struct {
	position AccessibleComponent[Position]
	velocity AccessibleComponent[Velocity]
	health   AccessibleComponent[Health]
}

func newTestKinds() testKinds {
	return testKinds{
		position: FactoryNewComponent[Position](),
		velocity: FactoryNewComponent[Velocity](),
		health:   FactoryNewComponentWithDefault(Health{Value: 100}),
	}
}

func expectPanic[E any](t *testing.T, fn func()) (got E) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %T, got none", got)
		}
		e, ok := r.(E)
		if !ok {
			t.Fatalf("expected panic with %T, got %T: %v", got, r, r)
		}
		got = e
	}()
	fn()
	return got
}

func storageLen(s Storage) int {
	return s.(*storage).len()
}
