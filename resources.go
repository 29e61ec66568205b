package particles

import "reflect"

// Resources is a type-keyed table holding at most one value per type.
// It is not safe for concurrent use.
type Resources struct {
	items map[reflect.Type]any
}

func newResources() *Resources {
	return &Resources{items: make(map[reflect.Type]any)}
}

// ResourceType returns the key a stage uses to declare that it reads T.
func ResourceType[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// InsertResource stores value, overwriting any previous value of type T in place.
func InsertResource[T any](r *Resources, value T) {
	t := reflect.TypeFor[T]()
	if r.items == nil {
		r.items = make(map[reflect.Type]any)
	}
	if existing, ok := r.items[t]; ok {
		*existing.(*T) = value
		return
	}
	stored := value
	r.items[t] = &stored
}

// GetResource returns the value of type T, or false if none was inserted.
func GetResource[T any](r *Resources) (*T, bool) {
	existing, ok := r.items[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return existing.(*T), true
}

// MustGetResource is GetResource for callers that treat absence as a bug.
func MustGetResource[T any](r *Resources) *T {
	res, ok := GetResource[T](r)
	if !ok {
		panic(MissingResourceError{Type: reflect.TypeFor[T]()})
	}
	return res
}

func (r *Resources) Has(t reflect.Type) bool {
	_, ok := r.items[t]
	return ok
}

func (r *Resources) Len() int {
	return len(r.items)
}
