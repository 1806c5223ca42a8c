package trail

// Var is a trailable value of any type. Set registers the change with the
// owning Store before applying it, so a later Restore can put the old value
// back. This is the generic replacement for the teacher's FDChange, which
// hard-coded the trailed type to BitSet.
type Var[T any] struct {
	store *Store
	value T
}

// NewVar creates a trailed variable bound to store, initialized to v.
func NewVar[T any](store *Store, v T) *Var[T] {
	return &Var[T]{store: store, value: v}
}

// Get returns the current value.
func (v *Var[T]) Get() T {
	return v.value
}

// Set records the current value on the trail, then assigns newValue.
// A no-op Set (newValue deep-equal to the current value) still records a
// trail entry; callers that want to skip unnecessary trailing should check
// for equality themselves before calling Set.
func (v *Var[T]) Set(newValue T) {
	v.store.record(v)
	v.value = newValue
}

func (v *Var[T]) snapshot() any {
	return v.value
}

func (v *Var[T]) restore(token any) {
	v.value = token.(T)
}
