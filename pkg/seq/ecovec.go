package seq

import "sync/atomic"

// ecoBacking is the storage shared by EcoVec clones.
type ecoBacking[T any] struct {
	refs  atomic.Int64
	items []T
}

func newEcoBacking[T any](items []T) *ecoBacking[T] {
	b := &ecoBacking[T]{items: items}
	b.refs.Store(1)
	return b
}

// EcoVec is a reference-counted sequence. Clone shares the backing and bumps
// the count; the first mutation through a handle whose backing is shared
// copies the elements into a private backing first.
//
// Go has no destructors, so a clone that is dropped without Release keeps
// its reference alive and the remaining handle will copy on its next
// mutation. The contents stay correct either way.
type EcoVec[T any] struct {
	b *ecoBacking[T]
}

// NewEcoVec returns an empty EcoVec. The empty state holds no backing.
func NewEcoVec[T any]() *EcoVec[T] {
	return &EcoVec[T]{}
}

// RefCount returns the number of handles sharing the backing, or 0 for a
// vector without one.
func (v *EcoVec[T]) RefCount() int {
	if v.b == nil {
		return 0
	}
	return int(v.b.refs.Load())
}

// Shared reports whether another handle references the same backing.
func (v *EcoVec[T]) Shared() bool {
	return v.b != nil && v.b.refs.Load() > 1
}

func (v *EcoVec[T]) Len() int {
	if v.b == nil {
		return 0
	}
	return len(v.b.items)
}

// makeUnique guarantees v owns its backing exclusively, with room for at
// least extra more elements when a copy is made.
func (v *EcoVec[T]) makeUnique(extra int) {
	if v.b == nil {
		v.b = newEcoBacking[T](nil)
		return
	}
	if v.b.refs.Load() == 1 {
		return
	}
	old := v.b
	n := len(old.items)
	items := make([]T, n, max(cap(old.items), n+extra))
	copy(items, old.items)
	v.b = newEcoBacking(items)
	old.refs.Add(-1)
}

func (v *EcoVec[T]) Push(x T) {
	v.makeUnique(1)
	v.b.items = append(v.b.items, x)
}

func (v *EcoVec[T]) Get(i int) (T, error) {
	if err := checkIndex("get", i, v.Len()); err != nil {
		var zero T
		return zero, err
	}
	return v.b.items[i], nil
}

func (v *EcoVec[T]) Remove(i int) (T, error) {
	n := v.Len()
	if err := checkIndex("remove", i, n); err != nil {
		var zero T
		return zero, err
	}
	v.makeUnique(0)
	items := v.b.items
	x := items[i]
	copy(items[i:], items[i+1:])
	var zero T
	items[n-1] = zero
	v.b.items = items[:n-1]
	return x, nil
}

// Clone is O(1): the result shares the backing until either side mutates.
func (v *EcoVec[T]) Clone() Sequence[T] {
	if v.b == nil {
		return NewEcoVec[T]()
	}
	v.b.refs.Add(1)
	return &EcoVec[T]{b: v.b}
}

// Release drops this handle's reference to the backing.
func (v *EcoVec[T]) Release() {
	if v.b == nil {
		return
	}
	v.b.refs.Add(-1)
	v.b = nil
}
