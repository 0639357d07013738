// Package seq provides growable sequence containers that share one contract
// but differ in how they own their storage.
//
// Three implementations are provided:
//   - Vec: a single contiguous heap slice, cloned by deep copy.
//   - SmallVec: an inline buffer of InlineCap elements, promoted to the heap
//     once it overflows.
//   - EcoVec: a reference-counted backing shared between clones, privatized
//     on the first mutation (copy-on-write).
package seq

// Sequence is an ordered, indexable collection.
//
// Get and Remove return an error wrapping ErrOutOfBounds when the index is
// not in [0, Len()). Indices are never clamped.
type Sequence[T any] interface {
	// Len returns the number of elements.
	Len() int

	// Push appends v at the end.
	Push(v T)

	// Get returns the element at index i.
	Get(i int) (T, error)

	// Remove deletes the element at index i, shifting the tail down by one,
	// and returns the removed element.
	Remove(i int) (T, error)

	// Clone returns a sequence with the same contents. Mutating either side
	// afterwards never affects the other.
	Clone() Sequence[T]

	// Release drops the sequence's hold on its storage. The sequence is
	// empty afterwards.
	Release()
}

// Factory constructs an empty sequence.
type Factory[T any] func() Sequence[T]

// Values returns a snapshot of the contents of s.
func Values[T any](s Sequence[T]) []T {
	out := make([]T, s.Len())
	for i := range out {
		v, err := s.Get(i)
		if err != nil {
			// Len and Get disagree; the implementation is broken.
			panic(err)
		}
		out[i] = v
	}
	return out
}

// Equal reports whether a and b hold the same elements in the same order.
func Equal[T comparable](a, b Sequence[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		av, err := a.Get(i)
		if err != nil {
			return false
		}
		bv, err := b.Get(i)
		if err != nil {
			return false
		}
		if av != bv {
			return false
		}
	}
	return true
}

func checkIndex(op string, i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Op: op, Index: i, Len: n}
	}
	return nil
}
