package seq

// InlineCap is the number of elements a SmallVec stores without a heap
// allocation of its own.
const InlineCap = 1024

// SmallVec stores up to InlineCap elements in an embedded array and moves
// them to a heap slice on the first push past that. Once promoted it stays
// on the heap, even if elements are later removed.
type SmallVec[T any] struct {
	inline  [InlineCap]T
	n       int // length while inline
	heap    []T
	spilled bool
}

// NewSmallVec returns an empty SmallVec.
func NewSmallVec[T any]() *SmallVec[T] {
	return &SmallVec[T]{}
}

// Spilled reports whether the elements have been promoted to the heap.
func (v *SmallVec[T]) Spilled() bool {
	return v.spilled
}

func (v *SmallVec[T]) Len() int {
	if v.spilled {
		return len(v.heap)
	}
	return v.n
}

func (v *SmallVec[T]) Push(x T) {
	if v.spilled {
		v.heap = append(v.heap, x)
		return
	}
	if v.n < InlineCap {
		v.inline[v.n] = x
		v.n++
		return
	}
	v.promote(2 * InlineCap)
	v.heap = append(v.heap, x)
}

// promote moves the inline elements into a heap slice of the given capacity.
func (v *SmallVec[T]) promote(capacity int) {
	heap := make([]T, v.n, capacity)
	copy(heap, v.inline[:v.n])
	clear(v.inline[:v.n])
	v.heap = heap
	v.n = 0
	v.spilled = true
}

func (v *SmallVec[T]) items() []T {
	if v.spilled {
		return v.heap
	}
	return v.inline[:v.n]
}

func (v *SmallVec[T]) Get(i int) (T, error) {
	items := v.items()
	if err := checkIndex("get", i, len(items)); err != nil {
		var zero T
		return zero, err
	}
	return items[i], nil
}

func (v *SmallVec[T]) Remove(i int) (T, error) {
	items := v.items()
	n := len(items)
	if err := checkIndex("remove", i, n); err != nil {
		var zero T
		return zero, err
	}
	x := items[i]
	copy(items[i:], items[i+1:])
	var zero T
	items[n-1] = zero
	if v.spilled {
		v.heap = v.heap[:n-1]
	} else {
		v.n--
	}
	return x, nil
}

// Clone deep-copies the active storage. Contents that fit are placed inline
// in the clone even when the source has been promoted.
func (v *SmallVec[T]) Clone() Sequence[T] {
	items := v.items()
	c := &SmallVec[T]{}
	if len(items) <= InlineCap {
		copy(c.inline[:], items)
		c.n = len(items)
		return c
	}
	c.heap = make([]T, len(items))
	copy(c.heap, items)
	c.spilled = true
	return c
}

func (v *SmallVec[T]) Release() {
	clear(v.inline[:v.n])
	v.n = 0
	v.heap = nil
	v.spilled = false
}
