package seq

// Vec is a sequence backed by one exclusively owned slice.
type Vec[T any] struct {
	items []T
}

// NewVec returns an empty Vec. No storage is allocated until the first Push.
func NewVec[T any]() *Vec[T] {
	return &Vec[T]{}
}

func (v *Vec[T]) Len() int {
	return len(v.items)
}

func (v *Vec[T]) Push(x T) {
	v.items = append(v.items, x)
}

func (v *Vec[T]) Get(i int) (T, error) {
	if err := checkIndex("get", i, len(v.items)); err != nil {
		var zero T
		return zero, err
	}
	return v.items[i], nil
}

func (v *Vec[T]) Remove(i int) (T, error) {
	n := len(v.items)
	if err := checkIndex("remove", i, n); err != nil {
		var zero T
		return zero, err
	}
	x := v.items[i]
	copy(v.items[i:], v.items[i+1:])
	var zero T
	v.items[n-1] = zero
	v.items = v.items[:n-1]
	return x, nil
}

// Clone deep-copies the elements into a new allocation sized to the length.
func (v *Vec[T]) Clone() Sequence[T] {
	if len(v.items) == 0 {
		return NewVec[T]()
	}
	items := make([]T, len(v.items))
	copy(items, v.items)
	return &Vec[T]{items: items}
}

func (v *Vec[T]) Release() {
	v.items = nil
}
