package seq

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var factories = []struct {
	name string
	new  Factory[int]
}{
	{"Vec", func() Sequence[int] { return NewVec[int]() }},
	{"SmallVec", func() Sequence[int] { return NewSmallVec[int]() }},
	{"EcoVec", func() Sequence[int] { return NewEcoVec[int]() }},
}

var sizes = []int{0, 1, 100, InlineCap, InlineCap + 1, 10000}

func filled(f Factory[int], n int) Sequence[int] {
	s := f()
	for i := range n {
		s.Push(i)
	}
	return s
}

func ascending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPushProducesSequentialContents(t *testing.T) {
	for _, f := range factories {
		for _, n := range sizes {
			t.Run(fmt.Sprintf("%s/n=%d", f.name, n), func(t *testing.T) {
				s := filled(f.new, n)
				require.Equal(t, n, s.Len())
				assert.Equal(t, ascending(n), Values(s))
			})
		}
	}
}

func TestVariantsAgree(t *testing.T) {
	for _, n := range sizes {
		var seqs []Sequence[int]
		for _, f := range factories {
			seqs = append(seqs, filled(f.new, n))
		}
		for i := 1; i < len(seqs); i++ {
			assert.True(t, Equal(seqs[0], seqs[i]), "n=%d %s vs %s", n, factories[0].name, factories[i].name)
		}
	}
}

func TestSmallPushScenario(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			s := filled(f.new, 100)
			assert.Equal(t, 100, s.Len())
			v, err := s.Get(50)
			require.NoError(t, err)
			assert.Equal(t, 50, v)
		})
	}
}

func TestRemoveFrontDrainsInOrder(t *testing.T) {
	for _, f := range factories {
		for _, n := range []int{0, 1, 100, 10000} {
			t.Run(fmt.Sprintf("%s/n=%d", f.name, n), func(t *testing.T) {
				s := filled(f.new, n)
				for i := range n {
					v, err := s.Remove(0)
					require.NoError(t, err)
					require.Equal(t, i, v)
				}
				assert.Equal(t, 0, s.Len())
			})
		}
	}
}

func TestRemoveMiddleShiftsTail(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			s := filled(f.new, 5)
			v, err := s.Remove(2)
			require.NoError(t, err)
			assert.Equal(t, 2, v)
			assert.Equal(t, []int{0, 1, 3, 4}, Values(s))

			v, err = s.Remove(3)
			require.NoError(t, err)
			assert.Equal(t, 4, v)
			assert.Equal(t, []int{0, 1, 3}, Values(s))
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	for _, f := range factories {
		for _, n := range sizes {
			t.Run(fmt.Sprintf("%s/n=%d", f.name, n), func(t *testing.T) {
				s := filled(f.new, n)

				_, err := s.Get(s.Len())
				assert.ErrorIs(t, err, ErrOutOfBounds)

				_, err = s.Remove(s.Len())
				assert.ErrorIs(t, err, ErrOutOfBounds)

				_, err = s.Get(-1)
				assert.ErrorIs(t, err, ErrOutOfBounds)

				assert.Equal(t, n, s.Len(), "failed remove must not change length")
			})
		}
	}
}

func TestIndexErrorDetails(t *testing.T) {
	s := filled(func() Sequence[int] { return NewVec[int]() }, 3)
	_, err := s.Remove(7)

	var ie *IndexError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "remove", ie.Op)
	assert.Equal(t, 7, ie.Index)
	assert.Equal(t, 3, ie.Len)
	assert.Equal(t, "remove: index 7 out of bounds for length 3", err.Error())
}

func TestCloneIsIndependent(t *testing.T) {
	for _, f := range factories {
		for _, n := range sizes {
			t.Run(fmt.Sprintf("%s/n=%d", f.name, n), func(t *testing.T) {
				orig := filled(f.new, n)
				dup := orig.Clone()
				require.True(t, Equal(orig, dup))

				dup.Push(-1)
				assert.Equal(t, n, orig.Len())
				assert.Equal(t, n+1, dup.Len())

				if n > 0 {
					_, err := orig.Remove(0)
					require.NoError(t, err)
					v, err := dup.Get(0)
					require.NoError(t, err)
					assert.Equal(t, 0, v, "removal from the original leaked into the clone")
				}
			})
		}
	}
}

func TestReleaseEmpties(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			s := filled(f.new, 2000)
			s.Release()
			assert.Equal(t, 0, s.Len())
			s.Push(9)
			assert.Equal(t, []int{9}, Values(s))
		})
	}
}

func TestEqual(t *testing.T) {
	a := filled(func() Sequence[int] { return NewVec[int]() }, 3)
	b := filled(func() Sequence[int] { return NewEcoVec[int]() }, 3)
	assert.True(t, Equal(a, b))

	b.Push(3)
	assert.False(t, Equal(a, b))

	a.Push(4)
	assert.False(t, Equal(a, b))
}
