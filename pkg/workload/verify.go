package workload

import (
	"errors"
	"fmt"

	"github.com/eunmann/vecbench/pkg/seq"
)

// ErrMismatch indicates a variant produced contents that differ from the
// expected op sequence result.
var ErrMismatch = errors.New("contents mismatch")

// Verify replays the workloads for n elements against v without timing and
// checks the resulting contents: push yields 0..n-1, removing index 0 n times
// yields 0..n-1 in order and empties the container, a clone is equal to its
// source and independent of it, and indexing at Len fails with
// seq.ErrOutOfBounds.
func Verify(v Variant, n int) error {
	checks := []struct {
		name string
		fn   func(seq.Factory[int], int) error
	}{
		{"push", verifyPush},
		{"remove", verifyRemove},
		{"clone", verifyClone},
		{"bounds", verifyBounds},
	}
	for _, c := range checks {
		if err := c.fn(v.New, n); err != nil {
			return fmt.Errorf("%s %s n=%d: %w", v.Name, c.name, n, err)
		}
	}
	return nil
}

func verifyPush(newSeq seq.Factory[int], n int) error {
	s := Populate(newSeq, n)
	defer s.Release()
	return expectAscending(s, n)
}

func verifyRemove(newSeq seq.Factory[int], n int) error {
	s := Populate(newSeq, n)
	defer s.Release()
	for i := range n {
		got, err := s.Remove(0)
		if err != nil {
			return err
		}
		if got != i {
			return fmt.Errorf("%w: removal %d returned %d", ErrMismatch, i, got)
		}
	}
	if s.Len() != 0 {
		return fmt.Errorf("%w: length %d after draining", ErrMismatch, s.Len())
	}
	return nil
}

func verifyClone(newSeq seq.Factory[int], n int) error {
	s := Populate(newSeq, n)
	defer s.Release()
	c := s.Clone()
	defer c.Release()

	if !seq.Equal(s, c) {
		return fmt.Errorf("%w: clone differs from source", ErrMismatch)
	}
	c.Push(n)
	if err := expectAscending(s, n); err != nil {
		return fmt.Errorf("source after clone push: %w", err)
	}
	if err := expectAscending(c, n+1); err != nil {
		return fmt.Errorf("clone after push: %w", err)
	}
	if n == 0 {
		return nil
	}
	if _, err := s.Remove(0); err != nil {
		return err
	}
	if first, err := c.Get(0); err != nil || first != 0 {
		return fmt.Errorf("%w: removal from source leaked into clone", ErrMismatch)
	}
	return nil
}

func verifyBounds(newSeq seq.Factory[int], n int) error {
	s := Populate(newSeq, n)
	defer s.Release()
	if _, err := s.Get(s.Len()); !errors.Is(err, seq.ErrOutOfBounds) {
		return fmt.Errorf("%w: get at length returned %v", ErrMismatch, err)
	}
	if _, err := s.Remove(s.Len()); !errors.Is(err, seq.ErrOutOfBounds) {
		return fmt.Errorf("%w: remove at length returned %v", ErrMismatch, err)
	}
	return nil
}

func expectAscending(s seq.Sequence[int], n int) error {
	if s.Len() != n {
		return fmt.Errorf("%w: length %d, want %d", ErrMismatch, s.Len(), n)
	}
	for i := range n {
		got, err := s.Get(i)
		if err != nil {
			return err
		}
		if got != i {
			return fmt.Errorf("%w: index %d holds %d", ErrMismatch, i, got)
		}
	}
	return nil
}
