// Package workload defines the benchmark targets: every combination of
// container variant, operation and size class, driven by one parameterized
// body.
package workload

import (
	"fmt"
	"strings"

	"github.com/eunmann/vecbench/pkg/benchutil"
	"github.com/eunmann/vecbench/pkg/seq"
)

// Kind is the operation a target measures.
type Kind int

const (
	// Push appends 0..N to an empty container.
	Push Kind = iota
	// RandomAccess reads one uniformly random index per iteration from a
	// container populated outside the timed region.
	RandomAccess
	// Remove populates a container and removes index 0 until it is empty,
	// both inside the timed region.
	Remove
	// Clone duplicates a container populated outside the timed region.
	Clone
)

// Kinds lists every workload in report order.
var Kinds = []Kind{Push, RandomAccess, Remove, Clone}

func (k Kind) String() string {
	switch k {
	case Push:
		return "push"
	case RandomAccess:
		return "random access"
	case Remove:
		return "remove"
	case Clone:
		return "clone"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SizeClass names an element count.
type SizeClass struct {
	Name string
	N    int
}

var (
	Small = SizeClass{Name: "small", N: benchutil.SmallSize}
	Large = SizeClass{Name: "large", N: benchutil.LargeSize}
)

// SizeClasses lists the size classes of the named targets.
var SizeClasses = []SizeClass{Small, Large}

// Variant is a container implementation under test.
type Variant struct {
	Name string
	New  seq.Factory[int]
}

var (
	Vec      = Variant{Name: "Vec", New: func() seq.Sequence[int] { return seq.NewVec[int]() }}
	SmallVec = Variant{Name: "SmallVec", New: func() seq.Sequence[int] { return seq.NewSmallVec[int]() }}
	EcoVec   = Variant{Name: "EcoVec", New: func() seq.Sequence[int] { return seq.NewEcoVec[int]() }}
)

// Variants lists the container implementations in report order.
var Variants = []Variant{Vec, SmallVec, EcoVec}

// LookupVariant finds a variant by name, ignoring case.
func LookupVariant(name string) (Variant, bool) {
	for _, v := range Variants {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Variant{}, false
}

// Target is one named timing unit.
type Target struct {
	Variant Variant
	Kind    Kind
	Size    SizeClass
}

// Name returns "<variant> <operation> <size-class>", e.g.
// "SmallVec remove large". Reports key on this string, so it must stay
// stable across releases.
func (t Target) Name() string {
	return t.Variant.Name + " " + t.Kind.String() + " " + t.Size.Name
}

// Targets returns the named targets: every variant × workload × size class.
func Targets() []Target {
	return TargetsFor(SizeClasses...)
}

// TargetsFor builds targets for the given size classes, ordered by variant,
// then workload, then size.
func TargetsFor(sizes ...SizeClass) []Target {
	targets := make([]Target, 0, len(Variants)*len(Kinds)*len(sizes))
	for _, v := range Variants {
		for _, k := range Kinds {
			for _, s := range sizes {
				targets = append(targets, Target{Variant: v, Kind: k, Size: s})
			}
		}
	}
	return targets
}
