package partition

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// boundsKind discriminates which enumerator family a Bounds value
// selects.
type boundsKind int

const (
	boundsAll boundsKind = iota
	boundsExactly
	boundsAtMost
	boundsBetween
	boundsSetK
)

// Bounds describes a block-count constraint for Enumerate: no
// constraint, exactly k, at most k, between kmin and kmax, or an
// arbitrary finite set K, optionally reversed (spec.md §4.6's bounds
// parameter, "one of: none; int k; int kmin,kmax; int[] K").
type Bounds struct {
	kind       boundsKind
	k          int
	kmin, kmax int
	set        []int
	reverse    bool
}

// AllPartitions selects every partition of the n-element set, with no
// constraint on block count.
func AllPartitions() Bounds {
	return Bounds{kind: boundsAll}
}

// ExactlyKBlocks selects partitions with exactly k blocks.
func ExactlyKBlocks(k int) Bounds {
	return Bounds{kind: boundsExactly, k: k}
}

// AtMostKBlocks selects partitions with at most k blocks.
func AtMostKBlocks(k int) Bounds {
	return Bounds{kind: boundsAtMost, k: k}
}

// BetweenBlocks selects partitions with between kmin and kmax blocks,
// inclusive.
func BetweenBlocks(kmin, kmax int) Bounds {
	return Bounds{kind: boundsBetween, kmin: kmin, kmax: kmax}
}

// BlocksIn selects partitions whose block count is a member of the given
// set. Duplicate entries are silently deduplicated.
func BlocksIn(k []int) Bounds {
	return Bounds{kind: boundsSetK, set: append([]int(nil), k...)}
}

// Reversed returns a copy of b that enumerates in reverse lexicographic
// order instead of lexicographic order.
func (b Bounds) Reversed() Bounds {
	b.reverse = !b.reverse
	return b
}

// Factory builds a Partition[T] from a stable element slice and a label
// function mapping each element to its RGS block label. The adapter
// never hard-codes which Partition implementation is produced (spec.md
// §9's factory-injection note); Go's first-class closures make the
// "polymorphic record" fallback the note describes for closure-less
// hosts unnecessary here.
type Factory[T comparable] func(elements []T, label func(T) int) (Partition[T], error)

// MutableFactory returns a Factory that builds a *UnionFindPartition by
// grouping elements by label and inserting each group with AddSubset.
func MutableFactory[T comparable]() Factory[T] {
	return func(elements []T, label func(T) int) (Partition[T], error) {
		groups := make(map[int][]T)
		for _, t := range elements {
			l := label(t)
			groups[l] = append(groups[l], t)
		}
		labels := maps.Keys(groups)
		slices.Sort(labels)
		p := NewUnionFind[T]()
		for _, l := range labels {
			if err := p.AddSubset(groups[l]); err != nil {
				return nil, err
			}
		}
		return p, nil
	}
}

// ImmutableFactory returns a Factory that builds an *ImmutablePartition
// directly from the label mapping.
func ImmutableFactory[T comparable]() Factory[T] {
	return func(elements []T, label func(T) int) (Partition[T], error) {
		return NewImmutableFromLabels(elements, label)
	}
}

// rgsSource is the minimal surface every C4/C5 enumerator exposes; it
// lets PartitionSeq drive any of them identically.
type rgsSource interface {
	Next() bool
	Value() []int
}

// Enumerate validates elements, bounds and factory, then returns a
// forward-only, non-restartable sequence of Partitions: one per RGS the
// chosen enumerator produces, each materialised independently via
// factory (spec.md §4.6).
func Enumerate[T comparable](elements []T, bounds Bounds, factory Factory[T]) (*PartitionSeq[T], error) {
	const op = "Enumerate"
	if elements == nil {
		return nil, newErr(NullArg, op, "elements is nil")
	}
	if len(elements) == 0 {
		return nil, newErr(ArgInvalid, op, "elements is empty")
	}
	if factory == nil {
		return nil, newErr(NullArg, op, "factory is nil")
	}

	n := len(elements)
	idx := make(map[T]int, n)
	ordered := make([]T, 0, n)
	for _, t := range elements {
		if isNilValue(t) {
			return nil, newErr(NullArg, op, "elements contains a nil value")
		}
		if _, ok := idx[t]; ok {
			return nil, newErr(ArgInvalid, op, "duplicate element %v", t)
		}
		idx[t] = len(ordered)
		ordered = append(ordered, t)
	}

	gen, err := buildEnumerator(op, n, bounds)
	if err != nil {
		return nil, err
	}

	return &PartitionSeq[T]{
		elements: ordered,
		idx:      idx,
		factory:  factory,
		gen:      gen,
	}, nil
}

// buildEnumerator dispatches a Bounds value to the concrete C4/C5
// enumerator it selects.
func buildEnumerator(op string, n int, b Bounds) (rgsSource, error) {
	switch b.kind {
	case boundsAll:
		if b.reverse {
			return NewBetweenReverse(n, 1, n)
		}
		return NewRGS(n), nil
	case boundsExactly:
		if b.reverse {
			return NewExactlyKReverse(n, b.k)
		}
		return NewExactlyK(n, b.k)
	case boundsAtMost:
		if b.reverse {
			return NewAtMostKReverse(n, b.k)
		}
		return NewAtMostK(n, b.k)
	case boundsBetween:
		if b.reverse {
			return NewBetweenReverse(n, b.kmin, b.kmax)
		}
		return NewBetween(n, b.kmin, b.kmax)
	case boundsSetK:
		if b.reverse {
			return NewSetKReverse(n, b.set)
		}
		return NewSetK(n, b.set)
	default:
		return nil, newErr(ArgInvalid, op, "unrecognized bounds kind %d", b.kind)
	}
}

// PartitionSeq is a finite, forward-only, non-restartable sequence of
// Partitions produced by Enumerate. Each yielded Partition is
// independent: mutating or dropping one does not affect others, since
// both built-in factories copy their inputs.
type PartitionSeq[T comparable] struct {
	elements []T
	idx      map[T]int
	factory  Factory[T]
	gen      rgsSource
	current  Partition[T]
	err      error
	done     bool
}

// Next advances to the next Partition and reports whether one was
// produced. Once it returns false, it returns false on every subsequent
// call.
func (s *PartitionSeq[T]) Next() bool {
	if s.done {
		return false
	}
	if !s.gen.Next() {
		s.done = true
		return false
	}
	a := s.gen.Value()
	p, err := s.factory(s.elements, func(t T) int { return a[s.idx[t]] })
	if err != nil {
		s.err = err
		s.done = true
		return false
	}
	s.current = p
	return true
}

// Current returns the Partition produced by the most recent call to Next
// that returned true.
func (s *PartitionSeq[T]) Current() Partition[T] {
	return s.current
}

// Err returns the error, if any, that caused the sequence to end early.
// It is nil if the sequence ran to its natural end.
func (s *PartitionSeq[T]) Err() error {
	return s.err
}
