// Package partition implements set partitions: a mutable disjoint-set
// structure supporting deletion, move and split beyond classical
// union/find, an immutable frozen snapshot, and enumerators that produce
// every partition of an n-element set (optionally constrained by block
// count) in restricted-growth-string order.
package partition

import (
	"fmt"
	"reflect"

	"github.com/dchest/siphash"
)

// Partition is the contract shared by UnionFindPartition and
// ImmutablePartition. T must be comparable so that elements can serve as
// map keys and be compared for block membership.
type Partition[T comparable] interface {
	// Size returns the number of elements held by the partition.
	Size() int
	// SubsetCount returns the number of blocks.
	SubsetCount() int
	// Elements returns a live view over every element in the partition.
	Elements() SetView[T]
	// Subsets returns a live view over every block.
	Subsets() BlockSetView[T]
	// Contains reports whether t is an element of the partition.
	Contains(t T) bool
	// Subset returns a view over the block containing t. The view is
	// anchored to t: once t is removed from the partition, further
	// access on the returned view fails with a NotFound error even if
	// other elements remain in what was t's block.
	Subset(t T) (BlockView[T], error)
	// Connected reports whether x and y belong to the same block.
	Connected(x, y T) (bool, error)
	// Add inserts t as a new singleton block, returning false if t was
	// already present.
	Add(t T) bool
	// AddSubset inserts every element of s as a single new block. s must
	// be non-empty and share no element with the partition.
	AddSubset(s []T) error
	// Remove deletes t, returning false if t was not present.
	Remove(t T) bool
	// RemoveSubset deletes the entire block containing t, returning
	// false if t was not present.
	RemoveSubset(t T) bool
	// Union merges the blocks of x and y, returning false if they were
	// already the same block.
	Union(x, y T) (bool, error)
	// Split isolates t into a new singleton block, returning false if t
	// was already a singleton.
	Split(t T) (bool, error)
	// Move places x into y's block, returning false if they already
	// share a block. Equivalent to Split(x) followed by Union(x,y).
	Move(x, y T) (bool, error)
	// Clear removes every element.
	Clear()
	// String renders the partition in the canonical format of §6.
	String() string
	// Equal reports whether other has the same blocks (element
	// identities, not block identities).
	Equal(other Partition[T]) bool
	// Hash returns a hash code consistent with Equal.
	Hash() uint64
}

// SetView is a read-only view over a set of elements. The view returned by
// Partition.Elements re-derives every answer from the current state of the
// partition; the per-block views returned by BlockSetView.Blocks are
// snapshots taken when Blocks is called.
type SetView[T comparable] interface {
	// Len returns the current element count.
	Len() int
	// Contains reports whether t is currently a member.
	Contains(t T) bool
	// Items returns a snapshot slice of the current members. The order
	// is unspecified.
	Items() []T
}

// BlockView is a read-only view over a single block, anchored to the
// element it was obtained from. Every method re-resolves that anchor
// against the live partition and fails with a NotFound *Error if the
// anchor element is no longer present.
type BlockView[T comparable] interface {
	// Len returns the current size of the block, or an error if the
	// anchor element has been removed.
	Len() (int, error)
	// Contains reports whether t currently shares the anchor's block.
	Contains(t T) (bool, error)
	// Items returns a snapshot slice of the block's current members.
	Items() ([]T, error)
}

// BlockSetView is a read-only, live view over the family of blocks in a
// partition.
type BlockSetView[T comparable] interface {
	// Len returns the current block count.
	Len() int
	// Blocks returns a snapshot slice of the current blocks, each as an
	// independent SetView. The order is unspecified.
	Blocks() []SetView[T]
}

// isNilValue reports whether t is the nil value of one of the nilable
// kinds comparable permits (pointer, channel, interface). Non-nilable
// instantiations (int, string, structs, arrays...) never satisfy this and
// the check is a no-op for them, matching the teacher's own int-only
// Partition, which has no null checks at all.
func isNilValue[T comparable](t T) bool {
	v := reflect.ValueOf(t)
	if !v.IsValid() {
		// A nil interface value of an interface-typed T.
		return true
	}
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// Two arbitrary, fixed siphash keys. They need not be secret: the hash
// only has to be deterministic and consistent with Equal, never
// adversarially resistant.
const (
	hashKey0 uint64 = 0x9ae16a3b2f90404f
	hashKey1 uint64 = 0xc2b2ae3d27d4eb4f
)

// elementDigest hashes a single element's textual representation. T has
// no structural constraint beyond comparable, so there is no byte
// encoding available other than a Stringer-agnostic %v rendering; this is
// sufficient because the digest only needs to agree for equal values, not
// to avoid collisions across unrelated types.
func elementDigest[T comparable](t T) uint64 {
	return siphash.Hash(hashKey0, hashKey1, []byte(fmt.Sprintf("%v", t)))
}

// combineBlock produces an order-independent digest of one block's
// contents by XOR-folding each element's digest.
func combineBlock[T comparable](block []T) uint64 {
	var h uint64
	for _, t := range block {
		h ^= elementDigest(t)
	}
	// Mix in the length so that two different-sized blocks whose element
	// digests happen to XOR to the same value are less likely to collide.
	h ^= uint64(len(block)) * 0x9e3779b97f4a7c15
	return h
}

// combinePartition produces an order-independent digest of a whole
// partition by XOR-folding each block's digest, satisfying P3 (hash
// consistent with set-of-blocks equality regardless of block order).
func combinePartition[T comparable](blocks [][]T) uint64 {
	var h uint64
	for _, b := range blocks {
		h ^= combineBlock(b)
	}
	return h
}

// partitionsEqual implements P3 equality (equal iff the block families
// are equal as sets of sets) generically over any two Partition[T]
// implementations, so UnionFindPartition and ImmutablePartition can share
// one Equal definition.
func partitionsEqual[T comparable](a, b Partition[T]) bool {
	if a.Size() != b.Size() || a.SubsetCount() != b.SubsetCount() {
		return false
	}
	for _, block := range a.Subsets().Blocks() {
		items := block.Items()
		if len(items) == 0 {
			continue
		}
		other, err := b.Subset(items[0])
		if err != nil {
			return false
		}
		otherItems, err := other.Items()
		if err != nil || len(otherItems) != len(items) {
			return false
		}
		want := make(map[T]struct{}, len(items))
		for _, t := range items {
			want[t] = struct{}{}
		}
		for _, t := range otherItems {
			if _, ok := want[t]; !ok {
				return false
			}
		}
	}
	return true
}
