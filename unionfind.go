package partition

import (
	"fmt"

	"github.com/gstamatelat/partition/internal/arena"
)

// UnionFindPartition is a mutable disjoint-set structure supporting, in
// addition to classical union/find, O(1)-amortized element deletion,
// element move, subset split, whole-subset removal, and constant-time
// iteration over the elements of any block and over all blocks.
//
// Every element lives in an internal/arena.Arena slot addressed by a
// handle instead of a pointer node, per the §9 design note, which lets the
// debug invariant walker mark visited handles in a bits-and-blooms/bitset
// instead of a map[handle]bool. A slot returns to the arena's free-list
// when its element leaves as the last member of its block (Remove of a
// singleton, RemoveSubset); a slot vacated from inside a larger block stays
// allocated, because other slots of that block may still use it as their
// parent.
type UnionFindPartition[T comparable] struct {
	arena       *arena.Arena[T]
	lookup      map[T]arena.Handle
	anyRoot     arena.Handle
	subsetCount int
}

// NewUnionFind returns an empty UnionFindPartition.
func NewUnionFind[T comparable]() *UnionFindPartition[T] {
	return &UnionFindPartition[T]{
		arena:  arena.New[T](),
		lookup: make(map[T]arena.Handle),
	}
}

// find ascends parent handles with path splitting (retarget to the
// grandparent, then advance by one) and returns the root handle, per
// spec.md §4.2.
func (p *UnionFindPartition[T]) find(h arena.Handle) arena.Handle {
	for {
		slot := p.arena.Get(h)
		parent := slot.Parent
		if parent == h {
			return h
		}
		grandparent := p.arena.Get(parent).Parent
		slot.Parent = grandparent
		h = parent
	}
}

// attachRoot splices h into the root cycle, adjacent to anyRoot (or
// becomes anyRoot if the partition was empty).
func (p *UnionFindPartition[T]) attachRoot(h arena.Handle) {
	if p.anyRoot == arena.Nil {
		slot := p.arena.Get(h)
		slot.NextRoot = h
		slot.PrevRoot = h
		p.anyRoot = h
		return
	}
	head := p.arena.Get(p.anyRoot)
	tail := p.arena.Get(head.PrevRoot)
	hs := p.arena.Get(h)
	hs.NextRoot = p.anyRoot
	hs.PrevRoot = head.PrevRoot
	tail.NextRoot = h
	head.PrevRoot = h
}

// detachRoot removes h (a root handle) from the root cycle.
func (p *UnionFindPartition[T]) detachRoot(h arena.Handle) {
	hs := p.arena.Get(h)
	if hs.NextRoot == h {
		p.anyRoot = arena.Nil
		return
	}
	p.arena.Get(hs.PrevRoot).NextRoot = hs.NextRoot
	p.arena.Get(hs.NextRoot).PrevRoot = hs.PrevRoot
	if p.anyRoot == h {
		p.anyRoot = hs.NextRoot
	}
}

// spliceItemCycles merges the two block cycles containing i1 and i2 into
// one, by swapping their NextItem pointers and fixing the corresponding
// back-pointers, per spec.md §4.2.
func (p *UnionFindPartition[T]) spliceItemCycles(i1, i2 arena.Handle) {
	s1 := p.arena.Get(i1)
	s2 := p.arena.Get(i2)
	n1, n2 := s1.NextItem, s2.NextItem
	s1.NextItem = n2
	s2.NextItem = n1
	p.arena.Get(n2).PrevItem = i1
	p.arena.Get(n1).PrevItem = i2
}

// unlinkItem removes h from its block cycle, leaving the remainder of the
// cycle intact.
func (p *UnionFindPartition[T]) unlinkItem(h arena.Handle) {
	hs := p.arena.Get(h)
	p.arena.Get(hs.PrevItem).NextItem = hs.NextItem
	p.arena.Get(hs.NextItem).PrevItem = hs.PrevItem
}

// Size returns the number of elements.
func (p *UnionFindPartition[T]) Size() int {
	return len(p.lookup)
}

// SubsetCount returns the number of blocks.
func (p *UnionFindPartition[T]) SubsetCount() int {
	return p.subsetCount
}

// Contains reports whether t is an element of the partition.
func (p *UnionFindPartition[T]) Contains(t T) bool {
	_, ok := p.lookup[t]
	return ok
}

// Add inserts t as a new singleton block.
func (p *UnionFindPartition[T]) Add(t T) bool {
	if isNilValue(t) {
		return false
	}
	if _, ok := p.lookup[t]; ok {
		return false
	}
	h := p.arena.Alloc(t)
	slot := p.arena.Get(h)
	slot.Parent = h
	slot.NextItem = h
	slot.PrevItem = h
	slot.Size = 1
	p.lookup[t] = h
	p.attachRoot(h)
	p.subsetCount++
	p.checkInvariants()
	return true
}

// AddSubset inserts every element of s as a single new block.
func (p *UnionFindPartition[T]) AddSubset(s []T) error {
	const op = "AddSubset"
	if s == nil {
		return newErr(NullArg, op, "subset is nil")
	}
	if len(s) == 0 {
		return newErr(ArgInvalid, op, "subset is empty")
	}
	seen := make(map[T]struct{}, len(s))
	for _, t := range s {
		if isNilValue(t) {
			return newErr(NullArg, op, "subset contains a nil element")
		}
		if _, ok := p.lookup[t]; ok {
			return newErr(ArgInvalid, op, "element %v already present", t)
		}
		if _, ok := seen[t]; ok {
			return newErr(ArgInvalid, op, "duplicate element %v in subset", t)
		}
		seen[t] = struct{}{}
	}

	var root arena.Handle
	var prev arena.Handle
	for i, t := range s {
		h := p.arena.Alloc(t)
		slot := p.arena.Get(h)
		if i == 0 {
			root = h
			slot.Parent = h
		} else {
			slot.Parent = root
			p.arena.Get(prev).NextItem = h
			slot.PrevItem = prev
		}
		p.lookup[t] = h
		prev = h
	}
	// Close the block cycle back to root.
	rootSlot := p.arena.Get(root)
	rootSlot.Size = len(s)
	if len(s) == 1 {
		rootSlot.NextItem = root
		rootSlot.PrevItem = root
	} else {
		rootSlot.PrevItem = prev
		p.arena.Get(prev).NextItem = root
	}
	p.attachRoot(root)
	p.subsetCount++
	p.checkInvariants()
	return nil
}

// Remove deletes t. If t's block has more than one element and t is the
// root, its value is swapped with a cycle neighbour first so the root
// slot is never left vacant (spec.md §4.2, §9).
func (p *UnionFindPartition[T]) Remove(t T) bool {
	h, ok := p.lookup[t]
	if !ok {
		return false
	}
	root := p.find(h)
	rootSlot := p.arena.Get(root)

	if rootSlot.Size == 1 {
		p.detachRoot(root)
		delete(p.lookup, t)
		p.arena.Free(root)
		p.subsetCount--
		p.checkInvariants()
		return true
	}

	victim := h
	if victim == root {
		neighbour := rootSlot.NextItem
		nSlot := p.arena.Get(neighbour)
		rootSlot.Element, nSlot.Element = nSlot.Element, rootSlot.Element
		p.lookup[rootSlot.Element] = root
		p.lookup[nSlot.Element] = neighbour
		victim = neighbour
	}

	p.unlinkItem(victim)
	rootSlot.Size--
	delete(p.lookup, t)
	// victim is not freed: other slots of the block may still have it as
	// their parent, and find must keep reaching the root through it.
	p.checkInvariants()
	return true
}

// RemoveSubset deletes the entire block containing t.
func (p *UnionFindPartition[T]) RemoveSubset(t T) bool {
	h, ok := p.lookup[t]
	if !ok {
		return false
	}
	root := p.find(h)
	p.detachRoot(root)

	cur := root
	for {
		next := p.arena.Get(cur).NextItem
		delete(p.lookup, p.arena.Get(cur).Element)
		p.arena.Free(cur)
		if next == root {
			break
		}
		cur = next
	}
	p.subsetCount--
	p.checkInvariants()
	return true
}

// Union merges the blocks of x and y.
func (p *UnionFindPartition[T]) Union(x, y T) (bool, error) {
	const op = "Union"
	hx, ok := p.lookup[x]
	if !ok {
		return false, newErr(NotFound, op, "element %v not found", x)
	}
	hy, ok := p.lookup[y]
	if !ok {
		return false, newErr(NotFound, op, "element %v not found", y)
	}
	rx := p.find(hx)
	ry := p.find(hy)
	if rx == ry {
		return false, nil
	}

	sx := p.arena.Get(rx)
	sy := p.arena.Get(ry)
	// Attach the smaller tree under the larger; ties attach y's root
	// under x's root (any deterministic tie-break is acceptable).
	parent, child := rx, ry
	if sy.Size > sx.Size {
		parent, child = ry, rx
	}

	p.detachRoot(child)
	p.spliceItemCycles(parent, child)
	p.arena.Get(parent).Size += p.arena.Get(child).Size
	p.arena.Get(child).Parent = parent
	p.subsetCount--
	p.checkInvariants()
	return true, nil
}

// Split isolates t into a new singleton block.
func (p *UnionFindPartition[T]) Split(t T) (bool, error) {
	const op = "Split"
	h, ok := p.lookup[t]
	if !ok {
		return false, newErr(NotFound, op, "element %v not found", t)
	}
	root := p.find(h)
	rootSlot := p.arena.Get(root)
	if rootSlot.Size == 1 {
		return false, nil
	}

	victim := h
	if victim == root {
		neighbour := rootSlot.NextItem
		nSlot := p.arena.Get(neighbour)
		rootSlot.Element, nSlot.Element = nSlot.Element, rootSlot.Element
		p.lookup[rootSlot.Element] = root
		p.lookup[nSlot.Element] = neighbour
		victim = neighbour
	}

	p.unlinkItem(victim)
	rootSlot.Size--

	// t moves to a fresh slot; victim keeps its parent link because other
	// slots of the old block may still reach the root through it.
	fresh := p.arena.Alloc(t)
	fs := p.arena.Get(fresh)
	fs.Parent = fresh
	fs.NextItem = fresh
	fs.PrevItem = fresh
	fs.Size = 1
	p.lookup[t] = fresh
	p.attachRoot(fresh)
	p.subsetCount++
	p.checkInvariants()
	return true, nil
}

// Move places x into y's block. Equivalent to Split(x) followed by
// Union(x,y).
func (p *UnionFindPartition[T]) Move(x, y T) (bool, error) {
	const op = "Move"
	hx, ok := p.lookup[x]
	if !ok {
		return false, newErr(NotFound, op, "element %v not found", x)
	}
	hy, ok := p.lookup[y]
	if !ok {
		return false, newErr(NotFound, op, "element %v not found", y)
	}
	if p.find(hx) == p.find(hy) {
		return false, nil
	}
	if _, err := p.Split(x); err != nil {
		return false, err
	}
	if _, err := p.Union(x, y); err != nil {
		return false, err
	}
	return true, nil
}

// Connected reports whether x and y belong to the same block.
func (p *UnionFindPartition[T]) Connected(x, y T) (bool, error) {
	const op = "Connected"
	hx, ok := p.lookup[x]
	if !ok {
		return false, newErr(NotFound, op, "element %v not found", x)
	}
	hy, ok := p.lookup[y]
	if !ok {
		return false, newErr(NotFound, op, "element %v not found", y)
	}
	return p.find(hx) == p.find(hy), nil
}

// Clear removes every element.
func (p *UnionFindPartition[T]) Clear() {
	p.arena = arena.New[T]()
	p.lookup = make(map[T]arena.Handle)
	p.anyRoot = arena.Nil
	p.subsetCount = 0
}

// Elements returns a live view over every element.
func (p *UnionFindPartition[T]) Elements() SetView[T] {
	return ufElementsView[T]{p}
}

// Subsets returns a live view over every block.
func (p *UnionFindPartition[T]) Subsets() BlockSetView[T] {
	return ufSubsetsView[T]{p}
}

// Subset returns a view over the block containing t, anchored to t.
func (p *UnionFindPartition[T]) Subset(t T) (BlockView[T], error) {
	if _, ok := p.lookup[t]; !ok {
		return nil, newErr(NotFound, "Subset", "element %v not found", t)
	}
	return ufBlockView[T]{p: p, anchor: t}, nil
}

// String renders the partition in the canonical format of §6, using
// fmt.Sprint to stringify each element.
func (p *UnionFindPartition[T]) String() string {
	return Format[T](p, func(t T) string { return fmt.Sprint(t) })
}

// Equal reports whether other has the same blocks.
func (p *UnionFindPartition[T]) Equal(other Partition[T]) bool {
	return partitionsEqual[T](p, other)
}

// Hash returns a hash code consistent with Equal.
func (p *UnionFindPartition[T]) Hash() uint64 {
	blocks := make([][]T, 0, p.subsetCount)
	for _, b := range p.Subsets().Blocks() {
		blocks = append(blocks, b.Items())
	}
	return combinePartition(blocks)
}

// blockItems returns a snapshot of the block cycle starting at root.
func (p *UnionFindPartition[T]) blockItems(root arena.Handle) []T {
	size := p.arena.Get(root).Size
	items := make([]T, 0, size)
	cur := root
	for {
		items = append(items, p.arena.Get(cur).Element)
		cur = p.arena.Get(cur).NextItem
		if cur == root {
			break
		}
	}
	return items
}

// ufElementsView implements SetView[T] over every element of a
// UnionFindPartition.
type ufElementsView[T comparable] struct {
	p *UnionFindPartition[T]
}

func (v ufElementsView[T]) Len() int { return v.p.Size() }

func (v ufElementsView[T]) Contains(t T) bool { return v.p.Contains(t) }

func (v ufElementsView[T]) Items() []T {
	items := make([]T, 0, len(v.p.lookup))
	for t := range v.p.lookup {
		items = append(items, t)
	}
	return items
}

// ufSubsetsView implements BlockSetView[T] over every block of a
// UnionFindPartition.
type ufSubsetsView[T comparable] struct {
	p *UnionFindPartition[T]
}

func (v ufSubsetsView[T]) Len() int { return v.p.subsetCount }

func (v ufSubsetsView[T]) Blocks() []SetView[T] {
	blocks := make([]SetView[T], 0, v.p.subsetCount)
	if v.p.anyRoot == arena.Nil {
		return blocks
	}
	cur := v.p.anyRoot
	for {
		root := cur
		blocks = append(blocks, staticSetView[T]{items: v.p.blockItems(root)})
		cur = v.p.arena.Get(cur).NextRoot
		if cur == v.p.anyRoot {
			break
		}
	}
	return blocks
}

// staticSetView implements SetView[T] over a fixed, already-materialised
// slice, used for per-block snapshots handed out by Subsets().
type staticSetView[T comparable] struct {
	items []T
}

func (v staticSetView[T]) Len() int { return len(v.items) }

func (v staticSetView[T]) Contains(t T) bool {
	for _, x := range v.items {
		if x == t {
			return true
		}
	}
	return false
}

func (v staticSetView[T]) Items() []T {
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

// ufBlockView implements BlockView[T], anchored to a single element, over
// a UnionFindPartition. Every method re-resolves the anchor against the
// live lookup table so that a view obtained before the anchor's removal
// fails with NotFound afterwards, per spec.md §4.1's staleness rule.
type ufBlockView[T comparable] struct {
	p      *UnionFindPartition[T]
	anchor T
}

func (v ufBlockView[T]) resolve() (arena.Handle, error) {
	h, ok := v.p.lookup[v.anchor]
	if !ok {
		return arena.Nil, newErr(NotFound, "Subset", "element %v not found", v.anchor)
	}
	return v.p.find(h), nil
}

func (v ufBlockView[T]) Len() (int, error) {
	root, err := v.resolve()
	if err != nil {
		return 0, err
	}
	return v.p.arena.Get(root).Size, nil
}

func (v ufBlockView[T]) Contains(t T) (bool, error) {
	root, err := v.resolve()
	if err != nil {
		return false, err
	}
	h, ok := v.p.lookup[t]
	if !ok {
		return false, nil
	}
	return v.p.find(h) == root, nil
}

func (v ufBlockView[T]) Items() ([]T, error) {
	root, err := v.resolve()
	if err != nil {
		return nil, err
	}
	return v.p.blockItems(root), nil
}

// RootIterator walks the cycle of block roots starting at anyRoot,
// yielding one BlockView per block. Once Next has returned false, Value
// fails with IteratorExhausted, per spec.md §4.2's subsets() iteration
// contract.
type RootIterator[T comparable] struct {
	p       *UnionFindPartition[T]
	start   arena.Handle
	cur     arena.Handle
	started bool
	done    bool
}

// Roots returns a forward-only iterator over the partition's block roots.
func (p *UnionFindPartition[T]) Roots() *RootIterator[T] {
	return &RootIterator[T]{p: p, start: p.anyRoot, cur: p.anyRoot}
}

// Next advances the iterator, returning false once every root has been
// visited (or immediately, if the partition is empty).
func (it *RootIterator[T]) Next() bool {
	if it.done || it.start == arena.Nil {
		it.done = true
		return false
	}
	if !it.started {
		it.started = true
		return true
	}
	next := it.p.arena.Get(it.cur).NextRoot
	if next == it.start {
		it.done = true
		return false
	}
	it.cur = next
	return true
}

// Value returns the block at the iterator's current position. It must
// only be called after a call to Next that returned true; otherwise it
// returns IteratorExhausted.
func (it *RootIterator[T]) Value() (BlockView[T], error) {
	if !it.started || it.done {
		return nil, exhaustedErr("RootIterator.Value")
	}
	return ufBlockView[T]{p: it.p, anchor: it.p.arena.Get(it.cur).Element}, nil
}
