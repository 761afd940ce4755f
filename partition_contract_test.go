package partition

import (
	"testing"
)

// buildPartition constructs a Partition[int] over {0..n-1} using factory,
// grouping elements by label(i) = i % numBlocks.
func buildPartition(t *testing.T, factory Factory[int], n, numBlocks int) Partition[int] {
	t.Helper()
	elements := make([]int, n)
	for i := range elements {
		elements[i] = i
	}
	label := func(t int) int { return t % numBlocks }
	p, err := factory(elements, label)
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	return p
}

// factories lists every Partition[int] implementation the shared
// properties below must hold for.
func factories() []struct {
	name    string
	factory Factory[int]
} {
	return []struct {
		name    string
		factory Factory[int]
	}{
		{"UnionFind", MutableFactory[int]()},
		{"Immutable", ImmutableFactory[int]()},
	}
}

// TestSubsetsArePairwiseDisjointAndCoverElements is property 2: the
// blocks of any Partition are pairwise disjoint, none is empty, their
// union equals the element set, and the block count matches
// SubsetCount.
func TestSubsetsArePairwiseDisjointAndCoverElements(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			p := buildPartition(t, f.factory, 12, 4)

			blocks := p.Subsets().Blocks()
			if len(blocks) != p.SubsetCount() {
				t.Fatalf("len(Blocks())=%d, SubsetCount()=%d", len(blocks), p.SubsetCount())
			}

			seen := make(map[int]int)
			union := 0
			for bi, b := range blocks {
				items := b.Items()
				if len(items) == 0 {
					t.Fatalf("block %d is empty", bi)
				}
				union += len(items)
				for _, e := range items {
					if other, ok := seen[e]; ok {
						t.Fatalf("element %d appears in both block %d and block %d", e, other, bi)
					}
					seen[e] = bi
				}
			}
			if union != p.Size() {
				t.Errorf("sum of block sizes = %d, want Size()=%d", union, p.Size())
			}
			if len(seen) != p.Size() {
				t.Errorf("distinct elements across blocks = %d, want Size()=%d", len(seen), p.Size())
			}
		})
	}
}

// TestSubsetContainsAnchorAndAllConnected is property 3: Subset(t)
// contains t, and every element it contains is Connected to t.
func TestSubsetContainsAnchorAndAllConnected(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			p := buildPartition(t, f.factory, 12, 3)

			for anchor := 0; anchor < 12; anchor++ {
				view, err := p.Subset(anchor)
				if err != nil {
					t.Fatalf("Subset(%d): %v", anchor, err)
				}
				contains, err := view.Contains(anchor)
				if err != nil {
					t.Fatalf("Contains(%d): %v", anchor, err)
				}
				if !contains {
					t.Errorf("Subset(%d) does not contain its own anchor", anchor)
				}
				items, err := view.Items()
				if err != nil {
					t.Fatal(err)
				}
				for _, u := range items {
					connected, err := p.Connected(anchor, u)
					if err != nil {
						t.Fatal(err)
					}
					if !connected {
						t.Errorf("Subset(%d) contains %d but Connected(%d,%d) is false", anchor, u, anchor, u)
					}
				}
			}
		})
	}
}

// TestEqualPartitionsHashEqual is property 8: partition-equality implies
// hash-equality.
func TestEqualPartitionsHashEqual(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			a := buildPartition(t, f.factory, 9, 3)
			b := buildPartition(t, f.factory, 9, 3)
			if !a.Equal(b) {
				t.Fatal("expected two identically constructed partitions to be Equal")
			}
			if a.Hash() != b.Hash() {
				t.Error("Equal partitions produced different Hash values")
			}
		})
	}
}

// TestUnequalPartitionsAreNotEqual is a sanity complement: differently
// shaped partitions must not compare Equal.
func TestUnequalPartitionsAreNotEqual(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			a := buildPartition(t, f.factory, 9, 3)
			b := buildPartition(t, f.factory, 9, 4)
			if a.Equal(b) {
				t.Error("expected differently grouped partitions to not be Equal")
			}
		})
	}
}

// TestContainsAndElementsAgree checks Elements() and Contains are
// consistent across both implementations.
func TestContainsAndElementsAgree(t *testing.T) {
	for _, f := range factories() {
		t.Run(f.name, func(t *testing.T) {
			p := buildPartition(t, f.factory, 7, 2)
			items := p.Elements().Items()
			if len(items) != p.Size() {
				t.Errorf("Elements().Items() has %d entries, want Size()=%d", len(items), p.Size())
			}
			for _, e := range items {
				if !p.Contains(e) {
					t.Errorf("Contains(%d) is false for an element reported by Elements()", e)
				}
				if !p.Elements().Contains(e) {
					t.Errorf("Elements().Contains(%d) is false for an element it also enumerated", e)
				}
			}
			if p.Contains(1000) {
				t.Error("Contains reported true for an element never added")
			}
		})
	}
}
