package partition

import "testing"

func TestEnumerateAllPartitionsN8(t *testing.T) {
	// S1: n=8, no block-count constraint -> Bell(8) = 4140 partitions,
	// each covering all 8 elements.
	elements := make([]int, 8)
	for i := range elements {
		elements[i] = i
	}
	seq, err := Enumerate[int](elements, AllPartitions(), MutableFactory[int]())
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for seq.Next() {
		count++
		p := seq.Current()
		if p.Size() != 8 {
			t.Fatalf("partition %d has size %d, want 8", count, p.Size())
		}
	}
	if err := seq.Err(); err != nil {
		t.Fatalf("Enumerate ended with error: %v", err)
	}
	if count != bellNumbers[8] {
		t.Errorf("got %d partitions, want Bell(8)=%d", count, bellNumbers[8])
	}
}

func TestEnumerateExactlyKBlocksCountMatches(t *testing.T) {
	elements := make([]int, 10)
	for i := range elements {
		elements[i] = i
	}
	seq, err := Enumerate[int](elements, ExactlyKBlocks(6), ImmutableFactory[int]())
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for seq.Next() {
		count++
		if seq.Current().SubsetCount() != 6 {
			t.Fatalf("partition %d has %d blocks, want 6", count, seq.Current().SubsetCount())
		}
	}
	if count != 22827 {
		t.Errorf("got %d partitions, want 22827", count)
	}
}

func TestEnumerateReversedProducesSameSetDifferentOrder(t *testing.T) {
	elements := make([]int, 6)
	for i := range elements {
		elements[i] = i
	}
	forward, err := Enumerate[int](elements, AtMostKBlocks(3), MutableFactory[int]())
	if err != nil {
		t.Fatal(err)
	}
	var forwardHashes []uint64
	for forward.Next() {
		forwardHashes = append(forwardHashes, forward.Current().Hash())
	}

	reverse, err := Enumerate[int](elements, AtMostKBlocks(3).Reversed(), MutableFactory[int]())
	if err != nil {
		t.Fatal(err)
	}
	var reverseHashes []uint64
	for reverse.Next() {
		reverseHashes = append(reverseHashes, reverse.Current().Hash())
	}

	if len(forwardHashes) != len(reverseHashes) {
		t.Fatalf("forward produced %d partitions, reverse produced %d", len(forwardHashes), len(reverseHashes))
	}
	for i := range forwardHashes {
		if forwardHashes[i] != reverseHashes[len(reverseHashes)-1-i] {
			t.Fatalf("reverse sequence is not the reversal of forward at index %d", i)
		}
	}
}

func TestEnumerateRejectsInvalidInput(t *testing.T) {
	factory := MutableFactory[int]()
	if _, err := Enumerate[int](nil, AllPartitions(), factory); err == nil {
		t.Error("expected error for nil elements")
	}
	if _, err := Enumerate[int]([]int{}, AllPartitions(), factory); err == nil {
		t.Error("expected error for empty elements")
	}
	if _, err := Enumerate[int]([]int{1, 2, 1}, AllPartitions(), factory); err == nil {
		t.Error("expected error for duplicate elements")
	}
	if _, err := Enumerate[int]([]int{1, 2}, AllPartitions(), nil); err == nil {
		t.Error("expected error for nil factory")
	}
}

func TestPartitionSeqStaysExhausted(t *testing.T) {
	seq, err := Enumerate[int]([]int{1, 2}, ExactlyKBlocks(2), MutableFactory[int]())
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for seq.Next() {
		count++
	}
	if count != 1 {
		t.Fatalf("got %d partitions, want 1", count)
	}
	if seq.Next() {
		t.Error("Next returned true after exhaustion")
	}
}
