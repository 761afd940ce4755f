package partition

import (
	"testing"

	"golang.org/x/exp/slices"
)

// countAndCollect drains an rgsSource, returning the number of outputs and
// a copy of every emitted vector (for reversal comparisons).
func countAndCollect(gen rgsSource) (int, [][]int) {
	var all [][]int
	count := 0
	for gen.Next() {
		count++
		all = append(all, append([]int(nil), gen.Value()...))
	}
	return count, all
}

func TestExactlyKAndAtMostK_N10K6(t *testing.T) {
	// S4: n=10, k=6.
	exactly, err := NewExactlyK(10, 6)
	if err != nil {
		t.Fatal(err)
	}
	if count, _ := countAndCollect(exactly); count != 22827 {
		t.Errorf("ExactlyK(10,6): got %d, want 22827", count)
	}

	atMost, err := NewAtMostK(10, 6)
	if err != nil {
		t.Fatal(err)
	}
	if count, _ := countAndCollect(atMost); count != 109299 {
		t.Errorf("AtMostK(10,6): got %d, want 109299", count)
	}
}

func TestBetween_N10(t *testing.T) {
	// S3: kmin=4,kmax=6 -> 99457; kmin=kmax=5 -> Stirling2(10,5)=42525;
	// kmin=1,kmax=5 -> 86472.
	cases := []struct {
		kmin, kmax, want int
	}{
		{4, 6, 99457},
		{5, 5, 42525},
		{1, 5, 86472},
	}
	for _, c := range cases {
		e, err := NewBetween(10, c.kmin, c.kmax)
		if err != nil {
			t.Fatal(err)
		}
		if count, _ := countAndCollect(e); count != c.want {
			t.Errorf("Between(10,%d,%d): got %d, want %d", c.kmin, c.kmax, count, c.want)
		}
	}
}

func TestSetK_N10K269(t *testing.T) {
	// S2: n=10, K={2,6,9} (with a duplicate to exercise deduplication) ->
	// 23383, and the reverse variant produces the exact reversal.
	forward, err := NewSetK(10, []int{2, 6, 9, 2})
	if err != nil {
		t.Fatal(err)
	}
	fCount, fAll := countAndCollect(forward)
	if fCount != 23383 {
		t.Errorf("SetK(10,{2,6,9}): got %d, want 23383", fCount)
	}

	reverse, err := NewSetKReverse(10, []int{2, 6, 9})
	if err != nil {
		t.Fatal(err)
	}
	rCount, rAll := countAndCollect(reverse)
	if rCount != fCount {
		t.Errorf("SetKReverse count %d != forward count %d", rCount, fCount)
	}

	if len(fAll) != len(rAll) {
		t.Fatalf("length mismatch: forward %d, reverse %d", len(fAll), len(rAll))
	}
	for i := range fAll {
		if !slices.Equal(fAll[i], rAll[len(rAll)-1-i]) {
			t.Fatalf("reverse sequence is not the reversal of the forward sequence at index %d", i)
		}
	}
}

func TestBoundedReverseIsReversalOfForward(t *testing.T) {
	cases := []struct {
		name            string
		forward, reverse func() (rgsSource, error)
	}{
		{
			name:    "AtMostK(7,4)",
			forward: func() (rgsSource, error) { return NewAtMostK(7, 4) },
			reverse: func() (rgsSource, error) { return NewAtMostKReverse(7, 4) },
		},
		{
			name:    "ExactlyK(7,4)",
			forward: func() (rgsSource, error) { return NewExactlyK(7, 4) },
			reverse: func() (rgsSource, error) { return NewExactlyKReverse(7, 4) },
		},
		{
			name:    "Between(7,2,5)",
			forward: func() (rgsSource, error) { return NewBetween(7, 2, 5) },
			reverse: func() (rgsSource, error) { return NewBetweenReverse(7, 2, 5) },
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fwd, err := c.forward()
			if err != nil {
				t.Fatal(err)
			}
			rev, err := c.reverse()
			if err != nil {
				t.Fatal(err)
			}
			_, fAll := countAndCollect(fwd)
			_, rAll := countAndCollect(rev)
			if len(fAll) != len(rAll) {
				t.Fatalf("length mismatch: forward %d, reverse %d", len(fAll), len(rAll))
			}
			for i := range fAll {
				if !slices.Equal(fAll[i], rAll[len(rAll)-1-i]) {
					t.Fatalf("%s: reverse is not the reversal of forward at index %d: %v vs %v", c.name, i, fAll[i], rAll[len(rAll)-1-i])
				}
			}
		})
	}
}

func TestSetKRejectsEmptyAndOutOfRange(t *testing.T) {
	if _, err := NewSetK(5, nil); err == nil {
		t.Error("expected error for nil K")
	}
	if _, err := NewSetK(5, []int{}); err == nil {
		t.Error("expected error for empty K")
	}
	if _, err := NewSetK(5, []int{0}); err == nil {
		t.Error("expected error for K entry below 1")
	}
	if _, err := NewSetK(5, []int{6}); err == nil {
		t.Error("expected error for K entry above n")
	}
}

func TestBetweenRejectsInvertedBounds(t *testing.T) {
	if _, err := NewBetween(5, 4, 2); err == nil {
		t.Error("expected error when kmin > kmax")
	}
}
